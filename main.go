package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"

	"puppetclient/client"
	"puppetclient/display"
)

// Puppet client entry: load config, connect to the world server, then
// either open the game window or tick headless.
func main() {
	var (
		configPath string
		serverURL  string
		logFile    string
		debugAddr  string
		headless   bool
	)
	flag.StringVar(&configPath, "config", "", "path to YAML config file")
	flag.StringVar(&serverURL, "server", "", "websocket URL of the world server, e.g. ws://localhost:4000")
	flag.StringVar(&logFile, "log", "", "log file path")
	flag.StringVar(&debugAddr, "debug-addr", "", "listen address for the debug HTTP endpoints, e.g. 127.0.0.1:6060")
	flag.BoolVar(&headless, "headless", false, "run without a window")
	flag.Parse()

	cfg, err := client.LoadConfig(configPath)
	if err != nil {
		panic(err)
	}
	if serverURL != "" {
		cfg.ServerURL = serverURL
	}
	if logFile != "" {
		cfg.Log.File = logFile
	}
	if debugAddr != "" {
		cfg.DebugAddr = debugAddr
	}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	if err := client.InitLogger(cfg.Log); err != nil {
		panic(err)
	}
	defer client.SyncLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		game     *display.Game
		renderer client.Renderer = client.NopRenderer{}
	)
	if !headless {
		game, err = display.NewGame(cfg)
		if err != nil {
			client.Log.Fatalf("building window: %v", err)
		}
		renderer = game
	}

	session := client.NewSession(cfg,
		client.WithRenderer(renderer),
		client.WithDesyncHandler(func(err error) {
			client.Log.Warnw("world out of sync, waiting for next instance digest", "error", err)
		}),
	)

	conn, err := client.Dial(ctx, cfg, session.ID, client.Log)
	if err != nil {
		client.Log.Fatalf("connect: %v", err)
	}
	defer conn.Close()
	session.SetTransport(conn)
	client.Log.Infow("connected", "server", cfg.ServerURL, "session", session.ID)

	if cfg.DebugAddr != "" {
		srv := &http.Server{Addr: cfg.DebugAddr, Handler: client.NewDebugMux(session)}
		go func() {
			client.Log.Infof("debug endpoints on http://%s/debug/state", cfg.DebugAddr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				client.Log.Errorf("debug listen: %v", err)
			}
		}()
		defer srv.Close()
	}

	if headless {
		err = session.Run(ctx, conn.Inbound(), conn.Done())
		if err != nil && !errors.Is(err, context.Canceled) {
			client.Log.Errorw("session ended", "error", err)
			os.Exit(1)
		}
		client.Log.Info("Shutting down...")
		return
	}

	game.Bind(session, conn.Inbound(), conn.Done())
	ebiten.SetWindowSize(cfg.Screen.Width, cfg.Screen.Height)
	ebiten.SetWindowTitle("puppets")
	if err := ebiten.RunGame(game); err != nil {
		client.Log.Errorw("window closed", "error", err)
	}
	client.Log.Info("Shutting down...")
}
