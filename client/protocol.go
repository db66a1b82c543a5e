package client

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Opcode names an inbound server event.
type Opcode string

const (
	OpAttributePuppet Opcode = "ATTRIBUTE_PUPPET"
	OpInstanceDigest  Opcode = "INSTANCE_DIGEST"
	OpPuppetStarts    Opcode = "PUPPET_STARTS"
	OpPuppetStops     Opcode = "PUPPET_STOPS"
	OpPuppetEnters    Opcode = "PUPPET_ENTERS"
	OpPuppetLeaves    Opcode = "PUPPET_LEAVES"
	OpPuppetMoves     Opcode = "PUPPET_MOVES"
	OpPuppetDirection Opcode = "PUPPET_DIRECTION"
)

// Point is a position in server world units, origin bottom-left.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Event is one decoded inbound message. The set of implementations is
// closed; UnknownEvent carries opcodes this client does not understand.
type Event interface {
	Opcode() Opcode
}

type AttributePuppet struct {
	PuppetKey PuppetID
}

// DigestEntry is one puppet listed in an instance digest.
type DigestEntry struct {
	ID PuppetID
	At Point
}

type InstanceDigest struct {
	Instance string
	MapKey   string
	// Width and Height are in tiles.
	Width   int
	Height  int
	Puppets []DigestEntry // sorted by ID
}

type PuppetStarts struct {
	PuppetKey PuppetID
}

type PuppetStops struct {
	PuppetKey PuppetID
}

type PuppetEnters struct {
	PuppetKey PuppetID
	At        Point
}

type PuppetLeaves struct {
	PuppetKey PuppetID
}

type PuppetMoves struct {
	PuppetKey PuppetID
	To        Point
}

type PuppetDirection struct {
	PuppetKey PuppetID
	Direction Direction
}

type UnknownEvent struct {
	Op Opcode
}

func (AttributePuppet) Opcode() Opcode { return OpAttributePuppet }
func (InstanceDigest) Opcode() Opcode  { return OpInstanceDigest }
func (PuppetStarts) Opcode() Opcode    { return OpPuppetStarts }
func (PuppetStops) Opcode() Opcode     { return OpPuppetStops }
func (PuppetEnters) Opcode() Opcode    { return OpPuppetEnters }
func (PuppetLeaves) Opcode() Opcode    { return OpPuppetLeaves }
func (PuppetMoves) Opcode() Opcode     { return OpPuppetMoves }
func (PuppetDirection) Opcode() Opcode { return OpPuppetDirection }
func (e UnknownEvent) Opcode() Opcode  { return e.Op }

// Wire shapes. Pointers distinguish a missing field from a zero value.

type envelope struct {
	Opcode  *string         `json:"opcode"`
	Message json.RawMessage `json:"message"`
}

type wirePoint struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

type puppetPayload struct {
	PuppetKey *string    `json:"puppet_key"`
	Digest    *wirePoint `json:"digest"`
	Position  *wirePoint `json:"position"`
	Direction *string    `json:"direction"`
}

type digestPayload struct {
	InstanceKey string `json:"instance_key"`
	Map         *struct {
		MapKey *string `json:"map_key"`
		Digest *struct {
			Width  *int `json:"width"`
			Height *int `json:"height"`
		} `json:"digest"`
	} `json:"map"`
	Puppets map[string]*wirePoint `json:"puppets"`
}

func malformed(op Opcode, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrMalformedMessage, op, fmt.Sprintf(format, args...))
}

func (p *wirePoint) point(op Opcode, field string) (Point, error) {
	if p == nil || p.X == nil || p.Y == nil {
		return Point{}, malformed(op, "missing %s.{x,y}", field)
	}
	return Point{X: *p.X, Y: *p.Y}, nil
}

func (p *puppetPayload) key(op Opcode) (PuppetID, error) {
	if p.PuppetKey == nil || *p.PuppetKey == "" {
		return "", malformed(op, "missing puppet_key")
	}
	return PuppetID(*p.PuppetKey), nil
}

// Decode parses one inbound text frame. Unknown opcodes decode to
// UnknownEvent without error.
func Decode(data []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	if env.Opcode == nil || *env.Opcode == "" {
		return nil, fmt.Errorf("%w: missing opcode", ErrMalformedMessage)
	}
	op := Opcode(*env.Opcode)

	switch op {
	case OpInstanceDigest:
		return decodeDigest(env.Message)
	case OpAttributePuppet, OpPuppetStarts, OpPuppetStops, OpPuppetEnters,
		OpPuppetLeaves, OpPuppetMoves, OpPuppetDirection:
		return decodePuppetEvent(op, env.Message)
	default:
		return UnknownEvent{Op: op}, nil
	}
}

func decodePuppetEvent(op Opcode, raw json.RawMessage) (Event, error) {
	if len(raw) == 0 {
		return nil, malformed(op, "missing message")
	}
	var p puppetPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, malformed(op, "%v", err)
	}
	id, err := p.key(op)
	if err != nil {
		return nil, err
	}

	switch op {
	case OpAttributePuppet:
		return AttributePuppet{PuppetKey: id}, nil
	case OpPuppetStarts:
		return PuppetStarts{PuppetKey: id}, nil
	case OpPuppetStops:
		return PuppetStops{PuppetKey: id}, nil
	case OpPuppetLeaves:
		return PuppetLeaves{PuppetKey: id}, nil
	case OpPuppetEnters:
		at, err := p.Digest.point(op, "digest")
		if err != nil {
			return nil, err
		}
		return PuppetEnters{PuppetKey: id, At: at}, nil
	case OpPuppetMoves:
		to, err := p.Position.point(op, "position")
		if err != nil {
			return nil, err
		}
		return PuppetMoves{PuppetKey: id, To: to}, nil
	case OpPuppetDirection:
		if p.Direction == nil {
			return nil, malformed(op, "missing direction")
		}
		dir, err := ParseDirection(*p.Direction)
		if err != nil {
			return nil, malformed(op, "%v", err)
		}
		return PuppetDirection{PuppetKey: id, Direction: dir}, nil
	}
	return UnknownEvent{Op: op}, nil
}

func decodeDigest(raw json.RawMessage) (Event, error) {
	op := OpInstanceDigest
	if len(raw) == 0 {
		return nil, malformed(op, "missing message")
	}
	var p digestPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, malformed(op, "%v", err)
	}
	if p.Map == nil || p.Map.MapKey == nil || *p.Map.MapKey == "" {
		return nil, malformed(op, "missing map.map_key")
	}
	d := p.Map.Digest
	if d == nil || d.Width == nil || d.Height == nil {
		return nil, malformed(op, "missing map.digest.{width,height}")
	}
	if *d.Width < 0 || *d.Height < 0 {
		return nil, malformed(op, "negative map size %dx%d", *d.Width, *d.Height)
	}
	if p.Puppets == nil {
		return nil, malformed(op, "missing puppets")
	}

	ev := InstanceDigest{
		Instance: p.InstanceKey,
		MapKey:   *p.Map.MapKey,
		Width:    *d.Width,
		Height:   *d.Height,
		Puppets:  make([]DigestEntry, 0, len(p.Puppets)),
	}
	if ev.Instance == "" {
		ev.Instance = ev.MapKey
	}
	for key, wp := range p.Puppets {
		if key == "" {
			return nil, malformed(op, "empty puppet key")
		}
		at, err := wp.point(op, "puppets."+key)
		if err != nil {
			return nil, err
		}
		ev.Puppets = append(ev.Puppets, DigestEntry{ID: PuppetID(key), At: at})
	}
	sort.Slice(ev.Puppets, func(i, j int) bool { return ev.Puppets[i].ID < ev.Puppets[j].ID })
	return ev, nil
}
