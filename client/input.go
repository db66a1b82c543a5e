package client

// Outbound control tokens bracketing a movement session.
const (
	TokenMove = "MOVE"
	TokenStop = "STOP"
)

// Decision is what a key edge asks the client to transmit.
// The zero value means nothing to send.
type Decision struct {
	Announce    Direction
	StartMoving bool
	Stop        bool
}

// IsZero reports whether d transmits nothing.
func (d Decision) IsZero() bool {
	return d == Decision{}
}

// Tokens renders d as outbound wire messages, in send order.
func (d Decision) Tokens() []string {
	switch {
	case d.Stop:
		return []string{TokenStop}
	case d.Announce == DirNone:
		return nil
	case d.StartMoving:
		return []string{d.Announce.String(), TokenMove}
	default:
		return []string{d.Announce.String()}
	}
}

// InputStack holds the movement keys currently down, oldest first.
// The most recently pressed key that is still held wins.
type InputStack struct {
	held []Direction
}

// Press pushes dir unless it is already held.
func (s *InputStack) Press(dir Direction) Decision {
	if dir == DirNone || s.indexOf(dir) >= 0 {
		return Decision{}
	}
	wasEmpty := len(s.held) == 0
	s.held = append(s.held, dir)
	return Decision{Announce: dir, StartMoving: wasEmpty}
}

// Release drops dir from the stack. Releasing a key that is not held is a
// no-op.
func (s *InputStack) Release(dir Direction) Decision {
	i := s.indexOf(dir)
	if i < 0 {
		return Decision{}
	}
	s.held = append(s.held[:i], s.held[i+1:]...)
	if len(s.held) == 0 {
		return Decision{Stop: true}
	}
	return Decision{Announce: s.held[len(s.held)-1]}
}

// Current is the direction being transmitted, DirNone when nothing is held.
func (s *InputStack) Current() Direction {
	if len(s.held) == 0 {
		return DirNone
	}
	return s.held[len(s.held)-1]
}

// Held returns a copy of the stack, oldest first.
func (s *InputStack) Held() []Direction {
	out := make([]Direction, len(s.held))
	copy(out, s.held)
	return out
}

// Len is the number of held keys.
func (s *InputStack) Len() int { return len(s.held) }

func (s *InputStack) indexOf(dir Direction) int {
	for i, d := range s.held {
		if d == dir {
			return i
		}
	}
	return -1
}
