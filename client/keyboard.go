package client

// Keyboard turns raw key-down/key-up reports into press and release edges
// for the bound movement keys. Repeated downs while a key is held are
// swallowed, which is what filters OS auto-repeat.
type Keyboard struct {
	bindings map[string]Direction
	down     map[string]bool
	stack    *InputStack
}

// NewKeyboard binds key names to directions on top of stack.
func NewKeyboard(stack *InputStack, bindings map[Direction]string) *Keyboard {
	k := &Keyboard{
		bindings: make(map[string]Direction, len(bindings)),
		down:     make(map[string]bool, len(bindings)),
		stack:    stack,
	}
	for dir, key := range bindings {
		k.bindings[key] = dir
	}
	return k
}

// KeyDown reports a raw key-down. Only the up→down edge of a bound key
// reaches the stack.
func (k *Keyboard) KeyDown(key string) Decision {
	dir, ok := k.bindings[key]
	if !ok || k.down[key] {
		return Decision{}
	}
	k.down[key] = true
	return k.stack.Press(dir)
}

// KeyUp reports a raw key-up.
func (k *Keyboard) KeyUp(key string) Decision {
	dir, ok := k.bindings[key]
	if !ok || !k.down[key] {
		return Decision{}
	}
	k.down[key] = false
	return k.stack.Release(dir)
}

// IsDown reports the debounced state of key.
func (k *Keyboard) IsDown(key string) bool {
	return k.down[key]
}
