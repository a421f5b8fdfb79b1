package communication

import "sync"

// Communicator is an interface that abstracts the communication mechanism.
// Positions are exchanged as board diagrams.
type Communicator interface {
	// Broadcast sends a position to every collaborator. It must not block
	// on slow collaborators.
	Broadcast(diagram string)
	// OnPosition installs the handler for positions received from
	// collaborators. Handlers may be called from any goroutine.
	OnPosition(handler func(diagram string))
	Close() error
}

type multi struct {
	comms []Communicator
}

// Multi fans broadcasts out to all comms and collects their positions.
func Multi(comms ...Communicator) Communicator {
	return &multi{comms: comms}
}

func (m *multi) Broadcast(diagram string) {
	for _, c := range m.comms {
		c.Broadcast(diagram)
	}
}

func (m *multi) OnPosition(handler func(diagram string)) {
	for _, c := range m.comms {
		c.OnPosition(handler)
	}
}

func (m *multi) Close() error {
	var first error
	for _, c := range m.comms {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Handler stores a position handler for concurrent use.
type Handler struct {
	mu sync.RWMutex
	fn func(diagram string)
}

func (h *Handler) Set(fn func(diagram string)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.fn = fn
}

// Call passes diagram to the installed handler, if any.
func (h *Handler) Call(diagram string) {
	h.mu.RLock()
	fn := h.fn
	h.mu.RUnlock()
	if fn != nil {
		fn(diagram)
	}
}

type nop struct{}

// Nop is a Communicator without collaborators.
func Nop() Communicator { return nop{} }

func (nop) Broadcast(string)        {}
func (nop) OnPosition(func(string)) {}
func (nop) Close() error            { return nil }
