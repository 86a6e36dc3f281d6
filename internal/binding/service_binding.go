package binding

import (
	"sync"

	"github.com/nward/backtalk/internal/message"
)

// ServiceBinding is the concrete V2Binding backend services publish through.
// Emit replaces the binding's current batch and fans it out to attached
// handlers.
type ServiceBinding struct {
	name string

	mu       sync.Mutex
	handlers []MessageHandler
	current  []message.Message
}

func NewServiceBinding(name string) *ServiceBinding {
	return &ServiceBinding{name: name}
}

func (b *ServiceBinding) Name() string { return b.name }

// ODataV2 marks the capability.
func (b *ServiceBinding) ODataV2() {}

func (b *ServiceBinding) AttachMessagesChanged(h MessageHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

// Emit publishes msgs as the complete replacement batch. Handlers run
// synchronously in attach order; each receives its own copy.
func (b *ServiceBinding) Emit(msgs []message.Message) {
	b.mu.Lock()
	b.current = append([]message.Message(nil), msgs...)
	handlers := append([]MessageHandler(nil), b.handlers...)
	b.mu.Unlock()

	for _, h := range handlers {
		h(append([]message.Message(nil), msgs...))
	}
}

// Current returns a copy of the last emitted batch.
func (b *ServiceBinding) Current() []message.Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]message.Message(nil), b.current...)
}

var _ V2Binding = (*ServiceBinding)(nil)
