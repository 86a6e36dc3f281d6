// Package binding models the backend service bindings an application owns.
// A binding represents one remote service; bindings that speak the OData v2
// message protocol additionally emit validation message batches. Capability
// is expressed through the V2Binding interface rather than runtime type
// inspection.
package binding

import "github.com/nward/backtalk/internal/message"

// Binding is any configured backend service binding.
type Binding interface {
	Name() string
}

// MessageHandler receives the complete replacement batch of current messages
// from one binding. Prior batches are superseded, never merged.
type MessageHandler func(msgs []message.Message)

// V2Binding is a binding that emits OData-v2-style message batches.
type V2Binding interface {
	Binding

	// AttachMessagesChanged registers h for every future batch. Handlers
	// run synchronously on Emit, in attach order.
	AttachMessagesChanged(h MessageHandler)

	// ODataV2 marks the capability; it has no behavior.
	ODataV2()
}
