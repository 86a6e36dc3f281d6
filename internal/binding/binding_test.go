package binding

import (
	"testing"

	"github.com/nward/backtalk/internal/message"
)

func TestServiceBindingEmitFansOutInAttachOrder(t *testing.T) {
	b := NewServiceBinding("orders")
	var order []string
	b.AttachMessagesChanged(func(msgs []message.Message) { order = append(order, "first") })
	b.AttachMessagesChanged(func(msgs []message.Message) { order = append(order, "second") })

	b.Emit([]message.Message{{Code: "X"}})

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("handler order = %v", order)
	}
}

func TestServiceBindingEmitReplacesCurrent(t *testing.T) {
	b := NewServiceBinding("orders")
	b.Emit([]message.Message{{Code: "A"}, {Code: "B"}})
	b.Emit([]message.Message{{Code: "C"}})

	cur := b.Current()
	if len(cur) != 1 || cur[0].Code != "C" {
		t.Fatalf("current = %+v, want single C", cur)
	}
}

func TestServiceBindingHandlerGetsOwnCopy(t *testing.T) {
	b := NewServiceBinding("orders")
	b.AttachMessagesChanged(func(msgs []message.Message) {
		if len(msgs) > 0 {
			msgs[0].Text = "mutated"
		}
	})
	b.Emit([]message.Message{{Code: "A", Text: "original"}})

	if b.Current()[0].Text != "original" {
		t.Error("handler mutation leaked into binding state")
	}
}

func TestRegistryEachVisitsRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	r.Register(NewServiceBinding("orders"))
	r.Register(NewServiceBinding("invoices"))
	r.Register(NewServiceBinding("orders")) // re-register keeps slot

	var names []string
	r.Each(func(b Binding) { names = append(names, b.Name()) })
	if len(names) != 2 || names[0] != "orders" || names[1] != "invoices" {
		t.Fatalf("names = %v", names)
	}
}

func TestRegistryDefault(t *testing.T) {
	r := NewRegistry()
	if r.Default() != nil {
		t.Fatal("fresh registry should have no default")
	}
	def := NewServiceBinding("orders")
	r.SetDefault(def)
	if r.Default() != Binding(def) {
		t.Fatal("default not returned")
	}
}
