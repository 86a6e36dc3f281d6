package message

import "testing"

func TestStoreReplaceIsWholesale(t *testing.T) {
	s := NewStore()
	s.Replace([]Message{{Code: "A"}, {Code: "B"}})
	s.Replace([]Message{{Code: "C"}})

	got := s.Messages()
	if len(got) != 1 {
		t.Fatalf("expected 1 message after second replace, got %d", len(got))
	}
	if got[0].Code != "C" {
		t.Errorf("code = %q, want %q", got[0].Code, "C")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestStoreMessagesReturnsCopy(t *testing.T) {
	s := NewStore()
	s.Replace([]Message{{Code: "A", Text: "original"}})

	got := s.Messages()
	got[0].Text = "mutated"

	if s.Messages()[0].Text != "original" {
		t.Error("caller mutation leaked into store")
	}
}

func TestStoreSubscribeNotifiedOnReplace(t *testing.T) {
	s := NewStore()
	var seen [][]Message
	s.Subscribe(func(msgs []Message) { seen = append(seen, msgs) })

	s.Replace([]Message{{Code: "A"}})
	s.Replace(nil)

	if len(seen) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(seen))
	}
	if len(seen[0]) != 1 || seen[0][0].Code != "A" {
		t.Errorf("first notification = %+v", seen[0])
	}
	if len(seen[1]) != 0 {
		t.Errorf("second notification should be empty, got %d entries", len(seen[1]))
	}
}
