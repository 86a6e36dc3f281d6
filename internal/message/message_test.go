package message

import "testing"

func TestFilterDropsEnvelopeSentinel(t *testing.T) {
	in := []Message{
		{Code: EnvelopeExceptionCode, Severity: SeverityError, Text: "wrapper"},
		{Code: "X", Severity: SeverityWarning, Text: "Field required"},
	}
	out := Filter(in, false)
	if len(out) != 1 {
		t.Fatalf("expected 1 message, got %d", len(out))
	}
	if out[0].Code != "X" {
		t.Errorf("code = %q, want %q", out[0].Code, "X")
	}
	if out[0].Text != "Field required" {
		t.Errorf("text = %q, want %q", out[0].Text, "Field required")
	}
}

func TestFilterErrorOnly(t *testing.T) {
	in := []Message{
		{Code: EnvelopeExceptionCode, Severity: SeverityError},
		{Code: "A", Severity: SeverityError, Text: "bad"},
		{Code: "B", Severity: SeverityWarning, Text: "meh"},
		{Code: "C", Severity: SeveritySuccess, Text: "ok"},
		{Code: "D", Severity: SeverityInfo, Text: "fyi"},
	}
	out := Filter(in, true)
	if len(out) != 1 {
		t.Fatalf("expected 1 message, got %d", len(out))
	}
	if out[0].Code != "A" {
		t.Errorf("code = %q, want %q", out[0].Code, "A")
	}

	// sentinel removal happens before the severity filter, so with
	// errorOnly off everything except the sentinel survives
	out = Filter(in, false)
	if len(out) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(out))
	}
	for _, m := range out {
		if m.Code == EnvelopeExceptionCode {
			t.Error("sentinel leaked through filter")
		}
	}
}

func TestFilterSentinelOnlyBatchGoesEmpty(t *testing.T) {
	in := []Message{{Code: EnvelopeExceptionCode, Severity: SeverityError}}
	if out := Filter(in, false); len(out) != 0 {
		t.Fatalf("expected empty result, got %d", len(out))
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	in := []Message{
		{Code: "1", Severity: SeverityError},
		{Code: "2", Severity: SeverityWarning},
		{Code: "3", Severity: SeverityError},
	}
	out := Filter(in, false)
	for i, want := range []string{"1", "2", "3"} {
		if out[i].Code != want {
			t.Errorf("out[%d].Code = %q, want %q", i, out[i].Code, want)
		}
	}
}

func TestHighestSeverity(t *testing.T) {
	cases := []struct {
		name string
		in   []Message
		want Severity
	}{
		{"error wins", []Message{{Severity: SeverityWarning}, {Severity: SeverityError}}, SeverityError},
		{"warnings only", []Message{{Severity: SeverityWarning}, {Severity: SeverityInfo}}, SeverityWarning},
		{"empty", nil, SeverityWarning},
	}
	for _, tc := range cases {
		if got := HighestSeverity(tc.in); got != tc.want {
			t.Errorf("%s: got %s, want %s", tc.name, got, tc.want)
		}
	}
}
