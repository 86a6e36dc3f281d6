// Package message defines the backend validation message model shared by
// service bindings, the interceptor, and the UI.
package message

// Severity classifies a backend message.
type Severity string

const (
	SeverityError   Severity = "Error"
	SeverityWarning Severity = "Warning"
	SeveritySuccess Severity = "Success"
	SeverityInfo    Severity = "Information"
)

// EnvelopeExceptionCode wraps every backend fault response. It carries no
// user-actionable content and is always discarded before display.
const EnvelopeExceptionCode = "/IWBEP/CX_MGW_BUSI_EXCEPTION"

// Message is a single validation or processing outcome from a backend call.
// Read-only to consumers; bindings replace whole batches rather than
// mutating entries.
type Message struct {
	ID             string
	Code           string
	Severity       Severity
	Text           string
	AdditionalText string
	Target         string
}

// Filter drops the envelope sentinel, then, when errorOnly is set, anything
// below Error severity. Order is preserved; the input is never modified.
func Filter(in []Message, errorOnly bool) []Message {
	out := make([]Message, 0, len(in))
	for _, m := range in {
		if m.Code == EnvelopeExceptionCode {
			continue
		}
		if errorOnly && m.Severity != SeverityError {
			continue
		}
		out = append(out, m)
	}
	return out
}

// HighestSeverity reports the severity a presentation of msgs should carry:
// Error if any entry is an Error, Warning otherwise.
func HighestSeverity(msgs []Message) Severity {
	for _, m := range msgs {
		if m.Severity == SeverityError {
			return SeverityError
		}
	}
	return SeverityWarning
}
