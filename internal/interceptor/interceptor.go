// Package interceptor watches the application's backend bindings for
// validation message batches and presents them to the user through at most
// one modal surface at a time.
package interceptor

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/nward/backtalk/internal/binding"
	"github.com/nward/backtalk/internal/message"
)

// Default user-facing strings, used when the corresponding setting is empty.
const (
	DefaultErrorText   = "Sorry, a technical error occurred! Please try again later."
	DefaultDialogTitle = "Please check following message(s)"
)

// Settings configures an Interceptor. Empty strings fall back to the
// package defaults at construction and in the setters.
type Settings struct {
	// Intercept controls whether filtered batches are auto-displayed.
	// Filtering and storage still happen when it is off.
	Intercept bool
	// ErrorOnly discards everything below Error severity.
	ErrorOnly bool
	// ErrorText is the headline of the single-message alert.
	ErrorText string
	// DialogTitle titles the multi-message dialog.
	DialogTitle string
	// ExcludedSources lists binding names to never subscribe to.
	ExcludedSources []string
}

// DefaultSettings returns the documented defaults.
func DefaultSettings() Settings {
	return Settings{
		Intercept:   true,
		ErrorOnly:   false,
		ErrorText:   DefaultErrorText,
		DialogTitle: DefaultDialogTitle,
	}
}

// Presenter renders modal surfaces. Implementations must invoke dismiss
// exactly once, when the user closes the surface; until then the
// interceptor will not open another one.
type Presenter interface {
	ShowAlert(headline, detail string, dismiss func())
	ShowDialog(title string, severity message.Severity, msgs []message.Message, dismiss func())
}

// Interceptor subscribes to the application's OData v2 bindings, filters
// incoming message batches, and drives the Presenter.
type Interceptor struct {
	registry  *binding.Registry
	messages  *message.Store
	presenter Presenter
	log       zerolog.Logger

	mu         sync.Mutex
	settings   Settings
	current    []message.Message
	presenting bool
}

// New builds an Interceptor and subscribes it to every V2 binding in reg
// whose name is not excluded. When no named binding qualifies it falls back
// to the default binding, if that exists, is V2, and is not itself excluded.
// No qualifying binding at all is a silent no-op.
func New(reg *binding.Registry, store *message.Store, p Presenter, s Settings, log zerolog.Logger) *Interceptor {
	if s.ErrorText == "" {
		s.ErrorText = DefaultErrorText
	}
	if s.DialogTitle == "" {
		s.DialogTitle = DefaultDialogTitle
	}

	it := &Interceptor{
		registry:  reg,
		messages:  store,
		presenter: p,
		log:       log,
		settings:  s,
	}

	excluded := map[string]bool{}
	for _, name := range s.ExcludedSources {
		excluded[name] = true
	}

	subscribed := 0
	reg.Each(func(b binding.Binding) {
		v2, ok := b.(binding.V2Binding)
		if !ok || excluded[b.Name()] {
			return
		}
		v2.AttachMessagesChanged(it.onMessagesChanged)
		it.log.Debug().Str("binding", b.Name()).Msg("subscribed to message changes")
		subscribed++
	})

	if subscribed == 0 {
		if v2, ok := reg.Default().(binding.V2Binding); ok && !excluded[v2.Name()] {
			v2.AttachMessagesChanged(it.onMessagesChanged)
			it.log.Debug().Str("binding", v2.Name()).Msg("subscribed to default binding")
		}
	}
	return it
}

// presentation is the mode chosen for a filtered batch.
type presentation int

const (
	presentNothing presentation = iota
	presentSingle
	presentMultiple
)

func presentationFor(msgs []message.Message) presentation {
	switch {
	case len(msgs) == 0:
		return presentNothing
	case len(msgs) == 1:
		return presentSingle
	default:
		return presentMultiple
	}
}

// onMessagesChanged handles one complete replacement batch from a binding.
func (it *Interceptor) onMessagesChanged(batch []message.Message) {
	it.mu.Lock()
	filtered := message.Filter(batch, it.settings.ErrorOnly)
	it.current = filtered
	intercept := it.settings.Intercept
	it.mu.Unlock()

	it.messages.Replace(filtered)
	it.log.Debug().Int("received", len(batch)).Int("kept", len(filtered)).Msg("messages changed")

	if !intercept {
		return
	}

	switch presentationFor(filtered) {
	case presentSingle:
		it.showAlert(filtered[0])
	case presentMultiple:
		it.showDialog(filtered)
	}
}

func (it *Interceptor) showAlert(m message.Message) {
	it.mu.Lock()
	if it.presenting {
		it.mu.Unlock()
		return
	}
	it.presenting = true
	headline := it.settings.ErrorText
	it.mu.Unlock()

	it.presenter.ShowAlert(headline, m.Text, it.dismissed)
}

func (it *Interceptor) showDialog(msgs []message.Message) {
	it.mu.Lock()
	if it.presenting {
		it.mu.Unlock()
		return
	}
	it.presenting = true
	title := it.settings.DialogTitle
	it.mu.Unlock()

	it.presenter.ShowDialog(title, message.HighestSeverity(msgs), msgs, it.dismissed)
}

func (it *Interceptor) dismissed() {
	it.mu.Lock()
	it.presenting = false
	it.mu.Unlock()
}

// Presenting reports whether a surface is currently open.
func (it *Interceptor) Presenting() bool {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.presenting
}

// Messages returns the last filtered batch, useful when Intercept is off
// and batches are retained for inspection only.
func (it *Interceptor) Messages() []message.Message {
	it.mu.Lock()
	defer it.mu.Unlock()
	return append([]message.Message(nil), it.current...)
}

// SetIntercept toggles auto-display of filtered batches.
func (it *Interceptor) SetIntercept(v bool) {
	it.mu.Lock()
	it.settings.Intercept = v
	it.mu.Unlock()
}

// SetErrorOnly toggles the severity filter.
func (it *Interceptor) SetErrorOnly(v bool) {
	it.mu.Lock()
	it.settings.ErrorOnly = v
	it.mu.Unlock()
}

// SetErrorText sets the alert headline; empty restores the default.
func (it *Interceptor) SetErrorText(s string) {
	if s == "" {
		s = DefaultErrorText
	}
	it.mu.Lock()
	it.settings.ErrorText = s
	it.mu.Unlock()
}

// SetDialogTitle sets the dialog title; empty restores the default.
func (it *Interceptor) SetDialogTitle(s string) {
	if s == "" {
		s = DefaultDialogTitle
	}
	it.mu.Lock()
	it.settings.DialogTitle = s
	it.mu.Unlock()
}

// Settings returns a snapshot of the current settings.
func (it *Interceptor) Settings() Settings {
	it.mu.Lock()
	defer it.mu.Unlock()
	s := it.settings
	s.ExcludedSources = append([]string(nil), it.settings.ExcludedSources...)
	return s
}
