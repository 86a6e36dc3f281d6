package tui

import (
	"github.com/nward/backtalk/internal/message"
)

// showAlertMsg asks the app to open the single-message alert.
type showAlertMsg struct {
	headline string
	detail   string
	dismiss  func()
}

// showDialogMsg asks the app to open the multi-message dialog.
type showDialogMsg struct {
	title    string
	severity message.Severity
	msgs     []message.Message
	dismiss  func()
}

// presenter adapts the interceptor's Presenter interface onto the bubbletea
// message loop. Calls may arrive from command goroutines; they are turned
// into tea messages and handled on the update loop.
type presenter struct {
	app *App
}

func (p presenter) ShowAlert(headline, detail string, dismiss func()) {
	p.app.send(showAlertMsg{headline: headline, detail: detail, dismiss: dismiss})
}

func (p presenter) ShowDialog(title string, severity message.Severity, msgs []message.Message, dismiss func()) {
	p.app.send(showDialogMsg{title: title, severity: severity, msgs: msgs, dismiss: dismiss})
}
