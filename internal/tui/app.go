// Package tui is the terminal front end: an order editor backed by the
// order service, plus the modal surfaces the message interceptor presents
// through.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nward/backtalk/internal/database/repository"
	"github.com/nward/backtalk/internal/interceptor"
	"github.com/nward/backtalk/internal/message"
	"github.com/nward/backtalk/internal/service"
)

// App ties together the order editor and the interceptor's presentations.
type App struct {
	ctx      context.Context
	services Services
	store    *message.Store
	itc      *interceptor.Interceptor

	fields   [fieldCount]string
	focus    int
	orders   []repository.Order
	status   string
	msgCount int

	modal  modalState
	alert  *alertModel
	dialog *dialogModel

	mu      sync.Mutex
	program *tea.Program
	queued  []tea.Msg
}

type Services struct {
	Orders *service.OrderService
}

type modalState string

const (
	modalNone   modalState = ""
	modalAlert  modalState = "alert"
	modalDialog modalState = "dialog"
)

const (
	fieldCustomer = iota
	fieldSKU
	fieldQuantity
	fieldNotes
	fieldCount
)

var fieldLabels = [fieldCount]string{"Customer", "SKU", "Quantity", "Notes"}

type ordersMsg []repository.Order

type saveDoneMsg struct{ saved bool }

type storeCountMsg int

type errMsg struct{ err error }

// New builds the app. accent, when set, retints the accent-driven styles
// (see config ui.accent); empty keeps the palette default.
func New(ctx context.Context, services Services, store *message.Store, accent string) *App {
	if accent != "" {
		setAccent(lipgloss.Color(accent))
	}
	a := &App{
		ctx:      ctx,
		services: services,
		store:    store,
	}
	// message-count indicator reads the same store the interceptor fills
	store.Subscribe(func(msgs []message.Message) {
		a.send(storeCountMsg(len(msgs)))
	})
	return a
}

// AttachProgram wires the running program so presenter calls from command
// goroutines reach the update loop. Messages sent before attachment are
// flushed in order.
func (a *App) AttachProgram(p *tea.Program) {
	a.mu.Lock()
	a.program = p
	queued := a.queued
	a.queued = nil
	a.mu.Unlock()

	for _, msg := range queued {
		p.Send(msg)
	}
}

// AttachInterceptor gives the settings keys something to toggle.
func (a *App) AttachInterceptor(it *interceptor.Interceptor) {
	a.itc = it
}

// Presenter returns the interceptor-facing presentation adapter.
func (a *App) Presenter() interceptor.Presenter {
	return presenter{app: a}
}

func (a *App) send(msg tea.Msg) {
	a.mu.Lock()
	p := a.program
	if p == nil {
		a.queued = append(a.queued, msg)
		a.mu.Unlock()
		return
	}
	a.mu.Unlock()
	p.Send(msg)
}

func (a *App) Init() tea.Cmd {
	return a.loadOrders()
}

func (a *App) loadOrders() tea.Cmd {
	return func() tea.Msg {
		list, err := a.services.Orders.Orders.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return ordersMsg(list)
	}
}

func (a *App) saveCmd() tea.Cmd {
	order := repository.Order{
		Customer: strings.TrimSpace(a.fields[fieldCustomer]),
		SKU:      strings.TrimSpace(a.fields[fieldSKU]),
		Notes:    a.fields[fieldNotes],
	}
	// a non-numeric quantity stays zero and the backend rejects it
	if q, err := strconv.ParseInt(strings.TrimSpace(a.fields[fieldQuantity]), 10, 64); err == nil {
		order.Quantity = q
	}
	return func() tea.Msg {
		saved, err := a.services.Orders.Save(a.ctx, order)
		if err != nil {
			return errMsg{err}
		}
		return saveDoneMsg{saved: saved}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		if a.modal != modalNone {
			return a.handleModalKey(m)
		}
		return a.handleEditorKey(m)
	case showAlertMsg:
		a.alert = &alertModel{headline: m.headline, detail: m.detail, dismiss: m.dismiss}
		a.modal = modalAlert
	case showDialogMsg:
		a.dialog = newDialog(m.title, m.severity, m.msgs, m.dismiss)
		a.modal = modalDialog
	case storeCountMsg:
		a.msgCount = int(m)
	case ordersMsg:
		a.orders = []repository.Order(m)
	case saveDoneMsg:
		if m.saved {
			a.status = "order saved"
			a.fields = [fieldCount]string{}
			a.focus = fieldCustomer
		} else {
			a.status = "order rejected by backend"
		}
		return a, a.loadOrders()
	case errMsg:
		a.status = "error: " + m.err.Error()
	}
	return a, nil
}

func (a *App) handleEditorKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "ctrl+t":
		if a.itc != nil {
			v := !a.itc.Settings().Intercept
			a.itc.SetIntercept(v)
			a.status = fmt.Sprintf("intercept: %v", v)
		}
		return a, nil
	case "ctrl+e":
		if a.itc != nil {
			v := !a.itc.Settings().ErrorOnly
			a.itc.SetErrorOnly(v)
			a.status = fmt.Sprintf("errors only: %v", v)
		}
		return a, nil
	}
	switch m.Type {
	case tea.KeyTab, tea.KeyDown:
		a.focus = (a.focus + 1) % fieldCount
	case tea.KeyShiftTab, tea.KeyUp:
		a.focus = (a.focus + fieldCount - 1) % fieldCount
	case tea.KeyEnter:
		a.status = "saving..."
		return a, a.saveCmd()
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		if len(a.fields[a.focus]) > 0 {
			a.fields[a.focus] = a.fields[a.focus][:len(a.fields[a.focus])-1]
		}
	case tea.KeySpace:
		a.fields[a.focus] += " "
	case tea.KeyRunes:
		a.fields[a.focus] += string(m.Runes)
	}
	return a, nil
}

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.modal {
	case modalAlert:
		switch m.String() {
		case "d":
			a.alert.expanded = !a.alert.expanded
		case "enter", "esc":
			a.closeModal(a.alert.dismiss)
		}
	case modalDialog:
		switch m.Type {
		case tea.KeyEsc, tea.KeyEnter:
			a.closeModal(a.dialog.dismiss)
		case tea.KeyUp:
			a.dialog.cursorUp()
		case tea.KeyDown:
			a.dialog.cursorDown()
		case tea.KeyBackspace, tea.KeyCtrlH:
			if len(a.dialog.query) > 0 {
				a.dialog.setQuery(a.dialog.query[:len(a.dialog.query)-1])
			}
		case tea.KeySpace:
			a.dialog.setQuery(a.dialog.query + " ")
		case tea.KeyRunes:
			a.dialog.setQuery(a.dialog.query + string(m.Runes))
		}
	}
	return a, nil
}

// closeModal clears the surface and fires the interceptor's dismissal
// callback, which releases the presentation guard.
func (a *App) closeModal(dismiss func()) {
	a.modal = modalNone
	a.alert = nil
	a.dialog = nil
	if dismiss != nil {
		dismiss()
	}
}

func (a *App) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("backtalk / order entry") + "\n\n")

	for i := 0; i < fieldCount; i++ {
		label := fmt.Sprintf("%-9s", fieldLabels[i])
		value := a.fields[i]
		if i == a.focus {
			b.WriteString(focusStyle.Render("› "+label) + value + "▏\n")
		} else {
			b.WriteString("  " + hintStyle.Render(label) + value + "\n")
		}
	}

	b.WriteString("\n" + hintStyle.Render("[enter] save  [tab] next field  [ctrl+t] intercept  [ctrl+e] errors only  [ctrl+c] quit") + "\n")

	if len(a.orders) > 0 {
		b.WriteString("\n" + titleStyle.Render("Recent orders") + "\n")
		shown := a.orders
		if len(shown) > 8 {
			shown = shown[:8]
		}
		for _, o := range shown {
			b.WriteString(fmt.Sprintf("  %s  %-16s %-12s x%d\n", o.CreatedAt.Format("02/01 15:04"), o.Customer, o.SKU, o.Quantity))
		}
	}

	b.WriteString("\n" + a.statusBar())

	if a.modal != modalNone {
		b.WriteString("\n\n" + a.renderModal())
	}
	return b.String()
}

func (a *App) statusBar() string {
	count := fmt.Sprintf("messages: %d", a.msgCount)
	if a.msgCount > 0 {
		count = warnStyle.Render(count)
	} else {
		count = hintStyle.Render(count)
	}
	if a.status == "" {
		return count
	}
	return count + hintStyle.Render("  │  ") + a.status
}

func (a *App) renderModal() string {
	switch a.modal {
	case modalAlert:
		return a.alert.render()
	case modalDialog:
		return a.dialog.render()
	}
	return ""
}
