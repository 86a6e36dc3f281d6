package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/nward/backtalk/internal/message"
)

// alertModel is the single-message surface: generic headline, the concrete
// message text behind a detail toggle, one dismissal action.
type alertModel struct {
	headline string
	detail   string
	expanded bool
	dismiss  func()
}

// dialogModel is the multi-message surface. The row list is rebuilt from the
// presented batch on every open; the bordered shell styles live in theme.go
// and are reused.
type dialogModel struct {
	title    string
	severity message.Severity
	rows     []message.Message
	filtered []message.Message
	query    string
	cursor   int
	dismiss  func()
}

func newDialog(title string, severity message.Severity, msgs []message.Message, dismiss func()) *dialogModel {
	d := &dialogModel{
		title:    title,
		severity: severity,
		rows:     append([]message.Message(nil), msgs...),
		dismiss:  dismiss,
	}
	d.rebuild()
	return d
}

func (d *dialogModel) setQuery(q string) {
	d.query = q
	d.rebuild()
	d.cursor = 0
}

// rebuild ranks rows against the query. Substring hits sort first, the rest
// by edit distance of the query against the message text, original order as
// tiebreak. An empty query keeps backend order.
func (d *dialogModel) rebuild() {
	q := strings.ToLower(strings.TrimSpace(d.query))
	if q == "" {
		d.filtered = append([]message.Message(nil), d.rows...)
		return
	}

	type scored struct {
		msg   message.Message
		score int
		index int
	}
	ranked := make([]scored, 0, len(d.rows))
	for i, m := range d.rows {
		text := strings.ToLower(m.Text)
		score := levenshtein.ComputeDistance(q, text)
		if strings.Contains(text, q) || strings.Contains(strings.ToLower(m.AdditionalText), q) {
			score = -1
		}
		ranked = append(ranked, scored{msg: m, score: score, index: i})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score < ranked[j].score
		}
		return ranked[i].index < ranked[j].index
	})
	d.filtered = make([]message.Message, 0, len(ranked))
	for _, r := range ranked {
		d.filtered = append(d.filtered, r.msg)
	}
}

func (d *dialogModel) cursorUp() {
	if d.cursor > 0 {
		d.cursor--
	}
}

func (d *dialogModel) cursorDown() {
	if d.cursor < len(d.filtered)-1 {
		d.cursor++
	}
}

func severityIcon(s message.Severity) string {
	switch s {
	case message.SeverityError:
		return errorStyle.Render("✗")
	case message.SeverityWarning:
		return warnStyle.Render("!")
	case message.SeveritySuccess:
		return okStyle.Render("✓")
	default:
		return infoStyle.Render("i")
	}
}

func (d *dialogModel) render() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(d.title))
	b.WriteString("\n")
	if d.query != "" {
		b.WriteString(hintStyle.Render("filter: ") + d.query + "\n")
	}
	for i, m := range d.filtered {
		marker := " "
		if i == d.cursor {
			marker = "▶"
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", marker, severityIcon(m.Severity), m.Text))
		if m.AdditionalText != "" {
			b.WriteString("    " + detailStyle.Render(m.AdditionalText) + "\n")
		}
	}
	b.WriteString(hintStyle.Render("type to filter  [enter/esc] close"))

	shell := warnBorder
	if d.severity == message.SeverityError {
		shell = errorBorder
	}
	return shell.Render(b.String())
}

func (a *alertModel) render() string {
	var b strings.Builder
	b.WriteString(errorStyle.Bold(true).Render(a.headline))
	b.WriteString("\n")
	if a.expanded {
		b.WriteString(detailStyle.Render(a.detail) + "\n")
		b.WriteString(hintStyle.Render("[d] hide details  [enter/esc] close"))
	} else {
		b.WriteString(hintStyle.Render("[d] show details  [enter/esc] close"))
	}
	return errorBorder.Render(b.String())
}
