package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/jask/storefront/internal/model"
)

// form is the state shared by both checkout steps. The presenter hands it
// every failing field; only fields the user has touched are shown.
type form struct {
	fields        []model.Field
	errs          model.Errors
	touched       map[model.Field]bool
	submitEnabled bool
	status        string
}

func newForm(fields ...model.Field) form {
	return form{fields: fields, touched: map[model.Field]bool{}}
}

func (f *form) SetErrors(errs model.Errors)   { f.errs = errs }
func (f *form) SetSubmitEnabled(enabled bool) { f.submitEnabled = enabled }
func (f *form) SetStatus(msg string)          { f.status = msg }

func (f *form) ResetTouched() {
	f.touched = map[model.Field]bool{}
}

func (f *form) touch(field model.Field) { f.touched[field] = true }

// blur marks field touched when the user leaves it with something typed.
func (f *form) blur(field model.Field, value string) {
	if !model.Blank(value) {
		f.touch(field)
	}
}

func (f *form) touchedFields() []model.Field {
	var out []model.Field
	for _, field := range f.fields {
		if f.touched[field] {
			out = append(out, field)
		}
	}
	return out
}

// VisibleErrors returns the messages of touched failing fields in field order.
func (f *form) VisibleErrors() []string {
	touched := f.touchedFields()
	shown := f.errs.Only(touched...)
	var out []string
	for _, field := range touched {
		if msg, ok := shown[field]; ok {
			out = append(out, msg)
		}
	}
	return out
}

// errorLine reads as one sentence, e.g. "Please enter an email and enter a
// phone number".
func (f *form) errorLine() string {
	msgs := f.VisibleErrors()
	if len(msgs) == 0 {
		return ""
	}
	return "Please " + strings.Join(msgs, " and ")
}

func (f *form) footer(submit string) string {
	var b strings.Builder
	if line := f.errorLine(); line != "" {
		b.WriteString(errorStyle.Render(line) + "\n")
	}
	if f.status != "" {
		b.WriteString(warningStyle.Render(f.status) + "\n")
	}
	if f.submitEnabled {
		b.WriteString(cursorStyle.Render("[enter] " + submit))
	} else {
		b.WriteString(disabledStyle.Render("[enter] " + submit))
	}
	return b.String()
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Prompt = ""
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}
