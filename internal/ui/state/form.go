package state

import (
	"unicode/utf8"

	"github.com/atomicstack/spiris-tui/internal/entity"
)

// CollectorState is the form collector's phase.
type CollectorState int

const (
	CollectorIdle CollectorState = iota
	CollectorCollecting
	CollectorSubmitting
)

// FormBuffer accumulates confirmed field values. len(Collected) == Cursor.
type FormBuffer struct {
	Collected []string
	Cursor    int
	Live      string
}

// Collector gathers one field per confirmation. Target is the record being
// edited, or empty for a create form.
type Collector struct {
	State  CollectorState
	Kind   entity.Kind
	Target string
	Buffer FormBuffer
}

// Start discards any previous buffer and begins collecting for kind.
func (c *Collector) Start(kind entity.Kind, target string) {
	c.State = CollectorCollecting
	c.Kind = kind
	c.Target = target
	c.Buffer = FormBuffer{}
}

// Collecting reports whether keystrokes feed the live field.
func (c *Collector) Collecting() bool {
	return c.State == CollectorCollecting
}

// Field returns the field currently being typed.
func (c *Collector) Field() (entity.Field, bool) {
	fields := entity.Fields(c.Kind)
	if c.State == CollectorIdle || c.Buffer.Cursor >= len(fields) {
		return entity.Field{}, false
	}
	return fields[c.Buffer.Cursor], true
}

func (c *Collector) TypeChar(r rune) {
	if !c.Collecting() {
		return
	}
	c.Buffer.Live += string(r)
}

func (c *Collector) Backspace() {
	if !c.Collecting() || c.Buffer.Live == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(c.Buffer.Live)
	c.Buffer.Live = c.Buffer.Live[:len(c.Buffer.Live)-size]
}

// ConfirmField appends the live value verbatim and advances. It reports true
// when the last required field was confirmed; the collector is then
// Submitting and Values holds the completed form.
func (c *Collector) ConfirmField() bool {
	if !c.Collecting() {
		return false
	}
	c.Buffer.Collected = append(c.Buffer.Collected, c.Buffer.Live)
	c.Buffer.Live = ""
	c.Buffer.Cursor++
	if c.Buffer.Cursor == entity.FieldCount(c.Kind) {
		c.State = CollectorSubmitting
		return true
	}
	return false
}

// Values returns a copy of the confirmed fields.
func (c *Collector) Values() []string {
	return append([]string(nil), c.Buffer.Collected...)
}

// Reset returns to Idle with an empty buffer.
func (c *Collector) Reset() {
	c.State = CollectorIdle
	c.Target = ""
	c.Buffer = FormBuffer{}
}
