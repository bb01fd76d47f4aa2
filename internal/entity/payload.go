package entity

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrFieldCount reports a form submitted with the wrong number of values.
	ErrFieldCount = errors.New("wrong number of form fields")
	// ErrInvalidField reports a value that failed validation.
	ErrInvalidField = errors.New("invalid field")
)

// Value is a single payload entry. Present is false when the field maps to
// "no value" and must be omitted from the request.
type Value struct {
	Key     string
	Text    string
	Present bool
}

// Payload is the kind-tagged result of mapping a completed form.
type Payload struct {
	Kind   Kind
	Values []Value
}

// Get returns the value stored under key.
func (p Payload) Get(key string) (Value, bool) {
	for _, v := range p.Values {
		if v.Key == key {
			return v, true
		}
	}
	return Value{}, false
}

// Text returns the text for key, or "" when the field is absent.
func (p Payload) Text(key string) string {
	v, ok := p.Get(key)
	if !ok || !v.Present {
		return ""
	}
	return v.Text
}

// Number parses key as a decimal amount. Commas are accepted as decimal
// separators.
func (p Payload) Number(key string) (float64, error) {
	raw := strings.TrimSpace(p.Text(key))
	raw = strings.ReplaceAll(raw, ",", ".")
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number (got %q)", ErrInvalidField, key, p.Text(key))
	}
	return n, nil
}

// BuildPayload maps collected form values onto a payload for kind. Optional
// fields submitted empty become absent; everything else is kept verbatim.
func BuildPayload(kind Kind, collected []string) (Payload, error) {
	defs := fields[kind]
	if len(collected) != len(defs) {
		return Payload{}, fmt.Errorf("%w: %s needs %d, got %d", ErrFieldCount, kind, len(defs), len(collected))
	}
	p := Payload{Kind: kind, Values: make([]Value, len(defs))}
	for i, f := range defs {
		text := collected[i]
		present := !(f.Optional && text == "")
		p.Values[i] = Value{Key: f.Key, Text: text, Present: present}
	}
	if err := validate(p); err != nil {
		return Payload{}, err
	}
	return p, nil
}

// BuildPatch maps collected values for an edit form. Every empty field is
// absent so the service keeps the stored value.
func BuildPatch(kind Kind, collected []string) (Payload, error) {
	defs := fields[kind]
	if len(collected) != len(defs) {
		return Payload{}, fmt.Errorf("%w: %s needs %d, got %d", ErrFieldCount, kind, len(defs), len(collected))
	}
	p := Payload{Kind: kind, Values: make([]Value, len(defs))}
	for i, f := range defs {
		text := collected[i]
		p.Values[i] = Value{Key: f.Key, Text: text, Present: text != ""}
	}
	for _, key := range numericKeys(kind) {
		if p.Text(key) == "" {
			continue
		}
		if _, err := p.Number(key); err != nil {
			return Payload{}, err
		}
	}
	return p, nil
}

func numericKeys(kind Kind) []string {
	switch kind {
	case KindInvoice:
		return []string{"amount"}
	case KindArticle:
		return []string{"unit_price"}
	}
	return nil
}

func validate(p Payload) error {
	required := func(key, label string) error {
		if strings.TrimSpace(p.Text(key)) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidField, label)
		}
		return nil
	}
	switch p.Kind {
	case KindCustomer:
		return required("name", "name")
	case KindInvoice:
		if err := required("customer_id", "customer ID"); err != nil {
			return err
		}
		_, err := p.Number("amount")
		return err
	case KindArticle:
		if err := required("name", "name"); err != nil {
			return err
		}
		_, err := p.Number("unit_price")
		return err
	}
	return nil
}
