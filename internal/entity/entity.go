package entity

import "strings"

// Kind identifies a record category managed by the accounting service.
type Kind int

const (
	KindCustomer Kind = iota
	KindInvoice
	KindArticle
)

func (k Kind) String() string {
	switch k {
	case KindCustomer:
		return "customer"
	case KindInvoice:
		return "invoice"
	case KindArticle:
		return "article"
	default:
		return "unknown"
	}
}

// Plural returns the lower-case plural noun, e.g. "customers".
func (k Kind) Plural() string {
	return k.String() + "s"
}

// Title returns the capitalised plural noun used in headers.
func (k Kind) Title() string {
	p := k.Plural()
	if p == "" {
		return p
	}
	return strings.ToUpper(p[:1]) + p[1:]
}

// Noun returns the capitalised singular noun, e.g. "Customer".
func (k Kind) Noun() string {
	s := k.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// Field describes one input of a create/edit form.
type Field struct {
	Key      string
	Label    string
	Optional bool
}

var fields = map[Kind][]Field{
	KindCustomer: {
		{Key: "name", Label: "Name"},
		{Key: "email", Label: "Email"},
		{Key: "phone", Label: "Phone"},
		{Key: "website", Label: "Website", Optional: true},
	},
	KindInvoice: {
		{Key: "customer_id", Label: "Customer ID"},
		{Key: "description", Label: "Description"},
		{Key: "amount", Label: "Amount"},
	},
	KindArticle: {
		{Key: "number", Label: "Article number"},
		{Key: "name", Label: "Name"},
		{Key: "unit_price", Label: "Unit price"},
	},
}

// Fields returns the ordered form fields for kind.
func Fields(kind Kind) []Field {
	src := fields[kind]
	dup := make([]Field, len(src))
	copy(dup, src)
	return dup
}

// FieldCount is the number of confirmations required to complete a form.
func FieldCount(kind Kind) int {
	return len(fields[kind])
}

// Detail is a labelled value shown on the detail screen.
type Detail struct {
	Label string
	Value string
}

// Item is a record returned by the gateway. ID is opaque and stable across
// reloads; screens refer to records by ID, never by index.
type Item struct {
	ID      string
	Kind    Kind
	Label   string
	Columns []string
	Details []Detail
}

// CloneItems produces a shallow copy of the provided items.
func CloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}
