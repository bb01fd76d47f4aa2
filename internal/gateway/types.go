package gateway

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/atomicstack/spiris-tui/internal/entity"
)

type listResponse struct {
	Meta struct {
		CurrentPage          int `json:"CurrentPage"`
		PageSize             int `json:"PageSize"`
		TotalNumberOfPages   int `json:"TotalNumberOfPages"`
		TotalNumberOfResults int `json:"TotalNumberOfResults"`
	} `json:"Meta"`
	Data json.RawMessage `json:"Data"`
}

type customer struct {
	ID             string  `json:"Id,omitempty"`
	CustomerNumber string  `json:"CustomerNumber,omitempty"`
	Name           *string `json:"Name,omitempty"`
	EmailAddress   *string `json:"EmailAddress,omitempty"`
	Telephone      *string `json:"Telephone,omitempty"`
	WwwAddress     *string `json:"WwwAddress,omitempty"`
	IsActive       *bool   `json:"IsActive,omitempty"`
}

type invoiceRow struct {
	Text      *string  `json:"Text,omitempty"`
	UnitPrice *float64 `json:"UnitPrice,omitempty"`
	Quantity  *float64 `json:"Quantity,omitempty"`
}

type invoice struct {
	ID            string       `json:"Id,omitempty"`
	InvoiceNumber int          `json:"InvoiceNumber,omitempty"`
	CustomerID    *string      `json:"CustomerId,omitempty"`
	CustomerName  string       `json:"InvoiceCustomerName,omitempty"`
	InvoiceDate   *time.Time   `json:"InvoiceDate,omitempty"`
	TotalAmount   float64      `json:"TotalAmount,omitempty"`
	Currency      string       `json:"CurrencyCode,omitempty"`
	Rows          []invoiceRow `json:"Rows,omitempty"`
}

type article struct {
	ID       string   `json:"Id,omitempty"`
	Number   *string  `json:"Number,omitempty"`
	Name     *string  `json:"Name,omitempty"`
	NetPrice *float64 `json:"NetPrice,omitempty"`
	IsActive *bool    `json:"IsActive,omitempty"`
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func optional(p entity.Payload, key string) *string {
	v, ok := p.Get(key)
	if !ok || !v.Present {
		return nil
	}
	text := v.Text
	return &text
}

func number(p entity.Payload, key string) (*float64, error) {
	if v, ok := p.Get(key); !ok || !v.Present || v.Text == "" {
		return nil, nil
	}
	n, err := p.Number(key)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func money(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}

func (c customer) item() entity.Item {
	label := str(c.Name)
	if label == "" {
		label = c.ID
	}
	return entity.Item{
		ID:      c.ID,
		Kind:    entity.KindCustomer,
		Label:   label,
		Columns: []string{c.CustomerNumber, str(c.Name), str(c.EmailAddress)},
		Details: []entity.Detail{
			{Label: "ID", Value: c.ID},
			{Label: "Number", Value: c.CustomerNumber},
			{Label: "Name", Value: str(c.Name)},
			{Label: "Email", Value: str(c.EmailAddress)},
			{Label: "Phone", Value: str(c.Telephone)},
			{Label: "Website", Value: str(c.WwwAddress)},
		},
	}
}

func (inv invoice) item() entity.Item {
	num := ""
	if inv.InvoiceNumber != 0 {
		num = fmt.Sprintf("%d", inv.InvoiceNumber)
	}
	date := ""
	if inv.InvoiceDate != nil {
		date = inv.InvoiceDate.Format("2006-01-02")
	}
	amount := strings.TrimSpace(money(inv.TotalAmount) + " " + inv.Currency)
	label := inv.CustomerName
	if label == "" {
		label = inv.ID
	}
	details := []entity.Detail{
		{Label: "ID", Value: inv.ID},
		{Label: "Number", Value: num},
		{Label: "Customer", Value: inv.CustomerName},
		{Label: "Customer ID", Value: str(inv.CustomerID)},
		{Label: "Date", Value: date},
		{Label: "Total", Value: amount},
	}
	for i, row := range inv.Rows {
		price := ""
		if row.UnitPrice != nil {
			price = money(*row.UnitPrice)
		}
		details = append(details, entity.Detail{Label: fmt.Sprintf("Row %d", i+1), Value: strings.TrimSpace(str(row.Text) + " " + price)})
	}
	return entity.Item{
		ID:      inv.ID,
		Kind:    entity.KindInvoice,
		Label:   label,
		Columns: []string{num, date, inv.CustomerName, amount},
		Details: details,
	}
}

func (a article) item() entity.Item {
	price := ""
	if a.NetPrice != nil {
		price = money(*a.NetPrice)
	}
	label := str(a.Name)
	if label == "" {
		label = a.ID
	}
	return entity.Item{
		ID:      a.ID,
		Kind:    entity.KindArticle,
		Label:   label,
		Columns: []string{str(a.Number), str(a.Name), price},
		Details: []entity.Detail{
			{Label: "ID", Value: a.ID},
			{Label: "Number", Value: str(a.Number)},
			{Label: "Name", Value: str(a.Name)},
			{Label: "Net price", Value: price},
		},
	}
}

func customerFromPayload(p entity.Payload, create bool) customer {
	c := customer{
		Name:         optional(p, "name"),
		EmailAddress: optional(p, "email"),
		Telephone:    optional(p, "phone"),
		WwwAddress:   optional(p, "website"),
	}
	if create {
		active := true
		c.IsActive = &active
	}
	return c
}

func invoiceFromPayload(p entity.Payload, now time.Time) (invoice, error) {
	amount, err := number(p, "amount")
	if err != nil {
		return invoice{}, err
	}
	inv := invoice{CustomerID: optional(p, "customer_id")}
	text := optional(p, "description")
	if text != nil || amount != nil {
		qty := 1.0
		inv.Rows = []invoiceRow{{Text: text, UnitPrice: amount, Quantity: &qty}}
	}
	if !now.IsZero() {
		day := now.UTC().Truncate(24 * time.Hour)
		inv.InvoiceDate = &day
	}
	return inv, nil
}

func articleFromPayload(p entity.Payload, create bool) (article, error) {
	price, err := number(p, "unit_price")
	if err != nil {
		return article{}, err
	}
	a := article{
		Number:   optional(p, "number"),
		Name:     optional(p, "name"),
		NetPrice: price,
	}
	if create {
		active := true
		a.IsActive = &active
	}
	return a, nil
}
