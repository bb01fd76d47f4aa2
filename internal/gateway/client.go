package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/spiris-tui/internal/credential"
	"github.com/atomicstack/spiris-tui/internal/entity"
)

// DefaultBaseURL is the production API root.
const DefaultBaseURL = "https://eaccountingapi.vismaonline.com/v2"

const maxErrorBody = 4 << 10

// Options configures new clients.
type Options struct {
	BaseURL string
	Timeout time.Duration
	// Now stamps new invoices; defaults to time.Now.
	Now func() time.Time
}

// Client is an HTTP Gateway bound to one credential. It is immutable once
// built, so a copy can be handed to background work safely.
type Client struct {
	base  string
	token string
	http  *http.Client
	now   func() time.Time
}

// NewClient returns a client authorised with cred.
func NewClient(opts Options, cred credential.Credential) *Client {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Client{
		base:  base,
		token: cred.AccessToken,
		http:  &http.Client{Timeout: timeout},
		now:   now,
	}
}

// NewConnector returns a Connector producing clients configured with opts.
func NewConnector(opts Options) Connector {
	return func(cred credential.Credential) Gateway {
		return NewClient(opts, cred)
	}
}

func endpoint(kind entity.Kind) (string, error) {
	switch kind {
	case entity.KindCustomer:
		return "customers", nil
	case entity.KindInvoice:
		return "customerinvoices", nil
	case entity.KindArticle:
		return "articles", nil
	default:
		return "", fmt.Errorf("unsupported entity kind %d", kind)
	}
}

// List fetches one page. Pages are 1-based.
func (c *Client) List(ctx context.Context, kind entity.Kind, pageSize, page int) ([]entity.Item, error) {
	path, err := endpoint(kind)
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	if pageSize > 0 {
		q.Set("$pagesize", strconv.Itoa(pageSize))
	}
	if page > 0 {
		q.Set("$page", strconv.Itoa(page))
	}
	var resp listResponse
	if err := c.do(ctx, http.MethodGet, path, q, nil, &resp); err != nil {
		return nil, fmt.Errorf("list %s: %w", kind.Plural(), err)
	}
	items, err := decodeItems(kind, resp.Data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", kind.Plural(), err)
	}
	return items, nil
}

// Create posts a new record.
func (c *Client) Create(ctx context.Context, kind entity.Kind, payload entity.Payload) (entity.Item, error) {
	path, err := endpoint(kind)
	if err != nil {
		return entity.Item{}, err
	}
	body, err := c.body(kind, payload, true)
	if err != nil {
		return entity.Item{}, err
	}
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, path, nil, body, &raw); err != nil {
		return entity.Item{}, fmt.Errorf("create %s: %w", kind, err)
	}
	return decodeItem(kind, raw)
}

// Update replaces the fields present in payload on record id.
func (c *Client) Update(ctx context.Context, kind entity.Kind, id string, payload entity.Payload) (entity.Item, error) {
	path, err := endpoint(kind)
	if err != nil {
		return entity.Item{}, err
	}
	if strings.TrimSpace(id) == "" {
		return entity.Item{}, fmt.Errorf("update %s: missing id", kind)
	}
	body, err := c.body(kind, payload, false)
	if err != nil {
		return entity.Item{}, err
	}
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPut, path+"/"+url.PathEscape(id), nil, body, &raw); err != nil {
		return entity.Item{}, fmt.Errorf("update %s %s: %w", kind, id, err)
	}
	return decodeItem(kind, raw)
}

func (c *Client) body(kind entity.Kind, payload entity.Payload, create bool) (interface{}, error) {
	switch kind {
	case entity.KindCustomer:
		return customerFromPayload(payload, create), nil
	case entity.KindInvoice:
		var now time.Time
		if create {
			now = c.now()
		}
		return invoiceFromPayload(payload, now)
	case entity.KindArticle:
		return articleFromPayload(payload, create)
	}
	return nil, fmt.Errorf("unsupported entity kind %d", kind)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out interface{}) error {
	u := c.base + "/" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &Error{Status: resp.StatusCode, Message: errorMessage(data)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorMessage extracts the service's Message field, falling back to the raw
// body.
func errorMessage(data []byte) string {
	var payload struct {
		Message          string `json:"Message"`
		DeveloperMessage string `json:"DeveloperErrorMessage"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.DeveloperMessage != "" {
			return payload.DeveloperMessage
		}
	}
	return strings.TrimSpace(string(data))
}

func decodeItems(kind entity.Kind, data json.RawMessage) ([]entity.Item, error) {
	if len(data) == 0 || string(data) == "null" {
		return []entity.Item{}, nil
	}
	switch kind {
	case entity.KindCustomer:
		var rows []customer
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, err
		}
		items := make([]entity.Item, 0, len(rows))
		for _, r := range rows {
			items = append(items, r.item())
		}
		return items, nil
	case entity.KindInvoice:
		var rows []invoice
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, err
		}
		items := make([]entity.Item, 0, len(rows))
		for _, r := range rows {
			items = append(items, r.item())
		}
		return items, nil
	case entity.KindArticle:
		var rows []article
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, err
		}
		items := make([]entity.Item, 0, len(rows))
		for _, r := range rows {
			items = append(items, r.item())
		}
		return items, nil
	}
	return nil, fmt.Errorf("unsupported entity kind %d", kind)
}

func decodeItem(kind entity.Kind, data json.RawMessage) (entity.Item, error) {
	if len(data) == 0 {
		return entity.Item{Kind: kind}, nil
	}
	items, err := decodeItems(kind, json.RawMessage("["+string(data)+"]"))
	if err != nil {
		return entity.Item{}, fmt.Errorf("decode %s: %w", kind, err)
	}
	return items[0], nil
}
