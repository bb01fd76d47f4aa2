package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/atomicstack/spiris-tui/internal/credential"
	"github.com/atomicstack/spiris-tui/internal/entity"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	fixed := time.Date(2030, 3, 4, 15, 0, 0, 0, time.UTC)
	return NewClient(Options{BaseURL: srv.URL + "/", Timeout: time.Second, Now: func() time.Time { return fixed }}, credential.Credential{AccessToken: "tok"})
}

func TestListCustomersSendsPagingAndToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/customers" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Fatalf("expected bearer token, got %q", got)
		}
		if r.URL.Query().Get("$pagesize") != "50" || r.URL.Query().Get("$page") != "1" {
			t.Fatalf("unexpected query %s", r.URL.RawQuery)
		}
		io.WriteString(w, `{"Meta":{"CurrentPage":1},"Data":[{"Id":"c1","CustomerNumber":"7","Name":"Acme","EmailAddress":"a@acme.com"}]}`)
	})
	items, err := c.List(context.Background(), entity.KindCustomer, 50, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].ID != "c1" || items[0].Label != "Acme" {
		t.Fatalf("unexpected items %#v", items)
	}
	if items[0].Kind != entity.KindCustomer || items[0].Columns[2] != "a@acme.com" {
		t.Fatalf("unexpected item mapping %#v", items[0])
	}
}

func TestListEmptyData(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"Meta":{},"Data":[]}`)
	})
	items, err := c.List(context.Background(), entity.KindArticle, 50, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", items)
	}
}

func TestListErrorStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"Message":"token expired"}`)
	})
	_, err := c.List(context.Background(), entity.KindInvoice, 50, 1)
	var gwErr *Error
	if !errors.As(err, &gwErr) {
		t.Fatalf("expected gateway error, got %v", err)
	}
	if gwErr.Status != http.StatusUnauthorized || gwErr.Message != "token expired" || !gwErr.Unauthorized() {
		t.Fatalf("unexpected error %#v", gwErr)
	}
}

func TestListDecodeFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"Data":"nope"}`)
	})
	if _, err := c.List(context.Background(), entity.KindCustomer, 50, 1); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestCreateCustomerOmitsAbsentWebsite(t *testing.T) {
	var body map[string]interface{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/customers" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		io.WriteString(w, `{"Id":"new-1","Name":"Acme"}`)
	})
	payload, err := entity.BuildPayload(entity.KindCustomer, []string{"Acme", "a@acme.com", "", ""})
	if err != nil {
		t.Fatalf("payload: %v", err)
	}
	item, err := c.Create(context.Background(), entity.KindCustomer, payload)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if item.ID != "new-1" {
		t.Fatalf("expected created id, got %q", item.ID)
	}
	if _, ok := body["WwwAddress"]; ok {
		t.Fatalf("expected website omitted, got %#v", body)
	}
	if phone, ok := body["Telephone"]; !ok || phone != "" {
		t.Fatalf("expected empty phone kept, got %#v", body)
	}
	if body["IsActive"] != true {
		t.Fatalf("expected IsActive true, got %#v", body["IsActive"])
	}
}

func TestCreateInvoiceBuildsRow(t *testing.T) {
	var body invoice
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/customerinvoices" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		io.WriteString(w, `{"Id":"inv-1","InvoiceNumber":12,"TotalAmount":1000}`)
	})
	payload, err := entity.BuildPayload(entity.KindInvoice, []string{"c1", "Consulting", "1000"})
	if err != nil {
		t.Fatalf("payload: %v", err)
	}
	item, err := c.Create(context.Background(), entity.KindInvoice, payload)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if item.ID != "inv-1" || item.Columns[0] != "12" {
		t.Fatalf("unexpected item %#v", item)
	}
	if str(body.CustomerID) != "c1" || len(body.Rows) != 1 || *body.Rows[0].UnitPrice != 1000 {
		t.Fatalf("unexpected body %#v", body)
	}
	if body.InvoiceDate == nil || body.InvoiceDate.Format("2006-01-02") != "2030-03-04" {
		t.Fatalf("expected invoice date stamped, got %v", body.InvoiceDate)
	}
}

func TestUpdateArticleUsesPut(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/articles/a%2F1" && r.URL.Path != "/articles/a/1" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		io.WriteString(w, `{"Id":"a/1","Name":"Bolt","NetPrice":2.5}`)
	})
	payload, err := entity.BuildPatch(entity.KindArticle, []string{"", "Bolt", "2.5"})
	if err != nil {
		t.Fatalf("payload: %v", err)
	}
	item, err := c.Update(context.Background(), entity.KindArticle, "a/1", payload)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if item.Label != "Bolt" || item.Columns[2] != "2.50" {
		t.Fatalf("unexpected item %#v", item)
	}
	if _, err := c.Update(context.Background(), entity.KindArticle, " ", payload); err == nil {
		t.Fatalf("expected error for missing id")
	}
}
