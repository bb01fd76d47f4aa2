package ui

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/atomicstack/spiris-tui/internal/credential"
	"github.com/atomicstack/spiris-tui/internal/entity"
	"github.com/atomicstack/spiris-tui/internal/gateway"
	"github.com/atomicstack/spiris-tui/internal/oauth"
)

var testNow = time.Date(2030, 1, 2, 12, 0, 0, 0, time.UTC)

type listCall struct {
	kind entity.Kind
	page int
}

type writeCall struct {
	kind    entity.Kind
	id      string
	payload entity.Payload
}

type fakeGateway struct {
	mu        sync.Mutex
	items     map[entity.Kind][]entity.Item
	listErr   error
	createErr error
	lists     []listCall
	creates   []writeCall
	updates   []writeCall
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{items: map[entity.Kind][]entity.Item{}}
}

func (f *fakeGateway) List(_ context.Context, kind entity.Kind, pageSize, page int) ([]entity.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, listCall{kind: kind, page: page})
	if f.listErr != nil {
		return nil, f.listErr
	}
	all := f.items[kind]
	start := (page - 1) * pageSize
	if start >= len(all) {
		return []entity.Item{}, nil
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return entity.CloneItems(all[start:end]), nil
}

func (f *fakeGateway) Create(_ context.Context, kind entity.Kind, payload entity.Payload) (entity.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates = append(f.creates, writeCall{kind: kind, payload: payload})
	if f.createErr != nil {
		return entity.Item{}, f.createErr
	}
	return entity.Item{ID: "new", Kind: kind}, nil
}

func (f *fakeGateway) Update(_ context.Context, kind entity.Kind, id string, payload entity.Payload) (entity.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, writeCall{kind: kind, id: id, payload: payload})
	return entity.Item{ID: id, Kind: kind}, nil
}

func (f *fakeGateway) listCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.lists)
}

type fakeAuthorizer struct {
	calls int
	err   error
}

func (a *fakeAuthorizer) Start() (oauth.Handle, error) {
	a.calls++
	if a.err != nil {
		return oauth.Handle{}, a.err
	}
	return oauth.Handle{URL: "https://identity.example/authorize?state=s1", State: "s1"}, nil
}

type memoryStore struct {
	cred *credential.Credential
}

func (s *memoryStore) Load() (credential.Credential, error) {
	if s.cred == nil {
		return credential.Credential{}, credential.ErrNotFound
	}
	return *s.cred, nil
}

func (s *memoryStore) Save(c credential.Credential) error {
	s.cred = &c
	return nil
}

type testEnv struct {
	gw      *fakeGateway
	auth    *fakeAuthorizer
	store   *memoryStore
	copied  []string
	harness *Harness
}

func newTestEnv(t *testing.T, authenticated bool) *testEnv {
	t.Helper()
	env := &testEnv{gw: newFakeGateway(), auth: &fakeAuthorizer{}, store: &memoryStore{}}
	opts := Options{
		Width:      120,
		Height:     40,
		Store:      env.store,
		Authorizer: env.auth,
		Connect:    func(credential.Credential) gateway.Gateway { return env.gw },
		Clipboard: func(s string) error {
			env.copied = append(env.copied, s)
			return nil
		},
		Now: func() time.Time { return testNow },
	}
	if authenticated {
		opts.Credential = &credential.Credential{AccessToken: "tok", Expiry: testNow.Add(time.Hour)}
	}
	env.harness = NewHarness(NewModel(opts))
	return env
}

func (e *testEnv) model() *Model {
	return e.harness.Model()
}

func customerItems(n int) []entity.Item {
	items := make([]entity.Item, n)
	for i := range items {
		id := fmt.Sprintf("c%d", i+1)
		name := fmt.Sprintf("Customer %d", i+1)
		items[i] = entity.Item{
			ID:      id,
			Kind:    entity.KindCustomer,
			Label:   name,
			Columns: []string{fmt.Sprint(i + 1), name, id + "@example.com"},
			Details: []entity.Detail{{Label: "Name", Value: name}},
		}
	}
	return items
}
