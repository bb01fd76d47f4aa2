package backend

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/atomicstack/spiris-tui/internal/credential"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindCredential Kind = iota
	KindRefreshTick
)

func (k Kind) String() string {
	switch k {
	case KindCredential:
		return "credential"
	case KindRefreshTick:
		return "refresh-tick"
	}
	return "unknown"
}

// Event conveys a poll outcome. Data is a credential.Credential for
// KindCredential and nil for KindRefreshTick.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

// Options configures the pollers. A zero interval disables its poller.
// WatchCredential sets whether credential polling starts active.
type Options struct {
	Store           credential.Store
	CredentialPoll  time.Duration
	RefreshInterval time.Duration
	WatchCredential bool
}

// Watcher polls the credential store and emits periodic refresh ticks.
type Watcher struct {
	store credential.Store

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	watchCr bool

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts the pollers described by opts.
func NewWatcher(opts Options) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		store:   opts.Store,
		ctx:     ctx,
		cancel:  cancel,
		watchCr: opts.WatchCredential,
		events:  make(chan Event, 16),
	}

	if opts.Store != nil && opts.CredentialPoll > 0 {
		w.startCredentialPoller(opts.CredentialPoll)
	}
	if opts.RefreshInterval > 0 {
		w.startRefreshTicker(opts.RefreshInterval)
	}

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// SetWatchCredential enables or pauses credential polling. The session turns
// it off once authenticated so a valid credential is not re-installed.
func (w *Watcher) SetWatchCredential(enabled bool) {
	w.mu.Lock()
	w.watchCr = enabled
	w.mu.Unlock()
}

func (w *Watcher) watchingCredential() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.watchCr
}

// Stop cancels the watcher. Pollers exit after their current poll completes;
// use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until all poller goroutines have exited and the events channel
// is closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) startCredentialPoller(interval time.Duration) {
	w.wg.Add(1)
	go w.poll(interval, func() (Event, bool) {
		if !w.watchingCredential() {
			return Event{}, false
		}
		cred, err := w.store.Load()
		if errors.Is(err, credential.ErrNotFound) {
			return Event{}, false
		}
		if err != nil {
			return Event{Kind: KindCredential, Err: err}, true
		}
		return Event{Kind: KindCredential, Data: cred}, true
	})
}

func (w *Watcher) startRefreshTicker(interval time.Duration) {
	w.wg.Add(1)
	go w.poll(interval, func() (Event, bool) {
		return Event{Kind: KindRefreshTick}, true
	})
}

func (w *Watcher) poll(interval time.Duration, fetch func() (Event, bool)) {
	defer w.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			evt, ok := fetch()
			if !ok {
				continue
			}
			select {
			case <-w.ctx.Done():
				return
			case w.events <- evt:
			}
		}
	}
}
