// Package contents downloads the navigation contents document and exposes
// the fetch progress as observable state.
package contents

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/navtree/internal/navtree"
)

// State is a snapshot of the fetcher. Result stays nil until a fetch
// succeeds; LastError is only set once every attempt has failed.
type State struct {
	Result    *navtree.Content
	IsLoading bool
	LastError error
}

// Fetcher loads the contents document at most once per session.
type Fetcher struct {
	src    Source
	policy RetryPolicy
	stats  *Stats
	log    *slog.Logger
	sleep  func(ctx context.Context, d time.Duration) error

	mu        sync.Mutex
	state     State
	inFlight  bool
	nextID    int
	observers map[int]func(State)
}

func NewFetcher(src Source, policy RetryPolicy, stats *Stats, log *slog.Logger) *Fetcher {
	if log == nil {
		log = slog.Default()
	}
	return &Fetcher{
		src:       src,
		policy:    policy,
		stats:     stats,
		log:       log,
		sleep:     sleepContext,
		observers: make(map[int]func(State)),
	}
}

// State returns the current snapshot.
func (f *Fetcher) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Subscribe registers fn to be called after every state change. The
// returned func removes the observer.
func (f *Fetcher) Subscribe(fn func(State)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	f.observers[id] = fn
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.observers, id)
	}
}

// Fetch downloads the contents document, retrying failed attempts per the
// retry policy. It is a no-op when a result is already held or another
// Fetch is running. Cancelling ctx aborts the current attempt or delay.
func (f *Fetcher) Fetch(ctx context.Context) {
	if _, ok := f.begin(); ok {
		f.run(ctx)
	}
}

// Start is Fetch in a new goroutine. The loading flag is set before Start
// returns, and the returned snapshot reflects it.
func (f *Fetcher) Start(ctx context.Context) State {
	st, ok := f.begin()
	if ok {
		go f.run(ctx)
	}
	return st
}

// begin claims the fetch and publishes the loading state. It reports false
// when a result is already held or a fetch is running.
func (f *Fetcher) begin() (State, bool) {
	f.mu.Lock()
	if f.state.Result != nil || f.inFlight {
		st := f.state
		f.mu.Unlock()
		return st, false
	}
	f.inFlight = true
	f.mu.Unlock()

	return f.update(func(s *State) {
		s.IsLoading = true
		s.LastError = nil
	}), true
}

func (f *Fetcher) run(ctx context.Context) {
	var lastErr error
	attempts := f.policy.Attempts()
	for attempt := range attempts {
		f.update(func(s *State) {
			s.IsLoading = true
			s.LastError = nil
		})

		content, err := f.attempt(ctx)
		if err == nil {
			f.update(func(s *State) {
				s.Result = content
				s.LastError = nil
				s.IsLoading = false
				f.inFlight = false
			})
			f.logIssues(content)
			return
		}
		lastErr = err

		remaining := attempts - attempt - 1
		f.log.Warn("contents fetch attempt failed", "attempt", attempt+1, "retries_left", remaining, "error", err)
		if remaining == 0 || !IsRetryable(err) || ctx.Err() != nil {
			break
		}
		if err := f.sleep(ctx, f.policy.Delay); err != nil {
			lastErr = err
			break
		}
	}

	f.log.Error("contents fetch failed", "attempts", attempts, "error", lastErr)
	f.update(func(s *State) {
		s.LastError = lastErr
		s.IsLoading = false
		f.inFlight = false
	})
}

func (f *Fetcher) attempt(ctx context.Context) (*navtree.Content, error) {
	start := time.Now()
	content, err := f.src.Get(ctx)
	if f.stats != nil {
		f.stats.Record(time.Since(start), err != nil)
	}
	return content, err
}

// update applies fn under the lock and notifies observers when the
// visible state changed. It returns the new state.
func (f *Fetcher) update(fn func(s *State)) State {
	f.mu.Lock()
	before := f.state
	fn(&f.state)
	after := f.state
	var observers []func(State)
	if changed(before, after) {
		for _, o := range f.observers {
			observers = append(observers, o)
		}
	}
	f.mu.Unlock()

	for _, o := range observers {
		o(after)
	}
	return after
}

func changed(a, b State) bool {
	return a.Result != b.Result ||
		a.IsLoading != b.IsLoading ||
		(a.LastError == nil) != (b.LastError == nil)
}

func (f *Fetcher) logIssues(c *navtree.Content) {
	issues := navtree.Check(c)
	for _, issue := range issues {
		f.log.Warn("contents issue", "kind", issue.Kind, "key", issue.Key, "ref", issue.Ref)
	}
	f.log.Info("contents loaded", "pages", len(c.Pages), "roots", len(c.RootLevelKeys), "issues", len(issues))
}

// Content returns the fetched document, or nil.
func (f *Fetcher) Content() *navtree.Content {
	return f.State().Result
}

// Tree builds the navigation tree from the fetched document. It is empty
// until a fetch has succeeded.
func (f *Fetcher) Tree() []*navtree.TreeNode {
	return navtree.BuildTree(f.Content())
}

// ActiveKeys resolves the keys to expand for the given route path.
func (f *Fetcher) ActiveKeys(path string) navtree.KeySet {
	c := f.Content()
	if c == nil {
		return navtree.KeySet{}
	}
	return navtree.ActiveKeys(c.Pages, path)
}
