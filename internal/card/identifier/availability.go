package identifier

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/janisto/cardfolio/internal/platform/auth"
	applog "github.com/janisto/cardfolio/internal/platform/logging"
)

// DefaultQuietPeriod is how long input must stay unchanged before a lookup runs.
const DefaultQuietPeriod = 500 * time.Millisecond

// Lookup reports whether a username already belongs to some profile.
type Lookup interface {
	UsernameTaken(ctx context.Context, cred auth.Credential, username string) (bool, error)
}

// LookupFunc adapts a function to Lookup.
type LookupFunc func(ctx context.Context, cred auth.Credential, username string) (bool, error)

// UsernameTaken calls f.
func (f LookupFunc) UsernameTaken(ctx context.Context, cred auth.Credential, username string) (bool, error) {
	return f(ctx, cred, username)
}

// Result is the outcome of an availability check.
type Result struct {
	Candidate string
	Available bool
	// Checked is false when the answer was known without a lookup.
	Checked bool
}

// Check decides whether candidate may be used by the owner of current.
// A blank candidate and the caller's own username are always available.
// A failed lookup is logged and treated as available so editing never blocks.
func Check(ctx context.Context, lookup Lookup, cred auth.Credential, candidate, current string) Result {
	if candidate == "" || candidate == current {
		return Result{Candidate: candidate, Available: true}
	}
	taken, err := lookup.UsernameTaken(ctx, cred, candidate)
	if err != nil {
		if ctx.Err() == nil {
			applog.LogWarn(ctx, "username lookup failed", zap.String("candidate", candidate), zap.Error(err))
		}
		return Result{Candidate: candidate, Available: true, Checked: true}
	}
	return Result{Candidate: candidate, Available: !taken, Checked: true}
}

// CheckerOption configures a Checker.
type CheckerOption func(*Checker)

// WithQuietPeriod overrides DefaultQuietPeriod.
func WithQuietPeriod(d time.Duration) CheckerOption {
	return func(c *Checker) {
		if d > 0 {
			c.quiet = d
		}
	}
}

// Checker debounces availability checks for a stream of username edits.
// Only the latest submission can produce a result: a new Submit stops the
// pending timer, cancels the in-flight lookup, and any answer that arrives
// for an older submission is dropped.
type Checker struct {
	lookup   Lookup
	quiet    time.Duration
	onResult func(Result)

	base       context.Context
	baseCancel context.CancelFunc

	mu     sync.Mutex
	seq    uint64
	timer  *time.Timer
	cancel context.CancelFunc
	closed bool
	wg     sync.WaitGroup
}

// NewChecker creates a Checker. onResult runs on a background goroutine while
// the Checker's lock is held, so it must not call back into the Checker.
func NewChecker(lookup Lookup, onResult func(Result), opts ...CheckerOption) *Checker {
	base, cancel := context.WithCancel(context.Background())
	c := &Checker{
		lookup:     lookup,
		quiet:      DefaultQuietPeriod,
		onResult:   onResult,
		base:       base,
		baseCancel: cancel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit records new raw input and returns the normalized candidate that
// will be checked once the quiet period elapses.
func (c *Checker) Submit(cred auth.Credential, raw, current string) string {
	candidate := NormalizeUsername(raw)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return candidate
	}
	c.seq++
	seq := c.seq
	c.stopLocked()

	c.wg.Add(1)
	c.timer = time.AfterFunc(c.quiet, func() {
		defer c.wg.Done()
		c.run(seq, cred, candidate, current)
	})
	return candidate
}

// Close stops pending work and waits for running lookups to return.
func (c *Checker) Close() {
	c.mu.Lock()
	c.closed = true
	c.stopLocked()
	c.mu.Unlock()
	c.baseCancel()
	c.wg.Wait()
}

func (c *Checker) run(seq uint64, cred auth.Credential, candidate, current string) {
	c.mu.Lock()
	if c.closed || seq != c.seq {
		c.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(c.base)
	c.cancel = cancel
	c.mu.Unlock()

	res := Check(ctx, c.lookup, cred, candidate, current)
	cancel()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || seq != c.seq {
		return
	}
	c.cancel = nil
	if c.onResult != nil {
		c.onResult(res)
	}
}

func (c *Checker) stopLocked() {
	if c.timer != nil && c.timer.Stop() {
		c.wg.Done()
	}
	c.timer = nil
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}
