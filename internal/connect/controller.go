package connect

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jpillora/backoff"

	"github.com/heartmarshall/ewasl-backend/internal/domain"
	"github.com/heartmarshall/ewasl-backend/internal/platform"
)

const (
	DefaultMinPoll = 2 * time.Second
	DefaultMaxPoll = 10 * time.Second
	DefaultTimeout = 5 * time.Minute
)

// Result is the outcome of a connect attempt.
type Result struct {
	AttemptID string
	Platform  domain.Platform
	State     domain.ConnectState
	// Account is set when State is connected.
	Account *Account
	// Code is set when State is failed or cancelled.
	Code domain.ErrorCode
}

// Message is the user-facing text for a failed or cancelled attempt.
func (r *Result) Message() string {
	if r.Code == "" {
		return ""
	}
	return domain.ErrorMessage(r.Code)
}

// Err returns the attempt failure as a *domain.ConnectError, or nil.
func (r *Result) Err() error {
	if r.State != domain.ConnectFailed && r.State != domain.ConnectCancelled {
		return nil
	}
	return domain.NewConnectError(r.Platform, r.Code, nil)
}

// EventKind tells what an Event reports.
type EventKind string

const (
	EventConnected    EventKind = "connected"
	EventFailed       EventKind = "failed"
	EventCancelled    EventKind = "cancelled"
	EventDisconnected EventKind = "disconnected"
)

// Event is delivered to the notify callback after every finished attempt
// and every disconnect.
type Event struct {
	Kind      EventKind
	Platform  domain.Platform
	AttemptID string
	AccountID uuid.UUID
	Code      domain.ErrorCode
	Message   string
}

type attempt struct {
	id       string
	platform domain.Platform
	scope    Scope
	state    domain.ConnectState
	seq      uint64
	code     domain.ErrorCode
	// done is closed when the attempt reaches a terminal state.
	done   chan struct{}
	expiry *time.Timer
}

// Option configures a Controller.
type Option func(*Controller)

// WithRegistry replaces the default platform registry.
func WithRegistry(r *platform.Registry) Option {
	return func(c *Controller) { c.registry = r }
}

// WithPollInterval sets the completion poll backoff bounds.
func WithPollInterval(minDelay, maxDelay time.Duration) Option {
	return func(c *Controller) { c.minPoll, c.maxPoll = minDelay, maxDelay }
}

// WithTimeout bounds how long an attempt may stay connecting.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) { c.timeout = d }
}

// WithAwaitRedirects controls whether redirect-strategy attempts are
// awaited by polling. Hosts that lose control after navigating pass false
// and finish the attempt with Resolve.
func WithAwaitRedirects(await bool) Option {
	return func(c *Controller) { c.awaitRedirects = await }
}

// WithNotify registers a callback for finished attempts and disconnects.
func WithNotify(fn func(Event)) Option {
	return func(c *Controller) { c.notify = fn }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// Controller drives connect attempts for every platform. It is safe for
// concurrent use; attempts for different platforms never share staged values.
type Controller struct {
	api      API
	nav      Navigator
	staging  StagingStore
	cache    AccountCache
	registry *platform.Registry
	log      *slog.Logger

	minPoll        time.Duration
	maxPoll        time.Duration
	timeout        time.Duration
	awaitRedirects bool
	notify         func(Event)
	newID          func() string

	mu       sync.Mutex
	attempts map[string]*attempt
	seq      uint64
}

// NewController creates a Controller.
func NewController(api API, nav Navigator, staging StagingStore, cache AccountCache, opts ...Option) *Controller {
	c := &Controller{
		api:            api,
		nav:            nav,
		staging:        staging,
		cache:          cache,
		registry:       platform.Default(),
		log:            slog.Default(),
		minPoll:        DefaultMinPoll,
		maxPoll:        DefaultMaxPoll,
		timeout:        DefaultTimeout,
		awaitRedirects: true,
		notify:         func(Event) {},
		newID:          func() string { return uuid.NewString() },
		attempts:       make(map[string]*attempt),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With("component", "connect")
	return c
}

// Connect runs one attempt for p. The returned error is the attempt's
// *domain.ConnectError when it failed or was cancelled.
//
// A redirect attempt started with WithAwaitRedirects(false) returns in
// the connecting state and must be finished with Resolve; it fails with
// timeout if nothing resolves it in time. Starting a new attempt for a
// platform cancels the one already in flight for it.
func (c *Controller) Connect(ctx context.Context, p domain.Platform) (*Result, error) {
	d, err := c.registry.Lookup(p)
	if err != nil {
		res := &Result{Platform: p, State: domain.ConnectFailed, Code: domain.ErrCodeUnsupportedPlatform}
		return res, res.Err()
	}

	a := c.begin(p)
	log := c.log.With(slog.String("platform", p.String()), slog.String("attempt_id", a.id))

	resp, err := c.api.StartAuth(ctx, p)
	if err != nil {
		log.WarnContext(ctx, "start auth failed", slog.String("error", err.Error()))
		return c.finish(a, nil, failureCode(ctx, err))
	}
	if resp.AuthURL == "" {
		return c.finish(a, nil, domain.ErrCodeMissingAuthURL)
	}

	c.staging.Put(a.scope, KeyState, resp.State)
	if resp.OAuthToken != "" {
		c.staging.Put(a.scope, KeyToken, resp.OAuthToken)
	}
	if resp.OAuthTokenSecret != "" {
		c.staging.Put(a.scope, KeySecret, resp.OAuthTokenSecret)
	}
	if c.ended(a) {
		// superseded while StartAuth was in flight
		c.staging.Clear(a.scope)
		return c.finish(a, nil, domain.ErrCodeCancelled)
	}

	if d.Strategy == domain.StrategyPopup {
		win, err := c.nav.OpenPopup(ctx, resp.AuthURL)
		if err != nil {
			log.WarnContext(ctx, "open popup failed", slog.String("error", err.Error()))
			return c.finish(a, nil, domain.ErrCodeUnknown)
		}
		defer win.Close()
		return c.await(ctx, a, resp.State, win.Closed())
	}

	if err := c.nav.Navigate(ctx, resp.AuthURL); err != nil {
		log.WarnContext(ctx, "navigate failed", slog.String("error", err.Error()))
		return c.finish(a, nil, domain.ErrCodeUnknown)
	}
	if !c.awaitRedirects {
		c.detach(a)
		return &Result{AttemptID: a.id, Platform: p, State: domain.ConnectConnecting}, nil
	}
	return c.await(ctx, a, resp.State, nil)
}

// await polls the completion endpoint until the attempt ends.
func (c *Controller) await(ctx context.Context, a *attempt, token string, closed <-chan struct{}) (*Result, error) {
	b := &backoff.Backoff{Min: c.minPoll, Max: c.maxPoll, Factor: 1.5}

	deadline := time.NewTimer(c.timeout)
	defer deadline.Stop()
	tick := time.NewTimer(b.Duration())
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return c.finish(a, nil, domain.ErrCodeCancelled)

		case <-a.done:
			return c.finish(a, nil, domain.ErrCodeCancelled)

		case <-deadline.C:
			return c.finish(a, nil, domain.ErrCodeTimeout)

		case <-closed:
			// the callback page closes the popup itself, so look once more
			if acct, code, done := c.poll(ctx, a, token); done {
				return c.finish(a, acct, code)
			}
			return c.finish(a, nil, domain.ErrCodeCancelled)

		case <-tick.C:
			if acct, code, done := c.poll(ctx, a, token); done {
				return c.finish(a, acct, code)
			}
			tick.Reset(b.Duration())
		}
	}
}

// poll asks for the completion once. done is false while the server still
// waits for the callback or the request failed transiently.
func (c *Controller) poll(ctx context.Context, a *attempt, token string) (*Account, domain.ErrorCode, bool) {
	acct, err := c.api.CompleteAuth(ctx, a.platform, token)
	switch {
	case err == nil:
		return acct, "", true
	case errors.Is(err, domain.ErrPending):
		return nil, "", false
	case errors.Is(err, domain.ErrNotFound):
		return nil, domain.ErrCodeInvalidState, true
	}

	code := domain.CodeOf(err)
	if code == domain.ErrCodeNetwork || code == domain.ErrCodeUnknown {
		c.log.DebugContext(ctx, "completion poll failed",
			slog.String("attempt_id", a.id),
			slog.String("error", err.Error()),
		)
		return nil, "", false
	}
	return nil, code, true
}

// Resolve finishes an attempt from the URL the browser landed on after a
// redirect flow: /connect-handler?... on success, /connect?error=... on
// failure. Without a matching attempt in flight the completion is still
// collected, so a restarted host can finish what it started.
func (c *Controller) Resolve(ctx context.Context, callbackURL string) (*Result, error) {
	ret, err := platform.ParseReturn(callbackURL)
	if err != nil {
		return nil, err
	}

	a := c.inFlight(ret.Platform)
	if a == nil {
		a = c.begin(ret.Platform)
	}
	if !ret.Succeeded() {
		return c.finish(a, nil, ret.Code)
	}

	acct, err := c.api.CompleteAuth(ctx, ret.Platform, ret.Token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.finish(a, nil, domain.ErrCodeInvalidState)
		}
		return c.finish(a, nil, failureCode(ctx, err))
	}
	return c.finish(a, acct, "")
}

// Disconnect removes an account. On failure the cache is left untouched
// and a disconnect_failed *domain.ConnectError is returned.
func (c *Controller) Disconnect(ctx context.Context, id uuid.UUID) error {
	if err := c.api.DeleteAccount(ctx, id); err != nil {
		c.log.WarnContext(ctx, "disconnect failed",
			slog.String("account_id", id.String()),
			slog.String("error", err.Error()),
		)
		return domain.NewConnectError("", domain.ErrCodeDisconnectFailed, err)
	}

	c.cache.Invalidate()
	c.notify(Event{Kind: EventDisconnected, AccountID: id})
	return nil
}

// State reports the state of an attempt. Finished and unknown attempts are idle.
func (c *Controller) State(attemptID string) domain.ConnectState {
	c.mu.Lock()
	defer c.mu.Unlock()

	if a, ok := c.attempts[attemptID]; ok {
		return a.state
	}
	return domain.ConnectIdle
}

// begin registers a new connecting attempt for p and cancels any older
// attempt for the same platform.
func (c *Controller) begin(p domain.Platform) *attempt {
	c.mu.Lock()
	c.seq++
	id := c.newID()
	a := &attempt{
		id:       id,
		platform: p,
		scope:    Scope{Platform: p, AttemptID: id},
		state:    domain.ConnectIdle,
		seq:      c.seq,
		done:     make(chan struct{}),
	}
	if a.state.CanTransition(domain.ConnectConnecting) {
		a.state = domain.ConnectConnecting
	}

	var superseded []*attempt
	for _, old := range c.attempts {
		if old.platform == p && old.state == domain.ConnectConnecting {
			superseded = append(superseded, old)
		}
	}
	c.attempts[id] = a
	c.mu.Unlock()

	for _, old := range superseded {
		_, _ = c.finish(old, nil, domain.ErrCodeCancelled)
	}
	return a
}

// detach arms the timeout of an attempt nobody polls for.
func (c *Controller) detach(a *attempt) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if a.state != domain.ConnectConnecting {
		return
	}
	a.expiry = time.AfterFunc(c.timeout, func() {
		_, _ = c.finish(a, nil, domain.ErrCodeTimeout)
	})
}

func (c *Controller) ended(a *attempt) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return a.state != domain.ConnectConnecting
}

// inFlight returns the newest connecting attempt for p.
func (c *Controller) inFlight(p domain.Platform) *attempt {
	c.mu.Lock()
	defer c.mu.Unlock()

	var newest *attempt
	for _, a := range c.attempts {
		if a.platform == p && a.state == domain.ConnectConnecting && (newest == nil || a.seq > newest.seq) {
			newest = a
		}
	}
	return newest
}

// finish moves a to its terminal state exactly once, clears its staged
// values and, on success, invalidates the account cache.
func (c *Controller) finish(a *attempt, acct *Account, code domain.ErrorCode) (*Result, error) {
	next := domain.ConnectConnected
	switch {
	case code == domain.ErrCodeCancelled:
		next = domain.ConnectCancelled
	case code != "":
		next = domain.ConnectFailed
	case acct == nil:
		next, code = domain.ConnectFailed, domain.ErrCodeUnknown
	}

	c.mu.Lock()
	if !a.state.CanTransition(next) {
		c.mu.Unlock()
		res := &Result{AttemptID: a.id, Platform: a.platform, State: a.state, Code: a.code}
		return res, res.Err()
	}
	a.state, a.code = next, code
	delete(c.attempts, a.id)
	if a.expiry != nil {
		a.expiry.Stop()
	}
	close(a.done)
	c.mu.Unlock()

	c.staging.Clear(a.scope)

	res := &Result{AttemptID: a.id, Platform: a.platform, State: next, Account: acct, Code: code}
	ev := Event{Platform: a.platform, AttemptID: a.id, Code: code, Message: res.Message()}
	switch next {
	case domain.ConnectConnected:
		c.cache.Invalidate()
		ev.Kind = EventConnected
		ev.AccountID = acct.ID
	case domain.ConnectCancelled:
		ev.Kind = EventCancelled
	default:
		ev.Kind = EventFailed
	}
	c.notify(ev)

	c.log.Info("connect finished",
		slog.String("platform", a.platform.String()),
		slog.String("attempt_id", a.id),
		slog.String("state", next.String()),
		slog.String("code", code.String()),
	)
	return res, res.Err()
}

// failureCode classifies an API error. A cancelled caller wins over
// whatever the transport reported.
func failureCode(ctx context.Context, err error) domain.ErrorCode {
	if ctx.Err() != nil {
		return domain.ErrCodeCancelled
	}
	if errors.Is(err, domain.ErrUnauthorized) {
		return domain.ErrCodeUnauthorized
	}
	if code := domain.CodeOf(err); code != domain.ErrCodeUnknown {
		return code
	}
	return domain.ErrCodeNetwork
}

var _ Resolver = (*Controller)(nil)

// Resolver finishes redirect attempts from their landing URL.
type Resolver interface {
	Resolve(ctx context.Context, callbackURL string) (*Result, error)
}
