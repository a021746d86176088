package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/serroba/url-registry/internal/shortener"
	"go.uber.org/zap"
)

const (
	// DefaultTTL is how long an entry stays live after creation.
	DefaultTTL = 15 * time.Minute

	// DefaultMaxAttempts bounds code generation. With 62^6 codes the chance
	// of 16 consecutive collisions is negligible until the space is nearly full.
	DefaultMaxAttempts = 16
)

// Config configures a Registry. Zero values fall back to defaults.
type Config struct {
	TTL         time.Duration
	MaxAttempts int

	// ServeExpired keeps resolving entries past their TTL until a sweep
	// removes them. By default an expired entry resolves as not found.
	ServeExpired bool

	Generate shortener.CodeGenerator
	Now      func() time.Time
	Listener Listener
	Logger   *zap.Logger

	// Seed entries are inserted at construction. A zero CreatedAt means "now".
	Seed []shortener.Entry
}

// Registry is the in-memory, insertion-ordered code -> URL store.
type Registry struct {
	mu      sync.RWMutex
	entries map[shortener.Code]*shortener.Entry
	order   []shortener.Code
	byURL   map[string]shortener.Code // url -> code, live entries only

	ttl          time.Duration
	maxAttempts  int
	serveExpired bool
	generate     shortener.CodeGenerator
	now          func() time.Time
	listener     Listener
	logger       *zap.Logger
}

// NewRegistry creates a registry, inserting any seed entries.
func NewRegistry(cfg Config) (*Registry, error) {
	r := &Registry{
		entries:      make(map[shortener.Code]*shortener.Entry),
		byURL:        make(map[string]shortener.Code),
		ttl:          cfg.TTL,
		maxAttempts:  cfg.MaxAttempts,
		serveExpired: cfg.ServeExpired,
		generate:     cfg.Generate,
		now:          cfg.Now,
		listener:     cfg.Listener,
		logger:       cfg.Logger,
	}

	if r.ttl <= 0 {
		r.ttl = DefaultTTL
	}

	if r.maxAttempts <= 0 {
		r.maxAttempts = DefaultMaxAttempts
	}

	if r.generate == nil {
		gen, err := shortener.NewCodeGenerator(shortener.DefaultCodeLength)
		if err != nil {
			return nil, err
		}

		r.generate = gen
	}

	if r.now == nil {
		r.now = time.Now
	}

	if r.listener == nil {
		r.listener = NopListener{}
	}

	if r.logger == nil {
		r.logger = zap.NewNop()
	}

	for _, entry := range cfg.Seed {
		if err := r.seed(entry); err != nil {
			return nil, err
		}
	}

	return r, nil
}

func (r *Registry) seed(entry shortener.Entry) error {
	if !shortener.ValidCode(entry.Code) {
		return fmt.Errorf("seed code %q: must be non-empty and alphanumeric", entry.Code)
	}

	if shortener.IsReserved(entry.Code) {
		return fmt.Errorf("seed code %q: reserved", entry.Code)
	}

	if err := shortener.ValidateURL(entry.URL); err != nil {
		return fmt.Errorf("seed code %q: %w", entry.Code, err)
	}

	if _, taken := r.entries[entry.Code]; taken {
		return fmt.Errorf("seed code %q: duplicate code", entry.Code)
	}

	if _, taken := r.byURL[entry.URL]; taken {
		return fmt.Errorf("seed code %q: url %q already seeded", entry.Code, entry.URL)
	}

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = r.now()
	}

	r.insertLocked(&entry)

	return nil
}

// shortenResult carries what happened under the lock so listeners can be
// notified after it is released.
type shortenResult struct {
	entry      shortener.Entry
	reused     bool
	expired    []shortener.Entry
	collisions []shortener.Code
	err        error
}

// Shorten sweeps expired entries, then returns the live entry for rawURL
// or inserts a new one under a freshly generated code.
func (r *Registry) Shorten(_ context.Context, rawURL string) (*shortener.Entry, error) {
	if err := shortener.ValidateURL(rawURL); err != nil {
		return nil, err
	}

	res := r.shorten(rawURL)

	r.notifyExpired(res.expired)

	for _, code := range res.collisions {
		r.listener.CodeCollision(code)
	}

	if res.err != nil {
		r.logger.Error("code generation exhausted",
			zap.String("url", rawURL),
			zap.Int("attempts", r.maxAttempts),
		)

		return nil, res.err
	}

	if res.reused {
		r.logger.Debug("url already shortened",
			zap.String("code", string(res.entry.Code)),
			zap.String("url", rawURL),
		)
		r.listener.EntryReused(res.entry)
	} else {
		r.logger.Info("generated short code",
			zap.String("code", string(res.entry.Code)),
			zap.String("url", rawURL),
		)
		r.listener.EntryCreated(res.entry)
	}

	entry := res.entry

	return &entry, nil
}

func (r *Registry) shorten(rawURL string) shortenResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	res := shortenResult{expired: r.sweepLocked(now)}

	if code, ok := r.byURL[rawURL]; ok {
		res.entry = *r.entries[code]
		res.reused = true

		return res
	}

	code, collisions, err := r.nextCodeLocked()
	res.collisions = collisions

	if err != nil {
		res.err = err

		return res
	}

	entry := &shortener.Entry{Code: code, URL: rawURL, CreatedAt: now}
	r.insertLocked(entry)
	res.entry = *entry

	return res
}

func (r *Registry) nextCodeLocked() (shortener.Code, []shortener.Code, error) {
	var collisions []shortener.Code

	for range r.maxAttempts {
		code := shortener.Code(r.generate())

		_, taken := r.entries[code]
		if !taken && code != "" && !shortener.IsReserved(code) {
			return code, collisions, nil
		}

		collisions = append(collisions, code)
	}

	return "", collisions, fmt.Errorf("%w: no free code after %d attempts",
		shortener.ErrGenerationExhausted, r.maxAttempts)
}

func (r *Registry) insertLocked(entry *shortener.Entry) {
	r.entries[entry.Code] = entry
	r.order = append(r.order, entry.Code)
	r.byURL[entry.URL] = entry.Code
}

// Resolve returns the URL stored under code.
func (r *Registry) Resolve(_ context.Context, code shortener.Code) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[code]
	if !ok {
		return "", shortener.ErrNotFound
	}

	if !r.serveExpired && entry.Expired(r.now(), r.ttl) {
		return "", fmt.Errorf("%w: code %s expired", shortener.ErrNotFound, code)
	}

	return entry.URL, nil
}

// ListAll returns a copy of every stored entry, expired or not, in insertion order.
func (r *Registry) ListAll(_ context.Context) []shortener.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]shortener.Entry, 0, len(r.order))
	for _, code := range r.order {
		entries = append(entries, *r.entries[code])
	}

	return entries
}

// Sweep removes every entry older than the TTL at now and returns how many were removed.
func (r *Registry) Sweep(_ context.Context, now time.Time) int {
	r.mu.Lock()
	expired := r.sweepLocked(now)
	r.mu.Unlock()

	r.notifyExpired(expired)

	return len(expired)
}

func (r *Registry) sweepLocked(now time.Time) []shortener.Entry {
	var expired []shortener.Entry

	live := r.order[:0]

	for _, code := range r.order {
		entry := r.entries[code]
		if !entry.Expired(now, r.ttl) {
			live = append(live, code)

			continue
		}

		expired = append(expired, *entry)
		delete(r.entries, code)

		if r.byURL[entry.URL] == code {
			delete(r.byURL, entry.URL)
		}
	}

	clear(r.order[len(live):])
	r.order = live

	return expired
}

func (r *Registry) notifyExpired(expired []shortener.Entry) {
	if len(expired) == 0 {
		return
	}

	r.logger.Info("swept expired entries", zap.Int("count", len(expired)))
	r.listener.EntriesExpired(expired)
}

// Len returns the number of stored entries, including expired ones not yet swept.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}

// Compile-time check.
var _ shortener.Registry = (*Registry)(nil)
