package stats

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/nao1215/scameye/internal/risk"
)

// Recorder increments the counters and announces each change.
// It is safe for concurrent use; increments are serialized so several
// coordinators can share one Recorder and one Store.
type Recorder struct {
	store  Store
	logger *slog.Logger

	// mu serializes the read-modify-write of the counters.
	mu sync.Mutex

	subMu       sync.Mutex
	nextID      int
	subscribers map[int]func()
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithLogger sets the logger used for store failures.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recorder) {
		r.logger = logger
	}
}

// NewRecorder creates a Recorder backed by store.
func NewRecorder(store Store, opts ...Option) *Recorder {
	r := &Recorder{
		store:       store,
		subscribers: make(map[int]func()),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// Record counts one displayed link with the given score. The threat
// counter is only touched when riskPercent is above risk.ThreatThreshold.
// Subscribers are notified once, after all writes.
func (r *Recorder) Record(ctx context.Context, riskPercent int) {
	r.mu.Lock()
	r.increment(ctx, KeyLinksScanned)
	if riskPercent > risk.ThreatThreshold {
		r.increment(ctx, KeyThreatLinks)
	}
	r.mu.Unlock()

	r.notify()
}

// increment must be called with mu held.
func (r *Recorder) increment(ctx context.Context, key string) {
	current := r.read(ctx, key)
	if err := r.store.Set(ctx, key, strconv.FormatInt(current+1, 10)); err != nil {
		r.logger.Warn("failed to write counter", "counter", key, "error", err)
	}
}

// read returns the counter value, treating every failure as zero.
func (r *Recorder) read(ctx context.Context, key string) int64 {
	value, ok, err := r.store.Get(ctx, key)
	if err != nil {
		r.logger.Debug("failed to read counter, treating as absent", "counter", key, "error", err)
		return 0
	}
	if !ok {
		return 0
	}
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		r.logger.Debug("malformed counter value, treating as zero", "counter", key, "value", value)
		return 0
	}
	return n
}

// Snapshot reads both counters.
func (r *Recorder) Snapshot(ctx context.Context) Counters {
	r.mu.Lock()
	defer r.mu.Unlock()

	return Counters{
		LinksScanned: r.read(ctx, KeyLinksScanned),
		ThreatLinks:  r.read(ctx, KeyThreatLinks),
	}
}

// Subscribe registers fn to be called after every recording. The returned
// function removes the subscription; calling it more than once is harmless.
func (r *Recorder) Subscribe(fn func()) (cancel func()) {
	r.subMu.Lock()
	id := r.nextID
	r.nextID++
	r.subscribers[id] = fn
	r.subMu.Unlock()

	return func() {
		r.subMu.Lock()
		delete(r.subscribers, id)
		r.subMu.Unlock()
	}
}

// notify calls every subscriber in registration order without holding any
// lock, so subscribers may call Snapshot or Subscribe.
func (r *Recorder) notify() {
	r.subMu.Lock()
	ids := slices.Sorted(maps.Keys(r.subscribers))
	fns := make([]func(), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, r.subscribers[id])
	}
	r.subMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
