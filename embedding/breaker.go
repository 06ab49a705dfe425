package embedding

import (
	"context"
	"sync"
	"time"
)

// BreakerConfig configures a Breaker.
type BreakerConfig struct {
	// MaxFailures is the number of consecutive failures before the
	// breaker opens. Default: 5
	MaxFailures int

	// Cooldown is how long the breaker stays open before allowing a
	// probe request through. Default: 30 seconds
	Cooldown time.Duration

	// OnStateChange is called when the breaker opens or closes.
	OnStateChange func(open bool)
}

// Breaker wraps an Embedder and fails fast once the underlying provider
// has failed repeatedly, instead of paying a slow network timeout on
// every cache operation while the model server is down. After Cooldown a
// single probe call is let through; success closes the breaker, failure
// re-opens it.
type Breaker struct {
	inner  Embedder
	config BreakerConfig

	mu       sync.Mutex
	open     bool
	failures int
	openedAt time.Time
}

// NewBreaker wraps inner with failure breaking.
func NewBreaker(inner Embedder, config BreakerConfig) *Breaker {
	if config.MaxFailures <= 0 {
		config.MaxFailures = 5
	}
	if config.Cooldown <= 0 {
		config.Cooldown = 30 * time.Second
	}
	return &Breaker{inner: inner, config: config}
}

// Embed calls the wrapped embedder unless the breaker is open.
// While open, it returns ErrUnavailable without touching the provider.
func (b *Breaker) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := b.before(); err != nil {
		return nil, err
	}

	vec, err := b.inner.Embed(ctx, text)
	b.after(err)
	return vec, err
}

// Dimensions returns the wrapped embedder's dimensionality.
func (b *Breaker) Dimensions() int {
	return b.inner.Dimensions()
}

// Open reports whether the breaker is currently rejecting calls.
func (b *Breaker) Open() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.open && time.Since(b.openedAt) < b.config.Cooldown
}

// Reset closes the breaker and clears the failure count.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.setOpenLocked(false)
	b.failures = 0
}

func (b *Breaker) before() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.open && time.Since(b.openedAt) < b.config.Cooldown {
		return ErrUnavailable
	}
	return nil
}

func (b *Breaker) after(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err == nil {
		b.failures = 0
		b.setOpenLocked(false)
		return
	}

	b.failures++
	if b.failures >= b.config.MaxFailures {
		b.openedAt = time.Now()
		b.setOpenLocked(true)
	}
}

func (b *Breaker) setOpenLocked(open bool) {
	if b.open == open {
		return
	}
	b.open = open
	if b.config.OnStateChange != nil {
		b.config.OnStateChange(open)
	}
}

// Ensure Breaker implements Embedder
var _ Embedder = (*Breaker)(nil)
