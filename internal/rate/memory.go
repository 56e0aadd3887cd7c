package rate

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryLimiter cuenta hits en memoria del proceso.
type MemoryLimiter struct {
	Max    int64
	Window time.Duration

	c   *gocache.Cache
	now func() time.Time
}

func NewMemoryLimiter(max int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		Max:    int64(max),
		Window: window,
		c:      gocache.New(window, 2*window),
		now:    time.Now,
	}
}

func (l *MemoryLimiter) Allow(ctx context.Context, key string) (Result, error) {
	now := l.now().UTC()
	k := windowKey("", key, now, l.Window)
	end := now.Truncate(l.Window).Add(l.Window)

	// Add sólo gana el primero de la ventana; el resto incrementa.
	_ = l.c.Add(k, int64(0), end.Sub(now))
	hits, err := l.c.IncrementInt64(k, 1)
	if err != nil {
		// expiró entre Add e Increment: arranca ventana nueva
		l.c.Set(k, int64(1), end.Sub(now))
		hits = 1
	}
	return result(hits, l.Max, end.Sub(now), l.Window), nil
}
