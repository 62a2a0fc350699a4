package identifier

import (
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	base36    = "0123456789abcdefghijklmnopqrstuvwxyz"
	suffixLen = 9
)

// Generator produces opaque string identifiers combining a caller prefix, a
// millisecond timestamp and a random base36 suffix. Collisions are not
// formally prevented, only made astronomically unlikely; callers must not
// rely on ordering beyond rough chronology.
type Generator struct {
	mu  sync.Mutex
	now func() time.Time
	rng *rand.Rand
}

// NewGenerator builds a generator backed by the wall clock.
func NewGenerator() *Generator {
	return &Generator{
		now: time.Now,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewGeneratorWithClock builds a generator with an injected clock and seed,
// for deterministic tests.
func NewGeneratorWithClock(now func() time.Time, seed int64) *Generator {
	return &Generator{
		now: now,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// New returns a fresh identifier for the given prefix, e.g. New("ENR").
func (g *Generator) New(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	var sb strings.Builder
	sb.Grow(len(prefix) + 13 + suffixLen)
	sb.WriteString(prefix)
	sb.WriteString(strconv.FormatInt(g.now().UnixMilli(), 10))
	for i := 0; i < suffixLen; i++ {
		sb.WriteByte(base36[g.rng.Intn(len(base36))])
	}
	return sb.String()
}
