package document

import (
	"math/rand"
	"sync"
	"time"
)

const (
	idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	idLength   = 6
)

// IDGenerator produces short shareable document identifiers: 6 characters
// drawn uniformly from A-Z0-9. Uniqueness is probabilistic (36^6 ids); the
// generator itself never checks the store.
type IDGenerator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewIDGenerator builds a generator around the given source. Pass nil to get
// a time-seeded one.
func NewIDGenerator(rnd *rand.Rand) *IDGenerator {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &IDGenerator{rnd: rnd}
}

func (g *IDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	b := make([]byte, idLength)
	for i := range b {
		b[i] = idAlphabet[g.rnd.Intn(len(idAlphabet))]
	}
	return string(b)
}
