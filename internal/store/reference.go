package store

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"frontdesk/internal/models"
)

const referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// ReferenceGenerator produces human-readable booking references of the
// form HLP<YY><MM><DD>-<4 alphanumeric>. The random suffix is not
// checked against existing references; collisions are tolerated, the
// numeric id is the unique key.
type ReferenceGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewReferenceGenerator() *ReferenceGenerator {
	return &ReferenceGenerator{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeededReferenceGenerator fixes the random source, for tests.
func NewSeededReferenceGenerator(seed int64) *ReferenceGenerator {
	return &ReferenceGenerator{rng: rand.New(rand.NewSource(seed))}
}

// Generate builds a reference for the given creation date.
func (g *ReferenceGenerator) Generate(at time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	suffix := make([]byte, models.ReferenceSuffixLen)
	for i := range suffix {
		suffix[i] = referenceAlphabet[g.rng.Intn(len(referenceAlphabet))]
	}
	return fmt.Sprintf("%s%s-%s", models.ReferencePrefix, at.Format("060102"), suffix)
}
