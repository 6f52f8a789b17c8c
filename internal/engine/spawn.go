package engine

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/ywchen/kitchen-master/server/internal/domain/catalog"
	"github.com/ywchen/kitchen-master/server/internal/domain/order"
	"github.com/ywchen/kitchen-master/server/internal/domain/rules"
)

// Expiry draw bounds for a fresh order, in seconds.
const (
	orderExpiryMin = 40
	orderExpiryMax = 80
)

// Spawner synthesizes customer orders. All randomness in the engine flows
// through its injected source, never through the global generator, so a
// fixed seed reproduces a full run.
type Spawner struct {
	rng *rand.Rand
	seq uint64
}

// NewSpawner creates a spawner. seed 0 means seed from the wall clock.
func NewSpawner(seed int64) *Spawner {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Spawner{rng: rand.New(rand.NewSource(seed))}
}

// Next draws a new order: uniform recipe, weighted customer type, bounded
// random expiry. MaxTime is the fixed ceiling, not the drawn expiry, so
// progress bars normalize consistently across orders.
func (sp *Spawner) Next() order.Order {
	recipe := catalog.Recipes[sp.rng.Intn(len(catalog.Recipes))]
	expiry := orderExpiryMin + sp.rng.Intn(orderExpiryMax-orderExpiryMin+1)
	sp.seq++
	return order.Order{
		ID:         uuid.NewString(),
		RecipeID:   recipe.ID,
		ExpiryTime: expiry,
		MaxTime:    order.MaxTime,
		Type:       rules.RollCustomerType(sp.rng.Float64()),
		Seq:        sp.seq,
	}
}
