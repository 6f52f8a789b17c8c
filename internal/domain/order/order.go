// Package order defines the customer order entity. This package is PURE and
// must NOT import any infrastructure packages.
package order

// CustomerType determines how an order rewards fulfillment and punishes
// expiry.
type CustomerType string

const (
	CustomerNormal  CustomerType = "normal"
	CustomerBlogger CustomerType = "blogger" // large popularity swing both ways
	CustomerGrumpy  CustomerType = "grumpy"  // harsh on expiry, no bonus on serve
	CustomerHappy   CustomerType = "happy"   // tips on serve
)

// MaxTime is the fixed ceiling (seconds) used to normalize the order
// progress bar. Expiry draws are always at or below it.
const MaxTime = 80

// UrgentThreshold marks an order as demanding attention once its remaining
// time drops below it. Presentation signal only; it changes no penalties.
const UrgentThreshold = 20

// Order is a customer request for a specific dish with a countdown to
// walking out.
type Order struct {
	ID         string       `json:"id"`
	RecipeID   string       `json:"recipe_id"`
	ExpiryTime int          `json:"expiry_time"` // seconds until the customer leaves
	MaxTime    int          `json:"max_time"`
	Type       CustomerType `json:"type"`
	Seq        uint64       `json:"seq"` // spawn order, lower = older
	Cooking    bool         `json:"cooking"` // a stove has been committed to this order
}

// IsUrgent reports whether the order is in its critical window.
func (o *Order) IsUrgent() bool {
	return o.ExpiryTime < UrgentThreshold
}

// Progress returns how much of the order's patience is left, 0-100.
func (o *Order) Progress() float64 {
	if o.MaxTime <= 0 {
		return 0
	}
	return float64(o.ExpiryTime) / float64(o.MaxTime) * 100
}
