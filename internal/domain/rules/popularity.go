// Package rules contains the pure calculation logic for game mechanics.
// This package is PURE and must NOT import any infrastructure packages.
package rules

import "github.com/ywchen/kitchen-master/server/internal/domain/order"

// Popularity bounds. Reaching the floor ends the run.
const (
	PopularityMin = 0
	PopularityMax = 100
)

// ClampPopularity bounds a popularity value to [0, 100]. Applied after every
// adjustment, never before.
func ClampPopularity(p int) int {
	if p < PopularityMin {
		return PopularityMin
	}
	if p > PopularityMax {
		return PopularityMax
	}
	return p
}

// OrderCapacity maps current popularity to the maximum number of
// simultaneous active orders. The board is reconciled to exactly this value
// at the end of every tick.
func OrderCapacity(popularity int) int {
	switch {
	case popularity >= 80:
		return 4
	case popularity >= 60:
		return 3
	case popularity >= 40:
		return 2
	default:
		return 1
	}
}

// FulfillReward returns the popularity gain and flat tip earned by serving a
// customer of the given type.
func FulfillReward(t order.CustomerType) (popGain int, tip int) {
	switch t {
	case order.CustomerBlogger:
		return 15, 0
	case order.CustomerHappy:
		return 10, 20
	default: // grumpy customers pay up but never gush
		return 1, 0
	}
}

// ExpiryPenalty returns the popularity lost when a customer of the given
// type walks out. There is never a money penalty on expiry.
func ExpiryPenalty(t order.CustomerType) int {
	switch t {
	case order.CustomerBlogger:
		return 30
	case order.CustomerGrumpy:
		return 20
	default:
		return 5
	}
}

// RollCustomerType converts a uniform roll in [0,1) into a customer type:
// 15% blogger, 15% grumpy, 15% happy, 55% normal.
func RollCustomerType(roll float64) order.CustomerType {
	switch {
	case roll < 0.15:
		return order.CustomerBlogger
	case roll < 0.30:
		return order.CustomerGrumpy
	case roll < 0.45:
		return order.CustomerHappy
	default:
		return order.CustomerNormal
	}
}

// SellRefund is the money credited for selling one unit of an ingredient
// back at half price, floored.
func SellRefund(price int) int {
	return price / 2
}
