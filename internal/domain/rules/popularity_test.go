package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ywchen/kitchen-master/server/internal/domain/order"
)

func TestClampPopularity(t *testing.T) {
	cases := []struct {
		in   int
		want int
	}{
		{-50, 0},
		{-1, 0},
		{0, 0},
		{1, 1},
		{100, 100},
		{101, 100},
		{250, 100},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ClampPopularity(c.in), "ClampPopularity(%d)", c.in)
	}
}

func TestOrderCapacityThresholds(t *testing.T) {
	cases := []struct {
		popularity int
		want       int
	}{
		{100, 4},
		{80, 4},
		{79, 3},
		{60, 3},
		{59, 2},
		{40, 2},
		{39, 1},
		{1, 1},
		{0, 1},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, OrderCapacity(c.popularity), "OrderCapacity(%d)", c.popularity)
	}
}

func TestFulfillReward(t *testing.T) {
	pop, tip := FulfillReward(order.CustomerBlogger)
	assert.Equal(t, 15, pop)
	assert.Equal(t, 0, tip)

	pop, tip = FulfillReward(order.CustomerHappy)
	assert.Equal(t, 10, pop)
	assert.Equal(t, 20, tip)

	pop, tip = FulfillReward(order.CustomerNormal)
	assert.Equal(t, 1, pop)
	assert.Equal(t, 0, tip)

	// Grumpy customers pay full price but grant only the base gain.
	pop, tip = FulfillReward(order.CustomerGrumpy)
	assert.Equal(t, 1, pop)
	assert.Equal(t, 0, tip)
}

func TestExpiryPenalty(t *testing.T) {
	assert.Equal(t, 30, ExpiryPenalty(order.CustomerBlogger))
	assert.Equal(t, 20, ExpiryPenalty(order.CustomerGrumpy))
	assert.Equal(t, 5, ExpiryPenalty(order.CustomerHappy))
	assert.Equal(t, 5, ExpiryPenalty(order.CustomerNormal))
}

func TestRollCustomerType(t *testing.T) {
	cases := []struct {
		roll float64
		want order.CustomerType
	}{
		{0.0, order.CustomerBlogger},
		{0.149, order.CustomerBlogger},
		{0.15, order.CustomerGrumpy},
		{0.299, order.CustomerGrumpy},
		{0.30, order.CustomerHappy},
		{0.449, order.CustomerHappy},
		{0.45, order.CustomerNormal},
		{0.999, order.CustomerNormal},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, RollCustomerType(c.roll), "RollCustomerType(%v)", c.roll)
	}
}

func TestSellRefundFloors(t *testing.T) {
	assert.Equal(t, 3, SellRefund(6))
	assert.Equal(t, 1, SellRefund(3)) // odd price floors down
	assert.Equal(t, 12, SellRefund(24))
	assert.Equal(t, 0, SellRefund(1))
}
