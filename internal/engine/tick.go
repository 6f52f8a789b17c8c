package engine

import (
	"github.com/ywchen/kitchen-master/server/internal/domain/catalog"
	"github.com/ywchen/kitchen-master/server/internal/domain/order"
	"github.com/ywchen/kitchen-master/server/internal/domain/rules"
	"github.com/ywchen/kitchen-master/server/internal/domain/stove"
	"github.com/ywchen/kitchen-master/server/internal/events"
	"github.com/ywchen/kitchen-master/server/internal/platform/metrics"
)

// Tick advances the world by one second. The whole transition is computed
// on a working copy of the pre-tick state and published at the end, so no
// reader ever observes a partially resolved tick. Resolution order is
// fixed:
//
//	terminal check, deliveries, installs, cook countdowns, finished cooks,
//	order expiry, order countdowns, capacity reconciliation, global clock.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Status != StatusPlaying || e.state.Paused {
		return
	}

	// 1. Terminal check: freeze everything else as-is for this tick.
	if e.state.TimeLeft <= 0 || e.state.Popularity <= 0 {
		next := e.state.Clone()
		next.Status = StatusEnded
		if next.TimeLeft < 0 {
			next.TimeLeft = 0
		}
		e.state = next
		if e.state.Popularity <= 0 {
			e.emit(events.EventTypeGameOver, events.SeverityError, "店铺口碑归零，宣布歇业。最终结算 $%d", e.state.Money)
		} else {
			e.emit(events.EventTypeGameOver, events.SeverityInfo, "营业结束! 最终结算 $%d", e.state.Money)
		}
		return
	}

	next := e.state.Clone()

	// 2. Resolve deliveries.
	stillPending := next.PendingDeliveries[:0]
	for _, d := range next.PendingDeliveries {
		d.TimeLeft--
		if d.TimeLeft > 0 {
			stillPending = append(stillPending, d)
			continue
		}
		ing := catalog.Ingredients[d.IngredientID]
		if next.Inventory[d.IngredientID] < StorageCap {
			next.Inventory[d.IngredientID]++
			e.emit(events.EventTypeDeliveryArrived, events.SeverityInfo, "%s 已送达!", ing.Name)
		} else {
			// Cannot normally happen - purchases count in-flight units
			// against the cap - but an arrival on a full shelf is dumped
			// rather than overflowing.
			e.emit(events.EventTypeDeliveryDumped, events.SeverityError, "%s 仓库溢出!", ing.Name)
		}
	}
	next.PendingDeliveries = stillPending

	// 3. Advance stove installs.
	for i := range next.Stoves {
		s := &next.Stoves[i]
		if s.State != stove.StateInstalling {
			continue
		}
		s.InstallTimeLeft--
		if s.InstallTimeLeft <= 0 {
			s.Reset()
			e.emit(events.EventTypeStoveInstalled, events.SeveritySuccess, "%d 号灶安装完成!", s.ID)
		}
	}

	// 4. Advance cooking stoves. Progress is derived at read time.
	for i := range next.Stoves {
		if next.Stoves[i].State == stove.StateCooking && next.Stoves[i].TimeRemaining > 0 {
			next.Stoves[i].TimeRemaining--
		}
	}

	// 5. Resolve finished cooks.
	for i := range next.Stoves {
		s := &next.Stoves[i]
		if s.State != stove.StateCooking || s.TimeRemaining > 0 {
			continue
		}
		recipe, _ := catalog.GetRecipe(s.DishID)
		if idx := next.findOrder(s.OrderID); s.OrderID != "" && idx >= 0 {
			s.Reset()
			e.fulfill(&next, idx)
		} else {
			// Unbound cook, or the customer already left: hold the dish
			// for a manual serve or discard.
			s.State = stove.StateDone
			s.OrderID = ""
			s.TimeRemaining = 0
			e.emit(events.EventTypeCookComplete, events.SeverityInfo, "%s 出锅，等待上菜", recipe.Name)
		}
	}

	// 6. Resolve order expiry.
	kept := next.ActiveOrders[:0]
	for _, o := range next.ActiveOrders {
		if o.ExpiryTime > 1 {
			kept = append(kept, o)
			continue
		}
		penalty := rules.ExpiryPenalty(o.Type)
		next.Popularity = rules.ClampPopularity(next.Popularity - penalty)
		metrics.Get().RecordOrderExpired()
		recipe, _ := catalog.GetRecipe(o.RecipeID)
		switch o.Type {
		case order.CustomerBlogger:
			e.emit(events.EventTypeOrderExpired, events.SeverityError, "博主发了差评视频! 人气-%d", penalty)
		case order.CustomerGrumpy:
			e.emit(events.EventTypeOrderExpired, events.SeverityError, "由于等待过久，顾客怒而离席! 人气-%d", penalty)
		default:
			e.emit(events.EventTypeOrderExpired, events.SeverityError, "%s 订单超时! 人气-%d", recipe.Name, penalty)
		}
	}
	next.ActiveOrders = kept

	// 7. Decrement remaining time on still-active orders.
	for i := range next.ActiveOrders {
		next.ActiveOrders[i].ExpiryTime--
	}

	// 8. Reconcile the board against the possibly just-changed popularity.
	capacity := rules.OrderCapacity(next.Popularity)
	for len(next.ActiveOrders) > capacity {
		oldest := 0
		for i := range next.ActiveOrders {
			if next.ActiveOrders[i].Seq < next.ActiveOrders[oldest].Seq {
				oldest = i
			}
		}
		e.emit(events.EventTypeOrderTrimmed, events.SeverityInfo, "店铺人气下滑，顾客转身离开")
		next.removeOrder(oldest)
	}
	for len(next.ActiveOrders) < capacity {
		o := e.spawner.Next()
		next.ActiveOrders = append(next.ActiveOrders, o)
		recipe, _ := catalog.GetRecipe(o.RecipeID)
		e.emit(events.EventTypeOrderSpawned, events.SeverityInfo, "新订单: %s", recipe.Name)
	}

	// 9. Advance the global clock.
	next.TimeLeft--

	e.state = next
}
