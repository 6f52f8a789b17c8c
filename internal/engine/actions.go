package engine

import (
	"github.com/google/uuid"

	"github.com/ywchen/kitchen-master/server/internal/domain/catalog"
	"github.com/ywchen/kitchen-master/server/internal/domain/order"
	"github.com/ywchen/kitchen-master/server/internal/domain/rules"
	"github.com/ywchen/kitchen-master/server/internal/domain/stove"
	"github.com/ywchen/kitchen-master/server/internal/events"
	"github.com/ywchen/kitchen-master/server/internal/platform/metrics"
)

// The action API. Every method validates, applies its transition as one
// atomic step against the current state, and returns the new snapshot. A
// returned error is a terminal, user-visible rejection for that attempt -
// nothing is retried and nothing is fatal to the running game.

// StartGame resets everything and begins a fresh run. The order board opens
// pre-filled to the capacity granted by full popularity.
func (e *Engine) StartGame() GameState {
	e.mu.Lock()
	defer e.mu.Unlock()

	next := NewGameState()
	next.Status = StatusPlaying
	for len(next.ActiveOrders) < rules.OrderCapacity(next.Popularity) {
		next.ActiveOrders = append(next.ActiveOrders, e.spawner.Next())
	}
	e.state = next

	e.accept()
	e.emit(events.EventTypeGameStarted, events.SeverityInfo, "游戏开始，初始资金 $%d", InitialMoney)
	return e.state.Clone()
}

// BuyIngredient charges money now and enqueues a delivery. The storage cap
// counts on-hand plus in-flight units, so an accepted purchase can never
// overflow the shelf when it lands.
func (e *Engine) BuyIngredient(id catalog.IngredientID) (GameState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.guardMutable(); err != nil {
		return e.state.Clone(), e.reject("buy", err)
	}
	ing, ok := catalog.GetIngredient(id)
	if !ok {
		return e.state.Clone(), e.reject("buy", ErrUnknownIngredient)
	}
	if e.state.Inventory[id]+e.state.pendingCount(id) >= StorageCap {
		return e.state.Clone(), e.reject("buy", ErrStorageFull)
	}
	if e.state.Money < ing.Price {
		return e.state.Clone(), e.reject("buy", ErrInsufficientFunds)
	}

	next := e.state.Clone()
	next.Money -= ing.Price
	next.PendingDeliveries = append(next.PendingDeliveries, PendingDelivery{
		ID:           uuid.NewString(),
		IngredientID: id,
		TimeLeft:     ing.DeliveryTime,
	})
	e.state = next

	e.accept()
	e.emit(events.EventTypePurchase, events.SeverityInfo, "已下单: %s 支出 -$%d", ing.Name, ing.Price)
	return e.state.Clone(), nil
}

// SellIngredient moves one on-hand unit back to the supplier for half price.
func (e *Engine) SellIngredient(id catalog.IngredientID) (GameState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.guardMutable(); err != nil {
		return e.state.Clone(), e.reject("sell", err)
	}
	ing, ok := catalog.GetIngredient(id)
	if !ok {
		return e.state.Clone(), e.reject("sell", ErrUnknownIngredient)
	}
	if e.state.Inventory[id] <= 0 {
		return e.state.Clone(), e.reject("sell", ErrIngredientShortage)
	}

	refund := rules.SellRefund(ing.Price)
	next := e.state.Clone()
	next.Inventory[id]--
	next.Money += refund
	e.state = next

	e.accept()
	e.emit(events.EventTypeIngredientSold, events.SeverityInfo, "变卖 %s 回款 +$%d", ing.Name, refund)
	return e.state.Clone(), nil
}

// StartCooking debits the recipe's full ingredient cost immediately and
// commits an idle stove. orderID optionally binds the cook to an active
// order for automatic fulfillment; pass "" to cook for the counter.
func (e *Engine) StartCooking(recipeID, orderID string) (GameState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.startCookingLocked(recipeID, orderID)
}

// AcceptOrder is the manual accept step: it starts cooking the order's own
// recipe, bound to it.
func (e *Engine) AcceptOrder(orderID string) (GameState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.guardMutable(); err != nil {
		return e.state.Clone(), e.reject("accept", err)
	}
	idx := e.state.findOrder(orderID)
	if idx < 0 {
		return e.state.Clone(), e.reject("accept", ErrUnknownOrder)
	}
	if e.state.ActiveOrders[idx].Cooking {
		return e.state.Clone(), e.reject("accept", ErrOrderInProgress)
	}
	return e.startCookingLocked(e.state.ActiveOrders[idx].RecipeID, orderID)
}

func (e *Engine) startCookingLocked(recipeID, orderID string) (GameState, error) {
	if err := e.guardMutable(); err != nil {
		return e.state.Clone(), e.reject("cook", err)
	}
	recipe, ok := catalog.GetRecipe(recipeID)
	if !ok {
		return e.state.Clone(), e.reject("cook", ErrUnknownRecipe)
	}
	if orderID != "" && e.state.findOrder(orderID) < 0 {
		return e.state.Clone(), e.reject("cook", ErrUnknownOrder)
	}

	slot := -1
	for i := range e.state.Stoves {
		if e.state.Stoves[i].State == stove.StateIdle {
			slot = i
			break
		}
	}
	if slot < 0 {
		return e.state.Clone(), e.reject("cook", ErrNoAvailableStove)
	}
	for ingID, qty := range recipe.Ingredients {
		if e.state.Inventory[ingID] < qty {
			return e.state.Clone(), e.reject("cook", ErrIngredientShortage)
		}
	}

	next := e.state.Clone()
	for ingID, qty := range recipe.Ingredients {
		next.Inventory[ingID] -= qty
	}
	s := &next.Stoves[slot]
	s.State = stove.StateCooking
	s.DishID = recipe.ID
	s.OrderID = orderID
	s.TimeRemaining = recipe.CookingTime
	s.CookingTime = recipe.CookingTime
	if orderID != "" {
		next.ActiveOrders[next.findOrder(orderID)].Cooking = true
	}
	e.state = next

	e.accept()
	e.emit(events.EventTypeCookStarted, events.SeverityInfo, "%d 号灶开始烹饪 %s", slot, recipe.Name)
	return e.state.Clone(), nil
}

// CancelCooking aborts an in-progress cook. The ingredients already debited
// are not refunded.
func (e *Engine) CancelCooking(stoveID int) (GameState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.guardMutable(); err != nil {
		return e.state.Clone(), e.reject("cancel", err)
	}
	if e.state.findStove(stoveID) == nil {
		return e.state.Clone(), e.reject("cancel", ErrUnknownStove)
	}
	if e.state.findStove(stoveID).State != stove.StateCooking {
		return e.state.Clone(), e.reject("cancel", ErrStoveNotCooking)
	}

	next := e.state.Clone()
	s := next.findStove(stoveID)
	if s.OrderID != "" {
		if idx := next.findOrder(s.OrderID); idx >= 0 {
			next.ActiveOrders[idx].Cooking = false
		}
	}
	s.Reset()
	e.state = next

	e.accept()
	e.emit(events.EventTypeCookCancelled, events.SeverityInfo, "烹饪已取消，食材已损耗")
	return e.state.Clone(), nil
}

// DiscardDish destroys a finished dish with no economic effect.
func (e *Engine) DiscardDish(stoveID int) (GameState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.guardMutable(); err != nil {
		return e.state.Clone(), e.reject("discard", err)
	}
	if e.state.findStove(stoveID) == nil {
		return e.state.Clone(), e.reject("discard", ErrUnknownStove)
	}
	if e.state.findStove(stoveID).State != stove.StateDone {
		return e.state.Clone(), e.reject("discard", ErrNoCookedDish)
	}

	next := e.state.Clone()
	next.findStove(stoveID).Reset()
	e.state = next

	e.accept()
	e.emit(events.EventTypeDishDiscarded, events.SeverityInfo, "出品已倒掉")
	return e.state.Clone(), nil
}

// ServeDish hands a finished dish to the named order. The dish must come
// from a Done stove holding exactly the order's recipe.
func (e *Engine) ServeDish(orderID string) (GameState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.guardMutable(); err != nil {
		return e.state.Clone(), e.reject("serve", err)
	}
	idx := e.state.findOrder(orderID)
	if idx < 0 {
		return e.state.Clone(), e.reject("serve", ErrUnknownOrder)
	}
	recipeID := e.state.ActiveOrders[idx].RecipeID

	slot := -1
	for i := range e.state.Stoves {
		if e.state.Stoves[i].State == stove.StateDone && e.state.Stoves[i].DishID == recipeID {
			slot = i
			break
		}
	}
	if slot < 0 {
		return e.state.Clone(), e.reject("serve", ErrNoMatchingDish)
	}

	next := e.state.Clone()
	next.Stoves[slot].Reset()
	e.fulfill(&next, next.findOrder(orderID))
	e.state = next

	e.accept()
	return e.state.Clone(), nil
}

// InstallStove charges the install cost now and starts the countdown on an
// uninstalled slot.
func (e *Engine) InstallStove(stoveID int) (GameState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.guardMutable(); err != nil {
		return e.state.Clone(), e.reject("install", err)
	}
	s := e.state.findStove(stoveID)
	if s == nil {
		return e.state.Clone(), e.reject("install", ErrUnknownStove)
	}
	switch s.State {
	case stove.StateInstalling:
		return e.state.Clone(), e.reject("install", ErrAlreadyInstalling)
	case stove.StateUninstalled:
		// eligible
	default:
		return e.state.Clone(), e.reject("install", ErrAlreadyInstalled)
	}
	if e.state.Money < stove.InstallCost {
		return e.state.Clone(), e.reject("install", ErrInsufficientFunds)
	}

	next := e.state.Clone()
	ns := next.findStove(stoveID)
	ns.State = stove.StateInstalling
	ns.InstallTimeLeft = stove.InstallDuration
	next.Money -= stove.InstallCost
	e.state = next

	e.accept()
	e.emit(events.EventTypeInstallStarted, events.SeverityInfo, "%d 号灶开始安装，支出 -$%d", stoveID, stove.InstallCost)
	return e.state.Clone(), nil
}

// TogglePause flips the pause flag. It is the one mutating action allowed
// while paused; while paused the ticker still fires but advances nothing.
func (e *Engine) TogglePause() (GameState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Status != StatusPlaying {
		return e.state.Clone(), e.reject("pause", ErrNotPlaying)
	}
	next := e.state.Clone()
	next.Paused = !next.Paused
	e.state = next

	e.accept()
	if e.state.Paused {
		e.emit(events.EventTypePauseToggled, events.SeverityInfo, "游戏已暂停")
	} else {
		e.emit(events.EventTypePauseToggled, events.SeverityInfo, "游戏继续")
	}
	return e.state.Clone(), nil
}

// fulfill applies the economic effects of completing the order at idx on the
// working state and removes it from the board. Caller holds the lock and
// publishes the state afterwards.
func (e *Engine) fulfill(s *GameState, idx int) {
	o := s.ActiveOrders[idx]
	recipe, _ := catalog.GetRecipe(o.RecipeID)
	popGain, tip := rules.FulfillReward(o.Type)

	s.Money += recipe.SalePrice + tip
	s.TotalRevenue += recipe.SalePrice + tip
	s.Popularity = rules.ClampPopularity(s.Popularity + popGain)
	s.removeOrder(idx)

	suffix := ""
	switch o.Type {
	case order.CustomerBlogger:
		suffix = " (金牌博主推荐!)"
	case order.CustomerHappy:
		suffix = " (厚礼小费+$20!)"
	}
	metrics.Get().RecordOrderServed()
	e.emit(events.EventTypeOrderServed, events.SeveritySuccess, "成功卖出: %s! +$%d%s", recipe.Name, recipe.SalePrice+tip, suffix)
}
