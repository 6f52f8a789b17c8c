package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ywchen/kitchen-master/server/internal/domain/catalog"
	"github.com/ywchen/kitchen-master/server/internal/domain/order"
	"github.com/ywchen/kitchen-master/server/internal/domain/stove"
	"github.com/ywchen/kitchen-master/server/internal/events"
	"github.com/ywchen/kitchen-master/server/internal/platform/logger"
)

func newTestEngine(seed int64) (*Engine, *events.EventLog) {
	el := events.NewEventLog(nil)
	return NewEngine(NewSpawner(seed), el, logger.NewLogger()), el
}

// playingState returns a minimal running state the tests can shape freely.
// Popularity 45 keeps the board capacity at 2 so reconciliation stays
// predictable.
func playingState(orders ...order.Order) GameState {
	st := NewGameState()
	st.Status = StatusPlaying
	st.Popularity = 45
	st.ActiveOrders = append(st.ActiveOrders, orders...)
	return st
}

func TestStartGame(t *testing.T) {
	e, el := newTestEngine(1)

	st := e.StartGame()

	assert.Equal(t, StatusPlaying, st.Status)
	assert.Equal(t, InitialMoney, st.Money)
	assert.Equal(t, 100, st.Popularity)
	assert.Equal(t, GameDuration, st.TimeLeft)
	assert.Len(t, st.ActiveOrders, 4, "full popularity opens a full board")
	require.Len(t, st.Stoves, StoveSlots)
	for i, s := range st.Stoves {
		if i < PreinstalledStoves {
			assert.Equal(t, stove.StateIdle, s.State, "slot %d", i)
		} else {
			assert.Equal(t, stove.StateUninstalled, s.State, "slot %d", i)
		}
	}
	require.GreaterOrEqual(t, el.Len(), 1)
	assert.Equal(t, events.EventTypeGameStarted, el.Since(0)[0].Type)
}

func TestStartGameResetsPreviousRun(t *testing.T) {
	e, _ := newTestEngine(1)
	e.StartGame()
	e.state.Money = 9
	e.state.Popularity = 3
	e.state.Status = StatusEnded

	st := e.StartGame()

	assert.Equal(t, InitialMoney, st.Money)
	assert.Equal(t, 100, st.Popularity)
	assert.Equal(t, StatusPlaying, st.Status)
}

func TestBuyIngredientChargesUpFront(t *testing.T) {
	e, _ := newTestEngine(1)
	e.StartGame()

	st, err := e.BuyIngredient(catalog.IngredientTomato)

	require.NoError(t, err)
	assert.Equal(t, InitialMoney-6, st.Money, "money leaves at purchase, not delivery")
	assert.Zero(t, st.Inventory[catalog.IngredientTomato])
	require.Len(t, st.PendingDeliveries, 1)
	assert.Equal(t, catalog.IngredientTomato, st.PendingDeliveries[0].IngredientID)
	assert.Equal(t, 12, st.PendingDeliveries[0].TimeLeft)
}

func TestBuyRejectsWhenStorageFull(t *testing.T) {
	// The cap counts on-hand plus in-flight: 9 on the shelf and one truck on
	// the road leave no room for a tenth order.
	e, _ := newTestEngine(1)
	e.StartGame()
	e.state.Inventory[catalog.IngredientMeat] = 9

	_, err := e.BuyIngredient(catalog.IngredientMeat)
	require.NoError(t, err)

	st, err := e.BuyIngredient(catalog.IngredientMeat)
	assert.ErrorIs(t, err, ErrStorageFull)
	assert.Len(t, st.PendingDeliveries, 1, "rejected purchase queues nothing")
}

func TestBuyRejectsWhenBroke(t *testing.T) {
	e, _ := newTestEngine(1)
	e.StartGame()
	e.state.Money = 5

	st, err := e.BuyIngredient(catalog.IngredientTomato)

	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, 5, st.Money)
}

func TestBuyRejectsUnknownIngredient(t *testing.T) {
	e, _ := newTestEngine(1)
	e.StartGame()

	_, err := e.BuyIngredient("caviar")

	assert.ErrorIs(t, err, ErrUnknownIngredient)
}

func TestSellIngredientRefundsHalf(t *testing.T) {
	e, _ := newTestEngine(1)
	e.StartGame()
	e.state.Inventory[catalog.IngredientMeat] = 2

	st, err := e.SellIngredient(catalog.IngredientMeat)

	require.NoError(t, err)
	assert.Equal(t, 1, st.Inventory[catalog.IngredientMeat])
	assert.Equal(t, InitialMoney+12, st.Money) // meat costs 24
}

func TestSellRejectsEmptyShelf(t *testing.T) {
	e, _ := newTestEngine(1)
	e.StartGame()

	_, err := e.SellIngredient(catalog.IngredientCheese)

	assert.ErrorIs(t, err, ErrIngredientShortage)
}

func TestStartCookingDebitsIngredientsImmediately(t *testing.T) {
	e, _ := newTestEngine(1)
	e.state = playingState()
	e.state.Inventory[catalog.IngredientPotato] = 3

	st, err := e.StartCooking("fries", "")

	require.NoError(t, err)
	assert.Equal(t, 1, st.Inventory[catalog.IngredientPotato], "full cost debited at start")
	s := st.Stoves[0]
	assert.Equal(t, stove.StateCooking, s.State)
	assert.Equal(t, "fries", s.DishID)
	assert.Equal(t, 8, s.TimeRemaining)
	assert.Equal(t, 8, s.CookingTime)
	assert.Empty(t, s.OrderID)
}

func TestStartCookingRejectsShortage(t *testing.T) {
	e, _ := newTestEngine(1)
	e.state = playingState()
	e.state.Inventory[catalog.IngredientPotato] = 1

	st, err := e.StartCooking("fries", "")

	assert.ErrorIs(t, err, ErrIngredientShortage)
	assert.Equal(t, 1, st.Inventory[catalog.IngredientPotato], "nothing debited on rejection")
}

func TestStartCookingRejectsWithoutIdleStove(t *testing.T) {
	e, _ := newTestEngine(1)
	e.state = playingState()
	e.state.Inventory[catalog.IngredientPotato] = 4
	_, err := e.StartCooking("fries", "")
	require.NoError(t, err)
	_, err = e.StartCooking("fries", "")
	require.NoError(t, err)

	// Both pre-installed burners are busy and slots 2-3 are not installed.
	_, err = e.StartCooking("fries", "")

	assert.ErrorIs(t, err, ErrNoAvailableStove)
}

func TestStartCookingRejectsUnknownRecipeAndOrder(t *testing.T) {
	e, _ := newTestEngine(1)
	e.state = playingState()

	_, err := e.StartCooking("sushi", "")
	assert.ErrorIs(t, err, ErrUnknownRecipe)

	_, err = e.StartCooking("fries", "nobody")
	assert.ErrorIs(t, err, ErrUnknownOrder)
}

func TestAcceptOrderBindsTheCook(t *testing.T) {
	e, _ := newTestEngine(1)
	ord := order.Order{ID: "o-1", RecipeID: "fries", ExpiryTime: 60, MaxTime: order.MaxTime, Seq: 1}
	e.state = playingState(ord)
	e.state.Inventory[catalog.IngredientPotato] = 2

	st, err := e.AcceptOrder("o-1")

	require.NoError(t, err)
	assert.Equal(t, "o-1", st.Stoves[0].OrderID)
	assert.True(t, st.ActiveOrders[0].Cooking)
}

func TestAcceptOrderRejectsWhenAlreadyCooking(t *testing.T) {
	e, _ := newTestEngine(1)
	ord := order.Order{ID: "o-1", RecipeID: "fries", ExpiryTime: 60, MaxTime: order.MaxTime, Seq: 1}
	e.state = playingState(ord)
	e.state.Inventory[catalog.IngredientPotato] = 4
	_, err := e.AcceptOrder("o-1")
	require.NoError(t, err)

	_, err = e.AcceptOrder("o-1")

	assert.ErrorIs(t, err, ErrOrderInProgress)
}

func TestCancelCookingForfeitsIngredients(t *testing.T) {
	e, _ := newTestEngine(1)
	ord := order.Order{ID: "o-1", RecipeID: "fries", ExpiryTime: 60, MaxTime: order.MaxTime, Seq: 1}
	e.state = playingState(ord)
	e.state.Inventory[catalog.IngredientPotato] = 2
	_, err := e.AcceptOrder("o-1")
	require.NoError(t, err)

	st, err := e.CancelCooking(0)

	require.NoError(t, err)
	assert.Equal(t, stove.StateIdle, st.Stoves[0].State)
	assert.Zero(t, st.Inventory[catalog.IngredientPotato], "no refund on cancel")
	assert.False(t, st.ActiveOrders[0].Cooking, "order is released for another attempt")
}

func TestCancelCookingRejectsIdleStove(t *testing.T) {
	e, _ := newTestEngine(1)
	e.state = playingState()

	_, err := e.CancelCooking(0)
	assert.ErrorIs(t, err, ErrStoveNotCooking)

	_, err = e.CancelCooking(99)
	assert.ErrorIs(t, err, ErrUnknownStove)
}

func TestDiscardDish(t *testing.T) {
	e, _ := newTestEngine(1)
	e.state = playingState()
	e.state.Stoves[0].State = stove.StateDone
	e.state.Stoves[0].DishID = "fries"

	st, err := e.DiscardDish(0)

	require.NoError(t, err)
	assert.Equal(t, stove.StateIdle, st.Stoves[0].State)
	assert.Empty(t, st.Stoves[0].DishID)
}

func TestDiscardRejectsWithoutDish(t *testing.T) {
	e, _ := newTestEngine(1)
	e.state = playingState()

	_, err := e.DiscardDish(0)

	assert.ErrorIs(t, err, ErrNoCookedDish)
}

func TestServeDishFulfillsTheOrder(t *testing.T) {
	e, _ := newTestEngine(1)
	ord := order.Order{ID: "o-1", RecipeID: "fries", ExpiryTime: 60, MaxTime: order.MaxTime, Type: order.CustomerNormal, Seq: 1}
	e.state = playingState(ord)
	e.state.Stoves[0].State = stove.StateDone
	e.state.Stoves[0].DishID = "fries"

	st, err := e.ServeDish("o-1")

	require.NoError(t, err)
	assert.Equal(t, InitialMoney+25, st.Money)
	assert.Equal(t, 25, st.TotalRevenue)
	assert.Equal(t, 46, st.Popularity)
	assert.Empty(t, st.ActiveOrders)
	assert.Equal(t, stove.StateIdle, st.Stoves[0].State)
}

func TestServeDishPaysHappyCustomerTip(t *testing.T) {
	e, _ := newTestEngine(1)
	ord := order.Order{ID: "o-1", RecipeID: "fries", ExpiryTime: 60, MaxTime: order.MaxTime, Type: order.CustomerHappy, Seq: 1}
	e.state = playingState(ord)
	e.state.Stoves[0].State = stove.StateDone
	e.state.Stoves[0].DishID = "fries"

	st, err := e.ServeDish("o-1")

	require.NoError(t, err)
	assert.Equal(t, InitialMoney+25+20, st.Money)
	assert.Equal(t, 45+10, st.Popularity)
}

func TestServeDishRequiresMatchingDish(t *testing.T) {
	e, _ := newTestEngine(1)
	ord := order.Order{ID: "o-1", RecipeID: "burger", ExpiryTime: 60, MaxTime: order.MaxTime, Seq: 1}
	e.state = playingState(ord)
	e.state.Stoves[0].State = stove.StateDone
	e.state.Stoves[0].DishID = "fries" // wrong dish on the pass

	_, err := e.ServeDish("o-1")

	assert.ErrorIs(t, err, ErrNoMatchingDish)
}

func TestInstallStove(t *testing.T) {
	e, _ := newTestEngine(1)
	e.state = playingState()
	e.state.Money = 200

	st, err := e.InstallStove(2)

	require.NoError(t, err)
	assert.Equal(t, 50, st.Money)
	assert.Equal(t, stove.StateInstalling, st.Stoves[2].State)
	assert.Equal(t, stove.InstallDuration, st.Stoves[2].InstallTimeLeft)
}

func TestInstallStoveRejections(t *testing.T) {
	e, _ := newTestEngine(1)
	e.state = playingState()
	e.state.Money = 500

	_, err := e.InstallStove(0)
	assert.ErrorIs(t, err, ErrAlreadyInstalled)

	_, err = e.InstallStove(9)
	assert.ErrorIs(t, err, ErrUnknownStove)

	_, err = e.InstallStove(2)
	require.NoError(t, err)
	_, err = e.InstallStove(2)
	assert.ErrorIs(t, err, ErrAlreadyInstalling)

	e.state.Money = 10
	_, err = e.InstallStove(3)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestPauseBlocksEveryActionButToggle(t *testing.T) {
	e, _ := newTestEngine(1)
	e.StartGame()
	_, err := e.TogglePause()
	require.NoError(t, err)

	_, err = e.BuyIngredient(catalog.IngredientTomato)
	assert.ErrorIs(t, err, ErrActionWhilePaused)
	_, err = e.StartCooking("fries", "")
	assert.ErrorIs(t, err, ErrActionWhilePaused)
	_, err = e.InstallStove(2)
	assert.ErrorIs(t, err, ErrActionWhilePaused)

	st, err := e.TogglePause()
	require.NoError(t, err)
	assert.False(t, st.Paused)
}

func TestActionsRejectedOutsideARun(t *testing.T) {
	e, _ := newTestEngine(1)

	_, err := e.BuyIngredient(catalog.IngredientTomato)
	assert.ErrorIs(t, err, ErrNotPlaying)

	_, err = e.TogglePause()
	assert.ErrorIs(t, err, ErrNotPlaying)
}

func TestSnapshotIsIsolated(t *testing.T) {
	e, _ := newTestEngine(1)
	e.StartGame()

	snap := e.Snapshot()
	snap.Money = -999
	snap.Inventory[catalog.IngredientTomato] = 42
	snap.Stoves[0].State = stove.StateDone

	fresh := e.Snapshot()
	assert.Equal(t, InitialMoney, fresh.Money)
	assert.Zero(t, fresh.Inventory[catalog.IngredientTomato])
	assert.Equal(t, stove.StateIdle, fresh.Stoves[0].State)
}
