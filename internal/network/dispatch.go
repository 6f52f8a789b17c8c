package network

import (
	"errors"

	"github.com/ywchen/kitchen-master/server/internal/domain/catalog"
	"github.com/ywchen/kitchen-master/server/internal/engine"
)

// ErrUnknownAction rejects an action name no surface understands.
var ErrUnknownAction = errors.New("unknown action")

// Dispatch routes one PlayerAction to the engine's action API and returns
// the resulting snapshot. Shared by the WebSocket pump and the HTTP action
// endpoint so both surfaces stay in lockstep.
func Dispatch(eng *engine.Engine, action PlayerAction) (engine.GameState, error) {
	switch action.Action {
	case "start_game":
		return eng.StartGame(), nil
	case "buy":
		return eng.BuyIngredient(catalog.IngredientID(action.IngredientID))
	case "sell":
		return eng.SellIngredient(catalog.IngredientID(action.IngredientID))
	case "cook":
		return eng.StartCooking(action.RecipeID, action.OrderID)
	case "accept_order":
		return eng.AcceptOrder(action.OrderID)
	case "cancel_cooking":
		return eng.CancelCooking(action.StoveID)
	case "discard_dish":
		return eng.DiscardDish(action.StoveID)
	case "serve":
		return eng.ServeDish(action.OrderID)
	case "install_stove":
		return eng.InstallStove(action.StoveID)
	case "toggle_pause":
		return eng.TogglePause()
	default:
		return eng.Snapshot(), ErrUnknownAction
	}
}
