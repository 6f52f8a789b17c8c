package engine

import "errors"

// Sentinel rejection errors surfaced synchronously by the action API. All are
// expected, user-facing outcomes; none are fatal to a running game.
var (
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrStorageFull        = errors.New("storage full")
	ErrIngredientShortage = errors.New("ingredient shortage")
	ErrNoAvailableStove   = errors.New("no available stove")
	ErrNoMatchingDish     = errors.New("no matching cooked dish")
	ErrActionWhilePaused  = errors.New("action rejected while paused")
	ErrAlreadyInstalling  = errors.New("stove already installing")
	ErrAlreadyInstalled   = errors.New("stove already installed")
	ErrNotPlaying         = errors.New("no game in progress")
	ErrStoveNotCooking    = errors.New("stove is not cooking")
	ErrNoCookedDish       = errors.New("stove holds no cooked dish")
	ErrUnknownIngredient  = errors.New("unknown ingredient")
	ErrUnknownRecipe      = errors.New("unknown recipe")
	ErrUnknownOrder       = errors.New("unknown order")
	ErrOrderInProgress    = errors.New("order already being cooked")
	ErrUnknownStove       = errors.New("unknown stove")
)
