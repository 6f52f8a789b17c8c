// Package stove defines the cook station entity and its state machine.
// This package is PURE and must NOT import any infrastructure packages.
package stove

// State is the single tagged state of a stove slot. A stove is in exactly
// one state at any time; the transitions are:
//
//	Uninstalled -> Installing -> Idle <-> Cooking -> Done -> Idle
type State string

const (
	StateUninstalled State = "UNINSTALLED"
	StateInstalling  State = "INSTALLING"
	StateIdle        State = "IDLE"
	StateCooking     State = "COOKING"
	StateDone        State = "DONE" // cooked dish waiting for serve or discard
)

// InstallCost is the money charged when installation of a slot begins.
const InstallCost = 150

// InstallDuration is how long (seconds) an installation takes.
const InstallDuration = 15

// Stove is one cook station slot. Slots are created at game start and never
// destroyed; only State and the state-relevant fields below change.
type Stove struct {
	ID    int   `json:"id"` // stable slot index
	State State `json:"state"`

	InstallTimeLeft int `json:"install_time_left"` // Installing only

	DishID        string `json:"dish_id"`        // Cooking and Done
	OrderID       string `json:"order_id"`       // Cooking, optional bound order
	TimeRemaining int    `json:"time_remaining"` // Cooking only
	CookingTime   int    `json:"cooking_time"`   // total, for progress
}

// NewSlot returns a slot in its initial state. Pre-installed slots start
// Idle, the rest must be bought in-game.
func NewSlot(id int, installed bool) Stove {
	s := Stove{ID: id, State: StateUninstalled}
	if installed {
		s.State = StateIdle
	}
	return s
}

// Installed reports whether the slot has a usable burner.
func (s *Stove) Installed() bool {
	return s.State != StateUninstalled && s.State != StateInstalling
}

// Progress returns cook completion 0-100. Derived from the countdown at read
// time; never stored, so it cannot drift.
func (s *Stove) Progress() float64 {
	if s.State != StateCooking || s.CookingTime <= 0 {
		return 0
	}
	return float64(s.CookingTime-s.TimeRemaining) / float64(s.CookingTime) * 100
}

// Reset returns the slot to Idle, clearing all cook fields.
func (s *Stove) Reset() {
	s.State = StateIdle
	s.DishID = ""
	s.OrderID = ""
	s.TimeRemaining = 0
	s.CookingTime = 0
}
