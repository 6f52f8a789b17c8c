package engine

import (
	"github.com/ywchen/kitchen-master/server/internal/domain/catalog"
	"github.com/ywchen/kitchen-master/server/internal/domain/order"
	"github.com/ywchen/kitchen-master/server/internal/domain/stove"
)

// Core game constants.
const (
	GameDuration = 240 // seconds per run
	InitialMoney = 100
	StorageCap   = 10 // per-ingredient cap, on-hand plus in-flight

	StoveSlots         = 4
	PreinstalledStoves = 2
)

// GameStatus is the lifecycle state of a run.
type GameStatus string

const (
	StatusIdle    GameStatus = "idle"
	StatusPlaying GameStatus = "playing"
	StatusEnded   GameStatus = "ended"
)

// PendingDelivery is a purchased ingredient unit in transit. Money was
// charged when it was created; inventory is credited when it arrives.
type PendingDelivery struct {
	ID           string               `json:"id"`
	IngredientID catalog.IngredientID `json:"ingredient_id"`
	TimeLeft     int                  `json:"time_left"`
}

// GameState is the single authoritative root state. The engine treats it as
// a value: each tick and each action computes a replacement under the
// engine's lock and publishes deep copies to readers, so no observer ever
// sees half of one transition mixed with half of another.
type GameState struct {
	Money             int                          `json:"money"`
	Inventory         map[catalog.IngredientID]int `json:"inventory"`
	Stoves            []stove.Stove                `json:"stoves"`
	ActiveOrders      []order.Order                `json:"active_orders"`
	PendingDeliveries []PendingDelivery            `json:"pending_deliveries"`
	TotalRevenue      int                          `json:"total_revenue"`
	Popularity        int                          `json:"popularity"`
	TimeLeft          int                          `json:"time_left"`
	Status            GameStatus                   `json:"status"`
	Paused            bool                         `json:"paused"`
}

// NewGameState returns the fixed starting state of a fresh run.
func NewGameState() GameState {
	inv := make(map[catalog.IngredientID]int, len(catalog.AllIngredients))
	for _, id := range catalog.AllIngredients {
		inv[id] = 0
	}
	stoves := make([]stove.Stove, StoveSlots)
	for i := range stoves {
		stoves[i] = stove.NewSlot(i, i < PreinstalledStoves)
	}
	return GameState{
		Money:             InitialMoney,
		Inventory:         inv,
		Stoves:            stoves,
		ActiveOrders:      []order.Order{},
		PendingDeliveries: []PendingDelivery{},
		TotalRevenue:      0,
		Popularity:        100,
		TimeLeft:          GameDuration,
		Status:            StatusIdle,
	}
}

// Clone returns an independent deep copy of the state.
func (s GameState) Clone() GameState {
	c := s
	c.Inventory = make(map[catalog.IngredientID]int, len(s.Inventory))
	for k, v := range s.Inventory {
		c.Inventory[k] = v
	}
	c.Stoves = append([]stove.Stove(nil), s.Stoves...)
	c.ActiveOrders = append([]order.Order(nil), s.ActiveOrders...)
	c.PendingDeliveries = append([]PendingDelivery(nil), s.PendingDeliveries...)
	return c
}

// pendingCount returns the number of in-flight deliveries for an ingredient.
func (s *GameState) pendingCount(id catalog.IngredientID) int {
	n := 0
	for _, d := range s.PendingDeliveries {
		if d.IngredientID == id {
			n++
		}
	}
	return n
}

// findStove returns a pointer into the state's stove slice, or nil.
func (s *GameState) findStove(id int) *stove.Stove {
	for i := range s.Stoves {
		if s.Stoves[i].ID == id {
			return &s.Stoves[i]
		}
	}
	return nil
}

// findOrder returns the index of an active order, or -1.
func (s *GameState) findOrder(id string) int {
	for i := range s.ActiveOrders {
		if s.ActiveOrders[i].ID == id {
			return i
		}
	}
	return -1
}

// removeOrder deletes the order at index i preserving board order.
func (s *GameState) removeOrder(i int) {
	s.ActiveOrders = append(s.ActiveOrders[:i], s.ActiveOrders[i+1:]...)
}
