package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ywchen/kitchen-master/server/internal/engine"
	"github.com/ywchen/kitchen-master/server/internal/events"
	"github.com/ywchen/kitchen-master/server/internal/platform/logger"
)

func newDispatchEngine() *engine.Engine {
	return engine.NewEngine(engine.NewSpawner(1), events.NewEventLog(nil), logger.NewLogger())
}

func TestDispatchStartGame(t *testing.T) {
	eng := newDispatchEngine()

	st, err := Dispatch(eng, PlayerAction{Action: "start_game"})

	require.NoError(t, err)
	assert.Equal(t, engine.StatusPlaying, st.Status)
}

func TestDispatchBuyRoutesIngredient(t *testing.T) {
	eng := newDispatchEngine()
	Dispatch(eng, PlayerAction{Action: "start_game"})

	st, err := Dispatch(eng, PlayerAction{Action: "buy", IngredientID: "tomato"})

	require.NoError(t, err)
	assert.Equal(t, engine.InitialMoney-6, st.Money)
	require.Len(t, st.PendingDeliveries, 1)
}

func TestDispatchPropagatesRejections(t *testing.T) {
	eng := newDispatchEngine()
	Dispatch(eng, PlayerAction{Action: "start_game"})

	_, err := Dispatch(eng, PlayerAction{Action: "buy", IngredientID: "caviar"})
	assert.ErrorIs(t, err, engine.ErrUnknownIngredient)

	_, err = Dispatch(eng, PlayerAction{Action: "serve", OrderID: "nobody"})
	assert.ErrorIs(t, err, engine.ErrUnknownOrder)
}

func TestDispatchUnknownAction(t *testing.T) {
	eng := newDispatchEngine()

	_, err := Dispatch(eng, PlayerAction{Action: "dance"})

	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestDispatchTogglePause(t *testing.T) {
	eng := newDispatchEngine()
	Dispatch(eng, PlayerAction{Action: "start_game"})

	st, err := Dispatch(eng, PlayerAction{Action: "toggle_pause"})
	require.NoError(t, err)
	assert.True(t, st.Paused)

	st, err = Dispatch(eng, PlayerAction{Action: "toggle_pause"})
	require.NoError(t, err)
	assert.False(t, st.Paused)
}
