// Package main - simulator
// Headless bot that drives full game runs through the engine at maximum
// speed. Used to sanity-check balance changes and to exercise the whole
// action surface without a browser attached.
package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/ywchen/kitchen-master/server/internal/domain/catalog"
	"github.com/ywchen/kitchen-master/server/internal/domain/stove"
	"github.com/ywchen/kitchen-master/server/internal/engine"
	"github.com/ywchen/kitchen-master/server/internal/events"
	"github.com/ywchen/kitchen-master/server/internal/platform/logger"
)

// RunResult summarizes one finished game.
type RunResult struct {
	FinalMoney      int
	FinalPopularity int
	TotalRevenue    int
	TicksPlayed     int
	Events          int
}

func main() {
	var (
		seed    int64
		games   int
		verbose bool
	)

	rootCmd := &cobra.Command{
		Use:   "simulator",
		Short: "Run headless Kitchen Master games against the engine",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGames(seed, games, verbose)
		},
	}
	rootCmd.Flags().Int64Var(&seed, "seed", 1, "Base RNG seed (game i uses seed+i)")
	rootCmd.Flags().IntVar(&games, "games", 1, "Number of games to simulate")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log every engine event")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runGames(seed int64, games int, verbose bool) error {
	fmt.Println("=========================================")
	fmt.Println("KITCHEN MASTER - Headless Simulator")
	fmt.Println("=========================================")
	fmt.Printf("Base seed: %d\n", seed)
	fmt.Printf("Games:     %d\n", games)
	fmt.Println("=========================================")

	var totalMoney, totalRevenue, bankruptcies int
	for i := 0; i < games; i++ {
		res := playOne(seed+int64(i), verbose)
		totalMoney += res.FinalMoney
		totalRevenue += res.TotalRevenue
		if res.TicksPlayed < engine.GameDuration {
			bankruptcies++
		}
		fmt.Printf("Game %3d: money=$%-5d revenue=$%-5d popularity=%-3d ticks=%d events=%d\n",
			i+1, res.FinalMoney, res.TotalRevenue, res.FinalPopularity, res.TicksPlayed, res.Events)
	}

	fmt.Println("-----------------------------------------")
	fmt.Printf("Avg final money:   $%.1f\n", float64(totalMoney)/float64(games))
	fmt.Printf("Avg revenue:       $%.1f\n", float64(totalRevenue)/float64(games))
	fmt.Printf("Early terminations: %d/%d\n", bankruptcies, games)
	return nil
}

// playOne runs a single game to completion with a simple greedy policy:
// accept everything, keep ingredients for open orders on the way, cook as
// soon as a stove and ingredients line up, serve the moment a dish is done.
func playOne(seed int64, verbose bool) RunResult {
	appLogger := logger.NewLogger()
	eventLog := events.NewEventLog(nil)
	eng := engine.NewEngine(engine.NewSpawner(seed), eventLog, appLogger)
	policyRNG := rand.New(rand.NewSource(seed))

	state := eng.StartGame()
	ticks := 0
	for state.Status == engine.StatusPlaying {
		botTurn(eng, policyRNG)
		eng.Tick()
		state = eng.Snapshot()
		ticks++
	}

	if verbose {
		for _, ev := range eventLog.Since(0) {
			fmt.Printf("  [%s] %s\n", ev.Type, ev.Message)
		}
	}

	return RunResult{
		FinalMoney:      state.Money,
		FinalPopularity: state.Popularity,
		TotalRevenue:    state.TotalRevenue,
		TicksPlayed:     ticks,
		Events:          eventLog.Len(),
	}
}

// botTurn issues the actions a reasonable player would take this second.
// Rejections are expected and ignored; the engine is the referee.
func botTurn(eng *engine.Engine, rng *rand.Rand) {
	state := eng.Snapshot()

	for _, o := range state.ActiveOrders {
		if o.Cooking {
			continue
		}
		recipe, ok := catalog.GetRecipe(o.RecipeID)
		if !ok {
			continue
		}
		if hasIngredients(state, recipe) {
			if _, err := eng.StartCooking(recipe.ID, o.ID); err == nil {
				state = eng.Snapshot()
			}
			continue
		}
		orderMissingIngredients(eng, &state, recipe)
	}

	for _, s := range state.Stoves {
		if s.State == stove.StateDone && s.OrderID != "" {
			eng.ServeDish(s.OrderID)
		}
	}

	// Expand capacity once the bankroll comfortably covers it.
	if state.Money >= stove.InstallCost*2 {
		for _, s := range state.Stoves {
			if s.State == stove.StateUninstalled {
				eng.InstallStove(s.ID)
				break
			}
		}
	}

	// Occasionally dump a stale surplus unit to keep shelves honest.
	if rng.Intn(100) == 0 {
		for id, n := range state.Inventory {
			if n >= engine.StorageCap {
				eng.SellIngredient(id)
				break
			}
		}
	}
}

func hasIngredients(state engine.GameState, recipe catalog.Recipe) bool {
	for id, need := range recipe.Ingredients {
		if state.Inventory[id] < need {
			return false
		}
	}
	return true
}

// orderMissingIngredients buys toward one pending recipe, counting units
// already in flight so the bot never double-orders.
func orderMissingIngredients(eng *engine.Engine, state *engine.GameState, recipe catalog.Recipe) {
	for id, need := range recipe.Ingredients {
		inFlight := 0
		for _, d := range state.PendingDeliveries {
			if d.IngredientID == id {
				inFlight++
			}
		}
		for have := state.Inventory[id] + inFlight; have < need; have++ {
			next, err := eng.BuyIngredient(id)
			if err != nil {
				return
			}
			*state = next
		}
	}
}
