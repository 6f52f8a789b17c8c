// Package catalog defines the static ingredient and recipe data for the
// restaurant. This package is PURE and must NOT import any infrastructure
// packages.
package catalog

import "fmt"

// IngredientID identifies one of the fixed purchasable ingredients.
type IngredientID string

const (
	IngredientTomato  IngredientID = "tomato"
	IngredientLettuce IngredientID = "lettuce"
	IngredientOnion   IngredientID = "onion"
	IngredientMeat    IngredientID = "meat"
	IngredientBread   IngredientID = "bread"
	IngredientCheese  IngredientID = "cheese"
	IngredientPotato  IngredientID = "potato"
)

// AllIngredients lists every ingredient id in a stable order.
var AllIngredients = []IngredientID{
	IngredientTomato,
	IngredientLettuce,
	IngredientOnion,
	IngredientMeat,
	IngredientBread,
	IngredientCheese,
	IngredientPotato,
}

// Ingredient describes a purchasable item: what it costs and how long the
// supplier takes to deliver one unit.
type Ingredient struct {
	ID           IngredientID `json:"id"`
	Name         string       `json:"name"`
	Price        int          `json:"price"`
	DeliveryTime int          `json:"delivery_time"` // seconds to arrive
	Icon         string       `json:"icon"`
}

// Ingredients contains all known ingredients and their properties.
var Ingredients = map[IngredientID]Ingredient{
	IngredientTomato:  {ID: IngredientTomato, Name: "番茄", Price: 6, DeliveryTime: 12, Icon: "🍅"},
	IngredientLettuce: {ID: IngredientLettuce, Name: "生菜", Price: 4, DeliveryTime: 8, Icon: "🥬"},
	IngredientOnion:   {ID: IngredientOnion, Name: "洋葱", Price: 3, DeliveryTime: 6, Icon: "🧅"},
	IngredientMeat:    {ID: IngredientMeat, Name: "牛肉饼", Price: 24, DeliveryTime: 25, Icon: "🥩"},
	IngredientBread:   {ID: IngredientBread, Name: "汉堡胚", Price: 9, DeliveryTime: 15, Icon: "🥯"},
	IngredientCheese:  {ID: IngredientCheese, Name: "芝士", Price: 12, DeliveryTime: 18, Icon: "🧀"},
	IngredientPotato:  {ID: IngredientPotato, Name: "土豆", Price: 6, DeliveryTime: 12, Icon: "🥔"},
}

// Recipe describes a cookable dish: the ingredients it consumes, how long it
// occupies a stove, and what a customer pays for it.
type Recipe struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Ingredients map[IngredientID]int `json:"ingredients"` // absent key = 0 required
	CookingTime int                  `json:"cooking_time"` // seconds
	SalePrice   int                  `json:"sale_price"`
	Icon        string               `json:"icon"`
}

// Recipes lists every dish on the menu in display order.
var Recipes = []Recipe{
	{
		ID:          "fries",
		Name:        "炸薯条",
		Ingredients: map[IngredientID]int{IngredientPotato: 2},
		CookingTime: 8,
		SalePrice:   25,
		Icon:        "🍟",
	},
	{
		ID:          "salad",
		Name:        "田园沙拉",
		Ingredients: map[IngredientID]int{IngredientTomato: 2, IngredientLettuce: 2, IngredientOnion: 1},
		CookingTime: 6,
		SalePrice:   48,
		Icon:        "🥗",
	},
	{
		ID:          "burger",
		Name:        "经典汉堡",
		Ingredients: map[IngredientID]int{IngredientBread: 1, IngredientMeat: 1, IngredientLettuce: 1},
		CookingTime: 12,
		SalePrice:   68,
		Icon:        "🍔",
	},
	{
		ID:          "cheeseburger",
		Name:        "芝士堡",
		Ingredients: map[IngredientID]int{IngredientBread: 1, IngredientMeat: 1, IngredientCheese: 1, IngredientLettuce: 1},
		CookingTime: 14,
		SalePrice:   88,
		Icon:        "🍔🧀",
	},
	{
		ID:          "pizza",
		Name:        "蔬菜披萨",
		Ingredients: map[IngredientID]int{IngredientBread: 1, IngredientTomato: 2, IngredientCheese: 1, IngredientOnion: 1},
		CookingTime: 20,
		SalePrice:   78,
		Icon:        "🍕",
	},
	{
		ID:          "steak",
		Name:        "牛排套餐",
		Ingredients: map[IngredientID]int{IngredientMeat: 2, IngredientPotato: 1},
		CookingTime: 25,
		SalePrice:   118,
		Icon:        "🥩🍟",
	},
}

// GetIngredient returns the definition for an ingredient id.
func GetIngredient(id IngredientID) (Ingredient, bool) {
	ing, ok := Ingredients[id]
	return ing, ok
}

// GetRecipe returns the recipe with the given id.
func GetRecipe(id string) (Recipe, bool) {
	for _, r := range Recipes {
		if r.ID == id {
			return r, true
		}
	}
	return Recipe{}, false
}

// Validate checks the referential integrity of the catalog. A recipe that
// names an unknown ingredient or a non-positive quantity is a configuration
// defect and must be rejected at startup, not at runtime.
func Validate() error {
	if len(Recipes) == 0 {
		return fmt.Errorf("catalog: no recipes defined")
	}
	seen := make(map[string]bool, len(Recipes))
	for _, r := range Recipes {
		if seen[r.ID] {
			return fmt.Errorf("catalog: duplicate recipe id %q", r.ID)
		}
		seen[r.ID] = true
		if r.CookingTime <= 0 {
			return fmt.Errorf("catalog: recipe %q has non-positive cooking time", r.ID)
		}
		if r.SalePrice <= 0 {
			return fmt.Errorf("catalog: recipe %q has non-positive sale price", r.ID)
		}
		if len(r.Ingredients) == 0 {
			return fmt.Errorf("catalog: recipe %q requires no ingredients", r.ID)
		}
		for id, qty := range r.Ingredients {
			if _, ok := Ingredients[id]; !ok {
				return fmt.Errorf("catalog: recipe %q references unknown ingredient %q", r.ID, id)
			}
			if qty <= 0 {
				return fmt.Errorf("catalog: recipe %q requires %d of %q", r.ID, qty, id)
			}
		}
	}
	for id, ing := range Ingredients {
		if ing.Price <= 0 || ing.DeliveryTime <= 0 {
			return fmt.Errorf("catalog: ingredient %q has invalid price or delivery time", id)
		}
	}
	return nil
}
