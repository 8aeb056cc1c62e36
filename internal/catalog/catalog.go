package catalog

import "strings"

// FallbackCategory is returned for any item missing from the table.
const FallbackCategory = "Others"

var categories = map[string]string{
	"apple":       "Fruits",
	"apples":      "Fruits",
	"banana":      "Fruits",
	"bananas":     "Fruits",
	"orange":      "Fruits",
	"oranges":     "Fruits",
	"mango":       "Fruits",
	"grapes":      "Fruits",
	"tomato":      "Vegetables",
	"tomatoes":    "Vegetables",
	"potato":      "Vegetables",
	"potatoes":    "Vegetables",
	"onion":       "Vegetables",
	"onions":      "Vegetables",
	"carrot":      "Vegetables",
	"carrots":     "Vegetables",
	"spinach":     "Vegetables",
	"milk":        "Dairy",
	"cheese":      "Dairy",
	"butter":      "Dairy",
	"yogurt":      "Dairy",
	"curd":        "Dairy",
	"eggs":        "Dairy",
	"bread":       "Bakery",
	"buns":        "Bakery",
	"cake":        "Bakery",
	"rice":        "Grains",
	"wheat":       "Grains",
	"flour":       "Grains",
	"oats":        "Grains",
	"pasta":       "Grains",
	"chicken":     "Meat",
	"fish":        "Meat",
	"mutton":      "Meat",
	"prawns":      "Meat",
	"salt":        "Condiments",
	"sugar":       "Condiments",
	"pepper":      "Condiments",
	"oil":         "Condiments",
	"ketchup":     "Condiments",
	"tea":         "Beverages",
	"coffee":      "Beverages",
	"juice":       "Beverages",
	"water":       "Beverages",
	"soap":        "Household",
	"shampoo":     "Household",
	"detergent":   "Household",
	"toothpaste":  "Household",
	"tissues":     "Household",
	"chips":       "Snacks",
	"biscuits":    "Snacks",
	"chocolate":   "Snacks",
	"cookies":     "Snacks",
	"ice cream":   "Snacks",
	"noodles":     "Instant Food",
	"soup":        "Instant Food",
	"cereal":      "Instant Food",
	"cornflakes":  "Instant Food",
}

// Categorize maps an item name to its category. Lookup is case-insensitive
// and ignores surrounding whitespace; unknown items fall back to "Others".
func Categorize(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if c, ok := categories[key]; ok {
		return c
	}
	return FallbackCategory
}
