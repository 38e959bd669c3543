package game

// Powerup is a purchasable, consumable inventory item. Redemption only
// consumes it; the in-exam effect is not wired up yet.
type Powerup struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Price       int    `json:"price"`
}

// Catalog is the fixed shop inventory; prices are looked up here, never
// taken from the client.
var Catalog = []Powerup{
	{ID: "streak-freeze", Name: "Streak Freeze", Description: "Protects your streak for one missed day.", Icon: "snowflake", Price: 50},
	{ID: "double-points", Name: "Double Points", Description: "Doubles the points of your next daily answer.", Icon: "zap", Price: 100},
	{ID: "hint", Name: "Hint", Description: "Removes one wrong option from a question.", Icon: "lightbulb", Price: 30},
	{ID: "answer-shield", Name: "Answer Shield", Description: "One wrong answer does not break your streak.", Icon: "shield", Price: 75},
	{ID: "extra-question", Name: "Extra Question", Description: "Unlocks a bonus daily question.", Icon: "plus-circle", Price: 40},
}

// CatalogLookup returns the catalog entry for id.
func CatalogLookup(id string) (Powerup, bool) {
	for _, p := range Catalog {
		if p.ID == id {
			return p, true
		}
	}
	return Powerup{}, false
}
