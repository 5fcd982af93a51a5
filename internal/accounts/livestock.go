package accounts

// Livestock categories tracked by the costing engine, with the inventory
// account each one posts to.
var livestockAccounts = map[string]string{
	"Male Goat":   "Male Goat Inventory",
	"Female Goat": "Female Goat Inventory",
	"Young Goat":  "Young Goat Biological Assets",
}

// InventoryAccount maps a livestock category to its inventory account.
func InventoryAccount(category string) (string, bool) {
	acc, ok := livestockAccounts[category]
	return acc, ok
}

// LivestockCategories lists tracked categories in a stable order.
func LivestockCategories() []string {
	return []string{"Male Goat", "Female Goat", "Young Goat"}
}

// LivestockAccounts lists the inventory accounts for all categories.
func LivestockAccounts() []string {
	out := make([]string, 0, len(livestockAccounts))
	for _, c := range LivestockCategories() {
		out = append(out, livestockAccounts[c])
	}
	return out
}
