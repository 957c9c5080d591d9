package models

// Category describes one entry of the static category table. Type decides
// the sign applied to newly created transactions.
type Category struct {
	Label string
	Icon  string
	Color string
	Type  Polarity
}

// Categories is the static category table. Keys and labels mirror the
// values the web client renders.
var Categories = map[string]Category{
	"salary":    {Label: "Receita", Icon: "banknote", Color: "green", Type: Income},
	"freelance": {Label: "Freelance", Icon: "laptop", Color: "emerald", Type: Income},
	"food":      {Label: "Alimentação", Icon: "utensils", Color: "orange", Type: Expense},
	"transport": {Label: "Transporte", Icon: "car", Color: "blue", Type: Expense},
	"home":      {Label: "Casa", Icon: "home", Color: "indigo", Type: Expense},
	"education": {Label: "Educação", Icon: "graduation-cap", Color: "cyan", Type: Expense},
	"leisure":   {Label: "Lazer", Icon: "gamepad-2", Color: "purple", Type: Expense},
	"health":    {Label: "Saúde", Icon: "heart", Color: "red", Type: Expense},
	"invest":    {Label: "Investimento", Icon: "trending-up", Color: "yellow", Type: Expense},
	"shopping":  {Label: "Compras", Icon: "shopping-bag", Color: "pink", Type: Expense},
	"other":     {Label: "Outros", Icon: "package", Color: "gray", Type: Expense},
}

// CategoryLabel returns the display label for a category key, falling back
// to the key itself for unknown categories (old entries may carry keys
// removed from the table).
func CategoryLabel(key string) string {
	if c, ok := Categories[key]; ok {
		return c.Label
	}
	return key
}
