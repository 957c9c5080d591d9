package dto

// Balance holder CRUD payloads. Holders are created and edited by the
// user; only their balance fields are engine-owned afterwards.

type CreateAccountRequest struct {
	Name    string  `json:"name"`
	Bank    string  `json:"bank"`
	Balance float64 `json:"balance"`
}

// On updates the balance fields are optional: omitting them keeps the
// engine-derived value, sending them is a manual correction.
type UpdateAccountRequest struct {
	Name    string   `json:"name"`
	Balance *float64 `json:"balance,omitempty"`
}

type CreateCardRequest struct {
	Name  string  `json:"name"`
	Bank  string  `json:"bank"`
	Flag  string  `json:"flag"`
	Last4 string  `json:"last4"`
	Bill  float64 `json:"bill"`
}

type UpdateCardRequest struct {
	Name string   `json:"name"`
	Bill *float64 `json:"bill,omitempty"`
}

type CreateDebtRequest struct {
	Name         string  `json:"name"`
	Bank         string  `json:"bank"`
	TotalBalance float64 `json:"totalBalance"`
}

type UpdateDebtRequest struct {
	Name         string   `json:"name"`
	TotalBalance *float64 `json:"totalBalance,omitempty"`
}
