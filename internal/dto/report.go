package dto

// MonthlyReport is the generated narrative for one month of activity.
type MonthlyReport struct {
	Month   string  `json:"month"`
	Summary Summary `json:"summary"`
	Report  string  `json:"report"`
}
