package dto

type CreateGoalRequest struct {
	Title   string  `json:"title"`
	Target  float64 `json:"target"`
	Current float64 `json:"current"`
}

type UpdateGoalRequest struct {
	Title   string  `json:"title"`
	Target  float64 `json:"target"`
	Current float64 `json:"current"`
}
