package leagues

// CreateLeagueRequest represents the data needed to create a new league
type CreateLeagueRequest struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description" validate:"required"`
	ImageURL     string `json:"image_url"`
	PointsBudget int    `json:"points_budget" validate:"required"`
}

// UpdateLeagueRequest represents the data that can be updated for a league.
// The owner and the join token are never part of an update.
type UpdateLeagueRequest struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description" validate:"required"`
	ImageURL     string `json:"image_url"`
	PointsBudget int    `json:"points_budget" validate:"required"`
}
