package armies

import (
	"github.com/griffonmill/warleague/go/internal/models"
)

// JoinLeagueRequest represents the data needed to join a league by token.
// The fields are ignored when the user already has an army in the league;
// rejoin reactivates the existing row untouched.
type JoinLeagueRequest struct {
	Title      string            `json:"title" validate:"required"`
	Allegiance models.Allegiance `json:"allegiance" validate:"required"`
	ImageURL   string            `json:"image_url"`
}

// UpdateArmyRequest represents the data an army's owner may change.
type UpdateArmyRequest struct {
	Title      string            `json:"title" validate:"required"`
	Allegiance models.Allegiance `json:"allegiance" validate:"required"`
	ImageURL   string            `json:"image_url"`
}

// ArmyWithLeague pairs an army with its league title for the "playing in"
// index view.
type ArmyWithLeague struct {
	models.Army
	LeagueTitle string `json:"league_title"`
}
