package battles

import (
	"time"

	"github.com/google/uuid"
)

// RecordBattleRequest represents the data needed to record a battle. The
// submitter's own active army in the league becomes army1.
type RecordBattleRequest struct {
	Army2ID  uuid.UUID `json:"army2_id" validate:"required"`
	Army1Pts int       `json:"army1_pts"`
	Army2Pts int       `json:"army2_pts"`
	FoughtOn time.Time `json:"fought_on"`
}

// UpdateBattleRequest represents the fields a participant may change on an
// existing battle. A changed army2 is re-validated as an opponent. A zero
// FoughtOn keeps the stored date.
type UpdateBattleRequest struct {
	Army2ID  uuid.UUID `json:"army2_id" validate:"required"`
	Army1Pts int       `json:"army1_pts"`
	Army2Pts int       `json:"army2_pts"`
	FoughtOn time.Time `json:"fought_on"`
}

// BattleRow is the presentation-ready shape of one ledger entry. A side whose
// army row was removed outright shows the departed sentinel with its points
// intact.
type BattleRow struct {
	ID              uuid.UUID `json:"id"`
	LeagueID        uuid.UUID `json:"league_id"`
	FoughtOn        time.Time `json:"fought_on"`
	Army1Title      string    `json:"army1_title"`
	Army1Allegiance string    `json:"army1_allegiance"`
	Army1Owner      string    `json:"army1_owner"`
	Army1Pts        int       `json:"army1_pts"`
	Army2Title      string    `json:"army2_title"`
	Army2Allegiance string    `json:"army2_allegiance"`
	Army2Owner      string    `json:"army2_owner"`
	Army2Pts        int       `json:"army2_pts"`
}

// DepartedName is shown for a battle side whose army row no longer exists.
const DepartedName = "DEPARTED"
