// Package authz holds the pure authorization rules for leagues, armies and
// battles. Functions here operate on already-fetched records and have no side
// effects; callers fetch entities and handle not-found separately.
package authz

import (
	"github.com/google/uuid"
	"github.com/griffonmill/warleague/go/internal/models"
)

// Status is a user's membership standing within a league.
type Status string

const (
	StatusOwner          Status = "OWNER"
	StatusActiveMember   Status = "ACTIVE_MEMBER"
	StatusResignedMember Status = "RESIGNED_MEMBER"
	StatusNonMember      Status = "NON_MEMBER"
)

// ResolveMembership classifies a user against a league given every army in
// that league. Ownership wins even when the owner also fields an army.
func ResolveMembership(userID uuid.UUID, league models.League, leagueArmies []models.Army) Status {
	if league.OwnerID == userID {
		return StatusOwner
	}
	for _, army := range leagueArmies {
		if army.UserID != userID {
			continue
		}
		if army.Active {
			return StatusActiveMember
		}
		return StatusResignedMember
	}
	return StatusNonMember
}

// CanViewLeague reports whether the user may see the league's detail,
// standings and battle history: the owner, or anyone with an army row in the
// league, resigned or not.
func CanViewLeague(userID uuid.UUID, league models.League, leagueArmies []models.Army) bool {
	return ResolveMembership(userID, league, leagueArmies) != StatusNonMember
}

// CanManageLeague reports whether the user may edit, delete or re-key the
// league. Only the owner may.
func CanManageLeague(userID uuid.UUID, league models.League) bool {
	return league.OwnerID == userID
}

// CanRecordBattle reports whether the user may record army1 vs army2 in the
// league: army1 is the user's own active army in the league, army2 is another
// player's active army in the same league. Holds for league owners too; owning
// the league grants no shortcut past fielding an army.
func CanRecordBattle(userID uuid.UUID, army1, army2 models.Army, league models.League) bool {
	if army1.UserID != userID || army1.LeagueID != league.ID || !army1.Active {
		return false
	}
	if army2.UserID == userID || army2.LeagueID != league.ID || !army2.Active {
		return false
	}
	return true
}

// CanModifyBattle reports whether the user may update or delete a battle:
// either participant, or the league owner. A side whose army was removed
// carries no participant.
func CanModifyBattle(userID uuid.UUID, battle models.Battle, army1, army2 *models.Army, league models.League) bool {
	if league.OwnerID == userID {
		return true
	}
	if army1 != nil && battle.Army1ID.Valid && army1.UserID == userID {
		return true
	}
	if army2 != nil && battle.Army2ID.Valid && army2.UserID == userID {
		return true
	}
	return false
}
