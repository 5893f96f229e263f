package models

import (
	"time"

	"github.com/google/uuid"
)

// Allegiance is the fixed faction classification of an army. The set of codes
// is closed; free-form values must never reach the store.
type Allegiance string

const (
	AllegianceBOC Allegiance = "BOC"
	AllegianceKRN Allegiance = "KRN"
	AllegianceNUR Allegiance = "NUR"
	AllegianceSKN Allegiance = "SKN"
	AllegianceSLA Allegiance = "SLA"
	AllegianceTZN Allegiance = "TZN"
	AllegianceSTD Allegiance = "STD"
	AllegianceLON Allegiance = "LON"
	AllegianceNGT Allegiance = "NGT"
	AllegianceOBR Allegiance = "OBR"
	AllegianceFEC Allegiance = "FEC"
	AllegianceBCR Allegiance = "BCR"
	AllegianceGSG Allegiance = "GSG"
	AllegianceOGR Allegiance = "OGR"
	AllegianceORK Allegiance = "ORK"
	AllegianceCOS Allegiance = "COS"
	AllegianceDOK Allegiance = "DOK"
	AllegianceFYR Allegiance = "FYR"
	AllegianceIDK Allegiance = "IDK"
	AllegianceKRO Allegiance = "KRO"
	AllegianceSER Allegiance = "SER"
	AllegianceSCE Allegiance = "SCE"
	AllegianceSYL Allegiance = "SYL"
)

var allegianceLabels = map[Allegiance]string{
	AllegianceBOC: "Beasts of Chaos",
	AllegianceKRN: "Khorne",
	AllegianceNUR: "Nurgle",
	AllegianceSKN: "Skaven",
	AllegianceSLA: "Slaanesh",
	AllegianceTZN: "Tzeentch",
	AllegianceSTD: "Slaves to Darkness",
	AllegianceLON: "Legions of Nagash",
	AllegianceNGT: "Nighthaunt",
	AllegianceOBR: "Ossiarch Bonereapers",
	AllegianceFEC: "Flesh Eater Courts",
	AllegianceBCR: "Beastclaw Raiders",
	AllegianceGSG: "Gloomspite Gitz",
	AllegianceOGR: "Ogor Mawtribes",
	AllegianceORK: "Orruk Warclans",
	AllegianceCOS: "Cities of Sigmar",
	AllegianceDOK: "Daughters of Khaine",
	AllegianceFYR: "Fyreslayers",
	AllegianceIDK: "Idoneth Deepkin",
	AllegianceKRO: "Kharadron Overlords",
	AllegianceSER: "Seraphon",
	AllegianceSCE: "Stormcast Eternals",
	AllegianceSYL: "Sylvaneth",
}

// Valid reports whether a is one of the known faction codes.
func (a Allegiance) Valid() bool {
	_, ok := allegianceLabels[a]
	return ok
}

// Label returns the display name for the faction code, or the raw code when
// unknown.
func (a Allegiance) Label() string {
	if label, ok := allegianceLabels[a]; ok {
		return label
	}
	return string(a)
}

// Allegiances returns all known faction codes in a stable order.
func Allegiances() []Allegiance {
	return []Allegiance{
		AllegianceBOC, AllegianceKRN, AllegianceNUR, AllegianceSKN,
		AllegianceSLA, AllegianceTZN, AllegianceSTD, AllegianceLON,
		AllegianceNGT, AllegianceOBR, AllegianceFEC, AllegianceBCR,
		AllegianceGSG, AllegianceOGR, AllegianceORK, AllegianceCOS,
		AllegianceDOK, AllegianceFYR, AllegianceIDK, AllegianceKRO,
		AllegianceSER, AllegianceSCE, AllegianceSYL,
	}
}

// Army represents a player's membership in a league. Leaving a league clears
// Active instead of deleting the row so battle history keeps its attribution;
// rejoining reactivates the same row.
type Army struct {
	ID         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	UserID     uuid.UUID  `json:"user_id"`
	LeagueID   uuid.UUID  `json:"league_id"`
	Allegiance Allegiance `json:"allegiance"`
	ImageURL   string     `json:"image_url"`
	Active     bool       `json:"active"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
