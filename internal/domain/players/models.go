package players

import (
	"fmt"
	"math"
)

// Undrafted is the sentinel stored in Draft.Round and Draft.Number for players who were never drafted.
const Undrafted = "Undrafted"

// Record is the normalized statistical profile for one player.
// Records are built once at load time and treated as read-only afterwards.
type Record struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Team        string `json:"team"`
	Age         Stat   `json:"age"`
	Height      Stat   `json:"height"`
	Weight      Stat   `json:"weight"`
	College     string `json:"college"`
	Country     string `json:"country"`
	CountryCode string `json:"countryCode"`
	Draft       Draft  `json:"draft"`

	GamesPlayed Stat `json:"gamesPlayed"`
	Points      Stat `json:"points"`
	Rebounds    Stat `json:"rebounds"`
	Assists     Stat `json:"assists"`

	// Rate stats are stored already scaled by 100.
	NetRating       Stat `json:"netRating"`
	OffRebPct       Stat `json:"offRebPct"`
	DefRebPct       Stat `json:"defRebPct"`
	UsagePct        Stat `json:"usagePct"`
	TrueShootingPct Stat `json:"trueShootingPct"`
	AssistPct       Stat `json:"assistPct"`

	ImageURL string `json:"imageUrl"`
}

// Draft holds draft metadata. Round and Number may hold Undrafted.
type Draft struct {
	Year   Stat   `json:"year"`
	Round  string `json:"round"`
	Number string `json:"number"`
}

// IsUndrafted reports whether the draft entry carries the undrafted sentinel.
func (d Draft) IsUndrafted() bool {
	return d.Round == Undrafted || d.Number == Undrafted
}

// DraftSummary renders the draft line shown on the player card.
func (r Record) DraftSummary() string {
	if r.Draft.IsUndrafted() {
		return Undrafted
	}
	year, ok := r.Draft.Year.Float64()
	if !ok {
		return fmt.Sprintf("Rd %s Pick %s", r.Draft.Round, r.Draft.Number)
	}
	return fmt.Sprintf("%d Draft, Rd %s Pick %s", int(year), r.Draft.Round, r.Draft.Number)
}

// HeightDisplay formats the height in feet and inches, e.g. 6'8".
func (r Record) HeightDisplay() string {
	inches, ok := r.Height.Float64()
	if !ok {
		return ""
	}
	total := int(math.Round(inches))
	return fmt.Sprintf("%d'%d\"", total/12, total%12)
}
