package bref

import (
	"fmt"
	"strings"
)

// Player is one row of the alphabetical player index, keyed by the
// player's full name. Link is the stable identifier the reference site
// uses for the player (e.g. "/players/b/bryanko01").
type Player struct {
	Name         string `bson:"player" json:"player"`
	Link         string `bson:"link" json:"link"`
	YearMin      int    `bson:"year_min" json:"year_min"`
	YearMax      int    `bson:"year_max" json:"year_max"`
	Position     string `bson:"pos" json:"pos"`
	Height       string `bson:"height" json:"height"`
	HeightInches int    `bson:"height_inches,omitempty" json:"height_inches,omitempty"`
	Weight       string `bson:"weight" json:"weight"`
	BirthDate    string `bson:"birth_date" json:"birth_date"`
	Colleges     string `bson:"colleges" json:"colleges"`
	CollegeLink  string `bson:"college_link,omitempty" json:"college_link,omitempty"`
}

// Initial returns the last-name initial the index files this player
// under. The link encodes it directly ("/players/<initial>/<id>"), the
// name is only used as a fallback.
func (p Player) Initial() string {
	parts := strings.Split(strings.TrimPrefix(p.Link, "/"), "/")
	if len(parts) >= 2 && parts[0] == "players" && len(parts[1]) == 1 {
		return strings.ToLower(parts[1])
	}
	return LastNameInitial(p.Name)
}

// LastNameInitial derives the lowercased first letter of the last word
// of a full name. Returns "" for blank input.
func LastNameInitial(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[len(fields)-1][:1])
}

// NormalizeName strips the decorations the site attaches to player
// names (a trailing "*" marks hall-of-famers) and collapses case and
// whitespace so names from different pages compare equal.
func NormalizeName(name string) string {
	name = strings.ReplaceAll(name, "*", "")
	name = strings.ToLower(name)
	return strings.Join(strings.Fields(name), " ")
}

// GameLogEntry is one row of a per-player per-season game log. Rows for
// games the player missed only carry the identity columns plus Status.
// PlayerName may be empty on rows scraped before the owning player was
// known; the backfill operation fills it in later.
type GameLogEntry struct {
	PlayerName string `bson:"player,omitempty" json:"player,omitempty"`
	PlayerLink string `bson:"player_link" json:"player_link"`
	Season     string `bson:"season" json:"season"`
	GameSeason string `bson:"game_season" json:"game_season"`
	Date       string `bson:"date_game" json:"date_game"`
	Age        string `bson:"age" json:"age"`
	Team       string `bson:"team_id" json:"team_id"`
	Location   string `bson:"game_location" json:"game_location"`
	Opponent   string `bson:"opp_id" json:"opp_id"`
	Result     string `bson:"game_result" json:"game_result"`

	// set to the row's inactive marker ("Inactive", "Did Not Play", ...)
	// in place of the stat columns
	Status string `bson:"status,omitempty" json:"status,omitempty"`

	GamesStarted        string `bson:"games_started,omitempty" json:"games_started,omitempty"`
	MinutesPlayed       string `bson:"minutes_played,omitempty" json:"minutes_played,omitempty"`
	FieldGoals          string `bson:"field_goals,omitempty" json:"field_goals,omitempty"`
	FieldGoalsAttempted string `bson:"field_goals_attempted,omitempty" json:"field_goals_attempted,omitempty"`
	FieldGoalPct        string `bson:"field_goal_percentage,omitempty" json:"field_goal_percentage,omitempty"`
	ThreePointers       string `bson:"3point_field_goals,omitempty" json:"3point_field_goals,omitempty"`
	ThreePointersAtt    string `bson:"3point_field_goals_attempted,omitempty" json:"3point_field_goals_attempted,omitempty"`
	ThreePointPct       string `bson:"3point_field_goal_percentage,omitempty" json:"3point_field_goal_percentage,omitempty"`
	FreeThrows          string `bson:"free_throws,omitempty" json:"free_throws,omitempty"`
	FreeThrowsAttempted string `bson:"free_throws_attempted,omitempty" json:"free_throws_attempted,omitempty"`
	FreeThrowPct        string `bson:"free_throw_percentage,omitempty" json:"free_throw_percentage,omitempty"`
	OffensiveRebounds   string `bson:"offensive_rebounds,omitempty" json:"offensive_rebounds,omitempty"`
	DefensiveRebounds   string `bson:"defensive_rebounds,omitempty" json:"defensive_rebounds,omitempty"`
	TotalRebounds       string `bson:"total_rebounds,omitempty" json:"total_rebounds,omitempty"`
	Assists             string `bson:"assists,omitempty" json:"assists,omitempty"`
	Steals              string `bson:"steals,omitempty" json:"steals,omitempty"`
	Blocks              string `bson:"blocks,omitempty" json:"blocks,omitempty"`
	Turnovers           string `bson:"turnovers,omitempty" json:"turnovers,omitempty"`
	PersonalFouls       string `bson:"personal_fouls,omitempty" json:"personal_fouls,omitempty"`
	Points              string `bson:"points,omitempty" json:"points,omitempty"`
	GameScore           string `bson:"game_score,omitempty" json:"game_score,omitempty"`
	PlusMinus           string `bson:"plus_minus,omitempty" json:"plus_minus,omitempty"`
}

// SeasonAverage is one row of the per-game averages table on a player's
// profile page. Season is the site's label for it (e.g. "2008-09").
type SeasonAverage struct {
	PlayerName      string `bson:"player,omitempty" json:"player,omitempty"`
	PlayerLink      string `bson:"player_link" json:"player_link"`
	Season          string `bson:"season" json:"season"`
	Age             string `bson:"age" json:"age"`
	Team            string `bson:"team_id" json:"team_id"`
	Position        string `bson:"pos" json:"pos"`
	Games           string `bson:"games" json:"games"`
	GamesStarted    string `bson:"games_started" json:"games_started"`
	MinutesPerGame  string `bson:"minutes_per_game" json:"minutes_per_game"`
	FieldGoalPct    string `bson:"field_goal_percentage" json:"field_goal_percentage"`
	ThreePointPct   string `bson:"3point_field_goal_percentage" json:"3point_field_goal_percentage"`
	FreeThrowPct    string `bson:"free_throw_percentage" json:"free_throw_percentage"`
	ReboundsPerGame string `bson:"rebounds_per_game" json:"rebounds_per_game"`
	AssistsPerGame  string `bson:"assists_per_game" json:"assists_per_game"`
	PointsPerGame   string `bson:"points_per_game" json:"points_per_game"`
}

// Profile is what a player's own page contributes beyond the index row:
// the seasons that actually have game logs, and per-season averages.
type Profile struct {
	Link     string
	Seasons  []string
	Averages []SeasonAverage
}

func convertHeightToInches(height string) (int, error) {
	feet, inches, ok := strings.Cut(height, "-")
	if !ok {
		return 0, fmt.Errorf("malformed height %q", height)
	}
	var f, i int
	if _, err := fmt.Sscanf(feet, "%d", &f); err != nil {
		return 0, fmt.Errorf("malformed height %q", height)
	}
	if _, err := fmt.Sscanf(inches, "%d", &i); err != nil {
		return 0, fmt.Errorf("malformed height %q", height)
	}
	return f*12 + i, nil
}
