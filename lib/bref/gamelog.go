package bref

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/codes"
)

// markers the site puts in the trailing cell of a game-log row when the
// player did not play that game
var inactiveMarkers = map[string]bool{
	"Inactive":         true,
	"Did Not Play":     true,
	"Did Not Dress":    true,
	"Not With Team":    true,
	"Injured Reserve":  true,
	"Player Suspended": true,
}

// GameLog fetches and parses one player-season game-log page. Rows come
// back in page order, which is chronological. Every entry is tagged
// with the owning player's link and the season; the name is left to the
// caller since the page does not carry it in the rows.
func (c *Client) GameLog(ctx context.Context, playerLink, season string) ([]GameLogEntry, error) {
	ctx, span := tracer.Start(ctx, "client:GameLog")
	defer span.End()

	path := fmt.Sprintf("%s/gamelog/%s", playerLink, season)
	doc, err := c.getDocument(ctx, path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch game log")
		return nil, err
	}

	table := doc.Find("table#pgl_basic tbody")
	if table.Length() == 0 {
		err := fmt.Errorf("game log %s/%s: %w", playerLink, season, ErrUnexpectedLayout)
		span.RecordError(err)
		span.SetStatus(codes.Error, "missing game log table")
		return nil, err
	}

	var entries []GameLogEntry
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		if row.HasClass("thead") {
			return
		}
		date := statValue(row, "date_game")
		if date == "" {
			// separator rows repeat the header mid-table
			return
		}

		entry := GameLogEntry{
			PlayerLink: playerLink,
			Season:     season,
			GameSeason: statValue(row, "game_season"),
			Date:       date,
			Age:        statValue(row, "age"),
			Team:       statValue(row, "team_id"),
			Location:   statValue(row, "game_location"),
			Opponent:   statValue(row, "opp_id"),
			Result:     statValue(row, "game_result"),
		}

		lastCell := strings.TrimSpace(row.Find("td").Last().Text())
		if inactiveMarkers[lastCell] {
			entry.Status = lastCell
			entries = append(entries, entry)
			return
		}

		entry.GamesStarted = statValue(row, "gs")
		entry.MinutesPlayed = statValue(row, "mp")
		entry.FieldGoals = statValue(row, "fg")
		entry.FieldGoalsAttempted = statValue(row, "fga")
		entry.FieldGoalPct = statValue(row, "fg_pct")
		entry.ThreePointers = statValue(row, "fg3")
		entry.ThreePointersAtt = statValue(row, "fg3a")
		entry.ThreePointPct = statValue(row, "fg3_pct")
		entry.FreeThrows = statValue(row, "ft")
		entry.FreeThrowsAttempted = statValue(row, "fta")
		entry.FreeThrowPct = statValue(row, "ft_pct")
		entry.OffensiveRebounds = statValue(row, "orb")
		entry.DefensiveRebounds = statValue(row, "drb")
		entry.TotalRebounds = statValue(row, "trb")
		entry.Assists = statValue(row, "ast")
		entry.Steals = statValue(row, "stl")
		entry.Blocks = statValue(row, "blk")
		entry.Turnovers = statValue(row, "tov")
		entry.PersonalFouls = statValue(row, "pf")
		entry.Points = statValue(row, "pts")
		entry.GameScore = statValue(row, "game_score")
		entry.PlusMinus = statValue(row, "plus_minus")

		entries = append(entries, entry)
	})

	slog.DebugContext(ctx, "parsed game log",
		"player_link", playerLink,
		"season", season,
		"games", len(entries),
	)
	return entries, nil
}
