package bref

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"brefstats/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/codes"
)

var gamelogHrefRegex = regexp.MustCompile(`/gamelog/(\d{4})/?$`)

// Profile fetches a player's own page. Seasons are taken from the
// game-log links the page carries rather than a year range, so gap
// years (retirement, injury) don't produce requests for pages that
// don't exist.
func (c *Client) Profile(ctx context.Context, playerLink string) (Profile, error) {
	ctx, span := tracer.Start(ctx, "client:Profile")
	defer span.End()

	doc, err := c.getDocument(ctx, playerLink+".html")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch profile")
		return Profile{}, err
	}

	profile := Profile{Link: playerLink}

	seen := map[string]bool{}
	for _, anchor := range htmlutil.GetAnchors(doc.Find("a")) {
		if !strings.HasPrefix(anchor.Href, playerLink+"/gamelog/") {
			continue
		}
		groups := gamelogHrefRegex.FindStringSubmatch(anchor.Href)
		if len(groups) < 2 || seen[groups[1]] {
			continue
		}
		seen[groups[1]] = true
		profile.Seasons = append(profile.Seasons, groups[1])
	}
	slices.Sort(profile.Seasons)

	if len(profile.Seasons) == 0 {
		err := fmt.Errorf("profile %s: no game log links: %w", playerLink, ErrUnexpectedLayout)
		span.RecordError(err)
		span.SetStatus(codes.Error, "no game log links on profile")
		return Profile{}, err
	}

	profile.Averages = parseAverages(doc, playerLink)

	slog.DebugContext(ctx, "parsed profile",
		"player_link", playerLink,
		"seasons", len(profile.Seasons),
		"average_rows", len(profile.Averages),
	)
	return profile, nil
}

func parseAverages(doc *goquery.Document, playerLink string) []SeasonAverage {
	var averages []SeasonAverage
	doc.Find("table#per_game tbody tr").Each(func(_ int, row *goquery.Selection) {
		if row.HasClass("thead") {
			return
		}
		season := strings.TrimSpace(row.Find("th[data-stat=season]").First().Text())
		if season == "" {
			return
		}
		averages = append(averages, SeasonAverage{
			PlayerLink:      playerLink,
			Season:          season,
			Age:             statValue(row, "age"),
			Team:            statValue(row, "team_id"),
			Position:        statValue(row, "pos"),
			Games:           statValue(row, "g"),
			GamesStarted:    statValue(row, "gs"),
			MinutesPerGame:  statValue(row, "mp_per_g"),
			FieldGoalPct:    statValue(row, "fg_pct"),
			ThreePointPct:   statValue(row, "fg3_pct"),
			FreeThrowPct:    statValue(row, "ft_pct"),
			ReboundsPerGame: statValue(row, "trb_per_g"),
			AssistsPerGame:  statValue(row, "ast_per_g"),
			PointsPerGame:   statValue(row, "pts_per_g"),
		})
	})
	return averages
}
