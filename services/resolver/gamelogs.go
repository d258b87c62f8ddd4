package resolver

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"brefstats/lib/bref"

	"go.opentelemetry.io/otel/attribute"
)

type GameLogResult struct {
	Logs       []bref.GameLogEntry
	Unresolved []Unresolved
}

// FetchGameLogs resolves the query to players, then serves each
// player+season scope from the store when rows are cached, scraping
// only the missing scopes. Scraped rows are tagged with the player's
// link and name and persisted. Rows come back chronological within
// each season.
func (s Service) FetchGameLogs(ctx context.Context, q Query) (GameLogResult, error) {
	ctx, span := tracer.Start(ctx, "resolver:FetchGameLogs")
	defer span.End()
	span.SetAttributes(attribute.String("season", q.Season))

	players, err := s.fetchPlayers(ctx, q, s.store != nil)
	if err != nil {
		return GameLogResult{}, err
	}

	result := GameLogResult{Unresolved: players.Unresolved}
	for _, player := range players.Players {
		logs, err := s.gameLogsForPlayer(ctx, player, q.Season)
		if err != nil {
			slog.WarnContext(ctx, "failed to fetch game logs",
				"player", player.Name,
				"season", q.Season,
				"err", err,
			)
			result.Unresolved = append(result.Unresolved, Unresolved{Query: player.Name, Err: err})
			continue
		}
		result.Logs = append(result.Logs, logs...)
	}

	sortGameLogs(result.Logs)
	return result, nil
}

func (s Service) gameLogsForPlayer(ctx context.Context, player bref.Player, season string) ([]bref.GameLogEntry, error) {
	if season != "" {
		return s.gameLogsForSeason(ctx, player, season)
	}

	// all seasons: enumerate the ones the profile actually links to
	profile, err := s.site.Profile(ctx, player.Link)
	if err != nil {
		// a dead profile page should not hide rows we already hold
		if s.store != nil {
			cached, cacheErr := s.store.FindGameLogs(ctx, player.Link, "")
			if cacheErr == nil && len(cached) > 0 {
				slog.WarnContext(ctx, "profile fetch failed, serving cached seasons only",
					"player", player.Name, "err", err)
				return cached, nil
			}
		}
		return nil, err
	}

	var logs []bref.GameLogEntry
	for _, season := range profile.Seasons {
		seasonLogs, err := s.gameLogsForSeason(ctx, player, season)
		if err != nil {
			return logs, err
		}
		logs = append(logs, seasonLogs...)
	}
	return logs, nil
}

func (s Service) gameLogsForSeason(ctx context.Context, player bref.Player, season string) ([]bref.GameLogEntry, error) {
	if s.store != nil {
		cached, err := s.store.FindGameLogs(ctx, player.Link, season)
		if err != nil {
			slog.WarnContext(ctx, "store read failed, falling back to live", "err", err)
		} else if len(cached) > 0 {
			slog.InfoContext(ctx, "game logs served from store",
				"player", player.Name,
				"season", season,
				"games", len(cached),
			)
			return cached, nil
		}
	}

	entries, err := s.site.GameLog(ctx, player.Link, season)
	if err != nil {
		return nil, err
	}
	name := CleanPlayerName(player.Name)
	for i := range entries {
		entries[i].PlayerName = name
	}

	if s.store != nil {
		inserted, err := s.store.InsertGameLogs(ctx, entries)
		if err != nil {
			slog.WarnContext(ctx, "failed to persist game logs",
				"player", player.Name,
				"season", season,
				"err", err,
			)
		} else {
			slog.InfoContext(ctx, "persisted game logs",
				"player", player.Name,
				"season", season,
				"inserted", inserted,
			)
		}
	}
	return entries, nil
}

// CleanPlayerName strips the site's name decorations before the name is
// attached to stored rows.
func CleanPlayerName(name string) string {
	return strings.TrimSpace(strings.ReplaceAll(name, "*", ""))
}

// dates are ISO formatted so the lexicographic order is date order
func sortGameLogs(logs []bref.GameLogEntry) {
	sort.SliceStable(logs, func(i, j int) bool {
		if logs[i].PlayerLink != logs[j].PlayerLink {
			return logs[i].PlayerLink < logs[j].PlayerLink
		}
		if logs[i].Season != logs[j].Season {
			return logs[i].Season < logs[j].Season
		}
		return logs[i].Date < logs[j].Date
	})
}
