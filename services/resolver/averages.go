package resolver

import (
	"context"
	"log/slog"

	"brefstats/lib/bref"
)

type AveragesResult struct {
	Averages   []bref.SeasonAverage
	Unresolved []Unresolved
}

// FetchAverages resolves the query to players and returns their
// per-season averages, store first, profile page on a miss. Scraped
// rows are tagged with the player's name and upserted.
func (s Service) FetchAverages(ctx context.Context, q Query) (AveragesResult, error) {
	ctx, span := tracer.Start(ctx, "resolver:FetchAverages")
	defer span.End()

	players, err := s.fetchPlayers(ctx, q, s.store != nil)
	if err != nil {
		return AveragesResult{}, err
	}

	result := AveragesResult{Unresolved: players.Unresolved}
	for _, player := range players.Players {
		rows, err := s.averagesForPlayer(ctx, player)
		if err != nil {
			slog.WarnContext(ctx, "failed to fetch averages", "player", player.Name, "err", err)
			result.Unresolved = append(result.Unresolved, Unresolved{Query: player.Name, Err: err})
			continue
		}
		result.Averages = append(result.Averages, rows...)
	}
	return result, nil
}

func (s Service) averagesForPlayer(ctx context.Context, player bref.Player) ([]bref.SeasonAverage, error) {
	if s.store != nil {
		cached, err := s.store.FindSeasonAverages(ctx, player.Link)
		if err != nil {
			slog.WarnContext(ctx, "store read failed, falling back to live", "err", err)
		} else if len(cached) > 0 {
			slog.InfoContext(ctx, "averages served from store", "player", player.Name, "seasons", len(cached))
			return cached, nil
		}
	}

	profile, err := s.site.Profile(ctx, player.Link)
	if err != nil {
		return nil, err
	}
	rows := profile.Averages
	name := CleanPlayerName(player.Name)
	for i := range rows {
		rows[i].PlayerName = name
	}

	if s.store != nil {
		if err := s.store.UpsertSeasonAverages(ctx, rows); err != nil {
			slog.WarnContext(ctx, "failed to persist averages", "player", player.Name, "err", err)
		}
	}
	return rows, nil
}
