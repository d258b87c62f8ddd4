package resolver

import (
	"context"
	"log/slog"

	"brefstats/lib/bref"
)

type MissingReport struct {
	// players that resolved fine but have zero rows in the requested
	// scope
	Missing    []bref.Player
	Checked    int
	Unresolved []Unresolved
}

// CheckMissing reports which matched players have no game-log rows for
// the requested scope. Strictly read-only: players resolved for the
// check are not persisted and no rows are written anywhere.
func (s Service) CheckMissing(ctx context.Context, q Query) (MissingReport, error) {
	ctx, span := tracer.Start(ctx, "resolver:CheckMissing")
	defer span.End()

	players, err := s.fetchPlayers(ctx, q, false)
	if err != nil {
		return MissingReport{}, err
	}

	report := MissingReport{Unresolved: players.Unresolved}
	for _, player := range players.Players {
		count, err := s.countGameLogs(ctx, player, q.Season)
		if err != nil {
			slog.WarnContext(ctx, "failed to count game logs", "player", player.Name, "err", err)
			report.Unresolved = append(report.Unresolved, Unresolved{Query: player.Name, Err: err})
			continue
		}
		report.Checked++
		if count == 0 {
			report.Missing = append(report.Missing, player)
		}
	}
	return report, nil
}

// CheckMissingAverages is CheckMissing for the per-season averages
// collection. Read-only as well.
func (s Service) CheckMissingAverages(ctx context.Context, q Query) (MissingReport, error) {
	ctx, span := tracer.Start(ctx, "resolver:CheckMissingAverages")
	defer span.End()

	players, err := s.fetchPlayers(ctx, q, false)
	if err != nil {
		return MissingReport{}, err
	}

	report := MissingReport{Unresolved: players.Unresolved}
	for _, player := range players.Players {
		var count int64
		if s.store != nil {
			count, err = s.store.CountSeasonAverages(ctx, player.Link)
		} else {
			var profile bref.Profile
			profile, err = s.site.Profile(ctx, player.Link)
			count = int64(len(profile.Averages))
		}
		if err != nil {
			slog.WarnContext(ctx, "failed to count season averages", "player", player.Name, "err", err)
			report.Unresolved = append(report.Unresolved, Unresolved{Query: player.Name, Err: err})
			continue
		}
		report.Checked++
		if count == 0 {
			report.Missing = append(report.Missing, player)
		}
	}
	return report, nil
}

func (s Service) countGameLogs(ctx context.Context, player bref.Player, season string) (int64, error) {
	if s.store != nil {
		return s.store.CountGameLogs(ctx, player.Link, season)
	}

	// live-only mode: scrape-and-count
	if season != "" {
		entries, err := s.site.GameLog(ctx, player.Link, season)
		if err != nil {
			return 0, err
		}
		return int64(len(entries)), nil
	}

	profile, err := s.site.Profile(ctx, player.Link)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, season := range profile.Seasons {
		entries, err := s.site.GameLog(ctx, player.Link, season)
		if err != nil {
			return total, err
		}
		total += int64(len(entries))
	}
	return total, nil
}
