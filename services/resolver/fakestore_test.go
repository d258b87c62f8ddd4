package resolver

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"brefstats/lib/bref"
)

// in-memory Store with the same key semantics as the mongo-backed one.
// writes counts every mutating call so read-only contracts can be
// asserted; readErr, when set, fails every read to exercise the live
// fallback path.
type fakeStore struct {
	players  map[string]bref.Player
	gamelogs map[string]bref.GameLogEntry
	averages map[string]bref.SeasonAverage
	writes   int
	readErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		players:  map[string]bref.Player{},
		gamelogs: map[string]bref.GameLogEntry{},
		averages: map[string]bref.SeasonAverage{},
	}
}

func gamelogKey(e bref.GameLogEntry) string {
	return fmt.Sprintf("%s|%s|%s", e.PlayerLink, e.Season, e.Date)
}

func (s *fakeStore) FindPlayersByNamePrefix(ctx context.Context, prefix string) ([]bref.Player, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}
	var out []bref.Player
	for _, p := range s.players {
		if strings.HasPrefix(strings.ToLower(p.Name), strings.ToLower(prefix)) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *fakeStore) FindPlayersByInitial(ctx context.Context, initial string) ([]bref.Player, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}
	var out []bref.Player
	for _, p := range s.players {
		if p.Initial() == strings.ToLower(initial) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *fakeStore) FindPlayerByLink(ctx context.Context, link string) (*bref.Player, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}
	for _, p := range s.players {
		if p.Link == link {
			return &p, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) UpsertPlayers(ctx context.Context, players []bref.Player) error {
	s.writes++
	for _, p := range players {
		s.players[p.Name] = p
	}
	return nil
}

func (s *fakeStore) FindGameLogs(ctx context.Context, playerLink, season string) ([]bref.GameLogEntry, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}
	var out []bref.GameLogEntry
	for _, e := range s.gamelogs {
		if e.PlayerLink != playerLink {
			continue
		}
		if season != "" && e.Season != season {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Season != out[j].Season {
			return out[i].Season < out[j].Season
		}
		return out[i].Date < out[j].Date
	})
	return out, nil
}

func (s *fakeStore) InsertGameLogs(ctx context.Context, entries []bref.GameLogEntry) (int, error) {
	s.writes++
	inserted := 0
	for _, e := range entries {
		key := gamelogKey(e)
		if _, ok := s.gamelogs[key]; ok {
			continue
		}
		s.gamelogs[key] = e
		inserted++
	}
	return inserted, nil
}

func (s *fakeStore) CountGameLogs(ctx context.Context, playerLink, season string) (int64, error) {
	if s.readErr != nil {
		return 0, s.readErr
	}
	logs, err := s.FindGameLogs(ctx, playerLink, season)
	if err != nil {
		return 0, err
	}
	return int64(len(logs)), nil
}

func (s *fakeStore) LinksMissingNames(ctx context.Context) ([]string, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}
	seen := map[string]bool{}
	var out []string
	for _, e := range s.gamelogs {
		if e.PlayerName != "" || seen[e.PlayerLink] {
			continue
		}
		seen[e.PlayerLink] = true
		out = append(out, e.PlayerLink)
	}
	sort.Strings(out)
	return out, nil
}

func (s *fakeStore) SetGameLogNames(ctx context.Context, playerLink, name string) (int64, error) {
	s.writes++
	var modified int64
	for key, e := range s.gamelogs {
		if e.PlayerLink != playerLink || e.PlayerName == name {
			continue
		}
		e.PlayerName = name
		s.gamelogs[key] = e
		modified++
	}
	return modified, nil
}

func (s *fakeStore) FindSeasonAverages(ctx context.Context, playerLink string) ([]bref.SeasonAverage, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}
	var out []bref.SeasonAverage
	for _, a := range s.averages {
		if a.PlayerLink == playerLink {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Season < out[j].Season })
	return out, nil
}

func (s *fakeStore) UpsertSeasonAverages(ctx context.Context, rows []bref.SeasonAverage) error {
	s.writes++
	for _, a := range rows {
		s.averages[fmt.Sprintf("%s|%s", a.PlayerLink, a.Season)] = a
	}
	return nil
}

func (s *fakeStore) CountSeasonAverages(ctx context.Context, playerLink string) (int64, error) {
	if s.readErr != nil {
		return 0, s.readErr
	}
	rows, err := s.FindSeasonAverages(ctx, playerLink)
	if err != nil {
		return 0, err
	}
	return int64(len(rows)), nil
}
