package resolver

import (
	"context"

	"brefstats/lib/bref"
)

// Store is the optional cache the resolver consults before going to
// the live site. lib/playerstore implements it against MongoDB; tests
// use an in-memory fake. All lookups are by the keys the original
// collections are indexed on: player name (unique) and player link +
// season + game date.
type Store interface {
	// case-insensitive match on the start of the stored name, so a
	// query for "Kevin Garnett" still hits "Kevin Garnett*"
	FindPlayersByNamePrefix(ctx context.Context, prefix string) ([]bref.Player, error)
	FindPlayersByInitial(ctx context.Context, initial string) ([]bref.Player, error)
	FindPlayerByLink(ctx context.Context, link string) (*bref.Player, error)
	// keyed by name, re-scrapes refresh attributes without duplicating
	UpsertPlayers(ctx context.Context, players []bref.Player) error

	// season == "" means every stored season for the link
	FindGameLogs(ctx context.Context, playerLink, season string) ([]bref.GameLogEntry, error)
	// skips rows whose (link, season, date) key is already present,
	// returns how many were actually written
	InsertGameLogs(ctx context.Context, entries []bref.GameLogEntry) (int, error)
	CountGameLogs(ctx context.Context, playerLink, season string) (int64, error)

	// distinct player links among game-log rows with no name attached
	LinksMissingNames(ctx context.Context) ([]string, error)
	// stamps the name onto every game-log row of the link, returns the
	// number of rows modified
	SetGameLogNames(ctx context.Context, playerLink, name string) (int64, error)

	FindSeasonAverages(ctx context.Context, playerLink string) ([]bref.SeasonAverage, error)
	UpsertSeasonAverages(ctx context.Context, rows []bref.SeasonAverage) error
	CountSeasonAverages(ctx context.Context, playerLink string) (int64, error)
}
