// Package resolver holds the resolve-or-fetch core: given a parsed
// player query it decides per identity whether the store can serve it
// or the live site must be scraped, persists what was scraped, and
// reports identities it could not resolve instead of dropping them.
package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"brefstats/lib/bref"

	"github.com/antzucaro/matchr"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("services/resolver")

type Service struct {
	site  *bref.Client
	store Store
}

// New builds a resolver. store may be nil, in which case every
// operation runs live-only and never attempts a write.
func New(site *bref.Client, store Store) Service {
	return Service{site: site, store: store}
}

// Unresolved is one requested identity that could not be served, with
// near-miss suggestions when the index had similar names.
type Unresolved struct {
	Query      string
	Err        error
	Candidates []string
}

type PlayerResult struct {
	Players    []bref.Player
	Unresolved []Unresolved
}

// FetchPlayers resolves a query to player records, store first, live
// site second. Freshly scraped players are persisted when a store is
// configured. Identities that resolve nowhere come back in Unresolved;
// a failure on one never aborts its siblings.
func (s Service) FetchPlayers(ctx context.Context, q Query) (PlayerResult, error) {
	ctx, span := tracer.Start(ctx, "resolver:FetchPlayers")
	defer span.End()

	return s.fetchPlayers(ctx, q, s.store != nil)
}

// persist is disabled for the read-only diagnostics (check-missing)
func (s Service) fetchPlayers(ctx context.Context, q Query, persist bool) (PlayerResult, error) {
	var result PlayerResult

	if q.Kind == KindNames {
		for _, name := range q.Names {
			players, candidates, err := s.lookupName(ctx, name, persist)
			if err != nil {
				slog.WarnContext(ctx, "unresolved player name", "name", name, "err", err)
				result.Unresolved = append(result.Unresolved, Unresolved{
					Query:      name,
					Err:        err,
					Candidates: candidates,
				})
				continue
			}
			result.Players = append(result.Players, players...)
		}
		return result, nil
	}

	for _, initial := range q.Initials() {
		players, err := s.lookupInitial(ctx, initial, persist)
		if err != nil {
			slog.WarnContext(ctx, "unresolved initial", "initial", initial, "err", err)
			result.Unresolved = append(result.Unresolved, Unresolved{Query: initial, Err: err})
			continue
		}
		result.Players = append(result.Players, players...)
	}
	return result, nil
}

func (s Service) lookupName(ctx context.Context, name string, persist bool) ([]bref.Player, []string, error) {
	if s.store != nil {
		cached, err := s.store.FindPlayersByNamePrefix(ctx, name)
		if err != nil {
			slog.WarnContext(ctx, "store read failed, falling back to live", "err", err)
		} else if len(cached) > 0 {
			slog.InfoContext(ctx, "player served from store", "name", name, "hits", len(cached))
			return cached, nil, nil
		}
	}

	initial := bref.LastNameInitial(name)
	if initial == "" {
		return nil, nil, fmt.Errorf("cannot derive last-name initial from %q", name)
	}
	index, err := s.site.PlayerIndex(ctx, initial)
	if err != nil {
		return nil, nil, err
	}

	matches := matchPlayers(name, index)
	if len(matches) == 0 {
		return nil, nameCandidates(name, index), fmt.Errorf("%q: %w", name, ErrNotFound)
	}

	if persist && s.store != nil {
		if err := s.store.UpsertPlayers(ctx, matches); err != nil {
			slog.WarnContext(ctx, "failed to persist players", "name", name, "err", err)
		}
	}
	return matches, nil, nil
}

func (s Service) lookupInitial(ctx context.Context, initial string, persist bool) ([]bref.Player, error) {
	if s.store != nil {
		cached, err := s.store.FindPlayersByInitial(ctx, initial)
		if err != nil {
			slog.WarnContext(ctx, "store read failed, falling back to live", "err", err)
		} else if len(cached) > 0 {
			slog.InfoContext(ctx, "initial served from store", "initial", initial, "hits", len(cached))
			return cached, nil
		}
	}

	players, err := s.site.PlayerIndex(ctx, initial)
	if err != nil {
		return nil, err
	}
	if persist && s.store != nil {
		if err := s.store.UpsertPlayers(ctx, players); err != nil {
			slog.WarnContext(ctx, "failed to persist players", "initial", initial, "err", err)
		}
	}
	return players, nil
}

// matchPlayers picks the index rows that are the requested player. The
// site decorates names ("Kevin Garnett*"), normalization handles that;
// an edit distance of one absorbs minor spelling slips.
func matchPlayers(name string, index []bref.Player) []bref.Player {
	want := bref.NormalizeName(name)

	var exact []bref.Player
	for _, p := range index {
		if bref.NormalizeName(p.Name) == want {
			exact = append(exact, p)
		}
	}
	if len(exact) > 0 {
		return exact
	}

	var near []bref.Player
	for _, p := range index {
		if matchr.DamerauLevenshtein(want, bref.NormalizeName(p.Name)) <= 1 {
			near = append(near, p)
		}
	}
	return near
}

// nameCandidates suggests close index names for an unresolved query.
func nameCandidates(name string, index []bref.Player) []string {
	want := bref.NormalizeName(name)

	type scored struct {
		name string
		dist int
	}
	var nearby []scored
	for _, p := range index {
		d := matchr.DamerauLevenshtein(want, bref.NormalizeName(p.Name))
		if d <= 3 {
			nearby = append(nearby, scored{name: strings.TrimSpace(p.Name), dist: d})
		}
	}
	sort.SliceStable(nearby, func(i, j int) bool { return nearby[i].dist < nearby[j].dist })

	var out []string
	for _, c := range nearby {
		out = append(out, c.name)
		if len(out) == 3 {
			break
		}
	}
	return out
}
