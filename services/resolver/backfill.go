package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

type BackfillResult struct {
	// distinct links whose rows got a name stamped on them
	PlayersTagged int
	RowsUpdated   int64
	Unresolved    []Unresolved
}

// BackfillGameLogNames attaches the owning player's name to stored
// game-log rows that only carry a link. q narrows the scan to the
// players it selects; nil scans every name-less row. Idempotent: once
// every row is tagged there is nothing left to scan and re-running
// writes nothing.
func (s Service) BackfillGameLogNames(ctx context.Context, q *Query) (BackfillResult, error) {
	ctx, span := tracer.Start(ctx, "resolver:BackfillGameLogNames")
	defer span.End()

	if s.store == nil {
		return BackfillResult{}, ErrStoreRequired
	}

	links, err := s.store.LinksMissingNames(ctx)
	if err != nil {
		return BackfillResult{}, err
	}

	var result BackfillResult
	if q != nil {
		links = s.scopeLinks(ctx, *q, links, &result)
	}
	slog.InfoContext(ctx, "scanning name-less game logs", "links", len(links))

	for _, link := range links {
		name, err := s.resolveLink(ctx, link)
		if err != nil {
			slog.WarnContext(ctx, "cannot resolve link to a player", "link", link, "err", err)
			result.Unresolved = append(result.Unresolved, Unresolved{Query: link, Err: err})
			continue
		}

		updated, err := s.store.SetGameLogNames(ctx, link, name)
		if err != nil {
			result.Unresolved = append(result.Unresolved, Unresolved{Query: link, Err: err})
			continue
		}
		slog.InfoContext(ctx, "tagged game logs", "link", link, "player", name, "rows", updated)
		result.PlayersTagged++
		result.RowsUpdated += updated
	}
	return result, nil
}

// scopeLinks filters the name-less links down to the ones the query
// selects. Initial queries match on the initial the link itself
// encodes; name queries resolve the names read-only and match on the
// resolved players' links.
func (s Service) scopeLinks(ctx context.Context, q Query, links []string, result *BackfillResult) []string {
	allowed := map[string]bool{}

	if q.Kind == KindNames {
		players, err := s.fetchPlayers(ctx, q, false)
		if err != nil {
			result.Unresolved = append(result.Unresolved, Unresolved{Query: q.String(), Err: err})
			return nil
		}
		result.Unresolved = append(result.Unresolved, players.Unresolved...)
		for _, p := range players.Players {
			allowed[p.Link] = true
		}
		var scoped []string
		for _, link := range links {
			if allowed[link] {
				scoped = append(scoped, link)
			}
		}
		return scoped
	}

	for _, initial := range q.Initials() {
		allowed[initial] = true
	}
	var scoped []string
	for _, link := range links {
		if allowed[initialFromLink(link)] {
			scoped = append(scoped, link)
		}
	}
	return scoped
}

// resolveLink finds the player a link belongs to, store first, the
// index page for the link's initial second.
func (s Service) resolveLink(ctx context.Context, link string) (string, error) {
	player, err := s.store.FindPlayerByLink(ctx, link)
	if err != nil {
		slog.WarnContext(ctx, "store read failed, falling back to live", "err", err)
	} else if player != nil {
		return CleanPlayerName(player.Name), nil
	}

	initial := initialFromLink(link)
	if initial == "" {
		return "", fmt.Errorf("cannot derive initial from link %q", link)
	}
	index, err := s.site.PlayerIndex(ctx, initial)
	if err != nil {
		return "", err
	}
	for _, p := range index {
		if p.Link == link {
			return CleanPlayerName(p.Name), nil
		}
	}
	return "", fmt.Errorf("link %q: %w", link, ErrNotFound)
}

// links look like "/players/b/bryanko01"
func initialFromLink(link string) string {
	parts := strings.Split(strings.TrimPrefix(link, "/"), "/")
	if len(parts) >= 2 && parts[0] == "players" && len(parts[1]) == 1 {
		return parts[1]
	}
	return ""
}
