package bref

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/codes"
)

// PlayerIndex fetches and parses the alphabetical index page for one
// last-name initial. The returned order matches the page.
func (c *Client) PlayerIndex(ctx context.Context, initial string) ([]Player, error) {
	ctx, span := tracer.Start(ctx, "client:PlayerIndex")
	defer span.End()

	path := fmt.Sprintf("/players/%s/", strings.ToLower(initial))
	doc, err := c.getDocument(ctx, path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch player index")
		return nil, err
	}

	table := doc.Find("table#players tbody")
	if table.Length() == 0 {
		err := fmt.Errorf("player index %q: %w", initial, ErrUnexpectedLayout)
		span.RecordError(err)
		span.SetStatus(codes.Error, "missing player table")
		return nil, err
	}

	var players []Player
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		if row.HasClass("thead") {
			return
		}
		nameCell := row.Find("th[data-stat=player]").First()
		name := strings.TrimSpace(nameCell.Text())
		href := nameCell.Find("a").First().AttrOr("href", "")
		if name == "" || href == "" {
			return
		}

		p := Player{
			Name:      name,
			Link:      strings.TrimSuffix(href, ".html"),
			YearMin:   atoiOrZero(statValue(row, "year_min")),
			YearMax:   atoiOrZero(statValue(row, "year_max")),
			Position:  statValue(row, "pos"),
			Height:    statValue(row, "height"),
			Weight:    statValue(row, "weight"),
			BirthDate: statValue(row, "birth_date"),
			Colleges:  statValue(row, "colleges"),
		}
		if p.Height != "" {
			inches, err := convertHeightToInches(p.Height)
			if err != nil {
				slog.WarnContext(ctx, "unparseable height", "player", p.Name, "height", p.Height)
			} else {
				p.HeightInches = inches
			}
		}
		if collegeHref, ok := row.Find("td[data-stat=colleges] a").First().Attr("href"); ok {
			p.CollegeLink = collegeHref
		}

		players = append(players, p)
	})

	slog.DebugContext(ctx, "parsed player index", "initial", initial, "players", len(players))
	return players, nil
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
