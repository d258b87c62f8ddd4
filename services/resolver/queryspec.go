package resolver

import (
	"fmt"
	"regexp"
	"strings"
)

type QueryKind int

const (
	// one or more exact full names
	KindNames QueryKind = iota
	// all players filed under a single last-name initial
	KindInitial
	// all players filed under an inclusive span of initials
	KindInitialRange
)

// Query is the parsed form of a user-supplied player selector. Season
// is only set by ParseGameLogQuery; empty means every season.
type Query struct {
	Kind   QueryKind
	Names  []string
	Start  byte
	End    byte
	Season string
}

// Initials expands the query's span into individual initials. Empty for
// name queries.
func (q Query) Initials() []string {
	if q.Kind == KindNames {
		return nil
	}
	var out []string
	for c := q.Start; c <= q.End; c++ {
		out = append(out, string(c))
	}
	return out
}

func (q Query) String() string {
	switch q.Kind {
	case KindInitial:
		return string(q.Start)
	case KindInitialRange:
		return fmt.Sprintf("%c-%c", q.Start, q.End)
	default:
		return strings.Join(q.Names, ", ")
	}
}

var (
	initialRangeRegex = regexp.MustCompile(`^([a-zA-Z])-([a-zA-Z])$`)
	initialRegex      = regexp.MustCompile(`^[a-zA-Z]$`)
	seasonRegex       = regexp.MustCompile(`^\d{4}$`)
)

// ParseQuery turns a raw selector string into a Query. Accepted forms,
// matching the CLI help text:
//
//	"Kevin Garnett"             one exact name
//	"Kevin Garnett,Paul Pierce" list of exact names
//	"b"                         one last-name initial
//	"a-c"                       inclusive range of initials
func ParseQuery(raw string) (Query, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Query{}, fmt.Errorf("empty player query")
	}

	if groups := initialRangeRegex.FindStringSubmatch(raw); groups != nil {
		start := strings.ToLower(groups[1])[0]
		end := strings.ToLower(groups[2])[0]
		if start > end {
			return Query{}, fmt.Errorf("%w: %q: start comes after end", ErrInvalidRange, raw)
		}
		return Query{Kind: KindInitialRange, Start: start, End: end}, nil
	}

	if strings.Contains(raw, ",") {
		var names []string
		for _, name := range strings.Split(raw, ",") {
			name = strings.TrimSpace(name)
			if name != "" {
				names = append(names, name)
			}
		}
		if len(names) == 0 {
			return Query{}, fmt.Errorf("empty player query")
		}
		return Query{Kind: KindNames, Names: names}, nil
	}

	if initialRegex.MatchString(raw) {
		initial := strings.ToLower(raw)[0]
		return Query{Kind: KindInitial, Start: initial, End: initial}, nil
	}

	return Query{Kind: KindNames, Names: []string{raw}}, nil
}

// ParseGameLogQuery is ParseQuery plus an optional ":<season>" suffix
// narrowing game-log operations to one season.
func ParseGameLogQuery(raw string) (Query, error) {
	selector := strings.TrimSpace(raw)
	season := ""

	if base, suffix, found := strings.Cut(selector, ":"); found {
		selector = strings.TrimSpace(base)
		season = strings.TrimSpace(suffix)
		if !seasonRegex.MatchString(season) {
			return Query{}, fmt.Errorf("malformed season %q in %q, want a 4-digit year", season, raw)
		}
	}

	q, err := ParseQuery(selector)
	if err != nil {
		return Query{}, err
	}
	q.Season = season
	return q, nil
}
