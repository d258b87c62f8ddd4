package resolver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseQuery(t *testing.T) {
	testCases := []struct {
		raw      string
		expected Query
	}{
		{
			raw:      "Kevin Garnett",
			expected: Query{Kind: KindNames, Names: []string{"Kevin Garnett"}},
		},
		{
			raw:      "Kevin Garnett, Paul Pierce",
			expected: Query{Kind: KindNames, Names: []string{"Kevin Garnett", "Paul Pierce"}},
		},
		{
			raw:      "b",
			expected: Query{Kind: KindInitial, Start: 'b', End: 'b'},
		},
		{
			raw:      "B",
			expected: Query{Kind: KindInitial, Start: 'b', End: 'b'},
		},
		{
			raw:      "a-c",
			expected: Query{Kind: KindInitialRange, Start: 'a', End: 'c'},
		},
		{
			raw:      "A-C",
			expected: Query{Kind: KindInitialRange, Start: 'a', End: 'c'},
		},
	}

	for _, test := range testCases {
		q, err := ParseQuery(test.raw)
		if err != nil {
			t.Fatal(test.raw, err)
		}
		require.Equal(t, test.expected, q, test.raw)
	}
}

func TestParseQueryRejects(t *testing.T) {
	_, err := ParseQuery("")
	require.Error(t, err)

	_, err = ParseQuery("   ")
	require.Error(t, err)

	_, err = ParseQuery(",, ,")
	require.Error(t, err)

	_, err = ParseQuery("c-a")
	require.ErrorIs(t, err, ErrInvalidRange)
}

func TestQueryInitials(t *testing.T) {
	q, err := ParseQuery("a-c")
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, []string{"a", "b", "c"}, q.Initials())

	q, err = ParseQuery("z")
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, []string{"z"}, q.Initials())

	q, err = ParseQuery("Kevin Garnett")
	if err != nil {
		t.Fatal(err)
	}
	require.Nil(t, q.Initials())
}

func TestParseGameLogQuery(t *testing.T) {
	q, err := ParseGameLogQuery("Kevin Garnett:2002")
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, KindNames, q.Kind)
	require.Equal(t, []string{"Kevin Garnett"}, q.Names)
	require.Equal(t, "2002", q.Season)

	q, err = ParseGameLogQuery("a-c:1996")
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, KindInitialRange, q.Kind)
	require.Equal(t, "1996", q.Season)

	q, err = ParseGameLogQuery("Kevin Garnett")
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "", q.Season)

	_, err = ParseGameLogQuery("Kevin Garnett:02")
	require.Error(t, err)

	_, err = ParseGameLogQuery("Kevin Garnett:")
	require.Error(t, err)
}
