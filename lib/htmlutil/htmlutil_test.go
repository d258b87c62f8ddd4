package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{input: "  Kevin   Garnett ", expected: "Kevin Garnett"},
		{input: "Kevin\u00a0Garnett", expected: "KevinGarnett"}, // non-breaking space is dropped
		{input: "one\ntwo", expected: "onetwo"},
		{input: "", expected: ""},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, CleanText(test.input), "%q", test.input)
	}
}

func TestGetAnchors(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`
		<html><body>
		<a href="/players/g/garneke01/gamelog/1996">1995-96</a>
		<a href="/players/g/garneke01/gamelog/1997"><b>1996-97</b></a>
		<a>no href</a>
		</body></html>
	`))
	if err != nil {
		t.Fatal(err)
	}

	anchors := GetAnchors(doc.Find("a"))
	require.Len(t, anchors, 3)
	require.Equal(t, Anchor{
		Name: "1995-96",
		Href: "/players/g/garneke01/gamelog/1996",
	}, anchors[0])
	// nested markup still yields the anchor's text
	require.Equal(t, "1996-97", anchors[1].Name)
	require.Equal(t, Anchor{Name: "no href", Href: ""}, anchors[2])
}
