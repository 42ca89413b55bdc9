package menu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type badgeStyle struct {
	Text string
}

func (badgeStyle) Kind() StyleKind { return "badge" }

func TestStyleByKind(t *testing.T) {
	it := NewItem("a", "/a")

	s, err := it.StyleByKind(KindIcon)
	require.NoError(t, err)
	assert.Nil(t, s)

	it.AddStyle(IconStyle{URL: "img/a.png"})
	it.AddStyle(NewTargetStyle(""))

	s, err = it.StyleByKind(KindIcon)
	require.NoError(t, err)
	assert.Equal(t, IconStyle{URL: "img/a.png"}, s)

	s, err = it.StyleByKind(KindTarget)
	require.NoError(t, err)
	assert.Equal(t, TargetStyle{Target: DefaultTarget}, s)
}

func TestStyleByKindAmbiguous(t *testing.T) {
	it := NewItem("a", "/a", WithStyles(
		IconStyle{URL: "one.png"},
		NewTargetStyle("_self"),
		IconStyle{URL: "two.png"},
	))

	s, err := it.StyleByKind(KindIcon)
	assert.Nil(t, s)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAmbiguousStyle))

	var ambiguous *AmbiguousStyleError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, KindIcon, ambiguous.Kind)
	assert.Equal(t, 2, ambiguous.Count)

	assert.Equal(t, []Style{
		IconStyle{URL: "one.png"},
		IconStyle{URL: "two.png"},
	}, it.StylesByKind(KindIcon))
}

func TestStylesByKindEmpty(t *testing.T) {
	it := NewItem("a", "/a", WithStyles(NewTargetStyle("")))
	assert.Empty(t, it.StylesByKind(KindIcon))
}

func TestCustomStyleKind(t *testing.T) {
	it := NewItem("a", "/a")
	it.AddStyle(badgeStyle{Text: "new"})

	s, err := it.StyleByKind("badge")
	require.NoError(t, err)
	assert.Equal(t, badgeStyle{Text: "new"}, s)
}

func TestStylesInsertionOrderAndReplace(t *testing.T) {
	it := NewItem("a", "/a")
	it.AddStyle(NewTargetStyle("_top"))
	it.AddStyle(IconStyle{URL: "/i.png"})

	assert.Equal(t, []Style{TargetStyle{Target: "_top"}, IconStyle{URL: "/i.png"}}, it.Styles())

	it.SetStyles(badgeStyle{})
	assert.Equal(t, []Style{badgeStyle{}}, it.Styles())
}

func TestIconResolvedURL(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"", ""},
		{"img/a.png", "/app/img/a.png"},
		{"/static/a.png", "/static/a.png"},
		{"https://cdn.example.com/a.png", "https://cdn.example.com/a.png"},
	}

	for _, tc := range tests {
		t.Run(tc.url, func(t *testing.T) {
			assert.Equal(t, tc.expected, IconStyle{URL: tc.url}.ResolvedURL("/app/"))
		})
	}
}
