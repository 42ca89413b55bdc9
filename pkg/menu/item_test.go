package menu

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labels(items []*Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Label())
	}
	return out
}

func TestChildrenStableSort(t *testing.T) {
	parent := NewItem("root", "", WithChildren(
		NewItem("p3a", "", WithPriority(3)),
		NewItem("na", ""),
		NewItem("p1", "", WithPriority(1)),
		NewItem("p3b", "", WithPriority(3)),
		NewItem("nb", ""),
	))

	assert.Equal(t, []string{"p1", "p3a", "p3b", "na", "nb"}, labels(parent.Children()))
}

func TestChildrenSortEdgeCases(t *testing.T) {
	tests := []struct {
		name     string
		children []*Item
		expected []string
	}{
		{
			name:     "no children",
			children: nil,
			expected: []string{},
		},
		{
			name: "zero priority is a priority",
			children: []*Item{
				NewItem("none", ""),
				NewItem("zero", "", WithPriority(0)),
			},
			expected: []string{"zero", "none"},
		},
		{
			name: "negative and fractional priorities",
			children: []*Item{
				NewItem("half", "", WithPriority(0.5)),
				NewItem("neg", "", WithPriority(-2)),
				NewItem("one", "", WithPriority(1)),
			},
			expected: []string{"neg", "half", "one"},
		},
		{
			name: "only unprioritized keeps insertion order",
			children: []*Item{
				NewItem("c", ""),
				NewItem("a", ""),
				NewItem("b", ""),
			},
			expected: []string{"c", "a", "b"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			parent := NewItem("root", "", WithChildren(tc.children...))
			assert.Equal(t, tc.expected, labels(parent.Children()))
		})
	}
}

func TestChildrenCacheInvalidation(t *testing.T) {
	parent := NewItem("root", "", WithChildren(
		NewItem("p2", "", WithPriority(2)),
		NewItem("n", ""),
	))
	require.Equal(t, []string{"p2", "n"}, labels(parent.Children()))

	parent.AddChild(NewItem("p1", "", WithPriority(1)))
	assert.Equal(t, []string{"p1", "p2", "n"}, labels(parent.Children()))

	parent.SetChildren(NewItem("x", ""), NewItem("y", "", WithPriority(5)))
	assert.Equal(t, []string{"y", "x"}, labels(parent.Children()))
}

func TestChildrenIdempotent(t *testing.T) {
	parent := NewItem("root", "", WithChildren(
		NewItem("b", "", WithPriority(2)),
		NewItem("a", "", WithPriority(1)),
		NewItem("c", ""),
	))

	first := parent.Children()
	second := parent.Children()

	require.Len(t, second, len(first))
	for i := range first {
		assert.Same(t, first[i], second[i])
	}
}

func TestChildrenReturnsCopy(t *testing.T) {
	parent := NewItem("root", "", WithChildren(NewItem("a", ""), NewItem("b", "")))

	got := parent.Children()
	got[0] = NewItem("intruder", "")

	assert.Equal(t, []string{"a", "b"}, labels(parent.Children()))
}

func TestChildrenCachedOrderIgnoresLatePriorityChange(t *testing.T) {
	a := NewItem("a", "", WithPriority(1))
	b := NewItem("b", "", WithPriority(2))
	parent := NewItem("root", "", WithChildren(a, b))
	require.Equal(t, []string{"a", "b"}, labels(parent.Children()))

	a.SetPriority(3)
	assert.Equal(t, []string{"a", "b"}, labels(parent.Children()))

	parent.AddChild(NewItem("c", ""))
	assert.Equal(t, []string{"b", "a", "c"}, labels(parent.Children()))
}

func TestChildrenConcurrentReaders(t *testing.T) {
	parent := NewItem("root", "")
	for i := 10; i > 0; i-- {
		parent.AddChild(NewItem("", "", WithPriority(float64(i))))
	}

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := parent.Children()
			p, _ := got[0].Priority()
			assert.Equal(t, 1.0, p)
		}()
	}
	wg.Wait()
}

func TestIsHidden(t *testing.T) {
	visible := true
	it := NewItem("a", "/a")
	assert.False(t, it.IsHidden(), "no condition is never hidden")

	it.SetDisplayCondition(ConditionFunc(func() bool { return visible }))
	assert.False(t, it.IsHidden())

	visible = false
	assert.True(t, it.IsHidden(), "condition is evaluated on every call")
}

func TestLabelTranslation(t *testing.T) {
	it := NewItem("Home", "/")
	assert.Equal(t, "Home", it.Label())

	it.SetTranslator(TranslatorFunc(func(s string) string { return "Accueil" }))
	assert.Equal(t, "Accueil", it.Label())
}

func TestIsActive(t *testing.T) {
	tests := []struct {
		name     string
		item     *Item
		uri      string
		expected bool
	}{
		{
			name:     "override wins over non-matching url",
			item:     NewItem("a", "/other").SetActive(true),
			uri:      "/foo",
			expected: true,
		},
		{
			name:     "enable activates",
			item:     NewItem("a", "").Enable(),
			uri:      "/foo",
			expected: true,
		},
		{
			name:     "path match ignores query and fragment",
			item:     NewItem("a", "/foo"),
			uri:      "/foo?x=1#frag",
			expected: true,
		},
		{
			name:     "sub path does not match",
			item:     NewItem("a", "/foo"),
			uri:      "/foo/bar",
			expected: false,
		},
		{
			name:     "relative url resolved against root",
			item:     NewItem("a", "sub", WithRootURL("/app/")),
			uri:      "/app/sub?mode=1",
			expected: true,
		},
		{
			name:     "absolute url compares path only",
			item:     NewItem("a", "https://example.com/docs?v=2"),
			uri:      "/docs",
			expected: true,
		},
		{
			name:     "propagated params do not affect matching",
			item:     NewItem("a", "/p", WithPropagatedParams("a")),
			uri:      "/p?a=1",
			expected: true,
		},
		{
			name:     "url activation disabled",
			item:     NewItem("a", "/foo").SetActivateOnURL(false),
			uri:      "/foo",
			expected: false,
		},
		{
			name:     "no url is never url-active",
			item:     NewItem("a", ""),
			uri:      "/",
			expected: false,
		},
		{
			name:     "javascript target defaults to root path",
			item:     NewItem("a", "javascript:void(0)"),
			uri:      "/",
			expected: true,
		},
		{
			name:     "unparsable request defaults to root path",
			item:     NewItem("a", "/"),
			uri:      "%zz",
			expected: true,
		},
		{
			name:     "unparsable request does not match other paths",
			item:     NewItem("a", "/foo"),
			uri:      "%zz",
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.item.IsActive(NewRequest(tc.uri)))
		})
	}
}

func TestLink(t *testing.T) {
	tests := []struct {
		name     string
		item     *Item
		uri      string
		expected string
	}{
		{"no url", NewItem("a", ""), "/", ""},
		{"http verbatim", NewItem("a", "http://x", WithRootURL("/app/")), "/", "http://x"},
		{"https verbatim", NewItem("a", "https://x/y", WithRootURL("/app/")), "/", "https://x/y"},
		{"absolute path verbatim", NewItem("a", "/abs", WithRootURL("/app/")), "/", "/abs"},
		{"javascript verbatim", NewItem("a", "javascript:go()", WithRootURL("/app/")), "/", "javascript:go()"},
		{"query verbatim", NewItem("a", "?page=2", WithRootURL("/app/")), "/", "?page=2"},
		{"anchor verbatim", NewItem("a", "#anchor", WithRootURL("/app/")), "/", "#anchor"},
		{"relative joined to root", NewItem("a", "sub", WithRootURL("/app/")), "/", "/app/sub"},
		{
			name:     "params in configured order and encoded",
			item:     NewItem("a", "/p", WithPropagatedParams("a", "b")),
			uri:      "/here?b=x+y&a=1",
			expected: "/p?a=1&b=x%20y",
		},
		{
			name:     "missing params skipped",
			item:     NewItem("a", "/p", WithPropagatedParams("a", "missing")),
			uri:      "/here?a=1",
			expected: "/p?a=1",
		},
		{
			name:     "no params present leaves link untouched",
			item:     NewItem("a", "/p", WithPropagatedParams("a")),
			uri:      "/here",
			expected: "/p",
		},
		{
			name:     "existing query uses ampersand",
			item:     NewItem("a", "/p?x=1", WithPropagatedParams("mode")),
			uri:      "/here?mode=42",
			expected: "/p?x=1&mode=42",
		},
		{
			name:     "empty value propagated",
			item:     NewItem("a", "/p", WithPropagatedParams("q")),
			uri:      "/here?q=",
			expected: "/p?q=",
		},
		{
			name:     "reserved characters escaped",
			item:     NewItem("a", "/p", WithPropagatedParams("q")),
			uri:      "/here?q=a%26b%3Dc%2Bd",
			expected: "/p?q=a%26b%3Dc%2Bd",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.item.Link(NewRequest(tc.uri)))
		})
	}
}

func TestLinkWithExplicitParams(t *testing.T) {
	it := NewItem("a", "/p", WithPropagatedParams("a", "b"))
	req := Request{URI: "/p", Params: map[string][]string{"b": {"x y"}, "a": {"1"}}}

	assert.Equal(t, "/p?a=1&b=x%20y", it.Link(req))
}

func TestLinkNilParams(t *testing.T) {
	it := NewItem("a", "/p", WithPropagatedParams("a"))
	assert.Equal(t, "/p", it.Link(Request{URI: "/"}))
}

func TestExtended(t *testing.T) {
	it := NewItem("a", "")
	assert.False(t, it.IsExtended())
	assert.False(t, it.ExtendedSet())

	it.SetExtended(false)
	assert.False(t, it.IsExtended())
	assert.True(t, it.ExtendedSet())

	it.SetExtended(true)
	assert.True(t, it.IsExtended())
}

func TestPriority(t *testing.T) {
	it := NewItem("a", "")
	_, ok := it.Priority()
	assert.False(t, ok)

	it.SetPriority(0)
	p, ok := it.Priority()
	assert.True(t, ok)
	assert.Zero(t, p)

	it.ClearPriority()
	_, ok = it.Priority()
	assert.False(t, ok)
}

func TestSeparator(t *testing.T) {
	sep := NewSeparator()
	assert.True(t, sep.IsSeparator())
	assert.Empty(t, sep.Label())
	assert.Empty(t, sep.Link(NewRequest("/")))
	assert.False(t, NewItem("a", "/a").IsSeparator())
}

func TestPropagatedParamsCopied(t *testing.T) {
	names := []string{"a"}
	it := NewItem("a", "/p", WithPropagatedParams(names...))
	names[0] = "changed"

	got := it.PropagatedParams()
	got[0] = "changed"
	assert.Equal(t, []string{"a"}, it.PropagatedParams())
}
