package menu

import (
	"net/http"
	"net/url"
	"strings"
)

// rootPath is used whenever a path component cannot be determined.
const rootPath = "/"

// reservedPrefixes mark URLs that are used verbatim instead of being
// resolved against the root URL.
var reservedPrefixes = []string{"/", "javascript:", "http://", "https://", "?", "#"}

// Request is the part of the current request the menu depends on: the
// request URI used for active-state matching and the query parameters used
// for parameter propagation.
type Request struct {
	URI    string
	Params url.Values
}

// NewRequest builds a Request from a request URI, taking the parameters from
// its query string. An unparsable URI yields a Request without parameters.
func NewRequest(uri string) Request {
	req := Request{URI: uri, Params: url.Values{}}
	if u, err := url.Parse(uri); err == nil {
		req.Params = u.Query()
	}
	return req
}

// RequestFromHTTP builds a Request from an incoming HTTP request.
func RequestFromHTTP(r *http.Request) Request {
	return Request{URI: r.URL.RequestURI(), Params: r.URL.Query()}
}

// Path returns the path component of the request URI, or "/" when it
// cannot be determined.
func (r Request) Path() string {
	return pathOf(r.URI)
}

func (r Request) lookup(name string) (string, bool) {
	if r.Params == nil {
		return "", false
	}
	vals, ok := r.Params[name]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

func pathOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Path == "" {
		return rootPath
	}
	return u.Path
}

func hasReservedPrefix(u string) bool {
	for _, p := range reservedPrefixes {
		if strings.HasPrefix(u, p) {
			return true
		}
	}
	return false
}

// resolveBase returns u unchanged when it carries a reserved prefix and
// rootURL+u otherwise.
func resolveBase(rootURL, u string) string {
	if hasReservedPrefix(u) {
		return u
	}
	return rootURL + u
}

// appendParams appends the named parameters found in req to link, in the
// order of names. Names missing from req are skipped.
func appendParams(link string, names []string, req Request) string {
	var pairs []string
	for _, name := range names {
		val, ok := req.lookup(name)
		if !ok {
			continue
		}
		pairs = append(pairs, encodeComponent(name)+"="+encodeComponent(val))
	}

	if len(pairs) == 0 {
		return link
	}

	sep := "?"
	if strings.Contains(link, "?") {
		sep = "&"
	}

	return link + sep + strings.Join(pairs, "&")
}

// encodeComponent escapes s for use in a query string, encoding spaces
// as %20.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
