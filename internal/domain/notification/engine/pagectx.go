package engine

import "strings"

type PageKind int

const (
	PageUnset PageKind = iota
	PageOwnFeed
	PageProfile
)

// PageContext is the logical page a session is currently viewing. It decides
// which message events the session is eligible to receive.
type PageContext struct {
	Kind    PageKind
	Profile string
}

func ParseContext(path string) PageContext {
	if path == "/" {
		return PageContext{Kind: PageOwnFeed}
	}

	if strings.HasPrefix(path, "/profile/") {
		name := strings.Trim(strings.TrimPrefix(path, "/profile/"), "/")
		if name != "" && !strings.Contains(name, "/") {
			return PageContext{Kind: PageProfile, Profile: strings.ToLower(name)}
		}
	}

	return PageContext{}
}

// Match reports whether a message authored by the given user should reach a
// session of viewerID with this context.
func (c PageContext) Match(viewerID, authorID, authorName string) bool {
	switch c.Kind {
	case PageOwnFeed:
		return viewerID == authorID
	case PageProfile:
		return c.Profile == strings.ToLower(authorName)
	default:
		return false
	}
}
