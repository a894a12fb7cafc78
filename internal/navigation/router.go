// Package navigation classifies outgoing navigation requests from the
// embedded browser surface.
//
// Identity-provider login flows need a pop-up that shares cookie storage
// with the main authenticated session, while arbitrary outbound links
// should never render inside the application chrome. The router decides
// which of the three surfaces a URL belongs to.
package navigation

import "strings"

// Action is the routing decision for a candidate URL.
type Action int

const (
	// OpenExternal hands the URL to the operating system's default browser.
	OpenExternal Action = iota
	// OpenAuxiliary opens a small in-app browser surface sharing the main
	// window's session partition, for login/OAuth flows.
	OpenAuxiliary
	// OpenInPlace keeps main-frame navigation inside the main surface.
	OpenInPlace
)

func (a Action) String() string {
	switch a {
	case OpenAuxiliary:
		return "auxiliary"
	case OpenInPlace:
		return "in-place"
	default:
		return "external"
	}
}

// Decision tells the shell how to handle a navigation request.
type Decision struct {
	Action Action
	// Partition names the storage scope an auxiliary window must share
	// with the main surface so cookies set during login become visible
	// to the main session.
	Partition string
}

// DefaultPartition is the persistent session partition shared by the main
// and auxiliary browser surfaces.
const DefaultPartition = "persist:claudedesk"

// authMarkers are substrings that mark authentication flows: identity
// provider hosts plus generic login path segments. The match is
// intentionally coarse; see Router documentation.
var authMarkers = []string{
	"accounts.google.com",
	"accounts.youtube.com",
	"appleid.apple.com",
	"login.microsoftonline.com",
	"github.com/login",
	"oauth",
	"login",
	"signin",
	"sso",
}

// appDomains are the hosted chat site's own domains; main-frame navigation
// to them stays in the main surface.
var appDomains = []string{
	"claude.ai",
	"anthropic.com",
}

// Router classifies navigation URLs. The zero value is not usable; create
// one with NewRouter.
type Router struct {
	partition   string
	authMarkers []string
	appDomains  []string
}

// NewRouter returns a router using the built-in allow-lists, extended with
// any extra auth markers from configuration.
func NewRouter(extraAuthMarkers ...string) *Router {
	markers := make([]string, 0, len(authMarkers)+len(extraAuthMarkers))
	markers = append(markers, authMarkers...)
	for _, m := range extraAuthMarkers {
		if m = strings.TrimSpace(strings.ToLower(m)); m != "" {
			markers = append(markers, m)
		}
	}
	return &Router{
		partition:   DefaultPartition,
		authMarkers: markers,
		appDomains:  appDomains,
	}
}

// RoutePopup classifies a new-window request: authentication flows open as
// an in-app auxiliary window on the shared partition, everything else is
// delegated to the system browser.
func (r *Router) RoutePopup(rawURL string) Decision {
	if r.isAuthFlow(rawURL) {
		return Decision{Action: OpenAuxiliary, Partition: r.partition}
	}
	return Decision{Action: OpenExternal}
}

// RouteNavigation classifies a main-frame navigation: the chat site's own
// domains and authentication flows stay in-app, outbound links go to the
// system browser.
func (r *Router) RouteNavigation(rawURL string) Decision {
	lower := strings.ToLower(rawURL)
	for _, domain := range r.appDomains {
		if strings.Contains(lower, domain) {
			return Decision{Action: OpenInPlace, Partition: r.partition}
		}
	}
	return r.RoutePopup(rawURL)
}

// isAuthFlow reports whether any allow-listed marker occurs in the URL.
// Substring matching means a URL like evil.com/?next=accounts.google.com
// also passes; tightening to exact host/scheme matching is an open
// question tracked in DESIGN.md.
func (r *Router) isAuthFlow(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, marker := range r.authMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
