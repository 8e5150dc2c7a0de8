package ingesting

import (
	"github.com/vfg2006/paid-media-etl/internal/domain"
)

const historicalDataMarker = "Historical Data"

// DefaultRoutes are checked in order; the first match wins.
var DefaultRoutes = []domain.FileRoute{
	{
		Name:      "g-p",
		Match:     domain.NameMatcher{Contains: []string{"g-p"}},
		Database:  "g_p",
		Table:     "G-P Historical Data1",
		Mode:      domain.LoadAppend,
		Transform: domain.FileTransformEmplifi,
	},
	{
		Name:      "angry-orchard-historical",
		Match:     domain.NameMatcher{Tokens: []string{"ao"}, Contains: []string{"angry"}, Requires: []string{"historical"}},
		Database:  "angry_orchard",
		Table:     "AO Historical Data1",
		Mode:      domain.LoadReplace,
		Transform: domain.FileTransformPublishedDate,
	},
	{
		Name:      "angry-orchard-export",
		Match:     domain.NameMatcher{Tokens: []string{"ao"}, Contains: []string{"angry"}, Requires: []string{"export"}},
		Database:  "angry_orchard",
		Table:     "AO Historical Data1",
		Mode:      domain.LoadUnionReplace,
		Transform: domain.FileTransformEmplifi,
	},
}

// fallbackRoute sends a file to its client database; the table is resolved at load time.
var fallbackRoute = domain.FileRoute{
	Name:      "client-history",
	Mode:      domain.LoadAppend,
	Transform: domain.FileTransformClientHistory,
}

// RouteFor returns the first route matching the file name, or the client fallback.
func RouteFor(routes []domain.FileRoute, fileName string) domain.FileRoute {
	for _, route := range routes {
		if route.Match.Match(fileName) {
			return route
		}
	}
	return fallbackRoute
}
