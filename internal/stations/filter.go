// Package stations lists, filters and registers gas stations.
package stations

import (
	"sort"

	"github.com/rubiojr/postos/pkg/api"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Filter returns the stations located in state and city, sorted by name.
// An empty state or city matches any value.
func Filter(list []api.Station, state, city string) []api.Station {
	out := make([]api.Station, 0, len(list))
	for _, s := range list {
		if state != "" && s.State != state {
			continue
		}
		if city != "" && s.City != city {
			continue
		}
		out = append(out, s)
	}
	SortByName(out)
	return out
}

// SortByName sorts stations by name following Brazilian Portuguese collation.
func SortByName(list []api.Station) {
	c := collate.New(language.BrazilianPortuguese, collate.IgnoreCase)
	sort.SliceStable(list, func(i, j int) bool {
		return c.CompareString(list[i].Name, list[j].Name) < 0
	})
}
