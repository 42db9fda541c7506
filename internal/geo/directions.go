package geo

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/muesli/gominatim"
	"github.com/rubiojr/postos/pkg/api"
	"github.com/tkrajina/gpxgo/gpx"
)

const DefaultNominatimURL = "https://nominatim.openstreetmap.org/"

// MapsProvider selects the maps service used for directions.
type MapsProvider string

const (
	Google MapsProvider = "google"
	Apple  MapsProvider = "apple"
)

// DirectionsURL returns a link that opens directions to the station.
func DirectionsURL(s *api.Station, provider MapsProvider) string {
	if provider != Apple {
		provider = Google
	}
	daddr := strings.Join([]string{s.Name, s.Address, s.State, s.City}, " ")
	return fmt.Sprintf("http://maps.%s.com/maps?daddr=%s", provider, url.QueryEscape(daddr))
}

// Location is a geocoded point.
type Location struct {
	Lat         float64
	Lng         float64
	DisplayName string
}

// Geocoder resolves station addresses to coordinates with Nominatim.
type Geocoder struct {
	server string
}

// gominatim keeps its server in a package variable.
var gominatimMu sync.Mutex

func NewGeocoder(server string) *Geocoder {
	if server == "" {
		server = DefaultNominatimURL
	}
	return &Geocoder{server: server}
}

// Locate geocodes the station address.
func (g *Geocoder) Locate(ctx context.Context, s *api.Station) (*Location, error) {
	q := strings.Join([]string{s.Address, s.City, s.State, "Brasil"}, ", ")
	return g.Search(ctx, q)
}

// Search geocodes a free text query and returns the first match.
func (g *Geocoder) Search(ctx context.Context, q string) (*Location, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	gominatimMu.Lock()
	gominatim.SetServer(g.server)
	qry := gominatim.SearchQuery{
		Q: q,
	}
	results, err := qry.Get()
	gominatimMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("geocoding error: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no results found for location: %s", q)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("error parsing latitude: %w", err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("error parsing longitude: %w", err)
	}

	return &Location{Lat: lat, Lng: lng, DisplayName: results[0].DisplayName}, nil
}

// Distance returns the distance in meters between two coordinates.
func Distance(lat, lng, lat2, lng2 float64) float64 {
	return gpx.Distance2D(lat, lng, lat2, lng2, true)
}
