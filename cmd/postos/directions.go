package main

import (
	"errors"
	"fmt"

	"github.com/rubiojr/postos/internal/config"
	"github.com/rubiojr/postos/internal/geo"
	"github.com/urfave/cli/v2"
)

const metersPerKm = 1000.0

func directionsCommand(cfg config.Config) *cli.Command {
	return &cli.Command{
		Name:      "directions",
		Usage:     "Print a maps link to a station and optionally its distance",
		ArgsUsage: "STATION_ID",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "apple",
				Usage: "Use Apple Maps instead of Google Maps",
			},
			&cli.StringFlag{
				Name:  "from",
				Usage: "Address to measure the distance from",
			},
			&cli.Float64Flag{
				Name:  "lat",
				Usage: "Latitude to measure the distance from",
			},
			&cli.Float64Flag{
				Name:  "long",
				Usage: "Longitude to measure the distance from",
			},
			&cli.StringFlag{
				Name:  "nominatim-url",
				Usage: "Nominatim server used for geocoding",
				Value: cfg.NominatimURL,
			},
		},
		Action: directionsAction,
	}
}

func directionsAction(c *cli.Context) error {
	id, err := stationIDArg(c)
	if err != nil {
		return err
	}

	logger := newLogger(c)
	station, err := newClient(c, logger).GetStation(c.Context, id)
	if err != nil {
		return err
	}

	provider := geo.Google
	if c.Bool("apple") {
		provider = geo.Apple
	}

	tr := texts(c)
	out := c.App.Writer
	fmt.Fprintln(out, tr.Directions, geo.DirectionsURL(station, provider))

	lat, lng := c.Float64("lat"), c.Float64("long")
	from := c.String("from")
	coords := c.IsSet("lat") || c.IsSet("long")
	if from == "" && !coords {
		return nil
	}
	if from != "" && coords {
		return errors.New("use either --from or --lat and --long")
	}
	if coords && !(c.IsSet("lat") && c.IsSet("long")) {
		return errors.New("--lat and --long must be given together")
	}

	geocoder := geo.NewGeocoder(c.String("nominatim-url"))
	if from != "" {
		loc, err := geocoder.Search(c.Context, from)
		if err != nil {
			return err
		}
		logger.Debug("Location found", "name", loc.DisplayName)
		lat, lng = loc.Lat, loc.Lng
	}

	dest, err := geocoder.Locate(c.Context, station)
	if err != nil {
		fmt.Fprintf(out, "%s %s\n", tr.NotAvailable, tr.KmAway)
		return err
	}

	fmt.Fprintf(out, "%.2f %s\n", geo.Distance(lat, lng, dest.Lat, dest.Lng)/metersPerKm, tr.KmAway)
	return nil
}
