package geoinfo

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"googlemaps.github.io/maps"

	"github.com/reliefhub/relief-api/schema"
)

const (
	logPrefix      = "geoinfo"
	defaultTimeout = 5 * time.Second
)

var ErrEmptyGeo = fmt.Errorf("empty geo info")

// GeoInfo - interface to operate google maps
type GeoInfo interface {
	Get(schema.Location) ([]maps.GeocodingResult, error)
}

type geoInfo struct {
	client *maps.Client
}

// Get reverse geocodes a point
func (g geoInfo) Get(loc schema.Location) ([]maps.GeocodingResult, error) {
	log.WithFields(log.Fields{
		"prefix": logPrefix,
		"lat":    loc.Latitude,
		"lng":    loc.Longitude,
	}).Info("query geo info")

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	return g.client.Geocode(ctx, &maps.GeocodingRequest{LatLng: &maps.LatLng{
		Lat: loc.Latitude,
		Lng: loc.Longitude,
	}})
}

// New - new GeoInfo interface
func New(apiKey string) (GeoInfo, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"error":  err,
		}).Error("new map client")

		return nil, err
	}

	return &geoInfo{
		client: client,
	}, nil
}

// barangay components in order of preference
var barangayTypes = []string{
	"sublocality_level_1",
	"sublocality",
	"neighborhood",
	"administrative_area_level_5",
	"administrative_area_level_4",
}

// city components in order of preference
var cityTypes = []string{
	"locality",
	"administrative_area_level_3",
	"administrative_area_level_2",
}

// Labels resolves the human readable barangay, city and country of a point
func Labels(g GeoInfo, loc schema.Location) (schema.GeoLabels, error) {
	geos, err := g.Get(loc)
	if err != nil {
		return schema.GeoLabels{}, err
	}
	if len(geos) == 0 {
		return schema.GeoLabels{}, ErrEmptyGeo
	}

	byType := make(map[string]string)
	for _, a := range geos[0].AddressComponents {
		for _, t := range a.Types {
			if _, ok := byType[t]; !ok {
				byType[t] = a.LongName
			}
		}
	}

	return schema.GeoLabels{
		Barangay: first(byType, barangayTypes),
		City:     first(byType, cityTypes),
		Country:  byType["country"],
	}, nil
}

func first(byType map[string]string, types []string) string {
	for _, t := range types {
		if v := byType[t]; v != "" {
			return v
		}
	}
	return ""
}
