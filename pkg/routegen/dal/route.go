package dal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedRecord is returned when a raw record cannot be turned into a Route.
var ErrMalformedRecord = errors.New("malformed route record")

const (
	DefaultOrigin      = "Chennai"
	DefaultDestination = "Unknown"
	DefaultDistance    = "0"
	DefaultDuration    = "N/A"
	DefaultImageURL    = "../assets/images/default-route.jpg"
	DefaultPrice       = "Ask"

	// SlugPrefix is the origin part assumed by DestinationSlug. Catalogs with
	// more than one origin city are not handled.
	SlugPrefix = "chennai-to-"
)

// RawRoute is a route as it arrives from a data source, keyed by whatever
// column names the source uses.
type RawRoute map[string]interface{}

// Route defines a normalized route record
type Route struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	Slug          string `json:"slug"`
	DistanceKm    string `json:"distance_km"`
	DurationHours string `json:"duration_hours"`
	Description   string `json:"description,omitempty"`
	ImageURL      string `json:"image_url"`
	PriceSedan    string `json:"price_sedan"`
	PriceInnova   string `json:"price_innova"`
	PriceCrysta   string `json:"price_crysta"`
	PriceTempo    string `json:"price_tempo"`
}

// RoutesResponse defines the JSON envelope served by the routes API
type RoutesResponse struct {
	Routes []Route `json:"routes"`
}

// Key lists, capitalized spreadsheet column names first.
var (
	originKeys      = []string{"Origin", "origin"}
	destinationKeys = []string{"Destination", "destination"}
	slugKeys        = []string{"Route_Slug", "Slug", "route_slug", "slug"}
	distanceKeys    = []string{"Distance_Km", "Distance", "distance_km", "distance", "distanceKm"}
	durationKeys    = []string{"Time_Hours", "Duration", "Duration_Hours", "time_hours", "duration", "duration_hours", "durationHours"}
	descriptionKeys = []string{"Description", "description"}
	imageKeys       = []string{"Image_URL", "Image", "image_url", "image", "imageUrl"}
	sedanKeys       = []string{"Price_Sedan", "price_sedan", "priceSedan"}
	innovaKeys      = []string{"Price_Innova", "price_innova", "priceInnova"}
	crystaKeys      = []string{"Price_Crysta", "price_crysta", "priceCrysta"}
	tempoKeys       = []string{"Price_Tempo", "price_tempo", "priceTempo"}
)

// Normalize maps a raw record onto a Route, applying defaults for absent
// fields. Records with neither origin nor destination, and records whose slug
// would escape the output directory, are rejected.
func Normalize(raw RawRoute) (Route, error) {
	origin := raw.lookup(originKeys)
	destination := raw.lookup(destinationKeys)
	if origin == "" && destination == "" {
		return Route{}, fmt.Errorf("%w: missing origin and destination", ErrMalformedRecord)
	}

	r := Route{
		Origin:        orDefault(origin, DefaultOrigin),
		Destination:   orDefault(destination, DefaultDestination),
		Slug:          strings.ToLower(raw.lookup(slugKeys)),
		DistanceKm:    orDefault(raw.lookup(distanceKeys), DefaultDistance),
		DurationHours: orDefault(raw.lookup(durationKeys), DefaultDuration),
		Description:   raw.lookup(descriptionKeys),
		ImageURL:      orDefault(raw.lookup(imageKeys), DefaultImageURL),
		PriceSedan:    orDefault(raw.lookup(sedanKeys), DefaultPrice),
		PriceInnova:   orDefault(raw.lookup(innovaKeys), DefaultPrice),
		PriceCrysta:   orDefault(raw.lookup(crystaKeys), DefaultPrice),
		PriceTempo:    orDefault(raw.lookup(tempoKeys), DefaultPrice),
	}
	if r.Slug == "" {
		r.Slug = MakeSlug(r.Origin, r.Destination)
	}
	if err := ValidateSlug(r.Slug); err != nil {
		return Route{}, err
	}
	return r, nil
}

// MakeSlug derives "<origin>-to-<destination>", lowercased with spaces removed.
func MakeSlug(origin, destination string) string {
	slug := strings.ToLower(origin) + "-to-" + strings.ToLower(destination)
	return strings.ReplaceAll(slug, " ", "")
}

// ValidateSlug rejects slugs that cannot be used as a file name stem.
func ValidateSlug(slug string) error {
	if slug == "" {
		return fmt.Errorf("%w: empty slug", ErrMalformedRecord)
	}
	if strings.ContainsAny(slug, `/\`) || strings.Contains(slug, "..") {
		return fmt.Errorf("%w: unsafe slug %q", ErrMalformedRecord, slug)
	}
	return nil
}

// DestinationSlug returns the slug with the fixed "chennai-to-" prefix removed.
func (r Route) DestinationSlug() string {
	return strings.TrimPrefix(r.Slug, SlugPrefix)
}

// Label identifies the record in log lines.
func (r RawRoute) Label() (origin, destination string) {
	return r.lookup(originKeys), r.lookup(destinationKeys)
}

func (r RawRoute) lookup(keys []string) string {
	for _, k := range keys {
		v, ok := r[k]
		if !ok {
			continue
		}
		if s := stringify(v); s != "" {
			return s
		}
	}
	return ""
}

func stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case bool:
		return strconv.FormatBool(val)
	default:
		return strings.TrimSpace(fmt.Sprint(val))
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
