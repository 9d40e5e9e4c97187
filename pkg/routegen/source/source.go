// Package source fetches the route catalog from an ordered chain of data
// sources, falling back to the next source whenever one fails.
package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/shrishtravels/routegen/pkg/routegen/dal"
)

var (
	// ErrDataSourceUnavailable is returned when no source produced any routes.
	ErrDataSourceUnavailable = errors.New("route data source unavailable")

	errEmpty = errors.New("no routes in response")
)

// Source is one place the route catalog can be read from.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]dal.RawRoute, error)
}

// Catalog is the fetched route list and the source that produced it.
type Catalog struct {
	Source string
	Routes []dal.RawRoute
}

// Resolver tries its sources in order.
type Resolver struct {
	sources []Source
	log     *zap.Logger
}

// NewResolver returns a Resolver over sources, tried in the given order.
func NewResolver(log *zap.Logger, sources ...Source) *Resolver {
	return &Resolver{sources: sources, log: log}
}

// FetchRoutes returns the catalog of the first source that yields at least
// one route. When every source fails it returns an empty catalog and an error
// wrapping ErrDataSourceUnavailable.
func (r *Resolver) FetchRoutes(ctx context.Context) (*Catalog, error) {
	var errs []error
	for _, s := range r.sources {
		routes, err := s.Fetch(ctx)
		if err == nil && len(routes) == 0 {
			err = errEmpty
		}
		if err != nil {
			r.log.Warn("route source failed", zap.String("source", s.Name()), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
			continue
		}
		r.log.Info("fetched routes", zap.String("source", s.Name()), zap.Int("count", len(routes)))
		return &Catalog{Source: s.Name(), Routes: routes}, nil
	}
	return &Catalog{}, fmt.Errorf("%w: %v", ErrDataSourceUnavailable, errors.Join(errs...))
}

// Decode parses a JSON body that is either an array of route objects or an
// object holding a "routes" array.
func Decode(data []byte) ([]dal.RawRoute, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("empty body")
	}

	switch data[0] {
	case '[':
		var routes []dal.RawRoute
		if err := json.Unmarshal(data, &routes); err != nil {
			return nil, fmt.Errorf("decoding route array: %w", err)
		}
		return routes, nil
	case '{':
		var envelope struct {
			Routes *[]dal.RawRoute `json:"routes"`
		}
		if err := json.Unmarshal(data, &envelope); err != nil {
			return nil, fmt.Errorf("decoding route object: %w", err)
		}
		if envelope.Routes == nil {
			return nil, errors.New(`object has no "routes" array`)
		}
		return *envelope.Routes, nil
	default:
		return nil, fmt.Errorf("unexpected JSON value starting with %q", data[0])
	}
}
