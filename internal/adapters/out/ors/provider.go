// Package ors implements the routing port over the OpenRouteService API.
// Tour costs come from the optimization endpoint, drivable routes from
// the directions endpoint with per-point timing, and locality names from
// reverse geocoding with an optional cache in front.
package ors

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"speedit/internal/core/domain/model/kernel"
	"speedit/internal/core/ports"
)

// LocalityCache stores reverse-geocoded locality names keyed by point.
// A miss is not an error; implementations return found=false.
type LocalityCache interface {
	Get(ctx context.Context, point kernel.GeoPoint) (name string, found bool, err error)
	Put(ctx context.Context, point kernel.GeoPoint, name string) error
}

// Provider implements ports.RoutingProvider using OpenRouteService.
//
// It coordinates:
//   - Tour optimization for insertion overhead costing
//   - Directions with per-point timing for position interpolation
//   - Reverse geocoding with locality caching
//
// The provider is safe for concurrent use.
type Provider struct {
	session       *http.Client
	apiKey        string
	baseURL       string
	profile       string
	localityCache LocalityCache
	logger        *slog.Logger
}

// NewProvider creates a routing provider against the public
// OpenRouteService API. The locality cache may be nil.
func NewProvider(apiKey string, localityCache LocalityCache, logger *slog.Logger) (*Provider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	provider := &Provider{
		session:       &http.Client{Timeout: 10 * time.Second},
		apiKey:        apiKey,
		baseURL:       "https://api.openrouteservice.org",
		profile:       "driving-car",
		localityCache: localityCache,
		logger:        logger.With("component", "ors_provider"),
	}

	return provider, nil
}

type optimizationJob struct {
	ID       int        `json:"id"`
	Location [2]float64 `json:"location"`
}

type optimizationVehicle struct {
	ID      int        `json:"id"`
	Profile string     `json:"profile"`
	Start   [2]float64 `json:"start"`
	End     [2]float64 `json:"end"`
}

type optimizationRequest struct {
	Jobs     []optimizationJob     `json:"jobs"`
	Vehicles []optimizationVehicle `json:"vehicles"`
}

type optimizationResponse struct {
	Summary struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
	} `json:"summary"`
}

// OptimizeTour returns the cost of the optimal tour over the stops. The
// first stop is the vehicle start and end point, every other stop
// becomes a job the solver may visit in any order.
func (p *Provider) OptimizeTour(ctx context.Context, stops []kernel.GeoPoint) (ports.TourSummary, error) {
	if len(stops) == 0 {
		return ports.TourSummary{}, errors.New("optimize tour: at least one stop is required")
	}

	// A tour with no jobs has zero cost; the solver rejects empty job lists.
	if len(stops) == 1 {
		return ports.TourSummary{}, nil
	}

	startEnd := [2]float64{stops[0].Longitude(), stops[0].Latitude()}

	jobs := make([]optimizationJob, 0, len(stops)-1)
	for i, stop := range stops[1:] {
		jobs = append(jobs, optimizationJob{
			ID:       i + 1,
			Location: [2]float64{stop.Longitude(), stop.Latitude()},
		})
	}

	reqBody := optimizationRequest{
		Jobs: jobs,
		Vehicles: []optimizationVehicle{
			{ID: 0, Profile: p.profile, Start: startEnd, End: startEnd},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return ports.TourSummary{}, fmt.Errorf("marshal optimization request: %w", err)
	}

	endpoint := p.baseURL + "/v2/optimization"

	resp, err := p.doWithRetry(ctx, func() (*http.Request, error) {
		return p.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return ports.TourSummary{}, fmt.Errorf("optimize tour: %w", err)
	}
	defer resp.Body.Close()

	var decoded optimizationResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.TourSummary{}, fmt.Errorf("decode optimization response: %w", err)
	}

	return ports.TourSummary{
		DistanceKm:  decoded.Summary.Distance / 1000,
		DurationSec: decoded.Summary.Duration,
	}, nil
}

type routeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Extras struct {
				Time struct {
					Values [][]float64 `json:"values"`
				} `json:"time"`
			} `json:"extras"`
		} `json:"properties"`
	} `json:"features"`
}

// RouteBetween returns the drivable route from one point to another with
// cumulative driving times, used to interpolate a van's position along
// its current leg.
func (p *Provider) RouteBetween(ctx context.Context, from, to kernel.GeoPoint) (ports.Route, error) {
	endpoint := p.baseURL + "/v2/directions/" + p.profile

	resp, err := p.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := p.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("start", formatPoint(from))
		q.Set("end", formatPoint(to))
		q.Set("extras", `["time"]`)
		q.Set("geometry_format", "geojson")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return ports.Route{}, fmt.Errorf("route between: %w", err)
	}
	defer resp.Body.Close()

	var decoded routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.Route{}, fmt.Errorf("decode directions response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return ports.Route{}, errors.New("directions response has no route")
	}

	feature := decoded.Features[0]
	coords := feature.Geometry.Coordinates
	values := feature.Properties.Extras.Time.Values

	if len(coords) == 0 {
		return ports.Route{}, errors.New("directions response has no geometry")
	}
	// The timing extra covers every segment between consecutive points.
	if len(values) != len(coords)-1 {
		return ports.Route{}, fmt.Errorf(
			"directions timing mismatch: %d points, %d segment times",
			len(coords), len(values),
		)
	}

	points := make([]kernel.GeoPoint, 0, len(coords))
	cumulative := make([]float64, 0, len(coords))

	elapsed := 0.0
	for i, c := range coords {
		if len(c) < 2 {
			return ports.Route{}, fmt.Errorf("invalid coordinate at index %d", i)
		}
		point, err := kernel.NewGeoPoint(c[1], c[0])
		if err != nil {
			return ports.Route{}, fmt.Errorf("invalid coordinate at index %d: %w", i, err)
		}
		if i > 0 {
			segment := values[i-1]
			if len(segment) < 3 {
				return ports.Route{}, fmt.Errorf("invalid segment time at index %d", i-1)
			}
			elapsed += segment[2]
		}
		points = append(points, point)
		cumulative = append(cumulative, elapsed)
	}

	return ports.Route{Points: points, CumulativeSec: cumulative}, nil
}

type reverseGeocodeResponse struct {
	Features []struct {
		Properties struct {
			Locality string `json:"locality"`
		} `json:"properties"`
	} `json:"features"`
}

// Locality reverse-geocodes the point to its administrative locality.
// Returns an empty name when the lookup finds no locality. Cache
// failures degrade to a direct lookup.
func (p *Provider) Locality(ctx context.Context, point kernel.GeoPoint) (string, error) {
	if p.localityCache != nil {
		name, found, err := p.localityCache.Get(ctx, point)
		if err != nil {
			p.logger.WarnContext(ctx, "Locality cache read failed", "error", err)
		} else if found {
			return name, nil
		}
	}

	endpoint := p.baseURL + "/geocode/reverse"

	resp, err := p.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := p.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("point.lon", formatCoordinate(point.Longitude()))
		q.Set("point.lat", formatCoordinate(point.Latitude()))
		q.Set("layers", "locality")
		q.Set("size", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return "", fmt.Errorf("reverse geocode: %w", err)
	}
	defer resp.Body.Close()

	var decoded reverseGeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode reverse geocode response: %w", err)
	}

	name := ""
	if len(decoded.Features) > 0 {
		name = decoded.Features[0].Properties.Locality
	}

	if name != "" && p.localityCache != nil {
		if err := p.localityCache.Put(ctx, point, name); err != nil {
			p.logger.WarnContext(ctx, "Locality cache write failed", "error", err)
		}
	}

	return name, nil
}

// formatPoint renders a point as "lon,lat", the order ORS expects.
func formatPoint(point kernel.GeoPoint) string {
	return formatCoordinate(point.Longitude()) + "," + formatCoordinate(point.Latitude())
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
