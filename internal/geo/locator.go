package geo

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Classified location failures. Messages mirror what the directory view shows
// to the user, so handlers pass them through verbatim.
var (
	ErrUnsupported      = errors.New("location lookup is not supported by this deployment")
	ErrInsecureEndpoint = errors.New("location lookup requires a secure (HTTPS) endpoint")
	ErrPermissionDenied = errors.New("location access was denied")
	ErrUnavailable      = errors.New("location information is unavailable")
	ErrTimeout          = errors.New("the request to get user location timed out")
	ErrUnknown          = errors.New("an unknown error occurred while retrieving location")
)

const (
	lookupTimeout = 5 * time.Second
	fixMaxAge     = 10 * time.Second
)

// Provider resolves the caller's approximate position through an external
// lookup endpoint. It requests a single fix per cache window and never
// retries on its own.
type Provider struct {
	endpoint string
	client   *http.Client

	mu      sync.Mutex
	fix     Point
	fixedAt time.Time
}

// NewProvider builds a provider for the given lookup endpoint. An empty
// endpoint yields ErrUnsupported on every Locate call.
func NewProvider(endpoint string) *Provider {
	return &Provider{
		endpoint: strings.TrimSpace(endpoint),
		client:   &http.Client{Timeout: lookupTimeout},
	}
}

// Locate returns the current position fix, reusing a cached fix younger than
// the maximum age. Failures are classified into the sentinel errors above.
func (p *Provider) Locate(ctx context.Context) (Point, error) {
	if p.endpoint == "" {
		return Point{}, ErrUnsupported
	}
	if !strings.HasPrefix(p.endpoint, "https://") {
		return Point{}, ErrInsecureEndpoint
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.fixedAt.IsZero() && time.Since(p.fixedAt) < fixMaxAge {
		return p.fix, nil
	}

	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint, nil)
	if err != nil {
		return Point{}, ErrUnknown
	}

	resp, err := p.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return Point{}, ErrTimeout
		}
		return Point{}, ErrUnavailable
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return Point{}, ErrPermissionDenied
	case resp.StatusCode != http.StatusOK:
		return Point{}, ErrUnavailable
	}

	var payload struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Point{}, ErrUnavailable
	}

	p.fix = Point{Latitude: payload.Latitude, Longitude: payload.Longitude}
	p.fixedAt = time.Now()
	return p.fix, nil
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
