package macvendor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Classifications returned when the vendor database has no answer.
const (
	VendorUnknown             = "Unknown"
	VendorLocallyAdministered = "Locally Administered"
)

// Service looks up the vendor behind a MAC address. Lookups hit the local
// cache first; network queries are rate-limited to respect the API's free
// tier.
type Service struct {
	apiURL  string
	http    *http.Client
	limiter *rate.Limiter
	cache   *Cache
	log     *zap.Logger
}

// NewService creates a lookup service. The cache is optional; pass nil to
// always query the network.
func NewService(cfg Config, cache *Cache, log *zap.Logger) *Service {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 5
	}
	perSecond := cfg.RatePerSecond
	if perSecond <= 0 {
		perSecond = 1
	}

	return &Service{
		apiURL:  cfg.APIURL,
		http:    &http.Client{Timeout: time.Duration(timeout) * time.Second},
		limiter: rate.NewLimiter(rate.Limit(perSecond), 1),
		cache:   cache,
		log:     log,
	}
}

// Lookup resolves the vendor name for a MAC address. A MAC absent from the
// vendor database is classified as VendorLocallyAdministered when its
// locally-administered bit is set, VendorUnknown otherwise. Only confirmed
// vendor answers are cached.
func (s *Service) Lookup(ctx context.Context, mac string) (string, error) {
	if s.cache != nil {
		if vendor, ok := s.cache.Get(mac); ok {
			return vendor, nil
		}
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiURL+mac, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build vendor lookup request: %w", err)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("vendor lookup for %s failed: %w", mac, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", fmt.Errorf("failed to read vendor response: %w", err)
		}
		vendor := strings.TrimSpace(string(body))
		if s.cache != nil {
			if err := s.cache.Put(mac, vendor); err != nil {
				s.log.Warn("Failed to cache vendor answer", zap.String("mac", mac), zap.Error(err))
			}
		}
		return vendor, nil

	case http.StatusNotFound:
		if IsLocallyAdministered(mac) {
			return VendorLocallyAdministered, nil
		}
		return VendorUnknown, nil

	default:
		return "", fmt.Errorf("vendor API returned HTTP %d for %s", resp.StatusCode, mac)
	}
}

// IsLocallyAdministered reports whether a MAC address has the
// locally-administered bit (bit 1 of the first octet) set. Such addresses
// are assigned by software and have no registered vendor.
func IsLocallyAdministered(mac string) bool {
	clean := normalizeMAC(mac)
	if len(clean) < 2 {
		return false
	}

	firstOctet, err := strconv.ParseUint(clean[:2], 16, 8)
	if err != nil {
		return false
	}

	return firstOctet&0x02 != 0
}
