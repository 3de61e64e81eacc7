package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/jobee/jobee-api/internal/job/domain"
)

// Client resolves free-form addresses through the MapQuest geocoding API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

func New(baseURL, apiKey string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger.Named("Geocoder"),
	}
}

type geocodeResponse struct {
	Results []struct {
		Locations []struct {
			Street     string `json:"street"`
			City       string `json:"adminArea5"`
			State      string `json:"adminArea3"`
			Country    string `json:"adminArea1"`
			PostalCode string `json:"postalCode"`
			LatLng     struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"latLng"`
		} `json:"locations"`
	} `json:"results"`
}

func (c *Client) Geocode(ctx context.Context, address string) ([]domain.GeoResult, error) {
	query := url.Values{}
	query.Set("key", c.apiKey)
	query.Set("location", address)

	requestURL := fmt.Sprintf("%s/geocoding/v1/address?%s", c.baseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("geocoding request failed", zap.String("address", address), zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding provider returned status %d", resp.StatusCode)
	}

	var payload geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	var results []domain.GeoResult
	for _, result := range payload.Results {
		for _, loc := range result.Locations {
			formatted := loc.Street
			if formatted == "" {
				formatted = address
			}
			results = append(results, domain.GeoResult{
				Latitude:         loc.LatLng.Lat,
				Longitude:        loc.LatLng.Lng,
				FormattedAddress: formatted,
				City:             loc.City,
				StateCode:        loc.State,
				Zipcode:          loc.PostalCode,
				CountryCode:      loc.Country,
			})
		}
	}
	return results, nil
}
