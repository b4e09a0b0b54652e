package mgnrega

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Dozzergeeky/mgnrega-insights/config"
	"github.com/Dozzergeeky/mgnrega-insights/models"
)

var monthNames = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// UpstreamError is a failure reported by or about the data.gov.in API:
// either a non-2xx HTTP response (Status/Body set) or an explicit
// success:false payload (Message set).
type UpstreamError struct {
	Status  int
	Body    string
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("MGNREGA API responded with an error: %s", e.Message)
	}
	return fmt.Sprintf("failed to fetch MGNREGA data (%d): %s", e.Status, e.Body)
}

// Client queries the data.gov.in resource for monthly district
// performance. Only the first page is ever requested: result sets
// larger than PageSize are truncated. This is a documented limitation
// carried over from the original deployment, where district-level
// filters keep result sets well under the page size.
type Client struct {
	APIKey     string
	ResourceID string
	BaseURL    string
	PageSize   int
	StateName  string
	HTTPClient *http.Client
}

// NewClient builds a Client from configuration. The credentials are not
// validated here; FetchMonthlyDistrictPerformance checks them before
// touching the network.
func NewClient(cfg config.Config) *Client {
	return &Client{
		APIKey:     cfg.APIKey,
		ResourceID: cfg.ResourceID,
		BaseURL:    cfg.BaseURL,
		PageSize:   cfg.PageSize,
		StateName:  cfg.StateName,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type dataGovResponse struct {
	Success *bool              `json:"success"`
	Message string             `json:"message"`
	Total   int                `json:"total"`
	Count   int                `json:"count"`
	Records []models.RawRecord `json:"records"`
}

// FetchMonthlyDistrictPerformance returns the raw rows for one district
// and calendar month (1-12). An empty slice is a valid outcome meaning
// the upstream has no data for that period yet.
func (c *Client) FetchMonthlyDistrictPerformance(ctx context.Context, districtCode string, year, month int, additionalFilters map[string]string) ([]models.RawRecord, error) {
	if c.APIKey == "" || c.ResourceID == "" {
		return nil, config.ErrMissingAPIConfig
	}
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month out of range: %d", month)
	}

	endpoint := strings.TrimRight(c.BaseURL, "/") + "/" + strings.TrimRight(c.ResourceID, "/")

	params := url.Values{}
	params.Set("api-key", c.APIKey)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(c.PageSize))
	params.Set("offset", "0")

	// The API filters on the financial year and an English month
	// abbreviation rather than a calendar date.
	filters := map[string]string{
		"state_name":    c.StateName,
		"district_code": districtCode,
		"fin_year":      fmt.Sprintf("%d-%d", year, year+1),
		"month":         monthNames[month-1],
	}
	for key, value := range additionalFilters {
		filters[key] = value
	}
	for key, value := range filters {
		if value != "" {
			params.Set(fmt.Sprintf("filters[%s]", key), value)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}

	var payload dataGovResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("error decoding MGNREGA API response: %v", err)
	}

	if payload.Success != nil && !*payload.Success {
		message := payload.Message
		if message == "" {
			message = "unknown"
		}
		return nil, &UpstreamError{Message: message}
	}

	if payload.Records == nil {
		return []models.RawRecord{}, nil
	}
	return payload.Records, nil
}
