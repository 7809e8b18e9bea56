package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Health is the /health response.
type Health struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Port      string `json:"port"`
}

// Health checks that the server is up.
func (c *Client) Health(ctx context.Context, fallback Health) Health {
	return RequestJSON(ctx, c, "/health", RequestOptions{}, fallback)
}

// Status is the /api/status response.
type Status struct {
	Service string  `json:"service"`
	Version string  `json:"version"`
	Status  string  `json:"status"`
	Uptime  float64 `json:"uptime"`
}

// Status returns the service status.
func (c *Client) Status(ctx context.Context, fallback Status) Status {
	return RequestJSON(ctx, c, "/api/status", RequestOptions{}, fallback)
}

// Reports returns the report index.
func (c *Client) Reports(ctx context.Context, timeframe, reportType string, fallback map[string]any) map[string]any {
	q := url.Values{}
	if timeframe != "" {
		q.Set("timeframe", timeframe)
	}
	if reportType != "" {
		q.Set("type", reportType)
	}
	path := "/api/reports"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	return readData(ctx, c, path, RequestOptions{}, fallback)
}

// Report returns one detailed report.
func (c *Client) Report(ctx context.Context, id int, fallback map[string]any) map[string]any {
	return readData(ctx, c, "/api/reports/"+strconv.Itoa(id), RequestOptions{}, fallback)
}

// GenerateReport starts a report job.
func (c *Client) GenerateReport(
	ctx context.Context, reportType, timeframe string, options map[string]any,
) (map[string]any, error) {
	res, err := writeData[map[string]any](ctx, c, "/api/reports/generate", map[string]any{
		"reportType": reportType,
		"timeframe":  timeframe,
		"options":    options,
	})
	if err != nil {
		return nil, err
	}
	return *res, nil
}

// ReportStatus returns the status of a report job.
func (c *Client) ReportStatus(ctx context.Context, reportID int64, fallback map[string]any) map[string]any {
	return readData(ctx, c, "/api/reports/status/"+strconv.FormatInt(reportID, 10), RequestOptions{}, fallback)
}

// Retail returns one retail dashboard view.
func (c *Client) Retail(ctx context.Context, view, timeframe string, fallback map[string]any) map[string]any {
	path := "/api/retail/" + url.PathEscape(view)
	if timeframe != "" {
		path += "?timeframe=" + url.QueryEscape(timeframe)
	}
	return readData(ctx, c, path, RequestOptions{Method: http.MethodGet}, fallback)
}
