package driving

import "github.com/custodia-labs/gproxy/internal/core/domain"

// RetailViews lists the retail dashboard views served from fixtures.
var RetailViews = []string{"dashboard", "sales", "inventory", "customers", "products", "stores"}

// DemoService serves canned report and retail data, and sample
// Sheets/Drive payloads for degraded mode.
type DemoService interface {
	// ListReports returns the report index.
	ListReports(timeframe, reportType string) (map[string]any, error)

	// GetReport returns one detailed report.
	GetReport(id int) (map[string]any, error)

	// GenerateReport starts a (simulated) report job.
	GenerateReport(reportType, timeframe string, options map[string]any) (map[string]any, error)

	// ReportStatus returns the status of a report job.
	ReportStatus(reportID int64) (map[string]any, error)

	// Retail returns one retail dashboard view.
	// Returns domain.ErrNotFound for unknown views.
	Retail(view, timeframe string) (map[string]any, error)

	// SampleValues returns sample cell values for rng.
	SampleValues(rng string) *domain.ValueRange

	// SampleMetadata returns sample spreadsheet metadata.
	SampleMetadata(spreadsheetID string) *domain.SpreadsheetMetadata

	// SampleFiles returns a sample Drive folder listing.
	SampleFiles() []domain.File
}
