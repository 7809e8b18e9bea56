package services

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/custodia-labs/gproxy/internal/core/domain"
	"github.com/custodia-labs/gproxy/internal/core/ports/driven"
	"github.com/custodia-labs/gproxy/internal/core/ports/driving"
	"github.com/custodia-labs/gproxy/internal/logger"
)

// Ensure DemoService implements the interface.
var _ driving.DemoService = (*DemoService)(nil)

// Fixture names.
const (
	FixtureReports        = "reports"
	FixtureReportDetail   = "report_detail"
	FixtureSampleValues   = "sample_values"
	FixtureSampleMetadata = "sample_metadata"
	FixtureSampleFiles    = "sample_files"
	fixtureRetailPrefix   = "retail_"
)

// DefaultTimeframe is used when a request names none.
const DefaultTimeframe = "7d"

// DemoService builds demo payloads from fixtures, stamping them with
// request parameters and the current time.
type DemoService struct {
	fixtures driven.FixtureStore
	now      func() time.Time
}

// NewDemoService creates a demo service over fixtures.
func NewDemoService(fixtures driven.FixtureStore) *DemoService {
	return &DemoService{fixtures: fixtures, now: time.Now}
}

// ListReports returns the report index.
func (s *DemoService) ListReports(timeframe, reportType string) (map[string]any, error) {
	data, err := s.object(FixtureReports)
	if err != nil {
		return nil, err
	}
	stamp := s.timestamp()
	data["timeframe"] = orDefault(timeframe, DefaultTimeframe)
	data["type"] = orDefault(reportType, "all")
	data["generated_at"] = stamp

	if reports, ok := data["reports"].([]any); ok {
		for _, r := range reports {
			if m, ok := r.(map[string]any); ok {
				m["date"] = stamp
			}
		}
		data["total_reports"] = len(reports)
	}
	return data, nil
}

// GetReport returns one detailed report.
func (s *DemoService) GetReport(id int) (map[string]any, error) {
	data, err := s.object(FixtureReportDetail)
	if err != nil {
		return nil, err
	}
	stamp := s.timestamp()
	data["id"] = id
	data["title"] = fmt.Sprintf("Detailed Report #%d", id)
	data["created_at"] = stamp
	data["generated_at"] = stamp
	return data, nil
}

// GenerateReport returns a processing job stamped with the current time.
func (s *DemoService) GenerateReport(reportType, timeframe string, options map[string]any) (map[string]any, error) {
	if options == nil {
		options = map[string]any{}
	}
	now := s.now()
	return map[string]any{
		"reportId":      now.UnixMilli(),
		"status":        "processing",
		"estimatedTime": "2-3 phút",
		"reportType":    orDefault(reportType, "general"),
		"timeframe":     orDefault(timeframe, DefaultTimeframe),
		"options":       options,
		"progress":      0,
		"created_at":    now.UTC().Format(time.RFC3339),
	}, nil
}

// ReportStatus reports every job as completed.
func (s *DemoService) ReportStatus(reportID int64) (map[string]any, error) {
	id := strconv.FormatInt(reportID, 10)
	return map[string]any{
		"reportId":     reportID,
		"status":       "completed",
		"progress":     100,
		"downloadUrl":  "/api/reports/download/" + id,
		"completed_at": s.timestamp(),
	}, nil
}

// Retail returns one retail dashboard view.
func (s *DemoService) Retail(view, timeframe string) (map[string]any, error) {
	data, err := s.object(fixtureRetailPrefix + view)
	if err != nil {
		return nil, err
	}
	if _, ok := data["timeframe"]; ok {
		data["timeframe"] = orDefault(timeframe, DefaultTimeframe)
	}
	return data, nil
}

// SampleValues returns the sample contact table for any range.
func (s *DemoService) SampleValues(rng string) *domain.ValueRange {
	vr := &domain.ValueRange{Range: rng, MajorDimension: domain.DimensionRows}
	if err := s.decode(FixtureSampleValues, &vr.Values); err != nil {
		logger.Warn("sample values unavailable: %v", err)
	}
	return vr
}

// SampleMetadata returns a two-sheet sample spreadsheet.
func (s *DemoService) SampleMetadata(spreadsheetID string) *domain.SpreadsheetMetadata {
	var md domain.SpreadsheetMetadata
	if err := s.decode(FixtureSampleMetadata, &md); err != nil {
		logger.Warn("sample metadata unavailable: %v", err)
	}
	md.SpreadsheetID = spreadsheetID
	md.SpreadsheetURL = "https://docs.google.com/spreadsheets/d/" + spreadsheetID + "/edit"
	return &md
}

// SampleFiles returns a sample folder listing stamped with the current time.
func (s *DemoService) SampleFiles() []domain.File {
	var files []domain.File
	if err := s.decode(FixtureSampleFiles, &files); err != nil {
		logger.Warn("sample files unavailable: %v", err)
		return []domain.File{}
	}
	stamp := s.timestamp()
	for i := range files {
		files[i].CreatedTime = stamp
		files[i].ModifiedTime = stamp
	}
	return files
}

func (s *DemoService) object(name string) (map[string]any, error) {
	var m map[string]any
	if err := s.decode(name, &m); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("fixture %s: empty", name)
	}
	return m, nil
}

func (s *DemoService) decode(name string, v any) error {
	raw, err := s.fixtures.Get(name)
	if err != nil {
		return fmt.Errorf("fixture %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode fixture %s: %w", name, err)
	}
	return nil
}

func (s *DemoService) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
