package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gproxy/internal/core/domain"
)

func newTestDemo() *DemoService {
	fixtures := mapFixtures{
		FixtureReports:      `{"reports":[{"id":1,"title":"Sales Performance Report"},{"id":2,"title":"Customer Analytics Report"}]}`,
		FixtureReportDetail: `{"type":"detailed","content":{"summary":"Chi tiết báo cáo đầy đủ"}}`,
		"retail_sales":      `{"timeframe":"7d","totalSales":1250000}`,
		"retail_stores":     `{"stores":[{"id":1,"name":"Store A"}]}`,
	}
	for k, v := range testFixtures {
		fixtures[k] = v
	}
	svc := NewDemoService(fixtures)
	svc.now = func() time.Time { return time.Date(2025, 11, 21, 9, 30, 0, 0, time.UTC) }
	return svc
}

func TestDemoService_ListReports(t *testing.T) {
	data, err := newTestDemo().ListReports("", "")
	require.NoError(t, err)

	assert.Equal(t, "7d", data["timeframe"])
	assert.Equal(t, "all", data["type"])
	assert.Equal(t, 2, data["total_reports"])
	assert.Equal(t, "2025-11-21T09:30:00Z", data["generated_at"])

	reports := data["reports"].([]any)
	first := reports[0].(map[string]any)
	assert.Equal(t, "2025-11-21T09:30:00Z", first["date"])

	data, err = newTestDemo().ListReports("30d", "sales")
	require.NoError(t, err)
	assert.Equal(t, "30d", data["timeframe"])
	assert.Equal(t, "sales", data["type"])
}

func TestDemoService_GetReport(t *testing.T) {
	data, err := newTestDemo().GetReport(3)
	require.NoError(t, err)
	assert.Equal(t, 3, data["id"])
	assert.Equal(t, "Detailed Report #3", data["title"])
	assert.Equal(t, "detailed", data["type"])
}

func TestDemoService_GenerateAndStatus(t *testing.T) {
	svc := newTestDemo()

	job, err := svc.GenerateReport("", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "processing", job["status"])
	assert.Equal(t, "general", job["reportType"])
	assert.Equal(t, map[string]any{}, job["options"])

	id := job["reportId"].(int64)
	status, err := svc.ReportStatus(id)
	require.NoError(t, err)
	assert.Equal(t, "completed", status["status"])
	assert.Equal(t, 100, status["progress"])
	assert.Contains(t, status["downloadUrl"], "/api/reports/download/")
}

func TestDemoService_Retail(t *testing.T) {
	svc := newTestDemo()

	sales, err := svc.Retail("sales", "30d")
	require.NoError(t, err)
	assert.Equal(t, "30d", sales["timeframe"])

	stores, err := svc.Retail("stores", "30d")
	require.NoError(t, err)
	assert.NotContains(t, stores, "timeframe")

	_, err = svc.Retail("warehouse", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestDemoService_MissingSampleFixtures(t *testing.T) {
	svc := NewDemoService(mapFixtures{})

	vr := svc.SampleValues("A1")
	assert.Equal(t, "A1", vr.Range)
	assert.Empty(t, vr.Values)
	assert.Empty(t, svc.SampleFiles())
	assert.Equal(t, "x", svc.SampleMetadata("x").SpreadsheetID)
}
