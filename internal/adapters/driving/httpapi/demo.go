package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/custodia-labs/gproxy/internal/core/ports/driving"
)

const msgReportGenerating = "Báo cáo đang được tạo"

type generateRequest struct {
	ReportType string         `json:"reportType"`
	Timeframe  string         `json:"timeframe"`
	Options    map[string]any `json:"options"`
}

// demoRoutes serves /api/reports and /api/retail.
type demoRoutes struct {
	demo driving.DemoService
}

func (d *demoRoutes) register(api *mux.Router) {
	api.HandleFunc("/reports", d.listReports).Methods(http.MethodGet)
	api.HandleFunc("/reports/generate", d.generateReport).Methods(http.MethodPost)
	api.HandleFunc("/reports/status/{reportId:[0-9]+}", d.reportStatus).Methods(http.MethodGet)
	api.HandleFunc("/reports/{id:[0-9]+}", d.getReport).Methods(http.MethodGet)

	views := strings.Join(driving.RetailViews, "|")
	api.HandleFunc("/retail/{view:(?:"+views+")}", d.retail).Methods(http.MethodGet)
}

func (d *demoRoutes) listReports(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data, err := d.demo.ListReports(q.Get("timeframe"), q.Get("type"))
	respond(w, data, err)
}

func (d *demoRoutes) getReport(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid report id")
		return
	}
	data, err := d.demo.GetReport(id)
	respond(w, data, err)
}

func (d *demoRoutes) generateReport(w http.ResponseWriter, r *http.Request) {
	req := decodeBody[generateRequest](r)
	data, err := d.demo.GenerateReport(req.ReportType, req.Timeframe, req.Options)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": msgReportGenerating,
		"data":    data,
	})
}

func (d *demoRoutes) reportStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["reportId"], 10, 64)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid report id")
		return
	}
	data, err := d.demo.ReportStatus(id)
	respond(w, data, err)
}

func (d *demoRoutes) retail(w http.ResponseWriter, r *http.Request) {
	data, err := d.demo.Retail(mux.Vars(r)["view"], r.URL.Query().Get("timeframe"))
	respond(w, data, err)
}
