/*
handlers.go - HTTP API handlers for the break compliance engine

PURPOSE:
  Exposes stored compliance results via REST and accepts new timecard
  batches for processing. Handles HTTP request/response and JSON
  serialization; all domain logic lives in policy, pipeline and the
  store.

ENDPOINTS:
  Summaries:
    GET  /api/summaries           All monthly summaries
    GET  /api/summaries/{month}   One month ("2006-01")
    GET  /api/ytd                 Cumulative year-to-date view

  Shifts:
    GET  /api/shifts?month=&violations=true  Classified dataset
    GET  /api/rejected?month=                Rejected-row log

  Employees:
    GET  /api/employees/violations?month=    Per-employee tallies
    GET  /api/employees/ytd                  Cumulative tallies

  Runs:
    GET  /api/runs                Audit trail, most recent first
    POST /api/runs?month=         Submit a timecard CSV (request body)

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Bad month parameter, unreadable CSV
  - 404: Month has no stored summary
  - 422: Structurally invalid batch (missing column, empty file)
  - 500: Storage errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/goldenvalley/breakcheck/ingest"
	"github.com/goldenvalley/breakcheck/pipeline"
	"github.com/goldenvalley/breakcheck/policy"
	"github.com/goldenvalley/breakcheck/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store  *sqlite.Store
	Runner *pipeline.Runner
	Logger *zap.Logger
}

// NewHandler creates a handler around the store and runner.
func NewHandler(store *sqlite.Store, runner *pipeline.Runner, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Store: store, Runner: runner, Logger: logger}
}

// =============================================================================
// SUMMARY HANDLERS
// =============================================================================

// ListSummaries returns every stored monthly summary, ordered by month.
func (h *Handler) ListSummaries(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.Store.MonthlySummaries(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list summaries", err)
		return
	}

	dtos := make([]SummaryDTO, len(summaries))
	for i, s := range summaries {
		dtos[i] = toSummaryDTO(s)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetSummary returns one month's summary.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	month, ok := h.pathMonth(w, r)
	if !ok {
		return
	}

	summary, err := h.Store.MonthlySummary(r.Context(), month)
	if errors.Is(err, policy.ErrMonthNotFound) {
		writeError(w, http.StatusNotFound, "No summary for month", err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load summary", err)
		return
	}
	writeJSON(w, http.StatusOK, toSummaryDTO(summary))
}

// GetYearToDate returns the cumulative view compiled from all stored months.
func (h *Handler) GetYearToDate(w http.ResponseWriter, r *http.Request) {
	ytd, err := h.Store.YearToDate(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compile year-to-date", err)
		return
	}
	writeJSON(w, http.StatusOK, toYearToDateDTO(ytd))
}

// =============================================================================
// SHIFT AND REJECTION HANDLERS
// =============================================================================

// ListShifts returns the classified dataset for a month. With
// violations=true only missed and unwaived-late shifts are returned.
func (h *Handler) ListShifts(w http.ResponseWriter, r *http.Request) {
	month, ok := h.queryMonth(w, r)
	if !ok {
		return
	}
	violationsOnly := r.URL.Query().Get("violations") == "true"

	shifts, err := h.Store.Shifts(r.Context(), month, violationsOnly)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list shifts", err)
		return
	}
	writeJSON(w, http.StatusOK, toShiftDTOs(shifts))
}

// ListRejected returns the rejected-row log for a month.
func (h *Handler) ListRejected(w http.ResponseWriter, r *http.Request) {
	month, ok := h.queryMonth(w, r)
	if !ok {
		return
	}

	records, err := h.Store.Rejected(r.Context(), month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list rejected rows", err)
		return
	}
	writeJSON(w, http.StatusOK, toRejectedDTOs(records))
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployeeViolations returns per-employee tallies for a month,
// worst-first.
func (h *Handler) ListEmployeeViolations(w http.ResponseWriter, r *http.Request) {
	month, ok := h.queryMonth(w, r)
	if !ok {
		return
	}

	report, err := h.Store.EmployeeReport(r.Context(), month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employee violations", err)
		return
	}
	writeJSON(w, http.StatusOK, toTallyDTOs(report.Tallies))
}

// ListEmployeeYearToDate returns cumulative per-employee tallies across
// all stored months.
func (h *Handler) ListEmployeeYearToDate(w http.ResponseWriter, r *http.Request) {
	tallies, err := h.Store.EmployeeYearToDate(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compile employee year-to-date", err)
		return
	}
	writeJSON(w, http.StatusOK, toTallyDTOs(tallies))
}

// =============================================================================
// RUN HANDLERS
// =============================================================================

// ListRuns returns the run audit trail, most recent first.
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.Store.ListRuns(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list runs", err)
		return
	}

	dtos := make([]RunDTO, len(runs))
	for i, run := range runs {
		dtos[i] = toRunDTO(run)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// SubmitRun processes a timecard CSV posted as the request body and
// persists the results. An optional month query parameter pins the
// reporting month; otherwise it is inferred from the data.
func (h *Handler) SubmitRun(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if raw := r.URL.Query().Get("month"); raw != "" {
		month, err := policy.ParseMonth(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid month parameter", err)
			return
		}
		opts.Month = month
	}

	source := r.URL.Query().Get("source")
	if source == "" {
		source = "api-upload"
	}

	rows, err := ingest.Read(r.Body)
	if errors.Is(err, policy.ErrMissingColumn) || errors.Is(err, policy.ErrEmptyInput) {
		writeError(w, http.StatusUnprocessableEntity, "Invalid timecard batch", err)
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read timecard CSV", err)
		return
	}

	report, err := h.Runner.Run(r.Context(), source, rows, opts)
	if errors.Is(err, policy.ErrEmptyInput) {
		writeError(w, http.StatusUnprocessableEntity, "Cannot determine reporting month", err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to process batch", err)
		return
	}

	h.Logger.Info("batch accepted",
		zap.String("run_id", report.RunID.String()),
		zap.String("month", report.Month.String()),
		zap.String("source", source),
	)
	writeJSON(w, http.StatusCreated, runReportDTO(report))
}

// =============================================================================
// HELPERS
// =============================================================================

// pathMonth parses the {month} URL parameter.
func (h *Handler) pathMonth(w http.ResponseWriter, r *http.Request) (policy.Month, bool) {
	month, err := policy.ParseMonth(chi.URLParam(r, "month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month, expected YYYY-MM", err)
		return policy.Month{}, false
	}
	return month, true
}

// queryMonth parses the required month query parameter.
func (h *Handler) queryMonth(w http.ResponseWriter, r *http.Request) (policy.Month, bool) {
	raw := r.URL.Query().Get("month")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "Missing month parameter", nil)
		return policy.Month{}, false
	}
	month, err := policy.ParseMonth(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month, expected YYYY-MM", err)
		return policy.Month{}, false
	}
	return month, true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
