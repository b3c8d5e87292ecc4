/*
handlers.go - HTTP API handlers for the indicator engine

PURPOSE:
  Exposes the indicator pipelines via REST. Handles HTTP
  request/response, JSON serialization, and delegates to the engines.

ENDPOINTS:
  Core:
    GET  /api/health                     Liveness probe
    POST /api/validate                   Validate rows, kind auto-detected
    POST /api/reactive/process           Reactive report + chart + stats
    POST /api/proactive/process          Proactive table + stats
    GET  /api/proactive/catalog          Indicator definitions

  Demo data:
    GET  /api/demo/reactive?year&seed
    GET  /api/demo/proactive?year&seed

  Workspace:
    POST /api/workspace/datasets                      Create dataset
    GET  /api/workspace/datasets                      List datasets
    GET  /api/workspace/datasets/{id}                 Fetch dataset
    PUT  /api/workspace/datasets/{id}                 Replace dataset rows
    DELETE /api/workspace/datasets/{id}               Remove dataset
    PUT  /api/workspace/datasets/{id}/months/{month}  Edit a month row
    POST /api/workspace/datasets/{id}/months          Append a month row
    POST /api/workspace/datasets/{id}/process         Run the pipeline

REQUEST FLOW:
  1. Decode request
  2. Validator gate (errors stop here with 422)
  3. Table to typed records
  4. Engine Process
  5. DTO conversion, run metadata, respond

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Malformed payloads
  - 404: Unknown dataset or month
  - 422: Schema failures and blocking validation errors
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/preventia/indicator-engine/dataset"
	"github.com/preventia/indicator-engine/factory"
	"github.com/preventia/indicator-engine/indicator"
	"github.com/preventia/indicator-engine/logging"
	"github.com/preventia/indicator-engine/proactive"
	"github.com/preventia/indicator-engine/reactive"
	"github.com/preventia/indicator-engine/store/memory"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Reactive  *reactive.Engine
	Proactive *proactive.Engine
	Workspace *memory.Workspace
	Log       *logrus.Logger
}

// NewHandler wires both engines and a fresh workspace from the given
// tuning.
func NewHandler(cfg factory.EngineConfig) *Handler {
	return &Handler{
		Reactive:  reactive.NewEngine(cfg.Constants),
		Proactive: proactive.NewEngineWithWeights(cfg.Target, cfg.Weights),
		Workspace: memory.NewWorkspace(),
		Log:       logging.Log,
	}
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate runs the validator over raw rows. The kind is auto-detected
// when the request leaves it empty. Validation failures are a normal
// 200 response here: the verdict itself is the payload.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	var req RowsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	tbl := dataset.FromRows(req.Rows)
	kind, out := h.validateTable(tbl, req.Kind)

	writeJSON(w, http.StatusOK, ValidateResponse{
		OK:       out.OK,
		Kind:     string(kind),
		Errors:   toIssueDTOs(out.Errors),
		Warnings: toIssueDTOs(out.Warnings),
		Records:  out.Summary.Records,
	})
}

func (h *Handler) validateTable(tbl dataset.Table, rawKind string) (dataset.Kind, dataset.Outcome) {
	kind, ok := dataset.ParseKind(rawKind)
	if !ok {
		kind = dataset.DetectKind(tbl)
	}
	return kind, dataset.Validate(tbl, kind)
}

// =============================================================================
// PROCESSING
// =============================================================================

// ProcessReactive validates the rows and runs the reactive pipeline.
func (h *Handler) ProcessReactive(w http.ResponseWriter, r *http.Request) {
	var req RowsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	resp, err := h.runReactive(dataset.FromRows(req.Rows))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ProcessProactive validates the rows and runs the proactive pipeline.
func (h *Handler) ProcessProactive(w http.ResponseWriter, r *http.Request) {
	var req RowsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	resp, err := h.runProactive(dataset.FromRows(req.Rows))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) runReactive(tbl dataset.Table) (*ReactiveProcessResponse, error) {
	start := time.Now()

	out := dataset.Validate(tbl, dataset.KindReactive)
	if !out.OK {
		return nil, validationError(out)
	}

	records, err := reactive.FromTable(out.Normalized)
	if err != nil {
		return nil, err
	}
	report, chart, err := h.Reactive.Process(records)
	if err != nil {
		return nil, err
	}

	h.Log.WithFields(logrus.Fields{"months": len(records)}).Debug("reactive run complete")
	return &ReactiveProcessResponse{
		Meta:     runMeta(start, len(records)),
		Report:   toReactiveRowDTOs(report),
		Chart:    toChartDTO(chart),
		Stats:    toReactiveStatsDTO(reactive.Stats(report)),
		Warnings: toIssueDTOs(out.Warnings),
	}, nil
}

func (h *Handler) runProactive(tbl dataset.Table) (*ProactiveProcessResponse, error) {
	start := time.Now()

	out := dataset.Validate(tbl, dataset.KindProactive)
	if !out.OK {
		return nil, validationError(out)
	}

	records, err := proactive.FromTable(out.Normalized)
	if err != nil {
		return nil, err
	}
	table, err := h.Proactive.Process(records)
	if err != nil {
		return nil, err
	}

	h.Log.WithFields(logrus.Fields{"months": len(records)}).Debug("proactive run complete")
	return &ProactiveProcessResponse{
		Meta:     runMeta(start, len(records)),
		Rows:     toProactiveRowDTOs(table),
		Stats:    toProactiveStatsDTO(proactive.Stats(table)),
		Warnings: toIssueDTOs(out.Warnings),
	}, nil
}

func runMeta(start time.Time, months int) RunMetaDTO {
	return RunMetaDTO{
		RunID:      uuid.NewString(),
		DurationMS: time.Since(start).Milliseconds(),
		Months:     months,
	}
}

// GetCatalog returns the proactive indicator definitions.
func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	defs := proactive.Definitions()
	dtos := make([]CatalogEntryDTO, len(defs))
	for i, d := range defs {
		dtos[i] = CatalogEntryDTO{
			Code:        d.Code,
			Name:        d.Name,
			Description: d.Description,
			Numerator:   d.Numerator,
			Denominator: d.Denominator,
			Weight:      d.Weight,
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// DEMO DATA
// =============================================================================

// DemoReactive returns a seeded year of demo accident rows.
func (h *Handler) DemoReactive(w http.ResponseWriter, r *http.Request) {
	year, seed := demoParams(r)
	writeJSON(w, http.StatusOK, RowsRequest{
		Kind: string(dataset.KindReactive),
		Rows: reactiveRecordRows(reactive.DemoRecords(year, seed)),
	})
}

// DemoProactive returns a seeded year of demo prevention rows.
func (h *Handler) DemoProactive(w http.ResponseWriter, r *http.Request) {
	year, seed := demoParams(r)
	writeJSON(w, http.StatusOK, RowsRequest{
		Kind: string(dataset.KindProactive),
		Rows: proactiveRecordRows(proactive.DemoRecords(year, seed)),
	})
}

func demoParams(r *http.Request) (year int, seed int64) {
	year = time.Now().Year()
	if v, err := strconv.Atoi(r.URL.Query().Get("year")); err == nil && v > 0 {
		year = v
	}
	seed = 1
	if v, err := strconv.ParseInt(r.URL.Query().Get("seed"), 10, 64); err == nil {
		seed = v
	}
	return year, seed
}

// =============================================================================
// WORKSPACE
// =============================================================================

// CreateDataset stores uploaded rows as a workspace dataset.
func (h *Handler) CreateDataset(w http.ResponseWriter, r *http.Request) {
	var req CreateDatasetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(req.Rows) == 0 {
		writeError(w, http.StatusBadRequest, "Dataset needs at least one row", nil)
		return
	}

	kind, _ := dataset.ParseKind(req.Kind)
	ds := h.Workspace.Create(req.Name, kind, dataset.FromRows(req.Rows).WithNormalizedColumns())
	writeJSON(w, http.StatusCreated, toDatasetDTO(ds))
}

// ListDatasets returns all workspace datasets, oldest first.
func (h *Handler) ListDatasets(w http.ResponseWriter, r *http.Request) {
	list := h.Workspace.List()
	dtos := make([]DatasetDTO, len(list))
	for i, ds := range list {
		dtos[i] = toDatasetDTO(ds)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetDataset returns one dataset.
func (h *Handler) GetDataset(w http.ResponseWriter, r *http.Request) {
	ds, err := h.Workspace.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDatasetDTO(ds))
}

// ReplaceDataset swaps a dataset's rows wholesale, keeping its identity.
func (h *Handler) ReplaceDataset(w http.ResponseWriter, r *http.Request) {
	var req RowsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(req.Rows) == 0 {
		writeError(w, http.StatusBadRequest, "Dataset needs at least one row", nil)
		return
	}

	ds, err := h.Workspace.Replace(chi.URLParam(r, "id"), dataset.FromRows(req.Rows).WithNormalizedColumns())
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDatasetDTO(ds))
}

// DeleteDataset removes a dataset from the workspace.
func (h *Handler) DeleteDataset(w http.ResponseWriter, r *http.Request) {
	if err := h.Workspace.Delete(chi.URLParam(r, "id")); err != nil {
		writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateDatasetMonth edits cells of one month row.
func (h *Handler) UpdateDatasetMonth(w http.ResponseWriter, r *http.Request) {
	var req MonthEditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	ds, err := h.Workspace.UpdateMonth(chi.URLParam(r, "id"), chi.URLParam(r, "month"), req.Values)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDatasetDTO(ds))
}

// AddDatasetMonth appends a month row with zero-filled defaults.
func (h *Handler) AddDatasetMonth(w http.ResponseWriter, r *http.Request) {
	var req MonthEditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	ds, err := h.Workspace.AddMonth(chi.URLParam(r, "id"), req.Values)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDatasetDTO(ds))
}

// ProcessDataset runs the pipeline matching the dataset's kind. For
// KindBoth both pipelines run over the same table.
func (h *Handler) ProcessDataset(w http.ResponseWriter, r *http.Request) {
	ds, err := h.Workspace.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeEngineError(w, err)
		return
	}

	type bothResponse struct {
		Reactive  *ReactiveProcessResponse  `json:"reactive,omitempty"`
		Proactive *ProactiveProcessResponse `json:"proactive,omitempty"`
	}
	var resp bothResponse

	if ds.Kind == dataset.KindReactive || ds.Kind == dataset.KindBoth {
		resp.Reactive, err = h.runReactive(ds.Table)
		if err != nil {
			writeEngineError(w, err)
			return
		}
	}
	if ds.Kind == dataset.KindProactive || ds.Kind == dataset.KindBoth {
		resp.Proactive, err = h.runProactive(ds.Table)
		if err != nil {
			writeEngineError(w, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

// blockingValidation carries a failed validator outcome through the
// error return path.
type blockingValidation struct {
	outcome dataset.Outcome
}

func (e *blockingValidation) Error() string {
	if len(e.outcome.Errors) > 0 {
		return e.outcome.Errors[0].Message
	}
	return "validation failed"
}

func validationError(out dataset.Outcome) error {
	return &blockingValidation{outcome: out}
}

func writeEngineError(w http.ResponseWriter, err error) {
	var blocked *blockingValidation
	if errors.As(err, &blocked) {
		writeJSON(w, http.StatusUnprocessableEntity, ValidateResponse{
			OK:       false,
			Errors:   toIssueDTOs(blocked.outcome.Errors),
			Warnings: toIssueDTOs(blocked.outcome.Warnings),
		})
		return
	}

	var schemaErr *indicator.SchemaError
	switch {
	case errors.As(err, &schemaErr):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "Required columns missing",
			Details: schemaErr.Error(),
			Missing: schemaErr.Missing,
		})
	case indicator.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Not found", err)
	case indicator.IsClientError(err):
		writeError(w, http.StatusBadRequest, "Invalid input", err)
	default:
		writeError(w, http.StatusInternalServerError, "Processing failed", err)
	}
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
