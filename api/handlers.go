/*
handlers.go - HTTP API handlers for the venture simulation service

PURPOSE:
  Exposes the simulation engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Simulations:
    POST   /api/simulations            Run a submission, archive and mail it

  Scenarios:
    GET    /api/scenarios              List registered parameter sets

  Submissions:
    GET    /api/submissions            List archived runs
    GET    /api/submissions/export     Download the archive as CSV

  Health:
    GET    /api/health                 Liveness probe

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input via engine.ParseDecision
  3. Run engine.Simulate
  4. Archive and mail (best-effort side effects)
  5. Serialize response

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Unknown scenario
  - 500: Internal errors
  A failed email or archive write does NOT fail the request: the
  simulation result is still returned, with the failure reported in the
  email_error / archive_error fields.

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/kopi/venture-engine/engine"
	"github.com/kopi/venture-engine/notify"
	"github.com/kopi/venture-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store    *sqlite.Store
	Notifier notify.Notifier
	Logger   *zap.Logger

	scenarios       map[string]engine.Parameters
	scenarioOrder   []string
	defaultScenario string
}

// NewHandler wires the handler. The first scenario in scenarios becomes
// the default unless SetDefaultScenario overrides it.
func NewHandler(store *sqlite.Store, notifier notify.Notifier, logger *zap.Logger, scenarios []engine.Parameters) *Handler {
	h := &Handler{
		Store:     store,
		Notifier:  notifier,
		Logger:    logger,
		scenarios: make(map[string]engine.Parameters),
	}
	for _, p := range scenarios {
		if _, dup := h.scenarios[p.Name]; dup {
			continue
		}
		h.scenarios[p.Name] = p
		h.scenarioOrder = append(h.scenarioOrder, p.Name)
	}
	if len(h.scenarioOrder) > 0 {
		h.defaultScenario = h.scenarioOrder[0]
	}
	return h
}

// SetDefaultScenario selects which registered scenario prices runs that
// name none.
func (h *Handler) SetDefaultScenario(name string) bool {
	if _, ok := h.scenarios[name]; !ok {
		return false
	}
	h.defaultScenario = name
	return true
}

// =============================================================================
// SIMULATION HANDLERS
// =============================================================================

// SubmitSimulation runs a student submission end to end.
// POST /api/simulations
func (h *Handler) SubmitSimulation(w http.ResponseWriter, r *http.Request) {
	var req SimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.StudentName == "" || req.StudentEmail == "" {
		writeError(w, http.StatusBadRequest, "student_name and student_email are required", nil)
		return
	}

	scenarioName := req.Scenario
	if scenarioName == "" {
		scenarioName = h.defaultScenario
	}
	params, ok := h.scenarios[scenarioName]
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown scenario "+scenarioName, nil)
		return
	}

	input := engine.DecisionInput{
		Location:    req.Location,
		Marketing:   req.Marketing,
		Receivables: req.Receivables,
	}
	for i, order := range req.Purchases {
		input.Purchases[i] = engine.PurchaseInput{Quantity: order.Quantity, Term: order.Term}
	}

	decision, err := engine.ParseDecision(input)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid submission", err)
		return
	}

	result, err := engine.Simulate(decision, params)
	if err != nil {
		writeError(w, statusForError(err), "Simulation failed", err)
		return
	}

	statement := engine.Statement(req.StudentName, result.Lines)

	resp := SimulationResponse{
		Scenario:  scenarioName,
		FinalCash: result.Series.FinalCash().String(),
		Lines:     toNarrativeLineDTOs(result.Lines),
		Statement: statement,
	}
	for i := 0; i < engine.HorizonMonths; i++ {
		resp.Months = append(resp.Months, toMonthResultDTO(engine.Month(i+1), result.Series[i]))
	}

	// Side effects are best-effort: the student still gets the result.
	saved, err := h.Store.Append(r.Context(), sqlite.Submission{
		StudentName:  req.StudentName,
		StudentEmail: req.StudentEmail,
		Scenario:     scenarioName,
		Location:     decision.Location,
		Marketing:    decision.Marketing,
		Receivables:  decision.Receivables,
		Purchases:    decision.Purchases,
		FinalCash:    result.Series.FinalCash(),
		Statement:    statement,
	})
	if err != nil {
		h.Logger.Error("archive submission failed",
			zap.String("student", req.StudentEmail), zap.Error(err))
		resp.ArchiveError = err.Error()
	} else {
		resp.ID = saved.ID
		resp.CreatedAt = saved.CreatedAt.Format(time.RFC3339)
	}

	if err := h.Notifier.Send(r.Context(), notify.Statement{
		StudentName:  req.StudentName,
		StudentEmail: req.StudentEmail,
		Scenario:     scenarioName,
		Body:         statement,
	}); err != nil {
		h.Logger.Error("statement delivery failed",
			zap.String("student", req.StudentEmail), zap.Error(err))
		resp.EmailError = err.Error()
	}

	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// SCENARIO HANDLERS
// =============================================================================

// ListScenarios returns the registered parameter sets.
// GET /api/scenarios
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	dtos := make([]ScenarioDTO, 0, len(h.scenarioOrder))
	for _, name := range h.scenarioOrder {
		p := h.scenarios[name]
		dtos = append(dtos, ScenarioDTO{
			Name:                 p.Name,
			Proration:            string(p.Proration),
			AllowMonthOneAdvance: p.AllowMonthOneAdvance,
		})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// SUBMISSION HANDLERS
// =============================================================================

// ListSubmissions returns all archived runs, oldest first.
// GET /api/submissions
func (h *Handler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	subs, err := h.Store.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list submissions", err)
		return
	}

	dtos := make([]SubmissionDTO, len(subs))
	for i, sub := range subs {
		dtos[i] = toSubmissionDTO(sub)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ExportSubmissions streams the archive as CSV.
// GET /api/submissions/export
func (h *Handler) ExportSubmissions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="submissions.csv"`)
	if err := h.Store.ExportCSV(r.Context(), w); err != nil {
		// Headers are gone; log and abort mid-stream.
		h.Logger.Error("csv export failed", zap.Error(err))
	}
}

// Health is the liveness probe.
// GET /api/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

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

// statusForError maps engine errors to HTTP status codes.
func statusForError(err error) int {
	switch {
	case engine.IsInputError(err):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrPersistence), errors.Is(err, engine.ErrTransport):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
