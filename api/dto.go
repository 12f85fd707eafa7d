/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's decimal-typed domain model from the external API contract:
  monetary values cross the wire as strings so no precision is lost to
  float64.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Choice fields are passed through engine.ParseDecision verbatim; the
  alias tables there accept the same spellings the original submission
  form accepted. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - engine/normalize.go: the input alias tables
*/
package api

import (
	"time"

	"github.com/kopi/venture-engine/engine"
	"github.com/kopi/venture-engine/store/sqlite"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// PurchaseDTO is one monthly purchase order.
type PurchaseDTO struct {
	Quantity int    `json:"quantity"`
	Term     string `json:"term"`
}

// SimulationRequest is a student's submission.
type SimulationRequest struct {
	StudentName  string `json:"student_name"`
	StudentEmail string `json:"student_email"`
	// Scenario names a registered parameter set; empty selects the
	// server default.
	Scenario string `json:"scenario,omitempty"`

	Location    string                            `json:"location"`
	Marketing   string                            `json:"marketing"`
	Receivables string                            `json:"receivables"`
	Purchases   [engine.HorizonMonths]PurchaseDTO `json:"purchases"`
}

// MonthResultDTO is one simulated month. Money travels as strings.
type MonthResultDTO struct {
	Month            string `json:"month"`
	Demand           int    `json:"demand"`
	UnitsSold        int    `json:"units_sold"`
	ClosingInventory int    `json:"closing_inventory"`

	Revenue              string `json:"revenue"`
	UnitCost             string `json:"unit_cost"`
	PurchaseValue        string `json:"purchase_value"`
	InventoryValue       string `json:"inventory_value"`
	CostOfGoodsSold      string `json:"cost_of_goods_sold"`
	ReceivablesCollected string `json:"receivables_collected"`
	PayablesDue          string `json:"payables_due"`
	FixedOutflow         string `json:"fixed_outflow"`
	Depreciation         string `json:"depreciation"`
	NetCashFlow          string `json:"net_cash_flow"`
	OverdraftInterest    string `json:"overdraft_interest"`
	ClosingCash          string `json:"closing_cash"`
}

// NarrativeLineDTO is one numbered statement line.
type NarrativeLineDTO struct {
	Seq   int    `json:"seq"`
	Month string `json:"month"`
	Text  string `json:"text"`
}

// SimulationResponse is the full graded run.
type SimulationResponse struct {
	ID        string `json:"id"`
	Scenario  string `json:"scenario"`
	CreatedAt string `json:"created_at"`

	Months    []MonthResultDTO   `json:"months"`
	FinalCash string             `json:"final_cash"`
	Lines     []NarrativeLineDTO `json:"lines"`
	Statement string             `json:"statement"`

	// EmailError reports a delivery failure; the run itself succeeded.
	EmailError string `json:"email_error,omitempty"`
	// ArchiveError reports a persistence failure; the run itself
	// succeeded.
	ArchiveError string `json:"archive_error,omitempty"`
}

// ScenarioDTO describes a registered parameter set.
type ScenarioDTO struct {
	Name                 string `json:"name"`
	Proration            string `json:"proration"`
	AllowMonthOneAdvance bool   `json:"allow_month_one_advance"`
}

// SubmissionDTO is one archived run.
type SubmissionDTO struct {
	ID           string                            `json:"id"`
	CreatedAt    string                            `json:"created_at"`
	StudentName  string                            `json:"student_name"`
	StudentEmail string                            `json:"student_email"`
	Scenario     string                            `json:"scenario"`
	Location     string                            `json:"location"`
	Marketing    string                            `json:"marketing"`
	Receivables  string                            `json:"receivables"`
	Purchases    [engine.HorizonMonths]PurchaseDTO `json:"purchases"`
	FinalCash    string                            `json:"final_cash"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toMonthResultDTO(m engine.Month, r engine.MonthResult) MonthResultDTO {
	return MonthResultDTO{
		Month:            m.Name(),
		Demand:           r.Demand,
		UnitsSold:        r.UnitsSold,
		ClosingInventory: r.ClosingInventory,

		Revenue:              r.Revenue.String(),
		UnitCost:             r.UnitCost.String(),
		PurchaseValue:        r.PurchaseValue.String(),
		InventoryValue:       r.InventoryValue.String(),
		CostOfGoodsSold:      r.CostOfGoodsSold.String(),
		ReceivablesCollected: r.ReceivablesCollected.String(),
		PayablesDue:          r.PayablesDue.String(),
		FixedOutflow:         r.FixedOutflow.String(),
		Depreciation:         r.Depreciation.String(),
		NetCashFlow:          r.NetCashFlow.String(),
		OverdraftInterest:    r.OverdraftInterest.String(),
		ClosingCash:          r.ClosingCash.String(),
	}
}

func toNarrativeLineDTOs(lines []engine.NarrativeLine) []NarrativeLineDTO {
	dtos := make([]NarrativeLineDTO, len(lines))
	for i, line := range lines {
		dtos[i] = NarrativeLineDTO{Seq: line.Seq, Month: line.Month.Name(), Text: line.Text}
	}
	return dtos
}

func toSubmissionDTO(sub sqlite.Submission) SubmissionDTO {
	dto := SubmissionDTO{
		ID:           sub.ID,
		CreatedAt:    sub.CreatedAt.Format(time.RFC3339),
		StudentName:  sub.StudentName,
		StudentEmail: sub.StudentEmail,
		Scenario:     sub.Scenario,
		Location:     string(sub.Location),
		Marketing:    string(sub.Marketing),
		Receivables:  string(sub.Receivables),
		FinalCash:    sub.FinalCash.String(),
	}
	for i, order := range sub.Purchases {
		dto.Purchases[i] = PurchaseDTO{Quantity: order.Quantity, Term: string(order.Term)}
	}
	return dto
}
