// Package scenario defines the closed catalog of adverse financial scenarios
// the projection engine can model. Each definition owns its parameter schema,
// its deterministic fallback parameter builder, and the per-month cash-flow
// transition rule the Monte Carlo kernel drives.
package scenario

import (
	"errors"
	"fmt"

	"futuremirror/internal/profile"
	"futuremirror/internal/stats"
)

// ID identifies a scenario variant.
type ID string

const (
	JobLoss          ID = "job_loss"
	SalaryDeduction  ID = "salary_deduction"
	InvestmentStop   ID = "investment_stop"
	LiabilityStress  ID = "liability_stress"
	EmergencyExpense ID = "emergency_expense"
)

var (
	// ErrUnsupportedScenario is returned for identifiers outside the catalog.
	ErrUnsupportedScenario = errors.New("unsupported scenario")

	// ErrInvalidParameters is returned when a parameter payload is structurally
	// unusable (not a JSON object). Individual malformed fields do not trigger
	// this; they coerce to zero-valued defaults instead.
	ErrInvalidParameters = errors.New("invalid scenario parameters")
)

// Definition is one entry in the scenario catalog.
type Definition interface {
	// ID returns the variant identifier.
	ID() ID

	// Schema returns the JSON Schema descriptor for the variant's request
	// envelope. It instructs the parameter-resolution collaborator; the
	// simulation kernel never interprets it.
	Schema() string

	// Defaults builds the deterministic fallback parameter payload from the
	// financial profile and the raw user query. Explicit numbers in the query
	// win; otherwise a candidate value is picked per field.
	Defaults(m profile.Metrics, query string) map[string]interface{}

	// Decode coerces a raw parameter payload into runnable Params. Missing or
	// malformed numeric fields degrade to defaults; only a structurally
	// unusable payload yields ErrInvalidParameters.
	Decode(raw map[string]interface{}) (Params, error)
}

// Params is a decoded, variant-specific parameter set carrying the per-month
// transition rule. A Params value is owned by a single simulation invocation.
type Params interface {
	// Config returns the simulation run settings.
	Config() SimConfig

	// InitialState returns the starting cash or portfolio balance of a trial.
	InitialState() float64

	// Step advances one month. It returns the new balance and whether a ruin
	// condition was hit this month. Variants without ruin tracking always
	// return false.
	Step(month int, state float64, g *stats.Sampler) (float64, bool)

	// Summarize fills the variant-specific fields of a horizon result from
	// the aggregated statistics.
	Summarize(r *HorizonResult, median, p10, p90, ruinRate float64)
}

// SimConfig holds the per-run simulation settings common to all variants.
type SimConfig struct {
	Iterations        int
	TimeHorizonMonths int
}

// registry is the closed dispatch table. New variants are added here and
// nowhere else.
var registry = map[ID]Definition{
	JobLoss:          jobLossDefinition{},
	SalaryDeduction:  salaryDeductionDefinition{},
	InvestmentStop:   investmentStopDefinition{},
	LiabilityStress:  liabilityStressDefinition{},
	EmergencyExpense: emergencyExpenseDefinition{},
}

// order fixes the listing order for user-facing enumerations.
var order = []ID{JobLoss, SalaryDeduction, InvestmentStop, LiabilityStress, EmergencyExpense}

// Lookup resolves a scenario identifier to its definition.
func Lookup(id string) (Definition, error) {
	def, ok := registry[ID(id)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScenario, id)
	}
	return def, nil
}

// IDs returns all known scenario identifiers in a stable order.
func IDs() []ID {
	out := make([]ID, len(order))
	copy(out, order)
	return out
}
