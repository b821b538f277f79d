package cel

import (
	"context"
	"fmt"

	"github.com/aescanero/dago-node-preview/internal/variables"
)

// DefaultGate opens only for a fully valid row set
const DefaultGate = "report.valid"

// Gate decides whether a preview may be rendered for a validation report
type Gate struct {
	evaluator  *Evaluator
	expression string
}

// NewGate compiles expression once and returns a gate using it. An empty
// expression selects DefaultGate.
func NewGate(evaluator *Evaluator, expression string) (*Gate, error) {
	if expression == "" {
		expression = DefaultGate
	}
	if err := evaluator.ValidateExpression(expression); err != nil {
		return nil, fmt.Errorf("invalid render gate %q: %w", expression, err)
	}
	return &Gate{evaluator: evaluator, expression: expression}, nil
}

// Expression returns the gate expression
func (g *Gate) Expression() string {
	return g.expression
}

// Allow evaluates the gate against report. Errors and non-boolean results
// keep the gate closed.
func (g *Gate) Allow(ctx context.Context, report variables.Report) (bool, error) {
	result, err := g.evaluator.Evaluate(ctx, g.expression, ReportVars(report))
	if err != nil {
		return false, err
	}

	allowed, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("render gate returned %T, want bool", result)
	}

	return allowed, nil
}

// ReportVars exposes a report to CEL as the "report" variable.
func ReportVars(report variables.Report) map[string]interface{} {
	duplicates := make([]interface{}, len(report.Duplicates))
	for i, key := range report.Duplicates {
		duplicates[i] = key
	}

	return map[string]interface{}{
		"report": map[string]interface{}{
			"valid":          report.Valid,
			"rows":           int64(len(report.Rows)),
			"empty":          int64(report.EmptyCount),
			"invalid":        int64(report.InvalidCount),
			"duplicates":     duplicates,
			"duplicate_rows": int64(report.DuplicateRows),
		},
	}
}
