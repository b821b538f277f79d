// Package cel provides a CEL (Common Expression Language) evaluator for the
// render gate.
//
// Before a preview is rendered, the validation report of the variable rows is
// exposed to a boolean CEL expression. The default gate, "report.valid",
// renders only fully valid row sets. Operators may relax or tighten it.
//
// Example usage:
//
//	evaluator := cel.NewEvaluator()
//	gate, err := cel.NewGate(evaluator, "size(report.duplicates) == 0")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	allowed, err := gate.Allow(ctx, variables.Check(rows))
//
// Fields of report:
//   - valid - no malformed and no duplicated keys
//   - rows - number of rows
//   - empty - rows with an empty key
//   - invalid - rows with a malformed key
//   - duplicates - list of duplicated keys
//   - duplicate_rows - rows carrying a duplicated key
package cel
