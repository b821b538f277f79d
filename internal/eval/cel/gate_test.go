package cel

import (
	"context"
	"testing"

	"github.com/aescanero/dago-node-preview/internal/variables"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultGate(t *testing.T) {
	gate, err := NewGate(NewEvaluator(), "")
	require.NoError(t, err)
	assert.Equal(t, DefaultGate, gate.Expression())

	ctx := context.Background()

	allowed, err := gate.Allow(ctx, variables.Check([]variables.Row{{Key: "a"}, {Key: ""}}))
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = gate.Allow(ctx, variables.Check([]variables.Row{{Key: "a"}, {Key: "a"}}))
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = gate.Allow(ctx, variables.Check([]variables.Row{{Key: "1bad"}}))
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestRelaxedGate(t *testing.T) {
	gate, err := NewGate(NewEvaluator(), "size(report.duplicates) == 0")
	require.NoError(t, err)

	ctx := context.Background()

	allowed, err := gate.Allow(ctx, variables.Check([]variables.Row{{Key: "ok"}, {Key: "1bad"}}))
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = gate.Allow(ctx, variables.Check([]variables.Row{{Key: "x"}, {Key: " x"}}))
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestCountingGate(t *testing.T) {
	gate, err := NewGate(NewEvaluator(), "report.valid && report.rows > 0 && report.empty == 0")
	require.NoError(t, err)

	ctx := context.Background()

	allowed, err := gate.Allow(ctx, variables.Check(nil))
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = gate.Allow(ctx, variables.Check([]variables.Row{{Key: "a"}}))
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestGateRejectsBadExpressions(t *testing.T) {
	evaluator := NewEvaluator()

	_, err := NewGate(evaluator, "report.valid &&")
	assert.Error(t, err)

	_, err = NewGate(evaluator, "1 + 2")
	assert.Error(t, err)

	_, err = NewGate(evaluator, "unknown_var")
	assert.Error(t, err)
}

func TestGateNonBooleanResult(t *testing.T) {
	// Dyn passes compilation but yields an int at runtime.
	gate, err := NewGate(NewEvaluator(), "report.rows")
	require.NoError(t, err)

	allowed, err := gate.Allow(context.Background(), variables.Check([]variables.Row{{Key: "a"}}))
	assert.Error(t, err)
	assert.False(t, allowed)
}

func TestEvaluatorCache(t *testing.T) {
	evaluator := NewEvaluator()
	vars := ReportVars(variables.Check([]variables.Row{{Key: "a"}}))

	for i := 0; i < 2; i++ {
		out, err := evaluator.Evaluate(context.Background(), "report.rows == 1", vars)
		require.NoError(t, err)
		assert.Equal(t, true, out)
	}
	assert.Len(t, evaluator.cache, 1)

	evaluator.ClearCache()
	assert.Empty(t, evaluator.cache)
}
