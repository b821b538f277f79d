package variables

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateKey(t *testing.T) {
	tests := []struct {
		raw  string
		want KeyResult
	}{
		{raw: " my_var ", want: KeyResult{Valid: true, Trimmed: "my_var"}},
		{raw: "_private", want: KeyResult{Valid: true, Trimmed: "_private"}},
		{raw: "Name2", want: KeyResult{Valid: true, Trimmed: "Name2"}},
		{raw: "\tx\n", want: KeyResult{Valid: true, Trimmed: "x"}},
		{raw: "\ufeffname", want: KeyResult{Valid: true, Trimmed: "name"}},
		{raw: "\u00a0x\u3000", want: KeyResult{Valid: true, Trimmed: "x"}},
		{raw: "\u0085name", want: KeyResult{Reason: ReasonInvalid}},
		{raw: "1bad", want: KeyResult{Reason: ReasonInvalid}},
		{raw: "has space", want: KeyResult{Reason: ReasonInvalid}},
		{raw: "dash-key", want: KeyResult{Reason: ReasonInvalid}},
		{raw: "ünicode", want: KeyResult{Reason: ReasonInvalid}},
		{raw: "   ", want: KeyResult{Reason: ReasonEmpty}},
		{raw: "", want: KeyResult{Reason: ReasonEmpty}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := ValidateKey(tt.raw)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("ValidateKey(%q) mismatch (-want +got):\n%s", tt.raw, diff)
			}
		})
	}
}

func TestReasonErr(t *testing.T) {
	assert.True(t, errors.Is(ValidateKey("").Reason.Err(), ErrEmptyKey))
	assert.True(t, errors.Is(ValidateKey("9").Reason.Err(), ErrInvalidKeyFormat))
	assert.NoError(t, ValidateKey("ok").Reason.Err())
}

func TestFindDuplicates(t *testing.T) {
	assert.Equal(t, []string{"a"}, FindDuplicates([]string{"a", "b", "a"}))
	assert.Empty(t, FindDuplicates([]string{"a", "1bad", "1bad"}))
	assert.Equal(t, []string{"a"}, FindDuplicates([]string{" a", "a ", "b"}))
	assert.Equal(t, []string{"a", "z"}, FindDuplicates([]string{"z", "a", "z", "a", "a"}))
	assert.Empty(t, FindDuplicates([]string{"", "", "  "}))
	assert.Empty(t, FindDuplicates(nil))
}

func TestFindDuplicatesCaseSensitive(t *testing.T) {
	require.Empty(t, FindDuplicates([]string{"Name", "name"}))
}
