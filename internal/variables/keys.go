package variables

import (
	"errors"
	"regexp"
	"sort"
)

// KeyPattern matches a well-formed variable key.
var KeyPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validation errors surfaced to hosts
var (
	ErrEmptyKey         = errors.New("variable key is empty")
	ErrInvalidKeyFormat = errors.New("variable key must match [A-Za-z_][A-Za-z0-9_]*")
	ErrDuplicateKey     = errors.New("variable key is duplicated")
)

// Reason explains why a key was rejected
type Reason string

const (
	ReasonNone    Reason = ""
	ReasonEmpty   Reason = "empty"
	ReasonInvalid Reason = "invalid"
)

// Err returns the sentinel error for the reason, or nil.
func (r Reason) Err() error {
	switch r {
	case ReasonEmpty:
		return ErrEmptyKey
	case ReasonInvalid:
		return ErrInvalidKeyFormat
	default:
		return nil
	}
}

// KeyResult is the outcome of ValidateKey
type KeyResult struct {
	Valid   bool   `json:"valid"`
	Trimmed string `json:"trimmed,omitempty"`
	Reason  Reason `json:"reason,omitempty"`
}

// ValidateKey trims raw and checks it against KeyPattern.
func ValidateKey(raw string) KeyResult {
	trimmed := Trim(raw)
	if trimmed == "" {
		return KeyResult{Reason: ReasonEmpty}
	}
	if !KeyPattern.MatchString(trimmed) {
		return KeyResult{Reason: ReasonInvalid}
	}
	return KeyResult{Valid: true, Trimmed: trimmed}
}

// FindDuplicates returns the sorted set of trimmed, well-formed keys that
// occur more than once. Malformed keys never count as duplicates.
func FindDuplicates(keys []string) []string {
	counts := make(map[string]int, len(keys))
	for _, key := range keys {
		result := ValidateKey(key)
		if !result.Valid {
			continue
		}
		counts[result.Trimmed]++
	}

	duplicates := make([]string, 0)
	for key, count := range counts {
		if count > 1 {
			duplicates = append(duplicates, key)
		}
	}
	sort.Strings(duplicates)

	return duplicates
}
