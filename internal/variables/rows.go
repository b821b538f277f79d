package variables

// Row is one key/value pair as entered by the user. Value may carry any
// JSON-decoded value; it is coerced with Stringify when the map is built.
type Row struct {
	Key   string `json:"key" yaml:"key"`
	Value any    `json:"value" yaml:"value"`
}

// Problem classifies a single row
type Problem string

const (
	ProblemNone      Problem = "ok"
	ProblemEmpty     Problem = "empty"
	ProblemInvalid   Problem = "invalid"
	ProblemDuplicate Problem = "duplicate"
)

// RowStatus describes how a row was judged
type RowStatus struct {
	Index       int     `json:"index"`
	Key         string  `json:"key"`
	Problem     Problem `json:"problem"`
	DuplicateOf string  `json:"duplicate_of,omitempty"`
}

// Flagged reports whether the row should be highlighted to the user. Empty
// rows are incomplete, not wrong.
func (s RowStatus) Flagged() bool {
	return s.Problem == ProblemInvalid || s.Problem == ProblemDuplicate
}

// Err returns the sentinel error for the row's problem, or nil. Empty rows
// report ErrEmptyKey even though they do not block rendering.
func (s RowStatus) Err() error {
	switch s.Problem {
	case ProblemEmpty:
		return ErrEmptyKey
	case ProblemInvalid:
		return ErrInvalidKeyFormat
	case ProblemDuplicate:
		return ErrDuplicateKey
	default:
		return nil
	}
}

// Report is the validity signal for a whole row set
type Report struct {
	Valid         bool        `json:"valid"`
	Rows          []RowStatus `json:"rows"`
	Duplicates    []string    `json:"duplicates"`
	EmptyCount    int         `json:"empty"`
	InvalidCount  int         `json:"invalid"`
	DuplicateRows int         `json:"duplicate_rows"`
}

// Keys returns the raw keys of rows in order.
func Keys(rows []Row) []string {
	keys := make([]string, len(rows))
	for i, row := range rows {
		keys[i] = row.Key
	}
	return keys
}

// IsFullyValid reports whether every non-empty key is well-formed and no
// well-formed key repeats.
func IsFullyValid(rows []Row) bool {
	for _, row := range rows {
		if ValidateKey(row.Key).Reason == ReasonInvalid {
			return false
		}
	}
	return len(FindDuplicates(Keys(rows))) == 0
}

// Check judges every row and returns the combined report.
func Check(rows []Row) Report {
	duplicates := FindDuplicates(Keys(rows))
	dupSet := make(map[string]struct{}, len(duplicates))
	for _, key := range duplicates {
		dupSet[key] = struct{}{}
	}

	report := Report{
		Rows:       make([]RowStatus, len(rows)),
		Duplicates: duplicates,
	}

	for i, row := range rows {
		status := RowStatus{Index: i, Key: Trim(row.Key)}
		result := ValidateKey(row.Key)

		switch {
		case result.Reason == ReasonEmpty:
			status.Problem = ProblemEmpty
			report.EmptyCount++
		case result.Reason == ReasonInvalid:
			status.Problem = ProblemInvalid
			report.InvalidCount++
		default:
			if _, dup := dupSet[result.Trimmed]; dup {
				status.Problem = ProblemDuplicate
				status.DuplicateOf = result.Trimmed
				report.DuplicateRows++
			} else {
				status.Problem = ProblemNone
			}
		}

		report.Rows[i] = status
	}

	report.Valid = report.InvalidCount == 0 && len(duplicates) == 0
	return report
}

// BuildMap builds the ordered variable map from rows. Rows with an empty,
// malformed or duplicated key contribute nothing.
func BuildMap(rows []Row) *Map {
	duplicates := FindDuplicates(Keys(rows))
	dupSet := make(map[string]struct{}, len(duplicates))
	for _, key := range duplicates {
		dupSet[key] = struct{}{}
	}

	vars := NewMap()
	for _, row := range rows {
		result := ValidateKey(row.Key)
		if !result.Valid {
			continue
		}
		if _, dup := dupSet[result.Trimmed]; dup {
			continue
		}
		vars.Set(result.Trimmed, Stringify(row.Value))
	}

	return vars
}
