// Package variables validates template variable keys and builds the ordered
// variable map used for substitution.
//
// A key is well-formed when, after trimming surrounding whitespace, it matches
// [A-Za-z_][A-Za-z0-9_]*. Rows whose key is empty are tolerated as
// not-yet-named rows; rows whose key is malformed or duplicated are flagged
// and excluded from the map.
//
// Example usage:
//
//	rows := []variables.Row{
//	    {Key: " name ", Value: "World"},
//	    {Key: "1bad", Value: "x"},
//	}
//
//	report := variables.Check(rows)
//	if !report.Valid {
//	    for _, status := range report.Rows {
//	        fmt.Println(status.Index, status.Problem)
//	    }
//	}
//
//	vars := variables.BuildMap(rows) // name=World
package variables
