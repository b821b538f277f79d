// Package substitute replaces {{key}} and {{{key}}} placeholders in template
// text with values from a variables.Map.
//
// Substitution is literal for both brace forms: values are inserted as-is,
// without HTML escaping and without expanding "$" sequences. Whitespace
// around the key inside the braces (variables.SpaceClass, the same set used
// to trim row keys) is ignored; the key itself is matched
// exactly and case-sensitively.
//
// Example usage:
//
//	vars := variables.MapOf("name", "World")
//	out := substitute.Render("<h1>Hello {{ name }}</h1>{{missing}}", vars)
//	// Output: <h1>Hello World</h1>{{missing}}
//
// Rendering never fails. Placeholders whose key is not in the map are left
// verbatim, and text produced by a substitution is never scanned again, so a
// value that itself looks like a placeholder is emitted unchanged.
package substitute
