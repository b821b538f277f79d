// Package preview combines key validation, the render gate, substitution and
// the document shell into the operation hosts call on every edit.
//
// Example usage:
//
//	svc, err := preview.NewService(preview.Options{Gate: "report.valid"}, logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := svc.Preview(ctx, &preview.Request{
//	    Template: "<h1>{{ title }}</h1>",
//	    Rows:     []variables.Row{{Key: "title", Value: "Hello"}},
//	    Shell:    true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Rendered {
//	    // flag result.Report.Rows to the user and keep the last preview
//	}
package preview
