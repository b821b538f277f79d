// Package template provides a Handlebars template engine used to build the
// preview document around rendered template output.
//
// Rendered fragments are wrapped into a full HTML document whose body
// background follows the selected preview background. Content that already
// contains an <html> or <body> tag is returned unchanged.
//
// Example usage:
//
//	engine := template.NewEngine()
//
//	doc, err := engine.Shell("<p>Hello</p>", template.BackgroundLight)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// doc: <!DOCTYPE html><html><head><style>...</style></head><body><p>Hello</p></body></html>
//
// The engine caches compiled templates and can render arbitrary Handlebars
// sources too:
//
//	out, err := engine.Render("Hello {{name}}", map[string]interface{}{"name": "World"})
package template
