package template

import (
	"regexp"

	"github.com/aescanero/dago-node-preview/internal/variables"
)

// Background selects the preview body background
type Background string

const (
	BackgroundDark  Background = "dark"
	BackgroundLight Background = "light"
)

// Colors used for the body of a wrapped preview
const (
	darkBodyBackground  = "#141414"
	lightBodyBackground = "transparent"
)

// ShellTemplate wraps a rendered fragment into a standalone document.
const ShellTemplate = `<!DOCTYPE html><html><head>
        <style>
            html {
                background: transparent;
                color: inherit;
                margin: 0;
            }
            body {
                background: {{background}};
                color: inherit;
                margin: 0;
                padding: 0.5rem;
            }
        </style>
    </head><body>{{{content}}}</body></html>`

var (
	htmlTagPattern = tagPattern("html")
	bodyTagPattern = tagPattern("body")
)

func tagPattern(name string) *regexp.Regexp {
	space := variables.SpaceClass
	return regexp.MustCompile(`(?i)<` + space + `*` + name + `(?:` + space + `|>)`)
}

// NormalizeBackground maps exactly "light" to light and anything else to dark.
func NormalizeBackground(s string) Background {
	if Background(s) == BackgroundLight {
		return BackgroundLight
	}
	return BackgroundDark
}

// IsDocument reports whether content already carries an <html> or <body> tag.
func IsDocument(content string) bool {
	return htmlTagPattern.MatchString(content) || bodyTagPattern.MatchString(content)
}

// Shell wraps content in the preview document unless it already is one.
func (e *Engine) Shell(content string, background Background) (string, error) {
	if IsDocument(content) {
		return content, nil
	}

	bodyBackground := darkBodyBackground
	if background == BackgroundLight {
		bodyBackground = lightBodyBackground
	}

	return e.Render(ShellTemplate, map[string]interface{}{
		"background": bodyBackground,
		"content":    content,
	})
}
