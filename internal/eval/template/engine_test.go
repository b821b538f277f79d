package template

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineRenderCaches(t *testing.T) {
	engine := NewEngine()

	out, err := engine.Render("Hello {{name}}", map[string]interface{}{"name": "<World>"})
	require.NoError(t, err)
	assert.Equal(t, "Hello &lt;World&gt;", out)

	out, err = engine.Render("Hello {{name}}", map[string]interface{}{"name": "again"})
	require.NoError(t, err)
	assert.Equal(t, "Hello again", out)
	assert.Equal(t, 1, engine.CacheSize())

	engine.ClearCache()
	assert.Equal(t, 0, engine.CacheSize())
}

func TestEngineParseError(t *testing.T) {
	engine := NewEngine()

	_, err := engine.Render("{{#if}}", nil)
	require.Error(t, err)
	assert.Equal(t, 0, engine.CacheSize())
}

func TestShellWrapsFragment(t *testing.T) {
	engine := NewEngine()

	doc, err := engine.Shell("<p>a & b</p>", BackgroundDark)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(doc, "<!DOCTYPE html><html><head>"))
	assert.Contains(t, doc, "background: #141414;")
	assert.True(t, strings.HasSuffix(doc, "<body><p>a & b</p></body></html>"))

	doc, err = engine.Shell("", BackgroundLight)
	require.NoError(t, err)
	assert.Contains(t, doc, "background: transparent;\n                color")
	assert.True(t, strings.HasSuffix(doc, "<body></body></html>"))
}

func TestShellKeepsDocuments(t *testing.T) {
	engine := NewEngine()

	for _, content := range []string{
		"<html><p>x</p></html>",
		"  <BODY class=\"x\">y</BODY>",
		"< html>",
		"<body\u00a0class=a>",
		"<\ufeffhtml>",
	} {
		doc, err := engine.Shell(content, BackgroundDark)
		require.NoError(t, err)
		assert.Equal(t, content, doc)
	}

	assert.False(t, IsDocument("<htmlx>"))
	assert.False(t, IsDocument("<bodyguard>"))
	assert.False(t, IsDocument("<body\u0085>"))
}

func TestNormalizeBackground(t *testing.T) {
	assert.Equal(t, BackgroundLight, NormalizeBackground("light"))
	assert.Equal(t, BackgroundDark, NormalizeBackground(" light "))
	assert.Equal(t, BackgroundDark, NormalizeBackground("Light"))
	assert.Equal(t, BackgroundDark, NormalizeBackground("dark"))
	assert.Equal(t, BackgroundDark, NormalizeBackground("sepia"))
	assert.Equal(t, BackgroundDark, NormalizeBackground(""))
}
