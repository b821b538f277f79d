package substitute

import (
	"regexp"
	"strings"
	"sync"

	"github.com/aescanero/dago-node-preview/internal/variables"
	"github.com/golang/groupcache/lru"
)

// DefaultCacheSize bounds the number of keys whose patterns are kept compiled
const DefaultCacheSize = 1024

const space = variables.SpaceClass

var defaultRenderer = NewRenderer(DefaultCacheSize)

// Render substitutes vars into template using the shared renderer.
func Render(template string, vars *variables.Map) string {
	return defaultRenderer.Render(template, vars)
}

// keyPatterns holds the compiled patterns for one key
type keyPatterns struct {
	triple *regexp.Regexp
	double *regexp.Regexp
}

// segment is a run of output text. Substituted values are never rescanned.
type segment struct {
	text  string
	value bool
}

// Renderer renders templates and caches per-key patterns. It is safe for
// concurrent use.
type Renderer struct {
	mu    sync.Mutex
	cache *lru.Cache
}

// NewRenderer creates a renderer caching at most size key patterns
func NewRenderer(size int) *Renderer {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &Renderer{cache: lru.New(size)}
}

// Render substitutes every entry of vars into template, in map order. For
// each key the triple-brace form is replaced before the double-brace form.
func (r *Renderer) Render(template string, vars *variables.Map) string {
	if vars.Len() == 0 || !strings.Contains(template, "{{") {
		return template
	}

	segments := []segment{{text: template}}
	for _, entry := range vars.Entries() {
		// Patterns are only ever built from well-formed keys.
		if !variables.KeyPattern.MatchString(entry.Key) {
			continue
		}

		patterns := r.patterns(entry.Key)
		segments = replaceAll(segments, patterns.triple, entry.Value)
		segments = replaceAll(segments, patterns.double, entry.Value)
	}

	var out strings.Builder
	out.Grow(len(template))
	for _, seg := range segments {
		out.WriteString(seg.text)
	}
	return out.String()
}

// patterns gets the compiled patterns for key from cache or compiles them
func (r *Renderer) patterns(key string) *keyPatterns {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.cache.Get(key); ok {
		return cached.(*keyPatterns)
	}

	quoted := regexp.QuoteMeta(key)
	p := &keyPatterns{
		triple: regexp.MustCompile(`\{\{\{` + space + `*` + quoted + space + `*\}\}\}`),
		double: regexp.MustCompile(`\{\{` + space + `*` + quoted + space + `*\}\}`),
	}
	r.cache.Add(key, p)

	return p
}

// ClearCache drops all compiled patterns
func (r *Renderer) ClearCache() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Clear()
}

// replaceAll replaces every match of re inside template-originated segments.
func replaceAll(segments []segment, re *regexp.Regexp, value string) []segment {
	out := make([]segment, 0, len(segments))
	for _, seg := range segments {
		if seg.value {
			out = append(out, seg)
			continue
		}

		locs := re.FindAllStringIndex(seg.text, -1)
		if locs == nil {
			out = append(out, seg)
			continue
		}

		last := 0
		for _, loc := range locs {
			if loc[0] > last {
				out = append(out, segment{text: seg.text[last:loc[0]]})
			}
			out = append(out, segment{text: value, value: true})
			last = loc[1]
		}
		if last < len(seg.text) {
			out = append(out, segment{text: seg.text[last:]})
		}
	}
	return out
}
