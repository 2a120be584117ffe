// Package render turns authored markdown into sanitized HTML for rich text
// fields and highlights content for terminal preview.
package render

import (
	"sync"

	"github.com/gomarkdown/markdown"
	md_html "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/debemdeboas/site-admin/internal/cache"
	"github.com/debemdeboas/site-admin/internal/util"
)

var renderLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	renderLogger = l
}

var sanitizePolicy = bluemonday.UGCPolicy()

// SanitizeHTML strips scriptable markup from server-supplied rich text
// before it reaches any display surface.
func SanitizeHTML(html string) string {
	return sanitizePolicy.Sanitize(html)
}

// MarkdownToHTML renders authored markdown into the HTML stored on a rich
// text field. Output is sanitized so the authoring path cannot smuggle
// markup the display path would refuse.
func MarkdownToHTML(md []byte) []byte {
	opts := md_html.RendererOptions{
		Flags: md_html.CommonFlags | md_html.HrefTargetBlank,
	}

	doc := parser.NewWithExtensions(
		parser.Tables | parser.FencedCode | parser.Autolink | parser.Strikethrough |
			parser.SpaceHeadings | parser.HeadingIDs | parser.AutoHeadingIDs |
			parser.OrderedListStart | parser.BackslashLineBreak,
	).Parse(md)
	rendered := markdown.Render(doc, md_html.NewRenderer(opts))

	return sanitizePolicy.SanitizeBytes(rendered)
}

type renderedEntry struct {
	html []byte
}

var (
	renderCache      = cache.NewCache[string, renderedEntry]()
	renderCacheMutex sync.Mutex
)

// MarkdownToHTMLCached memoizes rendering by content hash. Edit flows
// re-render the same body on every keystroke worth of preview.
func MarkdownToHTMLCached(md []byte) []byte {
	contentHash := util.ContentHash(md)

	if cached, found := renderCache.Get(contentHash); found {
		renderLogger.Debug().Str("contentHash", contentHash).Msg("Cache hit for rendered markdown")
		return cached.html
	}

	renderCacheMutex.Lock()
	defer renderCacheMutex.Unlock()

	if cached, found := renderCache.Get(contentHash); found {
		return cached.html
	}

	html := MarkdownToHTML(md)
	renderCache.Set(contentHash, renderedEntry{html: html})
	return html
}
