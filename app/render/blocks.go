package render

import (
	"encoding/json"
	"html/template"
	"strings"

	"inkwell/app/models"

	"github.com/russross/blackfriday/v2"
)

// block is the one shape this renderer understands. Anything else in a post
// body is carried opaquely by the workflow and skipped here.
type block struct {
	Type     string `json:"_type"`
	Markdown string `json:"markdown"`
}

// Body renders a post's content blocks to HTML. Markdown blocks go through
// blackfriday; malformed or foreign blocks are dropped rather than breaking
// the page.
func Body(blocks []models.Block) template.HTML {
	var sb strings.Builder
	for _, raw := range blocks {
		var b block
		if err := json.Unmarshal(raw, &b); err != nil {
			continue
		}
		if b.Markdown == "" {
			continue
		}
		sb.Write(blackfriday.Run([]byte(b.Markdown)))
	}
	return template.HTML(sb.String())
}

// MarkdownBlock wraps markdown source as a body block document.
func MarkdownBlock(markdown string) (models.Block, error) {
	return json.Marshal(block{Type: "block", Markdown: markdown})
}
