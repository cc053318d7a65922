package chunker

import (
	"regexp"
	"strings"
)

// IngredientChunker splits an ingredients text into individual ingredient
// phrases on commas, semicolons and newlines.
type IngredientChunker struct {
	splitter *regexp.Regexp
}

func NewIngredientChunker() *IngredientChunker {
	return &IngredientChunker{splitter: regexp.MustCompile(`[,;\n]+`)}
}

// Chunk returns the trimmed, non-empty phrases of text in order.
func (c *IngredientChunker) Chunk(text string) []string {
	parts := c.splitter.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
