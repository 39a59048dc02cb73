package wordlist

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownLoader reads the text of every list item in a Markdown document.
// Headings and paragraphs are ignored, so a wordlist can carry notes.
type MarkdownLoader struct {
	markdown goldmark.Markdown
}

func NewMarkdownLoader() *MarkdownLoader {
	return &MarkdownLoader{
		markdown: goldmark.New(),
	}
}

// Load implements Loader.
func (l *MarkdownLoader) Load(r io.Reader) ([]string, error) {
	source, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}

	doc := l.markdown.Parser().Parse(text.NewReader(source))

	var words []string
	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		item, ok := n.(*ast.ListItem)
		if !ok {
			return ast.WalkContinue, nil
		}
		// Only the item's own text block; nested lists are visited separately.
		if first := item.FirstChild(); first != nil {
			if _, isList := first.(*ast.List); !isList {
				if word := strings.TrimSpace(extractText(first, source)); word != "" {
					words = append(words, word)
				}
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk markdown: %w", err)
	}
	return words, nil
}

// extractText concatenates the text segments below n
func extractText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Text:
			buf.Write(node.Segment.Value(source))
		case *ast.String:
			buf.Write(node.Value)
		default:
			buf.WriteString(extractText(c, source))
		}
	}
	return buf.String()
}
