// Copyright 2026 The Uniscope Authors
// SPDX-License-Identifier: Apache-2.0

package workspaceui

import (
	"bytes"
	"os"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/unison-tools/uniscope/lib/tui"
)

// markdownParser is initialized once and shared: the configuration
// never changes and goldmark parsers are safe for concurrent use.
var (
	markdownParser     goldmark.Markdown
	markdownParserOnce sync.Once
)

func getMarkdownParser() goldmark.Markdown {
	markdownParserOnce.Do(func() {
		markdownParser = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		)
	})
	return markdownParser
}

// newLipglossRenderer returns a lipgloss renderer with a forced
// ANSI256 profile. Doc output always targets the TUI, so terminal
// auto-detection (which sees no TTY under tests) must be bypassed.
func newLipglossRenderer() *lipgloss.Renderer {
	renderer := lipgloss.NewRenderer(os.Stderr, termenv.WithProfile(termenv.ANSI256))
	renderer.SetColorProfile(termenv.ANSI256)
	return renderer
}

// renderMarkdown renders doc prose as styled terminal text, wrapped
// to width. Soft line breaks reflow; code spans, lists, and headings
// keep their structure.
func renderMarkdown(input string, theme tui.Theme, renderer *lipgloss.Renderer, width int) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	source := []byte(input)
	document := getMarkdownParser().Parser().Parse(text.NewReader(source))

	walker := &markdownWalker{
		source:   source,
		theme:    theme,
		renderer: renderer,
		width:    width,
	}
	ast.Walk(document, walker.walk)
	return strings.TrimRight(walker.output.String(), "\n")
}

// markdownWalker accumulates inline content per block and flushes it
// word-wrapped when the block closes. A direct AST walk fits terminal
// rendering better than goldmark's streaming renderer interface: the
// paragraph must be complete before it can be wrapped.
type markdownWalker struct {
	source   []byte
	theme    tui.Theme
	renderer *lipgloss.Renderer
	width    int

	output strings.Builder
	inline strings.Builder

	// Emphasis nesting counters; counters instead of booleans so
	// nested emphasis closes correctly.
	boldCount   int
	italicCount int
	codeSpan    bool

	listDepth int

	// pendingBullet replaces the first-line prefix of the next flushed
	// paragraph, so list item content starts on the bullet line.
	pendingBullet string
}

func (walker *markdownWalker) style() lipgloss.Style {
	style := walker.renderer.NewStyle().Foreground(walker.theme.NormalText)
	if walker.codeSpan {
		style = style.Foreground(walker.theme.SyntaxLiteral)
	}
	if walker.boldCount > 0 {
		style = style.Bold(true)
	}
	if walker.italicCount > 0 {
		style = style.Italic(true)
	}
	return style
}

func (walker *markdownWalker) contentWidth() int {
	width := walker.width - 2*walker.listDepth
	if width < 10 {
		width = 10
	}
	return width
}

// flushInline word-wraps the accumulated inline content and writes it
// with the given per-line prefix (list indent or bullet).
func (walker *markdownWalker) flushInline(firstPrefix, restPrefix string) {
	content := strings.TrimSpace(walker.inline.String())
	walker.inline.Reset()
	if content == "" {
		return
	}
	wrapped := ansi.Wordwrap(content, walker.contentWidth(), "")
	for index, line := range strings.Split(wrapped, "\n") {
		if index == 0 {
			walker.output.WriteString(firstPrefix)
		} else {
			walker.output.WriteString(restPrefix)
		}
		walker.output.WriteString(line)
		walker.output.WriteString("\n")
	}
}

func (walker *markdownWalker) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node := node.(type) {
	case *ast.Text:
		if entering {
			walker.inline.WriteString(walker.style().Render(string(node.Segment.Value(walker.source))))
			if node.SoftLineBreak() || node.HardLineBreak() {
				walker.inline.WriteString(" ")
			}
		}

	case *ast.Emphasis:
		if node.Level >= 2 {
			if entering {
				walker.boldCount++
			} else {
				walker.boldCount--
			}
		} else {
			if entering {
				walker.italicCount++
			} else {
				walker.italicCount--
			}
		}

	case *ast.CodeSpan:
		walker.codeSpan = entering

	case *ast.Paragraph, *ast.TextBlock:
		if !entering {
			indent := strings.Repeat("  ", walker.listDepth)
			first := indent
			if walker.pendingBullet != "" {
				first = walker.pendingBullet
				walker.pendingBullet = ""
			}
			walker.flushInline(first, indent)
			if walker.listDepth == 0 {
				walker.output.WriteString("\n")
			}
		}

	case *ast.Heading:
		if !entering {
			heading := walker.renderer.NewStyle().
				Foreground(walker.theme.HeaderForeground).
				Bold(true).
				Render(strings.TrimSpace(ansi.Strip(walker.inline.String())))
			walker.inline.Reset()
			walker.output.WriteString(heading)
			walker.output.WriteString("\n\n")
		}

	case *ast.List:
		if entering {
			walker.listDepth++
		} else {
			walker.listDepth--
			if walker.listDepth == 0 {
				walker.output.WriteString("\n")
			}
		}

	case *ast.ListItem:
		if entering {
			indent := strings.Repeat("  ", walker.listDepth-1)
			bullet := walker.renderer.NewStyle().
				Foreground(walker.theme.FaintText).
				Render("•")
			walker.pendingBullet = indent + bullet + " "
		}

	case *ast.FencedCodeBlock:
		if entering {
			walker.writeCodeBlock(node)
			return ast.WalkSkipChildren, nil
		}

	case *ast.ThematicBreak:
		if entering {
			rule := walker.renderer.NewStyle().
				Foreground(walker.theme.BorderColor).
				Render(strings.Repeat("─", walker.contentWidth()))
			walker.output.WriteString(rule + "\n\n")
		}
	}
	return ast.WalkContinue, nil
}

// writeCodeBlock renders a fenced code block, syntax-highlighted with
// chroma when a language tag is present.
func (walker *markdownWalker) writeCodeBlock(node *ast.FencedCodeBlock) {
	var raw strings.Builder
	lines := node.Lines()
	for index := 0; index < lines.Len(); index++ {
		segment := lines.At(index)
		raw.Write(segment.Value(walker.source))
	}
	language := string(node.Language(walker.source))

	highlighted := highlightCode(raw.String(), language)
	indent := strings.Repeat("  ", walker.listDepth) + "  "
	for _, line := range strings.Split(strings.TrimRight(highlighted, "\n"), "\n") {
		walker.output.WriteString(indent)
		walker.output.WriteString(line)
		walker.output.WriteString("\n")
	}
	walker.output.WriteString("\n")
}

// highlightCode highlights source with chroma for 256-color
// terminals. Unknown languages and highlighter errors fall back to
// the plain source.
func highlightCode(source, language string) string {
	if language == "" {
		return source
	}
	var buffer bytes.Buffer
	if err := quick.Highlight(&buffer, source, language, "terminal256", "monokai"); err != nil {
		return source
	}
	return buffer.String()
}
