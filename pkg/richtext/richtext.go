// Package richtext 把单行文本中的 Markdown 行内标记（粗体、斜体、代码）转换为格式化片段。
package richtext

import (
	"strings"
	"unicode"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Span 一段带格式的文本
type Span struct {
	Text   string
	Bold   bool
	Italic bool
	Code   bool
}

// Spans 片段序列
type Spans []Span

// Text 拼接纯文本
func (s Spans) Text() string {
	var sb strings.Builder
	for _, sp := range s {
		sb.WriteString(sp.Text)
	}
	return sb.String()
}

// 只启用段落块解析，避免 "1. xxx"、"# xxx" 被当成列表或标题
var inlineParser = parser.NewParser(
	parser.WithBlockParsers(util.Prioritized(parser.NewParagraphParser(), 1000)),
	parser.WithInlineParsers(
		util.Prioritized(parser.NewCodeSpanParser(), 100),
		util.Prioritized(parser.NewLinkParser(), 200),
		util.Prioritized(parser.NewEmphasisParser(), 500),
	),
)

// Plain 不解析，整行作为一个片段
func Plain(s string) Spans {
	if s == "" {
		return nil
	}
	return Spans{{Text: s}}
}

// Parse 解析行内标记，首尾空白原样保留
func Parse(s string) Spans {
	core := strings.TrimFunc(s, unicode.IsSpace)
	if core == "" || !strings.ContainsAny(core, "*_`[") {
		return Plain(s)
	}
	lead := s[:strings.Index(s, core)]
	trail := s[len(lead)+len(core):]

	src := []byte(core)
	doc := inlineParser.Parse(text.NewReader(src))

	var out Spans
	if lead != "" {
		out = append(out, Span{Text: lead})
	}
	var bold, italic, code int
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.Emphasis:
			if node.Level >= 2 {
				bold += step(entering)
			} else {
				italic += step(entering)
			}
		case *ast.CodeSpan:
			code += step(entering)
		case *ast.Link:
			if !entering {
				dest := string(node.Destination)
				if dest != "" && dest != textOf(node, src) {
					out = appendSpan(out, Span{Text: " (" + dest + ")"})
				}
			}
		case *ast.Text:
			if entering {
				out = appendSpan(out, Span{
					Text:   string(node.Segment.Value(src)),
					Bold:   bold > 0,
					Italic: italic > 0,
					Code:   code > 0,
				})
				if node.SoftLineBreak() || node.HardLineBreak() {
					out = appendSpan(out, Span{Text: " "})
				}
			}
		case *ast.String:
			if entering {
				out = appendSpan(out, Span{Text: string(node.Value), Bold: bold > 0, Italic: italic > 0, Code: code > 0})
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil || strings.TrimSpace(out.Text()) == "" {
		return Plain(s)
	}
	if trail != "" {
		out = append(out, Span{Text: trail})
	}
	return out
}

func step(entering bool) int {
	if entering {
		return 1
	}
	return -1
}

// 相同格式的相邻片段合并
func appendSpan(out Spans, sp Span) Spans {
	if sp.Text == "" {
		return out
	}
	if n := len(out); n > 0 {
		last := &out[n-1]
		if last.Bold == sp.Bold && last.Italic == sp.Italic && last.Code == sp.Code {
			last.Text += sp.Text
			return out
		}
	}
	return append(out, sp)
}

func textOf(n ast.Node, src []byte) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			sb.Write(t.Segment.Value(src))
		}
	}
	return sb.String()
}
