package analyse

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/openlabollioules/tools/internal/style"
	"github.com/openlabollioules/tools/pkg/docgen"
)

// ParagraphReport 一个正文段落
type ParagraphReport struct {
	Index        int    `json:"index"`
	Text         string `json:"text"`
	Style        string `json:"style"`
	OutlineLevel int    `json:"outline_level"`
}

// WordsReport Word 模板的内容概要
type WordsReport struct {
	Path            string               `json:"path"`
	Paragraphs      []ParagraphReport    `json:"paragraphs"`
	CharacterStyles []string             `json:"character_styles"`
	InlinePictures  int                  `json:"inline_pictures"`
	Drawings        []docgen.DrawingInfo `json:"drawings"`
	Checks          []StyleCheck         `json:"checks,omitempty"`
}

// StyleCheck 配置的角色样式在模板中是否存在
type StyleCheck struct {
	Role       style.Role `json:"role"`
	Name       string     `json:"name"`
	Found      bool       `json:"found"`
	Suggestion string     `json:"suggestion,omitempty"`
}

// AnalyseWords 读取 .docx 模板
func AnalyseWords(path string) (*WordsReport, *docgen.Document, error) {
	doc, err := docgen.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return DescribeDocument(path, doc), doc, nil
}

// DescribeDocument 整理已打开文档的段落和图形
func DescribeDocument(path string, doc *docgen.Document) *WordsReport {
	report := &WordsReport{
		Path:            path,
		CharacterStyles: doc.CharacterStyles(),
		InlinePictures:  doc.InlinePictures(),
		Drawings:        doc.Drawings(),
	}
	for i, p := range doc.Paragraphs() {
		report.Paragraphs = append(report.Paragraphs, ParagraphReport{
			Index:        i,
			Text:         Abbreviate(p.Text, WordTextWidth),
			Style:        p.Style,
			OutlineLevel: p.OutlineLevel,
		})
	}
	return report
}

// CheckStyles 按角色顺序检查样式，缺失时给出相近的样式名
func CheckStyles(doc *docgen.Document, names style.Map) []StyleCheck {
	candidates := doc.StyleNames()
	var out []StyleCheck
	for _, role := range style.Roles() {
		name, ok := names[role]
		if !ok || name == "" {
			continue
		}
		check := StyleCheck{Role: role, Name: name, Found: doc.HasStyle(name)}
		if !check.Found {
			check.Suggestion = style.Suggest(name, candidates)
		}
		out = append(out, check)
	}
	return out
}

// Missing 缺失样式的数量
func (r *WordsReport) Missing() int {
	n := 0
	for _, c := range r.Checks {
		if !c.Found {
			n++
		}
	}
	return n
}

// Render 输出段落表和样式检查结果
func (r *WordsReport) Render(w io.Writer) {
	color.New(color.FgCyan, color.Bold).Fprintf(w, "%s\n", r.Path)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Text", "Style", "Outline"})
	for _, p := range r.Paragraphs {
		level := "-"
		if p.OutlineLevel >= 0 {
			level = fmt.Sprint(p.OutlineLevel + 1)
		}
		t.AppendRow(table.Row{p.Index, p.Text, p.Style, level})
	}
	t.Render()

	fmt.Fprintf(w, "character styles: %v\n", r.CharacterStyles)
	fmt.Fprintf(w, "inline pictures: %d\n", r.InlinePictures)
	for _, d := range r.Drawings {
		fmt.Fprintf(w, "drawing %q: geometry=%s fill=%s line=%s\n", d.Name, d.Geometry, d.Fill, d.Line)
	}

	if len(r.Checks) == 0 {
		return
	}
	ok := color.New(color.FgGreen)
	bad := color.New(color.FgRed, color.Bold)
	fmt.Fprintln(w)
	for _, c := range r.Checks {
		if c.Found {
			ok.Fprintf(w, "  ok       %-12s %s\n", c.Role, c.Name)
			continue
		}
		bad.Fprintf(w, "  missing  %-12s %s", c.Role, c.Name)
		if c.Suggestion != "" {
			fmt.Fprintf(w, " (did you mean %q?)", c.Suggestion)
		}
		fmt.Fprintln(w)
	}
}
