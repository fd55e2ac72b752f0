package analyse

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/openlabollioules/tools/internal/generator"
	"github.com/openlabollioules/tools/pkg/pptgen"
)

// ShapeReport 版式中的一个形状
type ShapeReport struct {
	Index           int     `json:"index"`
	Name            string  `json:"name"`
	Kind            string  `json:"kind"`
	PlaceholderType string  `json:"placeholder_type,omitempty"`
	PlaceholderIdx  *int    `json:"placeholder_idx,omitempty"`
	Text            string  `json:"text,omitempty"`
	Left            float64 `json:"left_in"`
	Top             float64 `json:"top_in"`
	Width           float64 `json:"width_in"`
	Height          float64 `json:"height_in"`
}

// LayoutReport 第一个母版中的一个版式
type LayoutReport struct {
	Index        int           `json:"index"`
	Name         string        `json:"name"`
	Placeholders int           `json:"placeholders"`
	Shapes       []ShapeReport `json:"shapes"`
}

// SlidesReport 演示文稿模板的版式清单
type SlidesReport struct {
	Path    string         `json:"path"`
	Slides  int            `json:"slides"`
	Layouts []LayoutReport `json:"layouts"`
}

// AnalyseSlides 读取 .pptx 模板的版式
func AnalyseSlides(path string) (*SlidesReport, error) {
	prs, err := pptgen.Open(path)
	if err != nil {
		return nil, err
	}
	return DescribePresentation(path, prs), nil
}

// DescribePresentation 整理已打开演示文稿的版式
func DescribePresentation(path string, prs *pptgen.Presentation) *SlidesReport {
	report := &SlidesReport{Path: path, Slides: len(prs.Slides())}
	for _, layout := range prs.Layouts() {
		lr := LayoutReport{Index: layout.Index, Name: layout.Name}
		for i, shape := range layout.Shapes() {
			sr := ShapeReport{Index: i, Name: shape.Name(), Kind: shape.Kind()}
			if shape.IsPlaceholder() {
				lr.Placeholders++
				sr.PlaceholderType = shape.PlaceholderType()
				if idx, ok := shape.PlaceholderIdx(); ok {
					sr.PlaceholderIdx = &idx
				}
			}
			if shape.HasTextFrame() {
				sr.Text = Abbreviate(shape.Text(), SlideTextWidth)
			}
			if x, y, cx, cy, ok := shape.Geometry(); ok {
				sr.Left, sr.Top, sr.Width, sr.Height = inches(x), inches(y), inches(cx), inches(cy)
			}
			lr.Shapes = append(lr.Shapes, sr)
		}
		report.Layouts = append(report.Layouts, lr)
	}
	return report
}

// Render 输出版式和形状表格
func (r *SlidesReport) Render(w io.Writer) {
	title := color.New(color.FgCyan, color.Bold)
	title.Fprintf(w, "%s\n", r.Path)
	fmt.Fprintf(w, "slides: %d, layouts: %d\n", r.Slides, len(r.Layouts))

	for _, l := range r.Layouts {
		color.New(color.FgYellow, color.Bold).Fprintf(w, "\n[%d] %s  shapes=%d placeholders=%d\n", l.Index, l.Name, len(l.Shapes), l.Placeholders)
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"#", "Name", "Kind", "Placeholder", "Idx", "Text", "Left", "Top", "Width", "Height"})
		for _, s := range l.Shapes {
			idx := ""
			if s.PlaceholderIdx != nil {
				idx = fmt.Sprint(*s.PlaceholderIdx)
			}
			t.AppendRow(table.Row{
				s.Index, s.Name, s.Kind, s.PlaceholderType, idx, s.Text,
				fmt.Sprintf("%.2f", s.Left), fmt.Sprintf("%.2f", s.Top),
				fmt.Sprintf("%.2f", s.Width), fmt.Sprintf("%.2f", s.Height),
			})
		}
		t.Render()
	}
}

// TemplateMatrix 语言和密级组合对应的全部模板路径
func TemplateMatrix(cfg generator.PptxConfig) []string {
	var out []string
	for _, lang := range []string{"fr", "en"} {
		for _, conf := range []string{"public", "internal", "confidential"} {
			path, _ := cfg.TemplatePath(lang, conf)
			out = append(out, path)
		}
	}
	return out
}
