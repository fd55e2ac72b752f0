package docgen

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Format 段落格式，零值表示沿用样式
type Format struct {
	Alignment       Alignment
	LeftIndent      Length
	FirstLineIndent Length
	SpaceBefore     Length
	SpaceAfter      Length
	// LineSpacing 行距倍数，如 1.5
	LineSpacing float64
}

// Run 文本片段
type Run struct {
	Text      string
	Bold      bool
	Italic    bool
	Code      bool
	Size      Length
	Font      string
	PageBreak bool
	Field     *FieldCode
	picture   *etree.Element
}

// Paragraph 待写入的段落，Style 为样式名称
type Paragraph struct {
	Style  string
	Format Format
	Runs   []Run
}

// Text 段落纯文本
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// NewParagraph 单个文本片段的段落
func NewParagraph(style, text string) *Paragraph {
	p := &Paragraph{Style: style}
	if text != "" {
		p.Runs = []Run{{Text: text}}
	}
	return p
}

// 生成 w:p 元素，styleID 已经过样式表解析
func buildParagraph(p *Paragraph, styleID string) *etree.Element {
	el := etree.NewElement("w:p")
	if ppr := buildParagraphProps(p.Format, styleID); ppr != nil {
		el.AddChild(ppr)
	}
	for i := range p.Runs {
		el.AddChild(buildRun(&p.Runs[i]))
	}
	return el
}

func buildParagraphProps(f Format, styleID string) *etree.Element {
	ppr := etree.NewElement("w:pPr")
	if styleID != "" {
		ppr.CreateElement("w:pStyle").CreateAttr("w:val", styleID)
	}
	if f.SpaceBefore != 0 || f.SpaceAfter != 0 || f.LineSpacing != 0 {
		sp := ppr.CreateElement("w:spacing")
		if f.SpaceBefore != 0 {
			sp.CreateAttr("w:before", f.SpaceBefore.twipsAttr())
		}
		if f.SpaceAfter != 0 {
			sp.CreateAttr("w:after", f.SpaceAfter.twipsAttr())
		}
		if f.LineSpacing != 0 {
			sp.CreateAttr("w:line", strconv.Itoa(int(f.LineSpacing*240)))
			sp.CreateAttr("w:lineRule", "auto")
		}
	}
	if f.LeftIndent != 0 || f.FirstLineIndent != 0 {
		ind := ppr.CreateElement("w:ind")
		if f.LeftIndent != 0 {
			ind.CreateAttr("w:left", f.LeftIndent.twipsAttr())
		}
		switch {
		case f.FirstLineIndent < 0:
			ind.CreateAttr("w:hanging", (-f.FirstLineIndent).twipsAttr())
		case f.FirstLineIndent > 0:
			ind.CreateAttr("w:firstLine", f.FirstLineIndent.twipsAttr())
		}
	}
	if f.Alignment != AlignDefault {
		ppr.CreateElement("w:jc").CreateAttr("w:val", string(f.Alignment))
	}
	if len(ppr.Child) == 0 {
		return nil
	}
	return ppr
}

func buildRun(r *Run) *etree.Element {
	el := etree.NewElement("w:r")
	font := r.Font
	if r.Code && font == "" {
		font = "Consolas"
	}
	if r.Bold || r.Italic || r.Size != 0 || font != "" {
		rpr := el.CreateElement("w:rPr")
		if font != "" {
			f := rpr.CreateElement("w:rFonts")
			f.CreateAttr("w:ascii", font)
			f.CreateAttr("w:hAnsi", font)
			f.CreateAttr("w:cs", font)
		}
		if r.Bold {
			rpr.CreateElement("w:b")
		}
		if r.Italic {
			rpr.CreateElement("w:i")
		}
		if r.Size != 0 {
			rpr.CreateElement("w:sz").CreateAttr("w:val", r.Size.halfPoints())
			rpr.CreateElement("w:szCs").CreateAttr("w:val", r.Size.halfPoints())
		}
	}
	if r.Field != nil {
		for _, e := range r.Field.Elements() {
			el.AddChild(e)
		}
	}
	if r.Text != "" {
		t := el.CreateElement("w:t")
		if strings.TrimSpace(r.Text) != r.Text {
			t.CreateAttr("xml:space", "preserve")
		}
		t.SetText(r.Text)
	}
	if r.picture != nil {
		el.AddChild(r.picture)
	}
	if r.PageBreak {
		el.CreateElement("w:br").CreateAttr("w:type", "page")
	}
	return el
}

// 段落中全部 w:t 的文本
func paragraphText(p *etree.Element) string {
	var sb strings.Builder
	for _, t := range p.FindElements(".//w:t") {
		sb.WriteString(t.Text())
	}
	return sb.String()
}
