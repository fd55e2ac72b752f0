package docgen

import (
	"sort"
	"strconv"

	"github.com/beevik/etree"
)

// ParagraphInfo 正文段落的概要
type ParagraphInfo struct {
	Text  string
	Style string
	// OutlineLevel 大纲级别，0 起；-1 表示正文
	OutlineLevel int
	// PageBreak 段落含分页符
	PageBreak bool
	// Fields 段落中的域指令
	Fields []string
	// Indent 左缩进和首行缩进（悬挂为负）
	LeftIndent      Length
	FirstLineIndent Length
	Alignment       Alignment
	Pictures        int
	Runs            []RunInfo
}

// RunInfo 文本片段的格式
type RunInfo struct {
	Text   string
	Bold   bool
	Italic bool
}

// DrawingInfo 图形的几何和颜色
type DrawingInfo struct {
	Name     string
	Geometry string
	Fill     string
	Line     string
}

// Paragraphs 正文段落（不含表格内段落）
func (d *Document) Paragraphs() []ParagraphInfo {
	var out []ParagraphInfo
	for _, p := range d.body.SelectElements("w:p") {
		out = append(out, d.describe(p))
	}
	return out
}

func (d *Document) describe(p *etree.Element) ParagraphInfo {
	info := ParagraphInfo{Text: paragraphText(p), Style: "Normal", OutlineLevel: -1}
	styleID := ""
	if ppr := p.SelectElement("w:pPr"); ppr != nil {
		if ps := ppr.SelectElement("w:pStyle"); ps != nil {
			styleID = ps.SelectAttrValue("w:val", "")
			info.Style = d.styleName(styleID)
		}
		if lvl := ppr.SelectElement("w:outlineLvl"); lvl != nil {
			info.OutlineLevel = atoi(lvl.SelectAttrValue("w:val", ""), -1)
		}
		if ind := ppr.SelectElement("w:ind"); ind != nil {
			info.LeftIndent = twips(ind.SelectAttrValue("w:left", ind.SelectAttrValue("w:start", "0")))
			if h := ind.SelectAttrValue("w:hanging", ""); h != "" {
				info.FirstLineIndent = -twips(h)
			} else {
				info.FirstLineIndent = twips(ind.SelectAttrValue("w:firstLine", "0"))
			}
		}
		if jc := ppr.SelectElement("w:jc"); jc != nil {
			info.Alignment = Alignment(jc.SelectAttrValue("w:val", ""))
		}
	}
	if info.OutlineLevel < 0 && styleID != "" {
		info.OutlineLevel = d.styleOutlineLevel(styleID)
	}
	for _, br := range p.FindElements(".//w:br") {
		if br.SelectAttrValue("w:type", "") == "page" {
			info.PageBreak = true
		}
	}
	for _, in := range p.FindElements(".//w:instrText") {
		info.Fields = append(info.Fields, in.Text())
	}
	info.Pictures = len(p.FindElements(".//w:drawing"))
	for _, r := range p.SelectElements("w:r") {
		ri := RunInfo{}
		for _, t := range r.SelectElements("w:t") {
			ri.Text += t.Text()
		}
		if rpr := r.SelectElement("w:rPr"); rpr != nil {
			ri.Bold = onOff(rpr.SelectElement("w:b"))
			ri.Italic = onOff(rpr.SelectElement("w:i"))
		}
		if ri.Text != "" {
			info.Runs = append(info.Runs, ri)
		}
	}
	return info
}

func (d *Document) styleOutlineLevel(id string) int {
	for _, s := range d.styleList() {
		if s.SelectAttrValue("w:styleId", "") != id {
			continue
		}
		if lvl := s.FindElement("w:pPr/w:outlineLvl"); lvl != nil {
			return atoi(lvl.SelectAttrValue("w:val", ""), -1)
		}
		if based := s.SelectElement("w:basedOn"); based != nil && based.SelectAttrValue("w:val", "") != id {
			return d.styleOutlineLevel(based.SelectAttrValue("w:val", ""))
		}
	}
	return -1
}

// CharacterStyles 正文中用到的字符样式名称
func (d *Document) CharacterStyles() []string {
	seen := map[string]bool{}
	for _, rs := range d.body.FindElements(".//w:rStyle") {
		seen[d.styleName(rs.SelectAttrValue("w:val", ""))] = true
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// InlinePictures 内嵌图片数量
func (d *Document) InlinePictures() int {
	return len(d.body.FindElements(".//wp:inline"))
}

// Drawings 正文中带形状属性的图形
func (d *Document) Drawings() []DrawingInfo {
	var out []DrawingInfo
	for _, sp := range d.body.FindElements(".//pic:spPr") {
		info := DrawingInfo{}
		if pic := sp.Parent(); pic != nil {
			if nv := pic.FindElement("pic:nvPicPr/pic:cNvPr"); nv != nil {
				info.Name = nv.SelectAttrValue("name", "")
			}
		}
		if g := sp.SelectElement("a:prstGeom"); g != nil {
			info.Geometry = g.SelectAttrValue("prst", "")
		}
		if c := sp.FindElement("a:solidFill/a:srgbClr"); c != nil {
			info.Fill = c.SelectAttrValue("val", "")
		}
		if c := sp.FindElement("a:ln/a:solidFill/a:srgbClr"); c != nil {
			info.Line = c.SelectAttrValue("val", "")
		}
		out = append(out, info)
	}
	return out
}

func onOff(e *etree.Element) bool {
	if e == nil {
		return false
	}
	switch e.SelectAttrValue("w:val", "true") {
	case "0", "false", "off":
		return false
	}
	return true
}

func atoi(s string, dflt int) int {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return dflt
}

func twips(s string) Length {
	return Length(atoi(s, 0) * emuPerTwip)
}
