package docgen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// StyleDef 全局样式定义，零值字段不修改
type StyleDef struct {
	Font        string
	Size        Length
	Bold        bool
	Italic      bool
	Alignment   Alignment
	SpaceBefore Length
	SpaceAfter  Length
	LineSpacing float64
}

// 子元素的规范顺序，插入新元素时保持 schema 顺序
var (
	stylePropOrder = []string{"name", "aliases", "basedOn", "next", "link", "autoRedefine", "hidden",
		"uiPriority", "semiHidden", "unhideWhenUsed", "qFormat", "locked", "personal", "rsid", "pPr", "rPr", "tblPr"}
	pPrOrder = []string{"pStyle", "keepNext", "keepLines", "pageBreakBefore", "framePr", "widowControl",
		"numPr", "suppressLineNumbers", "pBdr", "shd", "tabs", "suppressAutoHyphens", "kinsoku", "wordWrap",
		"overflowPunct", "topLinePunct", "autoSpaceDE", "autoSpaceDN", "bidi", "adjustRightInd", "snapToGrid",
		"spacing", "ind", "contextualSpacing", "mirrorIndents", "suppressOverlap", "jc", "textDirection",
		"textAlignment", "textboxTightWrap", "outlineLvl", "divId", "cnfStyle", "rPr", "sectPr", "pPrChange"}
	rPrOrder = []string{"rStyle", "rFonts", "b", "bCs", "i", "iCs", "caps", "smallCaps", "strike", "dstrike",
		"outline", "shadow", "emboss", "imprint", "noProof", "snapToGrid", "vanish", "webHidden", "color",
		"spacing", "w", "kern", "position", "sz", "szCs", "highlight", "u", "effect", "bdr", "shd", "fitText",
		"vertAlign", "rtl", "cs", "em", "lang", "eastAsianLayout", "specVanish", "oMath"}
)

// HasStyle 样式是否存在，名称或ID均可，不区分大小写
func (d *Document) HasStyle(name string) bool {
	return d.styleElement(name) != nil
}

// StyleNames 全部样式名称
func (d *Document) StyleNames() []string {
	var out []string
	for _, s := range d.styleList() {
		if n := s.FindElement("w:name"); n != nil {
			out = append(out, n.SelectAttrValue("w:val", ""))
		}
	}
	return out
}

func (d *Document) styleList() []*etree.Element {
	if d.styles == nil || d.styles.Root() == nil {
		return nil
	}
	return d.styles.Root().SelectElements("w:style")
}

func (d *Document) styleElement(name string) *etree.Element {
	var byID *etree.Element
	for _, s := range d.styleList() {
		if n := s.SelectElement("w:name"); n != nil && strings.EqualFold(n.SelectAttrValue("w:val", ""), name) {
			return s
		}
		if byID == nil && strings.EqualFold(s.SelectAttrValue("w:styleId", ""), name) {
			byID = s
		}
	}
	return byID
}

// styleName 由样式ID得到显示名称
func (d *Document) styleName(id string) string {
	for _, s := range d.styleList() {
		if s.SelectAttrValue("w:styleId", "") == id {
			if n := s.SelectElement("w:name"); n != nil {
				return n.SelectAttrValue("w:val", id)
			}
			return id
		}
	}
	return id
}

// UpdateStyle 修改已有样式的字体、字号和段落格式
func (d *Document) UpdateStyle(name string, def StyleDef) error {
	s := d.styleElement(name)
	if s == nil {
		return fmt.Errorf("%w: %s", ErrStyleNotFound, name)
	}

	if def.Alignment != AlignDefault || def.SpaceBefore != 0 || def.SpaceAfter != 0 || def.LineSpacing != 0 {
		ppr := ensureChild(s, "pPr", stylePropOrder)
		if def.SpaceBefore != 0 || def.SpaceAfter != 0 || def.LineSpacing != 0 {
			sp := ensureChild(ppr, "spacing", pPrOrder)
			if def.SpaceBefore != 0 {
				sp.CreateAttr("w:before", def.SpaceBefore.twipsAttr())
			}
			if def.SpaceAfter != 0 {
				sp.CreateAttr("w:after", def.SpaceAfter.twipsAttr())
			}
			if def.LineSpacing != 0 {
				sp.CreateAttr("w:line", strconv.Itoa(int(def.LineSpacing*240)))
				sp.CreateAttr("w:lineRule", "auto")
			}
		}
		if def.Alignment != AlignDefault {
			ensureChild(ppr, "jc", pPrOrder).CreateAttr("w:val", string(def.Alignment))
		}
	}

	if def.Font != "" || def.Size != 0 || def.Bold || def.Italic {
		rpr := ensureChild(s, "rPr", stylePropOrder)
		if def.Font != "" {
			f := ensureChild(rpr, "rFonts", rPrOrder)
			f.RemoveAttr("w:asciiTheme")
			f.RemoveAttr("w:hAnsiTheme")
			f.CreateAttr("w:ascii", def.Font)
			f.CreateAttr("w:hAnsi", def.Font)
			f.CreateAttr("w:cs", def.Font)
		}
		if def.Bold {
			ensureChild(rpr, "b", rPrOrder).RemoveAttr("w:val")
		}
		if def.Italic {
			ensureChild(rpr, "i", rPrOrder).RemoveAttr("w:val")
		}
		if def.Size != 0 {
			ensureChild(rpr, "sz", rPrOrder).CreateAttr("w:val", def.Size.halfPoints())
			ensureChild(rpr, "szCs", rPrOrder).CreateAttr("w:val", def.Size.halfPoints())
		}
	}
	return nil
}

// ensureChild 返回 w:tag 子元素，不存在时按 order 顺序插入
func ensureChild(parent *etree.Element, tag string, order []string) *etree.Element {
	if c := parent.SelectElement("w:" + tag); c != nil {
		return c
	}
	rank := indexOf(order, tag)
	el := etree.NewElement("w:" + tag)
	for _, c := range parent.ChildElements() {
		if r := indexOf(order, c.Tag); r > rank {
			parent.InsertChildAt(c.Index(), el)
			return el
		}
	}
	parent.AddChild(el)
	return el
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return len(list)
}
