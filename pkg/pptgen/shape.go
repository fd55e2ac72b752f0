package pptgen

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Shape 幻灯片或版式中的形状
type Shape struct {
	el *etree.Element
}

// Kind 形状元素类型：sp、pic、graphicFrame、grpSp、cxnSp
func (s *Shape) Kind() string {
	return s.el.Tag
}

func (s *Shape) cNvPr() *etree.Element {
	for _, nv := range s.el.ChildElements() {
		if strings.HasPrefix(nv.Tag, "nv") {
			return nv.SelectElement("p:cNvPr")
		}
	}
	return nil
}

func (s *Shape) ph() *etree.Element {
	for _, nv := range s.el.ChildElements() {
		if strings.HasPrefix(nv.Tag, "nv") {
			return nv.FindElement("p:nvPr/p:ph")
		}
	}
	return nil
}

// Name 形状名称
func (s *Shape) Name() string {
	if c := s.cNvPr(); c != nil {
		return c.SelectAttrValue("name", "")
	}
	return ""
}

// ID 形状ID
func (s *Shape) ID() int {
	if c := s.cNvPr(); c != nil {
		n, _ := strconv.Atoi(c.SelectAttrValue("id", "0"))
		return n
	}
	return 0
}

// IsPlaceholder 是否占位符
func (s *Shape) IsPlaceholder() bool {
	return s.ph() != nil
}

// PlaceholderType 占位符类型，未声明时为 obj；非占位符返回空串
func (s *Shape) PlaceholderType() string {
	ph := s.ph()
	if ph == nil {
		return ""
	}
	return ph.SelectAttrValue("type", "obj")
}

// PlaceholderIdx 占位符 idx，未声明时为 0
func (s *Shape) PlaceholderIdx() (int, bool) {
	ph := s.ph()
	if ph == nil {
		return 0, false
	}
	n, err := strconv.Atoi(ph.SelectAttrValue("idx", "0"))
	if err != nil {
		return 0, false
	}
	return n, true
}

// Geometry 位置和大小（EMU），形状未声明 xfrm 时 ok 为 false
func (s *Shape) Geometry() (x, y, cx, cy int64, ok bool) {
	xfrm := s.el.FindElement("p:spPr/a:xfrm")
	if xfrm == nil {
		xfrm = s.el.FindElement("p:xfrm")
	}
	if xfrm == nil {
		xfrm = s.el.FindElement("p:grpSpPr/a:xfrm")
	}
	if xfrm == nil {
		return 0, 0, 0, 0, false
	}
	if off := xfrm.SelectElement("a:off"); off != nil {
		x = attrInt(off, "x")
		y = attrInt(off, "y")
	}
	if ext := xfrm.SelectElement("a:ext"); ext != nil {
		cx = attrInt(ext, "cx")
		cy = attrInt(ext, "cy")
	}
	return x, y, cx, cy, true
}

func attrInt(e *etree.Element, key string) int64 {
	n, _ := strconv.ParseInt(e.SelectAttrValue(key, "0"), 10, 64)
	return n
}

// HasTextFrame 是否有文本框
func (s *Shape) HasTextFrame() bool {
	return s.el.SelectElement("p:txBody") != nil
}

// TextFrame 文本框
func (s *Shape) TextFrame() (*TextFrame, error) {
	body := s.el.SelectElement("p:txBody")
	if body == nil {
		return nil, ErrNoTextFrame
	}
	return &TextFrame{body: body}, nil
}

// Text 形状全部文本，段落之间以换行分隔
func (s *Shape) Text() string {
	tf, err := s.TextFrame()
	if err != nil {
		return ""
	}
	return tf.Text()
}

// SetText 替换全部文本，每个换行开始一个新段落
func (s *Shape) SetText(text string) error {
	tf, err := s.TextFrame()
	if err != nil {
		return err
	}
	tf.SetText(text)
	return nil
}

// TextFrame 形状的文本框
type TextFrame struct {
	body *etree.Element
}

// Paragraphs 全部段落
func (tf *TextFrame) Paragraphs() []*TextParagraph {
	var out []*TextParagraph
	for _, p := range tf.body.SelectElements("a:p") {
		out = append(out, &TextParagraph{el: p})
	}
	return out
}

// AddParagraph 追加空段落
func (tf *TextFrame) AddParagraph() *TextParagraph {
	return &TextParagraph{el: tf.body.CreateElement("a:p")}
}

// Text 段落文本以换行连接
func (tf *TextFrame) Text() string {
	var lines []string
	for _, p := range tf.Paragraphs() {
		lines = append(lines, p.Text())
	}
	return strings.Join(lines, "\n")
}

// SetText 清空后按行写入段落，保留第一个段落的属性
func (tf *TextFrame) SetText(text string) {
	paras := tf.Paragraphs()
	if len(paras) == 0 {
		paras = append(paras, tf.AddParagraph())
	}
	for _, p := range paras[1:] {
		tf.body.RemoveChild(p.el)
	}
	lines := strings.Split(text, "\n")
	paras[0].SetText(lines[0])
	for _, l := range lines[1:] {
		tf.AddParagraph().SetText(l)
	}
}

// TextParagraph 文本框中的段落
type TextParagraph struct {
	el *etree.Element
}

// Text 段落文本
func (p *TextParagraph) Text() string {
	var sb strings.Builder
	for _, c := range p.el.ChildElements() {
		switch c.Tag {
		case "r", "fld":
			if t := c.SelectElement("a:t"); t != nil {
				sb.WriteString(t.Text())
			}
		case "br":
			sb.WriteString("\v")
		}
	}
	return sb.String()
}

// SetText 替换段落中的文本片段
func (p *TextParagraph) SetText(text string) {
	for _, c := range p.el.ChildElements() {
		switch c.Tag {
		case "r", "br", "fld":
			p.el.RemoveChild(c)
		}
	}
	if text == "" {
		return
	}
	r := etree.NewElement("a:r")
	r.CreateElement("a:rPr").CreateAttr("lang", "fr-FR")
	r.CreateElement("a:t").SetText(text)
	if end := p.el.SelectElement("a:endParaRPr"); end != nil {
		p.el.InsertChildAt(end.Index(), r)
		return
	}
	p.el.AddChild(r)
}

func (p *TextParagraph) pPr() *etree.Element {
	if ppr := p.el.SelectElement("a:pPr"); ppr != nil {
		return ppr
	}
	ppr := etree.NewElement("a:pPr")
	p.el.InsertChildAt(0, ppr)
	return ppr
}

// Level 大纲级别 0-8
func (p *TextParagraph) Level() int {
	if ppr := p.el.SelectElement("a:pPr"); ppr != nil {
		n, _ := strconv.Atoi(ppr.SelectAttrValue("lvl", "0"))
		return n
	}
	return 0
}

// SetLevel 设置大纲级别，超出 0-8 时截断
func (p *TextParagraph) SetLevel(level int) {
	if level < 0 {
		level = 0
	}
	if level > 8 {
		level = 8
	}
	ppr := p.pPr()
	if level == 0 {
		ppr.RemoveAttr("lvl")
		return
	}
	ppr.CreateAttr("lvl", strconv.Itoa(level))
}

// MarginLeft 左边距（EMU），未设置时为 0
func (p *TextParagraph) MarginLeft() int64 {
	if ppr := p.el.SelectElement("a:pPr"); ppr != nil {
		return attrInt(ppr, "marL")
	}
	return 0
}

// SetMarginLeft 设置左边距并取消项目符号
func (p *TextParagraph) SetMarginLeft(emu int64) {
	ppr := p.pPr()
	ppr.CreateAttr("marL", strconv.FormatInt(emu, 10))
	ppr.CreateAttr("indent", "0")
	if ppr.SelectElement("a:buNone") == nil {
		ppr.CreateElement("a:buNone")
	}
}

// BulletSuppressed 是否显式取消了项目符号
func (p *TextParagraph) BulletSuppressed() bool {
	ppr := p.el.SelectElement("a:pPr")
	return ppr != nil && ppr.SelectElement("a:buNone") != nil
}
