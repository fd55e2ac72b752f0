package docgen

import (
	"github.com/beevik/etree"
	"github.com/openlabollioules/tools/pkg/ooxml"
)

// sections 正文中全部节属性，包括段落内的分节和末尾的节
func (d *Document) sections() []*etree.Element {
	return d.body.FindElements(".//w:sectPr")
}

// SectionCount 文档的节数
func (d *Document) SectionCount() int {
	if n := len(d.sections()); n > 0 {
		return n
	}
	return 1
}

// SetFooter 为每个节设置同一个默认页脚
func (d *Document) SetFooter(p *Paragraph) error {
	styleID := ""
	if p.Style != "" {
		if s := d.styleElement(p.Style); s != nil {
			styleID = s.SelectAttrValue("w:styleId", "")
		}
	}
	root := etree.NewElement("w:ftr")
	root.CreateAttr("xmlns:w", NsW)
	root.CreateAttr("xmlns:r", NsR)
	root.AddChild(buildParagraph(p, styleID))

	part := d.pkg.NextPartName("word/footer%d.xml")
	if err := d.pkg.SetXML(part, ooxml.NewXMLDocument(root)); err != nil {
		return err
	}
	ct, err := d.pkg.ContentTypes()
	if err != nil {
		return err
	}
	ct.AddOverride(part, ctFooter)
	if err := d.pkg.SaveContentTypes(ct); err != nil {
		return err
	}
	rels, err := d.pkg.Rels(d.part)
	if err != nil {
		return err
	}
	rID := rels.Add(ooxml.RelFooter, ooxml.RelativeTarget(d.part, part))
	if err := d.pkg.SaveRels(rels); err != nil {
		return err
	}

	d.ensureNamespace("r", NsR)
	sects := d.sections()
	if len(sects) == 0 {
		sects = []*etree.Element{d.body.CreateElement("w:sectPr")}
	}
	for _, s := range sects {
		for _, ref := range s.SelectElements("w:footerReference") {
			if ref.SelectAttrValue("w:type", "default") == "default" {
				s.RemoveChild(ref)
			}
		}
		ref := etree.NewElement("w:footerReference")
		ref.CreateAttr("w:type", "default")
		ref.CreateAttr("r:id", rID)
		s.InsertChildAt(0, ref)
	}
	return nil
}

// FooterText 第一个节默认页脚中的域指令和文本，供检查使用
func (d *Document) FooterText() (instructions []string, text string) {
	sects := d.sections()
	if len(sects) == 0 {
		return nil, ""
	}
	var rID string
	for _, ref := range sects[0].SelectElements("w:footerReference") {
		if ref.SelectAttrValue("w:type", "default") == "default" {
			rID = ref.SelectAttrValue("r:id", "")
		}
	}
	rels, err := d.pkg.Rels(d.part)
	if err != nil {
		return nil, ""
	}
	part, ok := rels.PartFor(rID)
	if !ok {
		return nil, ""
	}
	ftr, err := d.pkg.XML(part)
	if err != nil {
		return nil, ""
	}
	for _, in := range ftr.FindElements("//w:instrText") {
		instructions = append(instructions, in.Text())
	}
	for _, p := range ftr.Root().SelectElements("w:p") {
		text += paragraphText(p)
	}
	return instructions, text
}
