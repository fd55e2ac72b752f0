// Package docgen 基于 OOXML 部件直接编辑 Word 文档：样式、段落、分页、图片、页脚和域代码。
package docgen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/openlabollioules/tools/pkg/ooxml"
)

var (
	ErrStyleNotFound = errors.New("style not found")
	ErrNotDocument   = errors.New("not a word document")
)

// Document 一个打开的 Word 文档
type Document struct {
	pkg        *ooxml.Package
	part       string
	doc        *etree.Document
	body       *etree.Element
	stylesPart string
	styles     *etree.Document
}

// New 创建空白文档
func New() *Document {
	d, err := load(blankPackage())
	if err != nil {
		panic("docgen: blank package: " + err.Error())
	}
	return d
}

// Open 打开模板或已有文档
func Open(name string) (*Document, error) {
	p, err := ooxml.Open(name)
	if err != nil {
		return nil, err
	}
	return load(p)
}

// FromBytes 从字节打开
func FromBytes(data []byte) (*Document, error) {
	p, err := ooxml.FromBytes(data)
	if err != nil {
		return nil, err
	}
	return load(p)
}

func load(p *ooxml.Package) (*Document, error) {
	rootRels, err := p.Rels("")
	if err != nil {
		return nil, err
	}
	main := rootRels.ByType(ooxml.RelOfficeDocument)
	if len(main) == 0 {
		return nil, ErrNotDocument
	}
	part := ooxml.ResolveTarget("", main[0].Target)
	doc, err := p.XML(part)
	if err != nil {
		return nil, err
	}
	root := doc.Root()
	if root == nil || root.Tag != "document" {
		return nil, fmt.Errorf("%w: %s", ErrNotDocument, part)
	}
	body := root.SelectElement("w:body")
	if body == nil {
		body = root.CreateElement("w:body")
	}

	d := &Document{pkg: p, part: part, doc: doc, body: body}
	if err := d.loadStyles(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Document) loadStyles() error {
	rels, err := d.pkg.Rels(d.part)
	if err != nil {
		return err
	}
	if found := rels.ByType(ooxml.RelStyles); len(found) > 0 {
		d.stylesPart = ooxml.ResolveTarget(d.part, found[0].Target)
		d.styles, err = d.pkg.XML(d.stylesPart)
		return err
	}
	// 没有样式表的文档补一个空样式表
	d.stylesPart = ooxml.ResolveTarget(d.part, "styles.xml")
	root := etree.NewElement("w:styles")
	root.CreateAttr("xmlns:w", NsW)
	d.styles = ooxml.NewXMLDocument(root)
	rels.Add(ooxml.RelStyles, ooxml.RelativeTarget(d.part, d.stylesPart))
	if err := d.pkg.SaveRels(rels); err != nil {
		return err
	}
	ct, err := d.pkg.ContentTypes()
	if err != nil {
		return err
	}
	ct.AddOverride(d.stylesPart, ctStyles)
	return d.pkg.SaveContentTypes(ct)
}

// Package 底层包，供分析工具读取
func (d *Document) Package() *ooxml.Package {
	return d.pkg
}

// AddParagraph 在正文末尾（最后的节属性之前）追加段落
func (d *Document) AddParagraph(p *Paragraph) error {
	styleID := ""
	if p.Style != "" {
		s := d.styleElement(p.Style)
		if s == nil {
			return fmt.Errorf("%w: %s", ErrStyleNotFound, p.Style)
		}
		styleID = s.SelectAttrValue("w:styleId", "")
	}
	d.appendBody(buildParagraph(p, styleID))
	return nil
}

// AddPageBreak 追加只含分页符的段落
func (d *Document) AddPageBreak() {
	d.appendBody(buildParagraph(&Paragraph{Runs: []Run{{PageBreak: true}}}, ""))
}

func (d *Document) appendBody(el *etree.Element) {
	if last := d.finalSectPr(); last != nil {
		d.body.InsertChildAt(last.Index(), el)
		return
	}
	d.body.AddChild(el)
}

func (d *Document) finalSectPr() *etree.Element {
	children := d.body.ChildElements()
	if n := len(children); n > 0 && children[n-1].Space == "w" && children[n-1].Tag == "sectPr" {
		return children[n-1]
	}
	return nil
}

// HasContent 第一个段落是否已有非空文本
func (d *Document) HasContent() bool {
	first := d.body.SelectElement("w:p")
	return first != nil && strings.TrimSpace(paragraphText(first)) != ""
}

// Save 保存到文件
func (d *Document) Save(name string) error {
	if err := d.flush(); err != nil {
		return err
	}
	return d.pkg.Save(name)
}

// Bytes 序列化为 docx 字节
func (d *Document) Bytes() ([]byte, error) {
	if err := d.flush(); err != nil {
		return nil, err
	}
	return d.pkg.Bytes()
}

func (d *Document) flush() error {
	if err := d.pkg.SetXML(d.part, d.doc); err != nil {
		return err
	}
	return d.pkg.SetXML(d.stylesPart, d.styles)
}
