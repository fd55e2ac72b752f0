// Package pptgen 基于 OOXML 部件编辑 PowerPoint 演示文稿：按版式追加幻灯片并填充占位符。
package pptgen

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/openlabollioules/tools/pkg/ooxml"
)

var (
	ErrNotPresentation = errors.New("not a presentation")
	ErrLayoutIndex     = errors.New("layout index out of range")
	ErrShapeIndex      = errors.New("shape index out of range")
	ErrNoPlaceholder   = errors.New("placeholder not found")
	ErrNoTextFrame     = errors.New("shape has no text frame")
)

// Presentation 一个打开的演示文稿
type Presentation struct {
	pkg     *ooxml.Package
	part    string
	doc     *etree.Document
	layouts []*Layout
	slides  []*Slide
}

// Layout 母版中的一个版式
type Layout struct {
	Index int
	Name  string
	Part  string
	doc   *etree.Document
}

// Slide 一张幻灯片
type Slide struct {
	Part string
	doc  *etree.Document
}

// Blank 内置空白演示文稿，一个母版五个版式
func Blank() *Presentation {
	p, err := load(blankPackage())
	if err != nil {
		panic("pptgen: blank package: " + err.Error())
	}
	return p
}

// Open 打开模板
func Open(name string) (*Presentation, error) {
	pkg, err := ooxml.Open(name)
	if err != nil {
		return nil, err
	}
	return load(pkg)
}

// FromBytes 从字节打开
func FromBytes(data []byte) (*Presentation, error) {
	pkg, err := ooxml.FromBytes(data)
	if err != nil {
		return nil, err
	}
	return load(pkg)
}

func load(pkg *ooxml.Package) (*Presentation, error) {
	rootRels, err := pkg.Rels("")
	if err != nil {
		return nil, err
	}
	main := rootRels.ByType(ooxml.RelOfficeDocument)
	if len(main) == 0 {
		return nil, ErrNotPresentation
	}
	part := ooxml.ResolveTarget("", main[0].Target)
	doc, err := pkg.XML(part)
	if err != nil {
		return nil, err
	}
	if doc.Root() == nil || doc.Root().Tag != "presentation" {
		return nil, fmt.Errorf("%w: %s", ErrNotPresentation, part)
	}
	p := &Presentation{pkg: pkg, part: part, doc: doc}
	if err := p.loadLayouts(); err != nil {
		return nil, err
	}
	if err := p.loadSlides(); err != nil {
		return nil, err
	}
	return p, nil
}

// 版式按第一个母版的 sldLayoutIdLst 顺序编号
func (p *Presentation) loadLayouts() error {
	rels, err := p.pkg.Rels(p.part)
	if err != nil {
		return err
	}
	masterRef := p.doc.Root().FindElement("p:sldMasterIdLst/p:sldMasterId")
	if masterRef == nil {
		return fmt.Errorf("%w: no slide master", ErrNotPresentation)
	}
	masterPart, ok := rels.PartFor(masterRef.SelectAttrValue("r:id", ""))
	if !ok {
		return fmt.Errorf("%w: dangling slide master", ErrNotPresentation)
	}
	master, err := p.pkg.XML(masterPart)
	if err != nil {
		return err
	}
	masterRels, err := p.pkg.Rels(masterPart)
	if err != nil {
		return err
	}
	for _, ref := range master.Root().FindElements("p:sldLayoutIdLst/p:sldLayoutId") {
		lp, ok := masterRels.PartFor(ref.SelectAttrValue("r:id", ""))
		if !ok {
			continue
		}
		ld, err := p.pkg.XML(lp)
		if err != nil {
			return err
		}
		name := ""
		if cSld := ld.Root().SelectElement("p:cSld"); cSld != nil {
			name = cSld.SelectAttrValue("name", "")
		}
		p.layouts = append(p.layouts, &Layout{Index: len(p.layouts), Name: name, Part: lp, doc: ld})
	}
	return nil
}

func (p *Presentation) loadSlides() error {
	rels, err := p.pkg.Rels(p.part)
	if err != nil {
		return err
	}
	for _, ref := range p.doc.Root().FindElements("p:sldIdLst/p:sldId") {
		sp, ok := rels.PartFor(ref.SelectAttrValue("r:id", ""))
		if !ok {
			continue
		}
		sd, err := p.pkg.XML(sp)
		if err != nil {
			return err
		}
		p.slides = append(p.slides, &Slide{Part: sp, doc: sd})
	}
	return nil
}

// Layouts 第一个母版的全部版式
func (p *Presentation) Layouts() []*Layout {
	return p.layouts
}

// Slides 按放映顺序的幻灯片
func (p *Presentation) Slides() []*Slide {
	return p.slides
}

// Package 底层包
func (p *Presentation) Package() *ooxml.Package {
	return p.pkg
}

// AddSlide 按版式追加幻灯片，复制版式中除日期、页脚、页码外的占位符
func (p *Presentation) AddSlide(layoutIdx int) (*Slide, error) {
	if layoutIdx < 0 || layoutIdx >= len(p.layouts) {
		return nil, fmt.Errorf("%w: %d of %d", ErrLayoutIndex, layoutIdx, len(p.layouts))
	}
	layout := p.layouts[layoutIdx]

	part := p.pkg.NextPartName("ppt/slides/slide%d.xml")
	doc := newSlideXML(layout)
	if err := p.pkg.SetXML(part, doc); err != nil {
		return nil, err
	}

	slideRels, err := p.pkg.Rels(part)
	if err != nil {
		return nil, err
	}
	slideRels.Add(ooxml.RelSlideLayout, ooxml.RelativeTarget(part, layout.Part))
	if err := p.pkg.SaveRels(slideRels); err != nil {
		return nil, err
	}

	ct, err := p.pkg.ContentTypes()
	if err != nil {
		return nil, err
	}
	ct.AddOverride(part, ctSlide)
	if err := p.pkg.SaveContentTypes(ct); err != nil {
		return nil, err
	}

	presRels, err := p.pkg.Rels(p.part)
	if err != nil {
		return nil, err
	}
	rID := presRels.Add(ooxml.RelSlide, ooxml.RelativeTarget(p.part, part))
	if err := p.pkg.SaveRels(presRels); err != nil {
		return nil, err
	}

	lst := p.slideIDList()
	id := 256
	for _, e := range lst.SelectElements("p:sldId") {
		if n, err := strconv.Atoi(e.SelectAttrValue("id", "")); err == nil && n >= id {
			id = n + 1
		}
	}
	ref := lst.CreateElement("p:sldId")
	ref.CreateAttr("id", strconv.Itoa(id))
	ref.CreateAttr("r:id", rID)

	s := &Slide{Part: part, doc: doc}
	p.slides = append(p.slides, s)
	return s, nil
}

// sldIdLst 必须紧跟在各母版列表之后
func (p *Presentation) slideIDList() *etree.Element {
	root := p.doc.Root()
	if lst := root.SelectElement("p:sldIdLst"); lst != nil {
		return lst
	}
	lst := etree.NewElement("p:sldIdLst")
	pos := 0
	for _, c := range root.ChildElements() {
		switch c.Tag {
		case "sldMasterIdLst", "notesMasterIdLst", "handoutMasterIdLst":
			pos = c.Index() + 1
		}
	}
	root.InsertChildAt(pos, lst)
	return lst
}

func newSlideXML(layout *Layout) *etree.Document {
	root := etree.NewElement("p:sld")
	root.CreateAttr("xmlns:a", NsA)
	root.CreateAttr("xmlns:r", NsR)
	root.CreateAttr("xmlns:p", NsP)
	tree := root.CreateElement("p:cSld").CreateElement("p:spTree")

	nvGrp := tree.CreateElement("p:nvGrpSpPr")
	c := nvGrp.CreateElement("p:cNvPr")
	c.CreateAttr("id", "1")
	c.CreateAttr("name", "")
	nvGrp.CreateElement("p:cNvGrpSpPr")
	nvGrp.CreateElement("p:nvPr")
	tree.CreateElement("p:grpSpPr")

	id := 2
	for _, sh := range layout.Shapes() {
		ph := sh.ph()
		if ph == nil || !cloneable(sh.PlaceholderType()) {
			continue
		}
		tree.AddChild(newPlaceholderSp(id, sh.Name(), ph))
		id++
	}
	root.CreateElement("p:clrMapOvr").CreateElement("a:masterClrMapping")
	return ooxml.NewXMLDocument(root)
}

func cloneable(phType string) bool {
	switch phType {
	case "dt", "ftr", "sldNum":
		return false
	}
	return true
}

// 新占位符只保留 ph 引用，位置和格式继承自版式
func newPlaceholderSp(id int, name string, layoutPh *etree.Element) *etree.Element {
	sp := etree.NewElement("p:sp")
	nv := sp.CreateElement("p:nvSpPr")
	c := nv.CreateElement("p:cNvPr")
	c.CreateAttr("id", strconv.Itoa(id))
	c.CreateAttr("name", name)
	nv.CreateElement("p:cNvSpPr").CreateElement("a:spLocks").CreateAttr("noGrp", "1")
	ph := nv.CreateElement("p:nvPr").CreateElement("p:ph")
	for _, a := range layoutPh.Attr {
		switch a.Key {
		case "type", "orient", "sz", "idx":
			ph.CreateAttr(a.Key, a.Value)
		}
	}
	sp.CreateElement("p:spPr")
	body := sp.CreateElement("p:txBody")
	body.CreateElement("a:bodyPr")
	body.CreateElement("a:lstStyle")
	body.CreateElement("a:p")
	return sp
}

// Shapes 版式中的形状
func (l *Layout) Shapes() []*Shape {
	return shapesOf(l.doc)
}

// Shapes 幻灯片中的形状，顺序与文档一致
func (s *Slide) Shapes() []*Shape {
	return shapesOf(s.doc)
}

// Shape 按下标取形状
func (s *Slide) Shape(i int) (*Shape, error) {
	shapes := s.Shapes()
	if i < 0 || i >= len(shapes) {
		return nil, fmt.Errorf("%w: %d of %d", ErrShapeIndex, i, len(shapes))
	}
	return shapes[i], nil
}

// Placeholder 按占位符 idx 取形状，标题占位符的 idx 为 0
func (s *Slide) Placeholder(idx int) (*Shape, error) {
	for _, sh := range s.Shapes() {
		if i, ok := sh.PlaceholderIdx(); ok && i == idx {
			return sh, nil
		}
	}
	return nil, fmt.Errorf("%w: idx %d", ErrNoPlaceholder, idx)
}

// Placeholders 全部占位符形状
func (s *Slide) Placeholders() []*Shape {
	var out []*Shape
	for _, sh := range s.Shapes() {
		if sh.IsPlaceholder() {
			out = append(out, sh)
		}
	}
	return out
}

func shapesOf(doc *etree.Document) []*Shape {
	tree := doc.Root().FindElement("p:cSld/p:spTree")
	if tree == nil {
		return nil
	}
	var out []*Shape
	for _, c := range tree.ChildElements() {
		switch c.Tag {
		case "sp", "pic", "graphicFrame", "grpSp", "cxnSp":
			out = append(out, &Shape{el: c})
		}
	}
	return out
}

// Save 保存到文件
func (p *Presentation) Save(name string) error {
	if err := p.flush(); err != nil {
		return err
	}
	return p.pkg.Save(name)
}

// Bytes 序列化为 pptx 字节
func (p *Presentation) Bytes() ([]byte, error) {
	if err := p.flush(); err != nil {
		return nil, err
	}
	return p.pkg.Bytes()
}

func (p *Presentation) flush() error {
	if err := p.pkg.SetXML(p.part, p.doc); err != nil {
		return err
	}
	for _, s := range p.slides {
		if err := p.pkg.SetXML(s.Part, s.doc); err != nil {
			return err
		}
	}
	return nil
}
