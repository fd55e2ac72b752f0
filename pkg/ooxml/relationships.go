package ooxml

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

const (
	NsRelationships = "http://schemas.openxmlformats.org/package/2006/relationships"
	NsContentTypes  = "http://schemas.openxmlformats.org/package/2006/content-types"

	RelOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	RelStyles         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	RelNumbering      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering"
	RelFooter         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer"
	RelImage          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
	RelSlide          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
	RelSlideLayout    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout"
	RelSlideMaster    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster"
	RelTheme          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme"
)

// Relationship 单条关系
type Relationship struct {
	ID       string
	Type     string
	Target   string
	External bool
}

// Relationships 某个部件的关系集合
type Relationships struct {
	source string
	doc    *etree.Document
}

// RelsPartName 返回部件对应的关系部件名，如 word/document.xml -> word/_rels/document.xml.rels
func RelsPartName(source string) string {
	source = normalize(source)
	dir, file := path.Split(source)
	return dir + "_rels/" + file + ".rels"
}

// ResolveTarget 将相对目标解析为包内部件名
func ResolveTarget(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return normalize(target)
	}
	return normalize(path.Join(path.Dir(normalize(source)), target))
}

// RelativeTarget 计算从 source 指向 part 的相对路径
func RelativeTarget(source, part string) string {
	srcDir := strings.Split(path.Dir(normalize(source)), "/")
	dst := strings.Split(normalize(part), "/")
	if srcDir[0] == "." {
		srcDir = nil
	}
	i := 0
	for i < len(srcDir) && i < len(dst)-1 && srcDir[i] == dst[i] {
		i++
	}
	var parts []string
	for j := i; j < len(srcDir); j++ {
		parts = append(parts, "..")
	}
	parts = append(parts, dst[i:]...)
	return strings.Join(parts, "/")
}

// Rels 读取部件的关系，不存在时返回空集合
func (p *Package) Rels(source string) (*Relationships, error) {
	name := RelsPartName(source)
	if !p.Has(name) {
		root := etree.NewElement("Relationships")
		root.CreateAttr("xmlns", NsRelationships)
		return &Relationships{source: normalize(source), doc: NewXMLDocument(root)}, nil
	}
	doc, err := p.XML(name)
	if err != nil {
		return nil, err
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("part %s has no root", name)
	}
	return &Relationships{source: normalize(source), doc: doc}, nil
}

// SaveRels 写回关系部件
func (p *Package) SaveRels(r *Relationships) error {
	return p.SetXML(RelsPartName(r.source), r.doc)
}

// Source 关系所属部件
func (r *Relationships) Source() string {
	return r.source
}

// All 返回全部关系
func (r *Relationships) All() []Relationship {
	var out []Relationship
	for _, e := range r.doc.Root().SelectElements("Relationship") {
		out = append(out, Relationship{
			ID:       e.SelectAttrValue("Id", ""),
			Type:     e.SelectAttrValue("Type", ""),
			Target:   e.SelectAttrValue("Target", ""),
			External: e.SelectAttrValue("TargetMode", "") == "External",
		})
	}
	return out
}

// Get 按ID查找
func (r *Relationships) Get(id string) (Relationship, bool) {
	for _, rel := range r.All() {
		if rel.ID == id {
			return rel, true
		}
	}
	return Relationship{}, false
}

// ByType 按类型过滤
func (r *Relationships) ByType(typ string) []Relationship {
	var out []Relationship
	for _, rel := range r.All() {
		if rel.Type == typ {
			out = append(out, rel)
		}
	}
	return out
}

// PartFor 返回关系ID指向的包内部件名
func (r *Relationships) PartFor(id string) (string, bool) {
	rel, ok := r.Get(id)
	if !ok || rel.External {
		return "", false
	}
	return ResolveTarget(r.source, rel.Target), true
}

// Add 新增关系并返回新ID
func (r *Relationships) Add(typ, target string) string {
	id := r.nextID()
	e := r.doc.Root().CreateElement("Relationship")
	e.CreateAttr("Id", id)
	e.CreateAttr("Type", typ)
	e.CreateAttr("Target", target)
	return id
}

func (r *Relationships) nextID() string {
	max := 0
	for _, rel := range r.All() {
		if n, err := strconv.Atoi(strings.TrimPrefix(rel.ID, "rId")); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("rId%d", max+1)
}
