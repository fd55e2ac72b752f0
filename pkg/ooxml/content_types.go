package ooxml

import (
	"strings"

	"github.com/beevik/etree"
)

const (
	CTRelationships = "application/vnd.openxmlformats-package.relationships+xml"
	CTXML           = "application/xml"
	CTPNG           = "image/png"
	CTJPEG          = "image/jpeg"
	CTGIF           = "image/gif"
)

// ContentTypes [Content_Types].xml 的可变视图
type ContentTypes struct {
	doc *etree.Document
}

// ContentTypes 读取内容类型部件，不存在时创建
func (p *Package) ContentTypes() (*ContentTypes, error) {
	if !p.Has(ContentTypesPart) {
		root := etree.NewElement("Types")
		root.CreateAttr("xmlns", NsContentTypes)
		ct := &ContentTypes{doc: NewXMLDocument(root)}
		ct.AddDefault("rels", CTRelationships)
		ct.AddDefault("xml", CTXML)
		return ct, nil
	}
	doc, err := p.XML(ContentTypesPart)
	if err != nil {
		return nil, err
	}
	return &ContentTypes{doc: doc}, nil
}

// SaveContentTypes 写回内容类型部件
func (p *Package) SaveContentTypes(ct *ContentTypes) error {
	return p.SetXML(ContentTypesPart, ct.doc)
}

// AddDefault 按扩展名登记内容类型，已存在时忽略
func (c *ContentTypes) AddDefault(ext, contentType string) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	for _, e := range c.doc.Root().SelectElements("Default") {
		if strings.EqualFold(e.SelectAttrValue("Extension", ""), ext) {
			return
		}
	}
	e := etree.NewElement("Default")
	e.CreateAttr("Extension", ext)
	e.CreateAttr("ContentType", contentType)
	// Default 需要排在 Override 之前
	c.doc.Root().InsertChildAt(0, e)
}

// AddOverride 为部件登记内容类型，已存在时覆盖
func (c *ContentTypes) AddOverride(part, contentType string) {
	partName := "/" + normalize(part)
	for _, e := range c.doc.Root().SelectElements("Override") {
		if e.SelectAttrValue("PartName", "") == partName {
			e.CreateAttr("ContentType", contentType)
			return
		}
	}
	e := c.doc.Root().CreateElement("Override")
	e.CreateAttr("PartName", partName)
	e.CreateAttr("ContentType", contentType)
}

// RemoveOverride 删除部件的内容类型
func (c *ContentTypes) RemoveOverride(part string) {
	partName := "/" + normalize(part)
	for _, e := range c.doc.Root().SelectElements("Override") {
		if e.SelectAttrValue("PartName", "") == partName {
			c.doc.Root().RemoveChild(e)
			return
		}
	}
}

// TypeOf 查询部件的内容类型
func (c *ContentTypes) TypeOf(part string) string {
	partName := "/" + normalize(part)
	for _, e := range c.doc.Root().SelectElements("Override") {
		if e.SelectAttrValue("PartName", "") == partName {
			return e.SelectAttrValue("ContentType", "")
		}
	}
	ext := strings.TrimPrefix(strings.ToLower(partName[strings.LastIndex(partName, ".")+1:]), ".")
	for _, e := range c.doc.Root().SelectElements("Default") {
		if strings.EqualFold(e.SelectAttrValue("Extension", ""), ext) {
			return e.SelectAttrValue("ContentType", "")
		}
	}
	return ""
}
