// Package ooxml 读写 Office Open XML 压缩包（docx/pptx/xlsx 通用的部件、内容类型和关系）。
package ooxml

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/beevik/etree"
)

const ContentTypesPart = "[Content_Types].xml"

const xmlHeader = `version="1.0" encoding="UTF-8" standalone="yes"`

// Package 内存中的 OOXML 包，部件名不带前导斜杠
type Package struct {
	parts map[string][]byte
	order []string
}

// New 创建空包
func New() *Package {
	return &Package{parts: make(map[string][]byte)}
}

// Open 从文件读取包
func Open(name string) (*Package, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return FromBytes(data)
}

// FromBytes 从字节读取包
func FromBytes(data []byte) (*Package, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open package: %w", err)
	}
	p := New()
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		b, err := readZipFile(f)
		if err != nil {
			return nil, fmt.Errorf("read part %s: %w", f.Name, err)
		}
		p.SetPart(f.Name, b)
	}
	if !p.Has(ContentTypesPart) {
		return nil, fmt.Errorf("open package: missing %s", ContentTypesPart)
	}
	return p, nil
}

// 读取ZIP文件内容
func readZipFile(file *zip.File) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// Has 部件是否存在
func (p *Package) Has(name string) bool {
	_, ok := p.parts[normalize(name)]
	return ok
}

// Part 获取部件内容
func (p *Package) Part(name string) ([]byte, bool) {
	b, ok := p.parts[normalize(name)]
	return b, ok
}

// SetPart 写入部件，新部件追加到末尾
func (p *Package) SetPart(name string, data []byte) {
	name = normalize(name)
	if _, ok := p.parts[name]; !ok {
		p.order = append(p.order, name)
	}
	p.parts[name] = data
}

// RemovePart 删除部件
func (p *Package) RemovePart(name string) {
	name = normalize(name)
	if _, ok := p.parts[name]; !ok {
		return
	}
	delete(p.parts, name)
	for i, n := range p.order {
		if n == name {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}

// Names 按写入顺序返回部件名
func (p *Package) Names() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// XML 解析部件为 etree 文档
func (p *Package) XML(name string) (*etree.Document, error) {
	b, ok := p.Part(name)
	if !ok {
		return nil, fmt.Errorf("part %s not found", name)
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(b); err != nil {
		return nil, fmt.Errorf("parse part %s: %w", name, err)
	}
	return doc, nil
}

// SetXML 序列化 etree 文档写回部件
func (p *Package) SetXML(name string, doc *etree.Document) error {
	ensureHeader(doc)
	b, err := doc.WriteToBytes()
	if err != nil {
		return fmt.Errorf("write part %s: %w", name, err)
	}
	p.SetPart(name, b)
	return nil
}

// NewXMLDocument 创建带 XML 声明的文档
func NewXMLDocument(root *etree.Element) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", xmlHeader)
	doc.SetRoot(root)
	return doc
}

func ensureHeader(doc *etree.Document) {
	for _, t := range doc.Child {
		if pi, ok := t.(*etree.ProcInst); ok && pi.Target == "xml" {
			return
		}
	}
	doc.InsertChildAt(0, etree.NewProcInst("xml", xmlHeader))
}

// NextPartName 按模式找到第一个未使用的部件名，如 ppt/slides/slide%d.xml
func (p *Package) NextPartName(pattern string) string {
	for i := 1; ; i++ {
		name := fmt.Sprintf(pattern, i)
		if !p.Has(name) {
			return name
		}
	}
}

// WriteTo 写出 ZIP，内容类型部件排在最前
func (p *Package) WriteTo(w io.Writer) (int64, error) {
	cw := &countWriter{w: w}
	zw := zip.NewWriter(cw)

	names := p.Names()
	sort.SliceStable(names, func(i, j int) bool {
		return names[i] == ContentTypesPart && names[j] != ContentTypesPart
	})
	for _, name := range names {
		fw, err := zw.Create(name)
		if err != nil {
			return cw.n, fmt.Errorf("create part %s: %w", name, err)
		}
		if _, err := fw.Write(p.parts[name]); err != nil {
			return cw.n, fmt.Errorf("write part %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

// Bytes 序列化为字节
func (p *Package) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := p.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save 保存到文件，目录不存在时创建
func (p *Package) Save(name string) error {
	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return err
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if _, err := p.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

type countWriter struct {
	w io.Writer
	n int64
}

func (c *countWriter) Write(b []byte) (int, error) {
	n, err := c.w.Write(b)
	c.n += int64(n)
	return n, err
}

func normalize(name string) string {
	return strings.TrimPrefix(path.Clean("/"+name), "/")
}
