package ooxml

import (
	"path/filepath"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelsPartName(t *testing.T) {
	assert.Equal(t, "_rels/.rels", RelsPartName(""))
	assert.Equal(t, "word/_rels/document.xml.rels", RelsPartName("word/document.xml"))
	assert.Equal(t, "ppt/slides/_rels/slide1.xml.rels", RelsPartName("/ppt/slides/slide1.xml"))
}

func TestResolveAndRelativeTarget(t *testing.T) {
	assert.Equal(t, "ppt/slideLayouts/slideLayout2.xml",
		ResolveTarget("ppt/slides/slide1.xml", "../slideLayouts/slideLayout2.xml"))
	assert.Equal(t, "word/document.xml", ResolveTarget("", "word/document.xml"))
	assert.Equal(t, "word/media/image1.png", ResolveTarget("word/document.xml", "media/image1.png"))

	assert.Equal(t, "../slideLayouts/slideLayout2.xml",
		RelativeTarget("ppt/slides/slide1.xml", "ppt/slideLayouts/slideLayout2.xml"))
	assert.Equal(t, "footer1.xml", RelativeTarget("word/document.xml", "word/footer1.xml"))
	assert.Equal(t, "word/document.xml", RelativeTarget("", "word/document.xml"))
}

func TestRelationshipsAdd(t *testing.T) {
	p := New()
	rels, err := p.Rels("word/document.xml")
	require.NoError(t, err)

	id1 := rels.Add(RelStyles, "styles.xml")
	id2 := rels.Add(RelFooter, "footer1.xml")
	assert.Equal(t, "rId1", id1)
	assert.Equal(t, "rId2", id2)
	require.NoError(t, p.SaveRels(rels))

	again, err := p.Rels("word/document.xml")
	require.NoError(t, err)
	part, ok := again.PartFor("rId2")
	assert.True(t, ok)
	assert.Equal(t, "word/footer1.xml", part)
	assert.Len(t, again.ByType(RelStyles), 1)
	assert.Equal(t, "rId3", again.Add(RelImage, "media/image1.png"))
}

func TestContentTypes(t *testing.T) {
	p := New()
	ct, err := p.ContentTypes()
	require.NoError(t, err)
	ct.AddOverride("word/document.xml", "doc")
	ct.AddDefault("png", CTPNG)
	ct.AddDefault("PNG", CTPNG)
	require.NoError(t, p.SaveContentTypes(ct))

	ct, err = p.ContentTypes()
	require.NoError(t, err)
	assert.Equal(t, "doc", ct.TypeOf("/word/document.xml"))
	assert.Equal(t, CTPNG, ct.TypeOf("word/media/a.png"))
	assert.Len(t, ct.doc.Root().SelectElements("Default"), 3)

	ct.RemoveOverride("word/document.xml")
	assert.Empty(t, ct.TypeOf("word/document.xml"))
}

func TestSaveAndReopen(t *testing.T) {
	p := New()
	ct, err := p.ContentTypes()
	require.NoError(t, err)
	require.NoError(t, p.SaveContentTypes(ct))

	root := etree.NewElement("w:document")
	root.CreateAttr("xmlns:w", "http://schemas.openxmlformats.org/wordprocessingml/2006/main")
	root.CreateElement("w:body")
	require.NoError(t, p.SetXML("word/document.xml", NewXMLDocument(root)))

	file := filepath.Join(t.TempDir(), "out", "a.docx")
	require.NoError(t, p.Save(file))

	q, err := Open(file)
	require.NoError(t, err)
	assert.Equal(t, ContentTypesPart, q.Names()[0])
	doc, err := q.XML("word/document.xml")
	require.NoError(t, err)
	assert.NotNil(t, doc.Root().SelectElement("w:body"))
}

func TestFromBytesRejectsNonPackage(t *testing.T) {
	_, err := FromBytes([]byte("not a zip"))
	assert.Error(t, err)
}

func TestNextPartName(t *testing.T) {
	p := New()
	p.SetPart("ppt/slides/slide1.xml", []byte("<a/>"))
	p.SetPart("ppt/slides/slide2.xml", []byte("<a/>"))
	assert.Equal(t, "ppt/slides/slide3.xml", p.NextPartName("ppt/slides/slide%d.xml"))
	p.RemovePart("ppt/slides/slide1.xml")
	assert.Equal(t, "ppt/slides/slide1.xml", p.NextPartName("ppt/slides/slide%d.xml"))
}
