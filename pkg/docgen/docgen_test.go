package docgen

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 4x2 红色 PNG
const tinyPNG = "iVBORw0KGgoAAAANSUhEUgAAAAQAAAACCAIAAADwyuo0AAAAEElEQVR4nGP4z8AARwzIHABvqgf5gNwAKAAAAABJRU5ErkJggg=="

func TestBlankDocumentStyles(t *testing.T) {
	d := New()
	for _, name := range []string{"Normal", "Title", "Subtitle", "Heading 1", "heading 5", "List Bullet", "Caption"} {
		assert.True(t, d.HasStyle(name), name)
	}
	assert.False(t, d.HasStyle("Paragraphe standard"))
	assert.False(t, d.HasContent())
	assert.Equal(t, 1, d.SectionCount())
}

func TestAddParagraphKeepsOrderBeforeSectPr(t *testing.T) {
	d := New()
	require.NoError(t, d.AddParagraph(NewParagraph("Heading 1", "A")))
	require.NoError(t, d.AddParagraph(&Paragraph{
		Format: Format{Alignment: AlignJustify, LeftIndent: Pt(36), FirstLineIndent: Pt(-36), LineSpacing: 1.5},
		Runs:   []Run{{Text: "x "}, {Text: "gras", Bold: true}},
	}))
	d.AddPageBreak()

	paras := d.Paragraphs()
	require.Len(t, paras, 3)
	assert.Equal(t, "A", paras[0].Text)
	assert.Equal(t, "heading 1", paras[0].Style)
	assert.Equal(t, 0, paras[0].OutlineLevel)
	assert.Equal(t, "x gras", paras[1].Text)
	assert.Equal(t, Pt(36), paras[1].LeftIndent)
	assert.Equal(t, Pt(-36), paras[1].FirstLineIndent)
	assert.Equal(t, AlignJustify, paras[1].Alignment)
	assert.Equal(t, []RunInfo{{Text: "x "}, {Text: "gras", Bold: true}}, paras[1].Runs)
	assert.True(t, paras[2].PageBreak)

	children := d.body.ChildElements()
	assert.Equal(t, "sectPr", children[len(children)-1].Tag)
	assert.True(t, d.HasContent())
}

func TestAddParagraphUnknownStyle(t *testing.T) {
	d := New()
	err := d.AddParagraph(NewParagraph("Titre1-Numeroté", "A"))
	assert.ErrorIs(t, err, ErrStyleNotFound)
	assert.Empty(t, d.Paragraphs())
}

func TestFieldCodeElements(t *testing.T) {
	toc := TOCField().Elements()
	require.Len(t, toc, 4)
	assert.Equal(t, "begin", toc[0].SelectAttrValue("w:fldCharType", ""))
	assert.Equal(t, `TOC \o "1-3" \h \z \u`, toc[1].Text())
	assert.Equal(t, "preserve", toc[1].SelectAttrValue("xml:space", ""))
	assert.Equal(t, "separate", toc[2].SelectAttrValue("w:fldCharType", ""))
	assert.Equal(t, "end", toc[3].SelectAttrValue("w:fldCharType", ""))

	page := PageField().Elements()
	require.Len(t, page, 3)
	assert.Equal(t, "PAGE", page[1].Text())
	assert.Equal(t, "end", page[2].SelectAttrValue("w:fldCharType", ""))
}

func TestFieldRunInParagraph(t *testing.T) {
	d := New()
	f := TOCField()
	require.NoError(t, d.AddParagraph(&Paragraph{Runs: []Run{{Field: &f}}}))
	paras := d.Paragraphs()
	require.Len(t, paras, 1)
	assert.Equal(t, []string{f.Instruction}, paras[0].Fields)
	assert.Len(t, d.body.FindElements(".//w:r"), 1)
}

func TestUpdateStyle(t *testing.T) {
	d := New()
	require.NoError(t, d.UpdateStyle("Normal", StyleDef{Font: "Calibri", Size: Pt(11), Alignment: AlignJustify, LineSpacing: 1.5, SpaceAfter: Pt(6)}))
	s := d.styleElement("Normal")
	require.NotNil(t, s)
	assert.Equal(t, "22", s.FindElement("w:rPr/w:sz").SelectAttrValue("w:val", ""))
	assert.Equal(t, "both", s.FindElement("w:pPr/w:jc").SelectAttrValue("w:val", ""))
	assert.Equal(t, "360", s.FindElement("w:pPr/w:spacing").SelectAttrValue("w:line", ""))
	assert.Equal(t, "120", s.FindElement("w:pPr/w:spacing").SelectAttrValue("w:after", ""))

	// pPr 必须位于 rPr 之前
	var tags []string
	for _, c := range s.ChildElements() {
		tags = append(tags, c.Tag)
	}
	assert.Equal(t, []string{"name", "qFormat", "pPr", "rPr"}, tags)

	assert.ErrorIs(t, d.UpdateStyle("Nope", StyleDef{Bold: true}), ErrStyleNotFound)
}

func TestFooterOnEverySection(t *testing.T) {
	d := New()
	// 段落内的分节符
	require.NoError(t, d.AddParagraph(NewParagraph("", "p1")))
	d.body.SelectElement("w:p").CreateElement("w:pPr").CreateElement("w:sectPr")
	assert.Equal(t, 2, d.SectionCount())

	f := PageField()
	require.NoError(t, d.SetFooter(&Paragraph{Format: Format{Alignment: AlignCenter}, Runs: []Run{{Text: "Page "}, {Field: &f}}}))
	for _, s := range d.sections() {
		refs := s.SelectElements("w:footerReference")
		require.Len(t, refs, 1)
		assert.Equal(t, "default", refs[0].SelectAttrValue("w:type", ""))
	}
	instr, text := d.FooterText()
	assert.Equal(t, []string{"PAGE"}, instr)
	assert.Equal(t, "Page ", text)
}

func TestAddPictureAndReopen(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "logo.png")
	data, err := base64.StdEncoding.DecodeString(tinyPNG)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(img, data, 0644))

	d := New()
	require.NoError(t, d.AddPicture(img, Inches(2), Format{Alignment: AlignCenter}))
	assert.Error(t, d.AddPicture(filepath.Join(dir, "missing.png"), Inches(2), Format{}))

	out := filepath.Join(dir, "out.docx")
	require.NoError(t, d.Save(out))

	again, err := Open(out)
	require.NoError(t, err)
	assert.Equal(t, 1, again.InlinePictures())
	_, ok := again.Package().Part("word/media/image1.png")
	assert.True(t, ok)

	ext := again.body.FindElement(".//wp:extent")
	require.NotNil(t, ext)
	assert.Equal(t, "1828800", ext.SelectAttrValue("cx", ""))
	assert.Equal(t, "914400", ext.SelectAttrValue("cy", ""))

	drawings := again.Drawings()
	require.Len(t, drawings, 1)
	assert.Equal(t, "rect", drawings[0].Geometry)
	assert.Equal(t, "logo", drawings[0].Name)
}

func TestOpenRejectsNonDocument(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.docx"))
	assert.Error(t, err)
}

func TestLengthConversions(t *testing.T) {
	assert.Equal(t, int64(360), Pt(18).Twips())
	assert.Equal(t, 36.0, Pt(36).Points())
	assert.Equal(t, Length(914400), Inches(1))
}
