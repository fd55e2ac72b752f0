package generator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/openlabollioules/tools/internal/event"
	"github.com/openlabollioules/tools/internal/style"
	"github.com/openlabollioules/tools/pkg/docgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDoc 内存中的文档，只记录写入的段落
type fakeDoc struct {
	styles   []string
	paras    []*docgen.Paragraph
	pictures []string
	footer   *docgen.Paragraph
	updated  []string
	saved    string
}

func newFakeDoc(styles ...string) *fakeDoc {
	return &fakeDoc{styles: styles}
}

func (f *fakeDoc) HasStyle(name string) bool {
	for _, s := range f.styles {
		if strings.EqualFold(s, name) {
			return true
		}
	}
	return false
}

func (f *fakeDoc) StyleNames() []string { return f.styles }

func (f *fakeDoc) UpdateStyle(name string, _ docgen.StyleDef) error {
	if !f.HasStyle(name) {
		return docgen.ErrStyleNotFound
	}
	f.updated = append(f.updated, name)
	return nil
}

func (f *fakeDoc) AddParagraph(p *docgen.Paragraph) error {
	if p.Style != "" && !f.HasStyle(p.Style) {
		return docgen.ErrStyleNotFound
	}
	f.paras = append(f.paras, p)
	return nil
}

func (f *fakeDoc) AddPageBreak() {
	f.paras = append(f.paras, &docgen.Paragraph{Runs: []docgen.Run{{PageBreak: true}}})
}

func (f *fakeDoc) AddPicture(path string, _ docgen.Length, _ docgen.Format) error {
	f.pictures = append(f.pictures, path)
	f.paras = append(f.paras, &docgen.Paragraph{Runs: []docgen.Run{{Text: "[picture]"}}})
	return nil
}

func (f *fakeDoc) HasContent() bool {
	return len(f.paras) > 0 && strings.TrimSpace(f.paras[0].Text()) != ""
}

func (f *fakeDoc) SetFooter(p *docgen.Paragraph) error {
	f.footer = p
	return nil
}

func (f *fakeDoc) Save(path string) error {
	f.saved = path
	return nil
}

// texts 非空段落的文本，分页记为 "<break>"
func (f *fakeDoc) texts() []string {
	var out []string
	for _, p := range f.paras {
		if len(p.Runs) == 1 && p.Runs[0].PageBreak {
			out = append(out, "<break>")
			continue
		}
		if t := p.Text(); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func testStyles() style.Map {
	return style.Map{
		style.RoleCoverTitle: "Title",
		style.RoleTitle:      "Section",
		style.RoleSubtitle:   "Subtitle",
		style.HeadingRole(1): "Titre1-Numeroté",
		style.HeadingRole(2): "Titre2-Numéroté",
		style.HeadingRole(3): "Titre3-Numéroté",
		style.HeadingRole(4): "Heading 4",
		style.HeadingRole(5): "Heading 5",
		style.RoleNormal:     "Normal",
		style.RoleBody:       "Paragraphe standard",
		style.RoleSection:    "Section",
		style.RoleCaption:    "Caption",
		style.RoleListBullet: "List Bullet",
	}
}

func testDocxConfig() DocxConfig {
	return DocxConfig{
		Prefix:            "CS-IN_",
		Styles:            testStyles(),
		Fonts:             Fonts{Main: "Calibri", Heading: "Arial", Title: "Arial"},
		LogoWidth:         docgen.Inches(2),
		TOCTitle:          "Table des matières",
		BibliographyTitle: "Bibliographie / Références",
		InlineMarkdown:    true,
	}
}

// 模板中具备全部样式的文档
func fullFakeDoc() *fakeDoc {
	return newFakeDoc("Normal", "Title", "Subtitle", "Section", "Paragraphe standard", "List Bullet",
		"Titre1-Numeroté", "Titre2-Numéroté", "Titre3-Numéroté", "Heading 4", "Heading 5", "Caption")
}

func intPtr(v int) *int { return &v }

func TestAddHeadingLevels(t *testing.T) {
	for _, level := range []int{0, 6, -1} {
		r := NewDocxRenderer(fullFakeDoc(), testDocxConfig(), nil)
		err := r.AddHeading("A", level)
		assert.ErrorIs(t, err, ErrValidation, "level %d", level)
	}
	for level := 1; level <= 5; level++ {
		doc := fullFakeDoc()
		r := NewDocxRenderer(doc, testDocxConfig(), nil)
		require.NoError(t, r.AddHeading("A", level))
		require.Len(t, doc.paras, 1)
		assert.Equal(t, testStyles()[style.HeadingRole(level)], doc.paras[0].Style)
	}

	r := NewDocxRenderer(fullFakeDoc(), testDocxConfig(), nil)
	assert.ErrorIs(t, r.AddHeading("   ", 1), ErrValidation)
}

func TestAddTitleRejectsEmpty(t *testing.T) {
	doc := fullFakeDoc()
	r := NewDocxRenderer(doc, testDocxConfig(), nil)

	err := r.AddTitle("  ")
	assert.ErrorIs(t, err, ErrValidation)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "titre", ve.Field)
	assert.Empty(t, doc.paras)

	require.NoError(t, r.AddTitle("Rapport"))
	assert.Equal(t, "Section", doc.paras[0].Style)
	assert.Equal(t, docgen.AlignCenter, doc.paras[0].Format.Alignment)
}

func TestHeadingFallback(t *testing.T) {
	doc := newFakeDoc("Normal")
	r := NewDocxRenderer(doc, testDocxConfig(), nil)
	require.NoError(t, r.AddHeading("Contexte", 3))

	p := doc.paras[0]
	assert.Equal(t, "Normal", p.Style)
	require.Len(t, p.Runs, 1)
	assert.True(t, p.Runs[0].Bold)
	assert.InDelta(t, 12, p.Runs[0].Size.Points(), 0.01)
}

func TestFallbackWithoutNormalStyle(t *testing.T) {
	doc := newFakeDoc()
	r := NewDocxRenderer(doc, testDocxConfig(), nil)
	require.NoError(t, r.AddSectionHeader("Introduction"))
	assert.Empty(t, doc.paras[0].Style)
	assert.True(t, doc.paras[0].Runs[0].Bold)
}

func TestBibliography(t *testing.T) {
	doc := fullFakeDoc()
	r := NewDocxRenderer(doc, testDocxConfig(), nil)
	require.NoError(t, r.AddBibliography(nil))
	assert.Empty(t, doc.paras)

	require.NoError(t, r.AddBibliography([]string{"R1"}))
	require.Len(t, doc.paras, 2)
	assert.Equal(t, "Bibliographie / Références", doc.paras[0].Text())
	ref := doc.paras[1]
	assert.Equal(t, "R1", ref.Text())
	assert.Equal(t, docgen.Pt(36), ref.Format.LeftIndent)
	assert.Equal(t, docgen.Pt(-36), ref.Format.FirstLineIndent)
}

func TestParagraphText(t *testing.T) {
	doc := fullFakeDoc()
	r := NewDocxRenderer(doc, testDocxConfig(), nil)
	require.NoError(t, r.AddParagraphText("  \n "))
	assert.Empty(t, doc.paras)

	require.NoError(t, r.AddParagraphText("Intro\n* un\n    * deux\n    suite"))
	require.Len(t, doc.paras, 4)

	assert.Equal(t, "Paragraphe standard", doc.paras[0].Style)
	assert.Equal(t, docgen.AlignJustify, doc.paras[0].Format.Alignment)
	assert.Equal(t, 1.5, doc.paras[0].Format.LineSpacing)

	assert.Equal(t, "List Bullet", doc.paras[1].Style)
	assert.Equal(t, "un", doc.paras[1].Text())
	assert.Equal(t, docgen.Length(0), doc.paras[1].Format.LeftIndent)

	assert.Equal(t, "deux", doc.paras[2].Text())
	assert.Equal(t, docgen.Pt(18), doc.paras[2].Format.LeftIndent)

	assert.Equal(t, "suite", doc.paras[3].Text())
	assert.Equal(t, docgen.Pt(18), doc.paras[3].Format.LeftIndent)
}

func TestBulletFallbackPrefix(t *testing.T) {
	doc := newFakeDoc("Normal")
	r := NewDocxRenderer(doc, testDocxConfig(), nil)
	require.NoError(t, r.AddParagraphText("* item"))
	assert.Equal(t, "• item", doc.paras[0].Text())
	assert.Equal(t, "Normal", doc.paras[0].Style)
}

func TestInlineMarkdown(t *testing.T) {
	doc := fullFakeDoc()
	cfg := testDocxConfig()
	r := NewDocxRenderer(doc, cfg, nil)
	require.NoError(t, r.AddParagraphText("un **point** clé"))
	p := doc.paras[0]
	assert.Equal(t, "un point clé", p.Text())
	require.Len(t, p.Runs, 3)
	assert.True(t, p.Runs[1].Bold)

	cfg.InlineMarkdown = false
	doc = fullFakeDoc()
	require.NoError(t, NewDocxRenderer(doc, cfg, nil).AddParagraphText("un **point**"))
	assert.Equal(t, "un **point**", doc.paras[0].Text())
}

func TestCoverPage(t *testing.T) {
	doc := fullFakeDoc()
	r := NewDocxRenderer(doc, testDocxConfig(), nil)
	require.NoError(t, r.AddCoverPage(Cover{Title: "T", Subtitle: "S", Author: "Alice", Date: "01/02/2024"}))

	assert.Equal(t, []string{"T", "S", "Auteur: Alice", "01/02/2024", "<break>"}, doc.texts())
	// 两个空段落在最前
	assert.Empty(t, doc.paras[0].Text())
	assert.Empty(t, doc.paras[1].Text())
	assert.Equal(t, "Title", doc.paras[2].Style)
}

func TestCoverPageBreaksAfterExistingContent(t *testing.T) {
	doc := fullFakeDoc()
	doc.paras = append(doc.paras, docgen.NewParagraph("", "existing"))
	r := NewDocxRenderer(doc, testDocxConfig(), nil)
	require.NoError(t, r.AddCoverPage(Cover{Title: "T"}))
	assert.Equal(t, []string{"existing", "<break>", "T", "<break>"}, doc.texts())
}

func TestCoverMissingLogoIsIgnored(t *testing.T) {
	doc := fullFakeDoc()
	r := NewDocxRenderer(doc, testDocxConfig(), nil)
	require.NoError(t, r.AddCoverPage(Cover{Title: "T", LogoPath: filepath.Join(t.TempDir(), "none.png")}))
	assert.Empty(t, doc.pictures)
}

func TestCoverLogo(t *testing.T) {
	logo := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, os.WriteFile(logo, []byte("png"), 0o644))
	doc := fullFakeDoc()
	r := NewDocxRenderer(doc, testDocxConfig(), nil)
	require.NoError(t, r.AddCoverPage(Cover{Title: "T", LogoPath: logo}))
	assert.Equal(t, []string{logo}, doc.pictures)
}

func TestCoverFromDefaults(t *testing.T) {
	req := DocxRequest{Title: "Req", Subtitle: "Sub", Author: "Bob", LogoPath: "l.png"}
	c := CoverFrom(Section{Type: SectionCover, Title: "Cover"}, req)
	assert.Equal(t, Cover{Title: "Cover", Subtitle: "Sub", Author: "Bob", LogoPath: "l.png"}, c)
}

func TestRenderOrder(t *testing.T) {
	doc := fullFakeDoc()
	r := NewDocxRenderer(doc, testDocxConfig(), nil)
	req := DocxRequest{
		Title: "Rapport",
		Sections: []Section{
			{Type: SectionHeading, Title: "A", Level: intPtr(1)},
			{Type: SectionBody, Content: "x"},
			{Type: SectionCover},
			{Type: SectionBibliography, References: []string{"R1"}},
		},
	}
	require.NoError(t, r.Render(req))
	assert.Equal(t, []string{"Rapport", "<break>", "A", "x", "Bibliographie / Références", "R1"}, doc.texts())

	require.NotNil(t, doc.footer)
	assert.Equal(t, "Page ", doc.footer.Runs[0].Text)
	require.NotNil(t, doc.footer.Runs[1].Field)
	assert.Equal(t, "PAGE", doc.footer.Runs[1].Field.Instruction)
}

func TestRenderSectionsWithHeaders(t *testing.T) {
	doc := fullFakeDoc()
	r := NewDocxRenderer(doc, testDocxConfig(), nil)
	req := DocxRequest{
		IncludeTOC: true,
		Sections: []Section{
			{Type: SectionIntroduction, Content: "i"},
			{Type: SectionHeading, Title: "Sans niveau"},
			{Type: "inconnu", Content: "ignoré"},
			{Type: SectionConclusion, Content: "c"},
		},
	}
	require.NoError(t, r.Render(req))
	assert.Equal(t, []string{"Table des matières", "<break>", "Introduction", "i", "Sans niveau", "Conclusion", "c"}, doc.texts())

	// 目录域所在的段落
	var toc *docgen.FieldCode
	for _, p := range doc.paras {
		for _, run := range p.Runs {
			if run.Field != nil {
				toc = run.Field
			}
		}
	}
	require.NotNil(t, toc)
	assert.True(t, toc.Separate)
	assert.Contains(t, toc.Instruction, `TOC \o "1-3"`)
}

func TestRenderValidationStopsAndNamesSection(t *testing.T) {
	doc := fullFakeDoc()
	r := NewDocxRenderer(doc, testDocxConfig(), nil)
	req := DocxRequest{Sections: []Section{
		{Type: SectionBody, Content: "avant"},
		{Type: SectionHeading, Title: "B", Level: intPtr(6)},
		{Type: SectionBody, Content: "après"},
	}}
	err := r.Render(req)
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "sections[1].niveau")
	assert.Equal(t, []string{"avant"}, doc.texts())
	assert.Nil(t, doc.footer)
}

func TestSetupStylesSkipsMissing(t *testing.T) {
	doc := newFakeDoc("Normal", "Title")
	r := NewDocxRenderer(doc, testDocxConfig(), nil)
	r.SetupStyles()
	assert.Equal(t, []string{"Normal", "Title"}, doc.updated)
}

func TestAssembleDocxWithBlankFallback(t *testing.T) {
	out := t.TempDir()
	cfg := testDocxConfig()
	cfg.Template = filepath.Join(out, "missing.docx")
	collector := &event.Collector{}

	req := DocxRequest{
		Title: "Rapport: Été 2024!",
		Sections: []Section{
			{Type: SectionCover, Author: "Alice"},
			{Type: SectionHeading, Title: "A", Level: intPtr(1)},
			{Type: SectionBody, Content: "x\n* y"},
		},
	}
	path, err := AssembleDocx(context.Background(), req, cfg, out, collector, nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "CS-IN_Rapport_t_2024.docx"), path)

	doc, err := docgen.Open(path)
	require.NoError(t, err)
	var texts []string
	for _, p := range doc.Paragraphs() {
		if p.Text != "" {
			texts = append(texts, p.Text)
		}
	}
	assert.Equal(t, []string{"Rapport: Été 2024!", "Auteur: Alice", "A", "x", "y"}, texts)

	instr, text := doc.FooterText()
	assert.Equal(t, []string{"PAGE"}, instr)
	assert.Equal(t, "Page ", text)

	events := collector.Events()
	require.Len(t, events, 3)
	assert.Equal(t, "Initiating DOCX generation for topic: Rapport: Été 2024!", events[0].Data.Description)
	assert.Equal(t, event.StatusComplete, events[2].Data.Status)
}

func TestAssembleDocxCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := AssembleDocx(ctx, DocxRequest{Title: "x"}, testDocxConfig(), t.TempDir(), nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
