package analyse

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/openlabollioules/tools/internal/generator"
	"github.com/openlabollioules/tools/internal/style"
	"github.com/openlabollioules/tools/pkg/docgen"
	"github.com/openlabollioules/tools/pkg/pptgen"
)

func TestAbbreviate(t *testing.T) {
	assert.Equal(t, "a b", Abbreviate("a\n  b", 10))
	assert.Equal(t, "abcdefg...", Abbreviate("abcdefghijklmnop", 10))
	// 全角字符按两格计算
	assert.Equal(t, "日本...", Abbreviate("日本語テキスト", 7))
}

func TestAnalyseSlides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CS-PU-template_fr.pptx")
	require.NoError(t, pptgen.Blank().Save(path))

	report, err := AnalyseSlides(path)
	require.NoError(t, err)
	require.Len(t, report.Layouts, 5)
	assert.Equal(t, 0, report.Slides)

	title := report.Layouts[0]
	assert.Equal(t, "Title Slide", title.Name)
	assert.Equal(t, 3, title.Placeholders)
	require.Len(t, title.Shapes, 3)
	assert.Equal(t, "ctrTitle", title.Shapes[0].PlaceholderType)
	require.NotNil(t, title.Shapes[1].PlaceholderIdx)
	assert.Equal(t, 1, *title.Shapes[1].PlaceholderIdx)
	assert.InDelta(t, 1524000.0/914400, title.Shapes[0].Left, 1e-9)

	closing := report.Layouts[4]
	assert.Equal(t, 0, closing.Placeholders)
	assert.Equal(t, "Merci / Thank you", closing.Shapes[0].Text)

	var out bytes.Buffer
	report.Render(&out)
	assert.Contains(t, out.String(), "Title and Content")
	assert.Contains(t, out.String(), "Content Placeholder 2")
}

func TestSuggestLayouts(t *testing.T) {
	report := DescribePresentation("x.pptx", pptgen.Blank())
	got := SuggestLayouts(report, pptgen.LayoutTable{Abstract: 7})

	assert.Equal(t, 0, got.TitleAndContent)
	assert.Equal(t, 1, got.BasicContent)
	assert.Equal(t, 2, got.ChapterTitle)
	assert.Equal(t, 4, got.FinalFR)
	assert.Equal(t, 4, got.FinalEN)
	// 没有匹配的版式时保留原值
	assert.Equal(t, 7, got.Abstract)
}

func TestSuggestLayoutsFinalByLanguage(t *testing.T) {
	report := &SlidesReport{Layouts: []LayoutReport{
		{Index: 0, Name: "Page de titre"},
		{Index: 1, Name: "Chapitre"},
		{Index: 2, Name: "Titre et contenu"},
		{Index: 3, Name: "Sommaire"},
		{Index: 8, Name: "Slide finale FR"},
		{Index: 9, Name: "Final slide EN"},
	}}
	got := SuggestLayouts(report, pptgen.LayoutTable{})
	assert.Equal(t, 0, got.TitleAndContent)
	assert.Equal(t, 1, got.ChapterTitle)
	assert.Equal(t, 2, got.BasicContent)
	assert.Equal(t, 3, got.Abstract)
	assert.Equal(t, 8, got.FinalFR)
	assert.Equal(t, 9, got.FinalEN)
}

func TestWriteSuggestion(t *testing.T) {
	table := pptgen.BlankLayoutTable
	path := "/templates/fr/CS-PU-template_fr.pptx"

	var buf bytes.Buffer
	require.NoError(t, WriteSuggestion(&buf, path, table, FormatYAML))
	var y map[string]map[string]map[string]map[string]int
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &y))
	assert.Equal(t, 4, y["pptx"]["layouts"]["cs-pu-template_fr"][pptgen.KeyFinalFR])

	buf.Reset()
	require.NoError(t, WriteSuggestion(&buf, path, table, FormatTOML))
	var tm map[string]map[string]map[string]map[string]int
	_, err := toml.Decode(buf.String(), &tm)
	require.NoError(t, err)
	assert.Equal(t, 2, tm["pptx"]["layouts"]["cs-pu-template_fr"][pptgen.KeyChapterTitle])

	buf.Reset()
	require.NoError(t, WriteSuggestion(&buf, path, table, FormatJSON))
	var js map[string]map[string]map[string]map[string]int
	require.NoError(t, json.Unmarshal(buf.Bytes(), &js))
	assert.Equal(t, 1, js["pptx"]["layouts"]["cs-pu-template_fr"][pptgen.KeyContentBody])

	assert.Error(t, WriteSuggestion(&buf, path, table, "xml"))
}

func TestTemplateMatrix(t *testing.T) {
	cfg := generator.PptxConfig{TemplateDir: "tpl", FrDir: "fr", EnDir: "en"}
	paths := TemplateMatrix(cfg)
	require.Len(t, paths, 6)
	assert.Equal(t, filepath.Join("tpl", "fr", "CS-PU-template_fr.pptx"), paths[0])
	assert.Equal(t, filepath.Join("tpl", "en", "CS-CO-template_en.pptx"), paths[5])
}

func TestAnalyseWords(t *testing.T) {
	doc := docgen.New()
	require.NoError(t, doc.AddParagraph(docgen.NewParagraph("Title", "Rapport")))
	require.NoError(t, doc.AddParagraph(docgen.NewParagraph("heading 1", "Introduction")))
	require.NoError(t, doc.AddParagraph(docgen.NewParagraph("", strings.Repeat("mot ", 30))))
	path := filepath.Join(t.TempDir(), "t.docx")
	require.NoError(t, doc.Save(path))

	report, opened, err := AnalyseWords(path)
	require.NoError(t, err)
	require.Len(t, report.Paragraphs, 3)
	assert.Equal(t, "Title", report.Paragraphs[0].Style)
	assert.Equal(t, "heading 1", report.Paragraphs[1].Style)
	assert.Equal(t, 0, report.Paragraphs[1].OutlineLevel)
	assert.Equal(t, -1, report.Paragraphs[2].OutlineLevel)
	assert.True(t, strings.HasSuffix(report.Paragraphs[2].Text, "..."))

	report.Checks = CheckStyles(opened, style.Map{
		style.RoleTitle:      "Title",
		style.RoleListBullet: "List Bulet",
	})
	require.Len(t, report.Checks, 2)
	assert.True(t, report.Checks[0].Found)
	assert.False(t, report.Checks[1].Found)
	assert.Equal(t, "List Bullet", report.Checks[1].Suggestion)
	assert.Equal(t, 1, report.Missing())

	var out bytes.Buffer
	report.Render(&out)
	assert.Contains(t, out.String(), `did you mean "List Bullet"`)
}

func TestAnalyseSheets(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"a", "b"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{1, 2}))
	require.NoError(t, f.AddTable("Sheet1", &excelize.Table{Range: "A1:B2", Name: "Data", StyleName: "TableStyleMedium9"}))
	require.NoError(t, f.MergeCell("Sheet1", "D1", "E1"))
	path := filepath.Join(t.TempDir(), "s.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	report, err := AnalyseSheets(path)
	require.NoError(t, err)
	require.Len(t, report.Sheets, 1)
	s := report.Sheets[0]
	assert.Equal(t, "Sheet1", s.Name)
	assert.Equal(t, 2, s.Rows)
	require.Len(t, s.Tables, 1)
	assert.Equal(t, "Data", s.Tables[0].Name)
	assert.Equal(t, "A1:B2", s.Tables[0].Range)
	assert.Equal(t, []string{"D1:E1"}, s.Merged)

	var out bytes.Buffer
	report.Render(&out)
	assert.Contains(t, out.String(), "TableStyleMedium9")
}
