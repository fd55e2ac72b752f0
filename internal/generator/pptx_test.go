package generator

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/openlabollioules/tools/internal/event"
	"github.com/openlabollioules/tools/pkg/config"
	"github.com/openlabollioules/tools/pkg/pptgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var testNow = time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)

func testPptxConfig(quirk bool) PptxConfig {
	return PptxConfig{
		TemplateDir: "./templates/",
		FrDir:       "fr/",
		EnDir:       "en/",
		LevelQuirk:  quirk,
		IndentEMU:   228600,
		Default:     pptgen.BlankLayoutTable,
	}
}

func blankRenderer(quirk bool) (*PptxRenderer, *pptgen.Presentation) {
	prs := pptgen.Blank()
	return NewPptxRenderer(prs, testPptxConfig(quirk), pptgen.BlankLayoutTable, nil), prs
}

func shapeTexts(s *pptgen.Slide) []string {
	var out []string
	for _, sh := range s.Shapes() {
		out = append(out, sh.Text())
	}
	return out
}

func TestTemplatePrefix(t *testing.T) {
	assert.Equal(t, "CS-PU-", TemplatePrefix("public"))
	assert.Equal(t, "CS-IN-", TemplatePrefix("internal"))
	assert.Equal(t, "CS-CO-", TemplatePrefix("confidential"))
	assert.Equal(t, "CS-CO-", TemplatePrefix(""))
}

func TestTemplatePath(t *testing.T) {
	cfg := testPptxConfig(true)
	tests := []struct {
		lang, conf, want, prefix string
	}{
		{"fr", "public", "templates/fr/CS-PU-template_fr.pptx", "CS-PU-"},
		{"french", "internal", "templates/fr/CS-IN-template_fr.pptx", "CS-IN-"},
		{"en", "", "templates/en/CS-CO-template_en.pptx", "CS-CO-"},
		{"FR", "public", "templates/en/CS-PU-template_en.pptx", "CS-PU-"},
	}
	for _, tt := range tests {
		t.Run(tt.lang+"/"+tt.conf, func(t *testing.T) {
			path, prefix := cfg.TemplatePath(tt.lang, tt.conf)
			assert.Equal(t, tt.want, path)
			assert.Equal(t, tt.prefix, prefix)
		})
	}
}

func TestLayoutFor(t *testing.T) {
	cfg := testPptxConfig(true)
	custom := pptgen.BlankLayoutTable.Merge(map[string]int{pptgen.KeyBasicContent: 7})
	cfg.Layouts = map[string]pptgen.LayoutTable{"cs-in-template_fr": custom}

	assert.Equal(t, 7, cfg.LayoutFor("templates/fr/CS-IN-template_fr.pptx").BasicContent)
	assert.Equal(t, pptgen.BlankLayoutTable, cfg.LayoutFor("templates/en/CS-IN-template_en.pptx"))
}

func TestLoadPptxConfigPartialLayouts(t *testing.T) {
	defaults := config.Sub("pptx.layouts.default")
	config.Set("pptx.layouts.default", map[string]interface{}{pptgen.KeyFinalEN: 11})
	config.Set("pptx.layouts.cs-pu-template_en", map[string]interface{}{pptgen.KeyBasicContent: 6})
	t.Cleanup(func() {
		config.Set("pptx.layouts.default", defaults)
		config.Set("pptx.layouts.cs-pu-template_en", map[string]interface{}{})
	})

	cfg := LoadPptxConfig()
	assert.Equal(t, 11, cfg.Default.FinalEN)
	assert.Equal(t, 12, cfg.Default.FinalFR)
	assert.Equal(t, pptgen.TitleSlots{Title: 0, Author: 1, Date: 3}, cfg.Default.Title)
	assert.Equal(t, pptgen.ChapterSlots{Title: 0, Subtitle: 1}, cfg.Default.Chapter)
	assert.Equal(t, pptgen.ContentSlots{Title: 0, Body: 1}, cfg.Default.Content)

	// 模板表继承 default 表
	tpl := cfg.LayoutFor("templates/en/CS-PU-template_en.pptx")
	assert.Equal(t, 6, tpl.BasicContent)
	assert.Equal(t, 11, tpl.FinalEN)
	assert.Equal(t, 3, tpl.Title.Date)
	assert.Equal(t, 1, tpl.Content.Body)
}

func TestAddTitleSlide(t *testing.T) {
	r, prs := blankRenderer(true)
	require.NoError(t, r.AddTitleSlide("Bilan", "Alice", testNow))

	require.Len(t, prs.Slides(), 1)
	assert.Equal(t, []string{"Bilan", "Alice", "05/03/2024"}, shapeTexts(prs.Slides()[0]))

	err := r.AddTitleSlide("  ", "Alice", testNow)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Len(t, prs.Slides(), 1)
}

func TestAddChapterSlide(t *testing.T) {
	r, prs := blankRenderer(true)
	require.NoError(t, r.AddChapterSlide("Partie 1", ""))
	require.NoError(t, r.AddChapterSlide("Partie 2", "Résultats"))

	slides := prs.Slides()
	require.Len(t, slides, 2)
	assert.Equal(t, []string{"Partie 1", ""}, shapeTexts(slides[0]))
	assert.Equal(t, []string{"Partie 2", "Résultats"}, shapeTexts(slides[1]))

	assert.True(t, errors.Is(r.AddChapterSlide("", "x"), ErrValidation))
}

func TestAddContentSlide(t *testing.T) {
	content := "* a\n    * b\nplain\n    indented"

	t.Run("quirk", func(t *testing.T) {
		r, prs := blankRenderer(true)
		require.NoError(t, r.AddContentSlide("Points", content))

		slide := prs.Slides()[0]
		title, err := slide.Shape(0)
		require.NoError(t, err)
		assert.Equal(t, "Points", title.Text())

		body, err := slide.Placeholder(1)
		require.NoError(t, err)
		tf, err := body.TextFrame()
		require.NoError(t, err)
		paras := tf.Paragraphs()
		require.Len(t, paras, 4)

		var texts []string
		var levels []int
		for _, p := range paras {
			texts = append(texts, p.Text())
			levels = append(levels, p.Level())
		}
		assert.Equal(t, []string{"a", "b", "plain", "indented"}, texts)
		assert.Equal(t, []int{1, 3, 0, 0}, levels)
		assert.Equal(t, int64(228600), paras[3].MarginLeft())
		assert.True(t, paras[3].BulletSuppressed())
	})

	t.Run("no quirk", func(t *testing.T) {
		r, prs := blankRenderer(false)
		require.NoError(t, r.AddContentSlide("Points", content))

		body, err := prs.Slides()[0].Placeholder(1)
		require.NoError(t, err)
		tf, err := body.TextFrame()
		require.NoError(t, err)
		assert.Equal(t, 2, tf.Paragraphs()[1].Level())
	})

	t.Run("validation", func(t *testing.T) {
		r, prs := blankRenderer(true)
		err := r.AddContentSlide("Points", "   ")
		var ve *ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, "contenu", ve.Field)
		assert.True(t, errors.Is(r.AddContentSlide("", "x"), ErrValidation))
		assert.Empty(t, prs.Slides())
	})
}

func TestAddContentSlideLogsBullets(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := NewPptxRenderer(pptgen.Blank(), testPptxConfig(true), pptgen.BlankLayoutTable, zap.New(core))
	require.NoError(t, r.AddContentSlide("Points", "* a\n    * b\nplain"))

	entries := logs.FilterMessage("内容页已填充").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.EqualValues(t, 3, fields["lines"])
	assert.EqualValues(t, 2, fields["bullets"])
}

func TestAddContentSlideMissingBody(t *testing.T) {
	prs := pptgen.Blank()
	layout := pptgen.BlankLayoutTable
	// Title Only 版式没有正文占位符
	layout.BasicContent = 3
	r := NewPptxRenderer(prs, testPptxConfig(true), layout, nil)

	err := r.AddContentSlide("Points", "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, pptgen.ErrNoPlaceholder))
}

func TestEffectiveTitle(t *testing.T) {
	data := PresentationData{Title: "Base"}
	assert.Equal(t, "Base", EffectiveTitle(data))

	data.Slides = []SlideSpec{
		{Type: SlideTitle, Title: "Premier"},
		{Type: SlideChapter, Title: "C"},
		{Type: SlideTitle, Title: "Second"},
		{Type: SlideTitle, Title: " "},
	}
	assert.Equal(t, "Second", EffectiveTitle(data))
}

func TestPptxRender(t *testing.T) {
	var req PptxRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"language": "fr",
		"confidentiality": "internal",
		"json_data": {
			"titre": "Bilan annuel",
			"slides": [
				{"type": "chapitre", "titre": "Contexte"},
				{"type": "contenu", "titre": "Chiffres", "contenu": "* ventes\n    * export"},
				{"type": "inconnu", "titre": "x"},
				{"type": "chapitre", "titre": "Suite", "sous_titre": "2025"}
			]
		}
	}`), &req))

	r, prs := blankRenderer(true)
	require.NoError(t, r.Render(req, "Alice", testNow))

	slides := prs.Slides()
	// 标题页 + 3 张 + 结束页
	require.Len(t, slides, 5)
	assert.Equal(t, []string{"Bilan annuel", "Alice", "05/03/2024"}, shapeTexts(slides[0]))
	assert.Equal(t, "Contexte", shapeTexts(slides[1])[0])
	assert.Equal(t, "Chiffres", shapeTexts(slides[2])[0])
	assert.Equal(t, []string{"Suite", "2025"}, shapeTexts(slides[3]))
	assert.Empty(t, slides[4].Placeholders())
}

func TestPptxRenderValidationField(t *testing.T) {
	req := PptxRequest{Data: PresentationData{
		Title: "T",
		Slides: []SlideSpec{
			{Type: SlideChapter, Title: "ok"},
			{Type: SlideContent, Title: "vide"},
		},
	}}
	r, _ := blankRenderer(true)
	err := r.Render(req, "", testNow)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "slides[1].contenu", ve.Field)
}

func TestAssemblePptxFallback(t *testing.T) {
	dir := t.TempDir()
	cfg := testPptxConfig(true)
	cfg.TemplateDir = filepath.Join(dir, "missing")
	// 默认表指向不存在的版式，回退后必须改用内置表
	cfg.Default = pptgen.LayoutTable{TitleAndContent: 40}

	req := PptxRequest{
		Language:        "en",
		Confidentiality: "public",
		Data: PresentationData{
			Title:  "Mon projet!",
			Slides: []SlideSpec{{Type: SlideContent, Title: "A", Content: "b"}},
		},
	}
	col := &event.Collector{}
	out := filepath.Join(dir, "out")
	path, err := AssemblePptx(context.Background(), req, cfg, "Bob", testNow, out, col, nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "CS-PU-Mon_projet.pptx"), path)

	prs, err := pptgen.Open(path)
	require.NoError(t, err)
	assert.Len(t, prs.Slides(), 3)

	events := col.Events()
	require.Len(t, events, 3)
	assert.Equal(t, "Initiating pptx generation for topic: Mon projet!", events[0].Data.Description)
	assert.Equal(t, "Creating slides", events[1].Data.Description)
	assert.Equal(t, event.StatusComplete, events[2].Data.Status)
	assert.Equal(t, "PPTX generation completed", events[2].Data.Description)
}

func TestAssemblePptxEmptyTitle(t *testing.T) {
	dir := t.TempDir()
	cfg := testPptxConfig(true)
	cfg.TemplateDir = dir

	_, err := AssemblePptx(context.Background(), PptxRequest{}, cfg, "", testNow, dir, nil, nil)
	assert.True(t, errors.Is(err, ErrValidation))
}
