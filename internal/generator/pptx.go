package generator

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/openlabollioules/tools/internal/event"
	"github.com/openlabollioules/tools/pkg/logger"
	"github.com/openlabollioules/tools/pkg/pptgen"
	"github.com/openlabollioules/tools/pkg/textblock"
	"github.com/openlabollioules/tools/pkg/util"
)

// DateLayout 标题页日期格式 dd/mm/YYYY
const DateLayout = "02/01/2006"

// 保密级别
const (
	ConfidentialityPublic   = "public"
	ConfidentialityInternal = "internal"
)

// TemplatePrefix 保密级别对应的模板与输出文件前缀
func TemplatePrefix(confidentiality string) string {
	switch confidentiality {
	case ConfidentialityPublic:
		return "CS-PU-"
	case ConfidentialityInternal:
		return "CS-IN-"
	default:
		return "CS-CO-"
	}
}

// TemplatePath 按语言和保密级别拼出模板路径，返回路径和前缀
func (c PptxConfig) TemplatePath(language, confidentiality string) (string, string) {
	prefix := TemplatePrefix(confidentiality)
	if pptgen.IsFrench(language) {
		return filepath.Join(c.TemplateDir, c.FrDir, prefix+"template_fr.pptx"), prefix
	}
	return filepath.Join(c.TemplateDir, c.EnDir, prefix+"template_en.pptx"), prefix
}

// PptxRenderer 向演示文稿追加幻灯片
type PptxRenderer struct {
	prs    *pptgen.Presentation
	cfg    PptxConfig
	layout pptgen.LayoutTable
	log    *zap.Logger
}

// NewPptxRenderer 创建渲染器，layout 为当前模板的版式表
func NewPptxRenderer(prs *pptgen.Presentation, cfg PptxConfig, layout pptgen.LayoutTable, log *zap.Logger) *PptxRenderer {
	if log == nil {
		log = logger.GetLogger()
	}
	return &PptxRenderer{prs: prs, cfg: cfg, layout: layout, log: log}
}

func setShapeText(slide *pptgen.Slide, i int, text string) error {
	sh, err := slide.Shape(i)
	if err != nil {
		return err
	}
	return sh.SetText(text)
}

// AddTitleSlide 标题页：标题、作者、日期
func (r *PptxRenderer) AddTitleSlide(title, author string, date time.Time) error {
	if textblock.IsBlank(title) {
		return invalid("titre", "slide title cannot be empty")
	}
	slide, err := r.prs.AddSlide(r.layout.TitleAndContent)
	if err != nil {
		return fmt.Errorf("title slide: %w", err)
	}
	slots := r.layout.Title
	if err := setShapeText(slide, slots.Title, title); err != nil {
		return fmt.Errorf("title slide: %w", err)
	}
	if author != "" {
		if err := setShapeText(slide, slots.Author, author); err != nil {
			return fmt.Errorf("title slide author: %w", err)
		}
	}
	if err := setShapeText(slide, slots.Date, date.Format(DateLayout)); err != nil {
		return fmt.Errorf("title slide date: %w", err)
	}
	return nil
}

// AddChapterSlide 章节页，副标题为空时保留占位符
func (r *PptxRenderer) AddChapterSlide(title, subtitle string) error {
	if textblock.IsBlank(title) {
		return invalid("titre", "slide title cannot be empty")
	}
	slide, err := r.prs.AddSlide(r.layout.ChapterTitle)
	if err != nil {
		return fmt.Errorf("chapter slide: %w", err)
	}
	if err := setShapeText(slide, r.layout.Chapter.Title, title); err != nil {
		return fmt.Errorf("chapter slide: %w", err)
	}
	if !textblock.IsBlank(subtitle) {
		if err := setShapeText(slide, r.layout.Chapter.Subtitle, subtitle); err != nil {
			return fmt.Errorf("chapter slide subtitle: %w", err)
		}
	}
	return nil
}

// AddContentSlide 内容页，正文按缩进解析后写入正文占位符
func (r *PptxRenderer) AddContentSlide(title, content string) error {
	if textblock.IsBlank(title) {
		return invalid("titre", "slide title cannot be empty")
	}
	if textblock.IsBlank(content) {
		return invalid("contenu", "slide content cannot be empty")
	}
	slide, err := r.prs.AddSlide(r.layout.BasicContent)
	if err != nil {
		return fmt.Errorf("content slide: %w", err)
	}
	if err := setShapeText(slide, r.layout.Content.Title, title); err != nil {
		return fmt.Errorf("content slide: %w", err)
	}
	body, err := slide.Placeholder(r.layout.Content.Body)
	if err != nil {
		return fmt.Errorf("content slide body: %w", err)
	}
	tf, err := body.TextFrame()
	if err != nil {
		return fmt.Errorf("content slide body: %w", err)
	}
	block := textblock.Parse(content)
	pptgen.FillBody(tf, block, r.cfg.LevelQuirk, r.cfg.IndentEMU)
	r.log.Debug("内容页已填充", logger.F("title", title), logger.F("lines", len(block)), logger.F("bullets", block.Bullets()))
	return nil
}

// AddFinalSlide 按语言追加结束页
func (r *PptxRenderer) AddFinalSlide(language string) error {
	if _, err := r.prs.AddSlide(r.layout.Final(language)); err != nil {
		return fmt.Errorf("final slide: %w", err)
	}
	return nil
}

// EffectiveTitle 演示文稿标题；titre 类型的幻灯片条目覆盖请求标题，后出现的优先
func EffectiveTitle(data PresentationData) string {
	title := data.Title
	for _, s := range data.Slides {
		if s.Type == SlideTitle && !textblock.IsBlank(s.Title) {
			title = s.Title
		}
	}
	return title
}

// Render 标题页、按顺序的章节页和内容页、结束页
func (r *PptxRenderer) Render(req PptxRequest, author string, now time.Time) error {
	if err := r.AddTitleSlide(EffectiveTitle(req.Data), author, now); err != nil {
		return err
	}
	for i, s := range req.Data.Slides {
		var err error
		switch s.Type {
		case SlideTitle:
			continue
		case SlideChapter:
			err = r.AddChapterSlide(s.Title, s.Subtitle)
		case SlideContent:
			err = r.AddContentSlide(s.Title, s.Content)
		default:
			r.log.Warn("未知的幻灯片类型，已跳过", logger.F("index", i), logger.F("type", s.Type))
			continue
		}
		if err != nil {
			return prefixField(err, fmt.Sprintf("slides[%d].", i))
		}
	}
	return r.AddFinalSlide(req.Language)
}

// AssemblePptx 选择模板、生成幻灯片并保存，返回输出路径
func AssemblePptx(ctx context.Context, req PptxRequest, cfg PptxConfig, author string, now time.Time, outDir string, em event.Emitter, log *zap.Logger) (string, error) {
	if log == nil {
		log = logger.GetLogger()
	}
	event.Emit(ctx, em, event.Progress("Initiating pptx generation for topic: "+req.Data.Title))

	tplPath, prefix := cfg.TemplatePath(req.Language, req.Confidentiality)
	prs, tr := OpenPptx(tplPath)
	layout := cfg.LayoutFor(tplPath)
	if tr.Outcome == TemplateFallback {
		log.Warn("无法打开模板，使用内置演示文稿", logger.F("error", tr.Cause))
		layout = pptgen.BlankLayoutTable
	}
	r := NewPptxRenderer(prs, cfg, layout, log)

	event.Emit(ctx, em, event.Progress("Creating slides"))
	if err := r.Render(req, author, now); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	event.Emit(ctx, em, event.Complete("PPTX generation completed"))

	name := util.SanitizeFilename(EffectiveTitle(req.Data), "presentation", cfg.Transliterate)
	path, err := OutputPath(outDir, prefix, name, ".pptx")
	if err != nil {
		return "", err
	}
	if err := prs.Save(path); err != nil {
		return "", err
	}
	log.Info("演示文稿已保存", logger.F("path", path), logger.F("slides", len(prs.Slides())))
	return path, nil
}
