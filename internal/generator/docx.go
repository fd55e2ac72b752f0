package generator

import (
	"context"
	"errors"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/openlabollioules/tools/internal/event"
	"github.com/openlabollioules/tools/internal/style"
	"github.com/openlabollioules/tools/pkg/docgen"
	"github.com/openlabollioules/tools/pkg/logger"
	"github.com/openlabollioules/tools/pkg/richtext"
	"github.com/openlabollioules/tools/pkg/textblock"
	"github.com/openlabollioules/tools/pkg/util"
)

// Cover 封面字段
type Cover struct {
	Title    string
	Subtitle string
	Author   string
	Date     string
	LogoPath string
}

// CoverFrom 封面章节中缺少的字段取请求级的值
func CoverFrom(sec Section, req DocxRequest) Cover {
	return Cover{
		Title:    firstNonEmpty(sec.Title, req.Title),
		Subtitle: firstNonEmpty(sec.Subtitle, req.Subtitle),
		Author:   firstNonEmpty(sec.Author, req.Author),
		Date:     firstNonEmpty(sec.Date, req.Date),
		LogoPath: req.LogoPath,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// DocxRenderer 把请求逐节写入一个 Word 文档
type DocxRenderer struct {
	doc      WordDocument
	cfg      DocxConfig
	resolver *style.Resolver
	log      *zap.Logger
}

// NewDocxRenderer 创建渲染器，log 为空时使用全局日志
func NewDocxRenderer(doc WordDocument, cfg DocxConfig, log *zap.Logger) *DocxRenderer {
	if log == nil {
		log = logger.GetLogger()
	}
	return &DocxRenderer{
		doc:      doc,
		cfg:      cfg,
		resolver: style.NewResolver(cfg.Styles, doc),
		log:      log,
	}
}

// SetupStyles 设置正文、标题和封面的全局样式，模板中没有的样式跳过
func (r *DocxRenderer) SetupStyles() {
	defs := []struct {
		name string
		def  docgen.StyleDef
	}{
		{"Normal", docgen.StyleDef{Font: r.cfg.Fonts.Main, Size: docgen.Pt(11), Alignment: docgen.AlignJustify,
			LineSpacing: 1.5, SpaceAfter: docgen.Pt(6)}},
		{"Heading 1", r.headingDef(16)},
		{"Heading 2", r.headingDef(14)},
		{"Heading 3", r.headingDef(12)},
		{"Title", docgen.StyleDef{Font: r.cfg.Fonts.Title, Size: docgen.Pt(24), Bold: true,
			Alignment: docgen.AlignCenter, SpaceAfter: docgen.Pt(24)}},
		{"Subtitle", docgen.StyleDef{Font: r.cfg.Fonts.Title, Size: docgen.Pt(18), Italic: true,
			Alignment: docgen.AlignCenter, SpaceAfter: docgen.Pt(36)}},
	}
	for _, d := range defs {
		if err := r.doc.UpdateStyle(d.name, d.def); err != nil {
			if errors.Is(err, docgen.ErrStyleNotFound) {
				r.log.Debug("模板中没有该样式，跳过设置", logger.F("style", d.name))
				continue
			}
			r.log.Warn("设置样式失败", logger.F("style", d.name), logger.F("error", err))
		}
	}
}

func (r *DocxRenderer) headingDef(size float64) docgen.StyleDef {
	return docgen.StyleDef{Font: r.cfg.Fonts.Heading, Size: docgen.Pt(size), Bold: true,
		SpaceBefore: docgen.Pt(12), SpaceAfter: docgen.Pt(6)}
}

// runs 把文本拆成片段，开启行内标记时识别粗体、斜体和代码
func (r *DocxRenderer) runs(text string) []docgen.Run {
	if text == "" {
		return nil
	}
	if !r.cfg.InlineMarkdown {
		return []docgen.Run{{Text: text}}
	}
	spans := richtext.Parse(text)
	out := make([]docgen.Run, 0, len(spans))
	for _, s := range spans {
		out = append(out, docgen.Run{Text: s.Text, Bold: s.Bold, Italic: s.Italic, Code: s.Code})
	}
	return out
}

// paragraph 按角色构造段落；样式缺失时使用手工格式
func (r *DocxRenderer) paragraph(role style.Role, text string, f docgen.Format) *docgen.Paragraph {
	res := r.resolver.Resolve(role)
	if res.Outcome == style.Resolved {
		return &docgen.Paragraph{Style: res.Style, Format: f, Runs: r.runs(text)}
	}

	r.log.Debug("样式缺失，使用手工格式",
		logger.F("role", string(role)),
		logger.F("style", res.Style),
		logger.F("suggestion", res.Suggestion),
	)
	m := res.Manual
	runs := r.runs(m.Prefix + text)
	for i := range runs {
		runs[i].Bold = runs[i].Bold || m.Bold
		runs[i].Italic = runs[i].Italic || m.Italic
		if m.SizePt > 0 {
			runs[i].Size = docgen.Pt(m.SizePt)
		}
	}
	if m.Center && f.Alignment == docgen.AlignDefault {
		f.Alignment = docgen.AlignCenter
	}
	return &docgen.Paragraph{Style: m.Style, Format: f, Runs: runs}
}

func (r *DocxRenderer) add(p *docgen.Paragraph) error {
	return r.doc.AddParagraph(p)
}

// AddTitle 居中的文档标题
func (r *DocxRenderer) AddTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return invalid("titre", "document title cannot be empty")
	}
	return r.add(r.paragraph(style.RoleTitle, title, docgen.Format{Alignment: docgen.AlignCenter}))
}

// AddHeading 第 level 级标题，level 取 1 到 5
func (r *DocxRenderer) AddHeading(title string, level int) error {
	if strings.TrimSpace(title) == "" {
		return invalid("titre", "heading cannot be empty")
	}
	if level < 1 || level > style.MaxHeadingLevel {
		return invalid("niveau", "heading level must be between 1 and 5")
	}
	return r.add(r.paragraph(style.HeadingRole(level), title, docgen.Format{}))
}

// AddSectionHeader 固定标签的章节头，如 Introduction
func (r *DocxRenderer) AddSectionHeader(label string) error {
	return r.add(r.paragraph(style.RoleSection, label, docgen.Format{SpaceAfter: docgen.Pt(12)}))
}

// AddParagraphText 按缩进和项目符号逐行写入正文，空内容不写
func (r *DocxRenderer) AddParagraphText(content string) error {
	if textblock.IsBlank(content) {
		return nil
	}
	for _, line := range textblock.Parse(content) {
		var p *docgen.Paragraph
		if line.Bullet {
			p = r.paragraph(style.RoleListBullet, line.Text, docgen.Format{
				LeftIndent: docgen.Pt(float64(line.Level * 18)),
			})
		} else {
			p = r.paragraph(style.RoleBody, line.Text, docgen.Format{
				LeftIndent:  docgen.Pt(float64(line.Level * 18)),
				Alignment:   docgen.AlignJustify,
				LineSpacing: 1.5,
			})
		}
		if err := r.add(p); err != nil {
			return err
		}
	}
	return nil
}

// AddBibliography 参考文献，每条悬挂缩进 36pt；列表为空时不写
func (r *DocxRenderer) AddBibliography(references []string) error {
	if len(references) == 0 {
		return nil
	}
	if err := r.AddSectionHeader(r.cfg.BibliographyTitle); err != nil {
		return err
	}
	for _, ref := range references {
		p := &docgen.Paragraph{
			Format: docgen.Format{
				LeftIndent:      docgen.Pt(36),
				FirstLineIndent: docgen.Pt(-36),
				SpaceAfter:      docgen.Pt(6),
			},
			Runs: r.runs(ref),
		}
		if err := r.add(p); err != nil {
			return err
		}
	}
	return nil
}

// AddCoverPage 封面：标题、副标题、徽标、作者、日期，前后分页
func (r *DocxRenderer) AddCoverPage(c Cover) error {
	if r.doc.HasContent() {
		r.doc.AddPageBreak()
	}
	for i := 0; i < 2; i++ {
		if err := r.add(&docgen.Paragraph{}); err != nil {
			return err
		}
	}

	center := docgen.Format{Alignment: docgen.AlignCenter}
	if c.Title != "" {
		if err := r.add(r.paragraph(style.RoleCoverTitle, c.Title, center)); err != nil {
			return err
		}
	}
	if c.Subtitle != "" {
		if err := r.add(r.paragraph(style.RoleSubtitle, c.Subtitle, center)); err != nil {
			return err
		}
	}
	if c.LogoPath != "" {
		r.addLogo(c.LogoPath)
	}
	if c.Author != "" {
		p := docgen.NewParagraph("", "Auteur: "+c.Author)
		p.Format = docgen.Format{Alignment: docgen.AlignCenter, SpaceAfter: docgen.Pt(12)}
		if err := r.add(p); err != nil {
			return err
		}
	}
	if c.Date != "" {
		p := docgen.NewParagraph("", c.Date)
		p.Format = center
		if err := r.add(p); err != nil {
			return err
		}
	}
	r.doc.AddPageBreak()
	return nil
}

// 徽标不存在或无法读取时只记录日志
func (r *DocxRenderer) addLogo(path string) {
	if _, err := os.Stat(path); err != nil {
		r.log.Warn("徽标文件不存在", logger.F("path", path))
		return
	}
	f := docgen.Format{Alignment: docgen.AlignCenter, SpaceAfter: docgen.Pt(24)}
	if err := r.doc.AddPicture(path, r.cfg.LogoWidth, f); err != nil {
		r.log.Warn("插入徽标失败", logger.F("path", path), logger.F("error", err))
	}
}

// AddTableOfContents 目录标题、TOC 域和分页
func (r *DocxRenderer) AddTableOfContents() error {
	if err := r.add(r.paragraph(style.RoleSection, r.cfg.TOCTitle, docgen.Format{Alignment: docgen.AlignCenter})); err != nil {
		return err
	}
	toc := docgen.TOCField()
	if err := r.add(&docgen.Paragraph{Runs: []docgen.Run{{Field: &toc}}}); err != nil {
		return err
	}
	r.doc.AddPageBreak()
	return nil
}

// AddPageNumbers 每一节的页脚写入居中的 "Page N"
func (r *DocxRenderer) AddPageNumbers() error {
	page := docgen.PageField()
	return r.doc.SetFooter(&docgen.Paragraph{
		Format: docgen.Format{Alignment: docgen.AlignCenter},
		Runs:   []docgen.Run{{Text: "Page "}, {Field: &page}},
	})
}

// Render 依次写入封面、目录、其余章节和页码。
// 封面总在最前，其余章节保持请求中的顺序。
func (r *DocxRenderer) Render(req DocxRequest) error {
	for _, sec := range req.Sections {
		if sec.Type == SectionCover {
			if err := r.AddCoverPage(CoverFrom(sec, req)); err != nil {
				return err
			}
			break
		}
	}
	if req.IncludeTOC {
		if err := r.AddTableOfContents(); err != nil {
			return err
		}
	}
	for i, sec := range req.Sections {
		if err := r.renderSection(sec); err != nil {
			return prefixField(err, "sections["+strconv.Itoa(i)+"].")
		}
	}
	return r.AddPageNumbers()
}

func (r *DocxRenderer) renderSection(sec Section) error {
	switch sec.Type {
	case SectionCover:
		return nil
	case SectionTitle:
		return r.AddTitle(sec.Title)
	case SectionIntroduction:
		if err := r.AddSectionHeader("Introduction"); err != nil {
			return err
		}
		return r.AddParagraphText(sec.Content)
	case SectionHeading:
		return r.AddHeading(sec.Title, sec.HeadingLevel())
	case SectionBody:
		return r.AddParagraphText(sec.Content)
	case SectionConclusion:
		if err := r.AddSectionHeader("Conclusion"); err != nil {
			return err
		}
		return r.AddParagraphText(sec.Content)
	case SectionBibliography:
		return r.AddBibliography(sec.References)
	default:
		r.log.Warn("未知的章节类型，已忽略", logger.F("type", sec.Type))
		return nil
	}
}

// AssembleDocx 打开模板、设置样式、渲染并保存，返回文件路径
func AssembleDocx(ctx context.Context, req DocxRequest, cfg DocxConfig, outDir string, em event.Emitter, log *zap.Logger) (string, error) {
	if log == nil {
		log = logger.GetLogger()
	}
	event.Emit(ctx, em, event.Progress("Initiating DOCX generation for topic: "+req.Title))

	doc, tr := OpenDocx(cfg.Template)
	if tr.Outcome == TemplateFallback {
		log.Warn("无法打开模板，使用空白文档", logger.F("error", tr.Cause))
	}
	r := NewDocxRenderer(doc, cfg, log)
	r.SetupStyles()

	event.Emit(ctx, em, event.Progress("Creating document structure"))
	if err := r.Render(req); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	event.Emit(ctx, em, event.Complete("DOCX generation completed"))

	name := util.SanitizeFilename(req.Title, "document", cfg.Transliterate)
	path, err := OutputPath(outDir, cfg.Prefix, name, ".docx")
	if err != nil {
		return "", err
	}
	if err := doc.Save(path); err != nil {
		return "", err
	}
	log.Info("文档已保存", logger.F("path", path))
	return path, nil
}
