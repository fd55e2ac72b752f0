package generator

import (
	"path/filepath"
	"strings"

	"github.com/openlabollioules/tools/internal/style"
	"github.com/openlabollioules/tools/pkg/config"
	"github.com/openlabollioules/tools/pkg/docgen"
	"github.com/openlabollioules/tools/pkg/pptgen"
)

// Fonts 全局字体
type Fonts struct {
	Main    string
	Heading string
	Title   string
}

// DocxConfig Word 渲染配置，加载后只读，每次渲染显式传入
type DocxConfig struct {
	Template          string
	Prefix            string
	Styles            style.Map
	Fonts             Fonts
	LogoWidth         docgen.Length
	TOCTitle          string
	BibliographyTitle string
	InlineMarkdown    bool
	Transliterate     bool
}

// PptxConfig 演示文稿渲染配置
type PptxConfig struct {
	TemplateDir string
	FrDir       string
	EnDir       string
	LevelQuirk  bool
	IndentEMU   int64
	// Default 未单独配置的模板使用的版式表
	Default pptgen.LayoutTable
	// Layouts 按模板文件名（小写、不含扩展名）配置的版式表
	Layouts       map[string]pptgen.LayoutTable
	Transliterate bool
}

// XlsxConfig 表格渲染配置
type XlsxConfig struct {
	HeaderFill    string
	AltFill       string
	Grid          string
	TableStyle    string
	HeaderFont    string
	Transliterate bool
}

// LoadDocxConfig 从全局配置读取 Word 渲染配置，样式按角色逐项读取以便部分覆盖
func LoadDocxConfig() DocxConfig {
	styles := make(style.Map)
	for _, role := range style.Roles() {
		if name := config.GetString("docx.styles." + string(role)); name != "" {
			styles[role] = name
		}
	}
	return DocxConfig{
		Template: config.GetString("docx.template"),
		Prefix:   config.GetString("docx.prefix"),
		Styles:   styles,
		Fonts: Fonts{
			Main:    config.GetString("docx.fonts.main"),
			Heading: config.GetString("docx.fonts.heading"),
			Title:   config.GetString("docx.fonts.title"),
		},
		LogoWidth:         docgen.Inches(config.GetFloat64("docx.logo_width_in")),
		TOCTitle:          config.GetString("docx.toc_title"),
		BibliographyTitle: config.GetString("docx.bibliography_title"),
		InlineMarkdown:    config.GetBool("docx.inline_markdown"),
		Transliterate:     config.GetBool("output.transliterate"),
	}
}

// LoadPptxConfig 读取演示文稿配置，default 表之外的键视为模板专用表
func LoadPptxConfig() PptxConfig {
	keys := pptgen.LayoutKeys()
	base := pptgen.LayoutTable{}.Merge(config.GetIntMap("pptx.layouts.default", keys...))
	layouts := make(map[string]pptgen.LayoutTable)
	for name := range config.Sub("pptx.layouts") {
		if name == "default" {
			continue
		}
		layouts[name] = base.Merge(config.GetIntMap("pptx.layouts."+name, keys...))
	}
	return PptxConfig{
		TemplateDir:   config.GetString("pptx.template_dir"),
		FrDir:         config.GetString("pptx.fr_dir"),
		EnDir:         config.GetString("pptx.en_dir"),
		LevelQuirk:    config.GetBool("pptx.level_quirk"),
		IndentEMU:     config.GetInt64("pptx.indent_emu"),
		Default:       base,
		Layouts:       layouts,
		Transliterate: config.GetBool("output.transliterate"),
	}
}

// LoadXlsxConfig 读取表格配置
func LoadXlsxConfig() XlsxConfig {
	return XlsxConfig{
		HeaderFill:    config.GetString("xlsx.header_fill"),
		AltFill:       config.GetString("xlsx.alt_fill"),
		Grid:          config.GetString("xlsx.grid"),
		TableStyle:    config.GetString("xlsx.table_style"),
		HeaderFont:    config.GetString("xlsx.header_font"),
		Transliterate: config.GetBool("output.transliterate"),
	}
}

// LayoutKey 模板路径对应的版式表键
func LayoutKey(templatePath string) string {
	base := filepath.Base(templatePath)
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}

// LayoutFor 返回模板对应的版式表
func (c PptxConfig) LayoutFor(templatePath string) pptgen.LayoutTable {
	if t, ok := c.Layouts[LayoutKey(templatePath)]; ok {
		return t
	}
	return c.Default
}
