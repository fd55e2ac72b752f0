package generator

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/openlabollioules/tools/pkg/docgen"
	"github.com/openlabollioules/tools/pkg/pptgen"
)

// WordDocument 渲染器依赖的 Word 文档能力
type WordDocument interface {
	HasStyle(name string) bool
	StyleNames() []string
	UpdateStyle(name string, def docgen.StyleDef) error
	AddParagraph(p *docgen.Paragraph) error
	AddPageBreak()
	AddPicture(path string, width docgen.Length, f docgen.Format) error
	// HasContent 第一个段落是否已有文本
	HasContent() bool
	// SetFooter 为文档的每一节设置页脚
	SetFooter(p *docgen.Paragraph) error
	Save(path string) error
}

var _ WordDocument = (*docgen.Document)(nil)

// TemplateOutcome 模板打开结果
type TemplateOutcome int

const (
	TemplateLoaded TemplateOutcome = iota
	TemplateFallback
)

// TemplateResult 打开模板的结果；Fallback 时 Cause 包装 ErrTemplateUnavailable
type TemplateResult struct {
	Outcome TemplateOutcome
	Path    string
	Cause   error
}

func loaded(path string) TemplateResult {
	return TemplateResult{Outcome: TemplateLoaded, Path: path}
}

func fallback(path string, err error) TemplateResult {
	return TemplateResult{Outcome: TemplateFallback, Path: path, Cause: fmt.Errorf("%w: %s: %v", ErrTemplateUnavailable, path, err)}
}

// OpenDocx 打开 Word 模板，失败时返回空白文档
func OpenDocx(path string) (*docgen.Document, TemplateResult) {
	if path == "" {
		return docgen.New(), fallback(path, os.ErrNotExist)
	}
	doc, err := docgen.Open(path)
	if err != nil {
		return docgen.New(), fallback(path, err)
	}
	return doc, loaded(path)
}

// OpenPptx 打开演示文稿模板，失败时返回内置空白演示文稿
func OpenPptx(path string) (*pptgen.Presentation, TemplateResult) {
	if path == "" {
		return pptgen.Blank(), fallback(path, os.ErrNotExist)
	}
	prs, err := pptgen.Open(path)
	if err != nil {
		return pptgen.Blank(), fallback(path, err)
	}
	return prs, loaded(path)
}

// OutputPath 输出文件路径 dir/prefix+name+ext，目录不存在时创建
func OutputPath(dir, prefix, name, ext string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	return filepath.Join(dir, prefix+name+ext), nil
}
