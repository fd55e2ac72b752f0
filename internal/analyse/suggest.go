package analyse

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/openlabollioules/tools/internal/generator"
	"github.com/openlabollioules/tools/pkg/pptgen"
	"github.com/openlabollioules/tools/pkg/util"
)

// 片段格式
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
	FormatJSON = "json"
)

// 版式名称中的关键词，按顺序匹配
var layoutHints = []struct {
	key   string
	words []string
}{
	{pptgen.KeyTitleAndContent, []string{"title slide", "diapositive de titre", "page de titre", "couverture", "cover"}},
	{pptgen.KeyAbstract, []string{"abstract", "resume", "sommaire", "agenda", "summary"}},
	{pptgen.KeyChapterTitle, []string{"chapter", "chapitre", "section header", "en-tete de section", "intercalaire"}},
	{pptgen.KeyBasicContent, []string{"title and content", "titre et contenu", "content", "contenu"}},
}

// SuggestLayouts 根据版式名称猜测版式表，猜不到的项保留 base 中的值
func SuggestLayouts(r *SlidesReport, base pptgen.LayoutTable) pptgen.LayoutTable {
	found := map[string]int{}
	var finals []LayoutReport
	for _, l := range r.Layouts {
		name := strings.ToLower(util.FoldAccents(l.Name))
		if isFinal(name) {
			finals = append(finals, l)
			continue
		}
		for _, h := range layoutHints {
			if _, ok := found[h.key]; ok {
				continue
			}
			if containsAny(name, h.words) {
				found[h.key] = l.Index
				break
			}
		}
	}
	for _, l := range finals {
		name := strings.ToLower(util.FoldAccents(l.Name))
		switch {
		case containsAny(name, []string{" fr", "_fr", "-fr", "french", "francais"}):
			setOnce(found, pptgen.KeyFinalFR, l.Index)
		case containsAny(name, []string{" en", "_en", "-en", "english", "anglais"}):
			setOnce(found, pptgen.KeyFinalEN, l.Index)
		default:
			setOnce(found, pptgen.KeyFinalFR, l.Index)
			setOnce(found, pptgen.KeyFinalEN, l.Index)
		}
	}
	return base.Merge(found)
}

func isFinal(name string) bool {
	return containsAny(name, []string{"final", "closing", "fin ", "end slide", "merci", "thank"}) || strings.HasPrefix(name, "fin")
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func setOnce(m map[string]int, key string, v int) {
	if _, ok := m[key]; !ok {
		m[key] = v
	}
}

// WriteSuggestion 输出 pptx.layouts.<模板> 配置片段
func WriteSuggestion(w io.Writer, templatePath string, t pptgen.LayoutTable, format string) error {
	snippet := map[string]interface{}{
		"pptx": map[string]interface{}{
			"layouts": map[string]interface{}{
				generator.LayoutKey(templatePath): t.Map(),
			},
		},
	}
	switch format {
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snippet); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(snippet)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snippet)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}
