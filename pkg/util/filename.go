package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// 仅保留 ASCII 单词字符和空白
var nonWordRe = regexp.MustCompile(`[^0-9A-Za-z_\s]`)

// SanitizeFilename 清理标题作为文件名：删除非单词字符，空格替换为下划线
func SanitizeFilename(title, fallback string, transliterate bool) string {
	if transliterate {
		title = FoldAccents(title)
	}
	clean := nonWordRe.ReplaceAllString(title, "")
	clean = strings.ReplaceAll(clean, " ", "_")
	if strings.TrimSpace(strings.ReplaceAll(clean, "_", "")) == "" {
		return fallback
	}
	return clean
}

// FoldAccents 去掉变音符号，如 Été -> Ete
func FoldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
