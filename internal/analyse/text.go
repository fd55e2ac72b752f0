package analyse

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// 报告中文本列的显示宽度
const (
	SlideTextWidth = 50
	WordTextWidth  = 40
)

// Abbreviate 换行压成空格，按显示宽度截断
func Abbreviate(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	return runewidth.Truncate(s, width, "...")
}

// emuPerInch 1 英寸的 EMU 数
const emuPerInch = 914400

func inches(emu int64) float64 {
	return float64(emu) / emuPerInch
}
