// Package textblock 把多行文本解析为带缩进层级和项目符号标记的行。
//
// 每 4 个前导空格为一级缩进；去掉缩进后以 "* " 或 "• " 开头的行为项目符号行。
package textblock

import "strings"

const indentUnit = "    "

// 识别的项目符号前缀，后面必须恰好跟一个空格
var bulletMarkers = []string{"* ", "• "}

// Line 解析后的一行
type Line struct {
	Level  int
	Bullet bool
	Text   string
}

// Block 解析后的文本块
type Block []Line

// Parse 逐行解析，空行保留为空文本的普通行
func Parse(content string) Block {
	raw := strings.Split(content, "\n")
	out := make(Block, 0, len(raw))
	for _, line := range raw {
		out = append(out, ParseLine(strings.TrimSuffix(line, "\r")))
	}
	return out
}

// ParseLine 解析单行
func ParseLine(line string) Line {
	level := 0
	for strings.HasPrefix(line, indentUnit) {
		line = line[len(indentUnit):]
		level++
	}
	for _, m := range bulletMarkers {
		if strings.HasPrefix(line, m) {
			return Line{Level: level, Bullet: true, Text: line[len(m):]}
		}
	}
	return Line{Level: level, Text: line}
}

// IsBlank 内容是否只有空白
func IsBlank(content string) bool {
	return strings.TrimSpace(content) == ""
}

// Bullets 统计项目符号行数
func (b Block) Bullets() int {
	n := 0
	for _, l := range b {
		if l.Bullet {
			n++
		}
	}
	return n
}
