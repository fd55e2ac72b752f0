package pptgen

import "github.com/openlabollioules/tools/pkg/textblock"

// OutlineLevel 把解析后的行映射为文本框的大纲级别。
// 项目符号行为缩进层级加一，quirk 打开时层级二及以上再加一，与旧模板的列表级别对齐；
// 普通行固定为 0 级，缩进改用段落左边距表示。
func OutlineLevel(line textblock.Line, quirk bool) int {
	if !line.Bullet {
		return 0
	}
	level := line.Level + 1
	if quirk && level >= 2 {
		level++
	}
	return level
}

// FillBody 把文本块逐行写入文本框。第一行复用占位符自带的空段落。
func FillBody(tf *TextFrame, block textblock.Block, quirk bool, indentEMU int64) {
	paras := tf.Paragraphs()
	for i, line := range block {
		var p *TextParagraph
		if i == 0 && len(paras) > 0 && paras[0].Text() == "" {
			p = paras[0]
		} else {
			p = tf.AddParagraph()
		}
		p.SetText(line.Text)
		p.SetLevel(OutlineLevel(line, quirk))
		if !line.Bullet && line.Level > 0 {
			p.SetMarginLeft(int64(line.Level) * indentEMU)
		}
	}
}
