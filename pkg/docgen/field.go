package docgen

import "github.com/beevik/etree"

// FieldCode 域代码，由阅读器在打开时计算
type FieldCode struct {
	Instruction string
	// Separate 在指令和结束标记之间插入 separate 标记（目录需要）
	Separate bool
}

// TOCField 目录域，收录 1-3 级标题并生成超链接
func TOCField() FieldCode {
	return FieldCode{Instruction: `TOC \o "1-3" \h \z \u`, Separate: true}
}

// PageField 页码域
func PageField() FieldCode {
	return FieldCode{Instruction: "PAGE"}
}

// Elements 依次返回 begin、instrText、[separate]、end 四种标记
func (f FieldCode) Elements() []*etree.Element {
	out := []*etree.Element{fldChar("begin")}

	instr := etree.NewElement("w:instrText")
	instr.CreateAttr("xml:space", "preserve")
	instr.SetText(f.Instruction)
	out = append(out, instr)

	if f.Separate {
		out = append(out, fldChar("separate"))
	}
	return append(out, fldChar("end"))
}

func fldChar(typ string) *etree.Element {
	e := etree.NewElement("w:fldChar")
	e.CreateAttr("w:fldCharType", typ)
	return e
}
