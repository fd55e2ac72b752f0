package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// 文档章节类型，取值与调用方的 JSON 保持一致
const (
	SectionCover        = "page_garde"
	SectionTitle        = "titre"
	SectionIntroduction = "introduction"
	SectionHeading      = "heading"
	SectionBody         = "contenu"
	SectionConclusion   = "conclusion"
	SectionBibliography = "bibliographie"
)

// 幻灯片类型
const (
	SlideTitle   = "titre"
	SlideChapter = "chapitre"
	SlideContent = "contenu"
)

// DocxRequest Word 文档生成请求
type DocxRequest struct {
	Title      string    `json:"titre"`
	Subtitle   string    `json:"sous_titre,omitempty"`
	Author     string    `json:"auteur,omitempty"`
	Date       string    `json:"date,omitempty"`
	LogoPath   string    `json:"logo_path,omitempty"`
	IncludeTOC bool      `json:"inclure_table_matieres,omitempty"`
	Sections   []Section `json:"sections"`
}

// Section 文档章节，按 Type 取用对应字段
type Section struct {
	Type     string `json:"type"`
	Title    string `json:"titre,omitempty"`
	Subtitle string `json:"sous_titre,omitempty"`
	Author   string `json:"auteur,omitempty"`
	Date     string `json:"date,omitempty"`
	Content  string `json:"contenu,omitempty"`
	// Level 未给出时为 1
	Level      *int     `json:"niveau,omitempty"`
	References []string `json:"references,omitempty"`
}

// HeadingLevel 标题级别，缺省为 1
func (s Section) HeadingLevel() int {
	if s.Level == nil {
		return 1
	}
	return *s.Level
}

// PptxRequest 演示文稿生成请求
type PptxRequest struct {
	Language        string           `json:"language"`
	Confidentiality string           `json:"confidentiality"`
	Data            PresentationData `json:"json_data"`
}

// PresentationData 演示文稿内容
type PresentationData struct {
	Title  string      `json:"titre"`
	Slides []SlideSpec `json:"slides"`
}

// UnmarshalJSON 兼容 json_data 以字符串形式传入
func (d *PresentationData) UnmarshalJSON(b []byte) error {
	type plain PresentationData
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		b = []byte(s)
	}
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*d = PresentationData(p)
	return nil
}

// SlideSpec 单页幻灯片
type SlideSpec struct {
	Type     string `json:"type"`
	Title    string `json:"titre,omitempty"`
	Subtitle string `json:"sous_titre,omitempty"`
	Content  string `json:"contenu,omitempty"`
}

// XlsxRequest 表格生成请求
type XlsxRequest struct {
	Title  string      `json:"titre"`
	Sheets []SheetSpec `json:"feuilles"`
}

// SheetSpec 工作表
type SheetSpec struct {
	Name  string     `json:"nom,omitempty"`
	Table *TableSpec `json:"tableau,omitempty"`
}

// TableSpec 表头和数据行
type TableSpec struct {
	Columns []string      `json:"colonnes"`
	Rows    [][]CellValue `json:"données"`
}

// FileRequest 纯文件生成请求
type FileRequest struct {
	Name      string `json:"name"`
	Content   string `json:"content"`
	Extension string `json:"extension"`
}

// CellKind 单元格值类型
type CellKind int

const (
	CellEmpty CellKind = iota
	CellNumber
	CellString
	CellBool
)

// CellValue 单元格值：数字、字符串、布尔或空
type CellValue struct {
	Kind   CellKind
	Number float64
	IsInt  bool
	Text   string
	Bool   bool
}

// Num 数字单元格
func Num(v float64) CellValue {
	return CellValue{Kind: CellNumber, Number: v, IsInt: v == float64(int64(v))}
}

// Str 字符串单元格
func Str(s string) CellValue {
	return CellValue{Kind: CellString, Text: s}
}

func (c *CellValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || string(b) == "null":
		*c = CellValue{}
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = Str(s)
	case string(b) == "true" || string(b) == "false":
		*c = CellValue{Kind: CellBool, Bool: string(b) == "true"}
	default:
		f, err := strconv.ParseFloat(string(b), 64)
		if err != nil {
			return fmt.Errorf("invalid cell value %s", b)
		}
		*c = CellValue{Kind: CellNumber, Number: f, IsInt: !strings.ContainsAny(string(b), ".eE")}
	}
	return nil
}

func (c CellValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Value())
}

// Value 转为写入单元格的 Go 值
func (c CellValue) Value() interface{} {
	switch c.Kind {
	case CellNumber:
		if c.IsInt {
			return int64(c.Number)
		}
		return c.Number
	case CellString:
		return c.Text
	case CellBool:
		return c.Bool
	}
	return nil
}
