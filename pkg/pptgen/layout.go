package pptgen

import "sort"

// LayoutTable 逻辑幻灯片角色到版式下标的映射，以及各版式内的形状槽位
type LayoutTable struct {
	TitleAndContent int
	Abstract        int
	ChapterTitle    int
	BasicContent    int
	FinalFR         int
	FinalEN         int

	Title   TitleSlots
	Chapter ChapterSlots
	Content ContentSlots
}

// TitleSlots 标题页中标题、作者、日期所在的形状下标
type TitleSlots struct {
	Title, Author, Date int
}

// ChapterSlots 章节页的形状下标
type ChapterSlots struct {
	Title, Subtitle int
}

// ContentSlots 内容页的标题形状下标和正文占位符 idx
type ContentSlots struct {
	Title, Body int
}

// 配置键
const (
	KeyTitleAndContent = "title_and_content"
	KeyAbstract        = "abstract"
	KeyChapterTitle    = "chapter_title"
	KeyBasicContent    = "basic_content"
	KeyFinalFR         = "final_slide_fr"
	KeyFinalEN         = "final_slide_en"
	KeyTitleSlot       = "title_slot"
	KeyAuthorSlot      = "author_slot"
	KeyDateSlot        = "date_slot"
	KeyChapterSlot     = "chapter_slot"
	KeySubtitleSlot    = "subtitle_slot"
	KeyContentTitle    = "content_title"
	KeyContentBody     = "content_body"
)

func (t *LayoutTable) fields() map[string]*int {
	return map[string]*int{
		KeyTitleAndContent: &t.TitleAndContent,
		KeyAbstract:        &t.Abstract,
		KeyChapterTitle:    &t.ChapterTitle,
		KeyBasicContent:    &t.BasicContent,
		KeyFinalFR:         &t.FinalFR,
		KeyFinalEN:         &t.FinalEN,
		KeyTitleSlot:       &t.Title.Title,
		KeyAuthorSlot:      &t.Title.Author,
		KeyDateSlot:        &t.Title.Date,
		KeyChapterSlot:     &t.Chapter.Title,
		KeySubtitleSlot:    &t.Chapter.Subtitle,
		KeyContentTitle:    &t.Content.Title,
		KeyContentBody:     &t.Content.Body,
	}
}

// Merge 用 m 中出现的键覆盖 t，返回新表
func (t LayoutTable) Merge(m map[string]int) LayoutTable {
	out := t
	fields := out.fields()
	for k, v := range m {
		if p, ok := fields[k]; ok {
			*p = v
		}
	}
	return out
}

// LayoutKeys 版式表的全部配置键，按名称排序
func LayoutKeys() []string {
	keys := make([]string, 0, 13)
	for k := range (&LayoutTable{}).fields() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Map 转为配置键到值的映射
func (t LayoutTable) Map() map[string]int {
	out := make(map[string]int)
	for k, p := range t.fields() {
		out[k] = *p
	}
	return out
}

// Final 按语言选择结束页版式
func (t LayoutTable) Final(language string) int {
	if IsFrench(language) {
		return t.FinalFR
	}
	return t.FinalEN
}

// IsFrench 语言参数是否选择法语
func IsFrench(language string) bool {
	return language == "fr" || language == "french"
}
