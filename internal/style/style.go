// Package style 把逻辑角色（标题、各级标题、正文）解析为目标文档中的样式名称，
// 样式缺失时给出手工格式作为替代。
package style

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Role 逻辑角色
type Role string

const (
	RoleCoverTitle Role = "cover_title"
	RoleTitle      Role = "title"
	RoleSubtitle   Role = "subtitle"
	RoleNormal     Role = "normal"
	RoleBody       Role = "body"
	RoleSection    Role = "section"
	RoleCaption    Role = "caption"
	RoleListBullet Role = "list_bullet"
)

// MaxHeadingLevel 支持的最大标题级别
const MaxHeadingLevel = 5

// HeadingRole 第 level 级标题的角色
func HeadingRole(level int) Role {
	return Role(fmt.Sprintf("heading%d", level))
}

// Roles 全部角色，顺序固定
func Roles() []Role {
	out := []Role{RoleCoverTitle, RoleTitle, RoleSubtitle}
	for i := 1; i <= MaxHeadingLevel; i++ {
		out = append(out, HeadingRole(i))
	}
	return append(out, RoleNormal, RoleBody, RoleSection, RoleCaption, RoleListBullet)
}

// Map 角色到样式名称
type Map map[Role]string

// Lookup 文档的样式查询能力
type Lookup interface {
	HasStyle(name string) bool
}

// Lister 能列出全部样式名称的文档，用于给出相近样式提示
type Lister interface {
	StyleNames() []string
}

// Outcome 解析结果类型
type Outcome int

const (
	Resolved Outcome = iota
	Fallback
)

func (o Outcome) String() string {
	if o == Resolved {
		return "resolved"
	}
	return "fallback"
}

// ManualFormat 样式缺失时的替代格式
type ManualFormat struct {
	// Style 退回使用的基础样式，文档中也不存在时为空
	Style  string
	SizePt float64
	Bold   bool
	Italic bool
	Center bool
	// Prefix 加在文本前的字符，如列表退回时的 "• "
	Prefix string
}

// Resolution 一次解析的结果
type Resolution struct {
	Outcome Outcome
	Role    Role
	// Style 命中时为样式名称；退回时为原本期望的名称
	Style  string
	Manual ManualFormat
	// Suggestion 文档中与期望名称最接近的样式，仅用于日志
	Suggestion string
}

// Resolver 针对一个文档解析角色
type Resolver struct {
	names Map
	doc   Lookup
}

// NewResolver 创建解析器，names 不会被修改
func NewResolver(names Map, doc Lookup) *Resolver {
	return &Resolver{names: names, doc: doc}
}

// Resolve 解析角色，不会失败：样式缺失时返回 Fallback 结果
func (r *Resolver) Resolve(role Role) Resolution {
	name := r.names[role]
	if name != "" && r.doc.HasStyle(name) {
		return Resolution{Outcome: Resolved, Role: role, Style: name}
	}
	res := Resolution{Outcome: Fallback, Role: role, Style: name, Manual: r.manual(role)}
	if l, ok := r.doc.(Lister); ok && name != "" {
		res.Suggestion = Suggest(name, l.StyleNames())
	}
	return res
}

func (r *Resolver) manual(role Role) ManualFormat {
	base := ""
	if normal := r.names[RoleNormal]; normal != "" && r.doc.HasStyle(normal) {
		base = normal
	} else if r.doc.HasStyle("Normal") {
		base = "Normal"
	}

	switch role {
	case RoleTitle, RoleCoverTitle:
		return ManualFormat{Style: base, SizePt: 24, Bold: true, Center: true}
	case RoleSubtitle:
		return ManualFormat{Style: base, SizePt: 18, Italic: true, Center: true}
	case RoleSection:
		return ManualFormat{Style: base, SizePt: 16, Bold: true}
	case RoleCaption:
		return ManualFormat{Style: base, SizePt: 9, Italic: true}
	case RoleListBullet:
		return ManualFormat{Style: base, Prefix: "• "}
	case RoleNormal, RoleBody:
		return ManualFormat{Style: base}
	}
	if lvl := headingLevel(role); lvl > 0 {
		return ManualFormat{Style: base, SizePt: float64(16 - (lvl-1)*2), Bold: true}
	}
	return ManualFormat{Style: base}
}

func headingLevel(role Role) int {
	var n int
	if _, err := fmt.Sscanf(string(role), "heading%d", &n); err != nil {
		return 0
	}
	if n < 1 || n > MaxHeadingLevel {
		return 0
	}
	return n
}

// Suggest 在候选中找与 name 最接近的样式名称，找不到时返回空串
func Suggest(name string, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	ranks := fuzzy.RankFindNormalizedFold(name, candidates)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}
	best, bestDist := "", -1
	lname := strings.ToLower(name)
	for _, c := range candidates {
		d := fuzzy.LevenshteinDistance(lname, strings.ToLower(c))
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	// 差异超过名称一半时不给提示
	if bestDist*2 > len([]rune(name)) {
		return ""
	}
	return best
}
