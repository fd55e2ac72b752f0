package style

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeStyles []string

func (f fakeStyles) HasStyle(name string) bool {
	for _, s := range f {
		if strings.EqualFold(s, name) {
			return true
		}
	}
	return false
}

func (f fakeStyles) StyleNames() []string { return f }

var names = Map{
	RoleTitle:      "Section",
	RoleSubtitle:   "Subtitle",
	HeadingRole(1): "Titre1-Numeroté",
	HeadingRole(3): "Titre3-Numéroté",
	RoleNormal:     "Normal",
	RoleBody:       "Paragraphe standard",
	RoleListBullet: "List Bullet",
}

func TestResolveHit(t *testing.T) {
	r := NewResolver(names, fakeStyles{"Normal", "Section", "Titre1-Numeroté"})
	got := r.Resolve(HeadingRole(1))
	assert.Equal(t, Resolved, got.Outcome)
	assert.Equal(t, "Titre1-Numeroté", got.Style)
}

func TestResolveFallbackHeadingSizes(t *testing.T) {
	r := NewResolver(names, fakeStyles{"Normal"})
	for lvl, size := range map[int]float64{1: 16, 2: 14, 3: 12, 4: 10, 5: 8} {
		got := r.Resolve(HeadingRole(lvl))
		assert.Equal(t, Fallback, got.Outcome)
		assert.Equal(t, size, got.Manual.SizePt)
		assert.True(t, got.Manual.Bold)
		assert.Equal(t, "Normal", got.Manual.Style)
	}
}

func TestResolveFallbackRoles(t *testing.T) {
	r := NewResolver(names, fakeStyles{})
	title := r.Resolve(RoleTitle)
	assert.Equal(t, ManualFormat{SizePt: 24, Bold: true, Center: true}, title.Manual)
	assert.Equal(t, ManualFormat{SizePt: 18, Italic: true, Center: true}, r.Resolve(RoleSubtitle).Manual)
	assert.Equal(t, "• ", r.Resolve(RoleListBullet).Manual.Prefix)
	body := r.Resolve(RoleBody)
	assert.Equal(t, Fallback, body.Outcome)
	assert.Empty(t, body.Manual.Style)
	// 未配置的角色同样退回
	assert.Equal(t, Fallback, r.Resolve(RoleCaption).Outcome)
}

func TestResolveSuggestion(t *testing.T) {
	r := NewResolver(names, fakeStyles{"Normal", "Titre 1", "Titre1-Numerote"})
	got := r.Resolve(HeadingRole(3))
	assert.Equal(t, Fallback, got.Outcome)
	assert.Equal(t, "Titre1-Numerote", got.Suggestion)
}

func TestSuggest(t *testing.T) {
	assert.Equal(t, "List Bullet", Suggest("list bullet", []string{"Normal", "List Bullet", "List Number"}))
	assert.Empty(t, Suggest("Heading 1", nil))
	assert.Empty(t, Suggest("zzzzzzzz", []string{"Normal"}))
}

func TestRoles(t *testing.T) {
	roles := Roles()
	assert.Len(t, roles, 13)
	assert.Equal(t, RoleCoverTitle, roles[0])
	assert.Equal(t, Role("heading5"), roles[7])
}
