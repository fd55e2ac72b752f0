package pptgen

import (
	"path/filepath"
	"testing"

	"github.com/beevik/etree"
	"github.com/openlabollioules/tools/pkg/textblock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlankLayouts(t *testing.T) {
	p := Blank()
	layouts := p.Layouts()
	require.Len(t, layouts, len(blankLayouts))
	assert.Equal(t, "Title Slide", layouts[0].Name)
	assert.Equal(t, "Closing", layouts[4].Name)
	assert.Empty(t, p.Slides())

	shapes := layouts[0].Shapes()
	require.Len(t, shapes, 3)
	assert.Equal(t, "ctrTitle", shapes[0].PlaceholderType())
	idx, ok := shapes[1].PlaceholderIdx()
	assert.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, "obj", layouts[1].Shapes()[1].PlaceholderType())
	assert.False(t, layouts[4].Shapes()[0].IsPlaceholder())
}

func TestAddSlideClonesPlaceholders(t *testing.T) {
	p := Blank()
	s, err := p.AddSlide(BlankLayoutTable.TitleAndContent)
	require.NoError(t, err)
	require.Len(t, s.Shapes(), 3)

	for i, text := range []string{"Titre", "Alice", "19/10/2026"} {
		sh, err := s.Shape(i)
		require.NoError(t, err)
		require.NoError(t, sh.SetText(text))
	}
	sh, _ := s.Shape(1)
	assert.Equal(t, "Alice", sh.Text())

	_, err = s.Shape(5)
	assert.ErrorIs(t, err, ErrShapeIndex)

	_, err = p.AddSlide(99)
	assert.ErrorIs(t, err, ErrLayoutIndex)

	// 结束页没有占位符
	end, err := p.AddSlide(BlankLayoutTable.Final("en"))
	require.NoError(t, err)
	assert.Empty(t, end.Placeholders())
}

func TestSkipsDateFooterSlideNumber(t *testing.T) {
	p := Blank()
	l := p.Layouts()[1]
	tree := l.doc.Root().FindElement("p:cSld/p:spTree")
	for _, typ := range []string{"dt", "ftr", "sldNum"} {
		tree.AddChild(newPlaceholderSp(10, typ, phElement(typ)))
	}
	require.Len(t, l.Shapes(), 5)

	s, err := p.AddSlide(1)
	require.NoError(t, err)
	assert.Len(t, s.Shapes(), 2)
}

func phElement(typ string) *etree.Element {
	ph := etree.NewElement("p:ph")
	ph.CreateAttr("type", typ)
	return ph
}

func TestSaveAndReopenKeepsSlideOrder(t *testing.T) {
	p := Blank()
	for _, l := range []int{0, 2, 1} {
		_, err := p.AddSlide(l)
		require.NoError(t, err)
	}
	file := filepath.Join(t.TempDir(), "deck.pptx")
	require.NoError(t, p.Save(file))

	q, err := Open(file)
	require.NoError(t, err)
	slides := q.Slides()
	require.Len(t, slides, 3)
	assert.Equal(t, "ppt/slides/slide1.xml", slides[0].Part)
	assert.Len(t, slides[1].Shapes(), 2)

	ids := q.doc.Root().FindElements("p:sldIdLst/p:sldId")
	require.Len(t, ids, 3)
	assert.Equal(t, "256", ids[0].SelectAttrValue("id", ""))
	assert.Equal(t, "258", ids[2].SelectAttrValue("id", ""))

	// 追加到已有幻灯片之后
	s, err := q.AddSlide(3)
	require.NoError(t, err)
	assert.Equal(t, "ppt/slides/slide4.xml", s.Part)
	assert.Len(t, q.Slides(), 4)
}

func TestOutlineLevel(t *testing.T) {
	cases := []struct {
		line  string
		quirk bool
		want  int
	}{
		{"plain", true, 0},
		{"        plain", true, 0},
		{"* a", true, 1},
		{"    * b", true, 3},
		{"    * b", false, 2},
		{"        • c", true, 4},
		{"        • c", false, 3},
	}
	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			assert.Equal(t, tc.want, OutlineLevel(textblock.ParseLine(tc.line), tc.quirk))
		})
	}
}

func TestFillBody(t *testing.T) {
	p := Blank()
	s, err := p.AddSlide(BlankLayoutTable.BasicContent)
	require.NoError(t, err)
	body, err := s.Placeholder(BlankLayoutTable.Content.Body)
	require.NoError(t, err)
	tf, err := body.TextFrame()
	require.NoError(t, err)

	FillBody(tf, textblock.Parse("Intro\n* un\n    * deux\n    suite"), true, 228600)

	paras := tf.Paragraphs()
	require.Len(t, paras, 4)
	assert.Equal(t, "Intro", paras[0].Text())
	assert.Equal(t, 0, paras[0].Level())
	assert.Equal(t, 1, paras[1].Level())
	assert.Equal(t, "deux", paras[2].Text())
	assert.Equal(t, 3, paras[2].Level())
	assert.Equal(t, 0, paras[3].Level())
	assert.Equal(t, int64(228600), paras[3].MarginLeft())
	assert.True(t, paras[3].BulletSuppressed())
}

func TestLayoutTableMerge(t *testing.T) {
	base := LayoutTable{TitleAndContent: 1, FinalFR: 12, FinalEN: 13}
	got := base.Merge(map[string]int{KeyFinalFR: 7, "unknown": 3, KeyDateSlot: 4})
	assert.Equal(t, 7, got.FinalFR)
	assert.Equal(t, 13, got.FinalEN)
	assert.Equal(t, 4, got.Title.Date)
	assert.Equal(t, 12, base.FinalFR)

	assert.Equal(t, 7, got.Final("fr"))
	assert.Equal(t, 7, got.Final("french"))
	assert.Equal(t, 13, got.Final("en"))
	assert.Equal(t, 4, got.Map()[KeyDateSlot])
}

func TestLayoutKeys(t *testing.T) {
	keys := LayoutKeys()
	assert.Len(t, keys, len(LayoutTable{}.Map()))
	assert.Contains(t, keys, KeyDateSlot)
	assert.Contains(t, keys, KeyContentBody)
	assert.IsNonDecreasing(t, keys)
}
