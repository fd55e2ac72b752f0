package pptgen

import (
	"fmt"
	"strings"

	"github.com/openlabollioules/tools/pkg/ooxml"
)

const (
	NsP = "http://schemas.openxmlformats.org/presentationml/2006/main"
	NsA = "http://schemas.openxmlformats.org/drawingml/2006/main"
	NsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

	ctPresentation = "application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"
	ctSlideMaster  = "application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"
	ctSlideLayout  = "application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"
	ctSlide        = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
	ctTheme        = "application/vnd.openxmlformats-officedocument.theme+xml"

	presentationPart = "ppt/presentation.xml"
)

// phDef 版式中的占位符
type phDef struct {
	name      string
	typ       string
	idx       int
	x, y      int64
	cx, cy    int64
	staticTxt string
}

type layoutDef struct {
	name string
	typ  string
	ph   []phDef
}

// 内置版式，幻灯片尺寸 16:9
var blankLayouts = []layoutDef{
	{name: "Title Slide", typ: "title", ph: []phDef{
		{name: "Title 1", typ: "ctrTitle", x: 1524000, y: 1122363, cx: 9144000, cy: 2387600},
		{name: "Subtitle 2", typ: "subTitle", idx: 1, x: 1524000, y: 3602038, cx: 9144000, cy: 830997},
		{name: "Text Placeholder 3", typ: "body", idx: 2, x: 1524000, y: 4525963, cx: 9144000, cy: 500000},
	}},
	{name: "Title and Content", typ: "obj", ph: []phDef{
		{name: "Title 1", typ: "title", x: 838200, y: 365125, cx: 10515600, cy: 1325563},
		{name: "Content Placeholder 2", idx: 1, x: 838200, y: 1825625, cx: 10515600, cy: 4351338},
	}},
	{name: "Section Header", typ: "secHead", ph: []phDef{
		{name: "Title 1", typ: "title", x: 831850, y: 1709738, cx: 10515600, cy: 2852737},
		{name: "Text Placeholder 2", typ: "body", idx: 1, x: 831850, y: 4589463, cx: 10515600, cy: 1500187},
	}},
	{name: "Title Only", typ: "titleOnly", ph: []phDef{
		{name: "Title 1", typ: "title", x: 838200, y: 365125, cx: 10515600, cy: 1325563},
	}},
	{name: "Closing", typ: "blank", ph: []phDef{
		{name: "TextBox 1", x: 1524000, y: 2743200, cx: 9144000, cy: 1371600, staticTxt: "Merci / Thank you"},
	}},
}

// BlankLayoutTable 内置演示文稿的版式表
var BlankLayoutTable = LayoutTable{
	TitleAndContent: 0,
	Abstract:        3,
	ChapterTitle:    2,
	BasicContent:    1,
	FinalFR:         4,
	FinalEN:         4,
	Title:           TitleSlots{Title: 0, Author: 1, Date: 2},
	Chapter:         ChapterSlots{Title: 0, Subtitle: 1},
	Content:         ContentSlots{Title: 0, Body: 1},
}

func blankPackage() *ooxml.Package {
	p := ooxml.New()

	var ct strings.Builder
	ct.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/ppt/presentation.xml" ContentType="` + ctPresentation + `"/>
  <Override PartName="/ppt/slideMasters/slideMaster1.xml" ContentType="` + ctSlideMaster + `"/>
  <Override PartName="/ppt/theme/theme1.xml" ContentType="` + ctTheme + `"/>`)
	for i := range blankLayouts {
		fmt.Fprintf(&ct, "\n  <Override PartName=\"/ppt/slideLayouts/slideLayout%d.xml\" ContentType=\"%s\"/>", i+1, ctSlideLayout)
	}
	ct.WriteString("\n</Types>")
	p.SetPart(ooxml.ContentTypesPart, []byte(ct.String()))

	p.SetPart("_rels/.rels", []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="ppt/presentation.xml"/>
</Relationships>`))

	p.SetPart(presentationPart, []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:presentation xmlns:a="`+NsA+`" xmlns:r="`+NsR+`" xmlns:p="`+NsP+`">
  <p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>
  <p:sldSz cx="12192000" cy="6858000"/>
  <p:notesSz cx="6858000" cy="9144000"/>
</p:presentation>`))
	p.SetPart("ppt/_rels/presentation.xml.rels", []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="slideMasters/slideMaster1.xml"/>
  <Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme" Target="theme/theme1.xml"/>
</Relationships>`))

	var ids, rels strings.Builder
	for i := range blankLayouts {
		fmt.Fprintf(&ids, `<p:sldLayoutId id="%d" r:id="rId%d"/>`, 2147483649+i, i+1)
		fmt.Fprintf(&rels, "\n  <Relationship Id=\"rId%d\" Type=\"%s\" Target=\"../slideLayouts/slideLayout%d.xml\"/>", i+1, ooxml.RelSlideLayout, i+1)
	}
	fmt.Fprintf(&rels, "\n  <Relationship Id=\"rId%d\" Type=\"%s\" Target=\"../theme/theme1.xml\"/>", len(blankLayouts)+1, ooxml.RelTheme)

	p.SetPart("ppt/slideMasters/slideMaster1.xml", []byte(fmt.Sprintf(masterXML, ids.String())))
	p.SetPart("ppt/slideMasters/_rels/slideMaster1.xml.rels", []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`+rels.String()+"\n</Relationships>"))

	for i, l := range blankLayouts {
		p.SetPart(fmt.Sprintf("ppt/slideLayouts/slideLayout%d.xml", i+1), []byte(layoutXML(l)))
		p.SetPart(fmt.Sprintf("ppt/slideLayouts/_rels/slideLayout%d.xml.rels", i+1), []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="`+ooxml.RelSlideMaster+`" Target="../slideMasters/slideMaster1.xml"/>
</Relationships>`))
	}
	p.SetPart("ppt/theme/theme1.xml", []byte(themeXML))
	return p
}

func layoutXML(l layoutDef) string {
	var sb strings.Builder
	for i, ph := range l.ph {
		sb.WriteString(shapeXML(i+2, ph))
	}
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sldLayout xmlns:a="%s" xmlns:r="%s" xmlns:p="%s" type="%s" preserve="1">
  <p:cSld name="%s"><p:spTree>%s%s</p:spTree></p:cSld>
  <p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>
</p:sldLayout>`, NsA, NsR, NsP, l.typ, l.name, groupHeader, sb.String())
}

const groupHeader = `<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>`

func shapeXML(id int, ph phDef) string {
	nvPr := "<p:nvPr/>"
	locks := "<p:cNvSpPr txBox=\"1\"/>"
	text := "<a:p><a:pPr algn=\"ctr\"/><a:r><a:rPr lang=\"fr-FR\" sz=\"4000\"/><a:t>" + ph.staticTxt + "</a:t></a:r></a:p>"
	if ph.staticTxt == "" {
		locks = `<p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr>`
		attrs := ""
		if ph.typ != "" {
			attrs += fmt.Sprintf(` type="%s"`, ph.typ)
		}
		if ph.idx > 0 {
			attrs += fmt.Sprintf(` idx="%d"`, ph.idx)
		}
		nvPr = "<p:nvPr><p:ph" + attrs + "/></p:nvPr>"
		text = `<a:p><a:endParaRPr lang="fr-FR"/></a:p>`
	}
	return fmt.Sprintf(`<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/>%s%s</p:nvSpPr><p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm></p:spPr><p:txBody><a:bodyPr/><a:lstStyle/>%s</p:txBody></p:sp>`,
		id, ph.name, locks, nvPr, ph.x, ph.y, ph.cx, ph.cy, text)
}

const masterXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sldMaster xmlns:a="` + NsA + `" xmlns:r="` + NsR + `" xmlns:p="` + NsP + `">
  <p:cSld><p:bg><p:bgRef idx="1001"><a:schemeClr val="bg1"/></p:bgRef></p:bg><p:spTree>` + groupHeader + `</p:spTree></p:cSld>
  <p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>
  <p:sldLayoutIdLst>%s</p:sldLayoutIdLst>
  <p:txStyles>
    <p:titleStyle><a:lvl1pPr algn="l"><a:defRPr sz="4000" b="1"><a:solidFill><a:schemeClr val="tx1"/></a:solidFill><a:latin typeface="+mj-lt"/></a:defRPr></a:lvl1pPr></p:titleStyle>
    <p:bodyStyle>
      <a:lvl1pPr marL="228600" indent="-228600"><a:buFont typeface="Arial"/><a:buChar char="•"/><a:defRPr sz="2400"><a:solidFill><a:schemeClr val="tx1"/></a:solidFill><a:latin typeface="+mn-lt"/></a:defRPr></a:lvl1pPr>
      <a:lvl2pPr marL="685800" indent="-228600"><a:buFont typeface="Arial"/><a:buChar char="•"/><a:defRPr sz="2000"><a:solidFill><a:schemeClr val="tx1"/></a:solidFill><a:latin typeface="+mn-lt"/></a:defRPr></a:lvl2pPr>
      <a:lvl3pPr marL="1143000" indent="-228600"><a:buFont typeface="Arial"/><a:buChar char="–"/><a:defRPr sz="1800"><a:solidFill><a:schemeClr val="tx1"/></a:solidFill><a:latin typeface="+mn-lt"/></a:defRPr></a:lvl3pPr>
      <a:lvl4pPr marL="1600200" indent="-228600"><a:buFont typeface="Arial"/><a:buChar char="•"/><a:defRPr sz="1600"><a:solidFill><a:schemeClr val="tx1"/></a:solidFill><a:latin typeface="+mn-lt"/></a:defRPr></a:lvl4pPr>
      <a:lvl5pPr marL="2057400" indent="-228600"><a:buFont typeface="Arial"/><a:buChar char="–"/><a:defRPr sz="1600"><a:solidFill><a:schemeClr val="tx1"/></a:solidFill><a:latin typeface="+mn-lt"/></a:defRPr></a:lvl5pPr>
    </p:bodyStyle>
    <p:otherStyle><a:lvl1pPr><a:defRPr sz="1800"><a:solidFill><a:schemeClr val="tx1"/></a:solidFill></a:defRPr></a:lvl1pPr></p:otherStyle>
  </p:txStyles>
</p:sldMaster>`

const themeXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<a:theme xmlns:a="` + NsA + `" name="Blank">
  <a:themeElements>
    <a:clrScheme name="Blank">
      <a:dk1><a:srgbClr val="000000"/></a:dk1><a:lt1><a:srgbClr val="FFFFFF"/></a:lt1>
      <a:dk2><a:srgbClr val="1F4E78"/></a:dk2><a:lt2><a:srgbClr val="E7E6E6"/></a:lt2>
      <a:accent1><a:srgbClr val="4472C4"/></a:accent1><a:accent2><a:srgbClr val="ED7D31"/></a:accent2>
      <a:accent3><a:srgbClr val="A5A5A5"/></a:accent3><a:accent4><a:srgbClr val="FFC000"/></a:accent4>
      <a:accent5><a:srgbClr val="5B9BD5"/></a:accent5><a:accent6><a:srgbClr val="70AD47"/></a:accent6>
      <a:hlink><a:srgbClr val="0563C1"/></a:hlink><a:folHlink><a:srgbClr val="954F72"/></a:folHlink>
    </a:clrScheme>
    <a:fontScheme name="Blank">
      <a:majorFont><a:latin typeface="Arial"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont>
      <a:minorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:minorFont>
    </a:fontScheme>
    <a:fmtScheme name="Blank">
      <a:fillStyleLst>
        <a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
        <a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
        <a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
      </a:fillStyleLst>
      <a:lnStyleLst>
        <a:ln w="6350"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>
        <a:ln w="12700"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>
        <a:ln w="19050"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>
      </a:lnStyleLst>
      <a:effectStyleLst>
        <a:effectStyle><a:effectLst/></a:effectStyle>
        <a:effectStyle><a:effectLst/></a:effectStyle>
        <a:effectStyle><a:effectLst/></a:effectStyle>
      </a:effectStyleLst>
      <a:bgFillStyleLst>
        <a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
        <a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
        <a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
      </a:bgFillStyleLst>
    </a:fmtScheme>
  </a:themeElements>
</a:theme>`
