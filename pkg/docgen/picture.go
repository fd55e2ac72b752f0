package docgen

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/openlabollioules/tools/pkg/ooxml"
)

var imageTypes = map[string]string{
	"png":  ooxml.CTPNG,
	"jpeg": ooxml.CTJPEG,
	"gif":  ooxml.CTGIF,
}

// AddPicture 追加一段内嵌图片，高度按原图比例计算
func (d *Document) AddPicture(name string, width Length, f Format) error {
	data, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode image %s: %w", filepath.Base(name), err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return fmt.Errorf("decode image %s: empty image", filepath.Base(name))
	}
	ext := format
	if ext == "jpeg" {
		ext = "jpg"
	}

	media := d.pkg.NextPartName("word/media/image%d." + ext)
	d.pkg.SetPart(media, data)

	ct, err := d.pkg.ContentTypes()
	if err != nil {
		return err
	}
	ct.AddDefault(ext, imageTypes[format])
	if err := d.pkg.SaveContentTypes(ct); err != nil {
		return err
	}

	rels, err := d.pkg.Rels(d.part)
	if err != nil {
		return err
	}
	rID := rels.Add(ooxml.RelImage, ooxml.RelativeTarget(d.part, media))
	if err := d.pkg.SaveRels(rels); err != nil {
		return err
	}

	height := Length(int64(width) * int64(cfg.Height) / int64(cfg.Width))
	d.ensureNamespace("wp", NsWP)
	d.ensureNamespace("r", NsR)
	drawing := buildDrawing(rID, d.nextDocPrID(), filepath.Base(name), width, height)

	return d.AddParagraph(&Paragraph{Format: f, Runs: []Run{{picture: drawing}}})
}

func (d *Document) ensureNamespace(prefix, uri string) {
	root := d.doc.Root()
	if root.SelectAttr("xmlns:"+prefix) == nil {
		root.CreateAttr("xmlns:"+prefix, uri)
	}
}

func (d *Document) nextDocPrID() int {
	max := 0
	for _, e := range d.body.FindElements(".//wp:docPr") {
		if n, err := strconv.Atoi(e.SelectAttrValue("id", "")); err == nil && n > max {
			max = n
		}
	}
	return max + 1
}

func buildDrawing(rID string, id int, name string, cx, cy Length) *etree.Element {
	sx, sy := strconv.FormatInt(int64(cx), 10), strconv.FormatInt(int64(cy), 10)
	name = strings.TrimSuffix(name, filepath.Ext(name))

	drawing := etree.NewElement("w:drawing")
	inline := drawing.CreateElement("wp:inline")
	for _, k := range []string{"distT", "distB", "distL", "distR"} {
		inline.CreateAttr(k, "0")
	}
	ext := inline.CreateElement("wp:extent")
	ext.CreateAttr("cx", sx)
	ext.CreateAttr("cy", sy)
	docPr := inline.CreateElement("wp:docPr")
	docPr.CreateAttr("id", strconv.Itoa(id))
	docPr.CreateAttr("name", fmt.Sprintf("Picture %d", id))
	inline.CreateElement("wp:cNvGraphicFramePr").
		CreateElement("a:graphicFrameLocks").CreateAttr("noChangeAspect", "1")

	graphic := inline.CreateElement("a:graphic")
	graphic.CreateAttr("xmlns:a", NsA)
	data := graphic.CreateElement("a:graphicData")
	data.CreateAttr("uri", NsPic)
	pic := data.CreateElement("pic:pic")
	pic.CreateAttr("xmlns:pic", NsPic)

	nv := pic.CreateElement("pic:nvPicPr")
	cNvPr := nv.CreateElement("pic:cNvPr")
	cNvPr.CreateAttr("id", "0")
	cNvPr.CreateAttr("name", name)
	nv.CreateElement("pic:cNvPicPr")

	fill := pic.CreateElement("pic:blipFill")
	fill.CreateElement("a:blip").CreateAttr("r:embed", rID)
	fill.CreateElement("a:stretch").CreateElement("a:fillRect")

	spPr := pic.CreateElement("pic:spPr")
	xfrm := spPr.CreateElement("a:xfrm")
	off := xfrm.CreateElement("a:off")
	off.CreateAttr("x", "0")
	off.CreateAttr("y", "0")
	aext := xfrm.CreateElement("a:ext")
	aext.CreateAttr("cx", sx)
	aext.CreateAttr("cy", sy)
	geom := spPr.CreateElement("a:prstGeom")
	geom.CreateAttr("prst", "rect")
	geom.CreateElement("a:avLst")
	return drawing
}
