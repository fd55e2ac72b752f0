package docgen

import "strconv"

// Length 长度，单位 EMU
type Length int64

const (
	emuPerPoint = 12700
	emuPerInch  = 914400
	emuPerTwip  = 635
)

func Pt(v float64) Length     { return Length(v * emuPerPoint) }
func Inches(v float64) Length { return Length(v * emuPerInch) }

// Points 转为磅
func (l Length) Points() float64 { return float64(l) / emuPerPoint }

// Twips 转为 1/20 磅
func (l Length) Twips() int64 { return int64(l) / emuPerTwip }

func (l Length) halfPoints() string { return strconv.FormatInt(int64(l)*2/emuPerPoint, 10) }
func (l Length) twipsAttr() string  { return strconv.FormatInt(l.Twips(), 10) }

// Alignment 段落对齐
type Alignment string

const (
	AlignDefault Alignment = ""
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "both"
)
