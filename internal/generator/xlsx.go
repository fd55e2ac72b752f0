package generator

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/openlabollioules/tools/internal/event"
	"github.com/openlabollioules/tools/pkg/logger"
	"github.com/openlabollioules/tools/pkg/util"
)

const (
	// 标题在第 1 行，第 2 行留空，表头在第 3 行
	xlsxTitleRow  = 1
	xlsxSpacerRow = 2
	xlsxHeaderRow = 3

	// 默认工作表名
	defaultSheet = "Sheet"
	// 工作表名最多 31 个字符
	maxSheetName = 31
	// 标题合并至少到 D 列
	minTitleCols = 4
)

var sheetNameReplacer = strings.NewReplacer(":", "", "\\", "", "/", "", "?", "", "*", "", "[", "", "]", "")

// SheetName 工作表名：去掉 Excel 不允许的字符并截断到 31 个字符，为空时用 Feuille N
func SheetName(name string, idx int) string {
	name = sheetNameReplacer.Replace(name)
	if utf8.RuneCountInString(name) > maxSheetName {
		name = string([]rune(name)[:maxSheetName])
	}
	if strings.TrimSpace(name) == "" {
		return "Feuille " + strconv.Itoa(idx+1)
	}
	return name
}

// NumericColumns 返回数值列的下标（从 0 开始）：至少有一个值且所有非空值都是数字
func NumericColumns(t *TableSpec) []int {
	var out []int
	for col := range t.Columns {
		seen, numeric := false, true
		for _, row := range t.Rows {
			if col >= len(row) || row[col].Kind == CellEmpty {
				continue
			}
			seen = true
			if row[col].Kind != CellNumber {
				numeric = false
				break
			}
		}
		if seen && numeric {
			out = append(out, col)
		}
	}
	return out
}

// tableHeadersUsable 表头非空且不重复时才能建原生表格
func tableHeadersUsable(cols []string) bool {
	if len(cols) == 0 {
		return false
	}
	seen := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		key := strings.ToLower(strings.TrimSpace(c))
		if key == "" {
			return false
		}
		if _, ok := seen[key]; ok {
			return false
		}
		seen[key] = struct{}{}
	}
	return true
}

type xlsxStyles struct {
	title, header, data, alt, bold int
}

// XlsxRenderer 在工作簿中按顺序生成工作表
type XlsxRenderer struct {
	f      *excelize.File
	cfg    XlsxConfig
	log    *zap.Logger
	styles xlsxStyles
	sheets int
}

// NewXlsxRenderer 创建渲染器并注册单元格样式
func NewXlsxRenderer(f *excelize.File, cfg XlsxConfig, log *zap.Logger) (*XlsxRenderer, error) {
	if log == nil {
		log = logger.GetLogger()
	}
	r := &XlsxRenderer{f: f, cfg: cfg, log: log}
	if err := r.registerStyles(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *XlsxRenderer) registerStyles() error {
	border := make([]excelize.Border, 0, 4)
	for _, side := range []string{"left", "right", "top", "bottom"} {
		border = append(border, excelize.Border{Type: side, Color: r.cfg.Grid, Style: 1})
	}
	dataAlign := &excelize.Alignment{Horizontal: "left", Vertical: "center"}

	defs := []struct {
		dst *int
		s   *excelize.Style
	}{
		{&r.styles.title, &excelize.Style{
			Font:      &excelize.Font{Size: 14, Bold: true},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		}},
		{&r.styles.header, &excelize.Style{
			Font:      &excelize.Font{Family: r.cfg.HeaderFont, Bold: true, Color: "FFFFFF"},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{r.cfg.HeaderFill}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		}},
		{&r.styles.data, &excelize.Style{Border: border, Alignment: dataAlign}},
		{&r.styles.alt, &excelize.Style{
			Border:    border,
			Alignment: dataAlign,
			Fill:      excelize.Fill{Type: "pattern", Color: []string{r.cfg.AltFill}, Pattern: 1},
		}},
		{&r.styles.bold, &excelize.Style{Font: &excelize.Font{Bold: true}}},
	}
	for _, d := range defs {
		id, err := r.f.NewStyle(d.s)
		if err != nil {
			return fmt.Errorf("create cell style: %w", err)
		}
		*d.dst = id
	}
	return nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func colName(col int) string {
	name, _ := excelize.ColumnNumberToName(col)
	return name
}

// uniqueSheetName 与已有工作表重名时追加序号
func (r *XlsxRenderer) uniqueSheetName(name string) string {
	exists := func(n string) bool {
		idx, _ := r.f.GetSheetIndex(n)
		return idx >= 0
	}
	if !exists(name) {
		return name
	}
	for i := 1; ; i++ {
		suffix := strconv.Itoa(i)
		base := []rune(name)
		if len(base)+len(suffix) > maxSheetName {
			base = base[:maxSheetName-len(suffix)]
		}
		if candidate := string(base) + suffix; !exists(candidate) {
			return candidate
		}
	}
}

// AddSheet 新建工作表：标题、表头、数据行、原生表格、合计行
func (r *XlsxRenderer) AddSheet(idx int, spec SheetSpec) error {
	name := SheetName(spec.Name, idx)
	if r.sheets == 0 {
		// 第一张表复用默认工作表
		if err := r.f.SetSheetName(r.f.GetSheetName(0), name); err != nil {
			return fmt.Errorf("rename sheet: %w", err)
		}
	} else {
		name = r.uniqueSheetName(name)
		if _, err := r.f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %q: %w", name, err)
		}
	}
	r.sheets++

	title := spec.Name
	if title == "" {
		title = name
	}
	cols := 0
	if spec.Table != nil {
		cols = len(spec.Table.Columns)
	}
	if err := r.writeTitle(name, title, cols); err != nil {
		return err
	}
	if spec.Table == nil {
		return nil
	}
	return r.writeTable(name, idx, spec.Table)
}

func (r *XlsxRenderer) writeTitle(sheet, title string, cols int) error {
	if cols < minTitleCols {
		cols = minTitleCols
	}
	start := cellName(1, xlsxTitleRow)
	if err := r.f.SetCellValue(sheet, start, title); err != nil {
		return err
	}
	end := cellName(cols, xlsxTitleRow)
	if err := r.f.MergeCell(sheet, start, end); err != nil {
		return fmt.Errorf("merge title: %w", err)
	}
	if err := r.f.SetCellStyle(sheet, start, end, r.styles.title); err != nil {
		return err
	}
	return r.f.SetRowHeight(sheet, xlsxSpacerRow, 10)
}

func (r *XlsxRenderer) writeTable(sheet string, idx int, t *TableSpec) error {
	ncols := len(t.Columns)
	for i, h := range t.Columns {
		col := i + 1
		cell := cellName(col, xlsxHeaderRow)
		if err := r.f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		if err := r.f.SetCellStyle(sheet, cell, cell, r.styles.header); err != nil {
			return err
		}
		width := utf8.RuneCountInString(h) + 2
		if width < 12 {
			width = 12
		}
		if err := r.f.SetColWidth(sheet, colName(col), colName(col), float64(width)); err != nil {
			return err
		}
	}

	first := xlsxHeaderRow + 1
	for i, row := range t.Rows {
		rowNum := first + i
		for j, v := range row {
			if v.Kind == CellEmpty {
				continue
			}
			if err := r.f.SetCellValue(sheet, cellName(j+1, rowNum), v.Value()); err != nil {
				return err
			}
		}
	}
	if len(t.Rows) == 0 {
		return nil
	}
	last := xlsxHeaderRow + len(t.Rows)

	if ncols > 0 {
		for rowNum := first; rowNum <= last; rowNum++ {
			st := r.styles.data
			if rowNum%2 == 0 {
				st = r.styles.alt
			}
			if err := r.f.SetCellStyle(sheet, cellName(1, rowNum), cellName(ncols, rowNum), st); err != nil {
				return err
			}
		}
	}

	r.addTable(sheet, idx, t.Columns, last)
	return r.writeTotals(sheet, t, first, last)
}

// addTable 建原生表格，失败只记录日志
func (r *XlsxRenderer) addTable(sheet string, idx int, cols []string, last int) {
	if !tableHeadersUsable(cols) {
		r.log.Warn("表头为空或重复，不创建表格", logger.F("sheet", sheet))
		return
	}
	stripes := true
	tbl := &excelize.Table{
		Range:          fmt.Sprintf("A%d:%s%d", xlsxHeaderRow, colName(len(cols)), last),
		Name:           "Table" + strconv.Itoa(idx),
		StyleName:      r.cfg.TableStyle,
		ShowRowStripes: &stripes,
	}
	if err := r.f.AddTable(sheet, tbl); err != nil {
		r.log.Warn("创建表格失败", logger.F("sheet", sheet), logger.F("error", err))
	}
}

// writeTotals 数值列下方追加合计行
func (r *XlsxRenderer) writeTotals(sheet string, t *TableSpec, first, last int) error {
	numeric := NumericColumns(t)
	if len(numeric) == 0 {
		return nil
	}
	row := last + 1
	label := cellName(1, row)
	if err := r.f.SetCellValue(sheet, label, "Total"); err != nil {
		return err
	}
	if err := r.f.SetCellStyle(sheet, label, label, r.styles.bold); err != nil {
		return err
	}
	for _, col := range numeric {
		letter := colName(col + 1)
		cell := cellName(col+1, row)
		formula := fmt.Sprintf("SUM(%s%d:%s%d)", letter, first, letter, last)
		if err := r.f.SetCellFormula(sheet, cell, formula); err != nil {
			return err
		}
		if err := r.f.SetCellStyle(sheet, cell, cell, r.styles.bold); err != nil {
			return err
		}
	}
	return nil
}

// Render 按顺序生成全部工作表；没有工作表时保留一张名为 Sheet 的空表
func (r *XlsxRenderer) Render(req XlsxRequest) error {
	if len(req.Sheets) == 0 {
		return r.f.SetSheetName(r.f.GetSheetName(0), defaultSheet)
	}
	for i, s := range req.Sheets {
		if err := r.AddSheet(i, s); err != nil {
			return fmt.Errorf("feuilles[%d]: %w", i, err)
		}
	}
	r.f.SetActiveSheet(0)
	return nil
}

// AssembleXlsx 生成工作簿并保存，文件名不带前缀
func AssembleXlsx(ctx context.Context, req XlsxRequest, cfg XlsxConfig, outDir string, em event.Emitter, log *zap.Logger) (string, error) {
	if log == nil {
		log = logger.GetLogger()
	}
	event.Emit(ctx, em, event.Progress("Initiating Excel generation for: "+req.Title))

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Warn("关闭工作簿失败", logger.F("error", err))
		}
	}()
	r, err := NewXlsxRenderer(f, cfg, log)
	if err != nil {
		return "", err
	}

	event.Emit(ctx, em, event.Progress("Creating Excel sheets and tables"))
	if err := r.Render(req); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	event.Emit(ctx, em, event.Complete("Excel generation completed"))

	name := util.SanitizeFilename(req.Title, "excel", cfg.Transliterate)
	path, err := OutputPath(outDir, "", name, ".xlsx")
	if err != nil {
		return "", err
	}
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}
	log.Info("工作簿已保存", logger.F("path", path), logger.F("sheets", len(req.Sheets)))
	return path, nil
}
