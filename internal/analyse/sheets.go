package analyse

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/xuri/excelize/v2"
)

// TableInfo 工作表中的原生表格
type TableInfo struct {
	Name  string `json:"name"`
	Range string `json:"range"`
	Style string `json:"style"`
}

// SheetReport 一个工作表
type SheetReport struct {
	Name      string      `json:"name"`
	Dimension string      `json:"dimension"`
	Rows      int         `json:"rows"`
	Tables    []TableInfo `json:"tables"`
	Merged    []string    `json:"merged"`
}

// SheetsReport 工作簿概要
type SheetsReport struct {
	Path   string        `json:"path"`
	Sheets []SheetReport `json:"sheets"`
}

// AnalyseSheets 读取 .xlsx 工作簿
func AnalyseSheets(path string) (*SheetsReport, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DescribeWorkbook(path, f)
}

// DescribeWorkbook 整理已打开工作簿
func DescribeWorkbook(path string, f *excelize.File) (*SheetsReport, error) {
	report := &SheetsReport{Path: path}
	for _, name := range f.GetSheetList() {
		sr := SheetReport{Name: name}
		dim, err := f.GetSheetDimension(name)
		if err != nil {
			return nil, fmt.Errorf("sheet %s: %w", name, err)
		}
		sr.Dimension = dim
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("sheet %s: %w", name, err)
		}
		sr.Rows = len(rows)

		tables, err := f.GetTables(name)
		if err != nil {
			return nil, fmt.Errorf("sheet %s: %w", name, err)
		}
		for _, t := range tables {
			sr.Tables = append(sr.Tables, TableInfo{Name: t.Name, Range: t.Range, Style: t.StyleName})
		}

		merged, err := f.GetMergeCells(name)
		if err != nil {
			return nil, fmt.Errorf("sheet %s: %w", name, err)
		}
		for _, m := range merged {
			sr.Merged = append(sr.Merged, m.GetStartAxis()+":"+m.GetEndAxis())
		}
		report.Sheets = append(report.Sheets, sr)
	}
	return report, nil
}

// Render 输出工作表清单
func (r *SheetsReport) Render(w io.Writer) {
	color.New(color.FgCyan, color.Bold).Fprintf(w, "%s\n", r.Path)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Sheet", "Dimension", "Rows", "Tables", "Merged"})
	for _, s := range r.Sheets {
		var tables []string
		for _, tb := range s.Tables {
			tables = append(tables, fmt.Sprintf("%s %s (%s)", tb.Name, tb.Range, tb.Style))
		}
		t.AppendRow(table.Row{s.Name, s.Dimension, s.Rows, strings.Join(tables, "\n"), strings.Join(s.Merged, ", ")})
	}
	t.Render()
}
