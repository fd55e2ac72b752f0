package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/openlabollioules/tools/internal/analyse"
	"github.com/openlabollioules/tools/internal/generator"
)

func newAnalyseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyse",
		Short: "分析 .pptx / .docx / .xlsx 模板",
	}
	cmd.AddCommand(newSlidesCommand())
	cmd.AddCommand(newWordsCommand())
	cmd.AddCommand(newSheetsCommand())
	return cmd
}

func newSlidesCommand() *cobra.Command {
	var (
		all     bool
		suggest bool
		format  string
		asJSON  bool
	)
	cmd := &cobra.Command{
		Use:   "slides [paths...]",
		Short: "列出演示文稿模板的版式和形状",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := generator.LoadPptxConfig()
			paths := args
			if all {
				paths = append(paths, analyse.TemplateMatrix(cfg)...)
			}
			if len(paths) == 0 {
				return fmt.Errorf("no template given, pass paths or --all")
			}
			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range paths {
				report, err := analyse.AnalyseSlides(path)
				if err != nil {
					color.New(color.FgRed).Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
					failed++
					continue
				}
				switch {
				case suggest:
					table := analyse.SuggestLayouts(report, cfg.LayoutFor(path))
					if err := analyse.WriteSuggestion(out, path, table, format); err != nil {
						return err
					}
				case asJSON:
					if err := writeJSON(out, report); err != nil {
						return err
					}
				default:
					report.Render(out)
				}
			}
			if failed == len(paths) {
				return fmt.Errorf("no template could be read")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "分析全部语言和密级组合的模板")
	cmd.Flags().BoolVar(&suggest, "suggest", false, "根据版式名称输出版式表配置片段")
	cmd.Flags().StringVar(&format, "format", analyse.FormatYAML, "配置片段格式: yaml|toml|json")
	cmd.Flags().BoolVar(&asJSON, "json", false, "以 JSON 输出报告")
	return cmd
}

func newWordsCommand() *cobra.Command {
	var (
		check  bool
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "words <path>",
		Short: "列出 Word 模板的段落、样式和图形",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, doc, err := analyse.AnalyseWords(args[0])
			if err != nil {
				return err
			}
			if check {
				report.Checks = analyse.CheckStyles(doc, generator.LoadDocxConfig().Styles)
			}
			if asJSON {
				if err := writeJSON(cmd.OutOrStdout(), report); err != nil {
					return err
				}
			} else {
				report.Render(cmd.OutOrStdout())
			}
			if n := report.Missing(); n > 0 {
				return fmt.Errorf("%d configured styles missing from %s", n, args[0])
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "检查配置的角色样式是否存在")
	cmd.Flags().BoolVar(&asJSON, "json", false, "以 JSON 输出报告")
	return cmd
}

func newSheetsCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "sheets <path>",
		Short: "列出工作簿的工作表、表格和合并区域",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := analyse.AnalyseSheets(args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			report.Render(cmd.OutOrStdout())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "以 JSON 输出报告")
	return cmd
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// readInput 读取请求文件，"-" 表示标准输入
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}
