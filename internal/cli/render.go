package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/openlabollioules/tools/internal/event"
	"github.com/openlabollioules/tools/internal/generator"
	"github.com/openlabollioules/tools/pkg/logger"
)

// printer 把状态事件打印到终端
type printer struct {
	w io.Writer
}

func (p printer) Emit(_ context.Context, e event.Event) {
	c := color.New(color.FgBlue)
	switch e.Data.Status {
	case event.StatusComplete:
		c = color.New(color.FgGreen)
	case event.StatusError:
		c = color.New(color.FgRed, color.Bold)
	}
	c.Fprintf(p.w, "[%s] %s\n", e.Data.Status, e.Data.Description)
}

func newRenderCommand() *cobra.Command {
	var (
		input  string
		outDir string
		author string
	)
	cmd := &cobra.Command{
		Use:       "render docx|pptx|xlsx|file",
		Short:     "在本地生成文档，不上传",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"docx", "pptx", "xlsx", "file"},
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, input)
			if err != nil {
				return err
			}
			em := printer{w: cmd.ErrOrStderr()}
			path, err := render(cmd.Context(), args[0], data, outDir, author, em)
			if err != nil {
				em.Emit(cmd.Context(), event.Failure(err))
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "-", "请求 JSON 文件，- 为标准输入")
	cmd.Flags().StringVarP(&outDir, "output", "o", ".", "输出目录")
	cmd.Flags().StringVar(&author, "author", "", "演示文稿作者")
	return cmd
}

func render(ctx context.Context, kind string, data []byte, outDir, author string, em event.Emitter) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	log := logger.GetLogger()
	switch kind {
	case "docx":
		var req generator.DocxRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return "", fmt.Errorf("parse request: %w", err)
		}
		return generator.AssembleDocx(ctx, req, generator.LoadDocxConfig(), outDir, em, log)
	case "pptx":
		var req generator.PptxRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return "", fmt.Errorf("parse request: %w", err)
		}
		return generator.AssemblePptx(ctx, req, generator.LoadPptxConfig(), author, time.Now(), outDir, em, log)
	case "xlsx":
		var req generator.XlsxRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return "", fmt.Errorf("parse request: %w", err)
		}
		return generator.AssembleXlsx(ctx, req, generator.LoadXlsxConfig(), outDir, em, log)
	case "file":
		var req generator.FileRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return "", fmt.Errorf("parse request: %w", err)
		}
		return generator.AssembleFile(ctx, req, outDir, em, log)
	default:
		return "", fmt.Errorf("unknown document kind: %s", kind)
	}
}
