// Package cli doctools 命令行：模板分析和本地渲染
package cli

import (
	"github.com/spf13/cobra"

	"github.com/openlabollioules/tools/pkg/config"
	"github.com/openlabollioules/tools/pkg/logger"
)

var (
	cfgFile string
	verbose bool
)

// NewRootCommand 创建根命令
func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "doctools",
		Short:         "Word / PowerPoint / Excel 模板分析和本地生成",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var files []string
			if cfgFile != "" {
				files = append(files, cfgFile)
			}
			if err := config.Init(files...); err != nil {
				return err
			}
			if verbose {
				config.Set("log.console", true)
				config.Set("log.level", "debug")
				logger.Init()
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "配置文件路径（默认 ./config.yaml）")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "输出详细日志")

	rootCmd.AddCommand(newAnalyseCommand())
	rootCmd.AddCommand(newRenderCommand())
	return rootCmd
}
