package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dushixiang/ejpatch/internal/config"
	"github.com/dushixiang/ejpatch/internal/logger"
	"github.com/dushixiang/ejpatch/internal/runner"
	"github.com/dushixiang/ejpatch/pkg/textpatch"
	"github.com/go-errors/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type app struct {
	configFile string
	root       string
	logLevel   string
	dryRun     bool
	diff       bool

	cfg *config.Config
	log *zap.Logger
	fs  afero.Fs
}

func newRootCommand() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "ejpatch",
		Short: "EjLog 前端源码维护补丁",
		Long: "对 EjLog 前端项目的指定源文件执行基于模式匹配的文本替换。\n" +
			"未找到匹配内容时直接失败，不会写入文件。",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.ErrOrStderr())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.configFile, "config", "c", "", "配置文件路径（默认 ./"+config.DefaultFile+"，不存在时使用内置默认值）")
	flags.StringVarP(&a.root, "root", "r", "", "前端项目根目录，覆盖配置文件中的 root")
	flags.StringVar(&a.logLevel, "log-level", "", "日志级别：debug、info、warn、error")
	flags.BoolVar(&a.dryRun, "dry-run", false, "只检查匹配结果，不写入文件")
	flags.BoolVar(&a.diff, "diff", false, "输出替换前后的差异")

	cmd.AddCommand(
		newItemsCommand(a),
		newAdapterPageCommand(a),
		newAllCommand(a),
		newListCommand(a),
		newWatchCommand(a),
	)
	return cmd
}

func (a *app) init(stderr io.Writer) error {
	cfg, err := config.Load(afero.NewOsFs(), a.configFile)
	if err != nil {
		return err
	}
	if a.root != "" {
		cfg.Root = a.root
	}
	cfg.SetLevel(a.logLevel)
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.NewWithWriter(cfg.Log, stderr)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = log
	a.fs = afero.NewBasePathFs(afero.NewOsFs(), cfg.Root)
	return nil
}

func (a *app) runner(opts runner.Options) *runner.Runner {
	opts.DryRun = a.dryRun
	return runner.New(a.fs, a.cfg, a.log, opts)
}

// run 执行补丁并输出结果，失败的补丁不输出成功信息
func (a *app) run(cmd *cobra.Command, opts runner.Options, names ...string) error {
	results, err := a.runner(opts).Run(cmd.Context(), names...)

	out := cmd.OutOrStdout()
	for _, result := range results {
		switch {
		case result.AlreadyApplied:
			fmt.Fprintf(out, "- 补丁 %s 已存在，跳过: %s\n", result.Name, result.Path)
		case !result.Replaced:
			continue
		case a.dryRun:
			fmt.Fprintf(out, "✓ [试运行] 补丁 %s 可以应用到 %s（换行: %s）\n", result.Name, result.Path, result.Newline)
		default:
			fmt.Fprintf(out, "✓ 成功应用补丁 %s 到 %s\n", result.Name, result.Path)
		}

		if a.diff && result.Changed() {
			diff, derr := result.Diff(3)
			if derr != nil {
				return derr
			}
			fmt.Fprint(out, diff)
		}
	}
	return err
}

func newlineFlag(raw string) (textpatch.Newline, error) {
	newline := textpatch.ParseNewline(raw)
	if raw = strings.TrimSpace(raw); newline == textpatch.Auto && raw != "" && !strings.EqualFold(raw, textpatch.Auto.String()) {
		return textpatch.Auto, errors.Errorf("无效的换行风格 %q，可选 auto、lf、crlf", raw)
	}
	return newline, nil
}
