package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/dushixiang/ejpatch/internal/patches"
	"github.com/dushixiang/ejpatch/internal/runner"
	"github.com/spf13/cobra"
)

func newItemsCommand(a *app) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "items",
		Short: "商品接口返回值字段映射",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, runner.Options{
				Paths: map[string]string{patches.ItemsFieldMappingName: path},
			}, patches.ItemsFieldMappingName)
		},
	}
	cmd.Flags().StringVarP(&path, "path", "p", "", "目标文件（默认 "+patches.ItemsFieldMappingPath+"）")
	return cmd
}

func newAdapterPageCommand(a *app) *cobra.Command {
	var (
		path    string
		newline string
	)

	cmd := &cobra.Command{
		Use:   "adapter-page",
		Short: "替换适配器设置页中的 PPC 信息框",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			nl, err := newlineFlag(newline)
			if err != nil {
				return err
			}
			return a.run(cmd, runner.Options{
				Newline: nl,
				Paths:   map[string]string{patches.AdapterInfoBoxName: path},
			}, patches.AdapterInfoBoxName)
		},
	}
	cmd.Flags().StringVarP(&path, "path", "p", "", "目标文件（默认 "+patches.AdapterInfoBoxPath+"）")
	cmd.Flags().StringVar(&newline, "newline", "auto", "插入内容的换行风格：auto、lf、crlf")
	return cmd
}

func newAllCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "执行所有已启用的补丁",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, runner.Options{})
		},
	}
}

func newListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "列出所有补丁",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPATH\tENABLED\tDESCRIPTION")
			for _, p := range patches.All() {
				pc, err := a.cfg.Patch(p.Name)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\t%t\t%s\n", p.Name, pc.Path, pc.IsEnabled(), p.Description)
			}
			return w.Flush()
		},
	}
}

func newWatchCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "watch [patch...]",
		Short:     "监听目标文件，变更后自动重新打补丁",
		ValidArgs: patches.Names(),
		Args:      cobra.OnlyValidArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runner(runner.Options{}).Watch(cmd.Context(), args...)
		},
	}
}
