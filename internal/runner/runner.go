package runner

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/dushixiang/ejpatch/internal/config"
	"github.com/dushixiang/ejpatch/internal/patches"
	"github.com/dushixiang/ejpatch/pkg/textpatch"
	"github.com/go-errors/errors"
	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Options 运行选项
type Options struct {
	DryRun bool
	// Newline 强制插入内容的换行风格，仅对需要保持换行的补丁生效
	Newline textpatch.Newline
	// Paths 按补丁名覆盖目标路径
	Paths map[string]string
}

// Task 解析后的待执行补丁
type Task struct {
	Patch patches.Patch
	Path  string
}

// Runner 按配置执行补丁，fs 的根目录即项目根目录
type Runner struct {
	fs   afero.Fs
	cfg  *config.Config
	log  *zap.Logger
	opts Options
}

func New(fs afero.Fs, cfg *config.Config, log *zap.Logger, opts Options) *Runner {
	return &Runner{
		fs:   fs,
		cfg:  cfg,
		log:  log,
		opts: opts,
	}
}

// Resolve 解析补丁名称。未指定名称时返回所有已启用的补丁
func (r *Runner) Resolve(names ...string) ([]Task, error) {
	explicit := len(names) > 0
	if !explicit {
		names = patches.Names()
	}

	var tasks []Task
	seen := make(map[string]string)
	for _, name := range names {
		p, ok := patches.Lookup(name)
		if !ok {
			return nil, errors.Errorf("未知补丁 %s", name)
		}
		pc, err := r.cfg.Patch(name)
		if err != nil {
			return nil, err
		}
		if !explicit && !pc.IsEnabled() {
			r.log.Debug("补丁已禁用，跳过", zap.String("patch", name))
			continue
		}

		path := pc.Path
		if override, ok := r.opts.Paths[name]; ok && override != "" {
			path = override
		}
		key := filepath.Clean(path)
		if other, ok := seen[key]; ok {
			return nil, errors.Errorf("补丁 %s 与 %s 指向同一文件 %s", other, name, key)
		}
		seen[key] = name

		tasks = append(tasks, Task{Patch: p, Path: path})
	}
	return tasks, nil
}

// Run 执行补丁。各补丁修改不同文件，并发执行；结果按补丁名排序，失败的补丁也会返回结果
func (r *Runner) Run(ctx context.Context, names ...string) ([]textpatch.Result, error) {
	tasks, err := r.Resolve(names...)
	if err != nil {
		return nil, err
	}

	results := make([]textpatch.Result, len(tasks))
	p := pool.New().WithErrors().WithContext(ctx)
	for i, task := range tasks {
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				results[i] = textpatch.Result{Name: task.Patch.Name, Path: task.Path}
				return err
			}
			result, err := r.apply(task)
			results[i] = result
			if err != nil {
				r.log.Error("补丁执行失败",
					zap.String("patch", task.Patch.Name),
					zap.String("path", task.Path),
					zap.Int("candidates", result.Candidates),
					zap.Error(err),
				)
			}
			return err
		})
	}
	err = p.Wait()

	sort.Slice(results, func(i, j int) bool {
		return results[i].Name < results[j].Name
	})
	return results, err
}

func (r *Runner) apply(task Task) (textpatch.Result, error) {
	log := r.log.With(zap.String("patch", task.Patch.Name), zap.String("path", task.Path))

	directive := task.Patch.Directive(r.opts.Newline)
	result, err := textpatch.PatchFile(r.fs, task.Path, directive, textpatch.Options{DryRun: r.opts.DryRun})
	if err != nil {
		return result, err
	}

	switch {
	case result.AlreadyApplied:
		log.Info("补丁已存在，跳过")
	case r.opts.DryRun:
		log.Info("试运行，未写入文件", zap.Int("candidates", result.Candidates), zap.Stringer("newline", result.Newline))
	default:
		log.Info("补丁执行成功", zap.Int("candidates", result.Candidates), zap.Stringer("newline", result.Newline))
	}
	if result.Candidates > 1 {
		log.Warn("存在多处候选区域，仅替换了第一处", zap.Int("candidates", result.Candidates))
	}
	return result, nil
}
