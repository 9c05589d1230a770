package runner

import (
	"context"
	"path/filepath"

	"github.com/dushixiang/ejpatch/pkg/textpatch"
	"github.com/fsnotify/fsnotify"
	"github.com/go-errors/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Watch 监听目标文件，启动时先执行一次，之后文件被写入或重新创建时重新执行对应补丁，直到 ctx 取消。
// 监听期间未匹配只记录警告，不会退出。
func (r *Runner) Watch(ctx context.Context, names ...string) error {
	tasks, err := r.Resolve(names...)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.WrapPrefix(err, "创建文件监听失败", 0)
	}
	defer watcher.Close()

	targets := make(map[string]Task)
	for _, task := range tasks {
		abs, err := filepath.Abs(filepath.Join(r.cfg.Root, task.Path))
		if err != nil {
			return errors.WrapPrefix(err, task.Path, 0)
		}
		targets[abs] = task
	}

	// 监听所在目录，文件被删除后重新创建也能收到事件
	dirs := make(map[string]struct{})
	for abs := range targets {
		dir := filepath.Dir(abs)
		if _, ok := dirs[dir]; ok {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return errors.WrapPrefix(err, "监听目录失败 "+dir, 0)
		}
		dirs[dir] = struct{}{}
	}

	// 记录最近一次处理过的内容，避免自身写入再次触发
	handled := make(map[string]string)
	for _, task := range tasks {
		r.watchApply(task, handled)
	}
	r.log.Info("开始监听", zap.Int("patches", len(tasks)))

	for {
		select {
		case <-ctx.Done():
			r.log.Info("停止监听")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			task, ok := targets[filepath.Clean(event.Name)]
			if !ok {
				continue
			}
			r.log.Debug("目标文件变更", zap.String("path", task.Path), zap.Stringer("op", event.Op))
			r.watchApply(task, handled)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.log.Warn("文件监听出错", zap.Error(err))
		}
	}
}

func (r *Runner) watchApply(task Task, handled map[string]string) {
	log := r.log.With(zap.String("patch", task.Patch.Name), zap.String("path", task.Path))

	content, err := afero.ReadFile(r.fs, task.Path)
	if err != nil {
		log.Warn("读取文件失败", zap.Error(err))
		return
	}
	if last, ok := handled[task.Path]; ok && last == string(content) {
		return
	}

	result, err := r.apply(task)
	switch {
	case err == nil && result.Changed() && !r.opts.DryRun:
		handled[task.Path] = result.After
	case textpatch.IsNoMatch(err):
		log.Warn("未找到匹配的内容，等待下次变更")
		handled[task.Path] = string(content)
	case err != nil:
		log.Error("补丁执行失败", zap.Error(err))
		handled[task.Path] = string(content)
	default:
		handled[task.Path] = string(content)
	}
}
