package textpatch

import (
	"github.com/go-errors/errors"
	"github.com/spf13/afero"
)

// Options 文件级替换选项
type Options struct {
	// DryRun 只计算结果，不写回文件
	DryRun bool
}

// PatchFile 读取 path，执行规则 d，成功后写回同一路径。
// 读取、未匹配、多处匹配等错误都发生在写入之前，文件保持原样。
func PatchFile(fs afero.Fs, path string, d Directive, opts Options) (Result, error) {
	info, err := fs.Stat(path)
	if err != nil {
		return Result{Name: d.Name, Path: path}, errors.WrapPrefix(err, "读取文件失败", 0)
	}

	content, err := afero.ReadFile(fs, path)
	if err != nil {
		return Result{Name: d.Name, Path: path}, errors.WrapPrefix(err, "读取文件失败", 0)
	}

	result, err := Apply(string(content), d)
	result.Path = path
	if err != nil {
		return result, errors.WrapPrefix(err, path, 0)
	}

	if opts.DryRun || !result.Changed() {
		return result, nil
	}

	if err := afero.WriteFile(fs, path, []byte(result.After), info.Mode().Perm()); err != nil {
		return result, errors.WrapPrefix(err, "写入文件失败", 0)
	}
	return result, nil
}
