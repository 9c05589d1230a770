package textpatch

import (
	"regexp"
	"strings"

	"github.com/go-errors/errors"
	"github.com/pmezard/go-difflib/difflib"
)

// Directive 一条替换规则：在内容中定位 Pattern 并替换为 Replacement，至多替换一次
type Directive struct {
	Name    string
	Pattern *regexp.Regexp
	// Replacement 默认按正则模板展开（支持 ${name}），Literal 为 true 时原样插入
	Replacement string
	Literal     bool
	// AppliedMarker 未匹配但内容中已包含该标记时，视为已经打过补丁
	AppliedMarker string
	// FirstMatchOnly 存在多处候选时只替换第一处，否则报错
	FirstMatchOnly bool
	// PreserveNewlines 将替换内容的换行统一为文件原有风格
	PreserveNewlines bool
	// Newline 强制指定换行风格，Auto 表示按文件内容检测
	Newline Newline
}

// Validate 校验规则是否完整
func (d Directive) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return errors.Errorf("缺少名称: %w", ErrInvalidDirective)
	}
	if d.Pattern == nil {
		return errors.Errorf("%s: 缺少匹配模式: %w", d.Name, ErrInvalidDirective)
	}
	return nil
}

// Result 一次替换的结果
type Result struct {
	Name string
	Path string
	// Candidates 匹配到的候选区域数量
	Candidates     int
	Replaced       bool
	AlreadyApplied bool
	Newline        Newline
	Before         string
	After          string
}

// Changed 内容是否发生变化
func (r Result) Changed() bool {
	return r.Replaced && r.Before != r.After
}

// Diff 生成替换前后的统一格式差异
func (r Result) Diff(context int) (string, error) {
	name := r.Path
	if name == "" {
		name = r.Name
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(r.Before),
		B:        difflib.SplitLines(r.After),
		FromFile: name,
		ToFile:   name,
		Context:  context,
	})
}

// Apply 在 content 上执行规则 d。
// 未匹配时返回 ErrNoMatch（已打过补丁除外），此时 After 与 Before 相同。
func Apply(content string, d Directive) (Result, error) {
	if err := d.Validate(); err != nil {
		return Result{}, err
	}

	result := Result{
		Name:    d.Name,
		Newline: DetectNewline(content),
		Before:  content,
		After:   content,
	}
	if d.Newline != Auto {
		result.Newline = d.Newline
	}

	matches := d.Pattern.FindAllStringSubmatchIndex(content, -1)
	result.Candidates = len(matches)

	if len(matches) == 0 {
		if d.AppliedMarker != "" && strings.Contains(content, d.AppliedMarker) {
			result.AlreadyApplied = true
			return result, nil
		}
		return result, errors.Errorf("%s: %w", d.Name, ErrNoMatch)
	}
	if len(matches) > 1 && !d.FirstMatchOnly {
		return result, errors.Errorf("%s: 共 %d 处: %w", d.Name, len(matches), ErrAmbiguousMatch)
	}

	loc := matches[0]
	replacement := d.Replacement
	if !d.Literal {
		replacement = string(d.Pattern.ExpandString(nil, d.Replacement, content, loc))
	}
	if d.PreserveNewlines {
		replacement = result.Newline.Normalize(replacement)
	}

	result.After = content[:loc[0]] + replacement + content[loc[1]:]
	result.Replaced = true
	return result, nil
}
