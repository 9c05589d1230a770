package textpatch

import "github.com/go-errors/errors"

var (
	ErrNoMatch          = errors.New("未找到匹配的内容")
	ErrAmbiguousMatch   = errors.New("匹配到多处内容")
	ErrInvalidDirective = errors.New("无效的替换规则")
)

// IsNoMatch 判断是否为未匹配错误
func IsNoMatch(err error) bool {
	return errors.Is(err, ErrNoMatch)
}

// IsAmbiguous 判断是否为多处匹配错误
func IsAmbiguous(err error) bool {
	return errors.Is(err, ErrAmbiguousMatch)
}
