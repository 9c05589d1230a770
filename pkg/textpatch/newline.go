package textpatch

import "strings"

// Newline 换行风格
type Newline int

const (
	// Auto 根据文件内容自动检测
	Auto Newline = iota
	LF
	CRLF
)

func (n Newline) String() string {
	switch n {
	case LF:
		return "lf"
	case CRLF:
		return "crlf"
	default:
		return "auto"
	}
}

// Sequence 返回换行符本身，Auto 按 LF 处理
func (n Newline) Sequence() string {
	if n == CRLF {
		return "\r\n"
	}
	return "\n"
}

// DetectNewline 检测内容的换行风格：出现 \r\n 即视为 CRLF
func DetectNewline(content string) Newline {
	if strings.Contains(content, "\r\n") {
		return CRLF
	}
	return LF
}

// Normalize 将 s 中所有换行统一为 n 的风格
func (n Newline) Normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	if n == CRLF {
		return strings.ReplaceAll(s, "\n", "\r\n")
	}
	return s
}

// ParseNewline 解析命令行传入的换行风格，无法识别时返回 Auto
func ParseNewline(raw string) Newline {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "lf":
		return LF
	case "crlf":
		return CRLF
	}
	return Auto
}
