package patches

import (
	"sort"

	"github.com/dushixiang/ejpatch/pkg/textpatch"
)

// Patch 一个可执行的补丁
type Patch struct {
	Name        string
	Description string
	// DefaultPath 相对于项目根目录的默认目标文件
	DefaultPath string
	// Directive 按换行风格构造替换规则，只有需要保持换行的补丁才会使用该参数
	Directive func(newline textpatch.Newline) textpatch.Directive
}

var registry = map[string]Patch{
	ItemsFieldMappingName: {
		Name:        ItemsFieldMappingName,
		Description: "商品接口返回值字段映射（英文 → 意大利语）",
		DefaultPath: ItemsFieldMappingPath,
		Directive: func(textpatch.Newline) textpatch.Directive {
			return ItemsFieldMapping()
		},
	},
	AdapterInfoBoxName: {
		Name:        AdapterInfoBoxName,
		Description: "替换适配器设置页中的 PPC 信息框",
		DefaultPath: AdapterInfoBoxPath,
		Directive:   AdapterInfoBox,
	},
}

// Lookup 按名称查找补丁
func Lookup(name string) (Patch, bool) {
	p, ok := registry[name]
	return p, ok
}

// All 返回所有补丁，按名称排序
func All() []Patch {
	items := make([]Patch, 0, len(registry))
	for _, p := range registry {
		items = append(items, p)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Name < items[j].Name
	})
	return items
}

// Names 返回所有补丁名称
func Names() []string {
	var names []string
	for _, p := range All() {
		names = append(names, p.Name)
	}
	return names
}
