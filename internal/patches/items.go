package patches

import (
	"regexp"
	"strings"

	"github.com/dushixiang/ejpatch/pkg/textpatch"
	"github.com/valyala/fasttemplate"
)

const (
	ItemsFieldMappingName = "items-field-mapping"
	ItemsFieldMappingPath = "src/services/api/items.js"

	// itemsAppliedMarker 替换后的代码块特征
	itemsAppliedMarker = "const rawData = await"
)

// itemsStatementPattern 只匹配商品列表接口 `const response = await xxx.get('/items', ...); return response.data;`，
// 单个商品等其他 /items/... 请求不受影响
var itemsStatementPattern = regexp.MustCompile(
	`(?m)^(?P<indent>[ \t]*)const response = await (?P<call>[\w.]+\.get\(\s*['"]/items['"]\s*(?:,[^;]*)?\));\s*return response\.data;`,
)

// FieldMapping 后端字段到前端字段的映射
type FieldMapping struct {
	From string
	To   string
	// BoolToInt true→1, false→0
	BoolToInt bool
}

// ItemFieldMappings 后端英文字段名到前端意大利语字段名，一一对应
var ItemFieldMappings = []FieldMapping{
	{From: "code", To: "codice"},
	{From: "description", To: "descrizione"},
	{From: "shortDescription", To: "descrizioneBreve"},
	{From: "barcode", To: "barcode"},
	{From: "measurementUnit", To: "um"},
	{From: "weight", To: "peso"},
	{From: "minimumStock", To: "giacenzaMinima"},
	{From: "height", To: "altezza"},
	{From: "width", To: "larghezza"},
	{From: "depth", To: "profondita"},
	{From: "unitPrice", To: "prezzoUnitario"},
	{From: "itemTypeManagement", To: "tipoGestioneArticolo"},
	{From: "itemCategory", To: "categoriaDesc"},
	{From: "fifoRangeDays", To: "fifoRangeDays"},
	{From: "inStock", To: "giacenza", BoolToInt: true},
	{From: "understock", To: "sottoscorta"},
	{From: "itemTypeBatch", To: "tipoBatch"},
	{From: "itemTypeSerialNumber", To: "tipoSeriale"},
}

// ItemLegacyFields 同时以原字段名保留，兼容旧页面
var ItemLegacyFields = []string{
	"id",
	"code",
	"description",
	"shortDescription",
	"barcode",
	"measurementUnit",
	"inStock",
	"understock",
	"itemCategory",
}

const itemsBlockTemplate = `{{indent}}const rawData = await {{call}};
{{indent}}const backendData = rawData.data || {};
{{indent}}return {
{{indent}}  result: backendData.result,
{{indent}}  message: backendData.message,
{{indent}}  recordNumber: backendData.recordNumber ?? 0,
{{indent}}  exported: (backendData.exported || []).map((item) => ({
{{renamed}}{{indent}}    // campi originali mantenuti per compatibilità
{{legacy}}{{indent}}  })),
{{indent}}};`

// itemsReplacement 由映射表生成替换模板，${indent} 与 ${call} 在替换时展开
func itemsReplacement() string {
	const indent = "${indent}"

	var renamed strings.Builder
	for _, m := range ItemFieldMappings {
		renamed.WriteString(indent + "    " + m.To + ": item." + m.From)
		if m.BoolToInt {
			renamed.WriteString(" ? 1 : 0")
		}
		renamed.WriteString(",\n")
	}

	var legacy strings.Builder
	for _, field := range ItemLegacyFields {
		legacy.WriteString(indent + "    " + field + ": item." + field + ",\n")
	}

	return fasttemplate.ExecuteString(itemsBlockTemplate, "{{", "}}", map[string]interface{}{
		"indent":  indent,
		"call":    "${call}",
		"renamed": renamed.String(),
		"legacy":  legacy.String(),
	})
}

// ItemsFieldMapping 将商品接口的直接返回改写为字段映射
func ItemsFieldMapping() textpatch.Directive {
	return textpatch.Directive{
		Name:             ItemsFieldMappingName,
		Pattern:          itemsStatementPattern,
		Replacement:      itemsReplacement(),
		AppliedMarker:    itemsAppliedMarker,
		PreserveNewlines: true,
	}
}
