package patches

import (
	"regexp"

	"github.com/dushixiang/ejpatch/pkg/textpatch"
)

const (
	AdapterInfoBoxName = "adapter-info-box"
	AdapterInfoBoxPath = "src/pages/settings/SettingsAdapterPage.tsx"

	adapterInfoBoxMarker = `<div className="mt-4 bg-blue-50 border border-blue-200 rounded-lg p-3">`
)

// adapterInfoBoxPattern 从起始标签非贪婪匹配到最近的 </div>，并吞掉其后的空白和一个换行
var adapterInfoBoxPattern = regexp.MustCompile(
	`(?s)` + regexp.QuoteMeta(adapterInfoBoxMarker) + `.*?</div>[ \t]*(?:\r?\n)?`,
)

// adapterInfoBoxFragment 新的 PPC 连接说明，换行在替换时按文件风格统一
const adapterInfoBoxFragment = `<div className="mt-4 bg-blue-50 border border-blue-200 rounded-lg p-4 space-y-3">
            <h4 className="font-medium text-blue-900 text-sm">Collegamento PPC</h4>
            <p className="text-xs text-blue-800">
              Configura il PPC per connettersi all'adapter standalone:
              <code className="ml-1 bg-blue-100 px-1 rounded">{preferredMasUrl}</code>
            </p>
            <ul className="text-xs text-blue-800 space-y-1 list-disc pl-4">
              <li>
                Health check: <code className="bg-blue-100 px-1 rounded">GET {preferredMasUrl}/health</code>
              </li>
              <li>
                API Items: <code className="bg-blue-100 px-1 rounded">GET {preferredMasUrl}/api/items</code>
              </li>
              <li>
                API Lists: <code className="bg-blue-100 px-1 rounded">GET {preferredMasUrl}/api/lists</code>
              </li>
              <li>
                API Giacenze: <code className="bg-blue-100 px-1 rounded">GET {preferredMasUrl}/api/stock</code>
              </li>
              {standaloneStatus.network && (
                <li className="text-green-700 font-medium">
                  IP rilevato automaticamente dalla scheda di rete: {standaloneStatus.network.localIP}
                </li>
              )}
              {externalMasHost && (
                <li className="text-blue-700 font-medium">
                  Override manuale: {externalMasHost} punta a {preferredMasUrl}
                </li>
              )}
            </ul>
          </div>
`

// AdapterInfoBox 替换设置页中的 PPC 信息框。newline 为 Auto 时沿用文件原有换行风格
func AdapterInfoBox(newline textpatch.Newline) textpatch.Directive {
	return textpatch.Directive{
		Name:             AdapterInfoBoxName,
		Pattern:          adapterInfoBoxPattern,
		Replacement:      adapterInfoBoxFragment,
		Literal:          true,
		FirstMatchOnly:   true,
		PreserveNewlines: true,
		Newline:          newline,
	}
}
