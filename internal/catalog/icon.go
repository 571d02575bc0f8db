package catalog

import "strings"

// DefaultCategoryIcon 어떤 규칙에도 해당하지 않는 카테고리의 아이콘
const DefaultCategoryIcon = "📋"

var categoryIcons = map[string]string{
	"Papel Higiénico": "🧻",
	"Papel":           "📄",
	"Stretch Film":    "🎞️",
	"Tubos de Cartón": "🔲",
	"Empaques":        "📦",
	"Toallas":         "🗞️",
	"Servilletas":     "🥢",
}

// categoryIconRules 정확히 일치하는 항목이 없을 때 순서대로 검사하는 부분 일치 규칙
var categoryIconRules = []struct {
	keywords []string
	icon     string
}{
	{[]string{"papel"}, "📄"},
	{[]string{"stretch", "film"}, "🎞️"},
	{[]string{"tubo", "cartón"}, "🔲"},
	{[]string{"empaque", "caja"}, "📦"},
	{[]string{"toalla"}, "🗞️"},
	{[]string{"servilleta"}, "🥢"},
}

// CategoryIcon 카테고리 이름에 맞는 아이콘을 반환합니다.
func CategoryIcon(category string) string {
	if icon, ok := categoryIcons[category]; ok {
		return icon
	}

	lower := strings.ToLower(category)
	for _, rule := range categoryIconRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.icon
			}
		}
	}

	return DefaultCategoryIcon
}
