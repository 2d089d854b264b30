package summary

import "strings"

// Style carries the client-side presentation keys for a category label.
// Icon and Color are symbolic names resolved by the client's palette.
type Style struct {
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// styleRule maps a set of label keywords to a style. Rules are evaluated in
// order against the lower-cased label; the first match wins.
type styleRule struct {
	keywords []string
	style    Style
}

var styleRules = []styleRule{
	{[]string{"makan", "food"}, Style{"utensils", "orange"}},
	{[]string{"transport", "bensin"}, Style{"car", "purple"}},
	{[]string{"utilitas", "listrik", "air"}, Style{"zap", "yellow"}},
	{[]string{"operasional", "biaya"}, Style{"wrench", "blue"}},
	{[]string{"inventori", "inventaris", "stok", "perlengkapan"}, Style{"shopping-bag", "indigo"}},
	{[]string{"gaji", "salary"}, Style{"briefcase", "pink"}},
	{[]string{"sewa"}, Style{"home", "teal"}},
	{[]string{"pemasaran"}, Style{"smartphone", "rose"}},
	{[]string{"utang", "piutang"}, Style{"banknote", "cyan"}},
	{[]string{"pendapatan", "jual", "investasi"}, Style{"trending-up", "emerald"}},
}

// defaultStyle is the guaranteed fallback when no keyword matches.
var defaultStyle = Style{"layers", "slate"}

// StyleFor resolves a category label to a presentation style. The lookup is a
// pure substring match over the ordered rule list with a default fallback.
func StyleFor(category string) Style {
	normalized := strings.ToLower(category)
	for _, rule := range styleRules {
		for _, kw := range rule.keywords {
			if strings.Contains(normalized, kw) {
				return rule.style
			}
		}
	}
	return defaultStyle
}
