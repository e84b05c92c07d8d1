// Package categorize maps free-text item names to resale category labels.
package categorize

import "strings"

// Category labels. The set is closed; anything unmatched falls back to Other.
const (
	AVResale           = "A/V Resale"
	ChocolateResale    = "Chocolate Resale"
	CottonCandyResale  = "Cotton Candy Resale"
	SlushieResale      = "Slushie Resale"
	SnoKoneResale      = "SnoKone Resale"
	PopcornResale      = "Popcorn-Cheese-Donut Resale"
	DisposableResale   = "Disposable Resale"
	KwikCoverRound3036 = "KwikCover Round 30/36 Resale"
	KwikCoverRound4860 = "KwikCover Round 48/60 Resale"
	KwikCoverBanquet   = "KwikCover Banquet Resale"
	KwikCoverResale    = "KwikCover Resale"
	Other              = "Other"
)

// rule matches when the normalized name contains any of its keywords.
type rule struct {
	keywords []string
	label    string
}

// rules is evaluated top to bottom and the first match wins. Order is part
// of the contract: keyword sets overlap (the sized KwikCover rules vs. the
// generic one), so reordering changes results.
var rules = []rule{
	{[]string{"FOG", "JUICE", "BUBBLE JUICE"}, AVResale},
	{[]string{"CHOCOLATE"}, ChocolateResale},
	{[]string{"COTTON CANDY", "FLOSS SUGAR"}, CottonCandyResale},
	{[]string{"SLUSHIE", "SLUSH MIX"}, SlushieResale},
	{[]string{"SNO KONE", "SNOKONE", "SNO-KONE"}, SnoKoneResale},
	{[]string{"POPCORN", "CHEESE", "DONUT"}, PopcornResale},
	{[]string{"DISPOSABLE", "PLATES", "NAPKIN"}, DisposableResale},
	{[]string{"ROUND 30", "ROUND 36"}, KwikCoverRound3036},
	{[]string{"ROUND 48", "ROUND 60"}, KwikCoverRound4860},
	{[]string{"6 FT KWIK", "8 FT KWIK", "BANQUET"}, KwikCoverBanquet},
	{[]string{"KWIKCOVER", "KWIK COVER"}, KwikCoverResale},
}

// Categorize returns the category label for a common name. Matching is
// case-insensitive and total: empty or unmatched input yields Other. Safe
// for concurrent use.
func Categorize(commonName string) string {
	name := strings.ToUpper(commonName)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(name, kw) {
				return r.label
			}
		}
	}
	return Other
}

// Labels returns every label the categorizer can produce, in rule order,
// with Other last.
func Labels() []string {
	out := make([]string, 0, len(rules)+1)
	for _, r := range rules {
		out = append(out, r.label)
	}
	return append(out, Other)
}
