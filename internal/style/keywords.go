package style

import "strings"

// KeywordDiff splits two comma separated keyword strings into what a
// suggestion adds, drops, and keeps.
type KeywordDiff struct {
	Added     []string `json:"added"`
	Removed   []string `json:"removed"`
	Unchanged []string `json:"unchanged"`
}

// SplitKeywords splits on commas, trims, drops blanks, and keeps the first
// occurrence of each keyword.
func SplitKeywords(s string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, kw := range strings.Split(s, ",") {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
	}
	return out
}

func DiffKeywords(current, suggested string) KeywordDiff {
	cur := SplitKeywords(current)
	sug := SplitKeywords(suggested)
	curSet := make(map[string]struct{}, len(cur))
	for _, kw := range cur {
		curSet[kw] = struct{}{}
	}
	sugSet := make(map[string]struct{}, len(sug))
	for _, kw := range sug {
		sugSet[kw] = struct{}{}
	}

	var d KeywordDiff
	for _, kw := range sug {
		if _, ok := curSet[kw]; !ok {
			d.Added = append(d.Added, kw)
		}
	}
	for _, kw := range cur {
		if _, ok := sugSet[kw]; ok {
			d.Unchanged = append(d.Unchanged, kw)
		} else {
			d.Removed = append(d.Removed, kw)
		}
	}
	return d
}
