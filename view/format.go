package view

import "strconv"

var countSuffixes = []string{"", "K", "M", "G", "T", "P", "E", "Z", "Y"}

// CountStr formats a count as a short string with a base-1024 unit suffix.
// Zero renders as the empty string so that columns can use "" for values
// that have not been computed yet. The reduction threshold is 1200 rather
// than 1024 so counts keep three digits just past each unit boundary
// (1153 stays "1153" instead of collapsing to "1K").
func CountStr(v uint64) string {
	if v == 0 {
		return ""
	}
	i := 0
	for v >= 1200 && i < len(countSuffixes)-1 {
		v >>= 10
		i++
	}
	return strconv.FormatUint(v, 10) + countSuffixes[i]
}
