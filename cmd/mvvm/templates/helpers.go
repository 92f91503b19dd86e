package templates

import "strconv"

// KeyNames returns prefix0, prefix1, ... prefix(count-1).
func KeyNames(prefix string, count int) []string {
	names := make([]string, count)
	for i := range names {
		names[i] = prefix + strconv.Itoa(i)
	}
	return names
}
