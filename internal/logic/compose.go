package logic

import "strings"

// Compose joins the selected prompt texts with single spaces, in order.
// Nothing else is normalized: case, punctuation and repeated words pass through.
func Compose(selectedTexts []string) string {
	return strings.Join(selectedTexts, " ")
}
