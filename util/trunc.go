package util

// TruncateRight keeps at most max runes of text.
func TruncateRight(text string, max int) string {
	return TruncateRightWithSuffix(text, max, "")
}

// TruncateRightWithSuffix keeps at most max runes of text, appending suffix only if
// truncation actually happened.
func TruncateRightWithSuffix(text string, max int, suffix string) string {
	if max <= 0 {
		return suffix
	}

	n := 0
	for i := range text {
		if n == max {
			return text[:i] + suffix
		}
		n++
	}

	return text
}
