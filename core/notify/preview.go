package notify

// PreviewMarker is appended to previews of text that was cut short.
const PreviewMarker = "..."

// Preview returns at most max runes of text, appending PreviewMarker only
// when something was actually cut off. Text at or under the limit is
// returned unchanged.
func Preview(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}

	return string(runes[:max]) + PreviewMarker
}
