// Package emoji renders an emotion Vector as a short emoji string for chat
// output. The dominant channel picks the main emoji by strength; strongly
// felt secondary channels contribute up to two more.
package emoji

import (
	"strings"

	"github.com/FujiiNoritsugu/go-haptic/pkg/emotion"
)

// maxExtra caps how many mixed-emotion emojis are appended.
const maxExtra = 2

// emojiTable maps each channel to six emojis ordered by strength (value 1..5
// indexes the table; value 5 and above share the strongest entries).
var emojiTable = map[emotion.Channel][]string{
	emotion.Joy:   {"😊", "😄", "😃", "😁", "🥰", "😍"},
	emotion.Fun:   {"🎉", "🎊", "✨", "🌟", "🎈", "🎯"},
	emotion.Anger: {"😠", "😡", "💢", "😤", "🔥", "⚡"},
	emotion.Sad:   {"😢", "😭", "💔", "😞", "😔", "🥺"},
}

// For renders the emoji string for a Vector. An all-zero vector yields "".
func For(v emotion.Vector) string {
	dominant, value := v.Dominant()
	if value == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(pick(dominant, value))

	extra := 0
	for _, c := range v.Mixed() {
		if extra >= maxExtra {
			break
		}
		b.WriteString(pick(c, v.Value(c)))
		extra++
	}
	return b.String()
}

// pick selects the emoji for a channel at a given strength.
func pick(c emotion.Channel, value int) string {
	table := emojiTable[c]
	idx := value - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(table) {
		idx = len(table) - 1
	}
	return table[idx]
}
