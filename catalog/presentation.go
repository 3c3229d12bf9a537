// Package catalog holds the pure presentation rules shared by every
// renderer: identifier decoration, seat availability and list filtering.
package catalog

import (
	"unicode/utf16"

	"github.com/lucasb-eyer/go-colorful"
)

var eventEmojis = [...]string{"🎸", "🚀", "🎨", "🎭", "💻", "🎤", "🌟", "🏆", "🎯", "🎪", "🎓", "🌊"}

const (
	emojiMultiplier = 31
	hueMultiplier   = 17

	hueSaturation = 0.55
	hueValue      = 0.85
)

// Emoji returns the decorative emoji for an identifier. The same id always
// maps to the same emoji.
func Emoji(id string) string {
	return eventEmojis[positiveMod(hashID(id, emojiMultiplier), len(eventEmojis))]
}

// Hue returns a hue angle in [0, 360) for an identifier. It uses a different
// multiplier than Emoji so hue and emoji do not move together.
func Hue(id string) int {
	return positiveMod(hashID(id, hueMultiplier), 360)
}

// HueColor returns the hex colour used to tint an identifier's banner.
func HueColor(id string) string {
	return colorful.Hsv(float64(Hue(id)), hueSaturation, hueValue).Hex()
}

// hashID folds the first UTF-16 code unit of every code point into a 32-bit
// accumulator. Overflow wraps.
func hashID(id string, multiplier int32) int32 {
	var h int32
	for _, r := range id {
		unit := r
		if r >= 0x10000 {
			unit, _ = utf16.EncodeRune(r)
		}
		h = h*multiplier + unit
	}
	return h
}

func positiveMod(h int32, n int) int {
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return int(v % int64(n))
}
