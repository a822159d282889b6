package store

import (
	"math/rand/v2"
	"strings"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateCampaignCode returns a display code such as "7QX2-KD9A". Codes are
// not checked against existing campaigns.
func GenerateCampaignCode() string {
	var b strings.Builder
	b.Grow(9)
	for i := 0; i < 8; i++ {
		if i == 4 {
			b.WriteByte('-')
		}
		b.WriteByte(codeAlphabet[rand.IntN(len(codeAlphabet))])
	}
	return b.String()
}
