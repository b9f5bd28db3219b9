package exchange

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"
)

// ContactLink builds a WhatsApp chat link to the seller of b with a
// prefilled message. It reports false when the seller has no phone digits.
func ContactLink(seller User, b Book) (string, bool) {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, seller.Phone)
	if digits == "" {
		return "", false
	}

	text := fmt.Sprintf("Hi%%20%s,%%20I'm%%20interested%%20in%%20%s.", encodeComponent(seller.Name), encodeComponent(b.Title))
	return "https://wa.me/" + digits + "?text=" + text, true
}

// encodeComponent percent-encodes s for use inside a query value, spaces as
// %20.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
