package utils

import (
	"errors"
	"net/url"
	"strings"
)

// ErrInvalidPhone is returned when a phone number has no digits left after
// normalization.
var ErrInvalidPhone = errors.New("phone number contains no digits")

// NormalizePhone strips everything but digits from a phone number. A leading
// "+" or "00" international prefix is dropped; wa.me expects the bare
// country-code-prefixed number.
func NormalizePhone(phone string) (string, error) {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	normalized := strings.TrimPrefix(digits.String(), "00")
	if normalized == "" {
		return "", ErrInvalidPhone
	}
	return normalized, nil
}

// WhatsAppLink builds a wa.me deep link that opens a chat with the given
// phone number and a prefilled message.
func WhatsAppLink(phone, message string) (string, error) {
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return "", err
	}
	link := "https://wa.me/" + normalized
	if message != "" {
		link += "?text=" + url.QueryEscape(message)
	}
	return link, nil
}
