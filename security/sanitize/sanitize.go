// Package sanitize holds the pure input-cleaning and shape-validation
// helpers used at the HTTP boundary. Every function is a transform over
// its arguments with no state and no I/O.
package sanitize

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

// Fixed numeric bounds for user-supplied values.
const (
	MaxTextLength = 500
	MaxPrice      = 99999
	MinDuration   = 5   // minutes
	MaxDuration   = 480 // minutes
)

var (
	tagRe   = regexp.MustCompile(`<[^>]*>`)
	emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRe = regexp.MustCompile(`^\+?[0-9(][0-9 ()\-]{5,19}$`)
)

// Text strips HTML tags, angle brackets and control characters, trims
// surrounding whitespace and truncates to MaxTextLength runes. The
// result is a fixed point: Text(Text(s)) == Text(s).
func Text(s string) string {
	s = tagRe.ReplaceAllString(s, "")
	s = strings.Map(func(r rune) rune {
		switch {
		case r == '<' || r == '>':
			return -1
		case unicode.IsControl(r) && r != '\n':
			return -1
		}
		return r
	}, s)
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) > MaxTextLength {
		s = strings.TrimSpace(string(runes[:MaxTextLength]))
	}
	return s
}

// Email lowercases, trims and validates an email address shape.
func Email(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) > 254 || !emailRe.MatchString(s) {
		return "", fmt.Errorf("invalid email address")
	}
	return s, nil
}

// Phone trims and validates a phone number shape. Formatting characters
// (spaces, parentheses, dashes) are tolerated, not normalized away.
func Phone(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !phoneRe.MatchString(s) {
		return "", fmt.Errorf("invalid phone number")
	}
	return s, nil
}

// URL validates an absolute http(s) URL and returns it unchanged.
func URL(s string) (string, error) {
	s = strings.TrimSpace(s)
	u, err := url.Parse(s)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", fmt.Errorf("invalid URL")
	}
	return s, nil
}

// Price validates a service price: non-negative and within MaxPrice.
func Price(p float64) error {
	if p < 0 || p > MaxPrice {
		return fmt.Errorf("price must be between 0 and %d", MaxPrice)
	}
	return nil
}

// Duration validates a service duration in minutes.
func Duration(minutes int) error {
	if minutes < MinDuration || minutes > MaxDuration {
		return fmt.Errorf("duration must be between %d and %d minutes", MinDuration, MaxDuration)
	}
	return nil
}
