package dto

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	reName        = regexp.MustCompile(`^[\p{L}\s]+$`)
	reLabel       = regexp.MustCompile(`^[\p{L}0-9\s\-.]+$`)
	rePatente     = regexp.MustCompile(`^[A-Z0-9]+$`)
	reDNI         = regexp.MustCompile(`^[0-9]{7,8}$`)
	rePhone       = regexp.MustCompile(`^(\+54\s?)?(\d{2,4}\s?)?\d{6,8}$`)
	reCategory    = regexp.MustCompile(`^[a-zA-Z_]+$`)
	reSettingKey  = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	rePhoneStrip  = strings.NewReplacer("-", "", "(", "", ")", "")
	validSettings = map[string]bool{"string": true, "number": true, "boolean": true, "json": true}
)

func runeLen(s string) int { return utf8.RuneCountInString(s) }

func lenBetween(s string, min, max int) bool {
	n := runeLen(s)
	return n >= min && n <= max
}

func maxLen(s string, max int) bool { return runeLen(s) <= max }

func validEmail(s string) bool {
	if s == "" || runeLen(s) > 100 {
		return false
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

func validPhone(s string) bool {
	return rePhone.MatchString(rePhoneStrip.Replace(s))
}

func validPassword(s string) bool { return lenBetween(s, 6, 50) }

// NormalizeEmail recorta y pasa a minúsculas.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
