package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaskKind selects an input mask.
type MaskKind string

const (
	MaskCPF   MaskKind = "cpf"
	MaskPhone MaskKind = "phone"
)

// FormatCPF renders 11 digits as xxx.xxx.xxx-xx; anything else is returned unchanged.
func FormatCPF(cpf string) string {
	d := Digits(cpf)
	if len(d) != 11 {
		return cpf
	}
	return d[:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:]
}

// FormatPhone renders (xx) xxxxx-xxxx for mobiles and (xx) xxxx-xxxx for
// landlines; anything else is returned unchanged.
func FormatPhone(phone string) string {
	d := Digits(phone)
	switch len(d) {
	case 11:
		return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:]
	case 10:
		return "(" + d[:2] + ") " + d[2:6] + "-" + d[6:]
	default:
		return phone
	}
}

// ApplyInputMask formats a partially typed value. Extra digits beyond the
// mask length are dropped.
func ApplyInputMask(value string, kind MaskKind) string {
	d := Digits(value)

	switch kind {
	case MaskCPF:
		switch {
		case len(d) <= 3:
			return d
		case len(d) <= 6:
			return d[:3] + "." + d[3:]
		case len(d) <= 9:
			return d[:3] + "." + d[3:6] + "." + d[6:]
		default:
			return d[:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:min(len(d), 11)]
		}
	case MaskPhone:
		switch {
		case len(d) <= 2:
			return d
		case len(d) <= 6:
			return "(" + d[:2] + ") " + d[2:]
		case len(d) <= 10:
			return "(" + d[:2] + ") " + d[2:6] + "-" + d[6:]
		default:
			return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:min(len(d), 11)]
		}
	}

	return value
}

// FormatProcessNumber renders a CNJ number progressively as
// NNNNNNN-DD.AAAA.J.TR.OOOO. Empty input renders as N/A.
func FormatProcessNumber(number string) string {
	if number == "" {
		return "N/A"
	}
	d := Digits(number)
	if len(d) <= 7 {
		return d
	}

	var b strings.Builder
	b.WriteString(d[:7])
	seps := []struct {
		sep      byte
		from, to int
	}{
		{'-', 7, 9},
		{'.', 9, 13},
		{'.', 13, 14},
		{'.', 14, 16},
		{'.', 16, len(d)},
	}
	for _, s := range seps {
		if len(d) <= s.from {
			break
		}
		b.WriteByte(s.sep)
		b.WriteString(d[s.from:min(s.to, len(d))])
	}
	return b.String()
}

// FormatOAB renders an OAB registration as digits/UF when the state is known.
func FormatOAB(number, state string) string {
	d := Digits(number)
	if d != "" && state != "" {
		return d + "/" + strings.ToUpper(state)
	}
	return d
}

// Initials returns the first and last initials of a full name, the first
// letter of the e-mail when there is no name, or "U".
func Initials(fullName, email string) string {
	parts := strings.Fields(fullName)
	switch {
	case len(parts) >= 2:
		return strings.ToUpper(firstRune(parts[0]) + firstRune(parts[len(parts)-1]))
	case len(parts) == 1:
		return strings.ToUpper(firstRune(parts[0]))
	case email != "":
		return strings.ToUpper(firstRune(email))
	default:
		return "U"
	}
}

func firstRune(s string) string {
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return ""
	}
	return string(unicode.ToUpper(r))
}
