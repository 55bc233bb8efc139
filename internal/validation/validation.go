// Package validation holds the pure field validators and display masks used by
// client intake and profile forms: Brazilian CPF check digits, phone numbers,
// e-mail shape, and required fields.
//
// Every validator returns a Result instead of an error so form layers can
// surface the message next to the field.
package validation

import (
	"regexp"
	"strings"
)

// Result is the outcome of validating a single field.
type Result struct {
	IsValid bool   `json:"isValid"`
	Error   string `json:"error,omitempty"`
}

func ok() Result { return Result{IsValid: true} }

func fail(msg string) Result { return Result{IsValid: false, Error: msg} }

const (
	MsgCPFRequired       = "CPF é obrigatório"
	MsgCPFLength         = "CPF deve conter exatamente 11 dígitos"
	MsgCPFRepeated       = "CPF inválido: sequência de dígitos iguais"
	MsgCPFCheckDigit     = "CPF inválido: dígito verificador incorreto"
	MsgPhoneRequired     = "Telefone é obrigatório"
	MsgPhoneLength       = "Telefone deve ter 10 ou 11 dígitos"
	MsgPhoneAreaCode     = "Código de área inválido (deve estar entre 11 e 99)"
	MsgPhoneMobile       = "Número de celular deve começar com 9 após o DDD"
	MsgPhoneRepeated     = "Número de telefone inválido: sequência de dígitos iguais"
	MsgEmailRequired     = "E-mail é obrigatório"
	MsgEmailFormat       = "Formato de e-mail inválido"
	requiredSuffix       = " é obrigatório"
	MsgProcessLength     = "Número do processo deve conter 20 dígitos"
	MsgProcessCheckDigit = "Número do processo inválido: dígito verificador incorreto"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Digits strips every non-digit character.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// allSame reports whether s is one digit repeated (and non-empty).
func allSame(s string) bool {
	if s == "" {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

// ValidateCPF validates the format and both modulo-11 check digits of a CPF.
// Formatting characters are ignored.
func ValidateCPF(cpf string) Result {
	if cpf == "" {
		return fail(MsgCPFRequired)
	}

	d := Digits(cpf)
	if len(d) != 11 {
		return fail(MsgCPFLength)
	}
	if allSame(d) {
		return fail(MsgCPFRepeated)
	}

	if cpfCheckDigit(d[:9], 10) != int(d[9]-'0') {
		return fail(MsgCPFCheckDigit)
	}
	if cpfCheckDigit(d[:10], 11) != int(d[10]-'0') {
		return fail(MsgCPFCheckDigit)
	}

	return ok()
}

// cpfCheckDigit weights digits from startWeight down to 2.
func cpfCheckDigit(digits string, startWeight int) int {
	sum := 0
	for i := 0; i < len(digits); i++ {
		sum += int(digits[i]-'0') * (startWeight - i)
	}
	r := (sum * 10) % 11
	if r == 10 || r == 11 {
		r = 0
	}
	return r
}

// ValidatePhone validates a Brazilian landline (10 digits) or mobile (11 digits) number.
func ValidatePhone(phone string) Result {
	if phone == "" {
		return fail(MsgPhoneRequired)
	}

	d := Digits(phone)
	if len(d) < 10 || len(d) > 11 {
		return fail(MsgPhoneLength)
	}

	area := int(d[0]-'0')*10 + int(d[1]-'0')
	if area < 11 || area > 99 {
		return fail(MsgPhoneAreaCode)
	}

	if len(d) == 11 && d[2] != '9' {
		return fail(MsgPhoneMobile)
	}

	if allSame(d[2:]) {
		return fail(MsgPhoneRepeated)
	}

	return ok()
}

// ValidateEmail checks the basic local@domain.tld shape.
func ValidateEmail(email string) Result {
	if email == "" {
		return fail(MsgEmailRequired)
	}
	if !emailPattern.MatchString(email) {
		return fail(MsgEmailFormat)
	}
	return ok()
}

// ValidateRequired fails when value is empty or only whitespace.
func ValidateRequired(value, fieldName string) Result {
	if strings.TrimSpace(value) == "" {
		return fail(fieldName + requiredSuffix)
	}
	return ok()
}

// ValidateProcessNumber checks a CNJ unified process number
// (NNNNNNN-DD.AAAA.J.TR.OOOO): 20 digits whose check digits DD satisfy
// ISO 7064 mod 97-10 over N AAAA J TR OOOO DD.
func ValidateProcessNumber(number string) Result {
	d := Digits(number)
	if len(d) != 20 {
		return fail(MsgProcessLength)
	}

	rearranged := d[:7] + d[9:] + d[7:9]
	if mod97(rearranged) != 1 {
		return fail(MsgProcessCheckDigit)
	}
	return ok()
}

// ProcessCheckDigits computes DD for the 18 non-check digits
// N(7) AAAA J TR OOOO.
func ProcessCheckDigits(withoutCheck string) int {
	return 98 - mod97(withoutCheck+"00")
}

// mod97 reduces a decimal digit string modulo 97 without big integers.
func mod97(digits string) int {
	r := 0
	for i := 0; i < len(digits); i++ {
		r = (r*10 + int(digits[i]-'0')) % 97
	}
	return r
}
