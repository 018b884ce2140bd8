package cliente

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Field shape rules for cliente data. This is the single source of truth for
// validation; the HTTP boundary only checks field presence.
const (
	NomeMinLength = 3
	NomeMaxLength = 100
)

var (
	// Local part, @, domain with at least one dot. Intentionally permissive;
	// deliverability is not checked here.
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// Brazilian phone: optional +55 country code, optional 2-digit area code,
	// 8 or 9 digit subscriber number. Matched against the digits-only form.
	telefonePattern = regexp.MustCompile(`^(\+55)?(\d{2})?(9\d{4}|\d{4})\d{4}$`)

	telefoneStrip = regexp.MustCompile(`[\s().-]`)
)

// Validation messages, one per field rule.
const (
	MsgNomeInvalid     = "nome must be between 3 and 100 characters"
	MsgEmailInvalid    = "email format is invalid"
	MsgTelefoneInvalid = "telefone is not a valid Brazilian phone number"
)

// NormalizeEmail trims and lowercases an email for storage and comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeTelefone strips formatting characters, keeping digits and a
// leading plus sign.
func NormalizeTelefone(telefone string) string {
	return telefoneStrip.ReplaceAllString(strings.TrimSpace(telefone), "")
}

// IsValidNome reports whether nome has between 3 and 100 characters after
// trimming.
func IsValidNome(nome string) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(nome))
	return n >= NomeMinLength && n <= NomeMaxLength
}

// IsValidEmail reports whether email has a plausible address shape.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(NormalizeEmail(email))
}

// IsValidTelefone reports whether telefone is a plausible Brazilian phone
// number in any common formatting.
func IsValidTelefone(telefone string) bool {
	return telefonePattern.MatchString(NormalizeTelefone(telefone))
}

// ValidateNew checks all fields of a new cliente and returns every violation
// found, in field order.
func ValidateNew(nome, email, telefone string) []string {
	var violations []string
	if !IsValidNome(nome) {
		violations = append(violations, MsgNomeInvalid)
	}
	if !IsValidEmail(email) {
		violations = append(violations, MsgEmailInvalid)
	}
	if !IsValidTelefone(telefone) {
		violations = append(violations, MsgTelefoneInvalid)
	}
	return violations
}

// ValidateUpdate checks only the fields present in a partial update and
// returns every violation found. Absent fields are skipped entirely.
func ValidateUpdate(update FieldUpdate) []string {
	var violations []string
	if update.Nome != nil && !IsValidNome(*update.Nome) {
		violations = append(violations, MsgNomeInvalid)
	}
	if update.Email != nil && !IsValidEmail(*update.Email) {
		violations = append(violations, MsgEmailInvalid)
	}
	if update.Telefone != nil && !IsValidTelefone(*update.Telefone) {
		violations = append(violations, MsgTelefoneInvalid)
	}
	return violations
}
