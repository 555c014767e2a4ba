package client

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/simp-lee/gohotel/internal/domain"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// French mobile: 06/07 numbers, optionally written +33 or 0033 without
	// the leading zero, digits grouped by pairs with space, dot or dash.
	phonePattern = regexp.MustCompile(`^(?:(?:\+|00)33[\s.-]?|0)[67](?:[\s.-]?\d{2}){4}$`)
)

// Normalize trims surrounding whitespace from the text fields and lowercases
// the email, so the unique index sees one spelling per address.
func Normalize(in domain.ClientInput) domain.ClientInput {
	in.Nom = strings.TrimSpace(in.Nom)
	in.Telephone = strings.TrimSpace(in.Telephone)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	return in
}

// Validate applies the client rules in a fixed order (name, party size,
// email, phone) and returns the first violation as a validation AppError.
func Validate(in domain.ClientInput) error {
	switch {
	case in.Nom == "":
		return domain.NewRuleError(domain.ErrNameRequired)
	case strings.IndexFunc(in.Nom, unicode.IsDigit) >= 0:
		return domain.NewRuleError(domain.ErrNameHasDigit)
	case in.NbPersonnes < 1:
		return domain.NewRuleError(domain.ErrInvalidPartySize)
	case !emailPattern.MatchString(in.Email):
		return domain.NewRuleError(domain.ErrInvalidEmail)
	case !phonePattern.MatchString(in.Telephone):
		return domain.NewRuleError(domain.ErrInvalidPhone)
	}
	return nil
}
