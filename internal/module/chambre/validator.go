package chambre

import "github.com/simp-lee/gohotel/internal/domain"

// Validate checks the room rules in order and returns the first violation.
func Validate(in domain.ChambreInput) error {
	if in.Numero < 1 {
		return domain.NewRuleError(domain.ErrInvalidNumero)
	}
	if in.Capacite < 1 {
		return domain.NewRuleError(domain.ErrInvalidCapacity)
	}
	return nil
}
