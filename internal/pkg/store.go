package pkg

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/simp-lee/gohotel/internal/domain"
)

// IsUniqueViolation reports whether err is a unique-constraint failure raised
// by the store. Not every GORM dialector translates driver errors to
// gorm.ErrDuplicatedKey (the pure-Go SQLite driver does not), so the driver
// message is inspected as a fallback.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry") ||
		strings.Contains(msg, "sqlstate 23505")
}

// IsForeignKeyViolation reports whether err is a foreign-key failure raised
// by the store, e.g. deleting a row that is still referenced under
// ON DELETE RESTRICT.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "foreign key constraint") ||
		strings.Contains(msg, "violates foreign key") ||
		strings.Contains(msg, "sqlstate 23503")
}

// MapStoreError converts store errors to domain errors. Unique violations
// become CodeAlreadyExists with the given entity name; anything unrecognized
// becomes CodeInternal with the original error preserved for diagnostics.
func MapStoreError(entity string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NewAppError(domain.CodeNotFound, entity+" not found", err)
	}
	if IsUniqueViolation(err) {
		return domain.NewAppError(domain.CodeAlreadyExists, entity+" already exists", err)
	}
	return domain.NewAppError(domain.CodeInternal, "database error", err)
}
