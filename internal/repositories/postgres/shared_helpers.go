package postgres

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/pooya1361/makerspace/internal/repositories"
)

// handleDBError maps gorm errors onto the repository sentinel errors while
// keeping the failing operation in the message.
func handleDBError(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, repositories.ErrNotFound)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
		return fmt.Errorf("%s: %w", op, repositories.ErrDuplicateKey)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// isUniqueViolation catches postgres unique constraint errors that the
// driver surfaces without the gorm sentinel.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 23505") ||
		strings.Contains(msg, "duplicate key value")
}
