package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"proofflow-backend/internal/domain"
)

const uniqueViolation pq.ErrorCode = "23505"

// mapError translates driver errors into the domain taxonomy. Unique
// violations become ErrConflict, missing rows ErrNotFound, and everything
// else ErrUnavailable with the driver error still reachable through Unwrap.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %w", op, domain.ErrConflict)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrUnavailable, err)
}
