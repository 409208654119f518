package models

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDuplicateKey is returned when an insert collides with an existing
// primary key or unique column.
var ErrDuplicateKey = errors.New("duplicate key")

const pgUniqueViolation = "23505"

func translateWriteError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %w", ErrDuplicateKey, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%w: %w", ErrDuplicateKey, err)
	}
	return err
}
