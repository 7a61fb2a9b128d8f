package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// unique_violation (SQLSTATE 23505)
const pgUniqueViolation = "23505"

// isUniqueViolation detecta el choque de una clave única (SKU de producto,
// nombre de sede, email de usuario) para traducirlo a ErrDuplicate.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
