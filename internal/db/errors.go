package db

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/albapepper/courtside/internal/domain"
)

// SQLSTATE codes the store layer translates.
const (
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
	codeForeignKeyViolation = "23503"
	codeNotNullViolation    = "23502"
	codeInvalidText         = "22P02"
	codeInvalidDatetime     = "22007"
	codeDatetimeOverflow    = "22008"
)

// IsNoRows reports an empty single-row result.
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsUniqueViolation reports a unique index violation, optionally on a named
// constraint.
func IsUniqueViolation(err error, constraint ...string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != codeUniqueViolation {
		return false
	}
	if len(constraint) == 0 {
		return true
	}
	for _, c := range constraint {
		if pgErr.ConstraintName == c {
			return true
		}
	}
	return false
}

// Translate maps constraint failures onto domain error kinds. Errors it does
// not recognise come back unchanged.
func Translate(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case codeUniqueViolation:
		return domain.Conflict("Duplicate value violates %s", pgErr.ConstraintName)
	case codeCheckViolation:
		return domain.Invalid("Value violates constraint %s", pgErr.ConstraintName)
	case codeForeignKeyViolation:
		return domain.NotFound("Referenced record does not exist (%s)", pgErr.ConstraintName)
	case codeNotNullViolation:
		return domain.Invalid("Missing required field: %s", pgErr.ColumnName)
	case codeInvalidText, codeInvalidDatetime, codeDatetimeOverflow:
		return domain.Invalid("Invalid value: %s", pgErr.Message)
	}
	return err
}
