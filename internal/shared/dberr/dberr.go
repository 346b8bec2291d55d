// Package dberr mengenali error database yang perlu dipetakan ke error domain.
package dberr

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// UniqueViolation melaporkan apakah err adalah pelanggaran unique constraint.
// detail berisi nama constraint (postgres) atau pesan error lowercase
// (driver lain, misalnya sqlite yang menyebut tabel.kolom).
func UniqueViolation(err error) (detail string, ok bool) {
	if err == nil {
		return "", false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName, pgErr.Code == pgUniqueViolation
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "duplicate key value") || strings.Contains(msg, "unique constraint failed") {
		return msg, true
	}
	return "", false
}

// MapUnique mengganti pelanggaran unique dengan error domain dari
// byConstraint (kunci: nama constraint atau kolom). Pelanggaran lain menjadi
// fallback jika tidak nil. Error selain unique violation dikembalikan apa adanya.
func MapUnique(err error, byConstraint map[string]error, fallback error) error {
	detail, ok := UniqueViolation(err)
	if !ok {
		return err
	}
	for name, mapped := range byConstraint {
		if strings.Contains(detail, name) {
			return mapped
		}
	}
	if fallback != nil {
		return fallback
	}
	return err
}
