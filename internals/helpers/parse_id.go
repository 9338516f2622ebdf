package helper

import (
	"errors"
	"strconv"
	"strings"
)

var ErrInvalidID = errors.New("id tidak valid")

// ParseID mem-parse identifier form/query menjadi integer positif.
// String kosong, non-angka, nol, atau negatif semuanya ditolak.
func ParseID(raw string) (uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrInvalidID
	}
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || n == 0 {
		return 0, ErrInvalidID
	}
	return uint(n), nil
}
