package helper

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestIsUniqueViolation(t *testing.T) {
	require.False(t, IsUniqueViolation(nil))
	require.False(t, IsUniqueViolation(errors.New("connection refused")))

	require.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	require.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))

	// error terbungkus tetap terdeteksi
	wrapped := fmt.Errorf("simpan kelas: %w", &pgconn.PgError{Code: "23505"})
	require.True(t, IsUniqueViolation(wrapped))

	// fallback pesan driver lain (sqlite)
	require.True(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: classes.class_code")))
}

func TestIsForeignKeyViolation(t *testing.T) {
	require.False(t, IsForeignKeyViolation(nil))

	require.True(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	require.False(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}))

	require.True(t, IsForeignKeyViolation(errors.New("FOREIGN KEY constraint failed")))
}
