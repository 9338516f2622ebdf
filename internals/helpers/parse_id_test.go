package helper

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want uint
		ok   bool
	}{
		{name: "angka biasa", raw: "42", want: 42, ok: true},
		{name: "dengan spasi", raw: "  7  ", want: 7, ok: true},
		{name: "kosong", raw: ""},
		{name: "spasi saja", raw: "   "},
		{name: "nol", raw: "0"},
		{name: "negatif", raw: "-3"},
		{name: "bukan angka", raw: "abc"},
		{name: "campur", raw: "12abc"},
		{name: "desimal", raw: "3.5"},
		{name: "overflow 32 bit", raw: "99999999999999999999"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseID(tc.raw)
			if !tc.ok {
				require.ErrorIs(t, err, ErrInvalidID)
				require.Zero(t, got)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}
