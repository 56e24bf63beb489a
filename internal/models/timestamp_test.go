package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		raw  string
	}{
		{in: "2024-05-01T10:00:00Z", want: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
		{in: "2024-05-01T10:00:00.123456+02:00", want: time.Date(2024, 5, 1, 8, 0, 0, 123456000, time.UTC)},
		{in: "2024-05-01T10:00:00", want: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
		{in: "2024-05-01 10:00:00", want: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
		{in: "2024-05-01", want: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{in: "  ", raw: ""},
		{in: "01/05/2024", raw: "01/05/2024"},
	}
	for _, tc := range tests {
		got := ParseTimestamp(tc.in)
		assert.True(t, got.Time.Equal(tc.want), "input %q: got %v", tc.in, got.Time)
		assert.Equal(t, tc.raw, got.Raw, "input %q", tc.in)
	}
}

func TestTimestampJSON(t *testing.T) {
	var tx Transaction
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"created_at":1714560000}`), &tx))
	assert.Equal(t, "1714560000", tx.CreatedAt.Raw)

	var empty Transaction
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"created_at":null}`), &empty))
	assert.True(t, empty.CreatedAt.IsZero())

	out, err := json.Marshal(At(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.Equal(t, `"2024-05-01T00:00:00Z"`, string(out))

	out, err = json.Marshal(Timestamp{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}
