package roundid

import (
	"strings"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/showdown/internal/randutil"
)

// timestampPrefix decodes the first ten characters, which carry exactly the
// two padding bits and the 48-bit millisecond timestamp.
func timestampPrefix(t *testing.T, id string) int64 {
	t.Helper()
	var v int64
	for _, c := range id[:10] {
		idx := strings.IndexRune(alphabet, c)
		require.GreaterOrEqual(t, idx, 0)
		v = v<<5 | int64(idx)
	}
	return v
}

func TestGenerate(t *testing.T) {
	id := Generate()
	assert.Len(t, id, Length)
	assert.NoError(t, Validate(id))
	assert.LessOrEqual(t, id[0], byte('7'))
}

func TestGenerateEncodesClock(t *testing.T) {
	clock := quartz.NewMock(t)
	now := time.Date(2025, 3, 14, 15, 9, 26, 535_000_000, time.UTC)
	clock.Set(now)

	id := NewGenerator(clock, randutil.New(1)).Generate()
	require.NoError(t, Validate(id))
	assert.Equal(t, now.UnixMilli(), timestampPrefix(t, id))
}

func TestParse(t *testing.T) {
	clock := quartz.NewMock(t)
	now := time.Date(2024, 2, 29, 23, 59, 59, 999_000_000, time.UTC)
	clock.Set(now)

	gen := NewGenerator(clock, randutil.New(5))
	for i := 0; i < 20; i++ {
		want := gen.New()
		assert.Equal(t, uuid.Version(7), want.Version())
		assert.Equal(t, uuid.RFC4122, want.Variant())

		got, err := Parse(Encode(want))
		require.NoError(t, err)
		assert.Equal(t, want, got)

		sec, nsec := got.Time().UnixTime()
		assert.Equal(t, now.UnixMilli(), sec*1000+nsec/1_000_000)
	}

	_, err := Parse("too-short")
	assert.Error(t, err)
}

func TestGenerateDeterministic(t *testing.T) {
	clock := quartz.NewMock(t)
	clock.Set(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	a := NewGenerator(clock, randutil.New(9)).Generate()
	b := NewGenerator(clock, randutil.New(9)).Generate()
	assert.Equal(t, a, b)

	c := NewGenerator(clock, randutil.New(10)).Generate()
	assert.NotEqual(t, a, c)
	assert.Equal(t, a[:10], c[:10], "same millisecond, same prefix")
}

func TestGenerateTimeSorted(t *testing.T) {
	clock := quartz.NewMock(t)
	clock.Set(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	gen := NewGenerator(clock, randutil.New(3))

	var ids []string
	for i := 0; i < 10; i++ {
		ids = append(ids, gen.Generate())
		clock.Advance(time.Millisecond)
	}

	for i := 1; i < len(ids); i++ {
		assert.Negative(t, strings.Compare(ids[i-1], ids[i]), "IDs not sorted: %s >= %s", ids[i-1], ids[i])
	}
}

func TestGenerateUnique(t *testing.T) {
	ids := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := Generate()
		assert.False(t, ids[id], "duplicate ID generated: %s", id)
		ids[id] = true
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid ID", "01h5n0et5q6mt3v7ms1234abcd", false},
		{"too short", "01h5n0et5q6mt3v7ms123", true},
		{"too long", "01h5n0et5q6mt3v7ms1234abcdef", true},
		{"first char too high", "81h5n0et5q6mt3v7ms1234abcd", true},
		{"invalid character", "01h5n0et5q6mt3v7ms1234abcu", true},
		{"uppercase", "01H5N0ET5Q6MT3V7MS1234ABCD", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
