package csvrepo

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milad/loadprofile/internal/domain"
)

func at(day, hour, minute int) time.Time {
	return time.Date(2024, 8, day, hour, minute, 0, 0, time.UTC)
}

func TestRepo_ListWindowIsExclusive(t *testing.T) {
	t.Parallel()

	r := New([]domain.Reading{
		{Time: at(1, 0, 45), Energy: 3},
		{Time: at(1, 0, 15), Energy: 1},
		{Time: at(1, 0, 30), Energy: 2},
	})

	from := at(1, 0, 15)
	to := at(1, 0, 45)

	out, err := r.List(context.Background(), domain.Window{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 2.0, out[0].Energy)
}

func TestRepo_ListUnboundedIsSorted(t *testing.T) {
	t.Parallel()

	r := New([]domain.Reading{
		{Time: at(2, 7, 0), Energy: 3},
		{Time: at(1, 7, 0), Energy: 2},
	})
	out, err := r.List(context.Background(), domain.Window{})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.True(t, out[0].Time.Before(out[1].Time))
}

func TestRepo_ListHonoursCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(nil).List(ctx, domain.Window{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "meter.csv")
	require.NoError(t, os.WriteFile(path, []byte("\"01/08/2024\",\"07:00\",2.0\nbad row\n"), 0o600))

	r, err := NewFromFile(path)
	require.NotNil(t, r)
	require.Error(t, err)
	assert.Len(t, RowErrors(err), 1)
	assert.Equal(t, 1, r.Len())

	_, err = NewFromFile(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
}

func TestRepo_ListHalfOpenWindow(t *testing.T) {
	t.Parallel()

	r := New([]domain.Reading{
		{Time: at(1, 0, 15), Energy: 1},
		{Time: at(1, 0, 30), Energy: 2},
		{Time: at(1, 0, 45), Energy: 3},
	})

	to := at(1, 0, 30)
	out, err := r.List(context.Background(), domain.Window{To: &to})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 1.0, out[0].Energy)

	from := at(1, 0, 30)
	out, err = r.List(context.Background(), domain.Window{From: &from})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 3.0, out[0].Energy)
	assert.Equal(t, 3, r.Len())
}
