package frame

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameColumns(t *testing.T) {
	f := New("timestamp")
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, f.SetTimes([]time.Time{base, base.Add(time.Minute)}))
	require.NoError(t, f.SetLabels("flight_id", []string{"1", "2"}))
	require.NoError(t, f.SetNumbers("lat", []float64{10, 20}))

	assert.Equal(t, 2, f.Len())
	assert.Equal(t, "timestamp", f.TimeColumn())
	assert.Equal(t, []string{"timestamp", "flight_id", "lat"}, f.Columns())
	assert.True(t, f.HasColumn("timestamp"))
	assert.True(t, f.HasColumn("lat"))
	assert.False(t, f.HasColumn("lon"))

	labels,ok := f.Labels("flight_id")
	require.True(t, ok)
	assert.Equal(t, []string{"1", "2"}, labels)

	_,ok = f.Numbers("flight_id")
	assert.False(t, ok)
}

func TestFrameLengthMismatch(t *testing.T) {
	f := New("timestamp")
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, f.SetTimes([]time.Time{base, base.Add(time.Minute)}))
	assert.Error(t, f.SetLabels("flight_id", []string{"1"}))
	assert.Error(t, f.SetNumbers("lat", []float64{1, 2, 3}))
}

func TestFrameColumnKindConflicts(t *testing.T) {
	f := New("timestamp")
	require.NoError(t, f.SetTimes([]time.Time{time.Now()}))
	require.NoError(t, f.SetNumbers("lat", []float64{1}))

	assert.Error(t, f.SetLabels("lat", []string{"x"}))
	assert.Error(t, f.SetNumbers("timestamp", []float64{1}))
	assert.Error(t, f.SetLabels("timestamp", []string{"x"}))
}

func TestFrameSetCopies(t *testing.T) {
	f := New("timestamp")
	require.NoError(t, f.SetTimes([]time.Time{time.Now()}))

	src := []float64{1}
	require.NoError(t, f.SetNumbers("lat", src))
	src[0] = 99

	col,_ := f.Numbers("lat")
	assert.Equal(t, 1.0, col[0])
}

func TestFrameSortByTimeStable(t *testing.T) {
	f := New("timestamp")
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, f.SetTimes([]time.Time{
		base.Add(time.Minute), base, base, base.Add(2 * time.Minute),
	}))
	require.NoError(t, f.SetLabels("flight_id", []string{"b", "a1", "a2", "c"}))

	sorted := f.SortByTime()
	labels,_ := sorted.Labels("flight_id")
	assert.Equal(t, []string{"a1", "a2", "b", "c"}, labels) // a1 before a2: stable

	// Original untouched.
	labels,_ = f.Labels("flight_id")
	assert.Equal(t, []string{"b", "a1", "a2", "c"}, labels)
}

func TestFrameTrimToTimes(t *testing.T) {
	f := New("timestamp")
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, f.SetTimes([]time.Time{
		base, base.Add(time.Minute), base.Add(2 * time.Minute), base.Add(3 * time.Minute),
	}))
	require.NoError(t, f.SetNumbers("lat", []float64{1, 2, 3, 4}))

	trimmed := f.TrimToTimes(base.Add(time.Minute), base.Add(2*time.Minute))
	assert.Equal(t, 2, trimmed.Len())
	col,_ := trimmed.Numbers("lat")
	assert.Equal(t, []float64{2, 3}, col) // bounds are inclusive
}

func TestFrameSelect(t *testing.T) {
	f := New("timestamp")
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, f.SetTimes([]time.Time{base, base.Add(time.Minute), base.Add(2 * time.Minute)}))
	require.NoError(t, f.SetNumbers("lat", []float64{1, 2, 3}))

	sel := f.Select([]int{2, 0})
	assert.Equal(t, 2, sel.Len())
	col,_ := sel.Numbers("lat")
	assert.Equal(t, []float64{3, 1}, col)
	assert.Equal(t, f.Columns(), sel.Columns())
}
