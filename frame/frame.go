// Package frame provides a small ordered-by-time tabular container: one
// time axis, label (string) columns and numeric (float64) columns, all
// aligned row-wise. It stands in for the tabular storage the trajectory
// operations are layered on top of; NaN marks a missing numeric value.
package frame

import (
	"fmt"
	"sort"
	"time"
)

type Frame struct {
	timeName string
	times    []time.Time
	order    []string // column order; the time column comes first
	labels   map[string][]string
	numbers  map[string][]float64
}

// New returns an empty frame whose time axis will live in the named column.
func New(timeColumn string) *Frame {
	return &Frame{
		timeName: timeColumn,
		order:    []string{timeColumn},
		labels:   map[string][]string{},
		numbers:  map[string][]float64{},
	}
}

func (f *Frame)Len() int { return len(f.times) }
func (f *Frame)TimeColumn() string { return f.timeName }
func (f *Frame)Columns() []string { return append([]string{}, f.order...) }

func (f *Frame)HasColumn(name string) bool {
	if name == f.timeName {
		return true
	}
	_,isLabel := f.labels[name]
	_,isNumber := f.numbers[name]
	return isLabel || isNumber
}

// rows is the row count established by whichever column was set first, or
// -1 while the frame is still empty.
func (f *Frame)rows() int {
	if f.times != nil {
		return len(f.times)
	}
	for _,col := range f.labels {
		return len(col)
	}
	for _,col := range f.numbers {
		return len(col)
	}
	return -1
}

func (f *Frame)checkLen(name string, n int) error {
	if r := f.rows(); r >= 0 && r != n {
		return fmt.Errorf("column %q has %d rows, frame has %d", name, n, r)
	}
	return nil
}

// SetTimes installs (or replaces) the time axis. The values are copied.
func (f *Frame)SetTimes(times []time.Time) error {
	if err := f.checkLen(f.timeName, len(times)); err != nil {
		return err
	}
	f.times = append([]time.Time{}, times...)
	return nil
}

// SetLabels installs a string column. The values are copied.
func (f *Frame)SetLabels(name string, values []string) error {
	if name == f.timeName {
		return fmt.Errorf("column %q is the time axis", name)
	}
	if _,exists := f.numbers[name]; exists {
		return fmt.Errorf("column %q is already numeric", name)
	}
	if err := f.checkLen(name, len(values)); err != nil {
		return err
	}
	if _,exists := f.labels[name]; !exists {
		f.order = append(f.order, name)
	}
	f.labels[name] = append([]string{}, values...)
	return nil
}

// SetNumbers installs a numeric column. The values are copied.
func (f *Frame)SetNumbers(name string, values []float64) error {
	if name == f.timeName {
		return fmt.Errorf("column %q is the time axis", name)
	}
	if _,exists := f.labels[name]; exists {
		return fmt.Errorf("column %q is already a label column", name)
	}
	if err := f.checkLen(name, len(values)); err != nil {
		return err
	}
	if _,exists := f.numbers[name]; !exists {
		f.order = append(f.order, name)
	}
	f.numbers[name] = append([]float64{}, values...)
	return nil
}

// Times returns the time axis. Callers must treat the slice as read-only.
func (f *Frame)Times() []time.Time { return f.times }

func (f *Frame)Labels(name string) ([]string, bool) {
	col,exists := f.labels[name]
	return col, exists
}

func (f *Frame)Numbers(name string) ([]float64, bool) {
	col,exists := f.numbers[name]
	return col, exists
}

// Select copies the chosen rows, in the order given, into a new frame.
func (f *Frame)Select(rows []int) *Frame {
	out := New(f.timeName)
	out.order = append([]string{}, f.order...)

	out.times = make([]time.Time, len(rows))
	for i,r := range rows {
		out.times[i] = f.times[r]
	}
	for name,col := range f.labels {
		sel := make([]string, len(rows))
		for i,r := range rows {
			sel[i] = col[r]
		}
		out.labels[name] = sel
	}
	for name,col := range f.numbers {
		sel := make([]float64, len(rows))
		for i,r := range rows {
			sel[i] = col[r]
		}
		out.numbers[name] = sel
	}
	return out
}

// TrimToTimes copies the rows whose timestamps fall within [s,e]
// (inclusive) into a new frame, preserving row order.
func (f *Frame)TrimToTimes(s, e time.Time) *Frame {
	rows := []int{}
	for i,ts := range f.times {
		if !ts.Before(s) && !ts.After(e) {
			rows = append(rows, i)
		}
	}
	return f.Select(rows)
}

// SortByTime returns a copy with rows in ascending time order. The sort is
// stable, so rows sharing a timestamp keep their relative order.
func (f *Frame)SortByTime() *Frame {
	rows := make([]int, f.Len())
	for i := range rows {
		rows[i] = i
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return f.times[rows[i]].Before(f.times[rows[j]])
	})
	return f.Select(rows)
}
