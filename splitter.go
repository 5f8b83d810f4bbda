package flightpandas

import (
	"fmt"
	"time"
)

// A Splitter partitions one trajectory into several. The pieces must be a
// contiguous, non-overlapping, order-preserving partition of the input:
// concatenating their positions reproduces the original exactly. Each
// piece carries its own identity, supplied by the splitter; the Collection
// never invents keys on a splitter's behalf.
type Splitter interface {
	Split(t *Trajectory) ([]*Trajectory, error)
}

// DefaultSplitGap is how large a gap of missing time can exist before we
// conclude the recording covers two separate flights.
const DefaultSplitGap = 30 * time.Minute

// TimeGapSplitter starts a new segment wherever the silence between
// consecutive positions exceeds Gap. Segment n of flight K is identified
// as "K/n".
type TimeGapSplitter struct {
	Gap time.Duration // zero means DefaultSplitGap
}

func (s TimeGapSplitter)Split(t *Trajectory) ([]*Trajectory, error) {
	gap := s.Gap
	if gap <= 0 {
		gap = DefaultSplitGap
	}

	segs := []*Trajectory{}
	start := 0
	for i := 1; i <= len(t.Positions); i++ {
		if i < len(t.Positions) &&
			t.Positions[i].TimestampUTC.Sub(t.Positions[i-1].TimestampUTC) <= gap {
			continue
		}
		segs = append(segs, &Trajectory{
			Key:       fmt.Sprintf("%s/%d", t.Key, len(segs)),
			Positions: append([]Position{}, t.Positions[start:i]...),
			Heading:   t.Heading,
		})
		start = i
	}
	return segs, nil
}
