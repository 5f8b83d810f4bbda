package flightpandas

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// RDP simplifies a trajectory with the Ramer-Douglas-Peucker algorithm. It
// works on the (lat, lon) projection only - perpendicular Euclidean
// distance, no geodesic correction - and timestamps and extra attributes
// ride along with whichever points survive.
type RDP struct {
	traj      *Trajectory
	tolerance float64
}

// NewRDP sets up a simplifier; Eval runs it. Tolerance is in the same
// units as lat/lon.
func NewRDP(t *Trajectory, tolerance float64) *RDP {
	return &RDP{traj: t, tolerance: tolerance}
}

// Eval returns a new trajectory holding a subsequence of the input's
// positions: original order, nothing fabricated, endpoints always kept.
// A tolerance of zero returns the input unchanged.
func (r *RDP)Eval() (*Trajectory, error) {
	if r.tolerance < 0 {
		return nil, fmt.Errorf("simplify %q: tolerance %v: %w",
			r.traj.Key, r.tolerance, ErrInvalidParameter)
	}

	src := r.traj.Positions
	out := Trajectory{Key: r.traj.Key, Heading: r.traj.Heading}

	if r.tolerance == 0 || len(src) <= 2 {
		for _,p := range src {
			out.Positions = append(out.Positions, p.Copy())
		}
		return &out, nil
	}

	pts := make([]orb.Point, len(src))
	for i,p := range src {
		pts[i] = orb.Point{p.Long, p.Lat}
	}

	keep := make([]bool, len(src))
	keep[0], keep[len(src)-1] = true, true
	rdpMark(pts, 0, len(pts)-1, r.tolerance, keep)

	for i,p := range src {
		if keep[i] {
			out.Positions = append(out.Positions, p.Copy())
		}
	}
	return &out, nil
}

// rdpMark flags the interior points of pts[first..last] that survive. The
// span collapses to its endpoints when no interior point strays more than
// tolerance from the chord; otherwise the farthest point is kept and both
// halves are visited. Worst case O(n^2), fine at per-flight sizes.
func rdpMark(pts []orb.Point, first, last int, tolerance float64, keep []bool) {
	if last <= first+1 {
		return
	}

	maxDist, maxIdx := 0.0, first
	for i := first + 1; i < last; i++ {
		if d := planar.DistanceFromSegment(pts[first], pts[last], pts[i]); d > maxDist {
			maxDist, maxIdx = d, i
		}
	}

	if maxDist <= tolerance {
		return
	}

	keep[maxIdx] = true
	rdpMark(pts, first, maxIdx, tolerance, keep)
	rdpMark(pts, maxIdx, last, tolerance, keep)
}
