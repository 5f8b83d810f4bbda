package flightpandas

import (
	"fmt"
	"math"
	"sort"
	"time"

	geom "github.com/paulmach/go.geo"
	"github.com/skypies/geo"
)

// Method selects how Resample fills in values at new grid timestamps.
type Method string

const (
	Linear  Method = "linear"  // interpolate between the two bracketing samples
	Nearest Method = "nearest" // copy the closer sample; ties go to the earlier one
	None    Method = "none"    // exact timestamp matches only; everything else is NaN
)

// A Trajectory is one flight's positions, ordered in time, beginning to
// end. Operations never mutate it; they hand back a fresh Trajectory.
type Trajectory struct {
	Key       string // flight identity
	Positions []Position

	// Heading names the extra attribute holding a compass heading, which
	// Resample interpolates circularly rather than linearly. Empty means
	// DefaultHeadingColumn.
	Heading string
}

type byTimestampAscending []Position

func (a byTimestampAscending) Len() int           { return len(a) }
func (a byTimestampAscending) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTimestampAscending) Less(i, j int) bool {
	return a[i].TimestampUTC.Before(a[j].TimestampUTC)
}

// NewTrajectory builds a trajectory from raw positions: they are sorted
// ascending by timestamp (stable), and rows sharing a timestamp collapse to
// the last one given. Zero positions is an error; everything downstream
// assumes at least one point.
func NewTrajectory(key string, positions []Position) (*Trajectory, error) {
	if len(positions) == 0 {
		return nil, fmt.Errorf("trajectory %q: %w", key, ErrEmptyTrajectory)
	}

	pts := make([]Position, len(positions))
	copy(pts, positions)
	sort.Stable(byTimestampAscending(pts))

	out := make([]Position, 0, len(pts))
	for _,p := range pts {
		if n := len(out); n > 0 && out[n-1].TimestampUTC.Equal(p.TimestampUTC) {
			out[n-1] = p // duplicate timestamp: last write wins
			continue
		}
		out = append(out, p)
	}

	return &Trajectory{Key: key, Positions: out}, nil
}

func (t *Trajectory)Start() time.Time { return t.Positions[0].TimestampUTC }
func (t *Trajectory)End() time.Time { return t.Positions[len(t.Positions)-1].TimestampUTC }
func (t *Trajectory)Times() (s,e time.Time) { return t.Start(), t.End() }
func (t *Trajectory)Duration() time.Duration { return t.End().Sub(t.Start()) }
func (t *Trajectory)Len() int { return len(t.Positions) }

func (t *Trajectory)StartEndBoundingBox() geo.LatlongBox {
	// This isn't the actual bounding box for the trajectory; it assumes
	// mostly linear flight.
	return t.Positions[0].BoxTo(t.Positions[len(t.Positions)-1].Latlong)
}

func (t *Trajectory)String() string {
	str := fmt.Sprintf("Trajectory %q: %d points", t.Key, len(t.Positions))
	if len(t.Positions) > 1 {
		s,e := t.Positions[0], t.Positions[len(t.Positions)-1]
		str += fmt.Sprintf(", start=%s, %s, %.1fKM",
			s.TimestampUTC.Format("2006.01.02 15:04:05"),
			e.TimestampUTC.Sub(s.TimestampUTC), s.Dist(e.Latlong))
	}
	return str
}

// Resample projects the trajectory onto a regular grid of timestamps,
// anchored at the first position and stepping by freq, running no further
// than the last position. There is no extrapolation: the grid never leaves
// [Start, End]. A single-point trajectory resamples to that one point,
// since it anchors the grid.
func (t *Trajectory)Resample(freq time.Duration, method Method) (*Trajectory, error) {
	if freq <= 0 {
		return nil, fmt.Errorf("resample %q: freq %v: %w", t.Key, freq, ErrInvalidParameter)
	}
	switch method {
	case Linear, Nearest, None:
	default:
		return nil, fmt.Errorf("resample %q: method %q: %w", t.Key, method, ErrInvalidParameter)
	}

	out := Trajectory{Key: t.Key, Heading: t.Heading}
	last := t.End()
	i := 0 // last original position at-or-before the grid point
	for grid := t.Start(); !grid.After(last); grid = grid.Add(freq) {
		for i < len(t.Positions)-1 && !t.Positions[i+1].TimestampUTC.After(grid) {
			i++
		}
		out.Positions = append(out.Positions, t.positionAt(grid, i, method))
	}

	return &out, nil
}

// positionAt fills in the value at one grid timestamp. The caller
// guarantees Positions[i] is the latest sample at-or-before grid.
func (t *Trajectory)positionAt(grid time.Time, i int, method Method) Position {
	cur := t.Positions[i]
	if cur.TimestampUTC.Equal(grid) {
		p := cur.Copy()
		p.TimestampUTC = grid
		return p
	}

	next := t.Positions[i+1] // i+1 exists: grid beyond the final sample is an exact hit

	switch method {
	case Linear:
		heading := t.Heading
		if heading == "" {
			heading = DefaultHeadingColumn
		}
		ratio := float64(grid.Sub(cur.TimestampUTC)) / float64(next.TimestampUTC.Sub(cur.TimestampUTC))
		p := cur.interpolateTo(next, ratio, heading)
		p.TimestampUTC = grid
		return p

	case Nearest:
		src := cur
		if next.TimestampUTC.Sub(grid) < grid.Sub(cur.TimestampUTC) {
			src = next // strictly closer; ties stay with the earlier sample
		}
		p := src.Copy()
		p.TimestampUTC = grid
		return p

	default: // None: the grid point matched nothing, so it carries no values
		p := Position{
			TimestampUTC: grid,
			Latlong:      geo.Latlong{Lat: math.NaN(), Long: math.NaN()},
		}
		if len(cur.Extra) > 0 {
			p.Extra = make(map[string]float64, len(cur.Extra))
			for name := range cur.Extra {
				p.Extra[name] = math.NaN()
			}
		}
		return p
	}
}

// Coords returns the trajectory's (lon, lat) pairs, in order.
func (t *Trajectory)Coords() [][2]float64 {
	coords := make([][2]float64, len(t.Positions))
	for i,p := range t.Positions {
		coords[i] = [2]float64{p.Long, p.Lat}
	}
	return coords
}

// Path converts the trajectory into a line geometry. Anything shorter than
// two points has no line to speak of.
func (t *Trajectory)Path() (*geom.Path, error) {
	if len(t.Positions) < 2 {
		return nil, fmt.Errorf("trajectory %q has %d points: %w",
			t.Key, len(t.Positions), ErrInsufficientPoints)
	}
	path := geom.NewPath()
	for _,p := range t.Positions {
		path.Push(geom.NewPoint(p.Long, p.Lat))
	}
	return path, nil
}

// PathLengthKM is the geodesic length of the flown path, in kilometers.
func (t *Trajectory)PathLengthKM() float64 {
	km := 0.0
	for i := 1; i < len(t.Positions); i++ {
		km += t.Positions[i-1].Dist(t.Positions[i].Latlong)
	}
	return km
}

// Split hands the trajectory to the splitter; see the Splitter contract.
func (t *Trajectory)Split(s Splitter) ([]*Trajectory, error) {
	return s.Split(t)
}
