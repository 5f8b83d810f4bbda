package flightpandas

import (
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/skypies/geo"

	"github.com/damanikjosh/flightpandas/frame"
)

// Config names the columns a Collection is built from. Keys, Time, Lat and
// Lon are required; every other numeric column in the frame rides along as
// an extra attribute. All configuration is explicit - there are no
// process-wide defaults.
type Config struct {
	Keys string // grouping column; must be a label column
	Time string // timestamp column; must be the frame's time axis
	Lat  string
	Lon  string

	// Heading optionally names the extra column holding a compass heading,
	// so resampling interpolates it circularly. Feeds disagree on the name
	// ("heading", "hdg", "track", "trk"); empty means DefaultHeadingColumn.
	Heading string

	// Logger receives the warning when a broadcast operation empties a
	// group and its key is dropped. Nil means slog.Default().
	Logger *slog.Logger
}

func (c Config)logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// A Collection is an ordered mapping from flight key to trajectory, built
// once from a frame partitioned by the key column. It is never mutated:
// every broadcast operation returns a new Collection, and the source frame
// is read and left alone. Keys keep the order of their first appearance in
// the source rows.
type Collection struct {
	cfg     Config
	extras  []string // auxiliary numeric column names, in frame column order
	keys    []string // first-appearance order
	flights map[string]*Trajectory
}

// NewCollection partitions the frame's rows by the key column and builds
// one trajectory per key. Within each group, rows are sorted by time and
// duplicate timestamps collapse to the last row given.
func NewCollection(f *frame.Frame, cfg Config) (*Collection, error) {
	for _,name := range []string{cfg.Keys, cfg.Time, cfg.Lat, cfg.Lon} {
		if !f.HasColumn(name) {
			return nil, fmt.Errorf("column %q: %w", name, ErrMissingColumn)
		}
	}
	if f.TimeColumn() != cfg.Time {
		return nil, fmt.Errorf("column %q is not the time axis (%q is): %w",
			cfg.Time, f.TimeColumn(), ErrMissingColumn)
	}
	keyvals,exists := f.Labels(cfg.Keys)
	if !exists {
		return nil, fmt.Errorf("key column %q is not a label column: %w", cfg.Keys, ErrMissingColumn)
	}
	lats,exists := f.Numbers(cfg.Lat)
	if !exists {
		return nil, fmt.Errorf("lat column %q is not numeric: %w", cfg.Lat, ErrMissingColumn)
	}
	lons,exists := f.Numbers(cfg.Lon)
	if !exists {
		return nil, fmt.Errorf("lon column %q is not numeric: %w", cfg.Lon, ErrMissingColumn)
	}
	times := f.Times()

	extras := []string{}
	extraCols := [][]float64{}
	for _,name := range f.Columns() {
		if name == cfg.Time || name == cfg.Lat || name == cfg.Lon {
			continue
		}
		if col,isNumber := f.Numbers(name); isNumber {
			extras = append(extras, name)
			extraCols = append(extraCols, col)
		}
	}

	c := Collection{cfg: cfg, extras: extras, flights: map[string]*Trajectory{}}

	grouped := map[string][]Position{}
	for i := 0; i < f.Len(); i++ {
		key := keyvals[i]
		if _,seen := grouped[key]; !seen {
			c.keys = append(c.keys, key)
		}
		pos := Position{
			TimestampUTC: times[i],
			Latlong:      geo.Latlong{Lat: lats[i], Long: lons[i]},
		}
		if len(extras) > 0 {
			pos.Extra = make(map[string]float64, len(extras))
			for j,name := range extras {
				pos.Extra[name] = extraCols[j][i]
			}
		}
		grouped[key] = append(grouped[key], pos)
	}

	for _,key := range c.keys {
		traj,err := NewTrajectory(key, grouped[key])
		if err != nil {
			return nil, err
		}
		traj.Heading = cfg.Heading
		c.flights[key] = traj
	}

	return &c, nil
}

func (c *Collection)Len() int { return len(c.keys) }

// Keys returns the flight keys in first-appearance order.
func (c *Collection)Keys() []string { return append([]string{}, c.keys...) }

func (c *Collection)Get(key string) (*Trajectory, error) {
	t,exists := c.flights[key]
	if !exists {
		return nil, fmt.Errorf("%q: %w", key, ErrUnknownKey)
	}
	return t, nil
}

// Flights yields (key, trajectory) pairs in first-appearance order.
func (c *Collection)Flights() iter.Seq2[string, *Trajectory] {
	return func(yield func(string, *Trajectory) bool) {
		for _,key := range c.keys {
			if !yield(key, c.flights[key]) {
				return
			}
		}
	}
}

// Resample broadcasts Trajectory.Resample across every group. Failure
// policy is fail-fast: the first failing key aborts the whole operation,
// and the returned error names it. A group whose resample comes back empty
// is dropped from the result, with a warning - never a half-built group.
func (c *Collection)Resample(freq time.Duration, method Method) (*Collection, error) {
	out := c.emptyLike()
	for _,key := range c.keys {
		traj,err := c.flights[key].Resample(freq, method)
		if err != nil {
			return nil, err // the error already names the key
		}
		if traj.Len() == 0 {
			c.cfg.logger().Warn("resample emptied group, dropping key",
				"key", key, "freq", freq)
			continue
		}
		out.insert(key, traj)
	}
	return out, nil
}

// Simplify broadcasts RDP simplification across every group. Fail-fast, as
// with Resample; the key set is preserved 1:1.
func (c *Collection)Simplify(tolerance float64) (*Collection, error) {
	out := c.emptyLike()
	for _,key := range c.keys {
		traj,err := NewRDP(c.flights[key], tolerance).Eval()
		if err != nil {
			return nil, err
		}
		out.insert(key, traj)
	}
	return out, nil
}

// Split fans each group out through the splitter and re-keys the pieces by
// the identities the splitter assigned. If two pieces share an identity,
// the later insertion wins; a key's position in the iteration order is
// fixed by its first appearance.
func (c *Collection)Split(s Splitter) (*Collection, error) {
	out := c.emptyLike()
	for _,key := range c.keys {
		segs,err := s.Split(c.flights[key])
		if err != nil {
			return nil, fmt.Errorf("split %q: %w", key, err)
		}
		for _,seg := range segs {
			out.insert(seg.Key, seg)
		}
	}
	return out, nil
}

// Flatten reassembles the collection into one frame: all trajectories'
// rows concatenated, ordered by (key order, time), under the original
// column names.
func (c *Collection)Flatten() (*frame.Frame, error) {
	keys := []string{}
	times := []time.Time{}
	lats := []float64{}
	lons := []float64{}
	extras := make(map[string][]float64, len(c.extras))

	for _,key := range c.keys {
		for _,p := range c.flights[key].Positions {
			keys = append(keys, key)
			times = append(times, p.TimestampUTC)
			lats = append(lats, p.Lat)
			lons = append(lons, p.Long)
			for _,name := range c.extras {
				extras[name] = append(extras[name], p.Get(name))
			}
		}
	}

	f := frame.New(c.cfg.Time)
	if err := f.SetTimes(times); err != nil {
		return nil, err
	}
	if err := f.SetLabels(c.cfg.Keys, keys); err != nil {
		return nil, err
	}
	if err := f.SetNumbers(c.cfg.Lat, lats); err != nil {
		return nil, err
	}
	if err := f.SetNumbers(c.cfg.Lon, lons); err != nil {
		return nil, err
	}
	for _,name := range c.extras {
		if err := f.SetNumbers(name, extras[name]); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func (c *Collection)emptyLike() *Collection {
	return &Collection{cfg: c.cfg, extras: c.extras, flights: map[string]*Trajectory{}}
}

func (c *Collection)insert(key string, t *Trajectory) {
	if _,seen := c.flights[key]; !seen {
		c.keys = append(c.keys, key)
	}
	c.flights[key] = t
}
