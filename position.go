package flightpandas

import (
	"fmt"
	"math"
	"time"

	"github.com/skypies/geo"
)

// DefaultHeadingColumn is the extra attribute interpolated circularly
// (350 -> 010 crosses north) when the caller doesn't designate one.
const DefaultHeadingColumn = "heading"

// Position locates a flight in space and time. Auxiliary numeric readings
// (altitude, groundspeed, heading, etc) ride along in Extra; a NaN value
// means the reading is missing at that timestamp.
type Position struct {
	TimestampUTC time.Time // Always in UTC, to make life SIMPLE

	geo.Latlong // Embedded type, so we can call all the geo stuff directly on positions

	Extra map[string]float64
}

func (p Position)String() string {
	return fmt.Sprintf("[%s] %s", p.TimestampUTC.Format("2006.01.02 15:04:05"), p.Latlong)
}

// Get returns the named extra attribute, or NaN if it was never recorded.
func (p Position)Get(name string) float64 {
	if v,exists := p.Extra[name]; exists {
		return v
	}
	return math.NaN()
}

// Copy returns a position that shares nothing with the original.
func (p Position)Copy() Position {
	out := p
	if p.Extra != nil {
		out.Extra = make(map[string]float64, len(p.Extra))
		for name,v := range p.Extra {
			out.Extra[name] = v
		}
	}
	return out
}

// InterpolateTo computes the position at ratio of the way between two
// samples. Latitude, longitude and every extra attribute interpolate
// linearly per coordinate; the heading column goes the short way around the
// compass. An extra attribute present on only one side comes out NaN.
func (from Position)InterpolateTo(to Position, ratio float64) Position {
	return from.interpolateTo(to, ratio, DefaultHeadingColumn)
}

// interpolateTo is InterpolateTo with the circular column named by the
// caller (feeds call their heading column "hdg", "track", "trk", ...).
func (from Position)interpolateTo(to Position, ratio float64, heading string) Position {
	pos := Position{
		TimestampUTC: interpolateTime(from.TimestampUTC, to.TimestampUTC, ratio),
		Latlong: geo.Latlong{
			Lat:  interpolateFloat64(from.Lat, to.Lat, ratio),
			Long: interpolateFloat64(from.Long, to.Long, ratio),
		},
	}

	if len(from.Extra) == 0 && len(to.Extra) == 0 {
		return pos
	}

	pos.Extra = map[string]float64{}
	for name,v0 := range from.Extra {
		v1,exists := to.Extra[name]
		if !exists {
			pos.Extra[name] = math.NaN()
		} else if name == heading {
			pos.Extra[name] = interpolateHeading(v0, v1, ratio)
		} else {
			pos.Extra[name] = interpolateFloat64(v0, v1, ratio)
		}
	}
	for name := range to.Extra {
		if _,exists := from.Extra[name]; !exists {
			pos.Extra[name] = math.NaN()
		}
	}

	return pos
}

func interpolateFloat64(from, to, ratio float64) float64 {
	return from + (to-from)*ratio
}

// interpolateHeading takes the short way around the compass, in either
// direction, and lands back in [0,360).
func interpolateHeading(from, to, ratio float64) float64 {
	h := math.Mod(from+geo.HeadingDelta(from, to)*ratio, 360.0)
	if h < 0 {
		h += 360.0
	}
	return h
}

func interpolateTime(from, to time.Time, ratio float64) time.Time {
	d := to.Sub(from)
	return from.Add(time.Duration(ratio * float64(d.Nanoseconds())))
}
