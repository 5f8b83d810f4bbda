// Package flightpandas manages collections of flight trajectories - ordered
// sequences of timestamped geographic positions - and provides operations to
// resample, interpolate, simplify and split them, per flight or broadcast
// across a keyed collection. No storage imports.
package flightpandas
