package domain

// Immutable geographic coordinate (latitude, longitude) in degrees.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Validate reports the first axis outside the valid range
// (latitude [-90, 90], longitude [-180, 180]).
func (c Coordinate) Validate() error {
	if c.Lat < -90 || c.Lat > 90 {
		return &CoordinateRangeError{Axis: "latitude", Value: c.Lat}
	}
	if c.Lon < -180 || c.Lon > 180 {
		return &CoordinateRangeError{Axis: "longitude", Value: c.Lon}
	}
	return nil
}

// InRange reports whether both axes are within the valid range.
func (c Coordinate) InRange() bool { return c.Validate() == nil }

// Return the coordinate as [lon, lat] for external API compatibility.
func (c Coordinate) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }
