package domain

import "time"

// ObservationPoint is one station's daily weather observation as handed over
// by the forecast collaborator. The evaporation depth serves as a reference
// evapotranspiration (ET0) proxy. Consumed read-only.
type ObservationPoint struct {
	Date    time.Time // calendar day of the observation
	Coord   Coordinate
	EvapMM  float64 // daily evaporation depth in millimeters
	TempMin *float64
	TempMax *float64
	Name    string // station name, may be empty
	Area    string // geographic area label, may be empty
}

// Descriptor returns the identifying fields recorded when this point is
// skipped during selection.
func (p ObservationPoint) Descriptor() SkippedPoint {
	return SkippedPoint{
		Name: p.Name,
		Area: p.Area,
		Lat:  p.Coord.Lat,
		Lon:  p.Coord.Lon,
	}
}
