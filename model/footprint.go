package model

import "fmt"

// Footprint is the geodetic bounding rectangle of a scene, in decimal degrees.
type Footprint struct {
	XMin float64
	XMax float64
	YMin float64
	YMax float64
}

// Valid returns an error unless the rectangle is well-formed.
func (f Footprint) Valid() error {
	if f.XMin > f.XMax {
		return fmt.Errorf("footprint xmin %v exceeds xmax %v", f.XMin, f.XMax)
	}
	if f.YMin > f.YMax {
		return fmt.Errorf("footprint ymin %v exceeds ymax %v", f.YMin, f.YMax)
	}
	return nil
}
