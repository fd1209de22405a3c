package model

import (
	"errors"
	"fmt"
)

// Mode selects how much metadata a handler extracts when parsing a scene.
type Mode string

// ModeBasic populates only the cheap, filename-derived fields.
const ModeBasic Mode = "basic"

// ModeFull additionally reads the raster header of the scene.
const ModeFull Mode = "full"

// OrbitDirection is the pass direction of the platform during acquisition.
type OrbitDirection string

// Ascending marks a south-to-north pass
const Ascending OrbitDirection = "A"

// Descending marks a north-to-south pass
const Descending OrbitDirection = "D"

// GCP is an image-pixel-to-geographic-coordinate correspondence reported by a
// raster header.
type GCP struct {
	Pixel float64
	Line  float64
	X     float64
	Y     float64
	Z     float64
}

// SceneMetadata holds the normalized acquisition metadata of a single scene.
// Filename-derived fields are populated at recognition time; header-derived
// fields (spacing, looks, GCPs) only under ModeFull.
type SceneMetadata struct {
	Sensor         string
	Product        string
	Polarizations  []string
	Start          string // compact timestamp, see CompactTimeLayout
	Stop           string
	Orbit          OrbitDirection
	SpacingRange   float64
	SpacingAzimuth float64
	LooksRange     float64
	LooksAzimuth   float64
	Projection     string
	GCPs           []GCP
}

// Validate checks the internal invariants of a fully populated record.
func (m *SceneMetadata) Validate() error {
	if len(m.Polarizations) == 0 {
		return errors.New("polarization list is empty")
	}
	if m.Start != "" && m.Stop != "" && m.Stop < m.Start {
		return fmt.Errorf("sensing stop %v precedes sensing start %v", m.Stop, m.Start)
	}
	return nil
}
