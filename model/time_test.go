package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTime_LegacyDayMonthYear(t *testing.T) {
	// Tested code
	normalized, ok := NormalizeTime("12-JAN-2003 10:11:12.123456")

	// Asserts
	assert.True(t, ok)
	assert.Equal(t, "20030112T101112", normalized)
}

func TestNormalizeTime_CompactNumeric(t *testing.T) {
	normalized, ok := NormalizeTime("20030112101112123456")

	assert.True(t, ok)
	assert.Equal(t, "20030112T101112", normalized)
}

func TestNormalizeTime_ISOWithFraction(t *testing.T) {
	normalized, ok := NormalizeTime("2003-01-12T10:11:12.123456")

	assert.True(t, ok)
	assert.Equal(t, "20030112T101112", normalized)
}

func TestNormalizeTime_ISOWithFractionAndZone(t *testing.T) {
	normalized, ok := NormalizeTime("2003-01-12T10:11:12.123456Z")

	assert.True(t, ok)
	assert.Equal(t, "20030112T101112", normalized)
}

func TestNormalizeTime_PassesThroughNonTimes(t *testing.T) {
	for _, value := range []string{"DESCENDING", "12.5", "52123456", ""} {
		normalized, ok := NormalizeTime(value)

		assert.False(t, ok, value)
		assert.Equal(t, value, normalized)
	}
}

func TestSceneMetadata_Validate(t *testing.T) {
	// Mock
	meta := SceneMetadata{
		Sensor:        "ASAR",
		Polarizations: []string{"VV"},
		Start:         "20040102T102928",
		Stop:          "20040102T102944",
	}

	// Asserts
	assert.Nil(t, meta.Validate())

	meta.Stop = "20040102T102900"
	assert.Error(t, meta.Validate())

	meta.Stop = "20040102T102944"
	meta.Polarizations = nil
	assert.Error(t, meta.Validate())
}

func TestFootprint_Valid(t *testing.T) {
	assert.Nil(t, Footprint{XMin: 10.2, XMax: 11.8, YMin: -1.3, YMax: 0.4}.Valid())
	assert.Error(t, Footprint{XMin: 11.8, XMax: 10.2, YMin: -1.3, YMax: 0.4}.Valid())
	assert.Error(t, Footprint{XMin: 10.2, XMax: 11.8, YMin: 0.4, YMax: -1.3}.Valid())
}
