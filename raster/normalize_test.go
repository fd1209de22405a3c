package raster

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/venicegeo/bf-scene-id/archive"
)

func TestNormalize_MicrodegreeRescale(t *testing.T) {
	// Mock
	metadata := map[string]string{
		"FIRST_NEAR_LAT":  "52123456",
		"FIRST_NEAR_LONG": "-1250000",
		"SPH_RANGE_LOOKS": "1",
	}

	// Tested code
	fields := Normalize(metadata)

	// Asserts: only LAT/LONG fields are rescaled
	lat, err := fields.Float("FIRST_NEAR_LAT")
	assert.Nil(t, err)
	assert.Equal(t, 52.123456, lat)
	lon, err := fields.Float("FIRST_NEAR_LONG")
	assert.Nil(t, err)
	assert.Equal(t, -1.25, lon)
	looks, err := fields.Float("SPH_RANGE_LOOKS")
	assert.Nil(t, err)
	assert.Equal(t, 1.0, looks)
}

func TestNormalize_TimestampRewrite(t *testing.T) {
	// Mock
	metadata := map[string]string{
		"MPH_SENSING_START": "12-JAN-2003 10:11:12.123456",
		"MPH_SENSING_STOP":  "2003-01-12T10:11:27.123456Z",
		"SPH_PASS":          "DESCENDING",
	}

	// Tested code
	fields := Normalize(metadata)

	// Asserts
	start, err := fields.String("MPH_SENSING_START")
	assert.Nil(t, err)
	assert.Equal(t, "20030112T101112", start)
	stop, err := fields.String("MPH_SENSING_STOP")
	assert.Nil(t, err)
	assert.Equal(t, "20030112T101127", stop)
	pass, err := fields.String("SPH_PASS")
	assert.Nil(t, err)
	assert.Equal(t, "DESCENDING", pass)
}

func TestFields_MissingField(t *testing.T) {
	fields := Normalize(map[string]string{})

	_, err := fields.String("MPH_SENSING_START")

	assert.Error(t, err)
	var missing *MissingFieldError
	assert.ErrorAs(t, err, &missing)
	assert.Equal(t, "MPH_SENSING_START", missing.Name)
}

func TestFields_FloatsMatching(t *testing.T) {
	// Mock
	fields := Normalize(map[string]string{
		"FIRST_NEAR_LAT": "52000000",
		"LAST_NEAR_LAT":  "51000000",
		"SPH_PASS":       "ASCENDING",
	})

	// Tested code
	values := fields.FloatsMatching(regexp.MustCompile("LAT"))

	// Asserts: sorted by key name
	assert.Equal(t, []float64{52.0, 51.0}, values)
}

func TestVSIPath(t *testing.T) {
	assert.Equal(t, "/vsizip//data/scene.zip/a.N1", VSIPath(archive.KindZip, "/data/scene.zip/a.N1"))
	assert.Equal(t, "/vsitar//data/scene.tar/a.N1", VSIPath(archive.KindTar, "/data/scene.tar/a.N1"))
	assert.Equal(t, "/data/scene/a.N1", VSIPath(archive.KindDirectory, "/data/scene/a.N1"))
}
