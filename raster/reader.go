// Package raster defines the collaborator interface for reading raster image
// headers and the normalization rules applied to the metadata they report.
// Pixel access is out of scope: only header-level information is handled.
package raster

import (
	"github.com/venicegeo/bf-scene-id/archive"
	"github.com/venicegeo/bf-scene-id/model"
)

// Info is the raw description of an image header.
type Info struct {
	Cols       int
	Rows       int
	Bands      int
	Projection string
	GCPs       []model.GCP
	Metadata   map[string]string
}

// Reader opens an image header and reports its raw metadata.
type Reader interface {
	Open(path string) (*Info, error)
}

// VSIPath rewrites a virtual member path into the form the GDAL virtual
// filesystem expects for the given container kind.
func VSIPath(kind archive.Kind, path string) string {
	switch kind {
	case archive.KindZip:
		return "/vsizip/" + path
	case archive.KindTar:
		return "/vsitar/" + path
	}
	return path
}
