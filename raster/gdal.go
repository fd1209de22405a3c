package raster

import (
	"encoding/json"
	"fmt"
	"os/exec"

	"github.com/venicegeo/bf-scene-id/model"
	"github.com/venicegeo/bf-scene-id/util"
)

// GDALInfoReader reads image headers by shelling out to gdalinfo. The binary
// is resolved through GDALINFO_BIN, falling back to the PATH.
type GDALInfoReader struct {
	Bin string
}

type gdalInfoOutput struct {
	Size  []int `json:"size"`
	Bands []struct {
		Band int `json:"band"`
	} `json:"bands"`
	CoordinateSystem struct {
		WKT string `json:"wkt"`
	} `json:"coordinateSystem"`
	GCPs struct {
		CoordinateSystem struct {
			WKT string `json:"wkt"`
		} `json:"coordinateSystem"`
		GCPList []struct {
			Pixel float64 `json:"pixel"`
			Line  float64 `json:"line"`
			X     float64 `json:"x"`
			Y     float64 `json:"y"`
			Z     float64 `json:"z"`
		} `json:"gcpList"`
	} `json:"gcps"`
	Metadata map[string]map[string]string `json:"metadata"`
}

// Open runs gdalinfo -json against path and maps its report onto an Info.
func (r GDALInfoReader) Open(path string) (*Info, error) {
	bin := r.Bin
	if bin == "" {
		bin = util.GetGDALInfoBin()
	}
	raw, err := exec.Command(bin, "-json", path).Output()
	if err != nil {
		return nil, fmt.Errorf("gdalinfo failed for %s: %w", path, err)
	}
	var report gdalInfoOutput
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, fmt.Errorf("unexpected gdalinfo output for %s: %w", path, err)
	}

	info := Info{
		Bands:    len(report.Bands),
		Metadata: report.Metadata[""],
	}
	if len(report.Size) == 2 {
		info.Cols, info.Rows = report.Size[0], report.Size[1]
	}
	// scenes carry their georeferencing as GCPs; fall back to the plain
	// coordinate system when none are present
	info.Projection = report.GCPs.CoordinateSystem.WKT
	if info.Projection == "" {
		info.Projection = report.CoordinateSystem.WKT
	}
	for _, gcp := range report.GCPs.GCPList {
		info.GCPs = append(info.GCPs, model.GCP{
			Pixel: gcp.Pixel, Line: gcp.Line, X: gcp.X, Y: gcp.Y, Z: gcp.Z,
		})
	}
	if info.Metadata == nil {
		info.Metadata = map[string]string{}
	}
	return &info, nil
}
