// Copyright 2018, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package scenes

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/venicegeo/bf-scene-id/archive"
	"github.com/venicegeo/bf-scene-id/model"
	"github.com/venicegeo/bf-scene-id/util"
)

// Naming convention for Sentinel-1 SAFE products, e.g.
// S1A_IW_GRDH_1SDV_20150408T053103_20150408T053204_005388_006D8D_5FAC.SAFE
var safeScenePattern = regexp.MustCompile(
	`^(?P<sensor>S1[AB])_` +
		`(?P<beam>S1|S2|S3|S4|S5|S6|IW|EW|WV|EN|N1|N2|N3|N4|N5|N6|IM)_` +
		`(?P<product>SLC|GRD|OCN)(?:F|H|M|_)_` +
		`(?:1|2)` +
		`(?P<category>S|A)` +
		`(?P<pols>SH|SV|DH|DV)_` +
		`(?P<start>[0-9]{8}T[0-9]{6})_` +
		`(?P<stop>[0-9]{8}T[0-9]{6})_` +
		`(?:[0-9]{6})_` +
		`(?:[0-9A-F]{6})_` +
		`(?:[0-9A-F]{4})` +
		`\.SAFE$`)

// per-component annotation files inside a SAFE container
var safeAnnotationPattern = regexp.MustCompile(
	`^s1[ab]-` +
		`(?P<swath>s[1-6]|iw[1-3]?|ew[1-5]?|wv[1-2]|n[1-6])-` +
		`(?P<product>slc|grd|ocn)-` +
		`(?P<pol>hh|hv|vv|vh)-` +
		`(?P<start>[0-9]{8}t[0-9]{6})-` +
		`(?P<stop>[0-9]{8}t[0-9]{6})-` +
		`(?:[0-9]{6})-(?:[0-9a-f]{6})-` +
		`(?P<id>[0-9]{3})` +
		`\.xml$`)

var safePolarizations = map[string][]string{
	"SH": {"HH"},
	"SV": {"VV"},
	"DH": {"HH", "HV"},
	"DV": {"VV", "VH"},
}

const safeProjection = "+proj=longlat +ellps=WGS84 +datum=WGS84 +no_defs"

var safeOverlayPattern = regexp.MustCompile(`map-overlay\.kml$`)

// SAFE handles Sentinel-1 SAFE products. All acquisition metadata is encoded
// in the container name itself; the raster header is only consulted for pixel
// spacing under ModeFull.
type SAFE struct {
	base
	beam     string
	product  string
	category string
	pols     string
}

// NewSAFE recognizes the scene as a Sentinel-1 SAFE product and parses its
// metadata.
func NewSAFE(view *archive.View, mode model.Mode) (*SAFE, error) {
	handler := &SAFE{base: newBase(view)}
	if err := handler.Examine(); err != nil {
		return nil, err
	}
	if err := handler.ParseMetadata(mode); err != nil {
		return nil, err
	}
	return handler, nil
}

// Examine implements the Handler interface.
func (h *SAFE) Examine() error {
	return h.examine(safeScenePattern)
}

// ParseMetadata implements the Handler interface.
func (h *SAFE) ParseMetadata(mode model.Mode) error {
	match := safeScenePattern.FindStringSubmatch(filepath.Base(h.file))
	if match == nil {
		return ErrNotRecognized
	}
	groups := captures(safeScenePattern, match)

	h.beam = groups["beam"]
	h.product = groups["product"]
	h.category = groups["category"]
	h.pols = groups["pols"]
	if h.product == "OCN" {
		return &UnsupportedProductError{Product: filepath.Base(h.file), Reason: "ocean products are not supported"}
	}
	if h.category == "A" {
		return &UnsupportedProductError{Product: filepath.Base(h.file), Reason: "annotation-only products are not supported"}
	}

	h.meta.Sensor = groups["sensor"]
	h.meta.Product = h.product
	h.meta.Polarizations = safePolarizations[h.pols]
	h.meta.Start = groups["start"]
	h.meta.Stop = groups["stop"]
	h.meta.Orbit = orbitFromStart(h.meta.Start)
	h.meta.Projection = safeProjection

	if mode == model.ModeFull {
		if err := h.readHeader(); err != nil {
			return err
		}
		// the manifest carries no sensor extension; projection stays the
		// fixed long/lat one from the naming convention
		h.meta.Projection = safeProjection
		var err error
		if h.meta.SpacingRange, err = h.fields.Float("PIXEL_SPACING"); err != nil {
			return err
		}
		if h.meta.SpacingAzimuth, err = h.fields.Float("LINE_SPACING"); err != nil {
			return err
		}
	}
	return h.meta.Validate()
}

// orbitFromStart derives the pass direction from the time of day of the
// acquisition start: descending before local noon, ascending after. This is a
// heuristic for sun-synchronous dawn-dusk orbits, exposed for direct
// verification rather than treated as ground truth.
func orbitFromStart(start string) model.OrbitDirection {
	parts := strings.SplitN(start, "T", 2)
	if len(parts) != 2 {
		return ""
	}
	timeOfDay, err := strconv.Atoi(parts[1])
	if err != nil {
		return ""
	}
	if timeOfDay < 120000 {
		return model.Descending
	}
	return model.Ascending
}

// kml is the minimal slice of the footprint sidecar document we care about:
// the first coordinate ring.
type kmlCoordinates struct {
	Text string `xml:",chardata"`
}

// Corners implements the Handler interface. The footprint comes from the
// map-overlay sidecar inside the container, independent of any raster header.
func (h *SAFE) Corners() (model.Footprint, error) {
	overlays, err := h.view.ListMatching(safeOverlayPattern)
	if err != nil {
		return model.Footprint{}, err
	}
	if len(overlays) == 0 {
		return model.Footprint{}, fmt.Errorf("no map-overlay sidecar in scene")
	}
	body, err := h.view.ReadFile(overlays[0])
	if err != nil {
		return model.Footprint{}, err
	}
	return footprintFromOverlay(body)
}

func footprintFromOverlay(body []byte) (model.Footprint, error) {
	decoder := xml.NewDecoder(strings.NewReader(string(body)))
	for {
		token, err := decoder.Token()
		if err != nil {
			return model.Footprint{}, fmt.Errorf("no coordinates in map-overlay sidecar: %w", err)
		}
		start, ok := token.(xml.StartElement)
		if !ok || start.Name.Local != "coordinates" {
			continue
		}
		var coordinates kmlCoordinates
		if err := decoder.DecodeElement(&coordinates, &start); err != nil {
			return model.Footprint{}, err
		}
		return footprintFromRing(coordinates.Text)
	}
}

// footprintFromRing parses a whitespace-separated list of lon,lat[,alt]
// tuples into its extrema.
func footprintFromRing(ring string) (model.Footprint, error) {
	var footprint model.Footprint
	first := true
	for _, tuple := range strings.Fields(ring) {
		parts := strings.Split(tuple, ",")
		if len(parts) < 2 {
			return model.Footprint{}, fmt.Errorf("malformed coordinate tuple %q in sidecar", tuple)
		}
		lon, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return model.Footprint{}, err
		}
		lat, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return model.Footprint{}, err
		}
		if first {
			footprint = model.Footprint{XMin: lon, XMax: lon, YMin: lat, YMax: lat}
			first = false
			continue
		}
		footprint.XMin = min(footprint.XMin, lon)
		footprint.XMax = max(footprint.XMax, lon)
		footprint.YMin = min(footprint.YMin, lat)
		footprint.YMax = max(footprint.YMax, lat)
	}
	if first {
		return model.Footprint{}, fmt.Errorf("empty coordinate ring in sidecar")
	}
	return footprint, nil
}

// OutnameBase implements the Handler interface.
func (h *SAFE) OutnameBase() string {
	fields := []string{
		padUnderscore(h.meta.Sensor, 4),
		padUnderscore(h.beam, 4),
		string(h.meta.Orbit),
		h.meta.Start,
	}
	return strings.Join(fields, "_")
}

// Convert imports each swath/polarization component through the external
// processor. The scene must be materialized first.
func (h *SAFE) Convert(targetDir string) error {
	if h.view.Kind != archive.KindDirectory {
		return fmt.Errorf("scene is not yet unpacked")
	}
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return err
	}
	annotations, err := h.view.ListMatching(safeAnnotationPattern)
	if err != nil {
		return err
	}
	root := h.file
	for _, annotation := range annotations {
		// only top-level annotation files; the calibration subdirectory
		// carries differently named sidecars and never matches
		name := filepath.Base(annotation)
		match := safeAnnotationPattern.FindStringSubmatch(name)
		if match == nil {
			continue
		}
		groups := captures(safeAnnotationPattern, match)

		tiff := filepath.Join(root, "measurement", strings.TrimSuffix(name, ".xml")+".tiff")
		calibration := filepath.Join(root, "annotation", "calibration", "calibration-"+name)
		// the noise annotation is excluded: it has been found to cause
		// severe image artifacts
		noise := "-"

		fields := []string{
			padUnderscore(h.meta.Sensor, 4),
			padUnderscore(strings.ToUpper(groups["swath"]), 4),
			string(h.meta.Orbit),
			h.meta.Start,
			strings.ToUpper(groups["pol"]),
			groups["product"],
		}
		outname := filepath.Join(targetDir, strings.Join(fields, "_"))

		if groups["product"] == "slc" {
			err = h.runner.Run("par_S1_SLC", tiff, annotation, calibration, noise,
				outname+".par", outname, outname+".tops_par")
		} else {
			err = h.runner.Run("par_S1_GRD", tiff, annotation, calibration, noise,
				outname+".par", outname)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Calibrate is a no-op: radiometric calibration is already applied during
// import of SAFE products.
func (h *SAFE) Calibrate(replace bool) error {
	util.LogInfo(&util.BasicLogContext{}, "calibration already performed during import")
	return nil
}

// Unpack materializes the container below targetDir, nested under the scene
// basename. The materialized directory itself becomes the descriptor.
func (h *SAFE) Unpack(targetDir string) error {
	outdir := filepath.Join(targetDir, filepath.Base(h.file))
	view, err := h.view.Unpack(outdir)
	if err != nil {
		return err
	}
	h.view = view
	h.file = view.Path
	return nil
}
