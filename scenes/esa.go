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
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/venicegeo/bf-scene-id/archive"
	"github.com/venicegeo/bf-scene-id/model"
)

// Naming convention for legacy ESA radar products (ERS-1/2 SAR, Envisat ASAR),
// e.g. ASA_APP_1PTDPA20040102_102928_000000162023_00051_09624_0240.N1
var esaScenePattern = regexp.MustCompile(
	`(?P<product_id>(?:SAR|ASA)_(?:IM(?:S|P|G|M|_)|AP(?:S|P|G|M|_)|WV(?:I|S|W|_))_[012B][CP])` +
		`(?P<processing_stage>[A-Z])` +
		`(?P<originator>[A-Z\-]{3})` +
		`(?P<start_day>[0-9]{8})_` +
		`(?P<start_time>[0-9]{6})_` +
		`(?P<duration>[0-9]{8})` +
		`(?P<phase>[0-9A-Z]{1})` +
		`(?P<cycle>[0-9]{3})_` +
		`(?P<relative_orbit>[0-9]{5})_` +
		`(?P<absolute_orbit>[0-9]{5})_` +
		`(?P<counter>[0-9]{4})\.` +
		`(?P<satellite_id>[EN][12])` +
		`(?P<extension>(?:\.zip|\.tar\.gz|))$`)

// sub-grammar of the product id, disambiguating sensor family and processing
// level
var esaProductPattern = regexp.MustCompile(
	`(?P<sat_id>(?:SAR|ASA))_` +
		`(?P<image_mode>(?:IM(?:S|P|G|M|_)|AP(?:S|P|G|M|_)|WV(?:I|S|W|_)))_` +
		`(?P<processing_level>[012B][CP])`)

var esaSensorBySatelliteID = map[string]string{
	"E1": "ERS1",
	"E2": "ERS2",
	"N1": "ASAR",
}

var esaPolarizationFieldPattern = regexp.MustCompile("TX_RX_POLAR")

// calibration constant in dB per sensor
var esaCalibrationConstants = map[string]float64{
	"ASAR": 55.0,
	"ERS1": 58.24,
	"ERS2": 59.75,
}

// ESA handles legacy ESA radar products. Deep metadata lives in the product
// header under SECTION_FIELD keys and is only read under ModeFull.
type ESA struct {
	base
	productID       string
	imageMode       string
	processingLevel string
	gammaDir        string
}

// NewESA recognizes the scene as a legacy ESA product and parses its
// metadata.
func NewESA(view *archive.View, mode model.Mode) (*ESA, error) {
	handler := &ESA{base: newBase(view)}
	if err := handler.Examine(); err != nil {
		return nil, err
	}
	if err := handler.ParseMetadata(mode); err != nil {
		return nil, err
	}
	return handler, nil
}

// Examine implements the Handler interface.
func (h *ESA) Examine() error {
	return h.examine(esaScenePattern)
}

// ParseMetadata implements the Handler interface.
func (h *ESA) ParseMetadata(mode model.Mode) error {
	match := esaScenePattern.FindStringSubmatch(filepath.Base(h.file))
	if match == nil {
		return ErrNotRecognized
	}
	groups := captures(esaScenePattern, match)

	h.productID = groups["product_id"]
	pid := esaProductPattern.FindStringSubmatch(h.productID)
	if pid == nil {
		return ErrNotRecognized
	}
	pidGroups := captures(esaProductPattern, pid)
	h.imageMode = pidGroups["image_mode"]
	h.processingLevel = pidGroups["processing_level"]
	if strings.HasPrefix(h.processingLevel, "0") {
		return &UnsupportedProductError{Product: h.productID, Reason: "product level 0 is not supported"}
	}

	h.meta.Product = h.productID
	h.meta.Sensor = esaSensorBySatelliteID[groups["satellite_id"]]
	h.meta.Start = groups["start_day"] + "T" + groups["start_time"]

	if mode != model.ModeFull {
		return nil
	}
	if err := h.readHeader(); err != nil {
		return err
	}

	switch h.meta.Sensor {
	case "ASAR":
		polarizations, err := h.asarPolarizations()
		if err != nil {
			return err
		}
		h.meta.Polarizations = polarizations
	case "ERS1", "ERS2":
		h.meta.Polarizations = []string{"VV"}
	}

	pass, err := h.fields.String("SPH_PASS")
	if err != nil {
		return err
	}
	h.meta.Orbit = model.OrbitDirection(pass[:1])
	if h.meta.Start, err = h.fields.String("MPH_SENSING_START"); err != nil {
		return err
	}
	if h.meta.Stop, err = h.fields.String("MPH_SENSING_STOP"); err != nil {
		return err
	}
	if h.meta.SpacingRange, err = h.fields.Float("SPH_RANGE_SPACING"); err != nil {
		return err
	}
	if h.meta.SpacingAzimuth, err = h.fields.Float("SPH_AZIMUTH_SPACING"); err != nil {
		return err
	}
	if h.meta.LooksRange, err = h.fields.Float("SPH_RANGE_LOOKS"); err != nil {
		return err
	}
	if h.meta.LooksAzimuth, err = h.fields.Float("SPH_AZIMUTH_LOOKS"); err != nil {
		return err
	}
	return h.meta.Validate()
}

// asarPolarizations derives the channel list from the TX_RX_POLAR header
// fields, e.g. "H/H" -> HH.
func (h *ESA) asarPolarizations() ([]string, error) {
	var polarizations []string
	for _, key := range h.fields.Keys(esaPolarizationFieldPattern) {
		value, err := h.fields.String(key)
		if err != nil {
			return nil, err
		}
		value = strings.ReplaceAll(value, "/", "")
		if value != "" {
			polarizations = append(polarizations, value)
		}
	}
	if len(polarizations) == 0 {
		return nil, fmt.Errorf("no TX_RX_POLAR fields in header metadata")
	}
	return polarizations, nil
}

var esaCoordinateFieldLat = regexp.MustCompile("LAT")
var esaCoordinateFieldLong = regexp.MustCompile("LONG")

// Corners implements the Handler interface. The footprint is the extrema of
// the scattered *LAT/*LONG ground-control fields: an approximation of the
// frame, not its exact edges.
func (h *ESA) Corners() (model.Footprint, error) {
	if h.fields == nil {
		return model.Footprint{}, fmt.Errorf("corner coordinates require full metadata extraction")
	}
	lats := h.fields.FloatsMatching(esaCoordinateFieldLat)
	lons := h.fields.FloatsMatching(esaCoordinateFieldLong)
	if len(lats) == 0 || len(lons) == 0 {
		return model.Footprint{}, fmt.Errorf("no coordinate fields in header metadata")
	}
	footprint := model.Footprint{
		XMin: lons[0], XMax: lons[0],
		YMin: lats[0], YMax: lats[0],
	}
	for _, lon := range lons[1:] {
		footprint.XMin = min(footprint.XMin, lon)
		footprint.XMax = max(footprint.XMax, lon)
	}
	for _, lat := range lats[1:] {
		footprint.YMin = min(footprint.YMin, lat)
		footprint.YMax = max(footprint.YMax, lat)
	}
	return footprint, nil
}

// OutnameBase implements the Handler interface.
func (h *ESA) OutnameBase() string {
	fields := []string{
		padUnderscore(h.meta.Sensor, 4),
		padUnderscore(h.imageMode, 4),
		string(h.meta.Orbit),
		h.meta.Start,
	}
	return strings.Join(fields, "_")
}

var esaArtifactRenamer = strings.NewReplacer("PRI", "pri", "GRD", "grd", "SLC", "slc")

// Convert imports the scene via par_ASAR and renames the produced artifact
// group to canonical lowercase product-type names.
func (h *ESA) Convert(directory string) error {
	h.gammaDir = directory
	outname := filepath.Join(directory, h.OutnameBase())
	images, err := gammaImages(directory, h.OutnameBase())
	if err != nil {
		return err
	}
	if len(images) > 0 {
		return ErrAlreadyProcessed
	}
	if err := os.MkdirAll(directory, 0755); err != nil {
		return err
	}
	if err := h.runner.Run("par_ASAR", h.file, outname); err != nil {
		return err
	}
	os.Remove(outname + ".hdr")

	entries, err := os.ReadDir(directory)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, h.OutnameBase()) {
			continue
		}
		ext := ""
		if strings.HasSuffix(name, ".par") {
			ext = ".par"
		}
		newBase := strings.TrimSuffix(name, ext)
		newBase = strings.ReplaceAll(newBase, ".", "_")
		newBase = esaArtifactRenamer.Replace(newBase)
		renamed := filepath.Join(directory, newBase+ext)
		if renamed == filepath.Join(directory, name) {
			continue
		}
		if err := os.Rename(filepath.Join(directory, name), renamed); err != nil {
			return err
		}
	}
	return nil
}

// Calibrate produces ground-range calibrated artifacts from the uncalibrated
// _pri images using the sensor's fixed calibration constant and reference
// incidence angle.
func (h *ESA) Calibrate(replace bool) error {
	if h.gammaDir == "" {
		return fmt.Errorf("no conversion directory known; run Convert first")
	}
	kdb, ok := esaCalibrationConstants[h.meta.Sensor]
	if !ok {
		return &UnsupportedProductError{Product: h.productID, Reason: "no calibration constant for sensor " + h.meta.Sensor}
	}
	incidenceRef := 23.0
	if h.meta.Sensor == "ASAR" {
		incidenceRef = 90.0
	}
	images, err := gammaImages(h.gammaDir, h.OutnameBase())
	if err != nil {
		return err
	}
	for _, image := range images {
		if !strings.HasSuffix(image, "_pri") {
			continue
		}
		out := strings.ReplaceAll(image, "pri", "grd")
		err := h.runner.Run("radcal_PRI",
			image, image+".par", out, out+".par",
			strconv.FormatFloat(kdb, 'f', -1, 64),
			strconv.FormatFloat(incidenceRef, 'f', -1, 64))
		if err != nil {
			return err
		}
		if replace {
			os.Remove(image)
			os.Remove(image + ".par")
		}
	}
	return nil
}

// Unpack materializes the container below targetDir, nesting under the scene
// basename unless targetDir already carries it.
func (h *ESA) Unpack(targetDir string) error {
	baseFile := stripContainerExt(filepath.Base(h.file))
	baseDir := filepath.Base(filepath.Clean(targetDir))
	outdir := targetDir
	if baseFile != baseDir {
		outdir = filepath.Join(targetDir, baseFile)
	}
	return h.unpackTo(outdir)
}
