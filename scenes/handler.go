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

// Package scenes identifies which sensor family produced a scene, parses its
// naming convention into normalized metadata, and exposes footprint, unpack
// and conversion operations on the recognized scene.
package scenes

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/venicegeo/geojson-go/geojson"

	"github.com/venicegeo/bf-scene-id/archive"
	"github.com/venicegeo/bf-scene-id/gamma"
	"github.com/venicegeo/bf-scene-id/model"
	"github.com/venicegeo/bf-scene-id/raster"
	"github.com/venicegeo/bf-scene-id/spatial"
)

// Handler is the contract shared by all sensor-family scene handlers.
type Handler interface {
	// Examine locates exactly one top-level descriptor file matching the
	// handler's naming convention.
	Examine() error
	// ParseMetadata populates the scene metadata from filename captures
	// and, under ModeFull, from the raster header.
	ParseMetadata(mode model.Mode) error
	// Metadata returns the parsed scene metadata.
	Metadata() *model.SceneMetadata
	// Corners computes the geodetic footprint of the scene.
	Corners() (model.Footprint, error)
	// OutnameBase returns the canonical artifact base name. It is a pure
	// function of already-parsed fields.
	OutnameBase() string
	// Convert imports the scene into processing format below targetDir.
	Convert(targetDir string) error
	// Unpack materializes the scene container below targetDir and rebases
	// the locator onto the result.
	Unpack(targetDir string) error
	// Calibrate produces radiometrically calibrated artifacts, optionally
	// replacing the uncalibrated ones.
	Calibrate(replace bool) error
	// Locator returns the current scene locator.
	Locator() *archive.View
	// File returns the virtual path of the matched top-level descriptor.
	File() string
	// Summary writes the parsed metadata as sorted key: value lines.
	Summary(w io.Writer) error
}

// the raster header of any supported scene, regardless of family
var headerFilePattern = regexp.MustCompile(`(?:\.[NE][12]$|DAT_01\.001$|product\.xml|manifest\.safe$)`)

var headerSensorByExt = map[string]string{
	".N1": "ASAR",
	".E1": "ERS1",
	".E2": "ERS2",
}

// base carries the state and helpers shared by every handler variant.
type base struct {
	view   *archive.View
	file   string
	meta   model.SceneMetadata
	fields raster.Fields
	reader raster.Reader
	runner gamma.Runner
}

func newBase(view *archive.View) base {
	return base{
		view:   view,
		reader: raster.GDALInfoReader{},
		runner: gamma.ExecRunner{},
	}
}

func (b *base) Locator() *archive.View {
	return b.view
}

func (b *base) File() string {
	return b.file
}

func (b *base) Metadata() *model.SceneMetadata {
	return &b.meta
}

// examine requires exactly one match for the top-level descriptor pattern.
func (b *base) examine(pattern *regexp.Regexp) error {
	files, err := b.view.ListMatching(pattern)
	if err != nil {
		return err
	}
	switch len(files) {
	case 1:
		b.file = files[0]
		return nil
	case 0:
		return ErrNotRecognized
	default:
		return ErrAmbiguous
	}
}

// readHeader opens the scene's raster header and captures projection, ground
// control points and the normalized metadata fields.
func (b *base) readHeader() error {
	files, err := b.view.ListMatching(headerFilePattern)
	if err != nil {
		return err
	}
	switch len(files) {
	case 0:
		return fmt.Errorf("no readable raster header in scene: %w", ErrUnsupported)
	case 1:
		// ok
	default:
		return ErrAmbiguous
	}
	header := files[0]
	if sensor, ok := headerSensorByExt[filepath.Ext(header)]; ok {
		b.meta.Sensor = sensor
	}
	info, err := b.reader.Open(raster.VSIPath(b.view.Kind, header))
	if err != nil {
		return err
	}
	b.meta.Projection = info.Projection
	b.meta.GCPs = info.GCPs
	b.fields = raster.Normalize(info.Metadata)
	return nil
}

// unpackTo materializes the container and rebases the locator and the matched
// descriptor beneath the new root.
func (b *base) unpackTo(directory string) error {
	view, err := b.view.Unpack(directory)
	if err != nil {
		return err
	}
	b.view = view
	b.file = filepath.Join(view.Path, filepath.Base(b.file))
	return nil
}

// Summary writes the parsed metadata, then any normalized header fields, as
// sorted key: value lines. Ground control points are omitted.
func (b *base) Summary(w io.Writer) error {
	lines := map[string]string{
		"scene":  b.view.Path,
		"kind":   string(b.view.Kind),
		"sensor": b.meta.Sensor,
	}
	if b.meta.Product != "" {
		lines["product"] = b.meta.Product
	}
	if len(b.meta.Polarizations) > 0 {
		lines["polarizations"] = strings.Join(b.meta.Polarizations, " ")
	}
	if b.meta.Start != "" {
		lines["start"] = b.meta.Start
	}
	if b.meta.Stop != "" {
		lines["stop"] = b.meta.Stop
	}
	if b.meta.Orbit != "" {
		lines["orbit"] = string(b.meta.Orbit)
	}
	if b.meta.Projection != "" {
		lines["projection"] = b.meta.Projection
	}
	if b.fields != nil {
		lines["spacing"] = fmt.Sprintf("(%v, %v)", b.meta.SpacingRange, b.meta.SpacingAzimuth)
		lines["looks"] = fmt.Sprintf("(%v, %v)", b.meta.LooksRange, b.meta.LooksAzimuth)
	}
	keys := make([]string, 0, len(lines))
	for key := range lines {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if _, err := fmt.Fprintf(w, "%s: %s\n", key, lines[key]); err != nil {
			return err
		}
	}
	if b.fields == nil {
		return nil
	}
	for _, key := range b.fields.Keys(regexp.MustCompile(".")) {
		if _, err := fmt.Fprintf(w, "%s: %v\n", key, b.fields[key]); err != nil {
			return err
		}
	}
	return nil
}

// artifact sidecars excluded from image listings
var sidecarPattern = regexp.MustCompile(`\.(?:par|hdr|aux\.xml)$`)

// gammaImages lists previously converted artifacts for a canonical base name
// inside directory, excluding parameter and header sidecars.
func gammaImages(directory, outnameBase string) ([]string, error) {
	entries, err := os.ReadDir(directory)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var images []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, outnameBase) && !sidecarPattern.MatchString(name) {
			images = append(images, filepath.Join(directory, name))
		}
	}
	return images, nil
}

// padUnderscore right-pads a naming-convention token to a fixed width.
func padUnderscore(token string, width int) string {
	for len(token) < width {
		token += "_"
	}
	return token
}

// captures maps a pattern's named groups onto a submatch slice.
func captures(pattern *regexp.Regexp, match []string) map[string]string {
	groups := make(map[string]string)
	for i, name := range pattern.SubexpNames() {
		if name != "" && i < len(match) {
			groups[name] = match[i]
		}
	}
	return groups
}

// Bbox renders the scene footprint as a GeoJSON polygon feature named after
// the canonical artifact base, carrying the scene projection as a property.
func Bbox(h Handler) (*geojson.Feature, error) {
	footprint, err := h.Corners()
	if err != nil {
		return nil, err
	}
	return spatial.Feature(h.OutnameBase(), footprint, h.Metadata().Projection)
}

var containerExtPattern = regexp.MustCompile(`\.(?:zip|tar(?:\.gz)?)$`)

// stripContainerExt drops a trailing archive extension from a scene basename.
func stripContainerExt(name string) string {
	return containerExtPattern.ReplaceAllString(name, "")
}
