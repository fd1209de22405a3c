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

// Package dem resolves the 1-degree SRTM elevation tiles covering a scene
// footprint.
package dem

import (
	"fmt"
	"math"

	"github.com/venicegeo/bf-scene-id/model"
)

// Tiles returns the .hgt tile names whose 1-degree cells intersect the
// footprint. Tiles are named after their south-west corner, latitude first,
// row-major from south to north.
func Tiles(footprint model.Footprint) ([]string, error) {
	if err := footprint.Valid(); err != nil {
		return nil, err
	}
	latMin := int(math.Floor(footprint.YMin))
	latMax := int(math.Floor(footprint.YMax))
	lonMin := int(math.Floor(footprint.XMin))
	lonMax := int(math.Floor(footprint.XMax))

	var tiles []string
	for lat := latMin; lat <= latMax; lat++ {
		for lon := lonMin; lon <= lonMax; lon++ {
			tiles = append(tiles, tileName(lat, lon))
		}
	}
	return tiles, nil
}

// tileName renders a south-west corner as an SRTM tile name, e.g. N51W004.hgt.
func tileName(lat, lon int) string {
	ns := byte('N')
	if lat < 0 {
		ns = 'S'
		lat = -lat
	}
	ew := byte('E')
	if lon < 0 {
		ew = 'W'
		lon = -lon
	}
	return fmt.Sprintf("%c%02d%c%03d.hgt", ns, lat, ew, lon)
}
