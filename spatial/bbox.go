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

// Package spatial exports scene footprints as GeoJSON.
package spatial

import (
	"github.com/venicegeo/geojson-go/geojson"

	"github.com/venicegeo/bf-scene-id/model"
)

// Feature renders a footprint as a GeoJSON polygon feature with a forced
// bounding box. The ring is closed and wound counter-clockwise from the
// south-west corner.
func Feature(id string, footprint model.Footprint, projection string) (*geojson.Feature, error) {
	if err := footprint.Valid(); err != nil {
		return nil, err
	}
	polygon := geojson.NewPolygon([][][]float64{{
		{footprint.XMin, footprint.YMin},
		{footprint.XMax, footprint.YMin},
		{footprint.XMax, footprint.YMax},
		{footprint.XMin, footprint.YMax},
		{footprint.XMin, footprint.YMin},
	}})
	properties := map[string]interface{}{}
	if projection != "" {
		properties["projection"] = projection
	}
	feature := geojson.NewFeature(polygon, id, properties)
	feature.Bbox = feature.ForceBbox()
	return feature, nil
}

// WriteFootprint writes a footprint to filename as a single GeoJSON feature.
func WriteFootprint(filename, id string, footprint model.Footprint, projection string) error {
	feature, err := Feature(id, footprint, projection)
	if err != nil {
		return err
	}
	return geojson.WriteFile(feature, filename)
}
