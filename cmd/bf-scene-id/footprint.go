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

package main

import (
	"fmt"

	"github.com/venicegeo/geojson-go/geojson"

	"github.com/venicegeo/bf-scene-id/dem"
	"github.com/venicegeo/bf-scene-id/scenes"
	cli "gopkg.in/urfave/cli.v1"
)

func footprintAction(c *cli.Context) error {
	if c.NArg() < 2 {
		return cli.NewExitError("usage: footprint <scene> <out.geojson>", 1)
	}
	handler, err := scenes.Identify(c.Args().Get(0), sceneMode(c))
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	feature, err := scenes.Bbox(handler)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	if err := geojson.WriteFile(feature, c.Args().Get(1)); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	return nil
}

func hgtAction(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.NewExitError("usage: hgt <scene>", 1)
	}
	handler, err := scenes.Identify(c.Args().First(), sceneMode(c))
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	footprint, err := handler.Corners()
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	tiles, err := dem.Tiles(footprint)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	for _, tile := range tiles {
		fmt.Println(tile)
	}
	return nil
}
