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
	cli "gopkg.in/urfave/cli.v1"
)

var basicFlag = cli.BoolFlag{
	Name:  "basic",
	Usage: "Parse filename metadata only, skip the raster header",
}

var commands = cli.Commands{
	cli.Command{
		Name:      "identify",
		Aliases:   []string{"i"},
		Usage:     "Identify a scene and print its metadata",
		ArgsUsage: "<scene>",
		Flags:     []cli.Flag{basicFlag},
		Action:    identifyAction,
	},
	cli.Command{
		Name:      "unpack",
		Aliases:   []string{"u"},
		Usage:     "Materialize an archived scene into a directory",
		ArgsUsage: "<scene> <target-dir>",
		Action:    unpackAction,
	},
	cli.Command{
		Name:      "convert",
		Aliases:   []string{"c"},
		Usage:     "Import a scene into processing format",
		ArgsUsage: "<scene> <target-dir>",
		Action:    convertAction,
	},
	cli.Command{
		Name:      "calibrate",
		Usage:     "Import a scene and produce calibrated artifacts",
		ArgsUsage: "<scene> <target-dir>",
		Flags: []cli.Flag{
			cli.BoolFlag{
				Name:  "replace",
				Usage: "Remove the uncalibrated artifacts afterwards",
			},
		},
		Action: calibrateAction,
	},
	cli.Command{
		Name:      "footprint",
		Aliases:   []string{"f"},
		Usage:     "Write the scene footprint as a GeoJSON feature",
		ArgsUsage: "<scene> <out.geojson>",
		Flags:     []cli.Flag{basicFlag},
		Action:    footprintAction,
	},
	cli.Command{
		Name:      "hgt",
		Usage:     "List the 1-degree elevation tiles covering a scene",
		ArgsUsage: "<scene>",
		Flags:     []cli.Flag{basicFlag},
		Action:    hgtAction,
	},
	cli.Command{
		Name:    "version",
		Aliases: []string{"v"},
		Usage:   "Print the version number of the scene-id CLI",
		Action:  versionAction,
	},
}

func createCliApp() (app *cli.App) {
	app = cli.NewApp()
	app.Name = "bf-scene-id"
	app.Usage = "Identify, unpack and import radar satellite scenes"
	app.Commands = commands
	return
}
