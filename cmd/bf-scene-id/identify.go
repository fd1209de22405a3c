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
	"os"

	"github.com/venicegeo/bf-scene-id/model"
	"github.com/venicegeo/bf-scene-id/scenes"
	cli "gopkg.in/urfave/cli.v1"
)

func sceneMode(c *cli.Context) model.Mode {
	if c.Bool("basic") {
		return model.ModeBasic
	}
	return model.ModeFull
}

func identifyAction(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.NewExitError("usage: identify <scene>", 1)
	}
	handler, err := scenes.Identify(c.Args().First(), sceneMode(c))
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	if err := handler.Summary(os.Stdout); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	return nil
}
