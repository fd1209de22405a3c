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
	"errors"
	"fmt"

	"github.com/venicegeo/bf-scene-id/model"
	"github.com/venicegeo/bf-scene-id/scenes"
	"github.com/venicegeo/bf-scene-id/util"
	cli "gopkg.in/urfave/cli.v1"
)

func unpackAction(c *cli.Context) error {
	if c.NArg() < 2 {
		return cli.NewExitError("usage: unpack <scene> <target-dir>", 1)
	}
	handler, err := scenes.Identify(c.Args().Get(0), model.ModeBasic)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	if err := handler.Unpack(c.Args().Get(1)); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	fmt.Println(handler.Locator().Path)
	return nil
}

func convertAction(c *cli.Context) error {
	if c.NArg() < 2 {
		return cli.NewExitError("usage: convert <scene> <target-dir>", 1)
	}
	handler, err := scenes.Identify(c.Args().Get(0), model.ModeFull)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	err = handler.Convert(c.Args().Get(1))
	if errors.Is(err, scenes.ErrAlreadyProcessed) {
		util.LogInfo(&util.BasicLogContext{}, "Scene has already been converted, nothing to do")
		return nil
	}
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	return nil
}

func calibrateAction(c *cli.Context) error {
	if c.NArg() < 2 {
		return cli.NewExitError("usage: calibrate <scene> <target-dir>", 1)
	}
	handler, err := scenes.Identify(c.Args().Get(0), model.ModeFull)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	err = handler.Convert(c.Args().Get(1))
	if err != nil && !errors.Is(err, scenes.ErrAlreadyProcessed) {
		return cli.NewExitError(err.Error(), 1)
	}
	if err := handler.Calibrate(c.Bool("replace")); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	return nil
}
