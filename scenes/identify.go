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
	"errors"
	"fmt"
	"regexp"

	"github.com/venicegeo/bf-scene-id/archive"
	"github.com/venicegeo/bf-scene-id/model"
	"github.com/venicegeo/bf-scene-id/util"
)

// registration binds a handler constructor to a cheap, side-effect-free
// naming probe. The slice order of the registry is the dispatch priority.
type registration struct {
	name    string
	matches func(view *archive.View) bool
	build   func(view *archive.View, mode model.Mode) (Handler, error)
}

var registry = []registration{
	{
		name:    "ESA",
		matches: probe(esaScenePattern),
		build: func(view *archive.View, mode model.Mode) (Handler, error) {
			return NewESA(view, mode)
		},
	},
	{
		name:    "SAFE",
		matches: probe(safeScenePattern),
		build: func(view *archive.View, mode model.Mode) (Handler, error) {
			return NewSAFE(view, mode)
		},
	},
}

// probe reports whether any member of the container matches the pattern,
// without constructing a handler.
func probe(pattern *regexp.Regexp) func(view *archive.View) bool {
	return func(view *archive.View) bool {
		files, err := view.ListMatching(pattern)
		return err == nil && len(files) > 0
	}
}

// Identify returns a metadata handler for the scene at path. Registered
// handlers are probed in priority order; the first whose naming convention
// matches is constructed. A handler that recognizes the name but finds the
// content malformed or unsupported aborts identification with the underlying
// error rather than falling through.
func Identify(path string, mode model.Mode) (Handler, error) {
	view, err := archive.NewView(path)
	if err != nil {
		return nil, err
	}
	return IdentifyView(view, mode)
}

// IdentifyView is Identify on an already-detected locator.
func IdentifyView(view *archive.View, mode model.Mode) (Handler, error) {
	logContext := &util.BasicLogContext{}
	for _, reg := range registry {
		if !reg.matches(view) {
			continue
		}
		handler, err := reg.build(view, mode)
		if err != nil {
			if errors.Is(err, ErrNotRecognized) {
				continue
			}
			return nil, err
		}
		util.LogInfo(logContext, fmt.Sprintf("Identified %s as %s scene", view.Path, reg.name))
		return handler, nil
	}
	return nil, ErrUnsupported
}
