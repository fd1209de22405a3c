// Copyright 2016, RadiantBlue Technologies, Inc.
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

package util

import "os"

// Environment variables
const (
	GAMMA_HOME   = "GAMMA_HOME"
	GDALINFO_BIN = "GDALINFO_BIN"
)

const defaultGDALInfoBin = "gdalinfo"

// GetGammaHome returns the GAMMA installation root from the GAMMA_HOME
// environment variable, or an empty string to resolve tools on the PATH.
func GetGammaHome() string {
	home, ok := os.LookupEnv(GAMMA_HOME)
	if !ok {
		return ""
	}
	return home
}

// GetGDALInfoBin returns the gdalinfo binary from the GDALINFO_BIN environment
// variable, defaulting to the one on the PATH.
func GetGDALInfoBin() string {
	bin, ok := os.LookupEnv(GDALINFO_BIN)
	if !ok {
		return defaultGDALInfoBin
	}
	return bin
}
