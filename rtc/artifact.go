// Copyright 2025 Alaska Satellite Facility
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package rtc drives the Sentinel-1 Toolbox through the fixed Radiometric
// Terrain Correction chain and exports the resulting rasters as GeoTIFF
// products.
package rtc

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// bandExt marks raster band files inside a BEAM-DIMAP data directory.
const bandExt = ".img"

// Artifact is one intermediate processing product: a BEAM-DIMAP descriptor
// file plus its companion data directory holding one raster band per
// polarization (or mask layer). Both live under Dir and are named after the
// stage that produced them.
type Artifact struct {
	Name string
	Dir  string
}

// DimFile returns the path of the descriptor file.
func (a Artifact) DimFile() string {
	return filepath.Join(a.Dir, a.Name+".dim")
}

// DataDir returns the path of the companion band directory.
func (a Artifact) DataDir() string {
	return filepath.Join(a.Dir, a.Name+".data")
}

// Bands lists the raster band files in the data directory, sorted by name.
func (a Artifact) Bands() ([]string, error) {
	entries, err := os.ReadDir(a.DataDir())
	if err != nil {
		return nil, errors.Wrapf(err, "list bands of %s", a.Name)
	}
	var bands []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), bandExt) {
			bands = append(bands, filepath.Join(a.DataDir(), e.Name()))
		}
	}
	sort.Strings(bands)
	return bands, nil
}

// Remove deletes the descriptor file and, when present, the data directory.
// The data directory is absent only for artifacts no stage has completed yet.
func (a Artifact) Remove() error {
	if err := os.Remove(a.DimFile()); err != nil {
		return errors.Wrapf(err, "remove %s", a.DimFile())
	}
	if err := os.RemoveAll(a.DataDir()); err != nil {
		return errors.Wrapf(err, "remove %s", a.DataDir())
	}
	return nil
}

// BandCode extracts the two-character polarization (or mask) code from a band
// filename: the last two characters of the stem, e.g.
// "Gamma0_VV.img" -> "VV".
func BandCode(bandPath string) string {
	stem := strings.TrimSuffix(filepath.Base(bandPath), filepath.Ext(bandPath))
	if len(stem) < 2 {
		return stem
	}
	return stem[len(stem)-2:]
}

// ProductName builds the output product filename for a granule, band code and
// product suffix, e.g. "S1A..._VV_RTC.tif".
func ProductName(granule, code, suffix string) string {
	return granule + "_" + code + "_" + suffix
}

// AcquisitionYear extracts the four-digit acquisition year embedded at a
// fixed offset of a Sentinel-1 granule name
// (S1A_IW_GRDH_1SDV_20161203T... -> "2016").
func AcquisitionYear(granule string) string {
	if len(granule) < 21 {
		return ""
	}
	return granule[17:21]
}
