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

package rtc

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestBandCode(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"Gamma0_VV.img", "VV"},
		{"Gamma0_VH.img", "VH"},
		{"Beta0_HH.img", "HH"},
		{"layover_shadow_mask.img", "sk"},
		{"TC.data/Gamma0_VV.img", "VV"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, BandCode(c.path), "BandCode(%q)", c.path)
	}
}

func TestProductName(t *testing.T) {
	got := ProductName(testGranule, "VV", RTCSuffix)
	assert.Equal(t, testGranule+"_VV_RTC.tif", got)
}

func TestAcquisitionYear(t *testing.T) {
	assert.Equal(t, "2016", AcquisitionYear(testGranule))
	assert.Equal(t, "", AcquisitionYear("too-short"))
}

func TestNamingPolicy_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		code := rapid.StringMatching(`[A-Z]{2}`).Draw(t, "code")
		stem := rapid.StringMatching(`[A-Za-z0-9_]{1,20}`).Draw(t, "stem")
		suffix := rapid.SampledFrom([]string{RTCSuffix, LSSuffix}).Draw(t, "suffix")

		file := fmt.Sprintf("%s%s.img", stem, code)
		if got := BandCode(file); got != code {
			t.Fatalf("BandCode(%q) = %q, want %q", file, got, code)
		}

		name := ProductName(testGranule, code, suffix)
		if got := testGranule + "_" + code + "_" + suffix; name != got {
			t.Fatalf("ProductName = %q, want %q", name, got)
		}
	})
}

func TestArtifact_Bands(t *testing.T) {
	art := makeArtifact(t, t.TempDir(), "Multilook", "Gamma0_VV.img", "Gamma0_VH.img", "Gamma0_VV.hdr")
	require.NoError(t, os.MkdirAll(filepath.Join(art.DataDir(), "tie_point_grids"), 0o755))

	bands, err := art.Bands()
	require.NoError(t, err)
	require.Len(t, bands, 2)
	assert.Equal(t, "Gamma0_VH.img", filepath.Base(bands[0]))
	assert.Equal(t, "Gamma0_VV.img", filepath.Base(bands[1]))
}

func TestArtifact_Remove(t *testing.T) {
	art := makeArtifact(t, t.TempDir(), "Calibration", "Beta0_VV.img")

	require.NoError(t, art.Remove())
	assert.NoFileExists(t, art.DimFile())
	assert.NoDirExists(t, art.DataDir())
}

func TestArtifact_Remove_MissingDim(t *testing.T) {
	art := Artifact{Name: "Calibration", Dir: t.TempDir()}
	assert.Error(t, art.Remove())
}
