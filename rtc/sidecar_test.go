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
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSidecar_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), testGranule+"_VV_RTC.tif.xml")
	now := time.Date(2025, 6, 14, 8, 30, 0, 0, time.UTC)

	require.NoError(t, writeSidecarAt(path, testGranule, "VV", now))

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromFile(path))

	title := doc.FindElement("//idCitation/resTitle")
	require.NotNil(t, title)
	assert.Equal(t, testGranule+"_VV_RTC", title.Text())

	var keywords []string
	for _, kw := range doc.FindElements("//searchKeys/keyword") {
		keywords = append(keywords, kw.Text())
	}
	assert.Contains(t, keywords, "VV")

	credit := doc.FindElement("//idCredit")
	require.NotNil(t, credit)
	assert.Contains(t, credit.Text(), "2016", "acquisition year comes from the granule name")

	creaDate := doc.FindElement("//Esri/CreaDate")
	require.NotNil(t, creaDate)
	assert.Equal(t, "20250614", creaDate.Text())
}

func TestWriteSidecar_NormalizedIndentation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sidecar.xml")
	require.NoError(t, WriteSidecar(path, testGranule, "VH"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(raw), "\n  <Esri>"), "expected two-space indentation")
}

func TestWriteSidecar_BandCodeField(t *testing.T) {
	// The code written to the sidecar must match what BandCode extracts
	// from the band the product came from.
	band := "Gamma0_VH.img"
	code := BandCode(band)

	path := filepath.Join(t.TempDir(), "sidecar.xml")
	require.NoError(t, WriteSidecar(path, testGranule, code))

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromFile(path))
	title := doc.FindElement("//idCitation/resTitle")
	require.NotNil(t, title)
	assert.True(t, strings.Contains(title.Text(), "_"+code+"_"), "sidecar title carries the band code")
}
