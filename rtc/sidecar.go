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
	"bytes"
	_ "embed"
	"os"
	"text/template"
	"time"

	"github.com/beevik/etree"
	"github.com/pkg/errors"
)

//go:embed templates/arcgis.xml
var arcgisTemplate string

var sidecarTmpl = template.Must(template.New("arcgis").Parse(arcgisTemplate))

// sidecarData feeds the ArcGIS metadata template.
type sidecarData struct {
	Now             time.Time
	Polarization    string
	Granule         string
	AcquisitionYear string
}

// WriteSidecar renders the ArcGIS metadata template for one product and
// writes it to path with normalized indentation.
func WriteSidecar(path, granule, polarization string) error {
	return writeSidecarAt(path, granule, polarization, time.Now().UTC())
}

func writeSidecarAt(path, granule, polarization string, now time.Time) error {
	var buf bytes.Buffer
	err := sidecarTmpl.Execute(&buf, sidecarData{
		Now:             now,
		Polarization:    polarization,
		Granule:         granule,
		AcquisitionYear: AcquisitionYear(granule),
	})
	if err != nil {
		return errors.Wrap(err, "render sidecar template")
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(buf.Bytes()); err != nil {
		return errors.Wrap(err, "parse rendered sidecar")
	}
	doc.Indent(2)

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create sidecar file")
	}
	if _, err := doc.WriteTo(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "write %s", path)
	}
	return f.Close()
}
