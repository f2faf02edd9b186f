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
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/asfdaac/s1tbx-rtc/internal/log"
)

// Exporter converts the raster bands of a finished artifact into tiled,
// compressed, overview-enriched GeoTIFF products.
type Exporter struct {
	Runner    Runner
	WorkDir   string
	OutputDir string
	Granule   string
}

// Export writes one product per band in the artifact's data directory, named
// <granule>_<code>_<suffix>, plus an XML sidecar per product when sidecar is
// set. The source artifact is deleted once all bands are exported.
func (e *Exporter) Export(ctx context.Context, art Artifact, suffix string, sidecar bool) error {
	bands, err := art.Bands()
	if err != nil {
		return err
	}

	for _, band := range bands {
		code := BandCode(band)
		outPath := filepath.Join(e.OutputDir, ProductName(e.Granule, code, suffix))
		log.Info("\nCreating %s", filepath.Base(outPath))

		if err := e.geotiff(ctx, band, outPath); err != nil {
			return err
		}
		if sidecar {
			if err := WriteSidecar(outPath+".xml", e.Granule, code); err != nil {
				return err
			}
		}
	}

	return art.Remove()
}

// geotiff builds the final product from one raw band: translate to GeoTIFF
// with zero as the no-data value, add averaged overviews at 2/4/8/16, then
// re-translate with tiling and DEFLATE compression, copying the overviews
// into the final file. The intermediate is removed whether or not the chain
// succeeds.
func (e *Exporter) geotiff(ctx context.Context, bandPath, outPath string) error {
	tmp := filepath.Join(e.WorkDir, "temp.tif")
	defer os.Remove(tmp)

	if err := e.Runner.Run(ctx, "gdal_translate", "-of", "GTiff", "-a_nodata", "0", bandPath, tmp); err != nil {
		return errors.Wrapf(err, "translate %s", filepath.Base(bandPath))
	}
	if err := e.Runner.Run(ctx, "gdaladdo", "-r", "average", tmp, "2", "4", "8", "16"); err != nil {
		return errors.Wrapf(err, "build overviews for %s", filepath.Base(outPath))
	}
	if err := e.Runner.Run(ctx, "gdal_translate",
		"-co", "TILED=YES", "-co", "COMPRESS=DEFLATE", "-co", "COPY_SRC_OVERVIEWS=YES",
		tmp, outPath); err != nil {
		return errors.Wrapf(err, "write %s", filepath.Base(outPath))
	}
	return nil
}
