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

	"github.com/pkg/errors"
)

// Product suffixes for the two deliverable kinds.
const (
	RTCSuffix = "RTC.tif"
	LSSuffix  = "LS.tif"
)

const srtmDEM = "SRTM 1Sec HGT"

// Pipeline sequences the fixed RTC stage chain for one granule. Intermediate
// artifacts live in WorkDir; finished products are written to OutputDir.
type Pipeline struct {
	Runner    Runner
	WorkDir   string
	OutputDir string
	Granule   string
	// Layover additionally produces the layover/shadow mask product.
	Layover bool
}

// Run processes the raw downloaded scene through the full chain. Each stage
// consumes the previous stage's artifact and deletes it, except
// Terrain-Flattening, which is retained until the main Terrain-Correction
// has consumed it: the layover branch, when requested, reads it first.
//
// The layover branch runs before the main Terrain-Correction on purpose.
// Both continuations name their output "Terrain-Correction", so the branch
// artifact must be exported and removed before the main one is produced,
// and running the branch first also guarantees the retained
// Terrain-Flattening artifact is no longer needed when the main stage
// deletes it.
func (p *Pipeline) Run(ctx context.Context, scenePath string) error {
	art, err := p.runSceneStage(ctx, scenePath, Stage{
		Op:           OpApplyOrbitFile,
		CleanupInput: true,
	})
	if err != nil {
		return err
	}

	art, err = p.runArtifactStage(ctx, art, Stage{
		Op:           OpCalibration,
		Params:       []string{"-PoutputBetaBand=true", "-PoutputSigmaBand=false"},
		CleanupInput: true,
	})
	if err != nil {
		return err
	}

	art, err = p.runArtifactStage(ctx, art, Stage{
		Op:           OpSpeckleFilter,
		CleanupInput: true,
	})
	if err != nil {
		return err
	}

	art, err = p.runArtifactStage(ctx, art, Stage{
		Op:           OpMultilook,
		Params:       []string{"-PnRgLooks=3", "-PnAzLooks=3"},
		CleanupInput: true,
	})
	if err != nil {
		return err
	}

	flattened, err := p.runArtifactStage(ctx, art, Stage{
		Op:           OpTerrainFlattening,
		Params:       []string{"-PreGridMethod=False"},
		CleanupInput: true,
	})
	if err != nil {
		return err
	}

	if p.Layover {
		if err := p.runLayoverBranch(ctx, flattened); err != nil {
			return err
		}
	}

	corrected, err := p.runArtifactStage(ctx, flattened, Stage{
		Op:           OpTerrainCorrection,
		Params:       []string{"-PpixelSpacingInMeter=30.0", "-PdemName=" + srtmDEM},
		CleanupInput: true,
	})
	if err != nil {
		return err
	}

	return p.exporter().Export(ctx, corrected, RTCSuffix, true)
}

// runLayoverBranch forks from the retained Terrain-Flattening artifact to
// produce the layover/shadow mask product. The branch point is left in
// place for the main chain.
func (p *Pipeline) runLayoverBranch(ctx context.Context, flattened Artifact) error {
	simulated, err := p.runArtifactStage(ctx, flattened, Stage{
		Op:           OpSARSimulation,
		Params:       []string{"-PdemName=" + srtmDEM, "-PsaveLayoverShadowMask=true"},
		CleanupInput: false,
	})
	if err != nil {
		return err
	}

	mask, err := p.runArtifactStage(ctx, simulated, Stage{
		Op: OpTerrainCorrection,
		Params: []string{
			"-PimgResamplingMethod=NEAREST_NEIGHBOUR",
			"-PpixelSpacingInMeter=30.0",
			"-PsourceBands=layover_shadow_mask",
			"-PdemName=" + srtmDEM,
		},
		CleanupInput: true,
	})
	if err != nil {
		return err
	}

	if err := p.exporter().Export(ctx, mask, LSSuffix, false); err != nil {
		return errors.Wrap(err, "export layover mask")
	}
	return nil
}

func (p *Pipeline) exporter() *Exporter {
	return &Exporter{
		Runner:    p.Runner,
		WorkDir:   p.WorkDir,
		OutputDir: p.OutputDir,
		Granule:   p.Granule,
	}
}
