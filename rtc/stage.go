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

	"github.com/pkg/errors"

	"github.com/asfdaac/s1tbx-rtc/internal/log"
)

// gptCommand is the Sentinel-1 Toolbox graph processing tool.
const gptCommand = "gpt"

// Stage is one named Toolbox operation in the RTC chain. Params are passed
// through to gpt verbatim; the stage does not interpret them.
type Stage struct {
	// Op is the Toolbox operator name, e.g. "Calibration". The output
	// artifact is named after it.
	Op string
	// Params are stage-specific -P options, in order.
	Params []string
	// CleanupInput deletes the input artifact once the stage has completed.
	// Left false only for the Terrain-Flattening branch point, which two
	// downstream chains consume.
	CleanupInput bool
}

// The closed set of Toolbox operators the pipeline invokes.
const (
	OpApplyOrbitFile    = "Apply-Orbit-File"
	OpCalibration       = "Calibration"
	OpSpeckleFilter     = "Speckle-Filter"
	OpMultilook         = "Multilook"
	OpTerrainFlattening = "Terrain-Flattening"
	OpSARSimulation     = "SAR-Simulation"
	OpTerrainCorrection = "Terrain-Correction"
)

// runStage invokes one Toolbox operation on inputPath (a .dim descriptor or
// the raw downloaded scene) and returns the artifact named after the
// operator. On success the input is deleted when the stage asks for it.
func (p *Pipeline) runStage(ctx context.Context, inputPath string, removeInput func() error, st Stage) (Artifact, error) {
	log.Info("\n%s", st.Op)

	args := []string{st.Op, "-Ssource=" + inputPath, "-t", st.Op}
	args = append(args, st.Params...)
	if err := p.Runner.Run(ctx, gptCommand, args...); err != nil {
		return Artifact{}, errors.Wrapf(err, "stage %s", st.Op)
	}

	if st.CleanupInput {
		if err := removeInput(); err != nil {
			return Artifact{}, errors.Wrapf(err, "clean up input of %s", st.Op)
		}
	}
	return Artifact{Name: st.Op, Dir: p.WorkDir}, nil
}

// runArtifactStage runs a stage whose input is a prior artifact.
func (p *Pipeline) runArtifactStage(ctx context.Context, in Artifact, st Stage) (Artifact, error) {
	return p.runStage(ctx, in.DimFile(), in.Remove, st)
}

// runSceneStage runs the first stage, whose input is the raw downloaded
// scene file rather than a descriptor-plus-data artifact.
func (p *Pipeline) runSceneStage(ctx context.Context, scenePath string, st Stage) (Artifact, error) {
	return p.runStage(ctx, scenePath, func() error { return os.Remove(scenePath) }, st)
}
