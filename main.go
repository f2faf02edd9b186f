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

// Command s1tbx-rtc produces Radiometrically Terrain Corrected GeoTIFFs from
// a Sentinel-1 GRD granule using the SENTINEL-1 Toolbox and GDAL.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/asfdaac/s1tbx-rtc/asf"
	"github.com/asfdaac/s1tbx-rtc/internal/log"
	"github.com/asfdaac/s1tbx-rtc/rtc"
	"github.com/asfdaac/s1tbx-rtc/version"
)

const Usage = `s1tbx-rtc [version] [Flags]
Radiometric Terrain Correction using the SENTINEL-1 Toolbox.

Produces one <granule>_<polarization>_RTC.tif per polarization, with an
ArcGIS metadata sidecar, and optionally a layover/shadow mask product
(<granule>_<code>_LS.tif) when -layover is set.
`

func main() {
	flags := flag.NewFlagSet("s1tbx-rtc", flag.ExitOnError)

	var granule, username, password string
	var layover bool
	flags.StringVar(&granule, "granule", "", "Sentinel-1 granule name (required)")
	flags.StringVar(&granule, "g", "", "shorthand for -granule")
	flags.StringVar(&username, "username", "", "Earthdata Login username (or EARTHDATA_USERNAME)")
	flags.StringVar(&username, "u", "", "shorthand for -username")
	flags.StringVar(&password, "password", "", "Earthdata Login password (or EARTHDATA_PASSWORD)")
	flags.StringVar(&password, "p", "", "shorthand for -password")
	flags.BoolVar(&layover, "layover", false, "also produce the layover/shadow mask product")
	flags.BoolVar(&layover, "l", false, "shorthand for -layover")
	outputDir := flags.String("o", "/output", "directory for final products")
	workBase := flags.String("w", ".", "base directory for the run-scoped working directory")
	verbose := flags.Bool("verbose", false, "verbose mode")

	flags.Usage = func() {
		fmt.Fprint(os.Stderr, Usage)
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flags.PrintDefaults()
	}

	args := os.Args[1:]
	if len(args) > 0 && args[0] == "version" {
		fmt.Fprintf(os.Stdout, "%s\n", version.Version)
		return
	}
	flags.Parse(args)

	if *verbose {
		log.SetLogLevel(log.DebugLevel)
	}
	if username == "" {
		username = os.Getenv("EARTHDATA_USERNAME")
	}
	if password == "" {
		password = os.Getenv("EARTHDATA_PASSWORD")
	}
	if granule == "" || username == "" || password == "" {
		flags.Usage()
		os.Exit(1)
	}

	if err := run(context.Background(), granule, username, password, layover, *outputDir, *workBase); err != nil {
		log.Error("%v", err)
		os.Exit(rtc.ExitCode(err))
	}
}

func run(ctx context.Context, granule, username, password string, layover bool, outputDir, workBase string) error {
	client := asf.NewClient()

	log.Info("\nFetching Granule Information")
	downloadURL, err := client.ResolveDownloadURL(ctx, granule)
	if err != nil {
		if errors.Is(err, asf.ErrGranuleNotFound) {
			return errors.Errorf("either %s does not exist or it is not a GRD product", granule)
		}
		return err
	}

	netrcPath, err := asf.NetrcPath()
	if err != nil {
		return err
	}
	if err := asf.WriteNetrc(netrcPath, username, password); err != nil {
		return err
	}

	workDir, err := makeWorkDir(workBase)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return errors.Wrap(err, "create output directory")
	}

	log.Info("\nDownloading granule from %s", downloadURL)
	scenePath, err := client.Download(ctx, downloadURL, workDir)
	if err != nil {
		return err
	}

	pipeline := &rtc.Pipeline{
		Runner:    &rtc.ExecRunner{Dir: workDir},
		WorkDir:   workDir,
		OutputDir: outputDir,
		Granule:   granule,
		Layover:   layover,
	}
	if err := pipeline.Run(ctx, scenePath); err != nil {
		return err
	}

	// Every intermediate has been consumed and deleted by now, so the run
	// directory is empty. A leftover means a cleanup bug; keep it around
	// for inspection rather than forcing removal.
	if err := os.Remove(workDir); err != nil {
		log.Debug("working directory not removed: %v", err)
	}
	return nil
}

// makeWorkDir creates a run-scoped directory for intermediate artifacts so
// concurrent runs never share state through the current directory.
func makeWorkDir(base string) (string, error) {
	absBase, err := filepath.Abs(base)
	if err != nil {
		return "", errors.Wrap(err, "resolve working directory base")
	}
	workDir := filepath.Join(absBase, "s1rtc-"+uuid.NewString())
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return "", errors.Wrap(err, "create working directory")
	}
	return workDir, nil
}
