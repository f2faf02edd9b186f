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

package asf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// earthdataHost is the Earthdata Login machine the data endpoints redirect to.
const earthdataHost = "urs.earthdata.nasa.gov"

// NetrcPath returns the per-user netrc location consumed by the download
// authentication flow.
func NetrcPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "locate home directory")
	}
	return filepath.Join(home, ".netrc"), nil
}

// WriteNetrc writes an Earthdata Login record to path, replacing whatever
// was there. The file is user-only since it holds a password.
func WriteNetrc(path, username, password string) error {
	record := fmt.Sprintf("machine %s login %s password %s", earthdataHost, username, password)
	if err := os.WriteFile(path, []byte(record), 0o600); err != nil {
		return errors.Wrap(err, "write netrc")
	}
	return nil
}
