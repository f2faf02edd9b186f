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
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteNetrc(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".netrc")
	require.NoError(t, WriteNetrc(path, "someuser", "hunter2"))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "machine urs.earthdata.nasa.gov login someuser password hunter2", string(got))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}
}

func TestWriteNetrc_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".netrc")
	require.NoError(t, os.WriteFile(path, []byte("machine other login a password b"), 0o600))

	require.NoError(t, WriteNetrc(path, "someuser", "hunter2"))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "machine urs.earthdata.nasa.gov login someuser password hunter2", string(got))
}
