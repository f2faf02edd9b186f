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
	"context"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/asfdaac/s1tbx-rtc/internal/log"
)

// chunkSize is the copy buffer size used while streaming a scene to disk.
const chunkSize = 5 * 1024 * 1024

// Download streams the scene at url into destDir, named after the last URL
// path segment, and returns the local path. Authentication rides on the
// netrc file written before the transfer starts.
func (c *Client) Download(ctx context.Context, url, destDir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errors.Wrap(err, "build download request")
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "download granule")
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errors.Errorf("download returned status %d", resp.StatusCode)
	}

	local := filepath.Join(destDir, path.Base(req.URL.Path))
	f, err := os.Create(local)
	if err != nil {
		return "", errors.Wrap(err, "create local scene file")
	}

	buf := make([]byte, chunkSize)
	n, err := io.CopyBuffer(f, resp.Body, buf)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", errors.Wrapf(err, "write %s", local)
	}

	log.Info("Downloaded %s (%s)", filepath.Base(local), humanize.Bytes(uint64(n)))
	return local, nil
}
