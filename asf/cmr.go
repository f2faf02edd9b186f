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

// Package asf talks to the NASA Common Metadata Repository and the ASF
// distribution endpoints: it resolves a Sentinel-1 granule name to a download
// URL and fetches the raw scene to local disk.
package asf

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

const (
	// CMRURL is the granule search endpoint of the Common Metadata Repository.
	CMRURL = "https://cmr.earthdata.nasa.gov/search/granules.json"

	// UserAgent identifies this client to CMR and the data endpoints.
	UserAgent = "asfdaac/s1tbx-rtc"

	provider = "ASF"
)

// CollectionIDs restricts the granule search to the Sentinel-1 GRD collections
// distributed by ASF.
var CollectionIDs = []string{
	"C1214470533-ASF", // SENTINEL-1A_DUAL_POL_GRD_HIGH_RES
	"C1214471521-ASF", // SENTINEL-1A_DUAL_POL_GRD_MEDIUM_RES
	"C1214470682-ASF", // SENTINEL-1A_SINGLE_POL_GRD_HIGH_RES
	"C1214472994-ASF", // SENTINEL-1A_SINGLE_POL_GRD_MEDIUM_RES
	"C1327985645-ASF", // SENTINEL-1B_DUAL_POL_GRD_HIGH_RES
	"C1327985660-ASF", // SENTINEL-1B_DUAL_POL_GRD_MEDIUM_RES
	"C1327985571-ASF", // SENTINEL-1B_SINGLE_POL_GRD_HIGH_RES
	"C1327985740-ASF", // SENTINEL-1B_SINGLE_POL_GRD_MEDIUM_RES
}

// ErrGranuleNotFound reports that the granule name matched no downloadable
// GRD product in any of the known collections.
var ErrGranuleNotFound = errors.New("granule not found in GRD collections")

// Client wraps an HTTP client with the CMR endpoint so tests can point it at
// a fake server.
type Client struct {
	HTTP   *http.Client
	CMRURL string
}

// NewClient returns a Client against the production CMR endpoint.
func NewClient() *Client {
	return &Client{HTTP: http.DefaultClient, CMRURL: CMRURL}
}

type cmrFeed struct {
	Feed struct {
		Entry []struct {
			Links []struct {
				Rel  string `json:"rel"`
				Href string `json:"href"`
			} `json:"links"`
		} `json:"entry"`
	} `json:"feed"`
}

// ResolveDownloadURL queries CMR for the granule and returns the first "data"
// relation link of the first matching entry. It returns ErrGranuleNotFound
// when the feed has no entry or no data link.
func (c *Client) ResolveDownloadURL(ctx context.Context, granule string) (string, error) {
	params := url.Values{}
	params.Set("readable_granule_name", granule)
	params.Set("provider", provider)
	for _, id := range CollectionIDs {
		params.Add("collection_concept_id", id)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.CMRURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", errors.Wrap(err, "build CMR request")
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "query CMR")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("CMR returned status %d", resp.StatusCode)
	}

	var feed cmrFeed
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return "", errors.Wrap(err, "decode CMR response")
	}

	if len(feed.Feed.Entry) == 0 {
		return "", ErrGranuleNotFound
	}
	for _, link := range feed.Feed.Entry[0].Links {
		if strings.Contains(link.Rel, "data") {
			return link.Href, nil
		}
	}
	return "", ErrGranuleNotFound
}
