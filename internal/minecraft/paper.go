// Package minecraft supplements the distilled specification's scope
// with the domain transformers the original "stainless" implementation
// performs upstream of the supervisor core: probing PaperMC for the
// latest build of a project/version, synthesizing Aikar's JVM flags,
// and writing the server.properties/eula.txt files a Paper server
// expects on disk. None of this drives supervisor.Application directly
// — it produces a supervisor.CreationRequest, exactly the boundary §1
// draws around "upstream transformers".
package minecraft

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Project is a PaperMC project name, e.g. "paper" or "velocity".
type Project string

const (
	ProjectPaper    Project = "paper"
	ProjectVelocity Project = "velocity"
)

// BuildMetadata describes one published build of a PaperMC project, as
// returned by the builds endpoint, per the original query/response_schema.
type BuildMetadata struct {
	ProjectID   string
	ProjectName string
	Version     string
	Build       int
	Channel     string
	Promoted    bool
	Downloads   map[string]Download
}

// Download identifies one downloadable artifact of a build.
type Download struct {
	Name   string `json:"name"`
	SHA256 string `json:"sha256"`
}

// ApplicationDownload returns the build's primary server jar download,
// the entry PaperMC's API files under the "application" key.
func (b BuildMetadata) ApplicationDownload() (Download, bool) {
	d, ok := b.Downloads["application"]
	return d, ok
}

type versionResponse struct {
	ProjectID   string `json:"project_id"`
	ProjectName string `json:"project_name"`
	Version     string `json:"version"`
	Builds      []int  `json:"builds"`
}

type buildResponse struct {
	ProjectID   string              `json:"project_id"`
	ProjectName string              `json:"project_name"`
	Version     string              `json:"version"`
	Build       int                 `json:"build"`
	Channel     string              `json:"channel"`
	Promoted    bool                `json:"promoted"`
	Downloads   map[string]Download `json:"downloads"`
}

// PaperClient queries the PaperMC build metadata API over HTTP.
type PaperClient struct {
	baseURL string
	http    *http.Client
}

// NewPaperClient constructs a client against baseURL, e.g.
// "https://api.papermc.io".
func NewPaperClient(baseURL string, httpClient *http.Client) *PaperClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &PaperClient{baseURL: baseURL, http: httpClient}
}

// LatestBuild returns the metadata of the highest-numbered build
// published for project/version.
func (c *PaperClient) LatestBuild(ctx context.Context, project Project, version string) (BuildMetadata, error) {
	versionURL := fmt.Sprintf("%s/v2/projects/%s/versions/%s", c.baseURL, project, version)
	var vr versionResponse
	if err := c.getJSON(ctx, versionURL, &vr); err != nil {
		return BuildMetadata{}, fmt.Errorf("minecraft: fetch version metadata: %w", err)
	}
	if len(vr.Builds) == 0 {
		return BuildMetadata{}, fmt.Errorf("minecraft: no builds published for %s %s", project, version)
	}

	latest := vr.Builds[0]
	for _, b := range vr.Builds {
		if b > latest {
			latest = b
		}
	}
	return c.Build(ctx, project, version, latest)
}

// Build returns the metadata of a specific build.
func (c *PaperClient) Build(ctx context.Context, project Project, version string, build int) (BuildMetadata, error) {
	buildURL := fmt.Sprintf("%s/v2/projects/%s/versions/%s/builds/%d", c.baseURL, project, version, build)
	var br buildResponse
	if err := c.getJSON(ctx, buildURL, &br); err != nil {
		return BuildMetadata{}, fmt.Errorf("minecraft: fetch build metadata: %w", err)
	}
	return BuildMetadata{
		ProjectID:   br.ProjectID,
		ProjectName: br.ProjectName,
		Version:     br.Version,
		Build:       br.Build,
		Channel:     br.Channel,
		Promoted:    br.Promoted,
		Downloads:   br.Downloads,
	}, nil
}

// DownloadURL returns the URL from which the build's server jar can be
// fetched.
func (c *PaperClient) DownloadURL(project Project, version string, build int, download Download) string {
	return fmt.Sprintf("%s/v2/projects/%s/versions/%s/builds/%d/downloads/%s", c.baseURL, project, version, build, download.Name)
}

func (c *PaperClient) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
