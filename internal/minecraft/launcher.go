package minecraft

import (
	"context"
	"fmt"

	"github.com/cuemby/ironforged/internal/supervisor"
)

// LaunchRequest is the caller-facing shape of a Minecraft server launch:
// the pieces a gRPC request actually carries, before they are turned
// into a generic supervisor.CreationRequest.
type LaunchRequest struct {
	Name       string
	Project    Project
	Version    string
	Build      int // 0 selects the latest published build
	Memory     MemoryAmount
	Properties Properties

	AsyncHandlers []supervisor.AsyncHandler
	SyncHandlers  []supervisor.SyncHandler
}

// Launcher resolves a PaperMC build and submits the resulting creation
// request to a registry, gluing together PaperClient, AikarsFlags, and
// Properties the way the original's manager/app/create.rs glues its
// own build resolver, command synthesizer, and directory writer.
type Launcher struct {
	paper    *PaperClient
	registry *supervisor.Registry
}

// NewLauncher constructs a Launcher that resolves builds via paper and
// submits requests to registry.
func NewLauncher(paper *PaperClient, registry *supervisor.Registry) *Launcher {
	return &Launcher{paper: paper, registry: registry}
}

// Launch resolves req's PaperMC build (or uses the pinned build if
// req.Build is non-zero), synthesizes the java command with Aikar's
// flags, and submits a creation request to the registry, returning the
// new application's identifier.
func (l *Launcher) Launch(ctx context.Context, req LaunchRequest) (supervisor.ID, error) {
	var build BuildMetadata
	var err error
	if req.Build != 0 {
		build, err = l.paper.Build(ctx, req.Project, req.Version, req.Build)
	} else {
		build, err = l.paper.LatestBuild(ctx, req.Project, req.Version)
	}
	if err != nil {
		return supervisor.ID{}, fmt.Errorf("minecraft: resolve build: %w", err)
	}

	download, ok := build.ApplicationDownload()
	if !ok {
		return supervisor.ID{}, fmt.Errorf("minecraft: build %d has no application download", build.Build)
	}

	flags := AikarsFlags{Memory: req.Memory, JarPath: download.Name}
	if flags.Memory == (MemoryAmount{}) {
		flags.Memory = DefaultMemory
	}

	properties := req.Properties
	creationReq := supervisor.CreationRequest{
		Name: req.Name,
		Command: supervisor.Command{
			Program: "java",
			Args:    flags.Args(),
		},
		AsyncHandlers: req.AsyncHandlers,
		SyncHandlers:  req.SyncHandlers,
		Prepare:       properties.WriteTo,
	}

	return l.registry.SubmitCreationRequest(ctx, creationReq)
}
