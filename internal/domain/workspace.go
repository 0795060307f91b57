package domain

import "time"

// WorkspaceStatus is the resource-layer status of a workspace
type WorkspaceStatus string

const (
	WorkspaceStatusActive     WorkspaceStatus = "Active"
	WorkspaceStatusPaused     WorkspaceStatus = "Paused"
	WorkspaceStatusTombstoned WorkspaceStatus = "Tombstoned"
)

// WorkspaceType places a workspace in the tenant hierarchy
type WorkspaceType string

const (
	WorkspaceTypeRoot   WorkspaceType = "Root"
	WorkspaceTypeParent WorkspaceType = "Parent"
	WorkspaceTypeChild  WorkspaceType = "Child"
)

// FeatureComputePropertiesGlobal moves a workspace into the shared global computation process
const FeatureComputePropertiesGlobal = "ComputePropertiesGlobal"

// Workspace is a tenant
type Workspace struct {
	ID                string
	Name              string
	Status            WorkspaceStatus
	Type              WorkspaceType
	ParentWorkspaceID *string
	CreatedAt         time.Time
}

// CanCompute reports whether the workspace may have a computation process at all.
// Parent workspaces are umbrellas and never compute.
func (w Workspace) CanCompute() bool {
	return w.Status == WorkspaceStatusActive && w.Type != WorkspaceTypeParent
}
