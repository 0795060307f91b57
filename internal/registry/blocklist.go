package registry

import (
	"fmt"
	"strings"

	"github.com/feral-file/ff-computed-properties/internal/adapter"
)

// WorkspaceBlocklist names workspaces operators have pulled out of computation
//
//go:generate mockgen -source=blocklist.go -destination=../mocks/blocklist_registry.go -package=mocks -mock_names=WorkspaceBlocklist=MockWorkspaceBlocklist
type WorkspaceBlocklist interface {
	// IsBlocked checks if a workspace is blocked
	IsBlocked(workspaceID string) bool
	// Size returns the number of blocked workspaces
	Size() int
}

// BlocklistData represents the structure of the blocklist.json file
type BlocklistData struct {
	WorkspaceIDs []string `json:"workspaceIds"`
}

// workspaceBlocklist is the internal implementation of WorkspaceBlocklist
type workspaceBlocklist struct {
	// Fast lookup map, ids are stored lower cased
	workspaces map[string]bool
}

// NewWorkspaceBlocklist builds a blocklist from ids
func NewWorkspaceBlocklist(workspaceIDs ...string) WorkspaceBlocklist {
	bl := &workspaceBlocklist{workspaces: make(map[string]bool, len(workspaceIDs))}
	for _, id := range workspaceIDs {
		id = strings.ToLower(strings.TrimSpace(id))
		if id == "" {
			continue
		}
		bl.workspaces[id] = true
	}
	return bl
}

// IsBlocked checks if a workspace is blocked
func (b *workspaceBlocklist) IsBlocked(workspaceID string) bool {
	if b == nil {
		return false
	}
	return b.workspaces[strings.ToLower(workspaceID)]
}

// Size returns the number of blocked workspaces
func (b *workspaceBlocklist) Size() int {
	if b == nil {
		return 0
	}
	return len(b.workspaces)
}

// BlocklistLoader defines the interface for loading blocklists from files
//
//go:generate mockgen -source=blocklist.go -destination=../mocks/blocklist_registry.go -package=mocks -mock_names=BlocklistLoader=MockBlocklistLoader
type BlocklistLoader interface {
	// Load loads the blocklist from a JSON file. An empty path yields an empty blocklist.
	Load(filePath string) (WorkspaceBlocklist, error)
}

// blocklistLoader is the internal implementation of BlocklistLoader
type blocklistLoader struct {
	fs   adapter.FileSystem
	json adapter.JSON
}

// NewBlocklistLoader creates a new BlocklistLoader with injected dependencies
func NewBlocklistLoader(fs adapter.FileSystem, json adapter.JSON) BlocklistLoader {
	return &blocklistLoader{
		fs:   fs,
		json: json,
	}
}

// Load loads the blocklist from a JSON file
func (l *blocklistLoader) Load(filePath string) (WorkspaceBlocklist, error) {
	if filePath == "" {
		return NewWorkspaceBlocklist(), nil
	}

	data, err := l.fs.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read blocklist file: %w", err)
	}

	var blocklistData BlocklistData
	if err := l.json.Unmarshal(data, &blocklistData); err != nil {
		return nil, fmt.Errorf("failed to parse blocklist JSON: %w", err)
	}

	return NewWorkspaceBlocklist(blocklistData.WorkspaceIDs...), nil
}
