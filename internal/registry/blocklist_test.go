package registry_test

import (
	"encoding/json"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/feral-file/ff-computed-properties/internal/mocks"
	"github.com/feral-file/ff-computed-properties/internal/registry"
)

func TestBlocklistLoader_Load(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		setupMocks   func(*mocks.MockFileSystem, *mocks.MockJSON)
		expectedErr  string // Error message to assert, empty means no error expected
		validateFunc func(t *testing.T, reg registry.WorkspaceBlocklist)
	}{
		{
			name: "successful load with valid JSON",
			path: "blocklist.json",
			setupMocks: func(mockFS *mocks.MockFileSystem, mockJSON *mocks.MockJSON) {
				mockFS.
					EXPECT().
					ReadFile("blocklist.json").
					Return([]byte(`{"workspaceIds": ["ws-noisy", "ws-migrating"]}`), nil)
				mockJSON.
					EXPECT().
					Unmarshal(gomock.Any(), gomock.Any()).
					DoAndReturn(func(data []byte, v interface{}) error {
						return json.Unmarshal(data, v)
					})
			},
			validateFunc: func(t *testing.T, reg registry.WorkspaceBlocklist) {
				assert.Equal(t, 2, reg.Size())
				assert.True(t, reg.IsBlocked("ws-noisy"))
				assert.True(t, reg.IsBlocked("ws-migrating"))
				assert.False(t, reg.IsBlocked("ws-1"))
			},
		},
		{
			name: "successful load with empty blocklist",
			path: "blocklist.json",
			setupMocks: func(mockFS *mocks.MockFileSystem, mockJSON *mocks.MockJSON) {
				mockFS.
					EXPECT().
					ReadFile("blocklist.json").
					Return([]byte(`{}`), nil)
				mockJSON.
					EXPECT().
					Unmarshal(gomock.Any(), gomock.Any()).
					DoAndReturn(func(data []byte, v interface{}) error {
						return json.Unmarshal(data, v)
					})
			},
			validateFunc: func(t *testing.T, reg registry.WorkspaceBlocklist) {
				assert.Equal(t, 0, reg.Size())
				assert.False(t, reg.IsBlocked("ws-1"))
			},
		},
		{
			name: "no path configured",
			path: "",
			validateFunc: func(t *testing.T, reg registry.WorkspaceBlocklist) {
				assert.Equal(t, 0, reg.Size())
			},
		},
		{
			name: "file read error",
			path: "blocklist.json",
			setupMocks: func(mockFS *mocks.MockFileSystem, mockJSON *mocks.MockJSON) {
				mockFS.
					EXPECT().
					ReadFile("blocklist.json").
					Return(nil, assert.AnError)
			},
			expectedErr: "failed to read blocklist file",
		},
		{
			name: "JSON parse error",
			path: "blocklist.json",
			setupMocks: func(mockFS *mocks.MockFileSystem, mockJSON *mocks.MockJSON) {
				blocklistJSON := []byte(`invalid json`)
				mockFS.
					EXPECT().
					ReadFile("blocklist.json").
					Return(blocklistJSON, nil)
				mockJSON.
					EXPECT().
					Unmarshal(blocklistJSON, gomock.Any()).
					Return(assert.AnError)
			},
			expectedErr: "failed to parse blocklist JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockFS := mocks.NewMockFileSystem(ctrl)
			mockJSON := mocks.NewMockJSON(ctrl)

			if tt.setupMocks != nil {
				tt.setupMocks(mockFS, mockJSON)
			}

			loader := registry.NewBlocklistLoader(mockFS, mockJSON)
			reg, err := loader.Load(tt.path)

			if tt.expectedErr != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr)
				assert.Nil(t, reg)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, reg)
				if tt.validateFunc != nil {
					tt.validateFunc(t, reg)
				}
			}
		})
	}
}

func TestWorkspaceBlocklist_IsBlocked(t *testing.T) {
	reg := registry.NewWorkspaceBlocklist("WS-Upper", " ws-padded ", "")

	tests := []struct {
		name        string
		workspaceID string
		expected    bool
	}{
		{name: "case insensitive lookup", workspaceID: "ws-upper", expected: true},
		{name: "trimmed on load", workspaceID: "ws-padded", expected: true},
		{name: "not found", workspaceID: "ws-other", expected: false},
		{name: "empty id is never blocked", workspaceID: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, reg.IsBlocked(tt.workspaceID))
		})
	}
	assert.Equal(t, 2, reg.Size())
}
