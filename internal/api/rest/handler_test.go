package rest_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-computed-properties/internal/api/middleware"
	"github.com/feral-file/ff-computed-properties/internal/api/rest"
	"github.com/feral-file/ff-computed-properties/internal/api/shared/dto"
	"github.com/feral-file/ff-computed-properties/internal/domain"
	"github.com/feral-file/ff-computed-properties/internal/mocks"
)

const testAPIKey = "admin-key"

func setupTestRouter(t *testing.T) (*gin.Engine, *mocks.MockAPIExecutor) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	exec := mocks.NewMockAPIExecutor(ctrl)

	router := gin.New()
	rest.SetupRoutes(router, rest.NewHandler(exec), middleware.AuthConfig{APIKeys: []string{testAPIKey}})
	return router, exec
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "ApiKey "+testAPIKey)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Code
}

func TestHealthCheck_NoAuth(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestAdminRoutes_RequireAuth(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/admin/workspaces/ws-1/compute-properties/start", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "unauthorized", decodeError(t, w))
}

func TestStartComputeProperties(t *testing.T) {
	updatedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "started", wantStatus: http.StatusOK},
		{name: "workspace not found", err: fmt.Errorf("%w: ws-1", domain.ErrWorkspaceNotFound), wantStatus: http.StatusNotFound, wantCode: "not_found"},
		{name: "ineligible", err: fmt.Errorf("%w: paused", domain.ErrWorkspaceIneligible), wantStatus: http.StatusConflict, wantCode: "conflict"},
		{name: "unexpected", err: errors.New("temporal unavailable"), wantStatus: http.StatusInternalServerError, wantCode: "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, exec := setupTestRouter(t)

			var resp *dto.ComputeProcessResponse
			if tt.err == nil {
				resp = &dto.ComputeProcessResponse{
					WorkspaceID: "ws-1",
					Mode:        string(domain.ProcessModeWorkspace),
					State:       string(domain.ProcessStateRunning),
					WorkflowID:  "compute-properties-ws-1",
					UpdatedAt:   updatedAt,
				}
			}
			exec.EXPECT().StartComputeProperties(gomock.Any(), "ws-1").Return(resp, tt.err)

			w := doRequest(router, http.MethodPost, "/api/v1/admin/workspaces/ws-1/compute-properties/start", "")

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeError(t, w))
				assert.NotContains(t, w.Body.String(), "temporal unavailable")
				return
			}

			var got dto.ComputeProcessResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, *resp, got)
		})
	}
}

func TestProcessCommands(t *testing.T) {
	router, exec := setupTestRouter(t)

	process := &dto.ComputeProcessResponse{WorkspaceID: "ws-1", State: string(domain.ProcessStateStopped)}
	exec.EXPECT().StopComputeProperties(gomock.Any(), "ws-1").Return(process, nil)
	exec.EXPECT().ResetComputeProperties(gomock.Any(), "ws-1").Return(process, nil)
	exec.EXPECT().TerminateComputeProperties(gomock.Any(), "ws-1").Return(process, nil)

	for _, command := range []string{"stop", "reset", "terminate"} {
		w := doRequest(router, http.MethodPost, "/api/v1/admin/workspaces/ws-1/compute-properties/"+command, "")
		assert.Equal(t, http.StatusOK, w.Code, command)
		assert.Contains(t, w.Body.String(), `"state":"Stopped"`, command)
	}
}

func TestStopComputeProperties_NotRunning(t *testing.T) {
	router, exec := setupTestRouter(t)
	exec.EXPECT().StopComputeProperties(gomock.Any(), "ws-1").Return(nil, domain.ErrWorkflowNotFound)

	w := doRequest(router, http.MethodPost, "/api/v1/admin/workspaces/ws-1/compute-properties/stop", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSignalComputeProperties(t *testing.T) {
	router, exec := setupTestRouter(t)
	exec.EXPECT().SignalComputeProperties(gomock.Any(), "ws-1").Return(nil)

	w := doRequest(router, http.MethodPost, "/api/v1/admin/workspaces/ws-1/compute-properties/signal", "")

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Contains(t, w.Body.String(), "signaled")
}

func TestComputeState(t *testing.T) {
	t.Run("without body uses server clock", func(t *testing.T) {
		router, exec := setupTestRouter(t)
		exec.EXPECT().ComputeState(gomock.Any(), "ws-1", (*time.Time)(nil)).
			Return(&dto.ComputeStateResponse{WorkspaceID: "ws-1", Changes: 3, Emitted: 3}, nil)

		w := doRequest(router, http.MethodPost, "/api/v1/admin/workspaces/ws-1/compute-state", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"changes":3`)
	})

	t.Run("with now override", func(t *testing.T) {
		router, exec := setupTestRouter(t)
		now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		exec.EXPECT().ComputeState(gomock.Any(), "ws-1", gomock.Any()).
			DoAndReturn(func(_ interface{}, _ string, got *time.Time) (*dto.ComputeStateResponse, error) {
				require.NotNil(t, got)
				assert.True(t, now.Equal(*got))
				return &dto.ComputeStateResponse{WorkspaceID: "ws-1"}, nil
			})

		w := doRequest(router, http.MethodPost, "/api/v1/admin/workspaces/ws-1/compute-state", `{"now":"2026-03-01T12:00:00Z"}`)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		router, _ := setupTestRouter(t)

		w := doRequest(router, http.MethodPost, "/api/v1/admin/workspaces/ws-1/compute-state", `{"now":"yesterday"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "validation_failed", decodeError(t, w))
	})

	t.Run("watermark conflict", func(t *testing.T) {
		router, exec := setupTestRouter(t)
		exec.EXPECT().ComputeState(gomock.Any(), "ws-1", gomock.Any()).
			Return(nil, fmt.Errorf("failed to compute state: %w", domain.ErrWatermarkConflict))

		w := doRequest(router, http.MethodPost, "/api/v1/admin/workspaces/ws-1/compute-state", "")

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestResetWorkspaceData(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		force      bool
		err        error
		wantStatus int
	}{
		{name: "default", force: false, wantStatus: http.StatusOK},
		{name: "forced", query: "?force=true", force: true, wantStatus: http.StatusOK},
		{name: "process running", err: fmt.Errorf("%w: ws-1", domain.ErrLifecycleConflict), wantStatus: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, exec := setupTestRouter(t)
			exec.EXPECT().ResetWorkspaceData(gomock.Any(), "ws-1", tt.force).Return(tt.err)

			w := doRequest(router, http.MethodPost, "/api/v1/admin/workspaces/ws-1/reset-data"+tt.query, "")

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}

	t.Run("invalid force", func(t *testing.T) {
		router, _ := setupTestRouter(t)

		w := doRequest(router, http.MethodPost, "/api/v1/admin/workspaces/ws-1/reset-data?force=maybe", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListPeriods(t *testing.T) {
	router, exec := setupTestRouter(t)
	windowEnd := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	exec.EXPECT().ListPeriods(gomock.Any(), "ws-1").Return(&dto.PeriodListResponse{
		WorkspaceID: "ws-1",
		Periods: []dto.PeriodResponse{{
			ComputedPropertyType: string(domain.ComputedPropertyTypeSegment),
			ComputedPropertyID:   "seg-1",
			Version:              2,
			WindowEnd:            windowEnd,
		}},
	}, nil)

	w := doRequest(router, http.MethodGet, "/api/v1/admin/workspaces/ws-1/periods", "")

	require.Equal(t, http.StatusOK, w.Code)
	var got dto.PeriodListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got.Periods, 1)
	assert.Equal(t, "seg-1", got.Periods[0].ComputedPropertyID)
	assert.True(t, windowEnd.Equal(got.Periods[0].WindowEnd))
}

func TestGlobalCommands(t *testing.T) {
	router, exec := setupTestRouter(t)
	exec.EXPECT().StartGlobal(gomock.Any()).Return(nil)
	exec.EXPECT().StopGlobal(gomock.Any()).Return(errors.New("boom"))

	w := doRequest(router, http.MethodPost, "/api/v1/admin/global/compute-properties/start", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodPost, "/api/v1/admin/global/compute-properties/stop", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestFindDueWorkspaces(t *testing.T) {
	t.Run("parses interval and caps limit", func(t *testing.T) {
		router, exec := setupTestRouter(t)
		exec.EXPECT().FindDueWorkspaces(gomock.Any(), 10*time.Minute, rest.MAX_DUE_WORKSPACES_LIMIT).
			Return(&dto.DueWorkspaceListResponse{Workspaces: []dto.DueWorkspaceResponse{{WorkspaceID: "ws-1"}}}, nil)

		w := doRequest(router, http.MethodGet, "/api/v1/admin/due-workspaces?interval=10m&limit=5000", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"workspaceId":"ws-1"`)
		assert.Contains(t, w.Body.String(), `"lastRecomputedAt":null`)
	})

	for _, query := range []string{"", "?interval=0s", "?interval=soon", "?interval=1m&limit=-1"} {
		t.Run("rejects "+query, func(t *testing.T) {
			router, _ := setupTestRouter(t)

			w := doRequest(router, http.MethodGet, "/api/v1/admin/due-workspaces"+query, "")

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}
