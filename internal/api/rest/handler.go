package rest

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-computed-properties/internal/api/shared/dto"
	"github.com/feral-file/ff-computed-properties/internal/api/shared/executor"
)

const serviceName = "ff-computed-properties"

// Handler defines the interface for the admin REST handlers
type Handler interface {
	// StartComputeProperties starts the compute process of a workspace
	// POST /api/v1/admin/workspaces/:id/compute-properties/start
	StartComputeProperties(c *gin.Context)

	// StopComputeProperties stops the compute process of a workspace
	// POST /api/v1/admin/workspaces/:id/compute-properties/stop
	StopComputeProperties(c *gin.Context)

	// ResetComputeProperties clears computed state and restarts a running process
	// POST /api/v1/admin/workspaces/:id/compute-properties/reset
	ResetComputeProperties(c *gin.Context)

	// TerminateComputeProperties terminates the compute process of a workspace
	// POST /api/v1/admin/workspaces/:id/compute-properties/terminate
	TerminateComputeProperties(c *gin.Context)

	// SignalComputeProperties requests an early computation cycle
	// POST /api/v1/admin/workspaces/:id/compute-properties/signal
	SignalComputeProperties(c *gin.Context)

	// ComputeState runs one computation pass, with an optional {"now": <RFC3339>} body
	// POST /api/v1/admin/workspaces/:id/compute-state
	ComputeState(c *gin.Context)

	// ResetWorkspaceData deletes every row of the workspace
	// POST /api/v1/admin/workspaces/:id/reset-data?force=<bool>
	ResetWorkspaceData(c *gin.Context)

	// ListPeriods lists the watermarks of the workspace
	// GET /api/v1/admin/workspaces/:id/periods
	ListPeriods(c *gin.Context)

	// StartGlobal starts the global scheduler and queue
	// POST /api/v1/admin/global/compute-properties/start
	StartGlobal(c *gin.Context)

	// StopGlobal stops the global scheduler and queue
	// POST /api/v1/admin/global/compute-properties/stop
	StopGlobal(c *gin.Context)

	// FindDueWorkspaces lists workspaces due for recomputation
	// GET /api/v1/admin/due-workspaces?interval=<duration>&limit=<limit>
	FindDueWorkspaces(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /healthz
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	executor executor.Executor
}

// NewHandler creates a new REST handler
func NewHandler(exec executor.Executor) Handler {
	return &handler{executor: exec}
}

// workspaceID reads the :id path parameter, responding with 400 when blank
func workspaceID(c *gin.Context) (string, bool) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respondBadRequest(c, "Missing workspace id")
		return "", false
	}
	return id, true
}

func (h *handler) StartComputeProperties(c *gin.Context) {
	id, ok := workspaceID(c)
	if !ok {
		return
	}

	response, err := h.executor.StartComputeProperties(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to start compute process")
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *handler) StopComputeProperties(c *gin.Context) {
	id, ok := workspaceID(c)
	if !ok {
		return
	}

	response, err := h.executor.StopComputeProperties(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to stop compute process")
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *handler) ResetComputeProperties(c *gin.Context) {
	id, ok := workspaceID(c)
	if !ok {
		return
	}

	response, err := h.executor.ResetComputeProperties(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to reset compute process")
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *handler) TerminateComputeProperties(c *gin.Context) {
	id, ok := workspaceID(c)
	if !ok {
		return
	}

	response, err := h.executor.TerminateComputeProperties(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to terminate compute process")
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *handler) SignalComputeProperties(c *gin.Context) {
	id, ok := workspaceID(c)
	if !ok {
		return
	}

	if err := h.executor.SignalComputeProperties(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to signal compute process")
		return
	}

	c.JSON(http.StatusAccepted, dto.StatusResponse{Status: "signaled"})
}

func (h *handler) ComputeState(c *gin.Context) {
	id, ok := workspaceID(c)
	if !ok {
		return
	}

	// The body is optional
	var req dto.ComputeStateRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
			return
		}
	}

	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	response, err := h.executor.ComputeState(c.Request.Context(), id, req.Now)
	if err != nil {
		respondError(c, err, "Failed to compute state")
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *handler) ResetWorkspaceData(c *gin.Context) {
	id, ok := workspaceID(c)
	if !ok {
		return
	}

	params, err := ParseResetDataQuery(c)
	if err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid query parameters: %v", err))
		return
	}

	if err := h.executor.ResetWorkspaceData(c.Request.Context(), id, params.Force); err != nil {
		respondError(c, err, "Failed to reset workspace data")
		return
	}

	c.JSON(http.StatusOK, dto.StatusResponse{Status: "reset"})
}

func (h *handler) ListPeriods(c *gin.Context) {
	id, ok := workspaceID(c)
	if !ok {
		return
	}

	response, err := h.executor.ListPeriods(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to list periods")
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *handler) StartGlobal(c *gin.Context) {
	if err := h.executor.StartGlobal(c.Request.Context()); err != nil {
		respondError(c, err, "Failed to start global compute process")
		return
	}

	c.JSON(http.StatusOK, dto.StatusResponse{Status: "started"})
}

func (h *handler) StopGlobal(c *gin.Context) {
	if err := h.executor.StopGlobal(c.Request.Context()); err != nil {
		respondError(c, err, "Failed to stop global compute process")
		return
	}

	c.JSON(http.StatusOK, dto.StatusResponse{Status: "stopped"})
}

func (h *handler) FindDueWorkspaces(c *gin.Context) {
	params, err := ParseDueWorkspacesQuery(c)
	if err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid query parameters: %v", err))
		return
	}

	response, err := h.executor.FindDueWorkspaces(c.Request.Context(), params.Interval, params.Limit)
	if err != nil {
		respondError(c, err, "Failed to find due workspaces")
		return
	}

	c.JSON(http.StatusOK, response)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": serviceName,
	})
}
