package rest

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
)

const MAX_DUE_WORKSPACES_LIMIT = 1000

// DueWorkspacesQueryParams holds query parameters for GET /due-workspaces
type DueWorkspacesQueryParams struct {
	Interval time.Duration `form:"interval"`
	Limit    int           `form:"limit,default=100"`
}

// ParseDueWorkspacesQuery parses query parameters for GET /due-workspaces
func ParseDueWorkspacesQuery(c *gin.Context) (*DueWorkspacesQueryParams, error) {
	var params DueWorkspacesQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	if params.Interval <= 0 {
		return nil, errors.New("interval must be a positive duration")
	}
	if params.Limit <= 0 {
		return nil, errors.New("limit must be positive")
	}

	// Cap limit
	if params.Limit > MAX_DUE_WORKSPACES_LIMIT {
		params.Limit = MAX_DUE_WORKSPACES_LIMIT
	}

	return &params, nil
}

// ResetDataQueryParams holds query parameters for POST /workspaces/:id/reset-data
type ResetDataQueryParams struct {
	Force bool `form:"force,default=false"`
}

// ParseResetDataQuery parses query parameters for POST /workspaces/:id/reset-data
func ParseResetDataQuery(c *gin.Context) (*ResetDataQueryParams, error) {
	var params ResetDataQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	return &params, nil
}
