package dto

import (
	"errors"
	"time"
)

// ComputeStateRequest is the request body for a manual computation pass
type ComputeStateRequest struct {
	// Now overrides the processing time of the pass, defaults to the server clock
	Now *time.Time `json:"now,omitempty"`
}

// Validate validates the compute state request
func (r *ComputeStateRequest) Validate() error {
	if r.Now != nil && r.Now.IsZero() {
		return errors.New("now must not be the zero time")
	}
	return nil
}
