package store

import (
	"encoding/json"

	"gorm.io/datatypes"

	"github.com/feral-file/ff-computed-properties/internal/domain"
	"github.com/feral-file/ff-computed-properties/internal/store/schema"
)

func toDomainWorkspace(w schema.Workspace) domain.Workspace {
	return domain.Workspace{
		ID:                w.ID,
		Name:              w.Name,
		Status:            domain.WorkspaceStatus(w.Status),
		Type:              domain.WorkspaceType(w.Type),
		ParentWorkspaceID: w.ParentWorkspaceID,
		CreatedAt:         w.CreatedAt,
	}
}

func toDomainPeriod(p schema.ComputedPropertyPeriod) domain.Period {
	return domain.Period{
		WorkspaceID:          p.WorkspaceID,
		ComputedPropertyType: domain.ComputedPropertyType(p.ComputedPropertyType),
		ComputedPropertyID:   p.ComputedPropertyID,
		Version:              p.Version,
		WindowEnd:            p.WindowEnd,
		LastRecomputedAt:     p.LastRecomputedAt,
	}
}

func toDomainRawState(s schema.ComputedPropertyState) (domain.RawState, error) {
	state := domain.RawState{
		UserID:        s.UserID,
		StateID:       s.StateID,
		Value:         rawOrNil(s.Value),
		LastEventTime: s.LastEventTime,
		LastEventSeq:  s.LastEventSeq,
		EventCount:    s.EventCount,
	}
	if len(s.EventTimes) > 0 {
		if err := json.Unmarshal(s.EventTimes, &state.EventTimes); err != nil {
			return domain.RawState{}, err
		}
	}
	return state, nil
}

func toDomainAssignment(a schema.ComputedPropertyAssignment) domain.Assignment {
	return domain.Assignment{
		WorkspaceID:          a.WorkspaceID,
		UserID:               a.UserID,
		ComputedPropertyType: domain.ComputedPropertyType(a.ComputedPropertyType),
		ComputedPropertyID:   a.ComputedPropertyID,
		Value:                rawOrNil(a.Value),
		PreviousValue:        rawOrNil(a.PreviousValue),
		Version:              a.AssignmentVersion,
		UpdatedAt:            a.UpdatedAt,
	}
}

func toDomainEvent(e schema.UserEvent) (domain.UserEvent, error) {
	event := domain.UserEvent{
		Seq:         e.Seq,
		WorkspaceID: e.WorkspaceID,
		MessageID:   e.MessageID,
		UserID:      e.UserID,
		AnonymousID: e.AnonymousID,
		Type:        domain.EventType(e.EventType),
		Event:       e.Event,
		EventTime:   e.EventTime,
		ProcessedAt: e.ProcessedAt,
	}
	if len(e.Properties) > 0 {
		if err := json.Unmarshal(e.Properties, &event.Properties); err != nil {
			return domain.UserEvent{}, err
		}
	}
	if len(e.Traits) > 0 {
		if err := json.Unmarshal(e.Traits, &event.Traits); err != nil {
			return domain.UserEvent{}, err
		}
	}
	return event, nil
}

func toSchemaEvent(e domain.UserEvent) (schema.UserEvent, error) {
	row := schema.UserEvent{
		WorkspaceID: e.WorkspaceID,
		MessageID:   e.MessageID,
		UserID:      e.UserID,
		AnonymousID: e.AnonymousID,
		EventType:   string(e.Type),
		Event:       e.Event,
		EventTime:   e.EventTime,
		ProcessedAt: e.ProcessedAt,
	}
	if e.Properties != nil {
		raw, err := json.Marshal(e.Properties)
		if err != nil {
			return schema.UserEvent{}, err
		}
		row.Properties = datatypes.JSON(raw)
	}
	if e.Traits != nil {
		raw, err := json.Marshal(e.Traits)
		if err != nil {
			return schema.UserEvent{}, err
		}
		row.Traits = datatypes.JSON(raw)
	}
	return row, nil
}

func toDomainProcess(p schema.ComputeProcess) domain.ComputeProcess {
	return domain.ComputeProcess{
		WorkspaceID: p.WorkspaceID,
		Mode:        domain.ProcessMode(p.Mode),
		State:       domain.ProcessState(p.State),
		WorkflowID:  p.WorkflowID,
		StopReason:  domain.StopReason(p.StopReason),
		UpdatedAt:   p.UpdatedAt,
	}
}

func rawOrNil(j datatypes.JSON) json.RawMessage {
	if len(j) == 0 || string(j) == "null" {
		return nil
	}
	return json.RawMessage(j)
}

func jsonOrNil(raw json.RawMessage) datatypes.JSON {
	if len(raw) == 0 {
		return nil
	}
	return datatypes.JSON(raw)
}
