package mapping

import "time"

func NewCreatedEvent(result Mapping, actor string) *CreatedEvent {
	return &CreatedEvent{Actor: actor, Result: result, Timestamp: time.Now()}
}

func NewUpdatedEvent(old, result Mapping, actor string) *UpdatedEvent {
	return &UpdatedEvent{Actor: actor, Old: old, Result: result, Timestamp: time.Now()}
}

func NewDeletedEvent(result Mapping, actor string) *DeletedEvent {
	return &DeletedEvent{Actor: actor, Result: result, Timestamp: time.Now()}
}

type CreatedEvent struct {
	Actor     string
	Result    Mapping
	Timestamp time.Time
}

type UpdatedEvent struct {
	Actor     string
	Old       Mapping
	Result    Mapping
	Timestamp time.Time
}

type DeletedEvent struct {
	Actor     string
	Result    Mapping
	Timestamp time.Time
}
