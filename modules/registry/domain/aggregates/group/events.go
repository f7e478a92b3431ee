package group

import "time"

func NewCreatedEvent(result Group, actor string) *CreatedEvent {
	return &CreatedEvent{Actor: actor, Result: result, Timestamp: time.Now()}
}

func NewUpdatedEvent(old, result Group, actor string) *UpdatedEvent {
	return &UpdatedEvent{Actor: actor, Old: old, Result: result, Timestamp: time.Now()}
}

func NewDeletedEvent(result Group, actor string) *DeletedEvent {
	return &DeletedEvent{Actor: actor, Result: result, Timestamp: time.Now()}
}

type CreatedEvent struct {
	Actor     string
	Result    Group
	Timestamp time.Time
}

type UpdatedEvent struct {
	Actor     string
	Old       Group
	Result    Group
	Timestamp time.Time
}

type DeletedEvent struct {
	Actor     string
	Result    Group
	Timestamp time.Time
}
