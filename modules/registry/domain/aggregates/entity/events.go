package entity

import "time"

func NewCreatedEvent(result Entity, actor string) *CreatedEvent {
	return &CreatedEvent{Actor: actor, Result: result, Timestamp: time.Now()}
}

func NewUpdatedEvent(old, result Entity, actor string) *UpdatedEvent {
	return &UpdatedEvent{Actor: actor, Old: old, Result: result, Timestamp: time.Now()}
}

func NewDeletedEvent(result Entity, actor string) *DeletedEvent {
	return &DeletedEvent{Actor: actor, Result: result, Timestamp: time.Now()}
}

type CreatedEvent struct {
	Actor     string
	Result    Entity
	Timestamp time.Time
}

type UpdatedEvent struct {
	Actor     string
	Old       Entity
	Result    Entity
	Timestamp time.Time
}

type DeletedEvent struct {
	Actor     string
	Result    Entity
	Timestamp time.Time
}
