package sector

import "time"

func NewCreatedEvent(result Sector, actor string) *CreatedEvent {
	return &CreatedEvent{Actor: actor, Result: result, Timestamp: time.Now()}
}

func NewUpdatedEvent(old, result Sector, actor string) *UpdatedEvent {
	return &UpdatedEvent{Actor: actor, Old: old, Result: result, Timestamp: time.Now()}
}

func NewDeletedEvent(result Sector, actor string) *DeletedEvent {
	return &DeletedEvent{Actor: actor, Result: result, Timestamp: time.Now()}
}

type CreatedEvent struct {
	Actor     string
	Result    Sector
	Timestamp time.Time
}

type UpdatedEvent struct {
	Actor     string
	Old       Sector
	Result    Sector
	Timestamp time.Time
}

type DeletedEvent struct {
	Actor     string
	Result    Sector
	Timestamp time.Time
}
