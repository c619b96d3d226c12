package event

// NoticeCode classifies a side-effect notice emitted by a transition.
type NoticeCode string

const (
	// NoticeUnknownEntity: the event references an entity that does not exist
	// and the event is not a creation event for it.
	NoticeUnknownEntity NoticeCode = "UNKNOWN_ENTITY"
	// NoticeConflict: the transition contradicts current entity state, e.g. a
	// second reservation against an occupied compartment.
	NoticeConflict NoticeCode = "CONFLICTING_TRANSITION"
)

// Notice records an anomalous transition. The event that produced it is still
// durably stored; the transition itself was a no-op.
type Notice struct {
	Code    NoticeCode
	Entity  string
	ID      string
	EventID string
	Reason  string
}

func UnknownEntity(entity, id, eventID, reason string) Notice {
	return Notice{Code: NoticeUnknownEntity, Entity: entity, ID: id, EventID: eventID, Reason: reason}
}

func Conflict(entity, id, eventID, reason string) Notice {
	return Notice{Code: NoticeConflict, Entity: entity, ID: id, EventID: eventID, Reason: reason}
}
