package domain

type RoomEvent string

const (
	EventBook                RoomEvent = "book"
	EventCheckOut            RoomEvent = "checkOut"
	EventMarkMaintenance     RoomEvent = "markUnderMaintenance"
	EventCompleteMaintenance RoomEvent = "completeMaintenance"
)

// NextRoomState is the room state machine. Every rejected transition is a
// state conflict.
func NextRoomState(current RoomStatus, ev RoomEvent) (RoomStatus, error) {
	if current == "" {
		current = RoomAvailable
	}

	switch current {
	case RoomAvailable:
		switch ev {
		case EventBook:
			return RoomBooked, nil
		case EventCheckOut:
			return current, Conflictf("room is already available")
		case EventMarkMaintenance:
			return RoomUnderMaintenance, nil
		case EventCompleteMaintenance:
			return current, Conflictf("room is not under maintenance")
		}
	case RoomBooked:
		switch ev {
		case EventBook:
			return current, Conflictf("room is already booked")
		case EventCheckOut:
			return RoomAvailable, nil
		case EventMarkMaintenance:
			return current, Conflictf("cannot put a booked room under maintenance")
		case EventCompleteMaintenance:
			return current, Conflictf("room is not under maintenance")
		}
	case RoomUnderMaintenance:
		switch ev {
		case EventBook:
			return current, Conflictf("room is under maintenance and cannot be booked")
		case EventCheckOut:
			return current, Conflictf("room is not occupied")
		case EventMarkMaintenance:
			return current, Conflictf("room is already under maintenance")
		case EventCompleteMaintenance:
			return RoomAvailable, nil
		}
	default:
		return current, Validationf("unknown room status %q", current)
	}

	return current, Validationf("unknown room event %q", ev)
}

// EventFor picks the event that moves a room from current to target. Asking
// for the state a room is already in yields the event that rejects it, so the
// caller still gets the matching conflict.
func EventFor(current, target RoomStatus) (RoomEvent, error) {
	switch target {
	case RoomBooked:
		return EventBook, nil
	case RoomUnderMaintenance:
		return EventMarkMaintenance, nil
	case RoomAvailable:
		if current == RoomUnderMaintenance {
			return EventCompleteMaintenance, nil
		}
		return EventCheckOut, nil
	}
	return "", Validationf("unknown room status %q", target)
}
