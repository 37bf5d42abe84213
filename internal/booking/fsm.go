package booking

// State is a position in the booking dialog.
type State string

const (
	StateClosed        State = "closed"
	StateSelectTrip    State = "select_trip"
	StatePassengerInfo State = "passenger_info"
	StateReview        State = "review"
	StateSubmitting    State = "submitting"
)

// Event is a user or system action on the dialog.
type Event string

const (
	EventOpen     Event = "open"
	EventContinue Event = "continue"
	EventBack     Event = "back"
	EventReview   Event = "review"
	EventConfirm  Event = "confirm"
	EventSucceed  Event = "succeed"
	EventFail     Event = "fail"
	EventDismiss  Event = "dismiss"
)

// transitions lists every allowed move. Guards on field completeness are
// checked by the Wizard before firing EventContinue and EventReview.
var transitions = map[State]map[Event]State{
	StateClosed: {
		EventOpen: StateSelectTrip,
	},
	StateSelectTrip: {
		EventOpen:     StateSelectTrip,
		EventContinue: StatePassengerInfo,
		EventDismiss:  StateClosed,
	},
	StatePassengerInfo: {
		EventOpen:    StateSelectTrip,
		EventBack:    StateSelectTrip,
		EventReview:  StateReview,
		EventDismiss: StateClosed,
	},
	StateReview: {
		EventOpen:    StateSelectTrip,
		EventBack:    StatePassengerInfo,
		EventConfirm: StateSubmitting,
		EventDismiss: StateClosed,
	},
	StateSubmitting: {
		EventSucceed: StateClosed,
		EventFail:    StateReview,
	},
}

// Next returns the state reached from `from` on ev.
func Next(from State, ev Event) (State, bool) {
	allowed, ok := transitions[from]
	if !ok {
		return from, false
	}
	to, ok := allowed[ev]
	if !ok {
		return from, false
	}
	return to, true
}

// CanTransition reports whether ev is accepted in state from.
func CanTransition(from State, ev Event) bool {
	_, ok := Next(from, ev)
	return ok
}

// Step is the 1-based dialog step shown for s. A closed dialog reopens on
// step 1, so closed reports 1 as well.
func (s State) Step() int {
	switch s {
	case StatePassengerInfo:
		return 2
	case StateReview, StateSubmitting:
		return 3
	default:
		return 1
	}
}

// Open reports whether the dialog is visible.
func (s State) Open() bool {
	return s != StateClosed
}

// Description is the dialog subtitle for s.
func (s State) Description() string {
	switch s.Step() {
	case 2:
		return "Enter passenger information"
	case 3:
		return "Confirm your booking"
	default:
		return "Select your travel details"
	}
}
