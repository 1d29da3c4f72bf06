package connector

// State is the closed set of a connector's lifecycle states. Transitions
// are pure functions of (state, event); connectors model this explicitly
// rather than with ad-hoc flags.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateSubscriptionSent
	StateUpdating
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateSubscriptionSent:
		return "subscription_sent"
	case StateUpdating:
		return "updating"
	default:
		return "unknown"
	}
}

// event is the input side of a connector's transition function. Not every
// connector emits every event: Binance has no subscribe handshake and moves
// straight from connecting to updating on its first message.
type event int

const (
	eventDialed event = iota
	eventSubscribeSent
	eventSubscriptionAcked
	eventUpdateReceived
)

// next is the transition function session loops drive themselves through:
// a pure function of the current state and an incoming event, with no
// transition implicit in surrounding control flow.
func next(s State, e event) State {
	switch s {
	case StateDisconnected:
		if e == eventDialed {
			return StateConnecting
		}
	case StateConnecting:
		switch e {
		case eventSubscribeSent:
			return StateSubscriptionSent
		case eventUpdateReceived:
			return StateUpdating
		}
	case StateSubscriptionSent:
		if e == eventSubscriptionAcked {
			return StateUpdating
		}
	case StateUpdating:
		if e == eventUpdateReceived {
			return StateUpdating
		}
	}
	return s
}
