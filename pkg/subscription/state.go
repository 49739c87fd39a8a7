package subscription

// State is the session lifecycle state.
type State uint8

const (
	// StateDisconnected is the initial state, before Open.
	StateDisconnected State = iota

	// StateConnecting indicates connection establishment in progress.
	StateConnecting

	// StateSubscribing indicates the subscribe frame has been sent and
	// no inbound frame has arrived yet.
	StateSubscribing

	// StateStreaming is the steady state, entered on the first inbound
	// frame.
	StateStreaming

	// StateClosing indicates a caller-initiated close in progress.
	StateClosing

	// StateClosed is the terminal state after a clean close.
	StateClosed

	// StateFailed is the terminal state after a transport failure.
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "DISCONNECTED"
	case StateConnecting:
		return "CONNECTING"
	case StateSubscribing:
		return "SUBSCRIBING"
	case StateStreaming:
		return "STREAMING"
	case StateClosing:
		return "CLOSING"
	case StateClosed:
		return "CLOSED"
	case StateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// terminal reports whether no further transitions are possible.
func (s State) terminal() bool {
	return s == StateClosed || s == StateFailed
}
