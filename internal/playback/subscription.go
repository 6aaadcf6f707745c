package playback

// subscriptionBuffer bounds each channel of a Subscription.
const subscriptionBuffer = 16

// Subscription delivers orchestrator events to a goroutine other than the
// loop. A slow reader loses the oldest state changes first, so the newest
// state always arrives. Error events beyond the buffer are dropped.
type Subscription struct {
	StateChanged <-chan StateChange
	Error        <-chan ErrorEvent
	// Done is closed when the orchestrator is closed.
	Done <-chan struct{}

	states chan StateChange
	errs   chan ErrorEvent
	done   chan struct{}
}

func newSubscription() *Subscription {
	states := make(chan StateChange, subscriptionBuffer)
	errs := make(chan ErrorEvent, subscriptionBuffer)
	done := make(chan struct{})
	return &Subscription{
		StateChanged: states,
		Error:        errs,
		Done:         done,
		states:       states,
		errs:         errs,
		done:         done,
	}
}

func (s *Subscription) close() {
	close(s.done)
}

// sendState never blocks. Only the loop sends, so after evicting one event
// the second send has room unless the reader raced it, in which case the
// event is dropped.
func (s *Subscription) sendState(e StateChange) {
	select {
	case s.states <- e:
		return
	default:
	}
	select {
	case <-s.states:
	default:
	}
	select {
	case s.states <- e:
	default:
	}
}

func (s *Subscription) sendError(e ErrorEvent) {
	select {
	case s.errs <- e:
	default:
	}
}
