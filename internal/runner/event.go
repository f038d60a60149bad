package runner

// Status describes where a file is in the run.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	// StatusInvalid marks a file with at least one invalid diagram.
	StatusInvalid
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusQueued:
		return "queued"
	case StatusWorking:
		return "checking"
	case StatusDone:
		return "done"
	case StatusInvalid:
		return "invalid"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Event reports progress of one file.
type Event struct {
	File   string
	Status Status
	// Valid and Invalid count diagrams of File once it is finished.
	Valid   int
	Invalid int
}

// ProgressSink receives progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

// OnEvent implements ProgressSink.
func (s ChannelSink) OnEvent(ev Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- ev
}

func emit(sink ProgressSink, ev Event) {
	if sink != nil {
		sink.OnEvent(ev)
	}
}
