package driver

import "time"

// Stage names a pipeline phase.
type Stage string

const (
	// StageLoad reads the file from disk.
	StageLoad Stage = "load"
	// StageLex runs the lexer alone (tokenize).
	StageLex Stage = "lex"
	// StageParse lexes and parses.
	StageParse Stage = "parse"
	// StageResolve builds scopes and binds names.
	StageResolve Stage = "resolve"
	// StageCheck runs the type checker.
	StageCheck Stage = "check"
)

// Status describes where a file is in the pipeline.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusCached  Status = "cached"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress for a file (or for the whole run when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use: AnalyzeFiles reports from several goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emit(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}
