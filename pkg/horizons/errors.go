package horizons

import (
	"errors"
	"fmt"
)

// Stage identifies the pipeline stage an error originated from, so callers
// can tell a bad request apart from a network failure or a service-side
// data problem.
type Stage int

const (
	StageConfig Stage = iota
	StageTransport
	StageFrame
	StageDecode
)

func (s Stage) String() string {
	switch s {
	case StageConfig:
		return "config"
	case StageTransport:
		return "transport"
	case StageFrame:
		return "frame"
	case StageDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Sentinel errors wrapped by *Error.
var (
	// ErrEmptyCommand is returned when a request has no object identifier.
	ErrEmptyCommand = errors.New("object identifier is empty")

	// ErrNotApplicable is returned when a parameter is set on a request
	// whose ephemeris type does not support it.
	ErrNotApplicable = errors.New("parameter not applicable to ephemeris type")

	// ErrNoStartMarker is returned when a response contains no $$SOE line.
	// This usually means the service rejected the query and answered with
	// explanatory text instead of data.
	ErrNoStartMarker = errors.New("start-of-ephemeris marker not found")

	// ErrNoEndMarker is returned when a response contains $$SOE but no $$EOE.
	ErrNoEndMarker = errors.New("end-of-ephemeris marker not found")
)

// Error tags a failure with its originating stage. Context carries
// diagnostic text: the parameter key for config errors, the leading
// response text for framing errors, the offending line for decode errors.
type Error struct {
	Stage   Stage
	Context string
	Err     error
}

func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("horizons: %s: %v: %s", e.Stage, e.Err, e.Context)
	}
	return fmt.Sprintf("horizons: %s: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsStage reports whether err carries the given stage tag.
func IsStage(err error, stage Stage) bool {
	var he *Error
	return errors.As(err, &he) && he.Stage == stage
}

func stageErr(stage Stage, context string, err error) *Error {
	return &Error{Stage: stage, Context: context, Err: err}
}

func configErr(context string, err error) *Error {
	return stageErr(StageConfig, context, err)
}

func decodeErr(line string, err error) *Error {
	return stageErr(StageDecode, line, err)
}
