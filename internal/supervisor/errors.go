package supervisor

import "errors"

// Sentinel errors forming the error taxonomy of the supervisor core.
// Callers should compare with errors.Is, never by string matching.
var (
	// ErrConfigurationInvalid is returned when a creation request lacks
	// required fields or carries invalid values.
	ErrConfigurationInvalid = errors.New("supervisor: configuration invalid")

	// ErrSpawnFailed is returned when the child process could not be
	// launched or its standard streams could not be captured.
	ErrSpawnFailed = errors.New("supervisor: spawn failed")

	// ErrNotRunning is returned by SubmitInput when the application is
	// not in the Running state.
	ErrNotRunning = errors.New("supervisor: application not running")

	// ErrInputChannelClosed is returned by SubmitInput when the input
	// channel has already been closed.
	ErrInputChannelClosed = errors.New("supervisor: input channel closed")

	// ErrChildTermination is wrapped into an End event's result when the
	// wait task could not retrieve the child's exit status.
	ErrChildTermination = errors.New("supervisor: child termination error")

	// ErrHandlerFailure marks an error returned by a handler. Handler
	// failures are logged, never propagated to the emitter.
	ErrHandlerFailure = errors.New("supervisor: handler failure")

	// ErrPersistenceFailure is returned when the insertion transaction
	// for a new application fails. The request is aborted before start.
	ErrPersistenceFailure = errors.New("supervisor: persistence failure")

	// ErrUnknownApplication names the case of an identifier that is not
	// present in the registry. Registry.Lookup and remove report that
	// case with a false result and do not return this error.
	ErrUnknownApplication = errors.New("supervisor: unknown application")
)

// ErrInputNotDeliverable wraps one of ErrNotRunning or
// ErrInputChannelClosed with the offending application identifier, per
// the InputNotDeliverable kind of the error taxonomy.
type ErrInputNotDeliverable struct {
	ID    ID
	Cause error
}

func (e *ErrInputNotDeliverable) Error() string {
	return "supervisor: input not deliverable for " + e.ID.String() + ": " + e.Cause.Error()
}

func (e *ErrInputNotDeliverable) Unwrap() error { return e.Cause }
