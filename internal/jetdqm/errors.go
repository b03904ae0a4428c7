package jetdqm

import "errors"

var (
	// ErrUnknownAnalyzer is returned when a name does not resolve to a defined analyzer.
	ErrUnknownAnalyzer = errors.New("unknown analyzer")

	// ErrUnknownSequence is returned when a name does not resolve to a defined sequence.
	ErrUnknownSequence = errors.New("unknown sequence")

	// ErrDuplicateName is returned when a name is defined twice.
	ErrDuplicateName = errors.New("duplicate name")

	// ErrDuplicateMember is returned when a sequence lists an analyzer twice.
	ErrDuplicateMember = errors.New("duplicate sequence member")

	// ErrReplayMismatch is returned when replaying recorded overrides does not
	// reproduce the recorded configuration.
	ErrReplayMismatch = errors.New("replay mismatch")
)
