package search

// Status is the lifecycle state of a Context: Ready -> InProgress ->
// {Success, Failure}.
type Status uint8

const (
	// Ready means the Context has not yet been executed (or has been Reset).
	Ready Status = iota
	// InProgress means a planner is currently running against the Context.
	InProgress
	// Success means the last Execute call completed and produced a Solution.
	Success
	// Failure means the last Execute call aborted: an impossible expansion,
	// a playout failure, or a final-selection error. An invalid
	// configuration is rejected by Execute with the status left at Ready.
	Failure
)
