package services

import "errors"

// Error kinds returned by the points and gated-action workflows. They are
// deterministic outcomes of current state; retrying without changing the
// request is pointless. Any other error coming out of a workflow is a
// persistence failure: the transaction rolled back, nothing happened, and the
// whole action is safe to retry.
var (
	ErrNotFound            = errors.New("record not found")
	ErrAlreadyPerformed    = errors.New("action already performed")
	ErrAlreadyOwned        = errors.New("item already owned")
	ErrPreconditionNotMet  = errors.New("precondition not met")
	ErrInsufficientBalance = errors.New("insufficient points balance")
)
