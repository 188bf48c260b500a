package border

import "errors"

var (
	// ErrBusy is returned when a pass is triggered while another is running.
	ErrBusy = errors.New("border: pass already in progress")

	// ErrContractViolation reports a broken internal invariant, e.g. a cell
	// classified as boundary without a contending pair.
	ErrContractViolation = errors.New("border: internal contract violation")

	// ErrInvalidOptions is returned for unusable engine options.
	ErrInvalidOptions = errors.New("border: invalid options")
)
