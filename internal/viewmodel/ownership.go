package viewmodel

import "fitcheck/internal/model"

// OwnershipState tracks the async determination of "does the viewer own
// this resource". It only gates UI affordances; the server still authorizes
// every mutation.
type OwnershipState int

const (
	OwnershipUnknown OwnershipState = iota
	OwnershipChecking
	OwnershipOwner
	OwnershipNotOwner
)

// OwnershipCheck is the small state machine behind delete/edit buttons.
// Unknown and Checking render the same as NotOwner.
type OwnershipCheck struct {
	state OwnershipState
}

// Begin marks the check in flight.
func (c *OwnershipCheck) Begin() {
	c.state = OwnershipChecking
}

// Resolve settles the check from the loaded identities.
func (c *OwnershipCheck) Resolve(current *model.UserData, owner Owner) {
	if IsOwner(current, owner) {
		c.state = OwnershipOwner
		return
	}
	c.state = OwnershipNotOwner
}

// Fail records that either load did not complete. The state stays Unknown,
// which renders as not-owner.
func (c *OwnershipCheck) Fail() {
	c.state = OwnershipUnknown
}

// State returns the current state.
func (c *OwnershipCheck) State() OwnershipState {
	return c.state
}

// ShowOwnerControls reports whether owner-only affordances may render.
// Only a settled Owner state qualifies.
func (c *OwnershipCheck) ShowOwnerControls() bool {
	return c.state == OwnershipOwner
}
