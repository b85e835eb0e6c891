package booking

import "fmt"

// Action is an owner's decision on a booking.
type Action int

const (
	ActionApprove Action = iota
	ActionReject
)

func (a Action) String() string {
	if a == ActionApprove {
		return "approve"
	}
	return "reject"
}

// ActionFor maps the approved query flag to an Action.
func ActionFor(approved bool) Action {
	if approved {
		return ActionApprove
	}
	return ActionReject
}

type transitionKey struct {
	from   Status
	action Action
}

type transitionResult struct {
	to  Status
	err error
}

// transitions lists every allowed (status, action) pair. Re-approving is
// refused while rejecting is accepted from any status, including
// REJECTED, and a rejected booking may still be approved later.
var transitions = map[transitionKey]transitionResult{
	{StatusWaiting, ActionApprove}:  {to: StatusApproved},
	{StatusRejected, ActionApprove}: {to: StatusApproved},
	{StatusApproved, ActionApprove}: {err: ErrAlreadyApproved},

	{StatusWaiting, ActionReject}:  {to: StatusRejected},
	{StatusApproved, ActionReject}: {to: StatusRejected},
	{StatusRejected, ActionReject}: {to: StatusRejected},
}

// Transition returns the status a booking moves to when action is applied.
func Transition(from Status, action Action) (Status, error) {
	res, ok := transitions[transitionKey{from, action}]
	if !ok {
		return "", fmt.Errorf("booking has unknown status %q", from)
	}
	if res.err != nil {
		return "", res.err
	}
	return res.to, nil
}
