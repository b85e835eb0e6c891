package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		action  Action
		want    Status
		wantErr error
	}{
		{"WaitingApprove", StatusWaiting, ActionApprove, StatusApproved, nil},
		{"WaitingReject", StatusWaiting, ActionReject, StatusRejected, nil},
		{"ApprovedApprove", StatusApproved, ActionApprove, "", ErrAlreadyApproved},
		{"ApprovedReject", StatusApproved, ActionReject, StatusRejected, nil},
		{"RejectedReject", StatusRejected, ActionReject, StatusRejected, nil},
		{"RejectedApprove", StatusRejected, ActionApprove, StatusApproved, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Transition(tt.from, tt.action)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransitionUnknownStatus(t *testing.T) {
	_, err := Transition(Status("CANCELED"), ActionApprove)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CANCELED")
}

func TestActionFor(t *testing.T) {
	assert.Equal(t, ActionApprove, ActionFor(true))
	assert.Equal(t, ActionReject, ActionFor(false))
	assert.Equal(t, "approve", ActionApprove.String())
	assert.Equal(t, "reject", ActionReject.String())
}
