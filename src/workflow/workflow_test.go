package workflow

import (
	"testing"
	"tms/src/models"
	"tms/src/types"

	"github.com/stretchr/testify/assert"
)

func newRequest(status types.RequestStatus) *models.TravelRequest {
	return &models.TravelRequest{
		ID:          1,
		CompanyID:   1,
		RequesterID: 10,
		JourneyType: types.JOURNEY_ONEWAY,
		Status:      status,
	}
}

func TestFullLifecycleToBooked(t *testing.T) {
	req := newRequest(types.REQUEST_SUBMITTED)

	err := Apply(req, types.ACTION_PROPOSE_OPTIONS, types.ROLE_ADMIN, 20, &TransitionInput{
		Options: []models.TravelOption{
			{Type: "flight", Name: "AirlineOne 6E-123", Price: 420},
			{Type: "flight", Name: "AirlineTwo AI-456", Price: 515},
		},
	})
	assert.Nil(t, err)
	assert.Equal(t, types.REQUEST_OPTIONS_SENT, req.Status)
	assert.Len(t, req.Options, 2)
	assert.Equal(t, uint8(1), req.Options[0].Position)
	assert.Equal(t, uint(20), req.Options[0].AddedBy)

	req.Options[0].ID = 100
	req.Options[1].ID = 101

	err = Apply(req, types.ACTION_SELECT_OPTION, types.ROLE_EMPLOYEE, 10, &TransitionInput{OptionID: 101})
	assert.Nil(t, err)
	assert.Equal(t, types.REQUEST_EMPLOYEE_CONFIRMED, req.Status)
	assert.Equal(t, uint(101), *req.SelectedOptionID)

	err = Apply(req, types.ACTION_APPROVE, types.ROLE_MANAGER, 30, nil)
	assert.Nil(t, err)
	assert.Equal(t, types.REQUEST_MANAGER_APPROVED, req.Status)

	err = Apply(req, types.ACTION_BOOK, types.ROLE_ADMIN, 20, &TransitionInput{PnrNumber: "PNR123"})
	assert.Nil(t, err)
	assert.Equal(t, types.REQUEST_BOOKED, req.Status)
	assert.NotNil(t, req.Booking)
	assert.Equal(t, "PNR123", req.Booking.PnrNumber)
	assert.Equal(t, uint(20), req.Booking.BookedByID)
}

func TestRejectionRecordsReason(t *testing.T) {
	req := newRequest(types.REQUEST_EMPLOYEE_CONFIRMED)

	err := Apply(req, types.ACTION_REJECT, types.ROLE_MANAGER, 30, &TransitionInput{Reason: "Budget exceeded"})
	assert.Nil(t, err)
	assert.Equal(t, types.REQUEST_MANAGER_REJECTED, req.Status)
	assert.Equal(t, "Budget exceeded", *req.RejectionReason)
	assert.Nil(t, req.Booking)
}

func TestRejectWithoutReason(t *testing.T) {
	req := newRequest(types.REQUEST_EMPLOYEE_CONFIRMED)

	err := Apply(req, types.ACTION_REJECT, types.ROLE_MANAGER, 30, &TransitionInput{Reason: "   "})
	assert.ErrorIs(t, err, ErrMissingReason)
	assert.Equal(t, types.REQUEST_EMPLOYEE_CONFIRMED, req.Status)
	assert.Nil(t, req.RejectionReason)
}

func TestApproveFromWrongStatus(t *testing.T) {
	req := newRequest(types.REQUEST_SUBMITTED)

	err := Apply(req, types.ACTION_APPROVE, types.ROLE_MANAGER, 30, nil)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, types.REQUEST_SUBMITTED, req.Status)
}

func TestApproveByWrongRole(t *testing.T) {
	req := newRequest(types.REQUEST_EMPLOYEE_CONFIRMED)

	err := Apply(req, types.ACTION_APPROVE, types.ROLE_ADMIN, 20, nil)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, types.REQUEST_EMPLOYEE_CONFIRMED, req.Status)
}

func TestSelectUnknownOption(t *testing.T) {
	req := newRequest(types.REQUEST_OPTIONS_SENT)
	req.Options = []models.TravelOption{{ID: 100, RequestID: req.ID, Type: "flight"}}

	err := Apply(req, types.ACTION_SELECT_OPTION, types.ROLE_EMPLOYEE, 10, &TransitionInput{OptionID: 999})
	assert.ErrorIs(t, err, ErrUnknownOption)
	assert.Equal(t, types.REQUEST_OPTIONS_SENT, req.Status)
	assert.Nil(t, req.SelectedOptionID)
}

func TestSelectOptionByNonRequester(t *testing.T) {
	req := newRequest(types.REQUEST_OPTIONS_SENT)
	req.Options = []models.TravelOption{{ID: 100, RequestID: req.ID}}

	err := Apply(req, types.ACTION_SELECT_OPTION, types.ROLE_EMPLOYEE, 99, &TransitionInput{OptionID: 100})
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, types.REQUEST_OPTIONS_SENT, req.Status)
}

func TestProposeWithoutOptions(t *testing.T) {
	req := newRequest(types.REQUEST_SUBMITTED)

	err := Apply(req, types.ACTION_PROPOSE_OPTIONS, types.ROLE_ADMIN, 20, nil)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, types.REQUEST_SUBMITTED, req.Status)
}

func TestBookOnlyFromManagerApproved(t *testing.T) {
	for _, status := range []types.RequestStatus{
		types.REQUEST_SUBMITTED,
		types.REQUEST_OPTIONS_SENT,
		types.REQUEST_EMPLOYEE_CONFIRMED,
		types.REQUEST_MANAGER_REJECTED,
		types.REQUEST_BOOKED,
	} {
		req := newRequest(status)
		err := Apply(req, types.ACTION_BOOK, types.ROLE_ADMIN, 20, &TransitionInput{PnrNumber: "PNR123"})
		assert.ErrorIs(t, err, ErrInvalidTransition, "status %s should not be bookable", status)
		assert.Nil(t, req.Booking)
	}
}

func TestTerminalStatusesHaveNoTransitions(t *testing.T) {
	actions := []types.RequestAction{
		types.ACTION_PROPOSE_OPTIONS,
		types.ACTION_SELECT_OPTION,
		types.ACTION_APPROVE,
		types.ACTION_REJECT,
		types.ACTION_BOOK,
	}
	roles := []types.Role{types.ROLE_MASTER_ADMIN, types.ROLE_ADMIN, types.ROLE_MANAGER, types.ROLE_EMPLOYEE}
	for _, status := range []types.RequestStatus{types.REQUEST_BOOKED, types.REQUEST_MANAGER_REJECTED} {
		for _, action := range actions {
			for _, role := range roles {
				req := newRequest(status)
				err := Apply(req, action, role, 10, &TransitionInput{OptionID: 1, Reason: "x", PnrNumber: "x", Options: []models.TravelOption{{}}})
				assert.NotNil(t, err, "%s by %s on %s should fail", action, role, status)
				assert.Equal(t, status, req.Status)
			}
		}
	}
}

func TestNextStatus(t *testing.T) {
	next, ok := NextStatus(types.ACTION_APPROVE)
	assert.True(t, ok)
	assert.Equal(t, types.REQUEST_MANAGER_APPROVED, next)

	_, ok = NextStatus(types.ACTION_CREATE)
	assert.False(t, ok)
}
