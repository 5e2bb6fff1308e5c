package workflow

import (
	"errors"
	"strings"
	"time"
	"tms/src/models"
	"tms/src/types"
)

var (
	ErrInvalidTransition = errors.New("request is not in a state that allows this action")
	ErrUnauthorized      = errors.New("role is not allowed to perform this action")
	ErrUnknownOption     = errors.New("selected option does not belong to this request")
	ErrMissingReason     = errors.New("a rejection reason is required")
)

// Transition is one edge of the lifecycle. The table below is the single
// source of truth: CanPerform, AllowedActions and Apply are all derived from
// it, so the client-visible gating and the server-side enforcement cannot
// drift apart.
type Transition struct {
	From types.RequestStatus
	To   types.RequestStatus
	Role types.Role
}

var transitions = map[types.RequestAction]Transition{
	types.ACTION_PROPOSE_OPTIONS: {
		From: types.REQUEST_SUBMITTED,
		To:   types.REQUEST_OPTIONS_SENT,
		Role: types.ROLE_ADMIN,
	},
	types.ACTION_SELECT_OPTION: {
		From: types.REQUEST_OPTIONS_SENT,
		To:   types.REQUEST_EMPLOYEE_CONFIRMED,
		Role: types.ROLE_EMPLOYEE,
	},
	types.ACTION_APPROVE: {
		From: types.REQUEST_EMPLOYEE_CONFIRMED,
		To:   types.REQUEST_MANAGER_APPROVED,
		Role: types.ROLE_MANAGER,
	},
	types.ACTION_REJECT: {
		From: types.REQUEST_EMPLOYEE_CONFIRMED,
		To:   types.REQUEST_MANAGER_REJECTED,
		Role: types.ROLE_MANAGER,
	},
	types.ACTION_BOOK: {
		From: types.REQUEST_MANAGER_APPROVED,
		To:   types.REQUEST_BOOKED,
		Role: types.ROLE_ADMIN,
	},
}

// TransitionInput carries the payload a transition requires. Only the fields
// the action consumes are read.
type TransitionInput struct {
	Options   []models.TravelOption
	OptionID  uint
	Reason    string
	PnrNumber string
	TicketURL string
	Remarks   string
}

// Apply validates and performs a lifecycle transition on req in memory.
// Persisting the mutation is the caller's concern; on any error req is left
// untouched. selectOption is additionally restricted to the requester.
func Apply(req *models.TravelRequest, action types.RequestAction, role types.Role, actorID uint, in *TransitionInput) error {
	tr, ok := transitions[action]
	if !ok {
		return ErrUnauthorized
	}
	if role != tr.Role {
		return ErrUnauthorized
	}
	if req.Status != tr.From {
		return ErrInvalidTransition
	}
	if in == nil {
		in = &TransitionInput{}
	}

	switch action {
	case types.ACTION_PROPOSE_OPTIONS:
		if len(in.Options) == 0 {
			return ErrInvalidTransition
		}
		options := make([]models.TravelOption, 0, len(in.Options))
		for i, opt := range in.Options {
			opt.RequestID = req.ID
			opt.Position = uint8(i + 1)
			opt.AddedBy = actorID
			options = append(options, opt)
		}
		req.Options = options
	case types.ACTION_SELECT_OPTION:
		if req.RequesterID != actorID {
			return ErrUnauthorized
		}
		var found bool
		for _, opt := range req.Options {
			if opt.ID == in.OptionID {
				found = true
				break
			}
		}
		if !found {
			return ErrUnknownOption
		}
		optionId := in.OptionID
		req.SelectedOptionID = &optionId
	case types.ACTION_APPROVE:
		// no payload
	case types.ACTION_REJECT:
		reason := strings.TrimSpace(in.Reason)
		if reason == "" {
			return ErrMissingReason
		}
		req.RejectionReason = &reason
	case types.ACTION_BOOK:
		req.Booking = &models.BookingRecord{
			RequestID:   req.ID,
			PnrNumber:   in.PnrNumber,
			TicketURL:   in.TicketURL,
			Remarks:     in.Remarks,
			BookedByID:  actorID,
			BookingDate: time.Now(),
		}
	}

	req.Status = tr.To
	return nil
}

// NextStatus reports the status an action moves a request into, when the
// action exists in the table.
func NextStatus(action types.RequestAction) (types.RequestStatus, bool) {
	tr, ok := transitions[action]
	if !ok {
		return "", false
	}
	return tr.To, true
}
