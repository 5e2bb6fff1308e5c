package workflow

import (
	"testing"
	"tms/src/types"

	"github.com/stretchr/testify/assert"
)

var allStatuses = []types.RequestStatus{
	types.REQUEST_SUBMITTED,
	types.REQUEST_OPTIONS_SENT,
	types.REQUEST_EMPLOYEE_CONFIRMED,
	types.REQUEST_MANAGER_APPROVED,
	types.REQUEST_MANAGER_REJECTED,
	types.REQUEST_BOOKED,
}

var allActions = []types.RequestAction{
	types.ACTION_CREATE,
	types.ACTION_PROPOSE_OPTIONS,
	types.ACTION_SELECT_OPTION,
	types.ACTION_APPROVE,
	types.ACTION_REJECT,
	types.ACTION_BOOK,
}

var allRoles = []types.Role{
	types.ROLE_MASTER_ADMIN,
	types.ROLE_ADMIN,
	types.ROLE_MANAGER,
	types.ROLE_EMPLOYEE,
}

func TestCanPerformGating(t *testing.T) {
	assert.True(t, CanPerform(types.ROLE_ADMIN, types.REQUEST_SUBMITTED, types.ACTION_PROPOSE_OPTIONS))
	assert.True(t, CanPerform(types.ROLE_EMPLOYEE, types.REQUEST_OPTIONS_SENT, types.ACTION_SELECT_OPTION))
	assert.True(t, CanPerform(types.ROLE_MANAGER, types.REQUEST_EMPLOYEE_CONFIRMED, types.ACTION_APPROVE))
	assert.True(t, CanPerform(types.ROLE_MANAGER, types.REQUEST_EMPLOYEE_CONFIRMED, types.ACTION_REJECT))
	assert.True(t, CanPerform(types.ROLE_ADMIN, types.REQUEST_MANAGER_APPROVED, types.ACTION_BOOK))

	assert.False(t, CanPerform(types.ROLE_MANAGER, types.REQUEST_SUBMITTED, types.ACTION_APPROVE))
	assert.False(t, CanPerform(types.ROLE_ADMIN, types.REQUEST_EMPLOYEE_CONFIRMED, types.ACTION_APPROVE))
	assert.False(t, CanPerform(types.ROLE_EMPLOYEE, types.REQUEST_SUBMITTED, types.ACTION_PROPOSE_OPTIONS))
}

func TestCanPerformCreate(t *testing.T) {
	for _, status := range allStatuses {
		assert.True(t, CanPerform(types.ROLE_EMPLOYEE, status, types.ACTION_CREATE))
		assert.False(t, CanPerform(types.ROLE_ADMIN, status, types.ACTION_CREATE))
		assert.False(t, CanPerform(types.ROLE_MANAGER, status, types.ACTION_CREATE))
		assert.False(t, CanPerform(types.ROLE_MASTER_ADMIN, status, types.ACTION_CREATE))
	}
}

func TestCanPerformDeniesUnknownInputs(t *testing.T) {
	assert.False(t, CanPerform("auditor", types.REQUEST_SUBMITTED, types.ACTION_PROPOSE_OPTIONS))
	assert.False(t, CanPerform(types.ROLE_ADMIN, "draft", types.ACTION_PROPOSE_OPTIONS))
	assert.False(t, CanPerform(types.ROLE_ADMIN, types.REQUEST_SUBMITTED, "cancel"))
}

func TestCanPerformIsDeterministic(t *testing.T) {
	for _, role := range allRoles {
		for _, status := range allStatuses {
			for _, action := range allActions {
				first := CanPerform(role, status, action)
				for range 3 {
					assert.Equal(t, first, CanPerform(role, status, action))
				}
			}
		}
	}
}

// Every status has at most two outgoing edges, and only employeeConfirmed has
// two. booked and managerRejected have none.
func TestTransitionTableShape(t *testing.T) {
	outgoing := map[types.RequestStatus]int{}
	for _, action := range allActions {
		if action == types.ACTION_CREATE {
			continue
		}
		next, ok := NextStatus(action)
		assert.True(t, ok)
		assert.Contains(t, allStatuses, next)
		for _, role := range allRoles {
			for _, status := range allStatuses {
				if CanPerform(role, status, action) {
					outgoing[status]++
				}
			}
		}
	}
	assert.Equal(t, 1, outgoing[types.REQUEST_SUBMITTED])
	assert.Equal(t, 1, outgoing[types.REQUEST_OPTIONS_SENT])
	assert.Equal(t, 2, outgoing[types.REQUEST_EMPLOYEE_CONFIRMED])
	assert.Equal(t, 1, outgoing[types.REQUEST_MANAGER_APPROVED])
	assert.Equal(t, 0, outgoing[types.REQUEST_MANAGER_REJECTED])
	assert.Equal(t, 0, outgoing[types.REQUEST_BOOKED])
}

func TestAllowedActions(t *testing.T) {
	assert.Equal(t,
		[]types.RequestAction{types.ACTION_PROPOSE_OPTIONS},
		AllowedActions(types.ROLE_ADMIN, types.REQUEST_SUBMITTED))
	assert.Equal(t,
		[]types.RequestAction{types.ACTION_SELECT_OPTION},
		AllowedActions(types.ROLE_EMPLOYEE, types.REQUEST_OPTIONS_SENT))
	assert.Equal(t,
		[]types.RequestAction{types.ACTION_APPROVE, types.ACTION_REJECT},
		AllowedActions(types.ROLE_MANAGER, types.REQUEST_EMPLOYEE_CONFIRMED))
	assert.Empty(t, AllowedActions(types.ROLE_MANAGER, types.REQUEST_BOOKED))
	assert.Empty(t, AllowedActions(types.ROLE_MASTER_ADMIN, types.REQUEST_SUBMITTED))
}

func TestTabStatuses(t *testing.T) {
	assert.ElementsMatch(t,
		[]types.RequestStatus{types.REQUEST_SUBMITTED, types.REQUEST_EMPLOYEE_CONFIRMED, types.REQUEST_MANAGER_APPROVED},
		TabStatuses(types.ROLE_EMPLOYEE, "pending"))
	assert.Equal(t,
		[]types.RequestStatus{types.REQUEST_OPTIONS_SENT},
		TabStatuses(types.ROLE_EMPLOYEE, "action"))
	assert.Equal(t,
		[]types.RequestStatus{types.REQUEST_EMPLOYEE_CONFIRMED},
		TabStatuses(types.ROLE_MANAGER, "pending"))
	assert.Equal(t,
		[]types.RequestStatus{types.REQUEST_MANAGER_REJECTED},
		TabStatuses(types.ROLE_ADMIN, "rejected"))

	assert.Nil(t, TabStatuses(types.ROLE_EMPLOYEE, ""))
	assert.Nil(t, TabStatuses(types.ROLE_EMPLOYEE, "all"))
	assert.Nil(t, TabStatuses(types.ROLE_MASTER_ADMIN, "pending"))
	assert.Empty(t, TabStatuses(types.ROLE_MANAGER, "bogus"))
}
