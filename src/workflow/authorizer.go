package workflow

import "tms/src/types"

// CanPerform reports whether a role may run an action against a request in
// the given status. Pure and total: unknown roles, statuses and actions all
// deny. create is the only action with no source status; it is an employee
// capability regardless of status.
func CanPerform(role types.Role, status types.RequestStatus, action types.RequestAction) bool {
	if action == types.ACTION_CREATE {
		return role == types.ROLE_EMPLOYEE
	}
	tr, ok := transitions[action]
	if !ok {
		return false
	}
	return role == tr.Role && status == tr.From
}

// AllowedActions lists the transitions a role can run against the given
// status, in table order. The Presentation Layer renders controls from this;
// the same table still re-validates on dispatch.
func AllowedActions(role types.Role, status types.RequestStatus) []types.RequestAction {
	ordered := []types.RequestAction{
		types.ACTION_PROPOSE_OPTIONS,
		types.ACTION_SELECT_OPTION,
		types.ACTION_APPROVE,
		types.ACTION_REJECT,
		types.ACTION_BOOK,
	}
	actions := []types.RequestAction{}
	for _, action := range ordered {
		if CanPerform(role, status, action) {
			actions = append(actions, action)
		}
	}
	return actions
}

// tabPartitions maps each role's dashboard tabs onto canonical statuses.
// These are the filter maps the original views apply; "all" is handled by the
// caller and omitted here.
var tabPartitions = map[types.Role]map[string][]types.RequestStatus{
	types.ROLE_EMPLOYEE: {
		"pending":   {types.REQUEST_SUBMITTED, types.REQUEST_EMPLOYEE_CONFIRMED, types.REQUEST_MANAGER_APPROVED},
		"action":    {types.REQUEST_OPTIONS_SENT},
		"completed": {types.REQUEST_BOOKED, types.REQUEST_MANAGER_REJECTED},
	},
	types.ROLE_MANAGER: {
		"pending":  {types.REQUEST_EMPLOYEE_CONFIRMED},
		"approved": {types.REQUEST_MANAGER_APPROVED},
		"rejected": {types.REQUEST_MANAGER_REJECTED},
	},
	types.ROLE_ADMIN: {
		"submitted": {types.REQUEST_SUBMITTED},
		"approved":  {types.REQUEST_MANAGER_APPROVED},
		"booked":    {types.REQUEST_BOOKED},
		"rejected":  {types.REQUEST_MANAGER_REJECTED},
	},
}

// TabStatuses resolves a role's tab label to the statuses it covers. An empty
// slice means no filter (the "all" tab, an unknown tab, or a role without
// tabbed views).
func TabStatuses(role types.Role, tab string) []types.RequestStatus {
	if tab == "" || tab == "all" {
		return nil
	}
	tabs, ok := tabPartitions[role]
	if !ok {
		return nil
	}
	return tabs[tab]
}
