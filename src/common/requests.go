package common

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"tms/src/db"
	"tms/src/lib"
	"tms/src/models"
	"tms/src/models/scopes"
	"tms/src/types"
	"tms/src/utils"
	"tms/src/workflow"

	"github.com/tidwall/gjson"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("travel request not found")
var ErrForbiddenScope = errors.New("request is outside the actor's scope")

// TransitionTravelRequest runs one lifecycle transition end to end: load the
// request, check the actor's scope, apply the transition, persist it in a
// single transaction, then invalidate dependent caches and send the
// notification for the new status. The returned entity is server truth;
// callers replace whatever they had with it.
func TransitionTravelRequest(requestId uint, action types.RequestAction, role types.Role, actorId uint, actorCompany uint, in *workflow.TransitionInput) (*models.TravelRequest, error) {
	var req models.TravelRequest
	gdb := db.GetDb()
	err := gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Model(&models.TravelRequest{}).
			Scopes(scopes.WithID(requestId)).
			Preload("Options").
			Preload("Booking").
			Preload("Requester").
			First(&req).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := checkScope(&req, role, actorId, actorCompany); err != nil {
			return err
		}
		prior := req.Status
		if err := workflow.Apply(&req, action, role, actorId, in); err != nil {
			return err
		}

		switch action {
		case types.ACTION_PROPOSE_OPTIONS:
			if err := tx.Create(&req.Options).Error; err != nil {
				return err
			}
		case types.ACTION_BOOK:
			if err := tx.Create(req.Booking).Error; err != nil {
				return err
			}
		}

		updates := map[string]any{"status": req.Status}
		if req.SelectedOptionID != nil {
			updates["selected_option_id"] = *req.SelectedOptionID
		}
		if req.RejectionReason != nil {
			updates["rejection_reason"] = *req.RejectionReason
		}
		// Guard against a competing transition that committed between our
		// read and this write: the update only lands if the row still holds
		// the status the transition started from. Zero rows means the state
		// moved under us and the caller must re-fetch.
		res := tx.
			Model(&models.TravelRequest{}).
			Where("id = ? AND status = ?", req.ID, prior).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return workflow.ErrInvalidTransition
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var managerId uint
	if req.Requester != nil && req.Requester.ManagerID != nil {
		managerId = *req.Requester.ManagerID
	}
	logTransition(&req, action)
	go utils.InvalidateRequestCaches(&req, managerId)
	go NotifyTransition(&req, action)

	return &req, nil
}

// checkScope keeps actors inside their read/write boundary before the role
// gate even runs: admins stay within their company, managers within their
// direct reports, employees within their own requests.
func checkScope(req *models.TravelRequest, role types.Role, actorId uint, actorCompany uint) error {
	switch role {
	case types.ROLE_ADMIN:
		if req.CompanyID != actorCompany {
			return ErrForbiddenScope
		}
	case types.ROLE_MANAGER:
		if req.Requester == nil || req.Requester.ManagerID == nil || *req.Requester.ManagerID != actorId {
			return ErrForbiddenScope
		}
	case types.ROLE_EMPLOYEE:
		if req.RequesterID != actorId {
			return ErrForbiddenScope
		}
	default:
		return workflow.ErrUnauthorized
	}
	return nil
}

// StatusForTransitionError maps the workflow taxonomy onto HTTP statuses.
// Messages themselves pass through verbatim.
func StatusForTransitionError(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, workflow.ErrUnauthorized), errors.Is(err, ErrForbiddenScope):
		return http.StatusForbidden
	case errors.Is(err, workflow.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, workflow.ErrUnknownOption), errors.Is(err, workflow.ErrMissingReason):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

// FindRequestInScope loads a request detail while enforcing the same read
// boundary the mutations use. Master admins read everything. Details are
// served from the cache when a mutation has not invalidated them; the scope
// check runs against the cached copy too.
func FindRequestInScope(requestId uint, role types.Role, actorId uint, actorCompany uint) (*models.TravelRequest, error) {
	rd := lib.GetRedisClient()
	cacheKey := utils.RequestDetailKey(requestId)
	if rd != nil {
		val := rd.JSONGet(context.Background(), cacheKey).Val()
		if val != "" && gjson.Valid(val) && gjson.Get(val, "id").Exists() {
			var cached models.TravelRequest
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				if role == types.ROLE_MASTER_ADMIN {
					return &cached, nil
				}
				if err := checkScope(&cached, role, actorId, actorCompany); err != nil {
					return nil, err
				}
				return &cached, nil
			}
		}
	}

	var req models.TravelRequest
	gdb := db.GetDb()
	if err := gdb.
		Model(&models.TravelRequest{}).
		Scopes(scopes.WithID(requestId)).
		Preload("FlightDetails").
		Preload("HotelDetails").
		Preload("CabDetails").
		Preload("Passengers").
		Preload("Options").
		Preload("Documents").
		Preload("Booking").
		Preload("Booking.BookedBy").
		Preload("Requester").
		First(&req).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if rd != nil {
		go func() {
			if _, err := rd.JSONSet(context.Background(), cacheKey, "$", &req).Result(); err != nil {
				log.Printf("[redis] Error caching request detail: %s\n", err.Error())
			}
		}()
	}
	if role == types.ROLE_MASTER_ADMIN {
		return &req, nil
	}
	if err := checkScope(&req, role, actorId, actorCompany); err != nil {
		return nil, err
	}
	return &req, nil
}

func fmtRoute(req *models.TravelRequest) string {
	if len(req.FlightDetails) == 0 {
		return string(req.JourneyType)
	}
	first := req.FlightDetails[0]
	return fmt.Sprintf("%s to %s", first.FromCity, first.ToCity)
}

func logTransition(req *models.TravelRequest, action types.RequestAction) {
	log.Printf("[workflow] request=%d action=%s status=%s", req.ID, action, req.Status)
}
