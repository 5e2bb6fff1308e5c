package main

import (
	"context"
	"log"
	"net/http"
	"tms/src/common"
	"tms/src/db"
	"tms/src/lib"
	"tms/src/models"
	"tms/src/models/scopes"
	"tms/src/types"
	"tms/src/utils"
	"tms/src/workflow"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"
)

func managerHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/manager/dashboard", func(ctx *gin.Context) {
			managerId := ctx.GetUint("id")
			rd := lib.GetRedisClient()
			cacheKey := utils.ManagerDashboardKey(managerId)
			if rd != nil {
				val := rd.JSONGet(context.Background(), cacheKey).Val()
				if val != "" && gjson.Valid(val) && gjson.Get(val, "counts").Exists() {
					ctx.Data(http.StatusOK, "application/json; charset=utf-8", []byte(val))
					return
				}
			}
			db := db.GetDb()
			counts := map[types.RequestStatus]int64{}
			for _, status := range []types.RequestStatus{
				types.REQUEST_EMPLOYEE_CONFIRMED,
				types.REQUEST_MANAGER_APPROVED,
				types.REQUEST_MANAGER_REJECTED,
			} {
				var n int64
				if err := db.
					Model(&models.TravelRequest{}).
					Scopes(scopes.ForManagedBy(managerId), scopes.WithStatuses(status)).
					Count(&n).
					Error; err != nil {
					ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
					return
				}
				counts[status] = n
			}
			var teamSize int64
			if err := db.
				Model(&models.User{}).
				Where("manager_id = ?", managerId).
				Count(&teamSize).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			dashboard := gin.H{"counts": counts, "teamSize": teamSize}
			if rd != nil {
				go func() {
					if _, err := rd.JSONSet(context.Background(), cacheKey, "$", dashboard).Result(); err != nil {
						log.Printf("[redis] Error caching manager dashboard: %s\n", err.Error())
					}
				}()
			}
			ctx.JSON(http.StatusOK, dashboard)
		}).
		GET("/manager/team", func(ctx *gin.Context) {
			managerId := ctx.GetUint("id")
			db := db.GetDb()
			var team []models.User
			if err := db.
				Model(&models.User{}).
				Select("id", "name", "email", "role", "employee_id", "last_active").
				Where("manager_id = ?", managerId).
				Find(&team).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			members := make([]gin.H, 0, len(team))
			for _, member := range team {
				var requestCount int64
				if err := db.
					Model(&models.TravelRequest{}).
					Scopes(scopes.ForRequester(member.ID)).
					Count(&requestCount).
					Error; err != nil {
					ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
					return
				}
				members = append(members, gin.H{"user": member, "requestCount": requestCount})
			}
			ctx.JSON(http.StatusOK, gin.H{"data": members, "count": len(members)})
		}).
		GET("/manager/travel-requests", func(ctx *gin.Context) {
			var query types.ListRequestsQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			managerId := ctx.GetUint("id")
			db := db.GetDb()
			var requests []models.TravelRequest
			q := db.
				Model(&models.TravelRequest{}).
				Scopes(scopes.ForManagedBy(managerId), scopes.Newest).
				Preload("FlightDetails").
				Preload("Requester")
			if statuses := workflow.TabStatuses(types.ROLE_MANAGER, query.Tab); len(statuses) > 0 {
				q = q.Scopes(scopes.WithStatuses(statuses...))
			}
			if err := q.Find(&requests).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": requests, "count": len(requests)})
		}).
		GET("/manager/travel-requests/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			req, err := common.FindRequestInScope(params.ID, types.ROLE_MANAGER, ctx.GetUint("id"), ctx.GetUint("company"))
			if err != nil {
				ctx.JSON(common.StatusForTransitionError(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": req})
		}).
		PATCH("/manager/travel-requests/:id/approve", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			req, err := common.TransitionTravelRequest(
				params.ID,
				types.ACTION_APPROVE,
				types.ROLE_MANAGER,
				ctx.GetUint("id"),
				ctx.GetUint("company"),
				nil,
			)
			if err != nil {
				ctx.JSON(common.StatusForTransitionError(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": req})
		}).
		PATCH("/manager/travel-requests/:id/reject", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.RejectRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			req, err := common.TransitionTravelRequest(
				params.ID,
				types.ACTION_REJECT,
				types.ROLE_MANAGER,
				ctx.GetUint("id"),
				ctx.GetUint("company"),
				&workflow.TransitionInput{Reason: body.RejectionReason},
			)
			if err != nil {
				ctx.JSON(common.StatusForTransitionError(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": req})
		})
	return g
}
