package main

import (
	"context"
	"errors"
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
	"gorm.io/gorm"
)

func adminHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/admin/dashboard", func(ctx *gin.Context) {
			companyId := ctx.GetUint("company")
			rd := lib.GetRedisClient()
			cacheKey := utils.AdminDashboardKey(companyId)
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
				types.REQUEST_SUBMITTED,
				types.REQUEST_OPTIONS_SENT,
				types.REQUEST_EMPLOYEE_CONFIRMED,
				types.REQUEST_MANAGER_APPROVED,
				types.REQUEST_MANAGER_REJECTED,
				types.REQUEST_BOOKED,
			} {
				var n int64
				if err := db.
					Model(&models.TravelRequest{}).
					Scopes(scopes.ForCompany(companyId), scopes.WithStatuses(status)).
					Count(&n).
					Error; err != nil {
					ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
					return
				}
				counts[status] = n
			}
			var totalUsers int64
			if err := db.
				Model(&models.User{}).
				Where("company_id = ?", companyId).
				Count(&totalUsers).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			dashboard := gin.H{"counts": counts, "totalUsers": totalUsers}
			if rd != nil {
				go func() {
					if _, err := rd.JSONSet(context.Background(), cacheKey, "$", dashboard).Result(); err != nil {
						log.Printf("[redis] Error caching admin dashboard: %s\n", err.Error())
					}
				}()
			}
			ctx.JSON(http.StatusOK, dashboard)
		}).
		GET("/admin/users", func(ctx *gin.Context) {
			companyId := ctx.GetUint("company")
			db := db.GetDb()
			var users []models.User
			if err := db.
				Model(&models.User{}).
				Select("id", "name", "email", "role", "manager_id", "employee_id", "last_active").
				Scopes(scopes.ForCompany(companyId)).
				Find(&users).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": users, "count": len(users)})
		}).
		PATCH("/admin/users/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.UpdateUserRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			companyId := ctx.GetUint("company")
			db := db.GetDb()
			if err := db.Transaction(func(tx *gorm.DB) error {
				var user models.User
				if err := tx.
					Model(&models.User{}).
					Where("id = ? AND company_id = ?", params.ID, companyId).
					First(&user).
					Error; err != nil {
					return errors.New("user not found in this company")
				}
				updates := map[string]any{}
				if body.Name != nil {
					updates["name"] = *body.Name
				}
				if body.Role != nil {
					updates["role"] = types.Role(*body.Role)
				}
				if body.EmployeeID != nil {
					updates["employee_id"] = *body.EmployeeID
				}
				if body.ManagerID != nil {
					var managerCount int64
					if err := tx.
						Model(&models.User{}).
						Where("id = ? AND company_id = ? AND role = ?", *body.ManagerID, companyId, types.ROLE_MANAGER).
						Count(&managerCount).
						Error; err != nil {
						return err
					}
					if managerCount == 0 {
						return errors.New("manager not found in this company")
					}
					updates["manager_id"] = *body.ManagerID
				}
				if len(updates) == 0 {
					return nil
				}
				return tx.
					Model(&models.User{}).
					Where("id = ?", user.ID).
					Updates(updates).
					Error
			}); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.Status(http.StatusOK)
		}).
		GET("/admin/travel-requests", func(ctx *gin.Context) {
			var query types.ListRequestsQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			companyId := ctx.GetUint("company")
			db := db.GetDb()
			var requests []models.TravelRequest
			q := db.
				Model(&models.TravelRequest{}).
				Scopes(scopes.ForCompany(companyId), scopes.Newest).
				Preload("FlightDetails").
				Preload("Options").
				Preload("Booking").
				Preload("Booking.BookedBy").
				Preload("Requester")
			if statuses := workflow.TabStatuses(types.ROLE_ADMIN, query.Tab); len(statuses) > 0 {
				q = q.Scopes(scopes.WithStatuses(statuses...))
			}
			if err := q.Find(&requests).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": requests, "count": len(requests)})
		}).
		GET("/admin/travel-requests/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			req, err := common.FindRequestInScope(params.ID, types.ROLE_ADMIN, ctx.GetUint("id"), ctx.GetUint("company"))
			if err != nil {
				ctx.JSON(common.StatusForTransitionError(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": req})
		}).
		POST("/admin/travel-requests/:id/options", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.ProposeOptionsRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			options := make([]models.TravelOption, 0, len(body.Options))
			for _, opt := range body.Options {
				currency := opt.Currency
				if currency == "" {
					currency = "USD"
				}
				options = append(options, models.TravelOption{
					Type:     opt.Type,
					Name:     opt.Name,
					Details:  opt.Details,
					Price:    opt.Price,
					Currency: currency,
				})
			}
			req, err := common.TransitionTravelRequest(
				params.ID,
				types.ACTION_PROPOSE_OPTIONS,
				types.ROLE_ADMIN,
				ctx.GetUint("id"),
				ctx.GetUint("company"),
				&workflow.TransitionInput{Options: options},
			)
			if err != nil {
				ctx.JSON(common.StatusForTransitionError(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": req})
		}).
		POST("/admin/travel-requests/:id/book", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.BookRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			req, err := common.TransitionTravelRequest(
				params.ID,
				types.ACTION_BOOK,
				types.ROLE_ADMIN,
				ctx.GetUint("id"),
				ctx.GetUint("company"),
				&workflow.TransitionInput{
					PnrNumber: body.PnrNumber,
					TicketURL: body.TicketURL,
					Remarks:   body.Remarks,
				},
			)
			if err != nil {
				ctx.JSON(common.StatusForTransitionError(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": req})
		})
	return g
}
