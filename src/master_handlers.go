package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sort"
	"time"
	"tms/src/db"
	"tms/src/lib"
	"tms/src/models"
	"tms/src/models/scopes"
	"tms/src/types"
	"tms/src/utils"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"github.com/tidwall/gjson"
	"gorm.io/gorm"
)

type companyActivity struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	CurrentMonth  int64  `json:"currentMonth"`
	LastMonth     int64  `json:"lastMonth"`
	TotalRequests int64  `json:"totalRequests"`
}

func masterHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/master/dashboard", func(ctx *gin.Context) {
			rd := lib.GetRedisClient()
			if rd != nil {
				val := rd.JSONGet(context.Background(), utils.MasterDashboardKey).Val()
				if val != "" && gjson.Valid(val) && gjson.Get(val, "totalCompanies").Exists() {
					ctx.Data(http.StatusOK, "application/json; charset=utf-8", []byte(val))
					return
				}
			}
			db := db.GetDb()
			var totalCompanies, totalUsers, totalRequests int64
			if err := db.Model(&models.Company{}).Count(&totalCompanies).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			if err := db.Model(&models.User{}).Where("role <> ?", types.ROLE_MASTER_ADMIN).Count(&totalUsers).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			if err := db.Model(&models.TravelRequest{}).Count(&totalRequests).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}

			now := time.Now()
			monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
			lastMonthStart := monthStart.AddDate(0, -1, 0)

			var companies []models.Company
			if err := db.Model(&models.Company{}).Find(&companies).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			topCompanies := make([]companyActivity, 0, len(companies))
			for _, company := range companies {
				activity := companyActivity{ID: company.ID, Name: company.Name}
				if err := db.
					Model(&models.TravelRequest{}).
					Scopes(scopes.ForCompany(company.ID)).
					Count(&activity.TotalRequests).
					Error; err != nil {
					ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
					return
				}
				if err := db.
					Model(&models.TravelRequest{}).
					Scopes(scopes.ForCompany(company.ID)).
					Where("created_at >= ?", monthStart).
					Count(&activity.CurrentMonth).
					Error; err != nil {
					ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
					return
				}
				if err := db.
					Model(&models.TravelRequest{}).
					Scopes(scopes.ForCompany(company.ID)).
					Where("created_at >= ? AND created_at < ?", lastMonthStart, monthStart).
					Count(&activity.LastMonth).
					Error; err != nil {
					ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
					return
				}
				topCompanies = append(topCompanies, activity)
			}
			sort.Slice(topCompanies, func(i, j int) bool {
				return topCompanies[i].TotalRequests > topCompanies[j].TotalRequests
			})
			if len(topCompanies) > 5 {
				topCompanies = topCompanies[:5]
			}

			var recent []models.TravelRequest
			if err := db.
				Model(&models.TravelRequest{}).
				Scopes(scopes.Newest).
				Preload("FlightDetails").
				Preload("Requester").
				Preload("Company").
				Limit(10).
				Find(&recent).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}

			dashboard := gin.H{
				"totalCompanies":       totalCompanies,
				"totalUsers":           totalUsers,
				"totalRequests":        totalRequests,
				"topCompanies":         topCompanies,
				"recentTravelRequests": recent,
			}
			if rd != nil {
				go func() {
					if _, err := rd.JSONSet(context.Background(), utils.MasterDashboardKey, "$", dashboard).Result(); err != nil {
						log.Printf("[redis] Error caching master dashboard: %s\n", err.Error())
					}
				}()
			}
			ctx.JSON(http.StatusOK, dashboard)
		}).
		GET("/master/companies", func(ctx *gin.Context) {
			db := db.GetDb()
			var companies []models.Company
			if err := db.
				Model(&models.Company{}).
				Preload("Users", "role = ?", types.ROLE_ADMIN).
				Find(&companies).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": companies, "count": len(companies)})
		}).
		POST("/master/create-company", func(ctx *gin.Context) {
			var body types.CreateCompanyRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var company models.Company
			if err := db.Transaction(func(tx *gorm.DB) error {
				var count int64
				if err := tx.
					Model(&models.User{}).
					Where("email = ?", body.AdminEmail).
					Count(&count).
					Error; err != nil {
					return err
				}
				if count > 0 {
					return errors.New("an account with the admin email already exists")
				}
				company = models.Company{
					Name:         body.Name,
					ContactEmail: body.ContactEmail,
					Country:      body.Country,
					Status:       types.COMPANY_ACTIVE,
					Slug:         slug.Make(body.Name),
				}
				if err := tx.Create(&company).Error; err != nil {
					return err
				}
				hash, err := utils.HashPassword(body.AdminPass)
				if err != nil {
					return err
				}
				admin := models.User{
					Name:         body.AdminName,
					Email:        body.AdminEmail,
					PasswordHash: hash,
					Role:         types.ROLE_ADMIN,
					CompanyID:    &company.ID,
				}
				return tx.Create(&admin).Error
			}); err != nil {
				log.Printf("Error creating company [%s]: %s\n", body.Name, err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if rd := lib.GetRedisClient(); rd != nil {
				go func() {
					if err := rd.Del(context.Background(), utils.MasterDashboardKey).Err(); err != nil {
						log.Printf("[redis] Error invalidating master dashboard: %s\n", err.Error())
					}
				}()
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": company})
		}).
		GET("/master/companies/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			var company models.Company
			if err := db.
				Model(&models.Company{}).
				Where(&models.Company{ID: params.ID}).
				Preload("Users").
				First(&company).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "company not found"})
				return
			}
			var requestCount int64
			if err := db.
				Model(&models.TravelRequest{}).
				Scopes(scopes.ForCompany(company.ID)).
				Count(&requestCount).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": company, "requestCount": requestCount})
		}).
		PATCH("/master/companies/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.UpdateCompanyRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			if err := db.Transaction(func(tx *gorm.DB) error {
				var company models.Company
				if err := tx.
					Model(&models.Company{}).
					Where(&models.Company{ID: params.ID}).
					First(&company).
					Error; err != nil {
					return errors.New("company not found")
				}
				updates := map[string]any{}
				if body.Name != nil {
					updates["name"] = *body.Name
					updates["slug"] = slug.Make(*body.Name)
				}
				if body.ContactEmail != nil {
					updates["contact_email"] = *body.ContactEmail
				}
				if body.Country != nil {
					updates["country"] = *body.Country
				}
				if body.Status != nil {
					updates["status"] = types.CompanyStatus(*body.Status)
				}
				if len(updates) == 0 {
					return nil
				}
				return tx.
					Model(&models.Company{}).
					Where("id = ?", company.ID).
					Updates(updates).
					Error
			}); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.Status(http.StatusOK)
		})
	return g
}
