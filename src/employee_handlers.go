package main

import (
	"fmt"
	"log"
	"net/http"
	"path"
	"tms/src/common"
	"tms/src/db"
	"tms/src/models"
	"tms/src/models/scopes"
	"tms/src/types"
	"tms/src/utils"
	"tms/src/workflow"

	awslib "tms/src/lib/aws"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxRequestDocuments = 3

func employeeHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/employee/travel-requests", func(ctx *gin.Context) {
			var query types.ListRequestsQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			db := db.GetDb()
			var requests []models.TravelRequest
			q := db.
				Model(&models.TravelRequest{}).
				Scopes(scopes.ForRequester(userId), scopes.Newest).
				Preload("FlightDetails").
				Preload("Options").
				Preload("Booking")
			if statuses := workflow.TabStatuses(types.ROLE_EMPLOYEE, query.Tab); len(statuses) > 0 {
				q = q.Scopes(scopes.WithStatuses(statuses...))
			}
			if err := q.Find(&requests).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": requests, "count": len(requests)})
		}).
		POST("/employee/travel-request", func(ctx *gin.Context) {
			var body types.CreateTravelRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			companyId := ctx.GetUint("company")
			req, err := utils.NewTravelRequest(&body, companyId, userId)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			if err := db.Transaction(func(tx *gorm.DB) error {
				return tx.Create(req).Error
			}); err != nil {
				log.Printf("Error creating travel request: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var managerId uint
			var requester models.User
			if err := db.
				Model(&models.User{}).
				Where(&models.User{ID: userId}).
				First(&requester).
				Error; err == nil {
				req.Requester = &requester
				if requester.ManagerID != nil {
					managerId = *requester.ManagerID
				}
			}
			go utils.InvalidateRequestCaches(req, managerId)
			go common.NotifySubmitted(req)
			ctx.JSON(http.StatusCreated, gin.H{"data": req})
		}).
		GET("/employee/travel-requests/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			req, err := common.FindRequestInScope(params.ID, types.ROLE_EMPLOYEE, ctx.GetUint("id"), ctx.GetUint("company"))
			if err != nil {
				ctx.JSON(common.StatusForTransitionError(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": req})
		}).
		GET("/employee/travel-requests/:id/actions", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			req, err := common.FindRequestInScope(params.ID, types.ROLE_EMPLOYEE, ctx.GetUint("id"), ctx.GetUint("company"))
			if err != nil {
				ctx.JSON(common.StatusForTransitionError(err), gin.H{"error": err.Error()})
				return
			}
			actions := workflow.AllowedActions(types.ROLE_EMPLOYEE, req.Status)
			ctx.JSON(http.StatusOK, gin.H{"status": req.Status, "actions": actions})
		}).
		PATCH("/employee/travel-requests/:id/select-option", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.SelectOptionRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			req, err := common.TransitionTravelRequest(
				params.ID,
				types.ACTION_SELECT_OPTION,
				types.ROLE_EMPLOYEE,
				ctx.GetUint("id"),
				ctx.GetUint("company"),
				&workflow.TransitionInput{OptionID: body.SelectedOptionID},
			)
			if err != nil {
				ctx.JSON(common.StatusForTransitionError(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": req})
		}).
		POST("/employee/travel-requests/:id/upload-documents", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			req, err := common.FindRequestInScope(params.ID, types.ROLE_EMPLOYEE, ctx.GetUint("id"), ctx.GetUint("company"))
			if err != nil {
				ctx.JSON(common.StatusForTransitionError(err), gin.H{"error": err.Error()})
				return
			}
			form, err := ctx.MultipartForm()
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			files := form.File["documents"]
			if len(files) == 0 {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "no documents attached"})
				return
			}
			if len(req.Documents)+len(files) > maxRequestDocuments {
				err := fmt.Errorf("a travel request can carry at most %d documents", maxRequestDocuments)
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var docs []models.TravelDocument
			for _, fh := range files {
				key := fmt.Sprintf("requests/%d/%s%s", req.ID, uuid.NewString(), path.Ext(fh.Filename))
				url, err := awslib.S3UploadDocument(key, fh)
				if err != nil {
					log.Printf("Error uploading document [%s]: %s\n", fh.Filename, err.Error())
					ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
					return
				}
				docs = append(docs, models.TravelDocument{
					RequestID: req.ID,
					Name:      fh.Filename,
					ObjectKey: key,
					URL:       url,
				})
			}
			if err := db.Transaction(func(tx *gorm.DB) error {
				return tx.Create(&docs).Error
			}); err != nil {
				go func() {
					for _, doc := range docs {
						if err := awslib.S3DeleteDocument(doc.ObjectKey); err != nil {
							log.Printf("Error removing orphaned object [%s]: %s\n", doc.ObjectKey, err.Error())
						}
					}
				}()
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			go utils.InvalidateRequestCaches(req, 0)
			ctx.JSON(http.StatusOK, gin.H{"data": docs, "count": len(docs)})
		})
	return g
}
