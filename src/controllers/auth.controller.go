package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"
	"tms/src/db"
	"tms/src/models"
	"tms/src/types"
	"tms/src/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var errBadCredentials = errors.New("invalid email or password")

// AuthSignin verifies the password and mints a session token. Master admins
// sign in through MasterSignin, not here.
func AuthSignin(ctx *gin.Context) (token *string, user *models.User, status int, err error) {
	var body types.SigninRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, nil, http.StatusBadRequest, err
	}
	gdb := db.GetDb()
	var muser models.User
	if err := gdb.
		Model(&models.User{}).
		Where(&models.User{Email: body.Email}).
		First(&muser).
		Error; err != nil {
		log.Printf("error retrieving user [%s]: %s\n", body.Email, err.Error())
		return nil, nil, http.StatusUnauthorized, errBadCredentials
	}
	if muser.Role == types.ROLE_MASTER_ADMIN {
		return nil, nil, http.StatusUnauthorized, errBadCredentials
	}
	if !utils.CheckPassword(muser.PasswordHash, body.Password) {
		return nil, nil, http.StatusUnauthorized, errBadCredentials
	}

	if err := gdb.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		return tx.
			Model(&models.User{}).
			Where("id = ?", muser.ID).
			Update("last_active", &now).
			Error
	}); err != nil {
		log.Printf("Error logging in user [%d]: %s\n", muser.ID, err.Error())
		return nil, nil, http.StatusBadRequest, err
	}

	t, err := utils.GenerateToken(&muser)
	if err != nil {
		log.Printf("Error signing token for user [%d]: %s\n", muser.ID, err.Error())
		return nil, nil, http.StatusInternalServerError, err
	}
	return &t, &muser, http.StatusOK, nil
}

// MasterSignin is the platform-operator entrance; it accepts only the
// masterAdmin role.
func MasterSignin(ctx *gin.Context) (token *string, user *models.User, status int, err error) {
	var body types.SigninRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, nil, http.StatusBadRequest, err
	}
	gdb := db.GetDb()
	var muser models.User
	if err := gdb.
		Model(&models.User{}).
		Where(&models.User{Email: body.Email, Role: types.ROLE_MASTER_ADMIN}).
		First(&muser).
		Error; err != nil {
		return nil, nil, http.StatusUnauthorized, errBadCredentials
	}
	if !utils.CheckPassword(muser.PasswordHash, body.Password) {
		return nil, nil, http.StatusUnauthorized, errBadCredentials
	}
	t, err := utils.GenerateToken(&muser)
	if err != nil {
		return nil, nil, http.StatusInternalServerError, err
	}
	return &t, &muser, http.StatusOK, nil
}

// AuthSignup registers an employee into an existing company. Admins and
// managers are provisioned by their company admin, companies by the master
// admin.
func AuthSignup(ctx *gin.Context) (user *models.User, status int, err error) {
	var body types.SignupRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}
	gdb := db.GetDb()
	var muser models.User
	if err := gdb.Transaction(func(tx *gorm.DB) error {
		var company models.Company
		if err := tx.
			Model(&models.Company{}).
			Where(&models.Company{ID: body.CompanyID, Status: types.COMPANY_ACTIVE}).
			First(&company).
			Error; err != nil {
			return errors.New("company not found")
		}
		var count int64
		if err := tx.
			Model(&models.User{}).
			Where("email = ?", body.Email).
			Count(&count).
			Error; err != nil {
			return err
		}
		if count > 0 {
			return errors.New("an account with this email already exists")
		}
		hash, err := utils.HashPassword(body.Password)
		if err != nil {
			return err
		}
		muser = models.User{
			Name:         body.Name,
			Email:        body.Email,
			PasswordHash: hash,
			Role:         types.ROLE_EMPLOYEE,
			CompanyID:    &company.ID,
			EmployeeID:   body.EmployeeID,
		}
		return tx.Create(&muser).Error
	}); err != nil {
		return nil, http.StatusBadRequest, err
	}
	return &muser, http.StatusOK, nil
}

func AuthProfile(ctx *gin.Context) (user *models.User, status int, err error) {
	userId := ctx.GetUint("id")
	gdb := db.GetDb()
	var muser models.User
	if err := gdb.
		Model(&models.User{}).
		Select("id", "name", "email", "role", "company_id", "manager_id", "employee_id", "last_active").
		Where(&models.User{ID: userId}).
		Preload("Company").
		First(&muser).
		Error; err != nil {
		return nil, http.StatusNotFound, err
	}
	return &muser, http.StatusOK, nil
}

func AuthUpdateProfile(ctx *gin.Context) (status int, err error) {
	var body types.UpdateProfileRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return http.StatusBadRequest, err
	}
	userId := ctx.GetUint("id")
	gdb := db.GetDb()
	if err := gdb.Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{}
		if body.Name != nil {
			updates["name"] = *body.Name
		}
		if body.Password != nil {
			hash, err := utils.HashPassword(*body.Password)
			if err != nil {
				return err
			}
			updates["password_hash"] = hash
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.
			Model(&models.User{}).
			Where("id = ?", userId).
			Updates(updates).
			Error
	}); err != nil {
		return http.StatusBadRequest, err
	}
	return http.StatusOK, nil
}
