package scopes

import (
	"tms/src/types"

	"gorm.io/gorm"
)

func WithID(id uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ?", id)
	}
}

func ForCompany(companyId uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyId)
	}
}

func ForRequester(userId uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("requester_id = ?", userId)
	}
}

// ForManagedBy scopes travel requests to the direct reports of a manager.
func ForManagedBy(managerId uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		sub := db.Session(&gorm.Session{NewDB: true}).
			Table("users").
			Select("id").
			Where("manager_id = ?", managerId)
		return db.Where("requester_id IN (?)", sub)
	}
}

func WithStatuses(statuses ...types.RequestStatus) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if len(statuses) == 0 {
			return db
		}
		return db.Where("status IN (?)", statuses)
	}
}

func Newest(db *gorm.DB) *gorm.DB {
	return db.Order("created_at desc")
}
