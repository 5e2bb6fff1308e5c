package models

import (
	"time"
	"tms/src/types"
)

type User struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	Name         string     `json:"name,omitempty"`
	Email        string     `gorm:"uniqueIndex" json:"email,omitempty"`
	PasswordHash string     `json:"-"`
	Role         types.Role `gorm:"default:'employee'" json:"role,omitempty"`
	CompanyID    *uint      `json:"companyId,omitempty"`
	ManagerID    *uint      `json:"managerId,omitempty"`
	EmployeeID   string     `json:"employeeId,omitempty"`
	LastActive   *time.Time `json:"last_active,omitempty"`

	Company        *Company        `gorm:"foreignKey:company_id" json:"company,omitempty"`
	Manager        *User           `gorm:"foreignKey:manager_id" json:"manager,omitempty"`
	TravelRequests []TravelRequest `gorm:"foreignKey:requester_id" json:"travel_requests,omitempty"`

	types.Timestamps
}
