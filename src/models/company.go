package models

import "tms/src/types"

type Company struct {
	ID           uint                `gorm:"primarykey;uniqueIndex:slugid" json:"id"`
	Name         string              `json:"name,omitempty"`
	ContactEmail string              `json:"email,omitempty"`
	Country      string              `json:"country,omitempty"`
	Status       types.CompanyStatus `gorm:"default:'active'" json:"status,omitempty"`
	Slug         string              `gorm:"uniqueIndex:slugid" json:"slug"`
	Metadata     *types.Metadata     `gorm:"type:jsonb" json:"metadata,omitempty"`

	Users          []User          `gorm:"foreignKey:company_id" json:"-"`
	TravelRequests []TravelRequest `gorm:"foreignKey:company_id" json:"-"`

	types.Timestamps
}
