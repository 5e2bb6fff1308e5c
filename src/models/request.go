package models

import (
	"time"
	"tms/src/types"
)

// TravelRequest is the canonical lifecycle entity. Status moves only through
// workflow.Apply; the nullable Booking/RejectionReason/SelectedOptionID fields
// are populated by the transitions that produce them and by nothing else.
type TravelRequest struct {
	ID               uint                `gorm:"primarykey" json:"id"`
	CompanyID        uint                `json:"companyId,omitempty"`
	RequesterID      uint                `json:"requesterId,omitempty"`
	JourneyType      types.JourneyType   `json:"journeyType,omitempty"`
	Status           types.RequestStatus `gorm:"default:'submitted'" json:"status,omitempty"`
	NoOfPax          uint8               `json:"noOfPax,omitempty"`
	Remarks          string              `json:"remarks,omitempty"`
	SelectedOptionID *uint               `json:"selectedOptionId,omitempty"`
	RejectionReason  *string             `json:"rejectionReason,omitempty"`

	FlightDetails []FlightSegment  `gorm:"foreignKey:request_id" json:"flightDetails,omitempty"`
	HotelDetails  []HotelSegment   `gorm:"foreignKey:request_id" json:"hotelDetails,omitempty"`
	CabDetails    []CabSegment     `gorm:"foreignKey:request_id" json:"cabDetails,omitempty"`
	Passengers    []Passenger      `gorm:"foreignKey:request_id" json:"passengers,omitempty"`
	Options       []TravelOption   `gorm:"foreignKey:request_id" json:"options,omitempty"`
	Documents     []TravelDocument `gorm:"foreignKey:request_id" json:"documents,omitempty"`
	Booking       *BookingRecord   `gorm:"foreignKey:request_id" json:"booking,omitempty"`

	Requester *User    `gorm:"foreignKey:requester_id" json:"requester,omitempty"`
	Company   *Company `gorm:"foreignKey:company_id" json:"-"`

	types.Timestamps
}

type FlightSegment struct {
	ID                  uint                 `gorm:"primarykey" json:"id"`
	RequestID           uint                 `json:"-"`
	Position            uint8                `json:"position"`
	FromCity            string               `json:"fromCity,omitempty"`
	ToCity              string               `json:"toCity,omitempty"`
	DepartureDate       time.Time            `json:"departureDate,omitempty"`
	ReturnDate          *time.Time           `json:"returnDate,omitempty"`
	TravelCategory      types.TravelCategory `gorm:"default:'domestic'" json:"travelCategory,omitempty"`
	VisaRequired        bool                 `json:"visaRequired,omitempty"`
	VisaCountry         string               `json:"visaCountry,omitempty"`
	PreferredTime       string               `json:"preferredTime,omitempty"`
	ReturnPreferredTime string               `json:"returnPreferredTime,omitempty"`
	SeatPreference      string               `json:"seatPreference,omitempty"`

	types.Timestamps
}

type HotelSegment struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	RequestID    uint      `json:"-"`
	Position     uint8     `json:"position"`
	City         string    `json:"city,omitempty"`
	CheckInDate  time.Time `json:"checkInDate,omitempty"`
	CheckOutDate time.Time `json:"checkOutDate,omitempty"`
	Guests       uint8     `json:"guests,omitempty"`
	Remarks      string    `json:"remarks,omitempty"`

	types.Timestamps
}

type CabSegment struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	RequestID      uint      `json:"-"`
	Position       uint8     `json:"position"`
	PickupLocation string    `json:"pickupLocation,omitempty"`
	DropLocation   string    `json:"dropLocation,omitempty"`
	PickupDate     time.Time `json:"pickupDate,omitempty"`
	PickupTime     string    `json:"pickupTime,omitempty"`

	types.Timestamps
}

type Passenger struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	RequestID  uint   `json:"-"`
	EmployeeID string `json:"employeeId,omitempty"`
	Relation   string `json:"relation,omitempty"`

	types.Timestamps
}

type TravelOption struct {
	ID        uint    `gorm:"primarykey" json:"id"`
	RequestID uint    `json:"-"`
	Position  uint8   `json:"position"`
	Type      string  `json:"type,omitempty"`
	Name      string  `json:"name,omitempty"`
	Details   string  `json:"details,omitempty"`
	Price     float32 `json:"price,omitempty"`
	Currency  string  `gorm:"default:'USD'" json:"currency,omitempty"`
	AddedBy   uint    `json:"-"`

	types.Timestamps
}

type BookingRecord struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	RequestID   uint      `gorm:"uniqueIndex" json:"-"`
	PnrNumber   string    `json:"pnrNumber,omitempty"`
	TicketURL   string    `json:"ticketUrl,omitempty"`
	BookingDate time.Time `json:"bookingDate,omitempty"`
	BookedByID  uint      `json:"-"`
	Remarks     string    `json:"remarks,omitempty"`

	BookedBy *User `gorm:"foreignKey:booked_by_id" json:"bookedBy,omitempty"`

	types.Timestamps
}

type TravelDocument struct {
	ID        uint   `gorm:"primarykey" json:"id"`
	RequestID uint   `json:"-"`
	Name      string `json:"name,omitempty"`
	ObjectKey string `json:"-"`
	URL       string `json:"url,omitempty"`

	types.Timestamps
}
