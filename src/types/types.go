package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type JSONB map[string]any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type Metadata map[string]any

func (a Metadata) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *Metadata) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

// Role is the closed set of actor roles. Gating decisions switch on these
// constants only; unknown values deny everything.
type Role string

const (
	ROLE_MASTER_ADMIN Role = "masterAdmin"
	ROLE_ADMIN        Role = "admin"
	ROLE_MANAGER      Role = "manager"
	ROLE_EMPLOYEE     Role = "employee"
)

// RequestStatus is the canonical lifecycle vocabulary. Dashboard tab labels
// ("approved", "rejected") are views over these, never stored.
type RequestStatus string

const (
	REQUEST_SUBMITTED          RequestStatus = "submitted"
	REQUEST_OPTIONS_SENT       RequestStatus = "optionsSent"
	REQUEST_EMPLOYEE_CONFIRMED RequestStatus = "employeeConfirmed"
	REQUEST_MANAGER_APPROVED   RequestStatus = "managerApproved"
	REQUEST_MANAGER_REJECTED   RequestStatus = "managerRejected"
	REQUEST_BOOKED             RequestStatus = "booked"
)

type RequestAction string

const (
	ACTION_CREATE          RequestAction = "create"
	ACTION_PROPOSE_OPTIONS RequestAction = "proposeOptions"
	ACTION_SELECT_OPTION   RequestAction = "selectOption"
	ACTION_APPROVE         RequestAction = "approve"
	ACTION_REJECT          RequestAction = "reject"
	ACTION_BOOK            RequestAction = "book"
)

type JourneyType string

const (
	JOURNEY_ONEWAY    JourneyType = "oneway"
	JOURNEY_ROUNDTRIP JourneyType = "roundtrip"
	JOURNEY_MULTICITY JourneyType = "multicity"
)

type TravelCategory string

const (
	TRAVEL_DOMESTIC      TravelCategory = "domestic"
	TRAVEL_INTERNATIONAL TravelCategory = "international"
)

type CompanyStatus string

const (
	COMPANY_ACTIVE    CompanyStatus = "active"
	COMPANY_SUSPENDED CompanyStatus = "suspended"
)

type FlightSegmentPayload struct {
	FromCity            string `json:"fromCity" binding:"required"`
	ToCity              string `json:"toCity" binding:"required"`
	DepartureDate       string `json:"departureDate" binding:"required,traveldate"`
	ReturnDate          string `json:"returnDate,omitempty" binding:"omitempty,traveldate"`
	TravelCategory      string `json:"travelCategory,omitempty" binding:"omitempty,oneof=domestic international"`
	VisaRequired        bool   `json:"visaRequired,omitempty"`
	VisaCountry         string `json:"visaCountry,omitempty"`
	PreferredTime       string `json:"preferredTime,omitempty"`
	ReturnPreferredTime string `json:"returnPreferredTime,omitempty"`
	SeatPreference      string `json:"seatPreference,omitempty"`
}

type HotelSegmentPayload struct {
	City         string `json:"city" binding:"required"`
	CheckInDate  string `json:"checkInDate" binding:"required,traveldate"`
	CheckOutDate string `json:"checkOutDate" binding:"required,traveldate"`
	Guests       uint8  `json:"guests,omitempty"`
	Remarks      string `json:"remarks,omitempty"`
}

type CabSegmentPayload struct {
	PickupLocation string `json:"pickupLocation" binding:"required"`
	DropLocation   string `json:"dropLocation" binding:"required"`
	PickupDate     string `json:"pickupDate" binding:"required,traveldate"`
	PickupTime     string `json:"pickupTime,omitempty"`
}

type PassengerPayload struct {
	EmployeeID string `json:"employeeId" binding:"required"`
	Relation   string `json:"relation,omitempty"`
}

type CreateTravelRequestBody struct {
	JourneyType   string                 `json:"journeyType" binding:"required,oneof=oneway roundtrip multicity"`
	NoOfPax       uint8                  `json:"noOfPax,omitempty"`
	Passengers    []PassengerPayload     `json:"passengers" binding:"required,min=1,dive"`
	FlightDetails []FlightSegmentPayload `json:"flightDetails" binding:"required,min=1,dive"`
	HotelDetails  []HotelSegmentPayload  `json:"hotelDetails,omitempty" binding:"omitempty,dive"`
	CabDetails    []CabSegmentPayload    `json:"cabDetails,omitempty" binding:"omitempty,dive"`
	Remarks       string                 `json:"remarks,omitempty"`
}

type TravelOptionPayload struct {
	Type     string  `json:"type" binding:"required"`
	Name     string  `json:"name" binding:"required"`
	Details  string  `json:"details,omitempty"`
	Price    float32 `json:"price" binding:"required"`
	Currency string  `json:"currency,omitempty"`
}

type ProposeOptionsRequestBody struct {
	Options []TravelOptionPayload `json:"options" binding:"required,min=1,dive"`
}

type SelectOptionRequestBody struct {
	SelectedOptionID uint `json:"selectedOptionId" binding:"required"`
}

type RejectRequestBody struct {
	RejectionReason string `json:"rejectionReason" binding:"required"`
}

type BookRequestBody struct {
	PnrNumber string `json:"pnrNumber" binding:"required"`
	TicketURL string `json:"ticketUrl,omitempty"`
	Remarks   string `json:"remarks,omitempty"`
}

type SigninRequestBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SignupRequestBody struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,strongpassword"`
	CompanyID  uint   `json:"company" binding:"required"`
	EmployeeID string `json:"employeeId,omitempty"`
}

type CreateCompanyRequestBody struct {
	Name         string `json:"name" binding:"required"`
	ContactEmail string `json:"email" binding:"required,email"`
	Country      string `json:"country,omitempty"`
	AdminName    string `json:"adminName" binding:"required"`
	AdminEmail   string `json:"adminEmail" binding:"required,email"`
	AdminPass    string `json:"adminPassword" binding:"required,strongpassword"`
}

type UpdateCompanyRequestBody struct {
	Name         *string `json:"name,omitempty"`
	ContactEmail *string `json:"email,omitempty" binding:"omitempty,email"`
	Country      *string `json:"country,omitempty"`
	Status       *string `json:"status,omitempty" binding:"omitempty,oneof=active suspended"`
}

type UpdateUserRequestBody struct {
	Name       *string `json:"name,omitempty"`
	Role       *string `json:"role,omitempty" binding:"omitempty,oneof=admin manager employee"`
	ManagerID  *uint   `json:"manager,omitempty"`
	EmployeeID *string `json:"employeeId,omitempty"`
}

type UpdateProfileRequestBody struct {
	Name     *string `json:"name,omitempty"`
	Password *string `json:"password,omitempty" binding:"omitempty,strongpassword"`
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type ListRequestsQuery struct {
	Tab string `form:"tab"`
}
