package utils

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
	"tms/src/config"
	"tms/src/lib"
	"tms/src/models"
	"tms/src/types"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func IsProd() bool {
	return os.Getenv("API_ENV") == "production"
}

func HashPassword(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func CheckPassword(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// PasswordStrengthError mirrors the signup form rules: 8+ chars with lower,
// upper and a digit. Returns "" when the password passes.
func PasswordStrengthError(password string) string {
	if password == "" {
		return "Password is required."
	}
	var missing []string
	if len(password) < 8 {
		missing = append(missing, "at least 8 characters")
	}
	if !strings.ContainsAny(password, "abcdefghijklmnopqrstuvwxyz") {
		missing = append(missing, "a lowercase letter")
	}
	if !strings.ContainsAny(password, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		missing = append(missing, "an uppercase letter")
	}
	if !strings.ContainsAny(password, "0123456789") {
		missing = append(missing, "a number")
	}
	if len(missing) > 0 {
		return fmt.Sprintf("Password must contain %s.", strings.Join(missing, ", "))
	}
	return ""
}

func GenerateToken(user *models.User) (string, error) {
	var companyId uint
	if user.CompanyID != nil {
		companyId = *user.CompanyID
	}
	claims := &types.Claims{
		Name:       user.Name,
		Role:       user.Role,
		Company:    companyId,
		EmployeeID: user.EmployeeID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(int(user.ID)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.JWT_SECRET))
}

// NewTravelRequest assembles a TravelRequest entity from a validated create
// payload. The segment-count rule lives here: one flight segment for oneway
// and roundtrip, one or more for multicity; a roundtrip segment must carry a
// return date.
func NewTravelRequest(body *types.CreateTravelRequestBody, companyId uint, requesterId uint) (*models.TravelRequest, error) {
	journeyType := types.JourneyType(body.JourneyType)
	if journeyType != types.JOURNEY_MULTICITY && len(body.FlightDetails) != 1 {
		return nil, fmt.Errorf("journey type %s requires exactly one flight segment", journeyType)
	}
	if journeyType == types.JOURNEY_ROUNDTRIP && body.FlightDetails[0].ReturnDate == "" {
		return nil, fmt.Errorf("a round trip requires a return date")
	}

	req := &models.TravelRequest{
		CompanyID:   companyId,
		RequesterID: requesterId,
		JourneyType: journeyType,
		Status:      types.REQUEST_SUBMITTED,
		NoOfPax:     body.NoOfPax,
		Remarks:     body.Remarks,
	}
	if req.NoOfPax == 0 {
		req.NoOfPax = uint8(len(body.Passengers))
	}

	for i, fd := range body.FlightDetails {
		departureDate, err := time.Parse(config.DATE_PARSE_FORMAT, fd.DepartureDate)
		if err != nil {
			log.Printf("Error parsing departureDate: %s\n", err.Error())
			return nil, err
		}
		segment := models.FlightSegment{
			Position:            uint8(i + 1),
			FromCity:            fd.FromCity,
			ToCity:              fd.ToCity,
			DepartureDate:       departureDate,
			TravelCategory:      types.TravelCategory(fd.TravelCategory),
			VisaRequired:        fd.VisaRequired,
			VisaCountry:         fd.VisaCountry,
			PreferredTime:       fd.PreferredTime,
			ReturnPreferredTime: fd.ReturnPreferredTime,
			SeatPreference:      fd.SeatPreference,
		}
		if segment.TravelCategory == "" {
			segment.TravelCategory = types.TRAVEL_DOMESTIC
		}
		if fd.ReturnDate != "" {
			returnDate, err := time.Parse(config.DATE_PARSE_FORMAT, fd.ReturnDate)
			if err != nil {
				log.Printf("Error parsing returnDate: %s\n", err.Error())
				return nil, err
			}
			if returnDate.Before(departureDate) {
				return nil, fmt.Errorf("return date is before departure date")
			}
			segment.ReturnDate = &returnDate
		}
		req.FlightDetails = append(req.FlightDetails, segment)
	}

	for i, hd := range body.HotelDetails {
		checkIn, err := time.Parse(config.DATE_PARSE_FORMAT, hd.CheckInDate)
		if err != nil {
			return nil, err
		}
		checkOut, err := time.Parse(config.DATE_PARSE_FORMAT, hd.CheckOutDate)
		if err != nil {
			return nil, err
		}
		if checkOut.Before(checkIn) {
			return nil, fmt.Errorf("hotel check-out is before check-in")
		}
		guests := hd.Guests
		if guests == 0 {
			guests = 1
		}
		req.HotelDetails = append(req.HotelDetails, models.HotelSegment{
			Position:     uint8(i + 1),
			City:         hd.City,
			CheckInDate:  checkIn,
			CheckOutDate: checkOut,
			Guests:       guests,
			Remarks:      hd.Remarks,
		})
	}

	for i, cd := range body.CabDetails {
		pickupDate, err := time.Parse(config.DATE_PARSE_FORMAT, cd.PickupDate)
		if err != nil {
			return nil, err
		}
		req.CabDetails = append(req.CabDetails, models.CabSegment{
			Position:       uint8(i + 1),
			PickupLocation: cd.PickupLocation,
			DropLocation:   cd.DropLocation,
			PickupDate:     pickupDate,
			PickupTime:     cd.PickupTime,
		})
	}

	for _, p := range body.Passengers {
		req.Passengers = append(req.Passengers, models.Passenger{
			EmployeeID: p.EmployeeID,
			Relation:   p.Relation,
		})
	}

	return req, nil
}

func RequestDetailKey(requestId uint) string {
	return fmt.Sprintf("request::%d:detail", requestId)
}

func CompanyRequestsKey(companyId uint) string {
	return fmt.Sprintf("company::%d:requests", companyId)
}

func RequesterRequestsKey(userId uint) string {
	return fmt.Sprintf("user::%d:requests", userId)
}

func ManagerRequestsKey(managerId uint) string {
	return fmt.Sprintf("manager::%d:requests", managerId)
}

func AdminDashboardKey(companyId uint) string {
	return fmt.Sprintf("company::%d:dashboard", companyId)
}

func ManagerDashboardKey(managerId uint) string {
	return fmt.Sprintf("manager::%d:dashboard", managerId)
}

const MasterDashboardKey = "master:dashboard"

// InvalidateRequestCaches drops exactly the cached views a mutation to the
// request can have changed: its detail, the lists it appears on and the
// dashboards that count by status.
func InvalidateRequestCaches(req *models.TravelRequest, managerId uint) {
	rd := lib.GetRedisClient()
	if rd == nil {
		return
	}
	keys := []string{
		RequestDetailKey(req.ID),
		CompanyRequestsKey(req.CompanyID),
		RequesterRequestsKey(req.RequesterID),
		AdminDashboardKey(req.CompanyID),
		MasterDashboardKey,
	}
	if managerId > 0 {
		keys = append(keys, ManagerRequestsKey(managerId), ManagerDashboardKey(managerId))
	}
	if err := rd.Del(context.Background(), keys...).Err(); err != nil {
		log.Printf("[redis] Error invalidating request caches: %s\n", err.Error())
	}
}
