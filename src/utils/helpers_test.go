package utils

import (
	"testing"
	"tms/src/types"

	"github.com/stretchr/testify/assert"
)

func TestPasswordStrength(t *testing.T) {
	assert.Empty(t, PasswordStrengthError("Sup3rSecret"))

	assert.NotEmpty(t, PasswordStrengthError(""))
	assert.NotEmpty(t, PasswordStrengthError("short1A"))
	assert.NotEmpty(t, PasswordStrengthError("alllowercase1"))
	assert.NotEmpty(t, PasswordStrengthError("ALLUPPERCASE1"))
	assert.NotEmpty(t, PasswordStrengthError("NoDigitsHere"))
}

func TestPasswordHashRoundtrip(t *testing.T) {
	hash, err := HashPassword("Sup3rSecret")
	assert.Nil(t, err)
	assert.True(t, CheckPassword(hash, "Sup3rSecret"))
	assert.False(t, CheckPassword(hash, "WrongPassword1"))
}

func createBody() *types.CreateTravelRequestBody {
	return &types.CreateTravelRequestBody{
		JourneyType: "oneway",
		Passengers:  []types.PassengerPayload{{EmployeeID: "EMP-001"}},
		FlightDetails: []types.FlightSegmentPayload{{
			FromCity:      "Mumbai",
			ToCity:        "Delhi",
			DepartureDate: "2030-06-01",
		}},
	}
}

func TestNewTravelRequestOneway(t *testing.T) {
	req, err := NewTravelRequest(createBody(), 1, 10)
	assert.Nil(t, err)
	assert.Equal(t, types.REQUEST_SUBMITTED, req.Status)
	assert.Equal(t, uint(1), req.CompanyID)
	assert.Equal(t, uint(10), req.RequesterID)
	assert.Len(t, req.FlightDetails, 1)
	assert.Equal(t, uint8(1), req.FlightDetails[0].Position)
	assert.Equal(t, types.TRAVEL_DOMESTIC, req.FlightDetails[0].TravelCategory)
	assert.Nil(t, req.FlightDetails[0].ReturnDate)
	assert.Equal(t, uint8(1), req.NoOfPax)
}

func TestNewTravelRequestSegmentRules(t *testing.T) {
	body := createBody()
	body.FlightDetails = append(body.FlightDetails, body.FlightDetails[0])
	_, err := NewTravelRequest(body, 1, 10)
	assert.NotNil(t, err, "oneway with two segments should fail")

	body = createBody()
	body.JourneyType = "roundtrip"
	_, err = NewTravelRequest(body, 1, 10)
	assert.NotNil(t, err, "roundtrip without a return date should fail")

	body = createBody()
	body.JourneyType = "roundtrip"
	body.FlightDetails[0].ReturnDate = "2030-05-01"
	_, err = NewTravelRequest(body, 1, 10)
	assert.NotNil(t, err, "return before departure should fail")

	body = createBody()
	body.JourneyType = "roundtrip"
	body.FlightDetails[0].ReturnDate = "2030-06-10"
	req, err := NewTravelRequest(body, 1, 10)
	assert.Nil(t, err)
	assert.NotNil(t, req.FlightDetails[0].ReturnDate)

	body = createBody()
	body.JourneyType = "multicity"
	body.FlightDetails = append(body.FlightDetails, types.FlightSegmentPayload{
		FromCity:      "Delhi",
		ToCity:        "Bengaluru",
		DepartureDate: "2030-06-03",
	})
	req, err = NewTravelRequest(body, 1, 10)
	assert.Nil(t, err)
	assert.Len(t, req.FlightDetails, 2)
	assert.Equal(t, uint8(2), req.FlightDetails[1].Position)
}

func TestNewTravelRequestHotelRules(t *testing.T) {
	body := createBody()
	body.HotelDetails = []types.HotelSegmentPayload{{
		City:         "Delhi",
		CheckInDate:  "2030-06-02",
		CheckOutDate: "2030-06-01",
	}}
	_, err := NewTravelRequest(body, 1, 10)
	assert.NotNil(t, err, "check-out before check-in should fail")

	body.HotelDetails[0].CheckOutDate = "2030-06-04"
	req, err := NewTravelRequest(body, 1, 10)
	assert.Nil(t, err)
	assert.Len(t, req.HotelDetails, 1)
	assert.Equal(t, uint8(1), req.HotelDetails[0].Guests)
}

func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "request::7:detail", RequestDetailKey(7))
	assert.Equal(t, "company::3:requests", CompanyRequestsKey(3))
	assert.Equal(t, "user::10:requests", RequesterRequestsKey(10))
	assert.Equal(t, "manager::4:requests", ManagerRequestsKey(4))
	assert.Equal(t, "company::3:dashboard", AdminDashboardKey(3))
	assert.Equal(t, "manager::4:dashboard", ManagerDashboardKey(4))
	assert.Equal(t, "master:dashboard", MasterDashboardKey)
}
