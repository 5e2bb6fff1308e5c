package common

import (
	"fmt"
	"log"
	"tms/src/config"
	"tms/src/db"
	"tms/src/lib"
	"tms/src/models"
	"tms/src/types"
)

// NotifyTransition emails the party whose turn the transition starts. Send
// failures are logged and swallowed: notification is best-effort and never
// blocks or fails a mutation.
func NotifyTransition(req *models.TravelRequest, action types.RequestAction) {
	var to string
	var subject string
	var body string

	requesterEmail := ""
	requesterName := ""
	if req.Requester != nil {
		requesterEmail = req.Requester.Email
		requesterName = req.Requester.Name
	}

	switch action {
	case types.ACTION_PROPOSE_OPTIONS:
		to = requesterEmail
		subject = "Travel options are ready for your request"
		body = fmt.Sprintf(`
			<p>Hi %s,</p>
			<p>Options have been added to your travel request (%s). Please sign in and select one.</p>
		`, requesterName, fmtRoute(req))
	case types.ACTION_SELECT_OPTION:
		manager := lookupManager(req)
		if manager == nil {
			return
		}
		to = manager.Email
		subject = "A travel request is waiting for your approval"
		body = fmt.Sprintf(`
			<p>Hi %s,</p>
			<p>%s has confirmed an option for their travel request (%s). It is now waiting for your decision.</p>
		`, manager.Name, requesterName, fmtRoute(req))
	case types.ACTION_APPROVE:
		to = requesterEmail
		subject = "Your travel request was approved"
		body = fmt.Sprintf(`
			<p>Hi %s,</p>
			<p>Your manager approved your travel request (%s). The travel desk will book it shortly.</p>
		`, requesterName, fmtRoute(req))
	case types.ACTION_REJECT:
		reason := ""
		if req.RejectionReason != nil {
			reason = *req.RejectionReason
		}
		to = requesterEmail
		subject = "Your travel request was rejected"
		body = fmt.Sprintf(`
			<p>Hi %s,</p>
			<p>Your travel request (%s) was rejected.</p>
			<p>Reason: %s</p>
		`, requesterName, fmtRoute(req), reason)
	case types.ACTION_BOOK:
		pnr := ""
		if req.Booking != nil {
			pnr = req.Booking.PnrNumber
		}
		to = requesterEmail
		subject = "Your travel request has been booked"
		body = fmt.Sprintf(`
			<p>Hi %s,</p>
			<p>Your trip (%s) is booked. PNR: %s</p>
		`, requesterName, fmtRoute(req), pnr)
	default:
		return
	}
	if to == "" {
		return
	}

	if err := lib.SendMail(&lib.SendMailInput{
		From:     config.SMTP_FROM,
		FromName: "noreply",
		To:       []string{to},
		Subject:  subject,
		Body:     body,
		Html:     true,
	}); err != nil {
		log.Printf("Could not send notification email to [%s]: %s\n", to, err.Error())
	}
}

// NotifySubmitted tells the company's travel desk admins a new request is
// waiting for options.
func NotifySubmitted(req *models.TravelRequest) {
	var admins []models.User
	gdb := db.GetDb()
	if err := gdb.
		Model(&models.User{}).
		Where("company_id = ? AND role = ?", req.CompanyID, types.ROLE_ADMIN).
		Find(&admins).
		Error; err != nil {
		log.Printf("Could not resolve admins for company [%d]: %s\n", req.CompanyID, err.Error())
		return
	}
	if len(admins) == 0 {
		return
	}
	to := make([]string, 0, len(admins))
	for _, admin := range admins {
		to = append(to, admin.Email)
	}
	requesterName := ""
	if req.Requester != nil {
		requesterName = req.Requester.Name
	}
	body := fmt.Sprintf(`
		<p>%s submitted a new travel request (%s).</p>
		<p>Please sign in and propose travel options.</p>
	`, requesterName, fmtRoute(req))
	if err := lib.SendMail(&lib.SendMailInput{
		From:     config.SMTP_FROM,
		FromName: "noreply",
		To:       to,
		Subject:  "New travel request submitted",
		Body:     body,
		Html:     true,
	}); err != nil {
		log.Printf("Could not send submission email: %s\n", err.Error())
	}
}

func lookupManager(req *models.TravelRequest) *models.User {
	if req.Requester == nil || req.Requester.ManagerID == nil {
		return nil
	}
	var manager models.User
	gdb := db.GetDb()
	if err := gdb.
		Model(&models.User{}).
		Where(&models.User{ID: *req.Requester.ManagerID}).
		First(&manager).
		Error; err != nil {
		log.Printf("Could not resolve manager for request [%d]: %s\n", req.ID, err.Error())
		return nil
	}
	return &manager
}
