package mailer

import (
	"booking-service/internal/app/config"
	"booking-service/internal/app/contracts"
	"booking-service/internal/app/models"
	"booking-service/internal/pkg/constvars"
	"booking-service/internal/pkg/dto/requests"
	"booking-service/internal/pkg/exceptions"
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"go.uber.org/zap"
)

// AppointmentMailer turns lifecycle notifications into customer and admin
// emails. Only the customer email decides the outcome; the admin copy is
// best effort so a failing admin inbox never re-sends customer mail.
type AppointmentMailer struct {
	Mailer          contracts.MailerService
	Location        *time.Location
	BusinessName    string
	BusinessAddress string
	Sender          string
	AdminEmail      string
	Now             func() time.Time
	Log             *zap.Logger
}

func NewAppointmentMailer(mailerService contracts.MailerService, internalConfig *config.InternalConfig, location *time.Location, logger *zap.Logger) *AppointmentMailer {
	if location == nil {
		location = time.UTC
	}
	return &AppointmentMailer{
		Mailer:          mailerService,
		Location:        location,
		BusinessName:    internalConfig.Notification.BusinessName,
		BusinessAddress: internalConfig.Notification.BusinessAddress,
		Sender:          internalConfig.Notification.EmailSender,
		AdminEmail:      internalConfig.Notification.AdminEmail,
		Now:             time.Now,
		Log:             logger,
	}
}

type emailView struct {
	BusinessName     string
	BusinessAddress  string
	AppointmentID    string
	CustomerName     string
	CustomerEmail    string
	CustomerPhone    string
	Date             string
	Time             string
	ServiceKind      string
	DurationMinutes  int
	ParticipantCount int
	Notes            string
}

func (m *AppointmentMailer) SendAppointmentNotification(ctx context.Context, notification models.AppointmentNotification) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if requestID == "" {
		requestID = notification.RequestID
	}
	appointment := notification.Appointment
	m.Log.Info("AppointmentMailer.SendAppointmentNotification called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
		zap.String(constvars.LoggingNotificationEventKey, string(notification.Event)),
	)

	view := m.buildView(appointment)

	var customerTemplate, adminTemplate *template.Template
	var customerSubject, adminSubject string
	var attachments []requests.EmailAttachment

	switch notification.Event {
	case models.NotificationEventCreated:
		customerTemplate = customerCreatedTemplate
		adminTemplate = adminCreatedTemplate
		customerSubject = fmt.Sprintf(constvars.EmailAppointmentCreatedSubject, view.Date, view.Time)
		adminSubject = fmt.Sprintf(constvars.EmailAdminAppointmentCreatedSubject, appointment.Date, appointment.Time, view.CustomerName)
	case models.NotificationEventConfirmed:
		customerTemplate = customerConfirmedTemplate
		adminTemplate = adminConfirmedTemplate
		customerSubject = fmt.Sprintf(constvars.EmailAppointmentConfirmedSubject, view.Date, view.Time)
		adminSubject = fmt.Sprintf(constvars.EmailAdminAppointmentConfirmedSubject, appointment.Date, appointment.Time, view.CustomerName)

		invite, err := buildCalendarInvite(calendarInviteInput{
			Appointment:     appointment,
			Location:        m.Location,
			Organizer:       m.Sender,
			BusinessName:    m.BusinessName,
			BusinessAddress: m.BusinessAddress,
			Now:             m.Now(),
		})
		if err != nil {
			return exceptions.ErrBuildCalendarInvite(err)
		}
		attachments = append(attachments, requests.EmailAttachment{
			FileName:    constvars.EmailCalendarAttachmentName,
			ContentType: constvars.MIMETextCalendar + "; method=REQUEST; charset=utf-8",
			Content:     invite,
		})
	default:
		return exceptions.ErrNotificationPayloadUnreadable(fmt.Errorf("unknown event %q", notification.Event))
	}

	customerBody, err := render(customerTemplate, view)
	if err != nil {
		return exceptions.ErrNotificationPayloadUnreadable(err)
	}
	err = m.Mailer.SendEmail(ctx, &requests.EmailPayload{
		Subject:     customerSubject,
		From:        m.Sender,
		To:          []string{appointment.Customer.Email},
		HTMLCode:    customerBody,
		Attachments: attachments,
	})
	if err != nil {
		return err
	}

	if m.AdminEmail == "" {
		return nil
	}
	adminBody, err := render(adminTemplate, view)
	if err == nil {
		err = m.Mailer.SendEmail(ctx, &requests.EmailPayload{
			Subject:  adminSubject,
			From:     m.Sender,
			To:       []string{m.AdminEmail},
			HTMLCode: adminBody,
		})
	}
	if err != nil {
		m.Log.Warn("AppointmentMailer.SendAppointmentNotification admin notice failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.Error(err),
		)
	}
	return nil
}

func (m *AppointmentMailer) buildView(appointment models.Appointment) emailView {
	date := appointment.Date
	if day, err := time.ParseInLocation(constvars.DateLayout, appointment.Date, m.Location); err == nil {
		date = day.Format("Monday, 2 January 2006")
	}
	return emailView{
		BusinessName:     m.BusinessName,
		BusinessAddress:  m.BusinessAddress,
		AppointmentID:    appointment.ID,
		CustomerName:     appointment.Customer.Name,
		CustomerEmail:    appointment.Customer.Email,
		CustomerPhone:    appointment.Customer.Phone,
		Date:             date,
		Time:             appointment.Time,
		ServiceKind:      string(appointment.ServiceKind),
		DurationMinutes:  appointment.DurationMinutes,
		ParticipantCount: appointment.ParticipantCount,
		Notes:            appointment.Notes,
	}
}

func render(tmpl *template.Template, view emailView) (string, error) {
	var out bytes.Buffer
	if err := tmpl.Execute(&out, view); err != nil {
		return "", err
	}
	return out.String(), nil
}
