package mailer

import "html/template"

const layoutHeader = `<html><body style="font-family: Arial, sans-serif; color: #222;">`
const layoutFooter = `<p style="color: #777; font-size: 12px;">{{.BusinessName}}{{if .BusinessAddress}} · {{.BusinessAddress}}{{end}}</p></body></html>`

const summaryBlock = `<table cellpadding="4">
<tr><td><strong>Date</strong></td><td>{{.Date}}</td></tr>
<tr><td><strong>Time</strong></td><td>{{.Time}}</td></tr>
<tr><td><strong>Service</strong></td><td>{{.ServiceKind}} ({{.DurationMinutes}} min)</td></tr>
<tr><td><strong>Participants</strong></td><td>{{.ParticipantCount}}</td></tr>
{{if .Notes}}<tr><td><strong>Notes</strong></td><td>{{.Notes}}</td></tr>{{end}}
<tr><td><strong>Reference</strong></td><td>{{.AppointmentID}}</td></tr>
</table>`

var (
	customerCreatedTemplate = template.Must(template.New("customer_created").Parse(layoutHeader + `
<p>Hello <strong>{{.CustomerName}}</strong>,</p>
<p>We received your booking request. It is pending until we confirm it, and we will email you again once it is confirmed.</p>
` + summaryBlock + layoutFooter))

	customerConfirmedTemplate = template.Must(template.New("customer_confirmed").Parse(layoutHeader + `
<p>Hello <strong>{{.CustomerName}}</strong>,</p>
<p>Your appointment is confirmed. The attached invite adds it to your calendar.</p>
` + summaryBlock + layoutFooter))

	adminCreatedTemplate = template.Must(template.New("admin_created").Parse(layoutHeader + `
<p>A new booking request is waiting for confirmation.</p>
<p><strong>{{.CustomerName}}</strong> · {{.CustomerEmail}} · {{.CustomerPhone}}</p>
` + summaryBlock + layoutFooter))

	adminConfirmedTemplate = template.Must(template.New("admin_confirmed").Parse(layoutHeader + `
<p>The following appointment is now confirmed.</p>
<p><strong>{{.CustomerName}}</strong> · {{.CustomerEmail}} · {{.CustomerPhone}}</p>
` + summaryBlock + layoutFooter))
)
