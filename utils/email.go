package utils

import (
	"bytes"
	"html/template"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

var notificationTemplate = template.Must(template.New("notification").Parse(`
<html>
  <body>
    <h3>{{.Subject}}</h3>
    <p>{{.Body}}</p>
    <p>Hostel Accommodation Office</p>
  </body>
</html>`))

// SendNotificationEmail sends a short HTML notification asynchronously.
// A missing SMTP configuration turns this into a logged no-op so ledger and
// allocation writes never depend on the mail server.
func SendNotificationEmail(to, subject, body string) {
	go func() {
		host := os.Getenv("SMTP_HOST")
		portStr := os.Getenv("SMTP_PORT")
		username := os.Getenv("SMTP_USERNAME")
		password := os.Getenv("SMTP_PASSWORD")
		from := os.Getenv("SMTP_FROM")
		if host == "" || from == "" {
			log.Printf("smtp not configured, skipping notification to %s", to)
			return
		}

		var rendered bytes.Buffer
		err := notificationTemplate.Execute(&rendered, struct{ Subject, Body string }{subject, body})
		if err != nil {
			log.Printf("render notification email: %v", err)
			return
		}

		port, _ := strconv.Atoi(portStr)
		if port == 0 {
			port = 587
		}

		m := gomail.NewMessage()
		m.SetHeader("From", from)
		m.SetHeader("To", to)
		m.SetHeader("Subject", subject)
		m.SetBody("text/html", rendered.String())

		d := gomail.NewDialer(host, port, username, password)
		if err := d.DialAndSend(m); err != nil {
			log.Printf("send notification email to %s: %v", to, err)
		}
	}()
}
