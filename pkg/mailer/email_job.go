package mailer

import (
	"bytes"
	"html/template"
)

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
type EmailJob struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	Template string `json:"template"` // currently only "welcome"
	Username string `json:"username,omitempty"`
}

const welcomeSubject = "Welcome to Castwave"

const welcomeText = `Hi {{.Username}},

Your Castwave account is ready. Pick a topic and generate your first podcast.
`

const welcomeHTML = `<html><body>
<h2>Welcome, {{.Username}}!</h2>
<p>Your Castwave account is ready. Pick a topic and generate your first podcast.</p>
</body></html>`

var (
	welcomeTextTpl = template.Must(template.New("welcome_text").Parse(welcomeText))
	welcomeHTMLTpl = template.Must(template.New("welcome_html").Parse(welcomeHTML))
)

// NewWelcomeJob builds the job enqueued after a successful signup.
func NewWelcomeJob(to, username string) EmailJob {
	return EmailJob{To: to, Subject: welcomeSubject, Template: "welcome", Username: username}
}

// Render produces the text and HTML bodies for the job's template.
func (j EmailJob) Render() (text, html string, err error) {
	var tb, hb bytes.Buffer
	if err = welcomeTextTpl.Execute(&tb, j); err != nil {
		return "", "", err
	}
	if err = welcomeHTMLTpl.Execute(&hb, j); err != nil {
		return "", "", err
	}
	return tb.String(), hb.String(), nil
}
