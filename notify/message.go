// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"text/template"

	"github.com/danielhkuo/phasecheck/models"
)

// Message is a rendered notification in plain-text and HTML form.
type Message struct {
	Subject string
	Text    string
	HTML    string
}

type messageData struct {
	UserID          string
	Phase           models.Phase
	Recommendations []string
}

var textTemplate = template.Must(template.New("text").Parse(
	`Hello {{.UserID}},
Here are your personalized daily recommendations for your {{.Phase}} phase:
{{range .Recommendations}}- {{.}}
{{end}}Stay empowered!
Cyclical
`))

var htmlTemplate = htmltemplate.Must(htmltemplate.New("html").Parse(
	`<p>Hello {{.UserID}},</p>
<p>Here are your personalized daily recommendations for your {{.Phase}} phase:</p>
<ul>{{range .Recommendations}}<li>{{.}}</li>{{end}}</ul>
<p>Stay empowered!<br>Cyclical</p>
`))

// Render builds the recommendation message for a user.
func Render(userID string, phase models.Phase, recs []string) (Message, error) {
	data := messageData{UserID: userID, Phase: phase, Recommendations: recs}

	var text, html bytes.Buffer
	if err := textTemplate.Execute(&text, data); err != nil {
		return Message{}, fmt.Errorf("failed to render text message: %w", err)
	}
	if err := htmlTemplate.Execute(&html, data); err != nil {
		return Message{}, fmt.Errorf("failed to render html message: %w", err)
	}

	return Message{
		Subject: fmt.Sprintf("Your Daily Cycle Recommendations for Your %s Phase!", phase),
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}
