package notification

import (
	"path/filepath"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"
)

// DefaultLanguage is used to render stored notification text
const DefaultLanguage = "en"

var defaultMessages = []*i18n.Message{
	{ID: "notification.new_request", Other: "New {{.Urgency}} {{.Type}} request: {{.Title}}"},
	{ID: "notification.request_accepted", Other: "{{.Volunteer}} accepted your request: {{.Title}}"},
	{ID: "notification.request_completed.marked", Other: "{{.Actor}} marked your request as complete: {{.Title}}. Please confirm."},
	{ID: "notification.request_completed.confirmed", Other: "{{.Actor}} confirmed completion of {{.Title}}. You earned {{.Points}} points!"},
	{ID: "notification.donation_received", Other: "{{.Donor}} donated PHP {{.Amount}} to your request: {{.Title}}"},
}

// NewBundle builds the message bundle from the compiled in English defaults
// and every yaml file found in dir, which may override them
func NewBundle(dir string) (*i18n.Bundle, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	if err := bundle.AddMessages(language.English, defaultMessages...); err != nil {
		return nil, err
	}

	if dir == "" {
		return bundle, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if _, err := bundle.LoadMessageFile(f); err != nil {
			return nil, err
		}
	}
	return bundle, nil
}
