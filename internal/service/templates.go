package service

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"sync"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	templateBusinessNotification = "business_notification.html"
	templateClientConfirmation   = "client_confirmation.html"
)

var (
	templateCache   = map[string]*template.Template{}
	templateCacheMu sync.Mutex
)

type baseEmailData struct {
	Title   string
	Heading string
}

type businessEmailData struct {
	baseEmailData
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	PhoneLink   string
	Company     string
	Service     string
	Budget      string
	Timeline    string
	Message     string
	Newsletter  bool
	SubmittedAt string
}

type clientEmailData struct {
	baseEmailData
	BusinessName string
	Service      string
	NextSteps    []string
	Phone        string
	PhoneLink    string
	WhatsAppURL  string
	ContactEmail string
}

func loadTemplate(name string) (*template.Template, error) {
	templateCacheMu.Lock()
	defer templateCacheMu.Unlock()

	if tmpl, ok := templateCache[name]; ok {
		return tmpl, nil
	}

	tmpl, err := template.New("base.html").ParseFS(templateFS, "templates/base.html", "templates/"+name)
	if err != nil {
		return nil, fmt.Errorf("parse email template %s: %w", name, err)
	}
	templateCache[name] = tmpl
	return tmpl, nil
}

func renderEmailTemplate(name string, data any) (string, error) {
	tmpl, err := loadTemplate(name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}
