package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/pkg/errors"
)

type Template string

const (
	TemplateWelcome Template = "welcome"
)

//go:embed templates/*.html
var templateFS embed.FS

// RenderTemplate executes the named template with data.
func RenderTemplate(name Template, data map[string]string) (string, error) {
	tmpl, err := template.ParseFS(templateFS, fmt.Sprintf("templates/%s.html", name))
	if err != nil {
		return "", errors.Wrapf(err, "failed to parse email template %s", name)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", name)
	}

	return body.String(), nil
}
