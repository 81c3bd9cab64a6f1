package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// Built-in email templates. The platform provisions accounts with a temporary
// password that is emailed to the user, who is expected to change it after
// the first login.

const (
	TemplateTempPassword  = "temp_password"
	TemplatePasswordReset = "password_reset"
)

var tmpl = template.Must(template.New("emails").Parse(`
{{define "temp_password"}}
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #2563eb;">Bienvenue sur HILFE Enterprise</h2>
  <p>Bonjour {{.Name}},</p>
  <p>Votre compte a été créé avec succès.</p>
  <div style="background-color: #f3f4f6; padding: 16px; border-radius: 8px; margin: 20px 0;">
    <p style="margin: 0; font-weight: bold;">Votre mot de passe temporaire :</p>
    <p style="margin: 0; font-size: 24px; color: #2563eb;">{{.Password}}</p>
  </div>
  <p>Connectez-vous à : <a href="{{.FrontendURL}}">{{.FrontendURL}}</a></p>
  <p><strong>Il est recommandé de changer votre mot de passe après la première connexion.</strong></p>
  <p>Cordialement,<br>L'équipe HILFE Enterprise</p>
</div>
{{end}}

{{define "password_reset"}}
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #2563eb;">Réinitialisation de mot de passe</h2>
  <p>Bonjour {{.Name}},</p>
  <p>Votre mot de passe a été réinitialisé.</p>
  <div style="background-color: #f3f4f6; padding: 16px; border-radius: 8px; margin: 20px 0;">
    <p style="margin: 0; font-weight: bold;">Votre nouveau mot de passe temporaire :</p>
    <p style="margin: 0; font-size: 24px; color: #2563eb;">{{.Password}}</p>
  </div>
  <p>Connectez-vous à : <a href="{{.FrontendURL}}">{{.FrontendURL}}</a></p>
  <p><strong>Il est recommandé de changer votre mot de passe après la connexion.</strong></p>
  <p>Cordialement,<br>L'équipe HILFE Enterprise</p>
</div>
{{end}}
`))

// Render produces the subject and HTML body for a template job.
func Render(name string, data map[string]any) (subject, html string, err error) {
	switch name {
	case TemplateTempPassword:
		subject = "Votre mot de passe HILFE Enterprise"
	case TemplatePasswordReset:
		subject = "Réinitialisation de votre mot de passe HILFE Enterprise"
	default:
		return "", "", fmt.Errorf("unknown email template %q", name)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", "", err
	}
	return subject, buf.String(), nil
}
