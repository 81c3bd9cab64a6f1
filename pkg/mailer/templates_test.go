package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTempPassword(t *testing.T) {
	subject, html, err := Render(TemplateTempPassword, map[string]any{
		"Name":        "Marie Dupont",
		"Password":    "x7Km2pQr",
		"FrontendURL": "https://app.example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Votre mot de passe HILFE Enterprise", subject)
	assert.Contains(t, html, "Marie Dupont")
	assert.Contains(t, html, "x7Km2pQr")
	assert.Contains(t, html, "https://app.example.com")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, err := Render("no_such_template", nil)
	assert.Error(t, err)
}
