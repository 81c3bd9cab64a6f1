package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldRedirectToExternalTool(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  bool
	}{
		{"direct answer", "Votre contrat couvre les dégâts des eaux.", false},
		{"french refusal", "Je ne sais pas répondre à cette question.", true},
		{"french apology", "Désolé, cette information n'est pas disponible.", true},
		{"english apology", "Sorry, I cannot help with that.", true},
		{"case insensitive", "JE NE PEUX PAS vous aider.", true},
		{"empty reply", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldRedirectToExternalTool(tt.reply))
		})
	}
}
