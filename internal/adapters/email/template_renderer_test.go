package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trailreg/internal/domain"
)

func TestTemplateRenderer_RegistrationConfirmation(t *testing.T) {
	r := NewTemplateRenderer()

	data := &domain.RegistrationEmailData{
		Email:         "alice@example.com",
		FullName:      "Alice Runner",
		EventTitle:    "Rinjani Trail 25K",
		EventDate:     "17 August 2025",
		EventLocation: "Lombok",
		BookingCode:   "RITW25-483920114",
		PaymentAmount: 350000,
	}
	subject, html, text, err := r.Render("registration_confirmation", data)
	require.NoError(t, err)

	assert.Contains(t, subject, "Rinjani Trail 25K")
	assert.Contains(t, subject, "RITW25-483920114")
	for _, body := range []string{html, text} {
		assert.Contains(t, body, "Alice Runner")
		assert.Contains(t, body, "RITW25-483920114")
		assert.Contains(t, body, "Lombok")
		assert.Contains(t, body, "350000")
	}
}

func TestTemplateRenderer_UnknownTemplate(t *testing.T) {
	r := NewTemplateRenderer()
	_, _, _, err := r.Render("no_such_template", nil)
	assert.Error(t, err)
}
