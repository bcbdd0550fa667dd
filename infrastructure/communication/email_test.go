package communication

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailInput(t *testing.T) {
	in, err := Email{
		From:    "reports@gymdesk.io",
		To:      []string{"manager@northside.gym"},
		Subject: "Attendance 2024-03-05",
		Text:    "12 present",
	}.input()
	require.NoError(t, err)

	assert.Equal(t, "reports@gymdesk.io", *in.Source)
	assert.Equal(t, []string{"manager@northside.gym"}, in.Destination.ToAddresses)
	assert.Equal(t, "Attendance 2024-03-05", *in.Message.Subject.Data)
	assert.Equal(t, "12 present", *in.Message.Body.Text.Data)
	assert.Nil(t, in.Message.Body.Html)
}

func TestEmailInputValidation(t *testing.T) {
	_, err := Email{To: []string{"a@b.c"}}.input()
	assert.Error(t, err)

	_, err = Email{From: "reports@gymdesk.io"}.input()
	assert.Error(t, err)
}
