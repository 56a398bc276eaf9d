package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Every field the handlers validate must resolve to its own message.
func TestFieldMessagesComplete(t *testing.T) {
	fields := []string{
		// register
		"firstName", "lastName", "email", "password", "passwordConfirmation",
		// expenses
		"id", "title", "amount", "date", "category", "description",
		// categories
		"name",
	}
	for _, f := range fields {
		assert.Truef(t, HasField(f), "no message for field %q", f)
		assert.NotEqual(t, ValueEmpty, ForField(f))
	}
	assert.Len(t, fieldMessages, len(fields))
}

func TestForFieldFallback(t *testing.T) {
	assert.Equal(t, ValueEmpty, ForField("colour"))
	assert.Equal(t, NoTitle, ForField("title"))
}
