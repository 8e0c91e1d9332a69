package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidCategory(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, IsValidCategory(c), c)
	}
	assert.False(t, IsValidCategory("all"))
	assert.False(t, IsValidCategory("general"))
	assert.False(t, IsValidCategory(""))
}

func TestCheckupJSONFieldNames(t *testing.T) {
	// The JSON keys are the on-disk contract shared with snapshots
	// written by earlier versions of the app.
	data, err := json.Marshal(Checkup{ID: "1", Title: "t", Category: CategoryGeneral})
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &fields))
	for _, key := range []string{"id", "title", "category", "doctor", "location", "notes", "date", "createdAt"} {
		_, ok := fields[key]
		assert.True(t, ok, key)
	}
}

func TestReminderJSONFieldNames(t *testing.T) {
	data, err := json.Marshal(Reminder{ID: "1", CheckupID: "c1", IsActive: true})
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &fields))
	for _, key := range []string{"id", "checkupId", "title", "message", "reminderDate", "isActive", "createdAt"} {
		_, ok := fields[key]
		assert.True(t, ok, key)
	}
}
