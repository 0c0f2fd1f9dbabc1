package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryToLog(t *testing.T) {
	log, err := Entry{
		Action:       ActionDelete,
		ResourceType: ResourceItem,
		ResourceID:   "item-1",
		UserID:       "admin-1",
		Changes:      map[string]bool{"deleted": true},
	}.ToLog()

	require.NoError(t, err)
	assert.Equal(t, ActionDelete, log.Action)
	assert.Equal(t, "item-1", log.ResourceID)
	assert.JSONEq(t, `{"deleted":true}`, string(log.Changes))
}

func TestEntryToLogWithoutChanges(t *testing.T) {
	log, err := Entry{Action: ActionToggle, ResourceType: ResourceUser, UserID: "u"}.ToLog()
	require.NoError(t, err)
	assert.Nil(t, log.Changes)
}

func TestEntryToLogRejectsUnmarshalable(t *testing.T) {
	_, err := Entry{Action: ActionUpdate, Changes: make(chan int)}.ToLog()
	assert.Error(t, err)
}
