package api

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityRecord_Time(t *testing.T) {
	r := ActivityRecord{Timestamp: "2024-03-12T09:15:00Z"}
	assert.Equal(t, time.Date(2024, 3, 12, 9, 15, 0, 0, time.UTC), r.Time())

	// offsets are honored
	r = ActivityRecord{Timestamp: "2024-03-12T09:15:00-05:00"}
	assert.Equal(t, int64(1710252900), r.Time().Unix())

	// garbage sorts as zero time
	r = ActivityRecord{Timestamp: "last tuesday"}
	assert.True(t, r.Time().IsZero())
}

func TestActivityRecord_DetailShapes(t *testing.T) {
	const userActivity = `{
		"id": "a1",
		"timestamp": "2024-03-12T09:15:00Z",
		"activity_type": "user_registered",
		"details": {
			"user_id": "u77",
			"user_email": "rider@example.com",
			"user_role": "rider"
		}
	}`
	var record ActivityRecord
	require.NoError(t, json.Unmarshal([]byte(userActivity), &record))
	assert.Equal(t, "user_registered", record.ActivityType)
	assert.Equal(t, "rider@example.com", record.Details["user_email"])

	const reservationActivity = `{
		"id": "a2",
		"timestamp": "2024-03-12T10:00:00Z",
		"activity_type": "reservation_completed",
		"details": {
			"reservation_id": "r9",
			"status": "completed",
			"total_price": 42.5
		}
	}`
	require.NoError(t, json.Unmarshal([]byte(reservationActivity), &record))
	assert.Equal(t, 42.5, record.Details["total_price"])
}
