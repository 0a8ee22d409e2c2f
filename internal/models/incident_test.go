package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyStatus_FirstResponseSetOnce(t *testing.T) {
	inc := &Incident{Status: StatusOpen}
	t0 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	inc.ApplyStatus(StatusInProgress, t0)
	require.NotNil(t, inc.ResponseTime.FirstResponse)
	assert.Equal(t, t0, *inc.ResponseTime.FirstResponse)

	inc.ApplyStatus(StatusInProgress, t0.Add(time.Hour))
	assert.Equal(t, t0, *inc.ResponseTime.FirstResponse)
	assert.Equal(t, StatusInProgress, inc.Status)
}

func TestApplyStatus_ResolvedOverwritten(t *testing.T) {
	inc := &Incident{Status: StatusOpen}
	t0 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	inc.ApplyStatus(StatusResolved, t0)
	inc.ApplyStatus(StatusOpen, t0.Add(time.Minute))
	inc.ApplyStatus(StatusResolved, t0.Add(2*time.Minute))

	require.NotNil(t, inc.ResponseTime.Resolved)
	assert.Equal(t, t0.Add(2*time.Minute), *inc.ResponseTime.Resolved)
}

func TestApplyStatus_OpenToClosedLeavesTimestampsEmpty(t *testing.T) {
	inc := &Incident{Status: StatusOpen}

	inc.ApplyStatus(StatusClosed, time.Now())

	assert.Equal(t, StatusClosed, inc.Status)
	assert.Nil(t, inc.ResponseTime.FirstResponse)
	assert.Nil(t, inc.ResponseTime.Resolved)
}

func TestIncidentStatus_Valid(t *testing.T) {
	for _, s := range []IncidentStatus{StatusOpen, StatusInProgress, StatusResolved, StatusClosed} {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, IncidentStatus("reopened").Valid())
}
