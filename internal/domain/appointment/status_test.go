package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmiguelviana/pet-connect-sub000/internal/models"
)

func TestStatusTransitions(t *testing.T) {
	assert.NoError(t, CanConfirm(StatusScheduled))
	assert.Error(t, CanConfirm(StatusConfirmed))
	assert.Error(t, CanConfirm(StatusCompleted))

	assert.NoError(t, CanStart(StatusScheduled))
	assert.NoError(t, CanStart(StatusConfirmed))
	assert.Error(t, CanStart(StatusInProgress))
	assert.Error(t, CanStart(StatusCancelled))

	assert.NoError(t, CanComplete(StatusInProgress))
	assert.Error(t, CanComplete(StatusScheduled))
	assert.Error(t, CanComplete(StatusConfirmed))

	assert.NoError(t, CanCancel(StatusScheduled))
	assert.NoError(t, CanCancel(StatusConfirmed))
	assert.NoError(t, CanCancel(StatusInProgress))
	assert.Error(t, CanCancel(StatusCompleted))
	assert.Error(t, CanCancel(StatusCancelled))

	assert.NoError(t, CanMarkNoShow(StatusScheduled))
	assert.NoError(t, CanMarkNoShow(StatusConfirmed))
	assert.Error(t, CanMarkNoShow(StatusInProgress))
}

func TestBlocks(t *testing.T) {
	assert.True(t, Blocks(StatusScheduled))
	assert.True(t, Blocks(StatusConfirmed))
	assert.True(t, Blocks(StatusInProgress))
	assert.True(t, Blocks(StatusCompleted))

	// Cancelados e faltas devolvem o horário para a agenda
	assert.False(t, Blocks(StatusCancelled))
	assert.False(t, Blocks(StatusNoShow))
}

func TestLifecycleMutators(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	ap := &models.Appointment{Status: string(StatusScheduled)}

	require.NoError(t, Confirm(ap))
	assert.Equal(t, string(StatusConfirmed), ap.Status)

	require.NoError(t, Start(ap))
	assert.Equal(t, string(StatusInProgress), ap.Status)

	require.NoError(t, Complete(ap, now))
	assert.Equal(t, string(StatusCompleted), ap.Status)
	require.NotNil(t, ap.CompletedAt)
	assert.Equal(t, now, *ap.CompletedAt)

	// Concluído não cancela
	assert.Error(t, Cancel(ap, now))
	assert.Nil(t, ap.CancelledAt)
}

func TestCancelStampsTime(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	ap := &models.Appointment{Status: string(StatusScheduled)}

	require.NoError(t, Cancel(ap, now))
	assert.Equal(t, string(StatusCancelled), ap.Status)
	require.NotNil(t, ap.CancelledAt)
	assert.Equal(t, now, *ap.CancelledAt)
}
