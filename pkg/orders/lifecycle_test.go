package orders

import (
	"testing"

	"github.com/drezzup/storefront/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextStatus(t *testing.T) {
	next, ok := NextStatus(models.StatusNew)
	require.True(t, ok)
	assert.Equal(t, models.StatusPaid, next)

	next, ok = NextStatus(models.StatusPaid)
	require.True(t, ok)
	assert.Equal(t, models.StatusDone, next)

	_, ok = NextStatus(models.StatusDone)
	assert.False(t, ok)

	_, ok = NextStatus("cancelled")
	assert.False(t, ok)
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(models.StatusNew, models.StatusPaid))
	assert.True(t, CanTransition(models.StatusPaid, models.StatusDone))

	// No skipping, no going back.
	assert.False(t, CanTransition(models.StatusNew, models.StatusDone))
	assert.False(t, CanTransition(models.StatusPaid, models.StatusNew))
	assert.False(t, CanTransition(models.StatusDone, models.StatusPaid))
	assert.False(t, CanTransition(models.StatusDone, models.StatusNew))
}

func TestLifecycleReachesDoneInExactlyTwoSteps(t *testing.T) {
	status := models.StatusNew
	steps := 0
	for {
		next, ok := NextStatus(status)
		if !ok {
			break
		}
		status = next
		steps++
	}

	assert.Equal(t, models.StatusDone, status)
	assert.Equal(t, 2, steps)
}
