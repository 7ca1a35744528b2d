package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvery_RejectsNonPositiveInterval(t *testing.T) {
	s := New()

	assert.Error(t, s.Every(0, "noop", func() {}))
	assert.Error(t, s.Every(-time.Minute, "noop", func() {}))
}

func TestScheduler_FiresJob(t *testing.T) {
	s := New()
	fired := make(chan struct{}, 1)

	require.NoError(t, s.Every(time.Second, "probe", func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	}))

	s.Start()
	defer s.Stop()

	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("scheduled job did not fire")
	}
}

func TestScheduler_StopPreventsFurtherRuns(t *testing.T) {
	s := New()
	ran := make(chan struct{}, 8)

	require.NoError(t, s.Every(time.Second, "probe", func() {
		ran <- struct{}{}
	}))

	s.Start()
	s.Stop()

	select {
	case <-ran:
		t.Fatal("job ran after Stop")
	case <-time.After(1500 * time.Millisecond):
	}
}
