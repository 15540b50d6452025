package scheduler

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopSyncer struct{}

func (nopSyncer) SyncWeek(context.Context, int, int) error { return nil }

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestSchedulerStartRequiresJobs(t *testing.T) {
	s := NewScheduler(testLogger())
	err := s.Start()
	require.Error(t, err)
	assert.False(t, s.IsRunning())
}

func TestSchedulerStartStop(t *testing.T) {
	s := NewScheduler(testLogger())

	err := s.ScheduleEdgeScan("0 */6 * * *", func(context.Context) error { return nil })
	require.NoError(t, err)

	err = s.ScheduleWeekSync("30 * * * *", nopSyncer{}, 10, 2025)
	require.NoError(t, err)

	require.NoError(t, s.Start())
	assert.True(t, s.IsRunning())
	assert.Len(t, s.Entries(), 2)
	assert.False(t, s.GetNextRun().IsZero())

	require.NoError(t, s.Stop())
	assert.False(t, s.IsRunning())
}

func TestSchedulerRejectsInvalidExpression(t *testing.T) {
	s := NewScheduler(testLogger())
	err := s.ScheduleEdgeScan("not a cron expr", func(context.Context) error { return nil })
	require.Error(t, err)
}

func TestSchedulerRejectsSchedulingWhileRunning(t *testing.T) {
	s := NewScheduler(testLogger())
	require.NoError(t, s.ScheduleEdgeScan("@hourly", func(context.Context) error { return nil }))
	require.NoError(t, s.Start())
	defer func() { _ = s.Stop() }()

	err := s.ScheduleWeekSync("@hourly", nopSyncer{}, 10, 2025)
	require.Error(t, err)
}
