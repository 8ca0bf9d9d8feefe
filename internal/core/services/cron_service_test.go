package services

import (
	"context"
	"errors"
	"testing"

	"assurgest/internal/config"
	"assurgest/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCronAddJobRejectsBadSpec(t *testing.T) {
	cron := NewCronService(config.CronConfig{}, nil, nil, nil, nil)
	require.Error(t, cron.AddJob("every minute", "bad", func(context.Context) error { return nil }))
	require.NoError(t, cron.AddJob("*/5 * * * *", "ok", func(context.Context) error { return nil }))
}

func TestCronExecuteRecordsOutcome(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	cron := NewCronService(config.CronConfig{}, nil, nil, nil, m)

	cron.execute("purge", func(context.Context) error { return nil })
	cron.execute("purge", func(context.Context) error { return errors.New("boom") })

	assert.Equal(t, 1.0, testutil.ToFloat64(m.JobRuns.WithLabelValues("purge", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.JobRuns.WithLabelValues("purge", "error")))
}

func TestCronDisabledDoesNotSchedule(t *testing.T) {
	cron := NewCronService(config.CronConfig{Enabled: false}, nil, nil, nil, nil)
	require.NoError(t, cron.Start())
	cron.Stop()
}
