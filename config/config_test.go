// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/goaktkit/kernel/errors"
	"github.com/goaktkit/kernel/log"
)

func TestConfig(t *testing.T) {
	t.Run("With defaults", func(t *testing.T) {
		cfg := Default()
		require.NoError(t, cfg.Validate())
		assert.Equal(t, DefaultThroughput, cfg.Throughput)
		assert.Equal(t, GoroutineDispatcher, cfg.Dispatcher)
		assert.Equal(t, log.InfoLevel, cfg.LogLevel)
	})
	t.Run("With invalid settings", func(t *testing.T) {
		cfg := Default()
		cfg.Throughput = 0
		cfg.Dispatcher = "fibers"
		cfg.AskTimeout = -time.Second

		err := cfg.Validate()
		require.ErrorIs(t, err, errors.ErrInvalidConfig)
		assert.Contains(t, err.Error(), "throughput")
		assert.Contains(t, err.Error(), "fibers")
		assert.Contains(t, err.Error(), "askTimeout")
	})
	t.Run("With worker pool without shards", func(t *testing.T) {
		cfg := Default()
		cfg.Dispatcher = WorkerPoolDispatcher
		cfg.WorkerPoolShards = 0
		require.ErrorIs(t, cfg.Validate(), errors.ErrInvalidConfig)
	})
}

func TestParse(t *testing.T) {
	t.Run("With full document", func(t *testing.T) {
		t.Setenv("KERNEL_THROUGHPUT", "50")
		document := `
throughput: ${KERNEL_THROUGHPUT}
dispatcher: workerpool
workerPoolShards: 4
deadLetterThrottleInterval: 2s
deadLetterThrottleCount: 3
developerSupervisionLogging: true
logLevel: debug
askTimeout: 250ms
metricsEnabled: true
`
		cfg, err := Parse([]byte(document))
		require.NoError(t, err)
		assert.Equal(t, 50, cfg.Throughput)
		assert.Equal(t, WorkerPoolDispatcher, cfg.Dispatcher)
		assert.Equal(t, 4, cfg.WorkerPoolShards)
		assert.Equal(t, 2*time.Second, cfg.DeadLetterThrottleInterval)
		assert.EqualValues(t, 3, cfg.DeadLetterThrottleCount)
		assert.True(t, cfg.DeveloperSupervisionLogging)
		assert.Equal(t, log.DebugLevel, cfg.LogLevel)
		assert.Equal(t, 250*time.Millisecond, cfg.AskTimeout)
		assert.True(t, cfg.MetricsEnabled)
		// untouched fields keep their defaults
		assert.Equal(t, DefaultShutdownTimeout, cfg.ShutdownTimeout)
	})
	t.Run("With malformed document", func(t *testing.T) {
		_, err := Parse([]byte("throughput: [1, 2"))
		require.Error(t, err)
	})
	t.Run("With invalid values", func(t *testing.T) {
		_, err := Parse([]byte("throughput: -1\ninitMaxRetries: 0\n"))
		require.ErrorIs(t, err, errors.ErrInvalidConfig)
		assert.GreaterOrEqual(t, len(multierr.Errors(unwrapJoined(err))), 2)
	})
	t.Run("With unknown log level", func(t *testing.T) {
		_, err := Parse([]byte("logLevel: chatty\n"))
		require.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kernel.yaml")
	require.NoError(t, os.WriteFile(path, []byte("throughput: 10\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Throughput)

	out, err := cfg.Marshal()
	require.NoError(t, err)
	roundTrip, err := Parse(out)
	require.NoError(t, err)
	assert.Equal(t, cfg, roundTrip)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

// unwrapJoined returns the validation error joined with ErrInvalidConfig
func unwrapJoined(err error) error {
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return err
	}
	errs := joined.Unwrap()
	return errs[len(errs)-1]
}
