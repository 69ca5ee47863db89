/*
 * copyright (c) 2019 juniper networks, inc. all rights reserved.
 */

package retry

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type mockLogger struct {
	calls int
}

func (m *mockLogger) Debugf(string, ...interface{}) {
	m.calls++
}

func TestDo(t *testing.T) {
	sampleErr := errors.New("sample error")
	var runCounter int
	tests := []struct {
		name         string
		f            Func
		expectedRuns int
		wantErr      bool
	}{{
		name: "failing function",
		f: func() (bool, error) {
			return false, sampleErr
		},
		expectedRuns: 1,
		wantErr:      true,
	}, {
		name: "succeeding function",
		f: func() (bool, error) {
			return false, nil
		},
		expectedRuns: 1,
	}, {
		name: "function succeeds after 3 times",
		f: func() (bool, error) {
			if runCounter < 3 {
				return true, sampleErr
			}
			return false, nil
		},
		expectedRuns: 3,
	}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runCounter = 0
			log := &mockLogger{}
			err := Do(func() (bool, error) {
				runCounter++
				return tt.f()
			}, WithLog(log))
			assert.Equal(t, tt.wantErr, err != nil)
			assert.Equal(t, tt.expectedRuns, runCounter)
			assert.Equal(t, tt.expectedRuns-1, log.calls)
		})
	}
}

func TestDoTimesOut(t *testing.T) {
	start := time.Now()
	err := Do(func() (bool, error) {
		return true, nil
	}, WithInterval(10*time.Millisecond), WithTimeout(50*time.Millisecond))

	assert.Equal(t, ErrTimeout, err)
	assert.True(t, time.Since(start) < 5*time.Second)
}

func TestDoTimeoutKeepsLastError(t *testing.T) {
	err := Do(func() (bool, error) {
		return true, errors.New("still alive")
	}, WithInterval(time.Millisecond), WithTimeout(5*time.Millisecond))

	assert.True(t, errors.Is(err, ErrTimeout))
	assert.Contains(t, err.Error(), "still alive")
}
