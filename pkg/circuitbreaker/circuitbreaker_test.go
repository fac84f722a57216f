package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDown = errors.New("connection refused")

// newTestBreaker 连续失败3次熔断,时钟可控
func newTestBreaker(cfg Config) (*CircuitBreaker, *time.Time) {
	if cfg.ReadyToTrip == nil {
		cfg.ReadyToTrip = func(c Counts) bool { return c.ConsecutiveFailures >= 3 }
	}
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cb := New(cfg)
	cb.now = func() time.Time { return clock }
	return cb, &clock
}

func fail() error    { return errDown }
func succeed() error { return nil }

func TestClosedState(t *testing.T) {
	cb, _ := newTestBreaker(Config{})

	for i := 0; i < 10; i++ {
		require.NoError(t, cb.Execute(succeed))
	}
	assert.Equal(t, StateClosed, cb.State())
	assert.EqualValues(t, 10, cb.Counts().TotalSuccesses)
}

func TestTripsAfterConsecutiveFailures(t *testing.T) {
	var transitions []string
	cb, _ := newTestBreaker(Config{OnStateChange: func(from, to State) {
		transitions = append(transitions, from.String()+"->"+to.String())
	}})

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, cb.Execute(fail), errDown)
	}
	assert.Equal(t, StateOpen, cb.State())

	called := false
	err := cb.Execute(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrOpenState)
	assert.False(t, called, "打开状态不应执行请求")
	assert.Equal(t, []string{"CLOSED->OPEN"}, transitions)
}

func TestSuccessResetsConsecutiveFailures(t *testing.T) {
	cb, _ := newTestBreaker(Config{})

	_ = cb.Execute(fail)
	_ = cb.Execute(fail)
	require.NoError(t, cb.Execute(succeed))
	_ = cb.Execute(fail)
	_ = cb.Execute(fail)

	assert.Equal(t, StateClosed, cb.State())
}

func TestHalfOpen_RecoversOnSuccess(t *testing.T) {
	cb, clock := newTestBreaker(Config{Timeout: time.Minute})
	for i := 0; i < 3; i++ {
		_ = cb.Execute(fail)
	}

	*clock = clock.Add(time.Minute + time.Second)
	assert.Equal(t, StateHalfOpen, cb.State())

	require.NoError(t, cb.Execute(succeed))
	assert.Equal(t, StateClosed, cb.State())
}

func TestHalfOpen_ReopensOnFailure(t *testing.T) {
	cb, clock := newTestBreaker(Config{Timeout: time.Minute})
	for i := 0; i < 3; i++ {
		_ = cb.Execute(fail)
	}

	*clock = clock.Add(2 * time.Minute)
	assert.ErrorIs(t, cb.Execute(fail), errDown)
	assert.Equal(t, StateOpen, cb.State())
}

func TestHalfOpen_LimitsProbes(t *testing.T) {
	cb, clock := newTestBreaker(Config{Timeout: time.Minute, MaxRequests: 1})
	for i := 0; i < 3; i++ {
		_ = cb.Execute(fail)
	}
	*clock = clock.Add(2 * time.Minute)

	// 探测请求尚未返回时,其他请求被拒绝
	err := cb.Execute(func() error {
		assert.ErrorIs(t, cb.Execute(succeed), ErrOpenState)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, StateClosed, cb.State())
}

func TestIsFailure_IgnoresBusinessErrors(t *testing.T) {
	errNotFound := errors.New("not found")
	cb, _ := newTestBreaker(Config{IsFailure: func(err error) bool {
		return err != nil && !errors.Is(err, errNotFound)
	}})

	for i := 0; i < 5; i++ {
		assert.ErrorIs(t, cb.Execute(func() error { return errNotFound }), errNotFound)
	}
	assert.Equal(t, StateClosed, cb.State())
	assert.EqualValues(t, 5, cb.Counts().TotalSuccesses)
}

func TestInterval_ResetsCounts(t *testing.T) {
	cb, clock := newTestBreaker(Config{Interval: 10 * time.Second})

	_ = cb.Execute(fail)
	_ = cb.Execute(fail)
	*clock = clock.Add(11 * time.Second)
	_ = cb.Execute(fail)

	assert.Equal(t, StateClosed, cb.State())
	assert.EqualValues(t, 1, cb.Counts().ConsecutiveFailures)
}
