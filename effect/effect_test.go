package effect

import (
	"testing"
	"time"

	"github.com/fogleman/ease"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFadeDefaultsToLinear(t *testing.T) {
	t.Parallel()

	fade, err := NewFade(time.Second, "", 0)
	require.NoError(t, err)
	assert.Equal(t, "linear", fade.Ease)
	assert.InDelta(t, 0.5, fade.Progress(500*time.Millisecond), 1e-9)
}

func TestNewFadeRejectsBadInput(t *testing.T) {
	t.Parallel()

	_, err := NewFade(time.Second, "wobbly", 0)
	require.Error(t, err)

	_, err = NewFade(-time.Second, "linear", 0)
	require.Error(t, err)
}

func TestFadeProgress(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		easeName string
		easingFn ease.Function
		delay    time.Duration
		elapsed  time.Duration
		expected float64
	}{
		{"linear", ease.Linear, 0, 0, 0},
		{"linear", ease.Linear, 0, 250 * time.Millisecond, 0.25},
		{"linear", ease.Linear, 0, 2 * time.Second, 1},
		{"linear", ease.Linear, 500 * time.Millisecond, 500 * time.Millisecond, 0},
		{"linear", ease.Linear, 500 * time.Millisecond, time.Second, 0.5},
		{"easeInQuart", ease.InQuart, 0, 400 * time.Millisecond, ease.InQuart(0.4)},
		{"easeInOutCubic", ease.InOutCubic, 0, 700 * time.Millisecond, ease.InOutCubic(0.7)},
	}

	for _, testCase := range testCases {
		fade, err := NewFade(time.Second, testCase.easeName, testCase.delay)
		require.NoError(t, err)
		assert.InDelta(t, testCase.expected, fade.Progress(testCase.elapsed), 1e-9, "ease=%s elapsed=%v", testCase.easeName, testCase.elapsed)
	}
}

func TestZeroDurationFadeCompletesImmediately(t *testing.T) {
	t.Parallel()

	fade, err := NewFade(0, "linear", 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, fade.Progress(time.Millisecond))
}

func TestEnvelope(t *testing.T) {
	t.Parallel()

	in, err := NewFade(time.Second, "linear", 0)
	require.NoError(t, err)
	out, err := NewFade(time.Second, "linear", 0)
	require.NoError(t, err)

	total := 4 * time.Second

	assert.InDelta(t, 0.0, Envelope(0, total, in, out), 1e-9)
	assert.InDelta(t, 0.5, Envelope(500*time.Millisecond, total, in, out), 1e-9)
	assert.InDelta(t, 1.0, Envelope(2*time.Second, total, in, out), 1e-9)
	assert.InDelta(t, 0.5, Envelope(3500*time.Millisecond, total, in, out), 1e-9)
	assert.InDelta(t, 0.0, Envelope(total, total, in, out), 1e-9)

	// no fades at all means full level throughout
	assert.Equal(t, 1.0, Envelope(time.Second, total, nil, nil))
}
