package utils

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLerp(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		p0, p1 float64
	}{
		{0, 1},
		{-5, 5},
		{250, 15},
		{1.5, 1.5},
	}

	for _, testCase := range testCases {
		assert.Equal(t, testCase.p0, Lerp(testCase.p0, testCase.p1, 0))
		assert.Equal(t, testCase.p1, Lerp(testCase.p0, testCase.p1, 1))
		assert.Equal(t, Mid(testCase.p0, testCase.p1), Lerp(testCase.p0, testCase.p1, 0.5))
	}
}

func TestNorm(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, Norm(10.0, 10.0, 20.0))
	assert.Equal(t, 0.5, Norm(15.0, 10.0, 20.0))
	assert.Equal(t, 1.0, Norm(20.0, 10.0, 20.0))
	assert.Equal(t, float32(0.25), Norm[float32](1, 0, 4))
}

func TestClamp(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, Clamp(-0.5, 0, 1))
	assert.Equal(t, 1.0, Clamp(1.5, 0, 1))
	assert.Equal(t, 0.3, Clamp(0.3, 0, 1))
	// bounds may arrive in either order
	assert.Equal(t, 1.0, Clamp(7.0, 1, 0))
}

func TestRandomFloatBetween(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 42.0, RandomFloatBetween(42.0, 42.0))

	for i := 0; i < 1000; i++ {
		v := RandomFloatBetween(-3.0, 9.0)
		require.GreaterOrEqual(t, v, -3.0)
		require.Less(t, v, 9.0)
	}
}

func TestRandomFloatBetweenWithIsReproducible(t *testing.T) {
	t.Parallel()

	a := rand.New(rand.NewSource(7))
	b := rand.New(rand.NewSource(7))
	for i := 0; i < 10; i++ {
		require.Equal(t, RandomFloatBetweenWith(a, 100.0, 500.0), RandomFloatBetweenWith(b, 100.0, 500.0))
	}
}

func TestRandomIntBetween(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewSource(1))
	seen := map[int]bool{}
	for i := 0; i < 2000; i++ {
		v := RandomIntBetweenWith(r, 2.0, 6.0)
		require.GreaterOrEqual(t, v, 2)
		require.Less(t, v, 6)
		seen[v] = true
	}
	assert.Len(t, seen, 4)

	// the floor is applied to the float draw, matching RandomFloatBetweenWith on the same source
	a := rand.New(rand.NewSource(3))
	b := rand.New(rand.NewSource(3))
	assert.Equal(t, int(math.Floor(RandomFloatBetweenWith(a, -2.0, 2.0))), RandomIntBetweenWith(b, -2.0, 2.0))
}

// topSource always yields the largest Int63 that still maps to a Float64 below 1.
type topSource struct{}

func (topSource) Int63() int64 { return 1<<63 - 1024 }

func (topSource) Seed(int64) {}

func TestRandomBetweenNeverReachesMax(t *testing.T) {
	t.Parallel()

	r := rand.New(topSource{})
	require.Less(t, r.Float64(), 1.0)

	assert.Less(t, RandomFloatBetweenWith[float32](r, 0, 4), float32(4))
	assert.Equal(t, 3, RandomIntBetweenWith[float32](r, 0, 4))
	assert.Less(t, RandomFloatBetweenWith(r, 0.0, 4.0), 4.0)
	assert.Equal(t, 3, RandomIntBetweenWith(r, 0.0, 4.0))
	assert.Less(t, RandomFloatBetweenWith(r, 1e17, 1e17+16), 1e17+16)

	// an empty range still returns its bound
	assert.Equal(t, float32(4), RandomFloatBetweenWith[float32](r, 4, 4))
}

func TestIsCallable(t *testing.T) {
	t.Parallel()

	var nilFn func() bool

	assert.True(t, IsCallable(func() bool { return true }))
	assert.True(t, IsCallable(func(ctx context.Context) (bool, error) { return false, nil }))
	assert.False(t, IsCallable(nilFn))
	assert.False(t, IsCallable(nil))
	assert.False(t, IsCallable(true))
	assert.False(t, IsCallable("func"))
}
