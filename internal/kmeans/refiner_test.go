package kmeans

import (
	"math/rand"
	"testing"

	"github.com/hupe1980/lloyd/point"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, r *Refiner) {
	t.Helper()
	for i := 0; i < 1000; i++ {
		done, err := r.Step()
		require.NoError(t, err)
		if done {
			return
		}
	}
	t.Fatal("refiner did not converge")
}

func TestRefiner_ScenarioA(t *testing.T) {
	points := pts(
		[2]float64{0, 0}, [2]float64{1, 0}, [2]float64{0, 1},
		[2]float64{10, 10}, [2]float64{11, 10}, [2]float64{10, 11},
	)

	r, err := NewRefiner(points, pts([2]float64{0, 0}, [2]float64{10, 10}), Config{})
	require.NoError(t, err)
	run(t, r)

	assert.True(t, r.Converged())
	assert.LessOrEqual(t, r.Iterations(), 3)

	clusters := r.Clusters()
	require.Len(t, clusters, 2)
	assert.ElementsMatch(t, points[:3], clusters[0].Points)
	assert.ElementsMatch(t, points[3:], clusters[1].Points)
}

func TestRefiner_ScenarioB(t *testing.T) {
	points := pts([2]float64{0, 0}, [2]float64{4, 1}, [2]float64{9, 9}, [2]float64{-3, 2})

	means, err := Initialize(points, len(points), rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	r, err := NewRefiner(points, means, Config{})
	require.NoError(t, err)
	run(t, r)

	assert.Equal(t, 1, r.Iterations())
	clusters := r.Clusters()
	require.Len(t, clusters, len(points))
	for _, c := range clusters {
		require.Equal(t, 1, c.Len())
		assert.Equal(t, c.Mean, c.Points[0])
	}
}

func TestRefiner_ScenarioC(t *testing.T) {
	points := pts([2]float64{3, 3}, [2]float64{3, 3}, [2]float64{3, 3})

	r, err := NewRefiner(points, pts([2]float64{3, 3}), Config{})
	require.NoError(t, err)
	run(t, r)

	assert.Equal(t, 1, r.Iterations())
	clusters := r.Clusters()
	require.Len(t, clusters, 1)
	assert.Equal(t, point.New(3, 3), clusters[0].Mean)
	assert.Equal(t, points, clusters[0].Points)
}

func TestRefiner_Settle(t *testing.T) {
	t.Run("fixed point", func(t *testing.T) {
		points := pts([2]float64{3, 3}, [2]float64{3, 3})

		r, err := NewRefiner(points, pts([2]float64{3, 3}), Config{})
		require.NoError(t, err)

		done, err := r.Settle()
		require.NoError(t, err)
		assert.True(t, done)
		assert.True(t, r.Converged())
		assert.Equal(t, 1, r.Iterations())
	})

	t.Run("moving means", func(t *testing.T) {
		points := pts([2]float64{0, 0}, [2]float64{2, 0}, [2]float64{10, 0}, [2]float64{12, 0})
		means := pts([2]float64{0, 0}, [2]float64{2, 0})

		r, err := NewRefiner(points, means, Config{})
		require.NoError(t, err)
		before := r.Clusters()

		done, err := r.Settle()
		require.NoError(t, err)
		assert.False(t, done)
		assert.False(t, r.Converged())
		assert.Equal(t, 1, r.Iterations())
		assert.Equal(t, means, r.Means())
		assert.Equal(t, before, r.Clusters())

		// Stepping afterwards behaves as if Settle never ran.
		done, err = r.Step()
		require.NoError(t, err)
		assert.False(t, done)
		assert.Equal(t, 2, r.Iterations())
	})
}

func TestRefiner_ConvergedClustersComeFromPreviousMeans(t *testing.T) {
	points := pts([2]float64{0, 0}, [2]float64{2, 0}, [2]float64{10, 0}, [2]float64{12, 0})

	r, err := NewRefiner(points, pts([2]float64{0, 0}, [2]float64{2, 0}), Config{})
	require.NoError(t, err)
	run(t, r)

	for _, c := range r.Clusters() {
		assert.Contains(t, r.Means(), c.Mean)
	}
	assert.ElementsMatch(t, pts([2]float64{1, 0}, [2]float64{11, 0}), r.Means())
}

func TestRefiner_MonotonicSSE(t *testing.T) {
	rnd := rand.New(rand.NewSource(11))
	points := make([]point.Point, 300)
	for i := range points {
		cx := float64(i%3) * 20
		points[i] = point.New(cx+rnd.NormFloat64()*4, rnd.NormFloat64()*4)
	}

	for seed := int64(0); seed < 5; seed++ {
		means, err := Initialize(points, 4, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)

		r, err := NewRefiner(points, means, Config{Rounding: point.Exact})
		require.NoError(t, err)

		prev := r.SSE()
		for i := 0; i < 1000; i++ {
			done, err := r.Step()
			require.NoError(t, err)
			cur := r.SSE()
			assert.LessOrEqual(t, cur, prev*(1+1e-9))
			prev = cur
			if done {
				break
			}
		}
		assert.True(t, r.Converged())
	}
}

func TestRefiner_IdempotentAtConvergence(t *testing.T) {
	rnd := rand.New(rand.NewSource(5))
	points := make([]point.Point, 200)
	for i := range points {
		points[i] = point.New(float64(rnd.Intn(50)), float64(rnd.Intn(50)))
	}
	means, err := Initialize(points, 3, rnd)
	require.NoError(t, err)

	r, err := NewRefiner(points, means, Config{})
	require.NoError(t, err)
	run(t, r)

	before := r.Clusters()
	iterations := r.Iterations()

	done, err := r.Step()
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, before, r.Clusters())
	assert.Equal(t, iterations, r.Iterations())

	again, err := Partition(r.Means(), points)
	require.NoError(t, err)
	assert.Equal(t, before, again)
}

func TestRefiner_EmptyDrop(t *testing.T) {
	points := pts([2]float64{0, 0}, [2]float64{1, 0}, [2]float64{0, 1})
	// The second mean is identical to the first and loses every tie.
	means := pts([2]float64{0, 0}, [2]float64{0, 0})

	r, err := NewRefiner(points, means, Config{Empty: EmptyDrop})
	require.NoError(t, err)
	run(t, r)

	clusters := r.Clusters()
	require.Len(t, clusters, 1)
	assert.Equal(t, 3, clusters[0].Len())
}

func TestRefiner_EmptyReseedFarthest(t *testing.T) {
	points := pts([2]float64{0, 0}, [2]float64{1, 0}, [2]float64{0, 1}, [2]float64{9, 9})
	// The far mean owns nothing.
	means := pts([2]float64{0, 0}, [2]float64{100, 100})

	r, err := NewRefiner(points, means, Config{Empty: EmptyReseedFarthest})
	require.NoError(t, err)
	run(t, r)

	clusters := r.Clusters()
	require.Len(t, clusters, 2)
	assert.Equal(t, pts([2]float64{9, 9}), clusters[1].Points)
	assert.Len(t, r.Means(), 2)
}

func TestNewRefiner_NoMeans(t *testing.T) {
	_, err := NewRefiner(pts([2]float64{0, 0}), nil, Config{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEmptyClusterPolicyString(t *testing.T) {
	assert.Equal(t, "drop", EmptyDrop.String())
	assert.Equal(t, "reseed", EmptyReseedFarthest.String())
}
