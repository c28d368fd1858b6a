package benchmark_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/hupe1980/lloyd"
	"github.com/hupe1980/lloyd/dataset"
	"github.com/hupe1980/lloyd/point"
	"github.com/hupe1980/lloyd/testutil"
)

// Run: go test -bench=. -run=^$ ./benchmark_test/...

type workload struct {
	name    string
	centers int
	per     int
	stddev  float64
}

func workloads() []workload {
	w := []workload{
		{"blobs_k4_4k", 4, 1000, 5},
		{"blobs_k16_16k", 16, 1000, 5},
		{"overlap_k8_8k", 8, 1000, 40},
	}
	if testing.Short() {
		w = w[:1]
	}
	return w
}

func fixture(w workload, seed int64) []point.Point {
	rng := testutil.NewRNG(seed)
	centers := rng.UniformPoints(w.centers, -500, 500)
	return rng.Blobs(centers, w.per, w.stddev)
}

func BenchmarkCluster(b *testing.B) {
	ctx := context.Background()

	for _, w := range workloads() {
		pts := fixture(w, 42)

		for _, mode := range []lloyd.CentroidMode{lloyd.CentroidTruncate, lloyd.CentroidExact} {
			b.Run(fmt.Sprintf("%s/%s", w.name, mode), func(b *testing.B) {
				metrics := &lloyd.BasicMetricsCollector{}
				b.ReportAllocs()
				b.ResetTimer()

				for i := 0; i < b.N; i++ {
					_, err := lloyd.Cluster(ctx, pts, w.centers,
						lloyd.WithSeed(int64(i)),
						lloyd.WithCentroidMode(mode),
						lloyd.WithMetricsCollector(metrics),
					)
					if err != nil {
						b.Fatal(err)
					}
				}

				b.StopTimer()
				stats := metrics.GetStats()
				if stats.RunCount > 0 {
					b.ReportMetric(float64(stats.IterationCount)/float64(stats.RunCount), "iters/run")
				}
				b.ReportMetric(float64(len(pts)*b.N)/b.Elapsed().Seconds(), "points/s")
			})
		}
	}
}

func BenchmarkDecode(b *testing.B) {
	pts := fixture(workloads()[0], 7)

	for _, c := range []dataset.Compression{dataset.CompressionNone, dataset.CompressionZSTD, dataset.CompressionLZ4} {
		data, err := dataset.Encode(pts, c)
		if err != nil {
			b.Fatal(err)
		}

		b.Run(c.String(), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(data)))
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := dataset.Decode(data, c); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// TestWorkloadRecoversCenters guards the fixture generator: well separated
// blobs started from their true centers must be recovered exactly.
func TestWorkloadRecoversCenters(t *testing.T) {
	const per = 200
	rng := testutil.NewRNG(3)
	centers := []point.Point{point.New(-100, 0), point.New(100, 0), point.New(0, 150)}
	pts := rng.Blobs(centers, per, 1)

	res, err := lloyd.Cluster(context.Background(), pts, len(centers),
		lloyd.WithInitialMeans(centers...), lloyd.WithCentroidMode(lloyd.CentroidExact))
	if err != nil {
		t.Fatal(err)
	}
	if res.K() != len(centers) {
		t.Fatalf("got %d clusters, want %d", res.K(), len(centers))
	}
	for i, g := range res.Groups {
		if g.Len() != per {
			t.Errorf("cluster %d: got %d points, want %d", i, g.Len(), per)
		}
		if d := point.Distance(g.Mean, centers[i]); d > 1 {
			t.Errorf("cluster %d: mean %v is %.2f away from %v", i, g.Mean, d, centers[i])
		}
	}
}
