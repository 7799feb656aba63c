// Package benchmarks provides memory footprint benchmarks.
package benchmarks

import (
	"fmt"
	"runtime"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/comalice/behaviortreex/arena"
	"github.com/comalice/behaviortreex/internal/production"
)

func BenchmarkMemoryFlat(b *testing.B) {
	for _, n := range []int{7, 64, 512} {
		b.Run(fmt.Sprintf("nodes=%d", n), func(b *testing.B) {
			numTrees := 100
			var before runtime.MemStats
			runtime.ReadMemStats(&before)
			trees := make([]any, numTrees)
			for i := 0; i < numTrees; i++ {
				trees[i] = GenFlatSequence(n)
			}
			runtime.GC()
			var after runtime.MemStats
			runtime.ReadMemStats(&after)
			bytesPerTree := (after.TotalAlloc - before.TotalAlloc) / uint64(numTrees)
			b.ReportMetric(float64(bytesPerTree)/1024, "KB/tree")
			b.ReportMetric(float64(bytesPerTree)/float64(n+1), "B/node")
			runtime.KeepAlive(trees)
		})
	}
}

func BenchmarkMemoryArena(b *testing.B) {
	for _, depth := range []int{4, 64, 512} {
		b.Run(fmt.Sprintf("depth=%d", depth), func(b *testing.B) {
			numTrees := 100
			var before runtime.MemStats
			runtime.ReadMemStats(&before)
			trees := make([]*arena.Tree, numTrees)
			for i := 0; i < numTrees; i++ {
				trees[i], _ = GenArenaDeep(depth)
			}
			runtime.GC()
			var after runtime.MemStats
			runtime.ReadMemStats(&after)
			bytesPerTree := (after.TotalAlloc - before.TotalAlloc) / uint64(numTrees)
			b.ReportMetric(float64(bytesPerTree)/1024, "KB/tree")
			b.ReportMetric(float64(trees[0].Size()), "arena-bytes")
			b.ReportMetric(float64(arena.NodeSize), "B/record")
		})
	}
}

func BenchmarkSnapshotDecode(b *testing.B) {
	for _, hierarchical := range []bool{false, true} {
		b.Run(fmt.Sprintf("hierarchical=%v", hierarchical), func(b *testing.B) {
			data := GenSnapshotYAML(64, hierarchical)
			b.SetBytes(int64(len(data)))
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				var snap production.Snapshot
				if err := yaml.Unmarshal(data, &snap); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
