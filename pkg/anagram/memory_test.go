//go:build test

package anagram

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"testing"
)

var rejectedWords = []string{
	"xylophone", "zebra", "quiz", "jump", "hashes", "chimes", "ashes", "hmm", "a", "ok",
}

func heapAlloc() int64 {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	return int64(m.Alloc)
}

func TestMemoryRejectedWords(t *testing.T) {
	iterations := []int{100, 1000, 5000}

	for _, iterCount := range iterations {
		t.Run(fmt.Sprintf("iterations_%d", iterCount), func(t *testing.T) {
			p := New("Aschheim")
			for _, w := range aschheimWords {
				p.ProcessWord(w)
			}
			segments := p.Registry().Len()

			baseline := heapAlloc()
			for i := 0; i < iterCount; i++ {
				for _, w := range rejectedWords {
					p.ProcessWord(w)
				}
			}
			memDelta := heapAlloc() - baseline
			totalOps := iterCount * len(rejectedWords)
			memPerOp := float64(memDelta) / float64(totalOps)

			t.Logf("iterations=%d ops=%d mem_delta=%d bytes mem_per_op=%.2f", iterCount, totalOps, memDelta, memPerOp)

			if got := p.Registry().Len(); got != segments {
				t.Errorf("rejected words grew the registry: %d -> %d", segments, got)
			}
			if memPerOp > 100 {
				t.Errorf("excessive memory retained per rejected word: %.2f bytes", memPerOp)
			}
		})
	}
}

func TestMemoryConcurrentRounds(t *testing.T) {
	for _, workers := range []int{1, 2, 4, 8} {
		t.Run(fmt.Sprintf("workers_%d", workers), func(t *testing.T) {
			baselineGoroutines := runtime.NumGoroutine()

			p := New("Aschheim", WithWorkers(workers))
			sub := p.Subscribe(func(Combination) {})
			for i := 0; i < 50; i++ {
				for _, w := range aschheimWords {
					p.ProcessWord(w)
				}
			}
			sub.Unsubscribe()

			goroutineDelta := runtime.NumGoroutine() - baselineGoroutines
			t.Logf("workers=%d segments=%d combinations=%d goroutine_delta=%d",
				workers, p.Registry().Len(), p.Stats().Combinations, goroutineDelta)

			if goroutineDelta > 0 {
				t.Errorf("goroutine leak detected: %d goroutines leaked", goroutineDelta)
			}
		})
	}
}

func TestMemoryStabilityLongRun(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping long-running memory stability test in short mode")
	}

	memFile, err := os.CreateTemp(t.TempDir(), "longrun_*.prof")
	if err != nil {
		t.Fatalf("profile file creation failed: %v", err)
	}
	defer memFile.Close()

	const cycles = 50
	baseline := heapAlloc()
	maxMemDelta := int64(0)

	for cycle := 0; cycle < cycles; cycle++ {
		p := New("IT-Crowd")
		sub := p.Subscribe(Distinct(func(Combination) {}))
		for _, w := range []string{"cod", "writ", "cord", "wit", "cow", "dirt", "doc", "tic", "word"} {
			p.ProcessWord(w)
		}
		sub.Unsubscribe()

		if cycle%10 == 0 {
			memDelta := heapAlloc() - baseline
			maxMemDelta = max(maxMemDelta, memDelta)
			t.Logf("cycle=%d mem_delta=%d bytes", cycle, memDelta)
		}
	}

	if err := pprof.WriteHeapProfile(memFile); err != nil {
		t.Errorf("heap profile write failed: %v", err)
	}
	if maxMemDelta > 1024*1024 {
		t.Errorf("discarded processors are retained: peak delta %d bytes", maxMemDelta)
	}
}
