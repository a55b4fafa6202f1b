package store

import (
	"context"
	"log"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// AreaKeys lists the chunk keys of the inclusive rectangle [cx0,cx1]x[cz0,cz1]
// in (x, then z) order.
func AreaKeys(cx0, cz0, cx1, cz1 int) []ChunkKey {
	if cx1 < cx0 {
		cx0, cx1 = cx1, cx0
	}
	if cz1 < cz0 {
		cz0, cz1 = cz1, cz0
	}
	w, h := cx1-cx0+1, cz1-cz0+1
	keys := make([]ChunkKey, 0, w*h)
	// Offsets keep the loop finite at the edges of the int range.
	for i := 0; i < w; i++ {
		for j := 0; j < h; j++ {
			keys = append(keys, ChunkKey{CX: cx0 + i, CZ: cz0 + j})
		}
	}
	return keys
}

// GenerateArea generates every missing chunk in keys with a bounded worker
// pool. Chunks are independent, so the result does not depend on the
// worker count. Cancelling ctx stops scheduling; chunks already being
// generated are still stored. logger may be nil.
func (s *ChunkStore) GenerateArea(ctx context.Context, keys []ChunkKey, workers int, logger *log.Logger) error {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	todo := make([]ChunkKey, 0, len(keys))
	s.mu.Lock()
	for _, k := range keys {
		if _, ok := s.chunks[k]; !ok {
			todo = append(todo, k)
		}
	}
	s.mu.Unlock()
	if len(todo) == 0 {
		return ctx.Err()
	}
	if workers > len(todo) {
		workers = len(todo)
	}

	jobs := make(chan ChunkKey)
	var (
		wg       sync.WaitGroup
		done     atomic.Int64
		lastStep atomic.Int64
	)
	total := int64(len(todo))
	report := func() {
		n := done.Add(1)
		step := n * 10 / total
		if logger == nil {
			return
		}
		for {
			prev := lastStep.Load()
			if step <= prev {
				return
			}
			if lastStep.CompareAndSwap(prev, step) {
				logger.Printf("generate: %d/%d chunks (%d%%)", n, total, step*10)
				return
			}
		}
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := range jobs {
				start := time.Now()
				ch := s.GenerateChunk(k.CX, k.CZ)
				took := time.Since(start)
				s.mu.Lock()
				_, exists := s.chunks[k]
				if !exists {
					s.chunks[k] = ch
				}
				s.mu.Unlock()
				if !exists && s.OnGenerated != nil {
					s.OnGenerated(ch, took)
				}
				report()
			}
		}()
	}

	var err error
schedule:
	for _, k := range todo {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break schedule
		case jobs <- k:
		}
	}
	close(jobs)
	wg.Wait()
	return err
}
