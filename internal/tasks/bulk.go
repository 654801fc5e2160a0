package tasks

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/time/rate"
)

const (
	defaultWorkers    = 4
	requestsPerSecond = 10
)

// BulkTag links a tag to every image in the list using a bounded worker
// pool. Requests are rate limited to keep bulk jobs polite to the server.
// All failures are collected; the job does not stop on the first error.
func (e *ImportEngine) BulkTag(ctx context.Context, imageIDs []int64, tagID int64, workers int) error {
	if workers <= 0 {
		workers = defaultWorkers
	}

	limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
	jobs := make(chan int64, len(imageIDs))

	var (
		mu    sync.Mutex
		errs  []error
		done  int
		wg    sync.WaitGroup
		total = len(imageIDs)
	)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for imageID := range jobs {
				if err := limiter.Wait(ctx); err != nil {
					mu.Lock()
					errs = append(errs, err)
					mu.Unlock()
					return
				}

				err := e.conn.TagImage(ctx, imageID, tagID)

				mu.Lock()
				done++
				current := done
				if err != nil {
					errs = append(errs, fmt.Errorf("tagging image %d: %w", imageID, err))
				}
				mu.Unlock()

				e.sendProgress(ProgressUpdate{
					Phase:   PhaseTagging,
					ImageID: imageID,
					Current: current,
					Total:   total,
					Err:     err,
				})
			}
		}()
	}

	for _, id := range imageIDs {
		select {
		case <-ctx.Done():
			mu.Lock()
			errs = append(errs, ctx.Err())
			mu.Unlock()
		case jobs <- id:
			continue
		}
		break
	}
	close(jobs)
	wg.Wait()

	e.sendProgress(ProgressUpdate{Phase: PhaseDone, Current: total, Total: total, Completed: true})

	if len(errs) > 0 {
		e.logger.Warn("bulk tagging finished with failures", "failed", len(errs), "total", total)
	}
	return errors.Join(errs...)
}
