package inspect

import (
	"context"
	"image"
	"runtime"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/utils"
)

// InspectAll runs Inspect over frames concurrently with one worker per CPU,
// treating each frame independently. The result slice is index-aligned with
// frames; a failed frame leaves a nil slot and contributes an indexed error
// to the combined error, without disturbing the other frames. Canceling ctx
// stops work between frames, never mid-frame.
func (ins *Inspector) InspectAll(ctx context.Context, frames []*image.Gray) ([]*Result, error) {
	results := make([]*Result, len(frames))
	if len(frames) == 0 {
		return results, nil
	}
	errs := make([]error, len(frames))

	workers := runtime.GOMAXPROCS(0)
	if workers > len(frames) {
		workers = len(frames)
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		utils.PanicCapturingGo(func() {
			defer wg.Done()
			for i := range indexes {
				if err := ctx.Err(); err != nil {
					errs[i] = errors.Wrapf(err, "frame %d", i)
					continue
				}
				res, err := ins.Inspect(frames[i])
				if err != nil {
					errs[i] = errors.Wrapf(err, "frame %d", i)
					continue
				}
				results[i] = res
			}
		})
	}
	for i := range frames {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	return results, multierr.Combine(errs...)
}
