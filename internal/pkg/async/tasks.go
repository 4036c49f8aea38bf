package async

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/exp/constraints"
)

type Errors struct {
	E []error
}

var _ error = (*Errors)(nil)

func (e Errors) Wrapped() error {
	if len(e.E) == 0 {
		return nil
	}
	return e
}

func (e Errors) Error() string {
	var sb strings.Builder
	l := len(e.E)
	for i, err := range e.E {
		sb.WriteString(err.Error())
		if i < l-1 {
			sb.WriteString(", ")
		}
	}
	return sb.String()
}

// Map applies f to every element of src with at most concurrencyLimit calls in flight and
// returns the results in the order of src. Errors are collected in the order of src as well;
// when any call fails the results are discarded.
func Map[T any, D any](ctx context.Context, src []T, concurrencyLimit int, f func(T) (D, error)) ([]D, error) {
	if len(src) == 0 {
		return []D{}, nil
	}

	if concurrencyLimit <= 0 {
		concurrencyLimit = len(src)
	}
	concurrencyLimit = min(concurrencyLimit, len(src))

	results := make([]D, len(src))
	errs := make([]error, len(src))

	var wg sync.WaitGroup
	limiter := make(chan struct{}, concurrencyLimit)

	// abandon waits for the elements already started, accounting for those that never will be
	abandon := func(from int) ([]D, error) {
		wg.Add(-(len(src) - from))
		wg.Wait()
		return nil, ctx.Err()
	}

	wg.Add(len(src))
	for i, element := range src {
		if ctx.Err() != nil {
			return abandon(i)
		}
		select {
		case <-ctx.Done():
			return abandon(i)
		case limiter <- struct{}{}:
		}

		go func(i int, el T) {
			defer func() {
				<-limiter
				wg.Done()
			}()
			results[i], errs[i] = f(el)
		}(i, element)
	}

	wg.Wait()

	collected := Errors{}
	for _, err := range errs {
		if err != nil {
			collected.E = append(collected.E, err)
		}
	}
	if len(collected.E) == 1 {
		return nil, collected.E[0]
	}
	if err := collected.Wrapped(); err != nil {
		return nil, err
	}
	return results, nil
}

func FlatMap[T any, D any](ctx context.Context, src []T, concurrencyLimit int, f func(T) ([]D, error)) ([]D, error) {
	r, err := Map(ctx, src, concurrencyLimit, f)
	if err != nil {
		return nil, err
	}

	size := 0
	for _, v := range r {
		size += len(v)
	}
	flattened := make([]D, 0, size)
	for _, v := range r {
		flattened = append(flattened, v...)
	}

	return flattened, nil
}

func min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	} else {
		return b
	}
}
