package async

import (
	"context"
	"errors"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapPreservesOrder(t *testing.T) {
	src := make([]int, 200)
	for i := range src {
		src[i] = i
	}

	res, err := Map(context.Background(), src, 8, func(i int) (string, error) {
		// later elements finish first
		time.Sleep(time.Duration(200-i) * time.Microsecond)
		return strconv.Itoa(i), nil
	})
	require.NoError(t, err)
	require.Len(t, res, len(src))
	for i, v := range res {
		assert.Equal(t, strconv.Itoa(i), v)
	}
}

func TestMapRespectsConcurrencyLimit(t *testing.T) {
	var inFlight, peak int32
	src := make([]int, 64)

	_, err := Map(context.Background(), src, 3, func(int) (int, error) {
		cur := atomic.AddInt32(&inFlight, 1)
		for {
			old := atomic.LoadInt32(&peak)
			if cur <= old || atomic.CompareAndSwapInt32(&peak, old, cur) {
				break
			}
		}
		time.Sleep(100 * time.Microsecond)
		atomic.AddInt32(&inFlight, -1)
		return 0, nil
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(3))
}

func TestMapErrors(t *testing.T) {
	errOdd := errors.New("odd")

	_, err := Map(context.Background(), []int{2, 3, 4}, 2, func(i int) (int, error) {
		if i%2 == 1 {
			return 0, errOdd
		}
		return i, nil
	})
	assert.ErrorIs(t, err, errOdd, "a single failure is returned unwrapped")

	_, err = Map(context.Background(), []int{1, 2, 3}, 0, func(i int) (int, error) {
		if i%2 == 1 {
			return 0, errors.New("odd " + strconv.Itoa(i))
		}
		return i, nil
	})
	assert.EqualError(t, err, "odd 1, odd 3")
}

func TestMapCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Map(ctx, []int{1, 2, 3}, 1, func(i int) (int, error) { return i, nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFlatMap(t *testing.T) {
	res, err := FlatMap(context.Background(), []int{1, 2, 3}, 2, func(i int) ([]int, error) {
		out := make([]int, i)
		for j := range out {
			out[j] = i
		}
		return out, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 2, 3, 3, 3}, res)

	empty, err := FlatMap(context.Background(), []int{}, 2, func(i int) ([]int, error) { return nil, nil })
	require.NoError(t, err)
	assert.Empty(t, empty)
}
