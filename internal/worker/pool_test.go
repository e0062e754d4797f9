package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_ExecuteKeepsOrder(t *testing.T) {
	var calls atomic.Int32
	p := NewPool(3, func(ctx context.Context, n int) (int, error) {
		calls.Add(1)
		if n == 4 {
			return 0, errors.New("four")
		}
		return n * n, nil
	})

	tasks := p.Execute(context.Background(), []int{1, 2, 3, 4, 5})
	require.Len(t, tasks, 5)
	assert.EqualValues(t, 5, calls.Load())
	for i, task := range tasks {
		assert.Equal(t, i+1, task.Input)
	}
	assert.Equal(t, 9, tasks[2].Result)
	assert.EqualError(t, tasks[3].Err, "four")
	assert.NoError(t, tasks[4].Err)
}

func TestPool_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewPool(0, func(ctx context.Context, n int) (int, error) { return n, nil })
	tasks := p.Execute(ctx, []int{1, 2, 3})
	require.Len(t, tasks, 3)

	// A cancelled context may still let a worker pick up an input; unreached ones report the cancellation.
	for _, task := range tasks {
		if task.Err != nil {
			assert.ErrorIs(t, task.Err, context.Canceled)
		}
	}
}

func TestPool_Empty(t *testing.T) {
	p := NewPool(4, func(ctx context.Context, n int) (int, error) { return n, nil })
	assert.Empty(t, p.Execute(context.Background(), nil))
}
