package queue

import (
	"context"
	"fmt"
	"sync"
)

// Queue represents a queue where tasks to develop
// tree nodes can be pushed and pulled. The idea
// is a worker will use the Pull method to obtain
// a task. It will start processing it and will then
// either complete it or drop it halfway.
//
// All its methods have a context.Context as first
// parameter that implementations may use to allow
// timeouts and cancellations on the Queue operations.
type Queue interface {
	// Push takes a task and stores it in the queue or
	// returns an error. The task will count as pending.
	Push(context.Context, *Task) error
	// Pull returns the oldest pending task or an error.
	// The pulled task will be counted as running from
	// then on. If there are no tasks to pull,
	// implementations should not return an error,
	// but a nil task.
	Pull(context.Context) (*Task, error)
	// Drop takes the ID for a running task and makes
	// it available for pulling from the Queue again.
	// Workers should use this to return to the queue
	// tasks they have not completed.
	Drop(context.Context, string) error
	// Complete takes the ID for a task. Implementations
	// should remove the task from the running state.
	Complete(context.Context, string) error
	// Count returns the number of
	// pending and running tasks in the queue
	// or an error
	Count(context.Context) (int, int, error)
}

type memQueue struct {
	pending []*Task
	head    int
	running map[string]*Task
	lock    sync.Mutex
}

// New returns a queue backed only by the process memory
func New() Queue {
	return &memQueue{running: make(map[string]*Task)}
}

func (mq *memQueue) Push(ctx context.Context, t *Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	mq.lock.Lock()
	defer mq.lock.Unlock()
	mq.push(t)
	return nil
}

func (mq *memQueue) Pull(ctx context.Context) (*Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	mq.lock.Lock()
	defer mq.lock.Unlock()
	if mq.head == len(mq.pending) {
		return nil, nil
	}
	t := mq.pending[mq.head]
	mq.pending[mq.head] = nil
	mq.head++
	mq.running[t.ID()] = t
	return t, nil
}

func (mq *memQueue) Drop(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	mq.lock.Lock()
	defer mq.lock.Unlock()
	t, ok := mq.running[id]
	if !ok {
		return nil
	}
	delete(mq.running, id)
	mq.push(t)
	return nil
}

func (mq *memQueue) Complete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	mq.lock.Lock()
	defer mq.lock.Unlock()
	delete(mq.running, id)
	return nil
}

func (mq *memQueue) Count(ctx context.Context) (int, int, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}
	mq.lock.Lock()
	defer mq.lock.Unlock()
	return len(mq.pending) - mq.head, len(mq.running), nil
}

func (mq *memQueue) String() string {
	mq.lock.Lock()
	defer mq.lock.Unlock()
	return fmt.Sprintf("{Queue pending: %v running: %d}", mq.pending[mq.head:], len(mq.running))
}

// push appends the task, reclaiming the space of pulled tasks once they
// make up half of the buffer.
func (mq *memQueue) push(t *Task) {
	if mq.head > 0 && mq.head*2 >= len(mq.pending) {
		n := copy(mq.pending, mq.pending[mq.head:])
		for i := n; i < len(mq.pending); i++ {
			mq.pending[i] = nil
		}
		mq.pending = mq.pending[:n]
		mq.head = 0
	}
	mq.pending = append(mq.pending, t)
}
