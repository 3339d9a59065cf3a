package tree

import (
	"context"
	"strconv"
	"sync"

	"github.com/pkg/errors"
)

/*
NodeStore is an interface to manage a store
where nodes can be created, retrieved, updated
and deleted.

All it methods take a context that may allow
cancelling the operation (thus forcing the return
of an error) if the implementation allows it.
*/
type NodeStore interface {
	// Create takes a node and stores it for the
	// first time in the store, creating an ID for
	// it and setting it for the node. It returns
	// an error if the node cannot be stored.
	Create(ctx context.Context, n *Node) error
	// Get takes an id and returns the node in the
	// store with that id (or nil if it cannot be
	// found) or an error if the store cannot be
	// queried
	Get(ctx context.Context, id string) (*Node, error)
	// Store takes a node already existing in the store
	// and updates it on the store. It expect the node
	// to have an ID which it will not alter. It returns
	// an error if the update cannot be performed.
	Store(ctx context.Context, n *Node) error
	// Delete takes a node already existing in the store
	// and deletes it on the store. It returns an error
	// if the node exist but the deletion cannot be
	// performed.
	Delete(ctx context.Context, n *Node) error
	// Close closes the store, implementations should
	// free any resources in use as well as ensure
	// any pending changes are applied before returning
	// (unless the context expires).
	Close(ctx context.Context) error
}

type memoryNodeStore struct {
	nodes  map[string]*Node
	lock   sync.RWMutex
	lastID uint64
}

// NewMemoryNodeStore returns an implementation
// of NodeStore with the process memory space
// as underlying backend. IDs are assigned
// sequentially, so growing the same tree twice
// yields the same IDs.
func NewMemoryNodeStore() NodeStore {
	return &memoryNodeStore{nodes: make(map[string]*Node)}
}

func (mns *memoryNodeStore) Create(ctx context.Context, n *Node) error {
	unlock, err := acquire(ctx, mns.lock.Lock, mns.lock.Unlock)
	if err != nil {
		return err
	}
	defer unlock()
	mns.lastID++
	n.ID = strconv.FormatUint(mns.lastID, 10)
	mns.nodes[n.ID] = n
	return nil
}

func (mns *memoryNodeStore) Store(ctx context.Context, n *Node) error {
	if n.ID == "" {
		return errors.New("storing node: node has no ID")
	}
	unlock, err := acquire(ctx, mns.lock.Lock, mns.lock.Unlock)
	if err != nil {
		return err
	}
	defer unlock()
	// nodes read from elsewhere must not collide with the ones created later
	if id, err := strconv.ParseUint(n.ID, 10, 64); err == nil && id > mns.lastID {
		mns.lastID = id
	}
	mns.nodes[n.ID] = n
	return nil
}

func (mns *memoryNodeStore) Get(ctx context.Context, id string) (*Node, error) {
	unlock, err := acquire(ctx, mns.lock.RLock, mns.lock.RUnlock)
	if err != nil {
		return nil, err
	}
	defer unlock()
	return mns.nodes[id], nil
}

func (mns *memoryNodeStore) Delete(ctx context.Context, n *Node) error {
	unlock, err := acquire(ctx, mns.lock.Lock, mns.lock.Unlock)
	if err != nil {
		return err
	}
	defer unlock()
	delete(mns.nodes, n.ID)
	return nil
}

func (mns *memoryNodeStore) Close(ctx context.Context) error {
	return nil
}

// acquire takes the lock with the given function unless the context is
// done first, and returns the function to release it.
func acquire(ctx context.Context, lock, unlock func()) (func(), error) {
	gotLock := make(chan struct{})
	go func() {
		lock()
		select {
		case <-ctx.Done():
			unlock()
		case gotLock <- struct{}{}:
		}
	}()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-gotLock:
		return unlock, nil
	}
}
