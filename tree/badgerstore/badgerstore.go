/*
Package badgerstore provides a tree.NodeStore that keeps the nodes of a
tree on a badger key-value store, either on disk or in memory.
*/
package badgerstore

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
	"github.com/titigmr/cart/tree"
	"go.uber.org/zap"
)

/*
NodeEncodeDecoder is an interface for objects
that allow encoding nodes into slices of
bytes and decoding them back to nodes.
*/
type NodeEncodeDecoder interface {
	Encode(*tree.Node) ([]byte, error)
	Decode([]byte) (*tree.Node, error)
}

type badgerStore struct {
	db      *badger.DB
	owned   bool
	prefix  string
	nencdec NodeEncodeDecoder
}

// New builds a tree.NodeStore on the given badger DB, keeping
// nodes under keys with the given prefix. Closing the store
// leaves the DB open.
func New(db *badger.DB, prefix string, nencdec NodeEncodeDecoder) tree.NodeStore {
	return &badgerStore{db: db, prefix: prefix, nencdec: nencdec}
}

// Open opens the badger DB on the given directory, or an
// in-memory one if dir is empty, and returns a tree.NodeStore
// on it whose Close method closes the DB. Badger logs go to
// the given logger.
func Open(dir, prefix string, nencdec NodeEncodeDecoder, logger *zap.Logger) (tree.NodeStore, error) {
	opts := badger.DefaultOptions(dir).WithInMemory(dir == "")
	if logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger.Sugar()})
	} else {
		opts = opts.WithLogger(nil)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "opening badger node store")
	}
	return &badgerStore{db: db, owned: true, prefix: prefix, nencdec: nencdec}, nil
}

func (bs *badgerStore) Create(ctx context.Context, n *tree.Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return bs.db.Update(func(txn *badger.Txn) error {
		var lastID uint64
		item, err := txn.Get(bs.keyFor("lastID"))
		switch {
		case err == badger.ErrKeyNotFound:
		case err != nil:
			return errors.Wrap(err, "creating node: generating ID")
		default:
			err = item.Value(func(val []byte) error {
				if len(val) != 8 {
					return errors.Errorf("invalid last node ID length: %d", len(val))
				}
				lastID = binary.BigEndian.Uint64(val)
				return nil
			})
			if err != nil {
				return errors.Wrap(err, "creating node: generating ID")
			}
		}
		lastID++
		counter := make([]byte, 8)
		binary.BigEndian.PutUint64(counter, lastID)
		if err = txn.Set(bs.keyFor("lastID"), counter); err != nil {
			return errors.Wrap(err, "creating node: generating ID")
		}
		n.ID = fmt.Sprintf("%d", lastID)
		data, err := bs.nencdec.Encode(n)
		if err != nil {
			return errors.Wrap(err, "creating node: encoding node")
		}
		return txn.Set(bs.keyFor(n.ID), data)
	})
}

func (bs *badgerStore) Get(ctx context.Context, id string) (*tree.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var data []byte
	err := bs.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(bs.keyFor(id))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "retrieving node %q", id)
	}
	n, err := bs.nencdec.Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "retrieving node %q: decoding", id)
	}
	return n, nil
}

func (bs *badgerStore) Store(ctx context.Context, n *tree.Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := bs.nencdec.Encode(n)
	if err != nil {
		return errors.Wrapf(err, "storing node %q: encoding node", n.ID)
	}
	err = bs.db.Update(func(txn *badger.Txn) error {
		return txn.Set(bs.keyFor(n.ID), data)
	})
	if err != nil {
		return errors.Wrapf(err, "storing node %q", n.ID)
	}
	return nil
}

func (bs *badgerStore) Delete(ctx context.Context, n *tree.Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := bs.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(bs.keyFor(n.ID))
	})
	if err != nil {
		return errors.Wrapf(err, "deleting node %q", n.ID)
	}
	return nil
}

func (bs *badgerStore) Close(ctx context.Context) error {
	if !bs.owned {
		return nil
	}
	return bs.db.Close()
}

func (bs *badgerStore) keyFor(id string) []byte {
	return []byte(fmt.Sprintf("%s:%s", bs.prefix, id))
}

// badgerLogger adapts a zap logger to badger.Logger
type badgerLogger struct {
	*zap.SugaredLogger
}

func (bl *badgerLogger) Warningf(template string, args ...interface{}) {
	bl.Warnf(template, args...)
}
