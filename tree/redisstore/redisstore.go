/*
Package redisstore provides a tree.NodeStore that keeps the nodes of a
tree on a redis DB, encoded by a NodeEncodeDecoder, under keys with a
common prefix.
*/
package redisstore

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/titigmr/cart/tree"
	redis "gopkg.in/redis.v5"
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

type redisStore struct {
	rc      *redis.Client
	prefix  string
	nencdec NodeEncodeDecoder
}

// New builds a tree.NodeStore backed by a redis DB. Node IDs
// are taken from a counter stored under the prefix, so they
// are sequential as with the memory store. Closing the store
// closes the client.
func New(rc *redis.Client, prefix string, nencdec NodeEncodeDecoder) tree.NodeStore {
	return &redisStore{rc, prefix, nencdec}
}

/*
Options takes a redis URL such as redis://:password@host:6379/2 and returns
the options to connect to the redis server it designates.
*/
func Options(rawURL string) (*redis.Options, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrap(err, "parsing redis URL")
	}
	if u.Scheme != "redis" {
		return nil, errors.Errorf("invalid redis URL scheme %q", u.Scheme)
	}
	opts := &redis.Options{Addr: u.Host}
	if u.Port() == "" {
		opts.Addr = fmt.Sprintf("%s:6379", u.Hostname())
	}
	if u.User != nil {
		opts.Password, _ = u.User.Password()
	}
	if db := strings.Trim(u.Path, "/"); db != "" {
		opts.DB, err = strconv.Atoi(db)
		if err != nil {
			return nil, errors.Errorf("invalid redis DB %q", db)
		}
	}
	return opts, nil
}

func (rs *redisStore) Create(ctx context.Context, n *tree.Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	id, err := rs.rc.Incr(rs.keyFor("lastID")).Result()
	if err != nil {
		return errors.Wrap(err, "creating node in redis: generating ID")
	}
	n.ID = strconv.FormatInt(id, 10)
	data, err := rs.nencdec.Encode(n)
	if err != nil {
		return errors.Wrap(err, "creating node: encoding node")
	}
	ok, err := rs.rc.SetNX(rs.keyFor(n.ID), data, 0).Result()
	if err != nil {
		return errors.Wrap(err, "creating node in redis")
	}
	if !ok {
		return errors.Errorf("creating node in redis: node %s already exists", n.ID)
	}
	return nil
}

func (rs *redisStore) Get(ctx context.Context, id string) (*tree.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := rs.rc.Get(rs.keyFor(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "retrieving node %q", id)
	}
	n, err := rs.nencdec.Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "retrieving node %q: decoding %q", id, data)
	}
	return n, nil
}

func (rs *redisStore) Store(ctx context.Context, n *tree.Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	redisID := rs.keyFor(n.ID)
	data, err := rs.nencdec.Encode(n)
	if err != nil {
		return errors.Wrapf(err, "storing node %q: encoding node", redisID)
	}
	err = rs.rc.Set(redisID, data, 0).Err()
	if err != nil {
		return errors.Wrapf(err, "storing node %q in redis", redisID)
	}
	return nil
}

func (rs *redisStore) Delete(ctx context.Context, n *tree.Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	redisID := rs.keyFor(n.ID)
	err := rs.rc.Del(redisID).Err()
	if err != nil {
		return errors.Wrapf(err, "deleting node %q from redis", redisID)
	}
	return nil
}

func (rs *redisStore) Close(ctx context.Context) error {
	return rs.rc.Close()
}

func (rs *redisStore) keyFor(id string) string {
	return fmt.Sprintf("%s:%s", rs.prefix, id)
}
