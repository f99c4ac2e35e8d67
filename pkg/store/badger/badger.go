// Package badger 基于 BadgerDB 的嵌入式文档存储，文档以 bson 编码，key 为 <kind>:<id>。
package badger

import (
	"context"
	"os"
	"sort"
	"sync"
	"time"

	"VidHub.com/pkg/store"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	userPrefix     = "user:"
	usernamePrefix = "username:"
	channelPrefix  = "channel:"
	videoPrefix    = "video:"
	commentPrefix  = "comment:"
)

type Config struct {
	Dir      string
	InMemory bool
}

type badgerLogger struct{}

func (badgerLogger) Errorf(format string, args ...interface{}) {
	hlog.Errorf("[badger] "+format, args...)
}

func (badgerLogger) Warningf(format string, args ...interface{}) {
	hlog.Warnf("[badger] "+format, args...)
}

func (badgerLogger) Infof(format string, args ...interface{}) {
	hlog.Debugf("[badger] "+format, args...)
}

func (badgerLogger) Debugf(format string, args ...interface{}) {
	hlog.Debugf("[badger] "+format, args...)
}

// Store 嵌入式文档存储。写事务由 mu 串行化，单进程内不会出现事务冲突
type Store struct {
	db *badger.DB
	mu sync.Mutex
}

var _ store.Store = (*Store)(nil)

func Open(cfg Config) (*Store, error) {
	if !cfg.InMemory && cfg.Dir == "" {
		return nil, errors.New("dir is required for persistent badger store")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Dir, 0o750); err != nil {
			return nil, errors.Wrapf(err, "create badger dir %s failed", cfg.Dir)
		}
		opts = badger.DefaultOptions(cfg.Dir)
	}
	opts = opts.WithLogger(badgerLogger{})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "open badger failed")
	}
	return &Store{db: db}, nil
}

func OpenInMemory() (*Store, error) {
	return Open(Config{InMemory: true})
}

func (s *Store) Close(ctx context.Context) error {
	return s.db.Close()
}

func key(prefix, id string) []byte {
	return []byte(prefix + id)
}

func (s *Store) view(ctx context.Context, fn func(txn *badger.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.View(fn)
}

func (s *Store) update(ctx context.Context, fn func(txn *badger.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Update(fn)
}

func getDoc[T any](txn *badger.Txn, k []byte) (*T, error) {
	item, err := txn.Get(k)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get %s failed", k)
	}
	doc := new(T)
	err = item.Value(func(val []byte) error {
		return bson.Unmarshal(val, doc)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s failed", k)
	}
	return doc, nil
}

// getDocs 按 ids 的顺序返回存在的文档，重复 id 只返回一次
func getDocs[T any](txn *badger.Txn, prefix string, ids []string) ([]*T, error) {
	docs := make([]*T, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		doc, err := getDoc[T](txn, key(prefix, id))
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func putDoc(txn *badger.Txn, k []byte, doc interface{}) error {
	data, err := bson.Marshal(doc)
	if err != nil {
		return errors.Wrapf(err, "encode %s failed", k)
	}
	return txn.Set(k, data)
}

func exists(txn *badger.Txn, k []byte) (bool, error) {
	_, err := txn.Get(k)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "get %s failed", k)
	}
	return true, nil
}

// insert 文档已存在时返回 store.ErrDuplicate
func insert(txn *badger.Txn, k []byte, doc interface{}) error {
	found, err := exists(txn, k)
	if err != nil {
		return err
	}
	if found {
		return store.ErrDuplicate
	}
	return putDoc(txn, k, doc)
}

// replace 文档不存在时返回 store.ErrNotFound
func replace(txn *badger.Txn, k []byte, doc interface{}) error {
	found, err := exists(txn, k)
	if err != nil {
		return err
	}
	if !found {
		return store.ErrNotFound
	}
	return putDoc(txn, k, doc)
}

func remove(txn *badger.Txn, k []byte) error {
	found, err := exists(txn, k)
	if err != nil {
		return err
	}
	if !found {
		return store.ErrNotFound
	}
	return txn.Delete(k)
}

// scan 遍历前缀下的全部文档，keep 为 nil 时全部保留
func scan[T any](txn *badger.Txn, prefix string, keep func(*T) bool) ([]*T, error) {
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()

	docs := []*T{}
	p := []byte(prefix)
	for it.Seek(p); it.ValidForPrefix(p); it.Next() {
		doc := new(T)
		if err := it.Item().Value(func(val []byte) error {
			return bson.Unmarshal(val, doc)
		}); err != nil {
			return nil, errors.Wrapf(err, "decode %s failed", it.Item().Key())
		}
		if keep == nil || keep(doc) {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func sortNewestFirst[T any](docs []*T, createdAt func(*T) time.Time) {
	sort.SliceStable(docs, func(i, j int) bool {
		return createdAt(docs[i]).After(createdAt(docs[j]))
	})
}

