package storage

import (
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/EidolonLabs/persona-launchpad/core"
	"github.com/dgraph-io/badger/v3"
)

type Storage interface {
	// Generic operations
	Put(key string, value []byte) error
	Get(key string) ([]byte, error)
	Delete(key string) error
	GetByPrefix(prefix string) (map[string][]byte, error)
	PutObject(key string, obj interface{}) error
	GetObject(key string, obj interface{}) error

	// Domain-specific operations
	SaveAnswerEvent(ev core.AnswerEvent) error
	GetAnswerEvents(agentID string) ([]core.AnswerEvent, error)
	LastSequence(agentID string) (uint64, error)
	SaveBelief(b core.Belief) error
	GetBelief(agentID, key string) (core.Belief, bool, error)
	AppendBeliefAudit(b core.Belief) error
	GetBeliefAudit(agentID string) ([]core.Belief, error)

	// Management operations
	Close() error
	RunGC() error
}

type DBMetrics struct {
	PutCount int64
	GetCount int64
	Errors   int64
}

// DBStorage represents a persistent storage using BadgerDB
type DBStorage struct {
	db      *badger.DB
	mu      sync.Mutex
	config  BadgerDBConfig
	metrics DBMetrics
}

var (
	// Map of nodeID -> DBStorage
	instances = make(map[string]*DBStorage)
	mu        sync.RWMutex
)

// GetDBStorage returns a DB instance for the specified node
func GetDBStorage(dataDir, nodeID string) (*DBStorage, error) {
	return GetDBStorageWithConfig(DefaultConfig(dataDir), nodeID)
}

// GetDBStorageWithConfig returns a DB instance with custom configuration
func GetDBStorageWithConfig(config BadgerDBConfig, nodeID string) (*DBStorage, error) {
	mu.RLock()
	instance, exists := instances[nodeID]
	mu.RUnlock()

	if exists {
		return instance, nil
	}

	mu.Lock()
	defer mu.Unlock()

	// Check again in case another goroutine created it while we were waiting
	instance, exists = instances[nodeID]
	if exists {
		return instance, nil
	}

	dbPath := filepath.Join(config.DataDir, "badgerdb", nodeID)
	instance, err := newDBStorage(dbPath, config)
	if err != nil {
		return nil, err
	}

	instances[nodeID] = instance

	if config.GCInterval > 0 {
		go instance.startGCRoutine(time.Duration(config.GCInterval) * time.Second)
	}

	return instance, nil
}

// NewMemoryStorage opens an unregistered in-memory instance, used by tests.
func NewMemoryStorage() (*DBStorage, error) {
	return newDBStorage("", MemoryConfig())
}

// newDBStorage creates a new BadgerDB storage instance
func newDBStorage(dbPath string, config BadgerDBConfig) (*DBStorage, error) {
	opts := badger.DefaultOptions(dbPath)
	if config.DisableLogging {
		opts.Logger = nil
	}
	opts.InMemory = config.InMemory
	opts.SyncWrites = config.SyncWrites

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open BadgerDB: %v", err)
	}

	return &DBStorage{
		db:     db,
		config: config,
	}, nil
}

func (s *DBStorage) startGCRoutine(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		if err := s.RunGC(); err != nil && err != badger.ErrNoRewrite {
			log.Printf("BadgerDB GC failed: %v", err)
		}
	}
}

// Close closes the BadgerDB database
func (s *DBStorage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// CloseAll closes all registered BadgerDB instances
func CloseAll() {
	mu.Lock()
	defer mu.Unlock()

	for _, instance := range instances {
		instance.Close()
	}
	instances = make(map[string]*DBStorage)
}

// Put stores a key-value pair in the database
func (s *DBStorage) Put(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	atomic.AddInt64(&s.metrics.PutCount, 1)
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		atomic.AddInt64(&s.metrics.Errors, 1)
	}
	return err
}

// Get retrieves a value from the database by key. A missing key returns a
// nil value, not an error.
func (s *DBStorage) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	atomic.AddInt64(&s.metrics.GetCount, 1)
	var valCopy []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}

		return item.Value(func(val []byte) error {
			valCopy = append([]byte{}, val...)
			return nil
		})
	})

	if err != nil {
		atomic.AddInt64(&s.metrics.Errors, 1)
		return nil, fmt.Errorf("failed to get value: %v", err)
	}

	return valCopy, nil
}

// Delete removes a key-value pair from the database
func (s *DBStorage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

// GetByPrefix retrieves all key-value pairs with a given prefix
func (s *DBStorage) GetByPrefix(prefix string) (map[string][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make(map[string][]byte)
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefixBytes := []byte(prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			k := item.Key()
			err := item.Value(func(v []byte) error {
				// Copy the key and value since they are only valid during this transaction
				keyCopy := append([]byte{}, k...)
				valCopy := append([]byte{}, v...)
				result[string(keyCopy)] = valCopy
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to get values by prefix: %v", err)
	}

	return result, nil
}

// PutObject serializes and stores an object in the database
func (s *DBStorage) PutObject(key string, obj interface{}) error {
	data, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("failed to marshal object: %v", err)
	}

	return s.Put(key, data)
}

// GetObject retrieves and deserializes an object from the database
func (s *DBStorage) GetObject(key string, obj interface{}) error {
	data, err := s.Get(key)
	if err != nil {
		return err
	}

	if data == nil {
		return fmt.Errorf("key not found: %s", key)
	}

	if err := json.Unmarshal(data, obj); err != nil {
		return fmt.Errorf("failed to unmarshal object: %v", err)
	}

	return nil
}

// RunGC runs garbage collection on the database
func (s *DBStorage) RunGC() error {
	return s.db.RunValueLogGC(0.5) // Clean up if at least 50% can be discarded
}

// Metrics returns a snapshot of the operation counters.
func (s *DBStorage) Metrics() DBMetrics {
	return DBMetrics{
		PutCount: atomic.LoadInt64(&s.metrics.PutCount),
		GetCount: atomic.LoadInt64(&s.metrics.GetCount),
		Errors:   atomic.LoadInt64(&s.metrics.Errors),
	}
}
