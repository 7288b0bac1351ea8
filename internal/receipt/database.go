package receipt

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/zombor/expense-report/internal/mileage"
)

const (
	receiptBucketName = "receipts"
	mileageBucketName = "mileage"
)

// ErrNotFound is returned when a record does not exist
var ErrNotFound = errors.New("not found")

// DB defines the interface for database operations
type DB interface {
	mileage.Repository

	// SaveReceipt saves a receipt to the database
	SaveReceipt(receipt *Receipt) error

	// GetReceipt retrieves a receipt by ID
	GetReceipt(id string) (*Receipt, error)

	// ListReceipts returns all receipts
	ListReceipts() ([]*Receipt, error)

	// DeleteReceipt removes a receipt from the database
	DeleteReceipt(id string) error

	// Close closes the database connection
	Close() error
}

// BoltDB implements the DB interface using BoltDB
type BoltDB struct {
	db *bbolt.DB
}

// NewBoltDB creates a new BoltDB instance
func NewBoltDB(path string) (*BoltDB, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{receiptBucketName, mileageBucketName} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &BoltDB{db: db}, nil
}

func (b *BoltDB) put(bucket, id string, v any) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshaling %s: %w", bucket, err)
		}
		return tx.Bucket([]byte(bucket)).Put([]byte(id), data)
	})
}

func (b *BoltDB) get(bucket, id string, v any) error {
	return b.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(bucket)).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("%s %s: %w", bucket, id, ErrNotFound)
		}
		return json.Unmarshal(data, v)
	})
}

func (b *BoltDB) delete(bucket, id string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bkt := tx.Bucket([]byte(bucket))
		if bkt.Get([]byte(id)) == nil {
			return fmt.Errorf("%s %s: %w", bucket, id, ErrNotFound)
		}
		return bkt.Delete([]byte(id))
	})
}

// list decodes every value of bucket with decode, in key order
func (b *BoltDB) list(bucket string, decode func(v []byte) error) error {
	return b.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucket)).ForEach(func(k, v []byte) error {
			if err := decode(v); err != nil {
				return fmt.Errorf("unmarshaling %s %s: %w", bucket, k, err)
			}
			return nil
		})
	})
}

// SaveReceipt saves a receipt to the database
func (b *BoltDB) SaveReceipt(receipt *Receipt) error {
	return b.put(receiptBucketName, receipt.ID, receipt)
}

// GetReceipt retrieves a receipt by ID
func (b *BoltDB) GetReceipt(id string) (*Receipt, error) {
	var receipt Receipt
	if err := b.get(receiptBucketName, id, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// ListReceipts returns all receipts
func (b *BoltDB) ListReceipts() ([]*Receipt, error) {
	receipts := make([]*Receipt, 0)
	err := b.list(receiptBucketName, func(v []byte) error {
		var receipt Receipt
		if err := json.Unmarshal(v, &receipt); err != nil {
			return err
		}
		receipts = append(receipts, &receipt)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receipts, nil
}

// DeleteReceipt removes a receipt from the database
func (b *BoltDB) DeleteReceipt(id string) error {
	return b.delete(receiptBucketName, id)
}

// SaveMileage saves a mileage entry
func (b *BoltDB) SaveMileage(entry *mileage.Entry) error {
	return b.put(mileageBucketName, entry.ID, entry)
}

// GetMileage retrieves a mileage entry by ID
func (b *BoltDB) GetMileage(id string) (*mileage.Entry, error) {
	var entry mileage.Entry
	if err := b.get(mileageBucketName, id, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListMileage returns all mileage entries
func (b *BoltDB) ListMileage() ([]*mileage.Entry, error) {
	entries := make([]*mileage.Entry, 0)
	err := b.list(mileageBucketName, func(v []byte) error {
		var entry mileage.Entry
		if err := json.Unmarshal(v, &entry); err != nil {
			return err
		}
		entries = append(entries, &entry)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// DeleteMileage removes a mileage entry
func (b *BoltDB) DeleteMileage(id string) error {
	return b.delete(mileageBucketName, id)
}

// Close closes the database connection
func (b *BoltDB) Close() error {
	return b.db.Close()
}
