package database

import (
	"encoding/json"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// GetDocument loads the JSON document stored at key into v.
// It returns leveldb.ErrNotFound unwrapped when the key is absent.
func GetDocument(q LevelQuerier, key []byte, v any) error {
	data, err := q.Get(key, nil)
	if err != nil {
		if err == leveldb.ErrNotFound {
			return err
		}
		return fmt.Errorf("failed to read %s: %w", key, err)
	}

	if err := DecodeDocument(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

// DecodeDocument decodes a stored JSON document, typically a value seen during ScanPrefix.
func DecodeDocument(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// PutDocument stores v as a JSON document at key.
func PutDocument(q LevelQuerier, key []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	if err := q.Put(key, data, nil); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// ScanPrefix calls fn with the key and value of every entry under prefix, in key order.
// Iteration stops early when fn returns false.
func ScanPrefix(q LevelQuerier, prefix []byte, fn func(key, value []byte) bool) error {
	iter := q.NewIterator(util.BytesPrefix(prefix), nil)
	defer iter.Release()

	for iter.Next() {
		if !fn(iter.Key(), iter.Value()) {
			break
		}
	}

	if err := iter.Error(); err != nil {
		return fmt.Errorf("failed to iterate %s: %w", prefix, err)
	}
	return nil
}
