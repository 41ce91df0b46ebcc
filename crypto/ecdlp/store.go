package ecdlp

import (
	"encoding/binary"
	"fmt"

	"github.com/ethereum/go-ethereum/log"
	"github.com/tos-network/unocrypto/tosdb"
	"go.dedis.ch/kyber/v3"
	"golang.org/x/crypto/sha3"
)

const (
	tableKeyPrefix = "ecdlp-table-"
	entrySize      = 12 // digest uint64 || index uint32, little endian
)

// TableStore persists precomputed compact tables so later processes can skip
// the build. Stored tables are addressed by algorithm, digest, group, base
// and width, so a change to any of them misses the cache.
type TableStore struct {
	db tosdb.KeyValueStore
}

// NewTableStore wraps db.
func NewTableStore(db tosdb.KeyValueStore) *TableStore {
	return &TableStore{db: db}
}

// tableKey derives the database key of a table.
func tableKey(algorithm, digest string, group kyber.Group, base kyber.Point, width int) ([]byte, error) {
	enc, err := base.MarshalBinary()
	if err != nil {
		return nil, err
	}
	h := sha3.New256()
	h.Write([]byte(group.String()))
	h.Write(enc)
	fingerprint := h.Sum(nil)[:8]
	return []byte(fmt.Sprintf("%s%s-%s-%x-%d", tableKeyPrefix, algorithm, digest, fingerprint, width)), nil
}

// loadEntries returns the stored entries under key if exactly m well-ordered
// entries are present. Anything else is reported as a miss.
func (s *TableStore) loadEntries(key []byte, m uint64) ([]compactEntry, bool) {
	if ok, err := s.db.Has(key); err != nil || !ok {
		return nil, false
	}
	blob, err := s.db.Get(key)
	if err != nil {
		log.Warn("Failed to read stored discrete log table", "key", string(key), "err", err)
		return nil, false
	}
	if uint64(len(blob)) != m*entrySize {
		log.Warn("Ignoring stored discrete log table with wrong size", "key", string(key), "have", len(blob), "want", m*entrySize)
		return nil, false
	}
	entries := make([]compactEntry, m)
	for i := range entries {
		off := i * entrySize
		entries[i] = compactEntry{
			digest: binary.LittleEndian.Uint64(blob[off:]),
			index:  binary.LittleEndian.Uint32(blob[off+8:]),
		}
		if i > 0 && entries[i].less(entries[i-1]) {
			log.Warn("Ignoring unsorted stored discrete log table", "key", string(key), "entry", i)
			return nil, false
		}
	}
	return entries, true
}

// storeEntries writes entries under key.
func (s *TableStore) storeEntries(key []byte, entries []compactEntry) error {
	blob := make([]byte, len(entries)*entrySize)
	for i, e := range entries {
		off := i * entrySize
		binary.LittleEndian.PutUint64(blob[off:], e.digest)
		binary.LittleEndian.PutUint32(blob[off+8:], e.index)
	}
	return s.db.Put(key, blob)
}
