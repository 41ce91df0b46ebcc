package memorydb

import (
	"testing"

	"github.com/tos-network/unocrypto/tosdb"
	"github.com/tos-network/unocrypto/tosdb/dbtest"
)

func TestMemoryDB(t *testing.T) {
	t.Run("DatabaseSuite", func(t *testing.T) {
		dbtest.TestDatabaseSuite(t, func() tosdb.KeyValueStore {
			return New()
		})
	})
}

func TestMemoryDBClosed(t *testing.T) {
	db := New()
	if err := db.Put([]byte("a"), []byte("b")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if db.Len() != 1 {
		t.Fatalf("unexpected length: %d", db.Len())
	}
	db.Close()
	if _, err := db.Get([]byte("a")); err != errMemorydbClosed {
		t.Fatalf("expected closed error, got %v", err)
	}
	if err := db.Put([]byte("a"), nil); err != errMemorydbClosed {
		t.Fatalf("expected closed error, got %v", err)
	}
}
