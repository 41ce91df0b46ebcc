// Package dbtest contains the conformance tests shared by every tosdb
// key-value store implementation.
package dbtest

import (
	"bytes"
	"testing"

	"github.com/tos-network/unocrypto/tosdb"
)

// TestDatabaseSuite runs a suite of tests against a KeyValueStore database
// implementation.
func TestDatabaseSuite(t *testing.T, New func() tosdb.KeyValueStore) {
	t.Run("KeyValueOperations", func(t *testing.T) {
		db := New()
		defer db.Close()

		key := []byte("ecdlp/compact/test")
		value := []byte("table-bytes")

		// Verify empty lookups
		if ok, err := db.Has(key); err != nil {
			t.Fatalf("Has on empty db: %v", err)
		} else if ok {
			t.Fatal("key present before insertion")
		}
		if _, err := db.Get(key); err == nil {
			t.Fatal("expected error fetching missing key")
		}

		// Insert and retrieve
		if err := db.Put(key, value); err != nil {
			t.Fatalf("Put: %v", err)
		}
		if ok, err := db.Has(key); err != nil || !ok {
			t.Fatalf("Has after put: ok=%v err=%v", ok, err)
		}
		got, err := db.Get(key)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if !bytes.Equal(got, value) {
			t.Fatalf("value mismatch: got %q want %q", got, value)
		}

		// Overwrite
		if err := db.Put(key, []byte("updated")); err != nil {
			t.Fatalf("Put overwrite: %v", err)
		}
		if got, _ := db.Get(key); !bytes.Equal(got, []byte("updated")) {
			t.Fatalf("overwrite not visible: %q", got)
		}

		// Delete
		if err := db.Delete(key); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if ok, err := db.Has(key); err != nil || ok {
			t.Fatalf("Has after delete: ok=%v err=%v", ok, err)
		}
	})

	t.Run("ValueIsolation", func(t *testing.T) {
		db := New()
		defer db.Close()

		value := []byte{1, 2, 3}
		if err := db.Put([]byte("k"), value); err != nil {
			t.Fatalf("Put: %v", err)
		}
		value[0] = 0xff

		got, err := db.Get([]byte("k"))
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got[0] != 1 {
			t.Fatal("stored value aliased caller buffer")
		}
	})

	t.Run("EmptyValue", func(t *testing.T) {
		db := New()
		defer db.Close()

		if err := db.Put([]byte("empty"), nil); err != nil {
			t.Fatalf("Put: %v", err)
		}
		if ok, err := db.Has([]byte("empty")); err != nil || !ok {
			t.Fatalf("Has: ok=%v err=%v", ok, err)
		}
		got, err := db.Get([]byte("empty"))
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("expected empty value, got %x", got)
		}
	})
}
