package postgres

import (
	"os"
	"testing"

	"github.com/kk-code-lab/tagdir/internal/store"
	"github.com/kk-code-lab/tagdir/internal/store/storetest"
)

// Set TAGDIR_TEST_DATABASE_URL to a disposable database to run these tests.
func TestStoreContract(t *testing.T) {
	url := os.Getenv("TAGDIR_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TAGDIR_TEST_DATABASE_URL not set")
	}

	storetest.Run(t, func(t *testing.T) store.TagStore {
		s, err := Open(t.Context(), url)
		if err != nil {
			t.Fatalf("Open failed: %v", err)
		}
		if _, err := s.pool.Exec(t.Context(), "TRUNCATE tagged_files, tags RESTART IDENTITY CASCADE"); err != nil {
			t.Fatalf("truncate failed: %v", err)
		}
		return s
	})
}
