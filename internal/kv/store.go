package kv

import "context"

// Store is a string-keyed blob store. It is the single persistence
// collaborator for carts, invoices, users and the login session; values are
// JSON-encoded blobs and writes are last-write-wins.
type Store interface {
	// Get retrieves the blob stored under key.
	// The second return value reports whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores the blob under key, replacing any previous value
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Flush forces any buffered state to durable storage
	Flush(ctx context.Context) error

	// Close flushes and releases the store
	Close() error
}

// Well-known persistence keys. These are part of the external contract and
// must not change between releases or previously saved state is orphaned.
const (
	KeyCart         = "cart"
	KeyLastInvoice  = "lastInvoice"
	KeyLoggedInUser = "loggedInUser"
	KeyUsers        = "users"
)
