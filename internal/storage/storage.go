// Package storage provides the durable snapshot store: namespaced JSON
// blobs behind a small key-value contract. The task repository and the
// pomodoro ledger each persist to their own namespace.
package storage

// Store is the contract the domain packages consume. Load returns nil
// data with a nil error when the namespace has never been saved; a
// corrupt payload is the caller's problem to fall back from.
type Store interface {
	Load(namespace string) ([]byte, error)
	Save(namespace string, data []byte) error
}
