package connect

import (
	"maps"
	"sync"

	"github.com/heartmarshall/ewasl-backend/internal/domain"
)

// Staged keys. They live only for the duration of one attempt.
const (
	KeyState  = "ewasl_oauth_state"
	KeyToken  = "ewasl_oauth_token"
	KeySecret = "ewasl_oauth_secret"
)

// Scope isolates the staged values of one attempt.
type Scope struct {
	Platform  domain.Platform
	AttemptID string
}

// StagingStore keeps correlation values between starting an attempt and
// resolving it.
type StagingStore interface {
	Put(scope Scope, key, value string)
	Get(scope Scope, key string) (string, bool)
	Clear(scope Scope)
}

// MemoryStaging is a StagingStore held in process memory.
type MemoryStaging struct {
	mu   sync.Mutex
	data map[Scope]map[string]string
}

// NewMemoryStaging creates an empty store.
func NewMemoryStaging() *MemoryStaging {
	return &MemoryStaging{data: make(map[Scope]map[string]string)}
}

func (m *MemoryStaging) Put(scope Scope, key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kv, ok := m.data[scope]
	if !ok {
		kv = make(map[string]string, 3)
		m.data[scope] = kv
	}
	kv[key] = value
}

func (m *MemoryStaging) Get(scope Scope, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.data[scope][key]
	return v, ok
}

func (m *MemoryStaging) Clear(scope Scope) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, scope)
}

// Snapshot returns a copy of the values staged under scope.
func (m *MemoryStaging) Snapshot(scope Scope) map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return maps.Clone(m.data[scope])
}

// Len returns the number of scopes holding values.
func (m *MemoryStaging) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.data)
}
