package attachment

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

const previewScheme = "preview:"

// Previews mints and releases preview handles for staged files. Every handle
// returned by Create must eventually be passed to Revoke.
type Previews interface {
	Create(file File) string
	Revoke(url string)
}

// Registry is the in-memory Previews implementation. It keeps the live
// handles so leaks are observable.
type Registry struct {
	mu   sync.Mutex
	live map[string]File
}

var _ Previews = (*Registry)(nil)

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{live: make(map[string]File)}
}

// Create registers file and returns a fresh preview:<uuid> handle.
func (r *Registry) Create(file File) string {
	url := previewScheme + uuid.NewString()
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.live == nil {
		r.live = make(map[string]File)
	}
	r.live[url] = file
	return url
}

// Revoke releases a handle. Unknown handles are ignored.
func (r *Registry) Revoke(url string) {
	if !strings.HasPrefix(url, previewScheme) {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.live, url)
}

// Live lists the handles not yet revoked, sorted.
func (r *Registry) Live() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.live))
	for url := range r.live {
		out = append(out, url)
	}
	sort.Strings(out)
	return out
}
