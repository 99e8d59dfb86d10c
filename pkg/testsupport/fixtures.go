package testsupport

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-leadform/pkg/lead"
)

// Capture is one multipart request received by a RelayServer. Files and
// Filenames are keyed by form part name.
type Capture struct {
	Values    map[string]string
	Files     map[string]string
	Filenames map[string]string
}

// RelayServer stands in for the hosted form relay. It records every POST and
// answers with a fixed status and body.
type RelayServer struct {
	*httptest.Server

	mu       sync.Mutex
	captures []Capture
}

// NewRelayServer starts a server that is closed when the test ends.
func NewRelayServer(t *testing.T, status int, body string) *RelayServer {
	t.Helper()

	s := &RelayServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		} else {
			s.record(t, r)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *RelayServer) record(t *testing.T, r *http.Request) {
	c := Capture{
		Values:    make(map[string]string),
		Files:     make(map[string]string),
		Filenames: make(map[string]string),
	}
	for key, vals := range r.MultipartForm.Value {
		c.Values[key] = vals[0]
	}
	for key, headers := range r.MultipartForm.File {
		fh, err := headers[0].Open()
		if err != nil {
			t.Errorf("open %s: %v", key, err)
			continue
		}
		data, _ := io.ReadAll(fh)
		fh.Close()
		c.Files[key] = string(data)
		c.Filenames[key] = headers[0].Filename
	}

	s.mu.Lock()
	s.captures = append(s.captures, c)
	s.mu.Unlock()
}

// Captures returns the recorded requests in arrival order.
func (s *RelayServer) Captures() []Capture {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Capture(nil), s.captures...)
}

// Last returns the most recent request, or a zero Capture.
func (s *RelayServer) Last() Capture {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.captures) == 0 {
		return Capture{}
	}
	return s.captures[len(s.captures)-1]
}

// SampleLead returns a lead that passes validation.
func SampleLead() lead.Fields {
	return lead.Fields{
		Name:         "Ana Anić",
		Email:        "ana@example.com",
		Phone:        "0991234567",
		CarMakeModel: "VW Golf",
		Year:         "2015",
		Mileage:      "150000",
	}
}

// WriteFile writes data under the test's temp dir and returns the path.
func WriteFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

// WriteLeadFile stores fields as a YAML lead file.
func WriteLeadFile(t *testing.T, fields lead.Fields) string {
	t.Helper()

	data, err := yaml.Marshal(fields)
	if err != nil {
		t.Fatalf("marshal lead: %v", err)
	}
	return WriteFile(t, "lead.yaml", data)
}
