package slack

import (
	"net/http"
	"net/http/httptest"
	"sync"
)

// mockSlackServer creates a test HTTP server that mocks Slack API responses
type mockSlackServer struct {
	server   *httptest.Server
	handlers map[string]http.HandlerFunc

	mu       sync.Mutex
	requests map[string]int
}

func newMockSlackServer() *mockSlackServer {
	m := &mockSlackServer{
		handlers: make(map[string]http.HandlerFunc),
		requests: make(map[string]int),
	}

	m.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		m.mu.Lock()
		m.requests[path]++
		m.mu.Unlock()

		if handler, ok := m.handlers[path]; ok {
			handler(w, r)
			return
		}

		http.Error(w, "mock not found: "+path, http.StatusNotFound)
	}))

	return m
}

func (m *mockSlackServer) close() {
	m.server.Close()
}

func (m *mockSlackServer) addHandler(path string, handler http.HandlerFunc) {
	m.handlers[path] = handler
}

// requestCount returns how many requests have hit the given path
func (m *mockSlackServer) requestCount(path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests[path]
}
