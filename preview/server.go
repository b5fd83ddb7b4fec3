/*
Package preview serves the most recent rendering of a raw image over HTTP.

Browsers load the page at "/" which shows "/image.png" and listens on the
"/ws" websocket, reloading the image whenever the server sends a message.
*/
package preview

import (
	"html/template"
	"log"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
)

const reloadMessage = "reload"

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head><title>{{.}}</title></head>
<body>
<p>{{.}}</p>
<img id="image" src="image.png">
<script>
(function() {
	var img = document.getElementById("image");
	var ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
	ws.onmessage = function() {
		img.src = "image.png?" + Date.now();
	};
})();
</script>
</body>
</html>
`))

// Server is an http.Handler serving the current image.
type Server struct {
	title    string
	logger   *log.Logger
	router   chi.Router
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	image   []byte
	clients map[chan struct{}]struct{}
}

// New returns a Server whose page is headed with title.
func New(title string, logger *log.Logger) *Server {
	s := &Server{
		title:   title,
		logger:  logger,
		clients: make(map[chan struct{}]struct{}),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", s.handlePage)
	r.Get("/image.png", s.handleImage)
	r.Get("/ws", s.handleWebsocket)
	s.router = r

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Update replaces the served PNG image and tells every connected browser to
// reload it.
func (s *Server) Update(png []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.image = png
	for c := range s.clients {
		select {
		case c <- struct{}{}:
		default:
		}
	}
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Execute(w, s.title); err != nil {
		s.logger.Printf("Cannot write page: %s\n", err)
	}
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	b := s.image
	s.mu.RUnlock()

	if b == nil {
		http.Error(w, "no image yet", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(b)
}

func (s *Server) subscribe() chan struct{} {
	c := make(chan struct{}, 1)
	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()
	return c
}

func (s *Server) unsubscribe(c chan struct{}) {
	s.mu.Lock()
	delete(s.clients, c)
	s.mu.Unlock()
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("Cannot upgrade %s: %s\n", r.RemoteAddr, err)
		return
	}
	defer conn.Close()

	c := s.subscribe()
	defer s.unsubscribe(c)

	s.logger.Printf("Client connected from %s\n", conn.RemoteAddr())

	// Nothing is expected from the browser, reading just notices it going
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-c:
			if err := conn.WriteMessage(websocket.TextMessage, []byte(reloadMessage)); err != nil {
				s.logger.Printf("Cannot notify %s: %s\n", conn.RemoteAddr(), err)
				return
			}
		case <-done:
			s.logger.Printf("Client %s disconnected\n", conn.RemoteAddr())
			return
		case <-r.Context().Done():
			return
		}
	}
}

// Clients returns the number of connected browsers.
func (s *Server) Clients() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}
