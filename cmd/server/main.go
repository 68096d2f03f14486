package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"sync"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"chesskit/board"
	"chesskit/render"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	flag.Parse()

	srv := newServer()
	fmt.Printf("Listening on %s\n", *addr)
	if err := http.ListenAndServe(*addr, handlers.LoggingHandler(os.Stdout, srv.router)); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

// session is one hosted game. The mutex serializes all game access; the
// engine itself is not safe for concurrent mutation.
type session struct {
	mu      sync.Mutex
	game    *board.Game
	clients map[*websocket.Conn]struct{}
}

type server struct {
	router   *mux.Router
	upgrader websocket.Upgrader

	mu       sync.RWMutex
	sessions map[string]*session
	nextID   int
}

func newServer() *server {
	s := &server{
		router:   mux.NewRouter(),
		sessions: make(map[string]*session),
		nextID:   1,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	s.router.HandleFunc("/api/games", s.createGame).Methods(http.MethodPost)
	s.router.HandleFunc("/api/games/{id}", s.getGame).Methods(http.MethodGet)
	s.router.HandleFunc("/api/games/{id}/moves", s.getMoves).Methods(http.MethodGet)
	s.router.HandleFunc("/api/games/{id}/moves", s.postMove).Methods(http.MethodPost)
	s.router.HandleFunc("/api/games/{id}/moves/last", s.undoMove).Methods(http.MethodDelete)
	s.router.HandleFunc("/api/games/{id}/board.svg", s.boardSVG).Methods(http.MethodGet)
	s.router.HandleFunc("/api/games/{id}/ws", s.wsHandler)
	return s
}

// gameState is the JSON shape broadcast to clients and returned by the
// state endpoints.
type gameState struct {
	ID       string `json:"id"`
	FEN      string `json:"fen"`
	Turn     string `json:"turn"`
	Ply      int    `json:"ply"`
	LastMove string `json:"lastMove,omitempty"`
	Check    bool   `json:"check"`
	Result   string `json:"result"`
	Material int    `json:"material"`
}

// stateLocked builds the JSON state. The caller holds the session lock.
func stateLocked(id string, sess *session) gameState {
	st := gameState{
		ID:       id,
		FEN:      sess.game.FEN(),
		Turn:     sess.game.Turn().String(),
		Ply:      sess.game.Ply(),
		Check:    sess.game.InCheck(),
		Result:   sess.game.Result().String(),
		Material: sess.game.MaterialScore(),
	}
	if last := sess.game.LastMove(); !last.IsNull() {
		st.LastMove = last.UCI()
	}
	return st
}

func (s *server) createGame(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FEN string `json:"fen"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	if req.FEN == "" {
		req.FEN = "Standard"
	}

	game, err := board.LoadFEN(req.FEN)
	if err != nil {
		httpError(w, err, http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	id := strconv.Itoa(s.nextID)
	s.nextID++
	sess := &session{game: game, clients: make(map[*websocket.Conn]struct{})}
	s.sessions[id] = sess
	s.mu.Unlock()

	sess.mu.Lock()
	defer sess.mu.Unlock()
	writeJSON(w, http.StatusCreated, stateLocked(id, sess))
}

func (s *server) session(r *http.Request) (string, *session, bool) {
	id := mux.Vars(r)["id"]
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	return id, sess, ok
}

func (s *server) getGame(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := s.session(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	writeJSON(w, http.StatusOK, stateLocked(id, sess))
}

func (s *server) getMoves(w http.ResponseWriter, r *http.Request) {
	_, sess, ok := s.session(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	moves := make(map[string][]string)
	for from, dests := range sess.game.AllowedMoves() {
		targets := make([]string, len(dests))
		for i, to := range dests {
			targets[i] = to.String()
		}
		moves[from.String()] = targets
	}
	writeJSON(w, http.StatusOK, moves)
}

func (s *server) postMove(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := s.session(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	var req struct {
		Move string `json:"move"`
		SAN  string `json:"san"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, err, http.StatusBadRequest)
		return
	}

	sess.mu.Lock()
	var err error
	switch {
	case req.Move != "":
		var m board.Move
		if m, err = board.MoveFromUCI(req.Move); err == nil {
			err = sess.game.Push(m)
		}
	case req.SAN != "":
		_, err = sess.game.PushSAN(req.SAN)
	default:
		err = fmt.Errorf("request needs a \"move\" or \"san\" field")
	}
	if err != nil {
		sess.mu.Unlock()
		httpError(w, err, http.StatusBadRequest)
		return
	}
	st := stateLocked(id, sess)
	sess.mu.Unlock()

	s.broadcast(sess, st)
	writeJSON(w, http.StatusOK, st)
}

func (s *server) undoMove(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := s.session(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	sess.mu.Lock()
	if err := sess.game.Undo(); err != nil {
		sess.mu.Unlock()
		httpError(w, err, http.StatusBadRequest)
		return
	}
	st := stateLocked(id, sess)
	sess.mu.Unlock()

	s.broadcast(sess, st)
	writeJSON(w, http.StatusOK, st)
}

func (s *server) boardSVG(w http.ResponseWriter, r *http.Request) {
	_, sess, ok := s.session(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	w.Header().Set("Content-Type", "image/svg+xml")
	render.Game(w, sess.game)
}

func (s *server) wsHandler(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := s.session(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	sess.mu.Lock()
	sess.clients[conn] = struct{}{}
	st := stateLocked(id, sess)
	sess.mu.Unlock()
	_ = conn.WriteJSON(st)

	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				sess.mu.Lock()
				delete(sess.clients, conn)
				sess.mu.Unlock()
				conn.Close()
				return
			}
		}
	}()
}

// broadcast sends the new state to every websocket client of the
// session.
func (s *server) broadcast(sess *session, st gameState) {
	sess.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(sess.clients))
	for conn := range sess.clients {
		conns = append(conns, conn)
	}
	sess.mu.Unlock()

	for _, conn := range conns {
		_ = conn.WriteJSON(st)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, err error, status int) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
