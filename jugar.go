/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Play channel for the fill-in-the-letters game.
//
// Every message a player sends is answered on its own: the server looks the
// presentation up, redacts its name with the requested mode and, for a
// guess, checks the letter against that redaction. Nothing about a player
// is remembered between messages.

package main

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Seednode/completar/games/completar"
	"github.com/Seednode/completar/presentations"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
)

const writeWait = 10 * time.Second

// Messages coming from clients
type PlayRequest struct {
	Type  string `json:"type"`            // "obfuscate", "guess"
	Mode  string `json:"tipo"`            // mode token, e.g. "incompleto1"
	Guess string `json:"letra,omitempty"` // guess
}

// PuzzleMessage answers "obfuscate" and correct guesses.
type PuzzleMessage struct {
	Type string `json:"type"` // "puzzle"
	Mode string `json:"tipo"`
	puzzle
}

// GuessResultMessage answers "guess".
type GuessResultMessage struct {
	Type    string `json:"type"` // "guess_result"
	Mode    string `json:"tipo"`
	Guess   string `json:"letra"`
	Correct bool   `json:"correct"`
	Message string `json:"message,omitempty"`
}

// ErrorMessage is sent for requests that cannot be answered.
type ErrorMessage struct {
	Type    string `json:"type"` // "error"
	Message string `json:"message"`
}

type Client struct {
	conn *websocket.Conn
	send chan any
	name string
}

// newUpgrader accepts same-origin connections plus the origins CORS allows.
func newUpgrader(cfg *Config) *websocket.Upgrader {
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}

			u, err := url.Parse(origin)
			if err == nil && strings.EqualFold(u.Host, r.Host) {
				return true
			}

			return cfg.allowedOrigin(origin) != ""
		},
	}
}

// answer builds the reply to a single request.
func answer(ctx context.Context, svc *services, name string, req PlayRequest) any {
	p, err := svc.store.FindByName(ctx, name)
	switch {
	case errors.Is(err, presentations.ErrNotFound):
		return ErrorMessage{Type: "error", Message: msgNotFound}
	case err != nil:
		logrus.WithError(err).WithField("nombre", name).Error("ERROR: presentation lookup failed")
		return ErrorMessage{Type: "error", Message: msgLookupFailed}
	}

	mode, err := completar.ParseMode(req.Mode)
	if err != nil {
		return ErrorMessage{Type: "error", Message: msgInvalidMode}
	}

	res, err := svc.engine.Obfuscate(p.Name, mode)
	if err != nil {
		return ErrorMessage{Type: "error", Message: err.Error()}
	}

	svc.metrics.obfuscations.WithLabelValues(mode.String()).Inc()

	switch req.Type {
	case "obfuscate":
		return PuzzleMessage{Type: "puzzle", Mode: mode.String(), puzzle: newPuzzle(res)}
	case "guess":
		correct, err := res.Check(req.Guess)
		if err != nil {
			return ErrorMessage{Type: "error", Message: msgInvalidGuess}
		}

		svc.metrics.guess(mode.String(), correct)

		result := GuessResultMessage{
			Type:    "guess_result",
			Mode:    mode.String(),
			Guess:   req.Guess,
			Correct: correct,
		}
		if !correct {
			result.Message = msgWrongLetter
		}

		return result
	default:
		return ErrorMessage{Type: "error", Message: "unknown message type"}
	}
}

func serveWS(cfg *Config, svc *services) httprouter.Handle {
	upgrader := newUpgrader(cfg)

	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		name := ps.ByName("nombre")

		if _, err := svc.store.FindByName(r.Context(), name); err != nil {
			if errors.Is(err, presentations.ErrNotFound) {
				http.Error(w, msgNotFound, http.StatusNotFound)
			} else {
				http.Error(w, msgLookupFailed, http.StatusInternalServerError)
			}
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logrus.WithError(err).Warn("websocket upgrade failed")
			return
		}

		client := &Client{
			conn: conn,
			send: make(chan any, 8),
			name: name,
		}

		svc.metrics.players.Inc()
		defer svc.metrics.players.Dec()

		logf(cfg, "GAMES: Player %s joined %q", realIP(r), name)

		go client.writePump()
		client.readPump(cfg, svc)

		logf(cfg, "GAMES: Player %s left %q", realIP(r), name)
	}
}

func (c *Client) readPump(cfg *Config, svc *services) {
	defer func() {
		close(c.send)
		_ = c.conn.Close()
	}()

	for {
		deadline := time.Time{}
		if cfg.idleTimeout > 0 {
			deadline = time.Now().Add(cfg.idleTimeout)
		}
		_ = c.conn.SetReadDeadline(deadline)

		var msg PlayRequest
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		reply := answer(ctx, svc, c.name, msg)
		cancel()

		select {
		case c.send <- reply:
		default:
			// slow reader
			return
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

func servePlayPage(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		serveEmbedded(cfg, w, "assets/jugar.html", errs)
	}
}

// registerJugar sets up routes so that:
//   - $path/:nombre          → HTML client
//   - $path/:nombre/ws       → WebSocket play channel
func registerJugar(cfg *Config, path string, mux *httprouter.Router, svc *services, errs chan<- error) {
	mux.GET(cfg.prefix+path+"/:nombre", svc.metrics.instrument(path+"/:nombre", servePlayPage(cfg, errs)))

	mux.GET(cfg.prefix+path+"/:nombre/ws", serveWS(cfg, svc))
}
