/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialPlay(t *testing.T, srv *httptest.Server, name string) (*websocket.Conn, *http.Response, error) {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/jugar/" + name + "/ws"

	return websocket.DefaultDialer.Dial(url, nil)
}

func TestPlayOverWebsocket(t *testing.T) {
	s := newTestServer(t)
	s.save(t, "CAT")

	srv := httptest.NewServer(s.router)
	t.Cleanup(srv.Close)

	conn, _, err := dialPlay(t, srv, "CAT")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	exchange := func(req PlayRequest) map[string]any {
		require.NoError(t, conn.WriteJSON(req))

		var reply map[string]any
		require.NoError(t, conn.ReadJSON(&reply))

		return reply
	}

	reply := exchange(PlayRequest{Type: "obfuscate", Mode: "incompletoTotal"})
	assert.Equal(t, "puzzle", reply["type"])
	assert.Equal(t, "___", reply["nombreManipulado"])
	assert.Equal(t, []any{"T", "A", "C"}, reply["letrasEliminadas"])

	reply = exchange(PlayRequest{Type: "guess", Mode: "incompleto1", Guess: "c"})
	assert.Equal(t, "guess_result", reply["type"])
	assert.Equal(t, true, reply["correct"])

	reply = exchange(PlayRequest{Type: "guess", Mode: "incompleto1", Guess: "t"})
	assert.Equal(t, false, reply["correct"])
	assert.Equal(t, msgWrongLetter, reply["message"])

	reply = exchange(PlayRequest{Type: "obfuscate", Mode: "bogus"})
	assert.Equal(t, "error", reply["type"])
	assert.Equal(t, msgInvalidMode, reply["message"])

	reply = exchange(PlayRequest{Type: "guess", Mode: "incompleto1", Guess: "ca"})
	assert.Equal(t, msgInvalidGuess, reply["message"])
}

func TestPlayUnknownPresentation(t *testing.T) {
	s := newTestServer(t)

	srv := httptest.NewServer(s.router)
	t.Cleanup(srv.Close)

	_, resp, err := dialPlay(t, srv, "Nope")
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPlayChecksOrigin(t *testing.T) {
	s := newTestServer(t)
	s.save(t, "CAT")
	s.cfg.corsOrigin = "http://app.example"

	srv := httptest.NewServer(newRouter(s.cfg, s.svc, s.errs))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/jugar/CAT/ws"

	for origin, ok := range map[string]bool{
		"http://app.example":  true,
		srv.URL:               true,
		"http://evil.example": false,
	} {
		conn, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {origin}})
		if ok {
			require.NoError(t, err, origin)
			_ = conn.Close()

			continue
		}

		require.Error(t, err, origin)
		require.NotNil(t, resp, origin)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, origin)
	}
}
