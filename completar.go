/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"net/http"

	"github.com/Seednode/completar/games/completar"
	"github.com/Seednode/completar/presentations"
	"github.com/julienschmidt/httprouter"
)

const (
	msgNotFound     = "No se encontró la presentación con ese nombre"
	msgLookupFailed = "Error al obtener la presentación"
	msgInvalidMode  = "Tipo no válido"
	msgWrongLetter  = "Letra faltante incorrecta"
	msgInvalidGuess = "Letra faltante no válida"
)

// puzzle is the wire form of an obfuscation result.
// Rendered is a string, or a list of characters for letrasSeparadas.
type puzzle struct {
	Original string   `json:"nombreOriginal"`
	Rendered any      `json:"nombreManipulado"`
	Removed  []string `json:"letrasEliminadas"`
}

func newPuzzle(res completar.Result) puzzle {
	p := puzzle{
		Original: res.Name,
		Rendered: res.Rendered,
		Removed:  res.RemovedStrings(),
	}
	if res.Mode == completar.Spaced {
		p.Rendered = res.Letters
	}

	return p
}

// lookupPresentation writes a 404 or 500 response and returns false when
// the name cannot be resolved.
func lookupPresentation(cfg *Config, svc *services, w http.ResponseWriter, r *http.Request, name string, errs chan<- error) (*presentations.Presentation, bool) {
	p, err := svc.store.FindByName(r.Context(), name)
	switch {
	case errors.Is(err, presentations.ErrNotFound):
		serveMessage(cfg, w, http.StatusNotFound, msgNotFound, errs)
		return nil, false
	case err != nil:
		serveMessage(cfg, w, http.StatusInternalServerError, msgLookupFailed, errs)
		reportError(errs, err)
		return nil, false
	}

	return p, true
}

// obfuscate runs the engine for the token and maps engine errors to 400.
func obfuscate(cfg *Config, svc *services, w http.ResponseWriter, name, token string, errs chan<- error) (completar.Result, bool) {
	mode, err := completar.ParseMode(token)
	if err != nil {
		serveMessage(cfg, w, http.StatusBadRequest, msgInvalidMode, errs)
		return completar.Result{}, false
	}

	res, err := svc.engine.Obfuscate(name, mode)
	if err != nil {
		serveMessage(cfg, w, http.StatusBadRequest, err.Error(), errs)
		return completar.Result{}, false
	}

	svc.metrics.obfuscations.WithLabelValues(mode.String()).Inc()

	return res, true
}

func servePresentation(cfg *Config, svc *services, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		p, ok := lookupPresentation(cfg, svc, w, r, ps.ByName("nombre"), errs)
		if !ok {
			return
		}

		serveJSON(cfg, w, http.StatusOK, p, errs)
	}
}

func serveObfuscated(cfg *Config, svc *services, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		p, ok := lookupPresentation(cfg, svc, w, r, ps.ByName("nombre"), errs)
		if !ok {
			return
		}

		res, ok := obfuscate(cfg, svc, w, p.Name, ps.ByName("tipo"), errs)
		if !ok {
			return
		}

		logf(cfg, "GAMES: Served %s of %q to %s", res.Mode, p.Name, realIP(r))

		serveJSON(cfg, w, http.StatusOK, newPuzzle(res), errs)
	}
}

// serveGuess answers with the puzzle only when the letter was one of those
// removed in this same request.
func serveGuess(cfg *Config, svc *services, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		p, ok := lookupPresentation(cfg, svc, w, r, ps.ByName("nombre"), errs)
		if !ok {
			return
		}

		res, ok := obfuscate(cfg, svc, w, p.Name, ps.ByName("tipo"), errs)
		if !ok {
			return
		}

		correct, err := res.Check(ps.ByName("letra"))
		if err != nil {
			serveMessage(cfg, w, http.StatusBadRequest, msgInvalidGuess, errs)

			return
		}

		svc.metrics.guess(res.Mode.String(), correct)

		logf(cfg, "GAMES: %s guessed %q for %s of %q (correct: %t)", realIP(r), ps.ByName("letra"), res.Mode, p.Name, correct)

		if !correct {
			serveMessage(cfg, w, http.StatusBadRequest, msgWrongLetter, errs)

			return
		}

		serveJSON(cfg, w, http.StatusOK, newPuzzle(res), errs)
	}
}

func registerCompletar(cfg *Config, path string, mux *httprouter.Router, svc *services, errs chan<- error) {
	m := svc.metrics

	mux.GET(cfg.prefix+path+"/:nombre", m.instrument(path+"/:nombre", servePresentation(cfg, svc, errs)))

	mux.GET(cfg.prefix+path+"/:nombre/:tipo", m.instrument(path+"/:nombre/:tipo", serveObfuscated(cfg, svc, errs)))

	mux.GET(cfg.prefix+path+"/:nombre/:tipo/:letra", m.instrument(path+"/:nombre/:tipo/:letra", serveGuess(cfg, svc, errs)))
}
