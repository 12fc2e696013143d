/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"net/http"
	"os"

	"github.com/julienschmidt/httprouter"
)

// fileOnlyFS hides directories so uploaded media cannot be enumerated.
type fileOnlyFS struct {
	fs http.FileSystem
}

func (f fileOnlyFS) Open(name string) (http.File, error) {
	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, err
	}

	if info.IsDir() {
		_ = file.Close()
		return nil, os.ErrNotExist
	}

	return file, nil
}

// servePublicFiles serves uploaded media. Other origins may embed it.
func servePublicFiles(dir string) httprouter.Handle {
	fileServer := http.FileServer(fileOnlyFS{fs: http.Dir(dir)})

	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		w.Header().Set("Cross-Origin-Resource-Policy", "cross-origin")
		w.Header().Set("X-Content-Type-Options", "nosniff")

		r.URL.Path = ps.ByName("filepath")
		fileServer.ServeHTTP(w, r)
	}
}
