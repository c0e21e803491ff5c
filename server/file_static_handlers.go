package server

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"path"
	"sync"
)

//go:embed static/*
var staticFiles embed.FS

var (
	staticOnce sync.Once
	staticFS   fs.FS
)

// StaticFilesFS returns the embedded assets rooted at static/.
func StaticFilesFS() fs.FS {
	staticOnce.Do(func() {
		sub, err := fs.Sub(staticFiles, "static")
		if err != nil {
			panic("static assets: " + err.Error())
		}
		staticFS = sub
	})
	return staticFS
}

// StreamFile writes one embedded stylesheet. Only css/ is served.
func StreamFile(w http.ResponseWriter, _ *http.Request, fileName string) error {
	fileName = path.Clean(fileName)
	if !fs.ValidPath(fileName) || path.Dir(fileName) != "css" || path.Ext(fileName) != ".css" {
		return fmt.Errorf("%s: %w", fileName, fs.ErrNotExist)
	}
	data, err := fs.ReadFile(StaticFilesFS(), fileName)
	if err != nil {
		return fmt.Errorf("read %s: %w", fileName, err)
	}

	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", fileName, err)
	}
	return nil
}
