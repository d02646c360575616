package app

import (
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
)

// NotFoundPage 静态目录中的404页面
const NotFoundPage = "404.html"

// staticHandler 提供前端静态文件；不存在的路径返回 404.html
type staticHandler struct {
	fsys       fs.FS
	fileServer http.Handler
}

func newStaticHandler(fsys fs.FS) *staticHandler {
	return &staticHandler{fsys: fsys, fileServer: http.FileServer(http.FS(fsys))}
}

func (s *staticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "方法不允许", http.StatusMethodNotAllowed)
		return
	}

	name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if name == "" {
		name = "."
	}
	if _, err := fs.Stat(s.fsys, name); err != nil {
		s.notFound(w)
		return
	}
	s.fileServer.ServeHTTP(w, r)
}

func (s *staticHandler) notFound(w http.ResponseWriter) {
	page, err := fs.ReadFile(s.fsys, NotFoundPage)
	if err != nil {
		http.NotFound(w, nil)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if _, err := w.Write(page); err != nil {
		slog.Debug("写入404页面失败", "error", err)
	}
}
