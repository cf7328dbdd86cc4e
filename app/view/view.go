// Package view renders the HTML pages. Templates ship embedded in the
// binary; pointing the renderer at an on-disk directory switches to that copy
// and reloads it whenever a template file changes.
package view

import (
	"context"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

//go:embed templates/*.html
var embedded embed.FS

var pages = []string{
	"register_form",
	"login_form",
	"user_page",
	"feedback_form",
	"update_feedback",
	"feedback_page",
}

// Page is the data every template receives.
type Page struct {
	Title   string
	Ident   string // logged-in username, empty when anonymous
	Notices []string
	Data    any
	Errors  []string
}

type Renderer struct {
	dir string
	log zerolog.Logger

	mu        sync.RWMutex
	templates map[string]*template.Template
}

func New(dir string, log zerolog.Logger) (*Renderer, error) {
	v := &Renderer{dir: dir, log: log}
	if err := v.reload(); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *Renderer) source() (fs.FS, error) {
	if v.dir != "" {
		return os.DirFS(v.dir), nil
	}
	return fs.Sub(embedded, "templates")
}

func (v *Renderer) reload() error {
	fsys, err := v.source()
	if err != nil {
		return err
	}
	parsed := make(map[string]*template.Template, len(pages))
	for _, name := range pages {
		t, err := template.ParseFS(fsys, "layout.html", name+".html")
		if err != nil {
			return err
		}
		parsed[name] = t
	}
	v.mu.Lock()
	v.templates = parsed
	v.mu.Unlock()
	return nil
}

// Watch reloads templates from the on-disk directory on every change until
// ctx is cancelled. No-op when rendering from the embedded copy.
func (v *Renderer) Watch(ctx context.Context) error {
	if v.dir == "" {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(v.dir); err != nil {
		watcher.Close()
		return err
	}
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				if err := v.reload(); err != nil {
					v.log.Error().Err(err).Str("file", ev.Name).Msg("template reload failed")
					continue
				}
				v.log.Info().Str("file", ev.Name).Msg("templates reloaded")
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				v.log.Error().Err(err).Msg("template watcher")
			}
		}
	}()
	return nil
}

func (v *Renderer) Render(w http.ResponseWriter, name string, page Page) {
	v.mu.RLock()
	t := v.templates[name]
	v.mu.RUnlock()
	if t == nil {
		v.log.Error().Str("template", name).Msg("unknown template")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.ExecuteTemplate(w, "layout", page); err != nil {
		v.log.Error().Err(err).Str("template", name).Msg("render failed")
	}
}
