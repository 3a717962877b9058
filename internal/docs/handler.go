package docs

import (
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"path"

	"github.com/bornholm/compass/pkg/log"
	"github.com/pkg/errors"
)

type Handler struct {
	source Source
	mux    *http.ServeMux
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func NewHandler(prefix string, source Source) *Handler {
	h := &Handler{
		source: source,
		mux:    &http.ServeMux{},
	}

	h.mux.HandleFunc(fmt.Sprintf("GET %s/{lang}/{file}", prefix), h.serveDocument)

	return h
}

func (h *Handler) serveDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	name := path.Join(r.PathValue("lang"), r.PathValue("file"))
	if !fs.ValidPath(name) || path.Dir(name) != r.PathValue("lang") {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	doc, err := h.source.Open(ctx, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}

		slog.ErrorContext(ctx, "could not open help document", slog.String("name", name), log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	defer doc.Close()

	http.ServeContent(w, r, doc.Name, doc.ModTime, doc)
}

var _ http.Handler = &Handler{}
