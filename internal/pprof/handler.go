package pprof

import (
	"expvar"
	"fmt"
	"net/http"
	"net/http/pprof"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

// Handler exposes the runtime profiles and the service variables, for
// debugging purposes only.
type Handler struct {
	mux  *http.ServeMux
	vars map[string]expvar.Var
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

type OptionFunc func(h *Handler)

// WithVar exposes the given variable on the "vars" endpoint, next to the
// process wide expvar ones.
func WithVar(name string, v expvar.Var) OptionFunc {
	return func(h *Handler) {
		h.vars[name] = v
	}
}

func NewHandler(prefix string, funcs ...OptionFunc) *Handler {
	h := &Handler{
		mux:  &http.ServeMux{},
		vars: map[string]expvar.Var{},
	}

	for _, fn := range funcs {
		fn(h)
	}

	h.mux.HandleFunc(fmt.Sprintf("%s/", prefix), pprof.Index)
	h.mux.HandleFunc(fmt.Sprintf("%s/cmdline", prefix), pprof.Cmdline)
	h.mux.HandleFunc(fmt.Sprintf("%s/profile", prefix), pprof.Profile)
	h.mux.HandleFunc(fmt.Sprintf("%s/symbol", prefix), pprof.Symbol)
	h.mux.HandleFunc(fmt.Sprintf("%s/trace", prefix), pprof.Trace)
	h.mux.HandleFunc(fmt.Sprintf("%s/vars", prefix), h.serveVars)

	h.mux.HandleFunc(fmt.Sprintf("%s/{name}", prefix), func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")
		pprof.Handler(name).ServeHTTP(w, r)
	})

	return h
}

func (h *Handler) serveVars(w http.ResponseWriter, r *http.Request) {
	entries := make([]string, 0, len(h.vars))

	expvar.Do(func(kv expvar.KeyValue) {
		if _, exists := h.vars[kv.Key]; exists {
			return
		}

		entries = append(entries, fmt.Sprintf("%q: %s", kv.Key, kv.Value))
	})

	for name, v := range h.vars {
		entries = append(entries, fmt.Sprintf("%q: %s", name, v))
	}

	slices.Sort(entries)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	if _, err := fmt.Fprintf(w, "{\n%s\n}\n", strings.Join(entries, ",\n")); err != nil {
		http.Error(w, errors.WithStack(err).Error(), http.StatusInternalServerError)
	}
}

var _ http.Handler = &Handler{}
