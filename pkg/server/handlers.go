package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/graphclip/pkg/blueprint"
	"github.com/matzehuels/graphclip/pkg/buildinfo"
	"github.com/matzehuels/graphclip/pkg/errors"
	pkgio "github.com/matzehuels/graphclip/pkg/io"
	"github.com/matzehuels/graphclip/pkg/render/nodelink"
	"github.com/matzehuels/graphclip/pkg/schema"
	"github.com/matzehuels/graphclip/pkg/store"
)

type validateResponse struct {
	Valid       bool   `json:"valid"`
	Version     string `json:"version"`
	Nodes       int    `json:"nodes"`
	Connections int    `json:"connections"`
}

type snippetResponse struct {
	Name        string `json:"name"`
	ETag        string `json:"etag"`
	Nodes       int    `json:"nodes"`
	Connections int    `json:"connections"`
}

type pasteResponse struct {
	snippetResponse
	Report *pkgio.Report `json:"report"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

func (s *Server) validate(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	doc, err := pkgio.Unmarshal(data)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	version := doc.Version()
	if version == "" {
		version = schema.CurrentVersion
	}
	writeJSON(w, http.StatusOK, validateResponse{
		Valid:       true,
		Version:     version,
		Nodes:       doc.NodeCount(),
		Connections: doc.ConnectionCount(),
	})
}

func (s *Server) listSnippets(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"snippets": names})
}

func (s *Server) getSnippet(w http.ResponseWriter, r *http.Request) {
	data, err := s.load(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	etag := `"` + store.Hash(data) + `"`
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func (s *Server) putSnippet(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	doc, err := pkgio.Unmarshal(data)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	resp, err := s.save(r, doc)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) deleteSnippet(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) pasteSnippet(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	clip, err := pkgio.Unmarshal(data)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	name := chi.URLParam(r, "name")
	g := blueprint.New(name)
	dec := pkgio.NewDecoder(s.library, s.library, s.codec...)

	base, ok, err := s.store.Get(r.Context(), name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if ok {
		doc, err := pkgio.Unmarshal(base)
		if err != nil {
			s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "stored snippet %s is unreadable", name))
			return
		}
		if _, err := dec.Restore(g, doc); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	report, err := dec.Paste(g, clip)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := pkgio.NewEncoder(s.codec...).Encode(g)
	resp, err := s.save(r, out)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pasteResponse{snippetResponse: *resp, Report: report})
}

func (s *Server) snippetDOT(w http.ResponseWriter, r *http.Request) {
	doc, err := s.loadDocument(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	_, _ = w.Write([]byte(nodelink.ToDOT(doc, nodelink.Options{Detailed: r.URL.Query().Has("detailed")})))
}

func (s *Server) snippetSVG(w http.ResponseWriter, r *http.Request) {
	doc, err := s.loadDocument(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	svg, err := nodelink.RenderSVG(nodelink.ToDOT(doc, nodelink.Options{Detailed: r.URL.Query().Has("detailed")}))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "render"))
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(svg)
}

// load returns the stored bytes of the snippet named in the URL.
func (s *Server) load(r *http.Request) ([]byte, error) {
	name := chi.URLParam(r, "name")
	data, ok, err := s.store.Get(r.Context(), name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "snippet %q not found", name)
	}
	return data, nil
}

func (s *Server) loadDocument(r *http.Request) (*schema.Document, error) {
	data, err := s.load(r)
	if err != nil {
		return nil, err
	}
	return pkgio.Unmarshal(data)
}

// save stores doc under the name in the URL.
func (s *Server) save(r *http.Request, doc *schema.Document) (*snippetResponse, error) {
	data, err := pkgio.Marshal(doc)
	if err != nil {
		return nil, err
	}
	name := chi.URLParam(r, "name")
	if err := s.store.Put(r.Context(), name, data); err != nil {
		return nil, err
	}
	return &snippetResponse{
		Name:        name,
		ETag:        store.Hash(data),
		Nodes:       doc.NodeCount(),
		Connections: doc.ConnectionCount(),
	}, nil
}
