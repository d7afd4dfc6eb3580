package server

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/gridboard/pkg/buildinfo"
	"github.com/matzehuels/gridboard/pkg/errors"
	"github.com/matzehuels/gridboard/pkg/grid"
	"github.com/matzehuels/gridboard/pkg/snapshot"
)

// =============================================================================
// Request bodies
// =============================================================================

type addRequest struct {
	ID   string `json:"id,omitempty"`
	Type string `json:"type"`
	X    *int   `json:"x,omitempty"`
	Y    *int   `json:"y,omitempty"`
}

type pointRequest struct {
	X *int `json:"x"`
	Y *int `json:"y"`
}

type resizeRequest struct {
	Direction string `json:"direction"`
	W         int    `json:"w"`
	H         int    `json:"h"`
}

type sizeRequest struct {
	W int `json:"w"`
	H int `json:"h"`
}

type reflowRequest struct {
	Width *int `json:"width,omitempty"`
	Cols  *int `json:"cols,omitempty"`
}

type reflowResponse struct {
	Cols   int               `json:"cols"`
	Layout snapshot.Document `json:"layout"`
}

func (p pointRequest) point() (grid.Point, error) {
	if p.X == nil || p.Y == nil {
		return grid.Point{}, errors.New(errors.ErrCodeInvalidInput, "x and y are required")
	}
	return grid.Point{X: *p.X, Y: *p.Y}, nil
}

// =============================================================================
// Read-only endpoints
// =============================================================================

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(http.StatusText(http.StatusOK)))
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	renderJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleKinds(w http.ResponseWriter, _ *http.Request) {
	renderJSON(w, http.StatusOK, s.board.Kinds())
}

func (s *Server) handleLayout(w http.ResponseWriter, _ *http.Request) {
	renderJSON(w, http.StatusOK, s.board.Document())
}

func (s *Server) handleWidget(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var (
		it grid.Item
		ok bool
	)
	s.board.View(func(e *grid.Engine) { it, ok = e.Item(id) })
	if !ok {
		renderError(w, r, errors.New(errors.ErrCodeWidgetNotFound, "widget %q not found", id))
		return
	}
	renderJSON(w, http.StatusOK, it)
}

// =============================================================================
// Layout endpoints
// =============================================================================

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		renderError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body: %v", err))
		return
	}
	doc, err := snapshot.Unmarshal(data)
	if err != nil {
		renderError(w, r, err)
		return
	}
	if err := s.board.Import(r.Context(), doc); err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, s.board.Document())
}

func (s *Server) handleReflow(w http.ResponseWriter, r *http.Request) {
	var req reflowRequest
	if err := decode(w, r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	var (
		cols int
		err  error
	)
	switch {
	case req.Width != nil && req.Cols != nil:
		err = errors.New(errors.ErrCodeInvalidInput, "give either width or cols, not both")
	case req.Width != nil:
		cols, err = s.board.ReflowWidth(r.Context(), *req.Width)
	case req.Cols != nil:
		cols, err = s.board.Reflow(r.Context(), *req.Cols)
	default:
		err = errors.New(errors.ErrCodeInvalidInput, "width or cols is required")
	}
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, reflowResponse{Cols: cols, Layout: s.board.Document()})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.board.Reset(r.Context()); err != nil {
		renderError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSeed(w http.ResponseWriter, r *http.Request) {
	if _, err := s.board.Seed(r.Context(), grid.DefaultSeed); err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusCreated, s.board.Document())
}

// =============================================================================
// Widget endpoints
// =============================================================================

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	if err := decode(w, r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	var pos *grid.Point
	switch {
	case req.X != nil && req.Y != nil:
		pos = &grid.Point{X: *req.X, Y: *req.Y}
	case req.X != nil || req.Y != nil:
		renderError(w, r, errors.New(errors.ErrCodeInvalidInput, "give both x and y or neither"))
		return
	}

	it, err := s.board.Add(r.Context(), req.ID, req.Type, pos)
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusCreated, it)
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	if err := s.board.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		renderError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req pointRequest
	if err := decode(w, r, &req); err != nil {
		renderError(w, r, err)
		return
	}
	p, err := req.point()
	if err != nil {
		renderError(w, r, err)
		return
	}
	if _, err := s.board.Move(r.Context(), chi.URLParam(r, "id"), p.X, p.Y); err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, s.board.Document())
}

func (s *Server) handleResize(w http.ResponseWriter, r *http.Request) {
	var req resizeRequest
	if err := decode(w, r, &req); err != nil {
		renderError(w, r, err)
		return
	}
	d, err := grid.ParseDirection(req.Direction)
	if err != nil {
		renderError(w, r, err)
		return
	}
	if _, err := s.board.Resize(r.Context(), chi.URLParam(r, "id"), d, req.W, req.H); err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, s.board.Document())
}

func (s *Server) handleSetPosition(w http.ResponseWriter, r *http.Request) {
	var req pointRequest
	if err := decode(w, r, &req); err != nil {
		renderError(w, r, err)
		return
	}
	p, err := req.point()
	if err != nil {
		renderError(w, r, err)
		return
	}
	if err := s.board.SetPosition(r.Context(), chi.URLParam(r, "id"), p.X, p.Y); err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, s.board.Document())
}

func (s *Server) handleSetSize(w http.ResponseWriter, r *http.Request) {
	var req sizeRequest
	if err := decode(w, r, &req); err != nil {
		renderError(w, r, err)
		return
	}
	if err := s.board.SetSize(r.Context(), chi.URLParam(r, "id"), req.W, req.H); err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, s.board.Document())
}
