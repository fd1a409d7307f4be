package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"

	"github.com/pdrpinto/gridpath"
	"github.com/pdrpinto/gridpath/internal/editor"
)

// APIHandlers serves the JSON endpoints driving one editor session.
type APIHandlers struct {
	logger *slog.Logger
	editor *editor.Editor
	walls  gridpath.WallConfig
	rng    *rand.Rand
}

// NewAPIHandlers constructs the editor API. rng is only used under the
// editor's lock.
func NewAPIHandlers(logger *slog.Logger, ed *editor.Editor, walls gridpath.WallConfig, rng *rand.Rand) *APIHandlers {
	return &APIHandlers{logger: logger, editor: ed, walls: walls, rng: rng}
}

type point = [2]int

type stateResponse struct {
	Size     int     `json:"size"`
	Start    *point  `json:"start,omitempty"`
	End      *point  `json:"end,omitempty"`
	Walls    []point `json:"walls"`
	Mode     string  `json:"mode"`
	Hover    *point  `json:"hover,omitempty"`
	Path     []point `json:"path,omitempty"`
	Open     []point `json:"open,omitempty"`
	Closed   []point `json:"closed,omitempty"`
	Searched bool    `json:"searched"`
	Found    bool    `json:"found"`
	Stepping bool    `json:"stepping"`
	Status   string  `json:"status,omitempty"`
}

type runResponse struct {
	Found    bool          `json:"found"`
	Moves    int           `json:"moves"`
	Expanded int           `json:"expanded"`
	State    stateResponse `json:"state"`
}

type stepResponse struct {
	Step    int           `json:"step"`
	Current point         `json:"current"`
	Done    bool          `json:"done"`
	Found   bool          `json:"found"`
	State   stateResponse `json:"state"`
}

type coordRequest struct {
	X     int  `json:"x"`
	Y     int  `json:"y"`
	Clear bool `json:"clear,omitempty"`
}

type rectRequest struct {
	From coordRequest `json:"from"`
	To   coordRequest `json:"to"`
}

type modeRequest struct {
	Mode string `json:"mode"`
}

type regenerateRequest struct {
	Seed int64 `json:"seed,omitempty"`
}

func (h *APIHandlers) handleGrid(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.state())
}

func (h *APIHandlers) handleMode(w http.ResponseWriter, r *http.Request) {
	var req modeRequest
	if !decode(w, r, &req) {
		return
	}
	mode, err := editor.ParseMode(req.Mode)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	h.editor.SetMode(mode)
	respondJSON(w, http.StatusOK, h.state())
}

func (h *APIHandlers) handleClick(w http.ResponseWriter, r *http.Request) {
	h.handleCoord(w, r, h.editor.Click)
}

func (h *APIHandlers) handlePaint(w http.ResponseWriter, r *http.Request) {
	h.handleCoord(w, r, h.editor.Paint)
}

func (h *APIHandlers) handleHover(w http.ResponseWriter, r *http.Request) {
	var req coordRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Clear {
		h.editor.ClearHover()
		respondJSON(w, http.StatusOK, h.state())
		return
	}
	if err := h.editor.Hover(gridpath.Coord{X: req.X, Y: req.Y}); err != nil {
		h.respondEditError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.state())
}

func (h *APIHandlers) handleCoord(w http.ResponseWriter, r *http.Request, apply func(gridpath.Coord) error) {
	var req coordRequest
	if !decode(w, r, &req) {
		return
	}
	if err := apply(gridpath.Coord{X: req.X, Y: req.Y}); err != nil {
		h.respondEditError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.state())
}

func (h *APIHandlers) handleRect(w http.ResponseWriter, r *http.Request) {
	var req rectRequest
	if !decode(w, r, &req) {
		return
	}
	from := gridpath.Coord{X: req.From.X, Y: req.From.Y}
	to := gridpath.Coord{X: req.To.X, Y: req.To.Y}
	if _, err := h.editor.BuildRect(from, to); err != nil {
		h.respondEditError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.state())
}

func (h *APIHandlers) handleRun(w http.ResponseWriter, r *http.Request) {
	res, err := h.editor.Run(r.Context())
	if err != nil && !errors.Is(err, gridpath.ErrNoPathFound) {
		h.respondEditError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, runResponse{
		Found:    res.Found,
		Moves:    res.TotalCost,
		Expanded: res.ExpandedNodes,
		State:    h.state(),
	})
}

func (h *APIHandlers) handleStep(w http.ResponseWriter, r *http.Request) {
	snap, err := h.editor.Step()
	if err != nil {
		h.respondEditError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stepResponse{
		Step:    snap.StepIndex,
		Current: point{snap.Current.X, snap.Current.Y},
		Done:    snap.Done,
		Found:   snap.Found,
		State:   h.state(),
	})
}

func (h *APIHandlers) handleRegenerate(w http.ResponseWriter, r *http.Request) {
	var req regenerateRequest
	if r.ContentLength != 0 && !decode(w, r, &req) {
		return
	}
	rng := h.rng
	if req.Seed != 0 {
		rng = rand.New(rand.NewSource(req.Seed))
	}
	n := h.editor.Regenerate(h.walls, rng)
	h.logger.Info("walls regenerated", "walls", n)
	respondJSON(w, http.StatusOK, h.state())
}

func (h *APIHandlers) handleClear(w http.ResponseWriter, r *http.Request) {
	h.editor.ClearWalls()
	respondJSON(w, http.StatusOK, h.state())
}

func (h *APIHandlers) respondEditError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, gridpath.ErrOutOfBounds):
		respondError(w, http.StatusBadRequest, err)
	case errors.Is(err, gridpath.ErrInvalidRequest), errors.Is(err, gridpath.ErrInvalidOperation):
		respondError(w, http.StatusConflict, err)
	case errors.Is(err, gridpath.ErrStepBudgetExceeded):
		respondError(w, http.StatusUnprocessableEntity, err)
	default:
		h.logger.Error("editor operation failed", "error", err)
		respondError(w, http.StatusInternalServerError, err)
	}
}

func (h *APIHandlers) state() stateResponse {
	st := h.editor.State()
	resp := stateResponse{
		Size:     st.Size,
		Walls:    []point{},
		Mode:     st.Mode.String(),
		Path:     toPoints(st.Path),
		Open:     toPoints(st.Open),
		Closed:   toPoints(st.Closed),
		Searched: st.Searched,
		Found:    st.Found,
		Stepping: st.Stepping,
		Status:   st.Status,
	}
	if st.HasStart {
		resp.Start = &point{st.Start.X, st.Start.Y}
	}
	if st.HasEnd {
		resp.End = &point{st.End.X, st.End.Y}
	}
	if st.Hovering {
		resp.Hover = &point{st.Hover.X, st.Hover.Y}
	}
	for i, cell := range st.Cells {
		if cell == gridpath.Blocked {
			resp.Walls = append(resp.Walls, point{i % st.Size, i / st.Size})
		}
	}
	return resp
}

func toPoints(coords []gridpath.Coord) []point {
	if len(coords) == 0 {
		return nil
	}
	res := make([]point, 0, len(coords))
	for _, c := range coords {
		res = append(res, point{c.X, c.Y})
	}
	return res
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return true
}
