package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/vovakirdan/slovotetris/internal/figure"
	"github.com/vovakirdan/slovotetris/internal/game"
	"github.com/vovakirdan/slovotetris/internal/grid"
	"github.com/vovakirdan/slovotetris/internal/lexicon"
	"github.com/vovakirdan/slovotetris/internal/registry"
	"github.com/vovakirdan/slovotetris/internal/scan"
	"github.com/vovakirdan/slovotetris/internal/storage"
)

var (
	errGameNotFound = errors.New("game not found")
	errNoStore      = errors.New("scores are not kept on this server")
)

// maxBodyBytes bounds request bodies; every payload here is tiny.
const maxBodyBytes = 1 << 16

// gameHandler handles a request for one game while holding its lock.
type gameHandler func(w http.ResponseWriter, r *http.Request, sess *session)

// withGame resolves {id} and serializes access to the game. A game over is
// not final since a submit or joker can free cells again, so nothing is saved
// here; see finish.
func (s *Server) withGame(h gameHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := s.sessions.get(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, errGameNotFound)
			return
		}

		sess.mu.Lock()
		defer sess.mu.Unlock()

		h(w, r, sess)
	}
}

// gameRes is the common response carrying the game picture.
type gameRes struct {
	ID   string        `json:"id"`
	Game game.Snapshot `json:"game"`
}

func newGameRes(sess *session) gameRes {
	return gameRes{ID: sess.id, Game: sess.state.Snapshot()}
}

// -----------------------------------------------------------------------------
// catalogue

type modeRes struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Gravity     string `json:"gravity"`
	AutoScan    bool   `json:"autoScan"`
}

// handleModes lists the playable modes.
func (s *Server) handleModes(w http.ResponseWriter, r *http.Request) {
	list := registry.List()
	out := make([]modeRes, 0, len(list))
	for _, info := range list {
		m, err := registry.Lookup(info.ID)
		if err != nil {
			continue
		}
		out = append(out, modeRes{
			ID:          m.ID,
			Title:       m.Title,
			Description: m.Description,
			Gravity:     string(m.Gravity),
			AutoScan:    m.AutoScan,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

type wordRes struct {
	Word       string `json:"word"`
	Normalized string `json:"normalized"`
	Length     int    `json:"length"`
	Valid      bool   `json:"valid"`
}

// handleWord checks a word against the dictionary.
func (s *Server) handleWord(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "word")
	if decoded, err := url.PathUnescape(raw); err == nil {
		raw = decoded
	}
	norm := lexicon.Normalize(strings.TrimSpace(raw))

	valid := false
	if s.cfg.Words != nil {
		valid = s.cfg.Words.Contains(norm)
	}
	writeJSON(w, http.StatusOK, wordRes{
		Word:       raw,
		Normalized: norm,
		Length:     utf8.RuneCountInString(norm),
		Valid:      valid,
	})
}

type scoreRes struct {
	Score     int       `json:"score"`
	Words     int       `json:"words"`
	BestWord  string    `json:"bestWord"`
	CreatedAt time.Time `json:"createdAt"`
}

type scoresRes struct {
	Mode         string     `json:"mode"`
	Scores       []scoreRes `json:"scores"`
	LongestWords []string   `json:"longestWords"`
}

// handleScores returns the top scores and longest words of a mode.
func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Store == nil {
		writeError(w, http.StatusNotFound, errNoStore)
		return
	}
	mode := chi.URLParam(r, "mode")
	if !registry.Exists(mode) {
		writeError(w, http.StatusNotFound, fmt.Errorf("unknown mode %q", mode))
		return
	}

	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("bad limit %q", v))
			return
		}
		limit = n
	}

	entries, err := s.cfg.Store.TopScores(mode, limit)
	if err != nil {
		s.writeInternal(w, err)
		return
	}
	words, err := s.cfg.Store.LongestWords(mode, limit)
	if err != nil {
		s.writeInternal(w, err)
		return
	}

	out := scoresRes{Mode: mode, Scores: make([]scoreRes, len(entries)), LongestWords: make([]string, len(words))}
	for i, e := range entries {
		out.Scores[i] = toScoreRes(e)
	}
	for i, we := range words {
		out.LongestWords[i] = we.Word
	}
	writeJSON(w, http.StatusOK, out)
}

func toScoreRes(e storage.ScoreEntry) scoreRes {
	return scoreRes{Score: e.Score, Words: e.Words, BestWord: e.BestWord, CreatedAt: e.CreatedAt}
}

// -----------------------------------------------------------------------------
// game lifecycle

type newGameReq struct {
	Mode string `json:"mode"`
	Seed int64  `json:"seed"` // 0 picks one from the clock
}

// handleNewGame starts a game and returns its first picture.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Mode == "" {
		req.Mode = game.ModeBlocks
	}
	if !registry.Exists(req.Mode) {
		writeError(w, http.StatusBadRequest, fmt.Errorf("unknown mode %q", req.Mode))
		return
	}
	if req.Seed == 0 {
		req.Seed = time.Now().UnixNano()
	}

	state, err := s.cfg.NewGame(req.Mode, req.Seed)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	sess := s.sessions.add(state)
	s.logger.Info("game started", "game", sess.id, "mode", req.Mode, "seed", req.Seed)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	writeJSON(w, http.StatusCreated, newGameRes(sess))
}

// handleGetGame returns the current picture of a game.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request, sess *session) {
	writeJSON(w, http.StatusOK, newGameRes(sess))
}

type finishRes struct {
	ID    string `json:"id"`
	Score int    `json:"score"`
	Saved bool   `json:"saved"`
}

// handleFinish ends a game, saves it and forgets it.
func (s *Server) handleFinish(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessions.remove(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, errGameNotFound)
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	s.saveLocked(sess)
	s.logger.Info("game finished", "game", sess.id, "score", sess.state.Score())
	writeJSON(w, http.StatusOK, finishRes{ID: sess.id, Score: sess.state.Score(), Saved: sess.saved})
}

// -----------------------------------------------------------------------------
// figures

type placeReq struct {
	FigureID string `json:"figureId"`
	// Anchor places the figure's rotated offsets from this cell.
	Anchor *grid.Pos `json:"anchor,omitempty"`
	// Touched drops the figure so one of its cells lands here.
	Touched *grid.Pos `json:"touched,omitempty"`
	// Rotation overrides the stored rotation when Anchor is used.
	Rotation *int `json:"rotation,omitempty"`
}

type outcomeRes struct {
	gameRes
	Outcome game.Outcome `json:"outcome"`
}

// handlePlace puts a queued figure on the grid, either at an explicit
// anchor or at the best anchor for a touched cell.
func (s *Server) handlePlace(w http.ResponseWriter, r *http.Request, sess *session) {
	var req placeReq
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var (
		out game.Outcome
		err error
	)
	switch {
	case req.Anchor != nil:
		rotation := 0
		if req.Rotation != nil {
			rotation = *req.Rotation
		} else if f, ferr := sess.state.Figure(req.FigureID); ferr == nil {
			rotation = f.Rotation
		}
		out, err = sess.state.PlaceFigure(req.FigureID, *req.Anchor, rotation)
	case req.Touched != nil:
		out, err = sess.state.DropAt(req.FigureID, *req.Touched)
	default:
		writeError(w, http.StatusBadRequest, errors.New("anchor or touched is required"))
		return
	}
	if err != nil {
		writeError(w, errorStatus(err), err)
		return
	}

	writeJSON(w, http.StatusOK, outcomeRes{gameRes: newGameRes(sess), Outcome: out})
}

type rotateReq struct {
	FigureID string `json:"figureId"`
	Delta    int    `json:"delta"` // degrees, default 90
}

type rotateRes struct {
	gameRes
	Figure game.FigureView `json:"figure"`
}

// handleRotate turns a queued figure.
func (s *Server) handleRotate(w http.ResponseWriter, r *http.Request, sess *session) {
	var req rotateReq
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Delta == 0 {
		req.Delta = 90
	}

	f, err := sess.state.RotateFigure(req.FigureID, req.Delta)
	if err != nil {
		writeError(w, errorStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, rotateRes{gameRes: newGameRes(sess), Figure: game.NewFigureView(f)})
}

type previewRes struct {
	Valid bool       `json:"valid"`
	Cells []grid.Pos `json:"cells"`
}

// handlePreview reports which cells a placement would cover without
// changing the game.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request, sess *session) {
	var req placeReq
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	f, err := sess.state.Figure(req.FigureID)
	if err != nil {
		writeError(w, errorStatus(err), err)
		return
	}

	rotation := f.Rotation
	if req.Rotation != nil {
		rotation = *req.Rotation
	}
	var anchor grid.Pos
	switch {
	case req.Anchor != nil:
		anchor = *req.Anchor
	case req.Touched != nil:
		a, ok := figure.FindBestAnchor(sess.state.Grid(), f, *req.Touched, rotation)
		if !ok {
			writeJSON(w, http.StatusOK, previewRes{Cells: []grid.Pos{}})
			return
		}
		anchor = a
	default:
		writeError(w, http.StatusBadRequest, errors.New("anchor or touched is required"))
		return
	}

	preview, valid := sess.state.Preview(f.ID, anchor, rotation)
	cells := []grid.Pos{}
	for row := 0; row < preview.Size(); row++ {
		for col := 0; col < preview.Size(); col++ {
			if preview.Get(grid.P(row, col)).Hovered {
				cells = append(cells, grid.P(row, col))
			}
		}
	}
	writeJSON(w, http.StatusOK, previewRes{Valid: valid, Cells: cells})
}

// -----------------------------------------------------------------------------
// word tracing

type selectReq struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// handleSelect toggles a cell on the traced word.
func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request, sess *session) {
	var req selectReq
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := sess.state.ToggleSelectedLetter(grid.P(req.Row, req.Col)); err != nil {
		writeError(w, errorStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, newGameRes(sess))
}

// handleClearSelection empties the traced word.
func (s *Server) handleClearSelection(w http.ResponseWriter, r *http.Request, sess *session) {
	sess.state.ClearSelection()
	writeJSON(w, http.StatusOK, newGameRes(sess))
}

type submitRes struct {
	gameRes
	Result game.SubmitResult `json:"result"`
	Reason string            `json:"reason,omitempty"`
}

// handleSubmit checks the traced word. A rejected word is a normal answer,
// not an HTTP error.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request, sess *session) {
	res, err := sess.state.SubmitWord()
	out := submitRes{Result: res}
	if err != nil {
		if !errors.Is(err, scan.ErrInvalidWord) && !errors.Is(err, scan.ErrWordTooShort) {
			writeError(w, errorStatus(err), err)
			return
		}
		out.Reason = err.Error()
	} else {
		s.logger.Debug("word cleared", "game", sess.id, "word", res.Word, "points", res.ScoreDelta)
	}
	out.gameRes = newGameRes(sess)
	writeJSON(w, http.StatusOK, out)
}

type jokerReq struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Letter string `json:"letter"`
}

// handleJoker writes a chosen letter into an empty cell.
func (s *Server) handleJoker(w http.ResponseWriter, r *http.Request, sess *session) {
	var req jokerReq
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if utf8.RuneCountInString(req.Letter) != 1 {
		writeError(w, http.StatusBadRequest, errors.New("letter must be a single character"))
		return
	}
	letter, _ := utf8.DecodeRuneInString(req.Letter)

	out, err := sess.state.Joker(grid.P(req.Row, req.Col), letter)
	if err != nil {
		writeError(w, errorStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, outcomeRes{gameRes: newGameRes(sess), Outcome: out})
}

// -----------------------------------------------------------------------------
// helpers

// errorStatus maps game errors onto HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, game.ErrUnknownFigure):
		return http.StatusNotFound
	case errors.Is(err, game.ErrGameOver), errors.Is(err, game.ErrNoJokers):
		return http.StatusConflict
	case errors.Is(err, game.ErrNoFit),
		errors.Is(err, game.ErrOffGrid),
		errors.Is(err, game.ErrBadLetter),
		errors.Is(err, figure.ErrOutOfBounds),
		errors.Is(err, figure.ErrCellOccupied),
		errors.Is(err, scan.ErrNotAdjacent),
		errors.Is(err, scan.ErrEmptyCell):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// decodeBody reads a JSON body into v. An empty body leaves v untouched.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("bad request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorRes struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorRes{Error: err.Error()})
}

func (s *Server) writeInternal(w http.ResponseWriter, err error) {
	s.logger.Error("request failed", "error", err)
	writeError(w, http.StatusInternalServerError, errors.New("internal error"))
}
