// Package diffapi is the HTTP surface of the diff engine: a small chi
// router that accepts two documents, computes the side-by-side diff,
// and writes back the §6 JSON wire schema. It is the "exposed to
// renderer" boundary in wire form — no HTML or terminal rendering is
// produced here.
package diffapi

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/thehowl/cford32"
	"go.uber.org/multierr"

	"github.com/richdiff/richdiff/pkg/block"
	"github.com/richdiff/richdiff/pkg/diff"
	"github.com/richdiff/richdiff/pkg/diffconfig"
	"github.com/richdiff/richdiff/pkg/diffdb"
	"github.com/richdiff/richdiff/pkg/diffstorage"
	"github.com/richdiff/richdiff/pkg/diffwire"
	"github.com/richdiff/richdiff/pkg/inline"
)

// Server wires the diff core to storage and the database, and exposes
// them over HTTP.
type Server struct {
	PublicURL string
	Storage   diffstorage.Storage
	DB        *diffdb.DB
}

// Router builds the chi router, mirroring the teacher's middleware
// stack (request logging, panic recovery, a request timeout).
func (s *Server) Router() chi.Router {
	rt := chi.NewRouter()
	rt.Use(
		middleware.RequestLogger(&middleware.DefaultLogFormatter{
			Logger: log.New(log.Writer(), "", log.LstdFlags),
		}),
		middleware.Recoverer,
		middleware.Timeout(time.Second*60),
	)
	rt.Post("/diff", s.e(s.postDiff))
	rt.Post("/diff/inline", s.e(s.postDiffInline))
	rt.Get("/{id}", s.e(s.getResult))
	return rt
}

func (s *Server) e(fn func(w http.ResponseWriter, r *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err != nil {
			if errors.Is(err, errUsage) {
				writeJSONError(w, http.StatusBadRequest, err.Error())
				return
			}
			log.Printf("request error: %v", err)
			writeJSONError(w, http.StatusInternalServerError, "internal server error")
		}
	}
}

var errUsage = errors.New("expected a JSON body with left_text and right_text")

const maxBodySize = 1 << 20 // 1M

func writeJSONError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(struct {
		Error string `json:"error"`
	}{msg})
}

// diffRequest is the POST /diff and POST /diff/inline request body.
// LeftBlocks/RightBlocks take precedence over LeftText/RightText when
// present, letting a caller that has already segmented its document
// into blocks skip richdiff's own paragraph splitting.
type diffRequest struct {
	LeftText    string   `json:"left_text"`
	RightText   string   `json:"right_text"`
	LeftBlocks  []string `json:"left_blocks,omitempty"`
	RightBlocks []string `json:"right_blocks,omitempty"`
}

func resolveLevel(r *http.Request) diffconfig.Config {
	switch r.URL.Query().Get("level") {
	case "strict":
		return diffconfig.Strict
	case "loose":
		return diffconfig.Loose
	default:
		return diffconfig.Normal
	}
}

func decodeRequest(w http.ResponseWriter, r *http.Request) (diffRequest, error) {
	var req diffRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return diffRequest{}, errUsage
	}
	if req.LeftText == "" && req.RightText == "" && len(req.LeftBlocks) == 0 && len(req.RightBlocks) == 0 {
		return diffRequest{}, errUsage
	}
	return req, nil
}

// blocksFrom builds the []block.Block the diff core operates on.
// Explicit blocks (when the caller already segmented its document) win
// over plain text; plain text falls back to a blank-line paragraph
// split, since markdown/AST-aware block extraction is the caller's
// responsibility, not this module's.
func blocksFrom(text string, explicit []string) []block.Block {
	if len(explicit) > 0 {
		out := make([]block.Block, len(explicit))
		for i, t := range explicit {
			out[i] = block.New(t)
		}
		return out
	}
	paras := strings.Split(text, "\n\n")
	out := make([]block.Block, len(paras))
	for i, t := range paras {
		out[i] = block.New(t)
	}
	return out
}

// docID derives a content-addressable public ID from the two
// submitted documents, identical in spirit to the teacher's
// content-addressable paste IDs.
func docID(left, right string) string {
	h := sha256.New()
	h.Write([]byte(left))
	h.Write([]byte{0})
	h.Write([]byte(right))
	sum := h.Sum(nil)
	return cford32.EncodeToStringLower(sum[:5])
}

func (s *Server) postDiff(w http.ResponseWriter, r *http.Request) error {
	req, err := decodeRequest(w, r)
	if err != nil {
		return err
	}

	left := blocksFrom(req.LeftText, req.LeftBlocks)
	right := blocksFrom(req.RightText, req.RightBlocks)
	cfg := resolveLevel(r)

	pairs := diff.Blocks(left, right, cfg)
	wire := diffwire.Encode(pairs)

	encoded, err := json.Marshal(wire)
	if err != nil {
		return err
	}

	id := docID(req.LeftText, req.RightText)
	if err := s.persist(r.Context(), id, req.LeftText, req.RightText, encoded); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Diff-Id", id)
	w.Write(encoded)
	return nil
}

// persist stores the raw documents and the encoded result, cleaning up
// the storage write on a subsequent database failure, mirroring the
// teacher's upload-then-cleanup-on-failure flow.
func (s *Server) persist(ctx context.Context, id, left, right string, encoded []byte) error {
	has, err := s.DB.HasJob(id)
	if err != nil {
		return err
	}
	if has {
		return nil
	}

	raw := []byte(left + "\x00" + right)
	if err := s.Storage.Put(ctx, id, raw); err != nil {
		return err
	}

	sum := sha256.Sum256(raw)
	if err := s.DB.PutJob(id, diffdb.Job{CreatedAt: time.Now(), Sum: hex.EncodeToString(sum[:])}); err != nil {
		return multierr.Combine(err, s.Storage.Del(context.Background(), id))
	}

	return s.DB.PutResult(id, encoded)
}

func (s *Server) postDiffInline(w http.ResponseWriter, r *http.Request) error {
	req, err := decodeRequest(w, r)
	if err != nil {
		return err
	}
	parts := inline.Compute(req.LeftText, req.RightText)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	return json.NewEncoder(w).Encode(struct {
		InlineDiff []diffwire.InlinePart `json:"inline_diff"`
	}{diffwire.EncodeParts(parts)})
}

func (s *Server) getResult(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")

	has, err := s.DB.HasJob(id)
	if err != nil {
		return err
	}
	if !has {
		writeJSONError(w, http.StatusNotFound, "not found")
		return nil
	}

	cached, err := s.DB.GetResult(id)
	if err != nil {
		return err
	}
	if len(cached) == 0 {
		return s.recompute(w, r, id)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Write(cached)
	return nil
}

// recompute re-derives a result from the stored raw documents when the
// cached wire-schema bytes are missing (e.g. an older database
// predating the result cache).
func (s *Server) recompute(w http.ResponseWriter, r *http.Request, id string) error {
	raw, err := s.Storage.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, diffstorage.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "not found")
			return nil
		}
		return err
	}

	left, right := splitRaw(raw)
	pairs := diff.Blocks(blocksFrom(left, nil), blocksFrom(right, nil), resolveLevel(r))
	wire := diffwire.Encode(pairs)

	encoded, err := json.Marshal(wire)
	if err != nil {
		return err
	}
	if err := s.DB.PutResult(id, encoded); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Write(encoded)
	return nil
}

func splitRaw(raw []byte) (left, right string) {
	for i, b := range raw {
		if b == 0 {
			return string(raw[:i]), string(raw[i+1:])
		}
	}
	return string(raw), ""
}
