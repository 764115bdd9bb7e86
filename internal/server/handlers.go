package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	burntbeats "github.com/Ocean82/BurntBeats"
	"github.com/Ocean82/BurntBeats/internal/theory"
)

const maxRequestSize = 1 << 20 // generous for lyrics

type generateResponse struct {
	ID          string              `json:"id"`
	DownloadURL string              `json:"download_url"`
	Metadata    burntbeats.Metadata `json:"metadata"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// handleGenerate renders a song from a JSON request and stores the WAV for
// download.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestSize)

	var req burntbeats.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	result, err := burntbeats.Generate(req)
	if err != nil {
		var verr *burntbeats.ValidationError
		if errors.As(err, &verr) {
			s.writeError(w, verr.Error(), http.StatusBadRequest)
			return
		}
		s.logger.Error("generate failed", "error", err)
		s.writeError(w, "generation failed", http.StatusInternalServerError)
		return
	}

	id := s.store.Put(result.Metadata.Title, result.WAV)
	s.logger.Info("song generated",
		"id", id,
		"genre", result.Metadata.Genre,
		"duration", result.Metadata.DurationSec,
		"bytes", len(result.WAV))

	s.writeJSON(w, http.StatusOK, generateResponse{
		ID:          id,
		DownloadURL: fmt.Sprintf("/download/%s.wav", id),
		Metadata:    result.Metadata,
	})
}

// handleDownload serves a stored WAV by id.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	song := s.store.Get(id)
	if song == nil {
		s.writeError(w, "song not found", http.StatusNotFound)
		return
	}

	name := song.title
	if name == "" {
		name = "song"
	}
	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".wav"))
	w.Write(song.wav)
}

type genreInfo struct {
	Name        string `json:"name"`
	Scale       string `json:"scale"`
	Description string `json:"description"`
}

var genreCatalog = map[theory.Genre]genreInfo{
	theory.GenrePop:        {Scale: "major", Description: "steady eighth-note grooves, I-V-vi-IV harmony"},
	theory.GenreRock:       {Scale: "major", Description: "driving rhythms, root-fifth bass"},
	theory.GenreJazz:       {Scale: "blues", Description: "triplet swing, walking bass, extended scale"},
	theory.GenreElectronic: {Scale: "major", Description: "quantized sixteenth grid, four-on-the-floor kick"},
	theory.GenreClassical:  {Scale: "major", Description: "traditional note values, sparse percussion"},
	theory.GenreHipHop:     {Scale: "major", Description: "dense triplet subdivisions, sparse kick placement"},
	theory.GenreCountry:    {Scale: "major", Description: "shuffled eighths, alternating accents"},
	theory.GenreRnB:        {Scale: "blues", Description: "dotted groove rhythms, heavy syncopation"},
	theory.GenreBlues:      {Scale: "blues", Description: "twelve-bar flavored roots, blue-note scale"},
	theory.GenreBallad:     {Scale: "minor", Description: "slow sustained lines, minimal drums"},
	theory.GenreMinor:      {Scale: "minor", Description: "natural-minor color over rock patterns"},
}

// handleGenres lists the supported genres and their musical character.
func (s *Server) handleGenres(w http.ResponseWriter, r *http.Request) {
	out := make([]genreInfo, 0, len(genreCatalog))
	for _, g := range theory.Genres() {
		info := genreCatalog[g]
		info.Name = g.String()
		out = append(out, info)
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"genres": out})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, message string, status int) {
	s.writeJSON(w, status, errorResponse{Error: message})
}
