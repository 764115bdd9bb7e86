package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type storedSong struct {
	id      string
	wav     []byte
	title   string
	created time.Time
}

// songStore keeps rendered WAVs in memory under uuid keys, evicting the
// oldest entries past the capacity.
type songStore struct {
	mu    sync.Mutex
	songs map[string]*storedSong
	order []string
	cap   int
}

func newSongStore(capacity int) *songStore {
	return &songStore{
		songs: make(map[string]*storedSong),
		cap:   capacity,
	}
}

// Put stores a WAV and returns its download id.
func (s *songStore) Put(title string, wav []byte) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.songs[id] = &storedSong{
		id:      id,
		wav:     wav,
		title:   title,
		created: time.Now(),
	}
	s.order = append(s.order, id)
	for len(s.order) > s.cap {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.songs, oldest)
	}
	return id
}

func (s *songStore) Get(id string) *storedSong {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.songs[id]
}

func (s *songStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.songs)
}
