package movies

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/JustinTDCT/CineCurator/internal/metadata"
)

type memStore struct {
	mu         sync.Mutex
	nextID     int64
	rows       map[int64]Movie
	err        error
	lastOffset int
}

func newMemStore() *memStore {
	return &memStore{rows: map[int64]Movie{}}
}

func (s *memStore) List(_ context.Context, offset, limit int) ([]Movie, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, 0, s.err
	}
	all := make([]Movie, 0, len(s.rows))
	for _, m := range s.rows {
		all = append(all, m)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	s.lastOffset = offset
	if offset > len(all) {
		offset = len(all)
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], len(all), nil
}

func (s *memStore) Get(_ context.Context, id int64) (*Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &m, nil
}

func (s *memStore) Create(_ context.Context, m *Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.nextID++
	m.ID = s.nextID
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt
	s.rows[m.ID] = *m
	return nil
}

func (s *memStore) Update(_ context.Context, m *Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	old, ok := s.rows[m.ID]
	if !ok {
		return ErrNotFound
	}
	m.CreatedAt = old.CreatedAt
	m.UpdatedAt = time.Now()
	s.rows[m.ID] = *m
	return nil
}

func (s *memStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if _, ok := s.rows[id]; !ok {
		return ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

func (s *memStore) ListIDs(_ context.Context) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []int64
	for id := range s.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

type stubDetails struct {
	details   map[int]*metadata.MovieDetails
	err       error
	calls     []int
	refreshes []int
}

func (d *stubDetails) MovieDetails(_ context.Context, id int) (*metadata.MovieDetails, error) {
	d.calls = append(d.calls, id)
	if d.err != nil {
		return nil, d.err
	}
	if m, ok := d.details[id]; ok {
		return m, nil
	}
	return nil, errors.New("tmdb: /movie returned 404")
}

func (d *stubDetails) Refresh(ctx context.Context, id int) (*metadata.MovieDetails, error) {
	d.refreshes = append(d.refreshes, id)
	return d.MovieDetails(ctx, id)
}

func matrixDetails() *metadata.MovieDetails {
	cast := []metadata.CastCredit{
		{Name: "Keanu Reeves", Character: "Neo", ProfilePath: "/keanu.jpg"},
		{Name: "Laurence Fishburne", Character: "Morpheus"},
		{Name: "", Character: ""},
		{Name: "Hugo Weaving", Character: "Agent Smith"},
		{Name: "Joe Pantoliano", Character: "Cypher"},
		{Name: "Marcus Chong", Character: "Tank"},
		{Name: "Julian Arahanga", Character: "Apoc"},
	}
	return &metadata.MovieDetails{
		ID:          603,
		Title:       "The Matrix",
		Runtime:     136,
		VoteAverage: 8.2,
		Credits: metadata.Credits{
			Cast: cast,
			Crew: []metadata.CrewCredit{
				{Name: "Bill Pope", Job: "Director of Photography"},
				{Name: "Lana Wachowski", Job: "Director"},
				{Name: "Lilly Wachowski", Job: "Director"},
			},
		},
	}
}
