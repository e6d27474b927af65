// Package memstore is the in-memory implementation of store.Store. It
// backs tests and throwaway dev runs; nothing survives the process. One
// RWMutex guards all state, which also serializes every check-then-act
// sequence (registration, toggling) for free.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Carlacms18/movie-catalog/internal/models"
	"github.com/Carlacms18/movie-catalog/internal/store"
	"github.com/Carlacms18/movie-catalog/internal/util"

	"github.com/google/uuid"
)

type favKey struct {
	userID  uint
	movieID uint
}

type favRow struct {
	id        uint
	createdAt time.Time
}

type Store struct {
	mu     sync.RWMutex
	hasher util.PasswordHasher
	ttl    time.Duration

	movies    map[uint]models.Movie
	users     map[uint]models.User
	emails    map[string]uint           // email -> user id
	sessions  map[string]models.Session // keyed by token
	favorites map[favKey]favRow

	nextMovieID   uint
	nextUserID    uint
	nextSessionID uint
	nextFavID     uint
}

var _ store.Store = (*Store)(nil)

// New returns an empty in-memory store.
func New(hasher util.PasswordHasher, sessionTTL time.Duration) *Store {
	if sessionTTL <= 0 {
		sessionTTL = 30 * 24 * time.Hour
	}
	if hasher == nil {
		hasher = util.PBKDF2Hasher{}
	}
	return &Store{
		hasher:    hasher,
		ttl:       sessionTTL,
		movies:    make(map[uint]models.Movie),
		users:     make(map[uint]models.User),
		emails:    make(map[string]uint),
		sessions:  make(map[string]models.Session),
		favorites: make(map[favKey]favRow),
	}
}

// EnsureSchema is a no-op: the maps are the schema.
func (s *Store) EnsureSchema(ctx context.Context) error { return nil }

// SeedIfEmpty loads the starter catalog when no movies exist yet.
func (s *Store) SeedIfEmpty(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.movies) > 0 {
		return nil
	}
	for _, m := range store.SeedCatalog() {
		s.nextMovieID++
		m.ID = s.nextMovieID
		now := time.Now()
		m.CreatedAt = now
		m.UpdatedAt = now
		s.movies[m.ID] = m
	}
	return nil
}

func (s *Store) Movies() store.MovieStore       { return (*movieStore)(s) }
func (s *Store) Accounts() store.AccountStore   { return (*accountStore)(s) }
func (s *Store) Sessions() store.SessionStore   { return (*sessionStore)(s) }
func (s *Store) Favorites() store.FavoriteStore { return (*favoriteStore)(s) }

func (s *Store) Close() error { return nil }

func cloneMovie(m models.Movie) models.Movie {
	c := m
	c.Genre = append([]string(nil), m.Genre...)
	return c
}

// sortedMovies returns copies of all movies in id order. Callers must hold
// at least the read lock.
func (s *Store) sortedMovies() []models.Movie {
	out := make([]models.Movie, 0, len(s.movies))
	for _, m := range s.movies {
		out = append(out, cloneMovie(m))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ---------- movies ----------

type movieStore Store

func (m *movieStore) List(ctx context.Context) ([]models.Movie, error) {
	s := (*Store)(m)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedMovies(), nil
}

func (m *movieStore) GetByID(ctx context.Context, id uint) (*models.Movie, error) {
	s := (*Store)(m)
	s.mu.RLock()
	defer s.mu.RUnlock()

	movie, ok := s.movies[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	c := cloneMovie(movie)
	return &c, nil
}

func (m *movieStore) Search(ctx context.Context, query, genre string, year int) ([]models.Movie, error) {
	s := (*Store)(m)
	s.mu.RLock()
	defer s.mu.RUnlock()

	term := strings.ToLower(query)
	var out []models.Movie
	for _, movie := range s.sortedMovies() {
		if term != "" &&
			!strings.Contains(strings.ToLower(movie.Title), term) &&
			!strings.Contains(strings.ToLower(movie.Director), term) {
			continue
		}
		if year != 0 && movie.Year != year {
			continue
		}
		if genre != "" && !hasGenre(movie.Genre, genre) {
			continue
		}
		out = append(out, movie)
	}
	return out, nil
}

func hasGenre(genres []string, want string) bool {
	for _, g := range genres {
		if strings.EqualFold(g, want) {
			return true
		}
	}
	return false
}

func (m *movieStore) Add(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	s := (*Store)(m)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextMovieID++
	created := cloneMovie(*movie)
	created.ID = s.nextMovieID
	now := time.Now()
	created.CreatedAt = now
	created.UpdatedAt = now
	s.movies[created.ID] = created

	c := cloneMovie(created)
	return &c, nil
}

func (m *movieStore) Update(ctx context.Context, id uint, upd store.MovieUpdate) (*models.Movie, error) {
	s := (*Store)(m)
	s.mu.Lock()
	defer s.mu.Unlock()

	movie, ok := s.movies[id]
	if !ok {
		return nil, store.ErrNotFound
	}

	if upd.Title != nil {
		movie.Title = *upd.Title
	}
	if upd.Year != nil {
		movie.Year = *upd.Year
	}
	if upd.Director != nil {
		movie.Director = *upd.Director
	}
	if upd.Genre != nil {
		movie.Genre = append([]string(nil), *upd.Genre...)
	}
	if upd.Poster != nil {
		movie.Poster = *upd.Poster
	}
	if upd.Rating != nil {
		movie.Rating = *upd.Rating
	}
	if upd.Synopsis != nil {
		movie.Synopsis = *upd.Synopsis
	}
	movie.UpdatedAt = time.Now()
	s.movies[id] = movie

	c := cloneMovie(movie)
	return &c, nil
}

func (m *movieStore) Delete(ctx context.Context, id uint) (bool, error) {
	s := (*Store)(m)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.movies[id]; !ok {
		return false, nil
	}
	delete(s.movies, id)
	// cascade: drop every favorite referencing the movie
	for key := range s.favorites {
		if key.movieID == id {
			delete(s.favorites, key)
		}
	}
	return true, nil
}

// ---------- accounts ----------

type accountStore Store

func (a *accountStore) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)

	if err := util.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := util.ValidatePassword(password); err != nil {
		return nil, err
	}
	if err := util.ValidateName(name); err != nil {
		return nil, err
	}

	s := (*Store)(a)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.emails[email]; taken {
		return nil, store.ErrEmailInUse
	}

	stored, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	s.nextUserID++
	user := models.User{
		ID:        s.nextUserID,
		Email:     email,
		Password:  stored,
		Name:      name,
		CreatedAt: time.Now(),
	}
	s.users[user.ID] = user
	s.emails[email] = user.ID

	u := user
	return &u, nil
}

func (a *accountStore) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	s := (*Store)(a)
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emails[email]
	if !ok {
		return nil, store.ErrInvalidCredentials
	}
	user := s.users[id]
	if !s.hasher.Verify(password, user.Password) {
		return nil, store.ErrInvalidCredentials
	}
	u := user
	return &u, nil
}

func (a *accountStore) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	s := (*Store)(a)

	sess, err := s.Sessions().Validate(ctx, token)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[sess.UserID]
	if !ok {
		return nil, store.ErrNotFound
	}
	u := user
	return &u, nil
}

func (a *accountStore) Users(ctx context.Context) ([]models.User, error) {
	s := (*Store)(a)
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ---------- sessions ----------

type sessionStore Store

func (ss *sessionStore) Create(ctx context.Context, userID uint, deviceInfo, ipAddress string) (string, error) {
	s := (*Store)(ss)
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.nextSessionID++
	sess := models.Session{
		ID:         s.nextSessionID,
		UserID:     userID,
		Token:      uuid.NewString(),
		DeviceInfo: deviceInfo,
		IPAddress:  ipAddress,
		LastActive: now,
		ExpiresAt:  now.Add(s.ttl),
		CreatedAt:  now,
	}
	s.sessions[sess.Token] = sess
	return sess.Token, nil
}

func (ss *sessionStore) Validate(ctx context.Context, token string) (*models.Session, error) {
	s := (*Store)(ss)
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return nil, store.ErrNotFound
	}
	now := time.Now()
	if now.After(sess.ExpiresAt) {
		return nil, store.ErrNotFound
	}

	sess.LastActive = now
	s.sessions[token] = sess

	c := sess
	return &c, nil
}

func (ss *sessionStore) End(ctx context.Context, token string) error {
	s := (*Store)(ss)
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

func (ss *sessionStore) SweepExpired(ctx context.Context) (int64, error) {
	s := (*Store)(ss)
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	var removed int64
	for token, sess := range s.sessions {
		if sess.ExpiresAt.Before(now) {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed, nil
}

// ---------- favorites ----------

type favoriteStore Store

func (f *favoriteStore) Toggle(ctx context.Context, userID, movieID uint) (bool, error) {
	s := (*Store)(f)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return false, store.ErrNotFound
	}
	if _, ok := s.movies[movieID]; !ok {
		return false, store.ErrNotFound
	}

	key := favKey{userID: userID, movieID: movieID}
	if _, exists := s.favorites[key]; exists {
		delete(s.favorites, key)
		return false, nil
	}
	s.nextFavID++
	s.favorites[key] = favRow{id: s.nextFavID, createdAt: time.Now()}
	return true, nil
}

func (f *favoriteStore) List(ctx context.Context, userID uint) ([]uint, error) {
	s := (*Store)(f)
	s.mu.RLock()
	defer s.mu.RUnlock()

	type pair struct {
		rowID   uint
		movieID uint
	}
	var rows []pair
	for key, row := range s.favorites {
		if key.userID == userID {
			rows = append(rows, pair{rowID: row.id, movieID: key.movieID})
		}
	}
	// insertion order, like the file-backed store
	sort.Slice(rows, func(i, j int) bool { return rows[i].rowID < rows[j].rowID })

	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.movieID)
	}
	return ids, nil
}

func (f *favoriteStore) IsFavorite(ctx context.Context, userID, movieID uint) (bool, error) {
	s := (*Store)(f)
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.favorites[favKey{userID: userID, movieID: movieID}]
	return ok, nil
}

func (f *favoriteStore) ListMovies(ctx context.Context, userID uint) ([]models.Movie, error) {
	s := (*Store)(f)
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Movie
	for _, movie := range s.sortedMovies() {
		if _, ok := s.favorites[favKey{userID: userID, movieID: movie.ID}]; ok {
			out = append(out, movie)
		}
	}
	return out, nil
}
