package gormstore

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Carlacms18/movie-catalog/internal/models"
	"github.com/Carlacms18/movie-catalog/internal/store"
)

func TestToggle_XOR(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := addUser(t, s, "fav@example.com")
	m := addMovie(t, s, "Toggled", 2005, "Dir", nil)

	// after an odd number of toggles the pair exists, after an even it does not
	for i := 1; i <= 5; i++ {
		nowFav, err := s.Favorites().Toggle(ctx, u.ID, m.ID)
		if err != nil {
			t.Fatalf("Toggle() #%d error = %v", i, err)
		}
		wantFav := i%2 == 1
		if nowFav != wantFav {
			t.Errorf("Toggle() #%d = %v, want %v", i, nowFav, wantFav)
		}

		isFav, err := s.Favorites().IsFavorite(ctx, u.ID, m.ID)
		if err != nil {
			t.Fatalf("IsFavorite() error = %v", err)
		}
		if isFav != wantFav {
			t.Errorf("IsFavorite() after toggle #%d = %v, want %v", i, isFav, wantFav)
		}
	}
}

// An even number of concurrent toggles (the double-tap) must end with the
// pair absent and never more than one row at any point.
func TestToggle_ConcurrentDoubleTap(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := addUser(t, s, "tap@example.com")
	m := addMovie(t, s, "Tapped", 2006, "Dir", nil)

	const toggles = 6
	var wg sync.WaitGroup
	errs := make([]error, toggles)
	for i := 0; i < toggles; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.Favorites().Toggle(ctx, u.ID, m.ID)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("Toggle() #%d error = %v", i, err)
		}
	}

	var count int64
	if err := s.db.Model(&models.Favorite{}).
		Where("user_id = ? AND movie_id = ?", u.ID, m.ID).
		Count(&count).Error; err != nil {
		t.Fatalf("count favorites: %v", err)
	}
	if count != 0 {
		t.Errorf("after %d toggles got %d rows, want 0", toggles, count)
	}
}

func TestToggle_RequiresExistingRows(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := addUser(t, s, "ref@example.com")
	m := addMovie(t, s, "Real", 2007, "Dir", nil)

	if _, err := s.Favorites().Toggle(ctx, 999, m.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Toggle() with unknown user error = %v, want ErrNotFound", err)
	}
	if _, err := s.Favorites().Toggle(ctx, u.ID, 999); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Toggle() with unknown movie error = %v, want ErrNotFound", err)
	}
}

func TestFavoritesListAndListMovies(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := addUser(t, s, "list@example.com")
	other := addUser(t, s, "other@example.com")
	m1 := addMovie(t, s, "First Fav", 2001, "Dir", []string{"Drama"})
	m2 := addMovie(t, s, "Second Fav", 2002, "Dir", []string{"Crime"})
	m3 := addMovie(t, s, "Not Fav", 2003, "Dir", nil)

	for _, id := range []uint{m1.ID, m2.ID} {
		if _, err := s.Favorites().Toggle(ctx, u.ID, id); err != nil {
			t.Fatalf("toggle: %v", err)
		}
	}
	if _, err := s.Favorites().Toggle(ctx, other.ID, m3.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	ids, err := s.Favorites().List(ctx, u.ID)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(ids) != 2 || ids[0] != m1.ID || ids[1] != m2.ID {
		t.Errorf("List() = %v, want [%d %d]", ids, m1.ID, m2.ID)
	}

	movies, err := s.Favorites().ListMovies(ctx, u.ID)
	if err != nil {
		t.Fatalf("ListMovies() error = %v", err)
	}
	if len(movies) != 2 {
		t.Fatalf("ListMovies() returned %d movies, want 2", len(movies))
	}
	if movies[0].Title != "First Fav" || movies[1].Title != "Second Fav" {
		t.Errorf("ListMovies() = %q, %q", movies[0].Title, movies[1].Title)
	}
	// favorites of one user never leak into another's
	if otherIDs, _ := s.Favorites().List(ctx, other.ID); len(otherIDs) != 1 || otherIDs[0] != m3.ID {
		t.Errorf("other user's favorites = %v, want [%d]", otherIDs, m3.ID)
	}
}

func TestFavorites_EmptyForNewUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := addUser(t, s, "empty@example.com")

	ids, err := s.Favorites().List(ctx, u.ID)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("List() for a fresh user = %v, want empty", ids)
	}

	ok, err := s.Favorites().IsFavorite(ctx, u.ID, 1)
	if err != nil {
		t.Fatalf("IsFavorite() error = %v", err)
	}
	if ok {
		t.Error("IsFavorite() = true for a fresh user")
	}
}

func TestFavorites_PersistAcrossSessions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := addUser(t, s, "persist@example.com")
	m := addMovie(t, s, "Kept", 2010, "Dir", nil)

	token, _ := s.Sessions().Create(ctx, u.ID, "", "")
	if _, err := s.Favorites().Toggle(ctx, u.ID, m.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	// favorites outlive the session that created them
	if err := s.Sessions().End(ctx, token); err != nil {
		t.Fatalf("End() error = %v", err)
	}

	ok, err := s.Favorites().IsFavorite(ctx, u.ID, m.ID)
	if err != nil {
		t.Fatalf("IsFavorite() error = %v", err)
	}
	if !ok {
		t.Error("favorite vanished when the session ended")
	}
}
