package gormstore

import (
	"context"
	"errors"
	"testing"

	"github.com/Carlacms18/movie-catalog/internal/models"
	"github.com/Carlacms18/movie-catalog/internal/store"
)

func TestMovieAddAndGetByID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	genres := []string{"Sci-Fi", "Thriller", "Drama"}
	added := addMovie(t, s, "Inception", 2010, "Christopher Nolan", genres)
	if added.ID == 0 {
		t.Fatal("Add() did not assign an id")
	}

	got, err := s.Movies().GetByID(ctx, added.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Title != "Inception" || got.Year != 2010 {
		t.Errorf("got %q (%d), want Inception (2010)", got.Title, got.Year)
	}

	// genre list must round-trip element for element, order preserved
	if len(got.Genre) != len(genres) {
		t.Fatalf("genre length = %d, want %d", len(got.Genre), len(genres))
	}
	for i := range genres {
		if got.Genre[i] != genres[i] {
			t.Errorf("genre[%d] = %q, want %q", i, got.Genre[i], genres[i])
		}
	}
}

func TestMovieGetByID_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Movies().GetByID(context.Background(), 9999)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetByID(9999) error = %v, want ErrNotFound", err)
	}
}

func TestMovieList_StableOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	m1 := addMovie(t, s, "B Movie", 2001, "Dir One", nil)
	m2 := addMovie(t, s, "A Movie", 2002, "Dir Two", nil)

	for i := 0; i < 3; i++ {
		movies, err := s.Movies().List(ctx)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(movies) != 2 || movies[0].ID != m1.ID || movies[1].ID != m2.ID {
			t.Fatalf("List() order changed on call %d: %+v", i, movies)
		}
	}
}

func TestMovieSearch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	addMovie(t, s, "Inception", 2010, "Christopher Nolan", []string{"Sci-Fi"})
	addMovie(t, s, "Parasite", 2019, "Bong Joon-ho", []string{"Drama"})

	tests := []struct {
		name       string
		query      string
		genre      string
		year       int
		wantTitles []string
	}{
		{"substring on title", "in", "", 0, []string{"Inception"}},
		{"substring is case-insensitive", "INCEP", "", 0, []string{"Inception"}},
		{"substring on director", "nolan", "", 0, []string{"Inception"}},
		{"genre and year", "", "Drama", 2019, []string{"Parasite"}},
		{"genre with wrong year", "", "Drama", 2010, nil},
		{"genre case-insensitive", "", "drama", 0, []string{"Parasite"}},
		{"empty filters return all", "", "", 0, []string{"Inception", "Parasite"}},
		{"no match", "zzz", "", 0, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.Movies().Search(ctx, tc.query, tc.genre, tc.year)
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			if len(got) != len(tc.wantTitles) {
				t.Fatalf("got %d movies, want %d (%v)", len(got), len(tc.wantTitles), got)
			}
			for i, want := range tc.wantTitles {
				if got[i].Title != want {
					t.Errorf("result[%d] = %q, want %q", i, got[i].Title, want)
				}
			}
		})
	}
}

func TestMovieUpdate_PartialMerge(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	m := addMovie(t, s, "Old Title", 1999, "Old Director", []string{"Drama"})

	newTitle := "New Title"
	newRating := 9.1
	updated, err := s.Movies().Update(ctx, m.ID, store.MovieUpdate{
		Title:  &newTitle,
		Rating: &newRating,
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if updated.Title != "New Title" {
		t.Errorf("title = %q, want updated value", updated.Title)
	}
	if updated.Rating != 9.1 {
		t.Errorf("rating = %v, want 9.1", updated.Rating)
	}
	// untouched fields keep their values
	if updated.Year != 1999 || updated.Director != "Old Director" {
		t.Errorf("unrelated fields changed: %+v", updated)
	}
	if len(updated.Genre) != 1 || updated.Genre[0] != "Drama" {
		t.Errorf("genre changed: %v", updated.Genre)
	}
}

func TestMovieUpdate_NotFound(t *testing.T) {
	s := newTestStore(t)

	title := "x"
	_, err := s.Movies().Update(context.Background(), 4242, store.MovieUpdate{Title: &title})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Update(4242) error = %v, want ErrNotFound", err)
	}
}

func TestMovieDelete_CascadesFavorites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	movie := addMovie(t, s, "Doomed", 2000, "Dir", nil)
	keeper := addMovie(t, s, "Keeper", 2001, "Dir", nil)
	u1 := addUser(t, s, "a@example.com")
	u2 := addUser(t, s, "b@example.com")

	for _, u := range []*models.User{u1, u2} {
		if _, err := s.Favorites().Toggle(ctx, u.ID, movie.ID); err != nil {
			t.Fatalf("toggle: %v", err)
		}
		if _, err := s.Favorites().Toggle(ctx, u.ID, keeper.ID); err != nil {
			t.Fatalf("toggle: %v", err)
		}
	}

	removed, err := s.Movies().Delete(ctx, movie.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if !removed {
		t.Error("Delete() = false, want true for an existing movie")
	}

	for _, u := range []*models.User{u1, u2} {
		favs, err := s.Favorites().ListMovies(ctx, u.ID)
		if err != nil {
			t.Fatalf("ListMovies() error = %v", err)
		}
		for _, f := range favs {
			if f.ID == movie.ID {
				t.Errorf("user %d still has deleted movie %d in favorites", u.ID, movie.ID)
			}
		}
		if len(favs) != 1 || favs[0].ID != keeper.ID {
			t.Errorf("user %d favorites = %+v, want only the keeper", u.ID, favs)
		}
	}

	// no favorite row may reference the movie anymore
	ok, err := s.Favorites().IsFavorite(ctx, u1.ID, movie.ID)
	if err != nil {
		t.Fatalf("IsFavorite() error = %v", err)
	}
	if ok {
		t.Error("favorite row survived the cascade")
	}
}

func TestMovieDelete_Missing(t *testing.T) {
	s := newTestStore(t)

	removed, err := s.Movies().Delete(context.Background(), 777)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if removed {
		t.Error("Delete(777) = true, want false for a missing movie")
	}
}

func TestMovieIDs_NeverReused(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	m1 := addMovie(t, s, "First", 2001, "Dir", nil)
	if _, err := s.Movies().Delete(ctx, m1.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	m2 := addMovie(t, s, "Second", 2002, "Dir", nil)
	if m2.ID <= m1.ID {
		t.Errorf("id %d reused after delete of %d", m2.ID, m1.ID)
	}
}
