package repositories

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/desertthunder/reelist/internal/models"
	"github.com/desertthunder/reelist/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func testPayload(title string) models.MoviePayload {
	return models.MoviePayload{
		Title:         title,
		Description:   "A test movie",
		Genre:         "Drama",
		ImageURL:      "https://img.example.com/poster.jpg",
		CoverImageURL: "https://img.example.com/cover.jpg",
	}
}

// createTestUser inserts a user with a watchlist and returns both.
func createTestUser(t *testing.T, db *sql.DB, email string) (*models.User, *models.Watchlist) {
	t.Helper()

	userRepo := NewUserRepository(db)
	user := models.NewUser(0, "Test User", email, "hashed-password")
	if err := userRepo.Create(user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	watchlistRepo := NewWatchlistRepository(db)
	watchlist, err := watchlistRepo.CreateFor(user.ID())
	if err != nil {
		t.Fatalf("failed to create watchlist: %v", err)
	}

	return user, watchlist
}

func TestUserRepository(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewUserRepository(db)
		user := models.NewUser(0, "Test User", "test@example.com", "hashed-password")

		err := repo.Create(user)
		if err != nil {
			t.Fatalf("failed to create user: %v", err)
		}

		if user.ID() == "" {
			t.Error("user ID should be set after creation")
		}
	})

	t.Run("Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewUserRepository(db)
		user := models.NewUser(0, "Test User", "test@example.com", "hashed-password")

		if err := repo.Create(user); err != nil {
			t.Fatalf("failed to create user: %v", err)
		}

		retrieved, err := repo.Get(user.ID())
		if err != nil {
			t.Fatalf("failed to get user: %v", err)
		}

		if retrieved.ID() != user.ID() {
			t.Errorf("expected ID %s, got %s", user.ID(), retrieved.ID())
		}

		if retrieved.Email() != user.Email() {
			t.Errorf("expected email %s, got %s", user.Email(), retrieved.Email())
		}

		if retrieved.UpdatedAt() != nil {
			t.Error("expected no updated timestamp on a fresh user")
		}
	})

	t.Run("GetByEmail", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewUserRepository(db)
		user := models.NewUser(0, "Test User", "test@example.com", "hashed-password")

		if err := repo.Create(user); err != nil {
			t.Fatalf("failed to create user: %v", err)
		}

		retrieved, err := repo.GetByEmail("test@example.com")
		if err != nil {
			t.Fatalf("failed to get user by email: %v", err)
		}

		if retrieved.ID() != user.ID() {
			t.Errorf("expected ID %s, got %s", user.ID(), retrieved.ID())
		}
	})

	t.Run("List", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewUserRepository(db)

		users := []*models.User{
			models.NewUser(0, "User One", "user1@example.com", "pw1"),
			models.NewUser(0, "User Two", "user2@example.com", "pw2"),
			models.NewUser(0, "User Three", "user3@example.com", "pw3"),
		}

		for _, user := range users {
			if err := repo.Create(user); err != nil {
				t.Fatalf("failed to create user: %v", err)
			}
		}

		retrieved, err := repo.List(map[string]any{})
		if err != nil {
			t.Fatalf("failed to list users: %v", err)
		}

		if len(retrieved) != 3 {
			t.Errorf("expected 3 users, got %d", len(retrieved))
		}

		filtered, err := repo.List(map[string]any{"email": "user2@example.com"})
		if err != nil {
			t.Fatalf("failed to list filtered users: %v", err)
		}

		if len(filtered) != 1 {
			t.Errorf("expected 1 user, got %d", len(filtered))
		}

		if len(filtered) > 0 && filtered[0].Email() != "user2@example.com" {
			t.Errorf("expected user2@example.com, got %s", filtered[0].Email())
		}
	})
}

func TestMovieRepository(t *testing.T) {
	t.Run("Create & Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewMovieRepository(db)
		movie := models.NewMovie(0, testPayload("The Godfather"))

		if err := repo.Create(movie); err != nil {
			t.Fatalf("failed to create movie: %v", err)
		}

		retrieved, err := repo.Get(movie.ID())
		if err != nil {
			t.Fatalf("failed to get movie: %v", err)
		}

		if retrieved.Title() != "The Godfather" {
			t.Errorf("expected title 'The Godfather', got %s", retrieved.Title())
		}

		if retrieved.UpdatedAt() != nil {
			t.Error("expected no updated timestamp on a fresh movie")
		}
	})

	t.Run("GetByTitle", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewMovieRepository(db)

		first := models.NewMovie(0, testPayload("Heat"))
		if err := repo.Create(first); err != nil {
			t.Fatalf("failed to create first movie: %v", err)
		}

		// Same title; GetByTitle must return the first in storage order
		second := models.NewMovie(0, testPayload("Heat"))
		if err := repo.Create(second); err != nil {
			t.Fatalf("failed to create second movie: %v", err)
		}

		retrieved, err := repo.GetByTitle("Heat")
		if err != nil {
			t.Fatalf("failed to get movie by title: %v", err)
		}

		if retrieved.ID() != first.ID() {
			t.Errorf("expected first match %s, got %s", first.ID(), retrieved.ID())
		}
	})

	t.Run("List", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewMovieRepository(db)

		titles := []string{"Alien", "Blade Runner", "Casablanca"}
		for _, title := range titles {
			if err := repo.Create(models.NewMovie(0, testPayload(title))); err != nil {
				t.Fatalf("failed to create movie %s: %v", title, err)
			}
		}

		movies, err := repo.List(map[string]any{})
		if err != nil {
			t.Fatalf("failed to list movies: %v", err)
		}

		if len(movies) != 3 {
			t.Fatalf("expected 3 movies, got %d", len(movies))
		}

		// Insertion order is preserved via sequence
		for i, title := range titles {
			if movies[i].Title() != title {
				t.Errorf("expected %s at position %d, got %s", title, i, movies[i].Title())
			}
		}
	})

	t.Run("Update", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewMovieRepository(db)
		movie := models.NewMovie(0, testPayload("Old Title"))

		if err := repo.Create(movie); err != nil {
			t.Fatalf("failed to create movie: %v", err)
		}

		payload := testPayload("New Title")
		updated, err := repo.Update(movie.ID(), payload)
		if err != nil {
			t.Fatalf("failed to update movie: %v", err)
		}

		// Update returns the new record, not the stale one
		if updated.Title() != "New Title" {
			t.Errorf("expected updated title 'New Title', got %s", updated.Title())
		}

		if updated.ID() != movie.ID() {
			t.Errorf("expected id %s preserved, got %s", movie.ID(), updated.ID())
		}

		if updated.UpdatedAt() == nil {
			t.Error("expected updated timestamp to be set")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewMovieRepository(db)
		movie := models.NewMovie(0, testPayload("Doomed"))

		if err := repo.Create(movie); err != nil {
			t.Fatalf("failed to create movie: %v", err)
		}

		removed, err := repo.Delete(movie.ID())
		if err != nil {
			t.Fatalf("failed to delete movie: %v", err)
		}

		if removed.ID() != movie.ID() {
			t.Errorf("expected removed record %s, got %s", movie.ID(), removed.ID())
		}

		if _, err := repo.Get(movie.ID()); err == nil {
			t.Error("expected error when getting deleted movie")
		}
	})

	t.Run("DeleteRollsBackOnScrubFailure", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewMovieRepository(db)
		movie := models.NewMovie(0, testPayload("Survivor"))

		if err := repo.Create(movie); err != nil {
			t.Fatalf("failed to create movie: %v", err)
		}

		scrubErr := errors.New("scrub failed")
		_, err := repo.Delete(movie.ID(), func(tx *sql.Tx) error { return scrubErr })
		if !errors.Is(err, scrubErr) {
			t.Fatalf("expected scrub error to surface, got %v", err)
		}

		// The soft delete must roll back with the failed scrub
		retrieved, err := repo.Get(movie.ID())
		if err != nil {
			t.Fatalf("expected movie to survive a failed scrub: %v", err)
		}
		if retrieved.ID() != movie.ID() {
			t.Errorf("expected movie %s, got %s", movie.ID(), retrieved.ID())
		}
	})
}

func TestWatchlistRepository(t *testing.T) {
	t.Run("CreateFor & GetByUser", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		user, watchlist := createTestUser(t, db, "test@example.com")

		if watchlist.ID() == "" {
			t.Error("watchlist ID should be set after creation")
		}

		repo := NewWatchlistRepository(db)
		retrieved, err := repo.GetByUser(user.ID())
		if err != nil {
			t.Fatalf("failed to get watchlist: %v", err)
		}

		if retrieved.UserID() != user.ID() {
			t.Errorf("expected owner %s, got %s", user.ID(), retrieved.UserID())
		}

		if retrieved.Len() != 0 {
			t.Errorf("expected empty watchlist, got %d entries", retrieved.Len())
		}
	})

	t.Run("AddMovie", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		user, _ := createTestUser(t, db, "test@example.com")

		movieRepo := NewMovieRepository(db)
		movie := models.NewMovie(0, testPayload("The Godfather"))
		if err := movieRepo.Create(movie); err != nil {
			t.Fatalf("failed to create movie: %v", err)
		}

		repo := NewWatchlistRepository(db)

		added, err := repo.AddMovie(user.ID(), movie.ID())
		if err != nil {
			t.Fatalf("failed to add movie: %v", err)
		}
		if !added {
			t.Error("expected first add to report a change")
		}

		// Second add is an idempotent no-op
		added, err = repo.AddMovie(user.ID(), movie.ID())
		if err != nil {
			t.Fatalf("duplicate add should not error: %v", err)
		}
		if added {
			t.Error("expected duplicate add to report no change")
		}

		watchlist, err := repo.GetByUser(user.ID())
		if err != nil {
			t.Fatalf("failed to get watchlist: %v", err)
		}

		if watchlist.Len() != 1 {
			t.Errorf("expected exactly 1 entry, got %d", watchlist.Len())
		}
	})

	t.Run("Ordering", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		user, _ := createTestUser(t, db, "test@example.com")

		movieRepo := NewMovieRepository(db)
		repo := NewWatchlistRepository(db)

		var ids []string
		for _, title := range []string{"First", "Second", "Third"} {
			movie := models.NewMovie(0, testPayload(title))
			if err := movieRepo.Create(movie); err != nil {
				t.Fatalf("failed to create movie: %v", err)
			}
			if _, err := repo.AddMovie(user.ID(), movie.ID()); err != nil {
				t.Fatalf("failed to add movie: %v", err)
			}
			ids = append(ids, movie.ID())
		}

		watchlist, err := repo.GetByUser(user.ID())
		if err != nil {
			t.Fatalf("failed to get watchlist: %v", err)
		}

		got := watchlist.MovieIDs()
		for i, id := range ids {
			if got[i] != id {
				t.Errorf("expected %s at position %d, got %s", id, i, got[i])
			}
		}
	})

	t.Run("RemoveMovie", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		user, _ := createTestUser(t, db, "test@example.com")

		movieRepo := NewMovieRepository(db)
		movie := models.NewMovie(0, testPayload("The Godfather"))
		if err := movieRepo.Create(movie); err != nil {
			t.Fatalf("failed to create movie: %v", err)
		}

		repo := NewWatchlistRepository(db)

		// Removing an absent movie is a no-op, not an error
		removed, err := repo.RemoveMovie(user.ID(), movie.ID())
		if err != nil {
			t.Fatalf("remove of absent movie should not error: %v", err)
		}
		if removed {
			t.Error("expected remove of absent movie to report no change")
		}

		if _, err := repo.AddMovie(user.ID(), movie.ID()); err != nil {
			t.Fatalf("failed to add movie: %v", err)
		}

		removed, err = repo.RemoveMovie(user.ID(), movie.ID())
		if err != nil {
			t.Fatalf("failed to remove movie: %v", err)
		}
		if !removed {
			t.Error("expected remove to report a change")
		}

		watchlist, err := repo.GetByUser(user.ID())
		if err != nil {
			t.Fatalf("failed to get watchlist: %v", err)
		}
		if watchlist.Len() != 0 {
			t.Errorf("expected empty watchlist, got %d entries", watchlist.Len())
		}
	})

	t.Run("CascadeRemove", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		alice, _ := createTestUser(t, db, "alice@example.com")
		bob, _ := createTestUser(t, db, "bob@example.com")

		movieRepo := NewMovieRepository(db)
		sharedMovie := models.NewMovie(0, testPayload("Shared Movie"))
		kept := models.NewMovie(0, testPayload("Kept Movie"))
		for _, movie := range []*models.Movie{sharedMovie, kept} {
			if err := movieRepo.Create(movie); err != nil {
				t.Fatalf("failed to create movie: %v", err)
			}
		}

		repo := NewWatchlistRepository(db)
		for _, userID := range []string{alice.ID(), bob.ID()} {
			if _, err := repo.AddMovie(userID, sharedMovie.ID()); err != nil {
				t.Fatalf("failed to add shared movie: %v", err)
			}
		}
		if _, err := repo.AddMovie(alice.ID(), kept.ID()); err != nil {
			t.Fatalf("failed to add kept movie: %v", err)
		}

		if _, err := movieRepo.Delete(sharedMovie.ID(), repo.CascadeRemove(sharedMovie.ID())); err != nil {
			t.Fatalf("failed to delete with cascade: %v", err)
		}

		if _, err := movieRepo.Get(sharedMovie.ID()); err == nil {
			t.Error("expected cascaded movie to be deleted from the catalog")
		}

		for _, userID := range []string{alice.ID(), bob.ID()} {
			watchlist, err := repo.GetByUser(userID)
			if err != nil {
				t.Fatalf("failed to get watchlist: %v", err)
			}
			if watchlist.Contains(sharedMovie.ID()) {
				t.Errorf("watchlist for %s still references cascaded movie", userID)
			}
		}

		aliceList, err := repo.GetByUser(alice.ID())
		if err != nil {
			t.Fatalf("failed to get watchlist: %v", err)
		}
		if !aliceList.Contains(kept.ID()) {
			t.Error("cascade removed an unrelated movie")
		}
	})
}

func TestNextSequence(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	seq1, err := NextSequence(db, "users")
	if err != nil {
		t.Fatalf("failed to get first sequence: %v", err)
	}

	if seq1 != 1 {
		t.Errorf("expected first sequence to be 1, got %d", seq1)
	}

	seq2, err := NextSequence(db, "users")
	if err != nil {
		t.Fatalf("failed to get second sequence: %v", err)
	}

	if seq2 != 2 {
		t.Errorf("expected second sequence to be 2, got %d", seq2)
	}

	movieSeq, err := NextSequence(db, "movies")
	if err != nil {
		t.Fatalf("failed to get movie sequence: %v", err)
	}

	if movieSeq != 1 {
		t.Errorf("expected first movie sequence to be 1, got %d", movieSeq)
	}
}
