package library_test

import (
	"context"
	"testing"

	"soundvault/internal/identity"
	"soundvault/internal/library"
	"soundvault/internal/testsupport"
)

func seedSound(t *testing.T, store *library.Store, name string, tags []string) string {
	t.Helper()
	meta := library.SoundMetadata{
		ID:     identity.New(),
		Name:   name,
		Source: library.SourceLocal,
		Tags:   tags,
	}
	if err := store.UpsertSound(context.Background(), &meta); err != nil {
		t.Fatalf("seed %s: %v", name, err)
	}
	return meta.ID
}

func TestSearchByText(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenLibrary(t, cfg)
	ctx := context.Background()

	kickID := seedSound(t, store, "kick_drum.wav", []string{"drum"})
	seedSound(t, store, "snare_hit.wav", []string{"drum"})

	results, err := store.Search(ctx, "kick", nil)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 || results[0].Metadata.ID != kickID {
		t.Fatalf("expected exactly the kick sound, got %d results", len(results))
	}
}

func TestSearchTextMatchesDescription(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenLibrary(t, cfg)
	ctx := context.Background()

	meta := library.SoundMetadata{
		ID:          identity.New(),
		Name:        "field01.wav",
		Source:      library.SourceLocal,
		Description: "rain on a tin roof",
	}
	if err := store.UpsertSound(ctx, &meta); err != nil {
		t.Fatalf("UpsertSound failed: %v", err)
	}

	results, err := store.Search(ctx, "tin roof", nil)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 || results[0].Metadata.ID != meta.ID {
		t.Fatalf("expected description match, got %d results", len(results))
	}
}

func TestSearchByTagIsExactMembership(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenLibrary(t, cfg)
	ctx := context.Background()

	drumID := seedSound(t, store, "kick_drum.wav", []string{"drum", "kick"})
	seedSound(t, store, "tom_roll.wav", []string{"drums"})
	seedSound(t, store, "vocal.wav", []string{"voice"})

	results, err := store.Search(ctx, "", []string{"drum"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 || results[0].Metadata.ID != drumID {
		t.Fatalf("expected only the sound tagged drum, got %d results", len(results))
	}
}

func TestSearchConjunction(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenLibrary(t, cfg)
	ctx := context.Background()

	wantID := seedSound(t, store, "kick_drum.wav", []string{"drum", "kick"})
	seedSound(t, store, "kick_door.wav", []string{"foley"})
	seedSound(t, store, "big_drum.wav", []string{"drum"})

	results, err := store.Search(ctx, "kick", []string{"drum"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 || results[0].Metadata.ID != wantID {
		t.Fatalf("expected text and tag predicates to conjoin, got %d results", len(results))
	}
}

func TestSearchEmptyReturnsAllOrdered(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenLibrary(t, cfg)
	ctx := context.Background()

	seedSound(t, store, "zebra.wav", nil)
	seedSound(t, store, "apple.wav", nil)
	seedSound(t, store, "Banana.wav", nil)

	results, err := store.Search(ctx, "", nil)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	names := []string{results[0].Metadata.Name, results[1].Metadata.Name, results[2].Metadata.Name}
	if names[0] != "apple.wav" || names[1] != "Banana.wav" || names[2] != "zebra.wav" {
		t.Fatalf("unexpected order: %v", names)
	}
}

func TestSearchTiesBreakOnIdentifier(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenLibrary(t, cfg)
	ctx := context.Background()

	a := seedSound(t, store, "same.wav", nil)
	b := seedSound(t, store, "same.wav", nil)
	low, high := a, b
	if low > high {
		low, high = high, low
	}

	results, err := store.Search(ctx, "", nil)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 2 || results[0].Metadata.ID != low || results[1].Metadata.ID != high {
		t.Fatalf("expected identifier tie-break, got %#v", results)
	}
}
