package outlet

import (
	"context"
	"errors"
	"testing"
)

func TestStaticStoreFindOutlet(t *testing.T) {
	t.Parallel()

	store := NewStaticStore()
	found, err := store.Find(context.Background(), "SS2")
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if found.OpeningTime != "9:00 AM" || found.ClosingTime != "10:00 PM" {
		t.Fatalf("unexpected hours: %+v", found)
	}
	if found.Area() {
		t.Fatal("SS2 must not be an area row")
	}
}

func TestStaticStoreFindIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	store := NewStaticStore()
	found, err := store.Find(context.Background(), "damansara")
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if found.Name != "Damansara" {
		t.Fatalf("unexpected name: %s", found.Name)
	}
}

func TestStaticStoreFindArea(t *testing.T) {
	t.Parallel()

	store := NewStaticStore()
	found, err := store.Find(context.Background(), "Petaling Jaya")
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if !found.Area() {
		t.Fatal("Petaling Jaya must be an area row")
	}
	if found.Description == "" {
		t.Fatal("area row needs a description")
	}
}

func TestStaticStoreFindUnknown(t *testing.T) {
	t.Parallel()

	store := NewStaticStore()
	if _, err := store.Find(context.Background(), "Subang"); !errors.Is(err, ErrOutletNotFound) {
		t.Fatalf("Find() error = %v, want ErrOutletNotFound", err)
	}
}

func TestDefaultsCoverKnownLocations(t *testing.T) {
	t.Parallel()

	names := make(map[string]bool)
	for _, o := range Defaults() {
		names[o.Name] = true
	}
	for _, want := range []string{"SS2", "SS15", "Damansara", "Petaling Jaya", "Kuala Lumpur"} {
		if !names[want] {
			t.Fatalf("defaults missing %s", want)
		}
	}
}
