package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gongcha/admin-api/internal/core/domain"
	"github.com/gongcha/admin-api/internal/core/ports"
)

func newStoreFixture(t *testing.T) (*StoreService, *stubStoreRepo) {
	t.Helper()
	repo := newStubStoreRepo()
	return NewStoreService(repo, zerolog.Nop()), repo
}

func TestCreateStore_Success(t *testing.T) {
	svc, repo := newStoreFixture(t)

	lat, lng := -6.2, 106.8
	store, err := svc.CreateStore(context.Background(), ports.CreateStoreInput{
		ID:   "outlet-01",
		Name: "Gong Cha Grand Indonesia",
		Lat:  &lat,
		Lng:  &lng,
	})
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	if !store.IsActive {
		t.Errorf("new store should be active")
	}
	if store.Coordinates == nil || store.Coordinates.Lat != lat {
		t.Errorf("coordinates not set: %+v", store.Coordinates)
	}
	if _, ok := repo.stores["outlet-01"]; !ok {
		t.Errorf("store not persisted")
	}
}

func TestCreateStore_InvalidID(t *testing.T) {
	svc, repo := newStoreFixture(t)

	for _, id := range []string{"Invalid ID!", "UPPER", "with space", "", "emoji☕"} {
		_, err := svc.CreateStore(context.Background(), ports.CreateStoreInput{ID: id, Name: "X"})
		if !errors.Is(err, domain.ErrInvalidStoreID) {
			t.Errorf("CreateStore(%q) = %v, want ErrInvalidStoreID", id, err)
		}
	}
	if len(repo.stores) != 0 {
		t.Errorf("stores persisted despite invalid ids")
	}
}

func TestCreateStore_ValidIDs(t *testing.T) {
	svc, _ := newStoreFixture(t)

	for _, id := range []string{"outlet-01", "jakarta_pim", "x", "123"} {
		if _, err := svc.CreateStore(context.Background(), ports.CreateStoreInput{ID: id, Name: "X"}); err != nil {
			t.Errorf("CreateStore(%q) = %v, want success", id, err)
		}
	}
}

func TestCreateStore_NameRequired(t *testing.T) {
	svc, _ := newStoreFixture(t)

	_, err := svc.CreateStore(context.Background(), ports.CreateStoreInput{ID: "outlet-01"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestCreateStore_DuplicateLeavesOriginalUntouched(t *testing.T) {
	svc, repo := newStoreFixture(t)

	if _, err := svc.CreateStore(context.Background(), ports.CreateStoreInput{ID: "outlet-01", Name: "Original"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.CreateStore(context.Background(), ports.CreateStoreInput{ID: "outlet-01", Name: "Impostor"})
	if !errors.Is(err, domain.ErrStoreExists) {
		t.Fatalf("err = %v, want ErrStoreExists", err)
	}
	if repo.stores["outlet-01"].Name != "Original" {
		t.Errorf("duplicate create overwrote the original: %q", repo.stores["outlet-01"].Name)
	}
}

func TestUpdateStore_IDNotPatchable(t *testing.T) {
	svc, repo := newStoreFixture(t)
	if _, err := svc.CreateStore(context.Background(), ports.CreateStoreInput{ID: "outlet-01", Name: "Original"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	name := "Renamed"
	hours := "09:00-22:00"
	err := svc.UpdateStore(context.Background(), ports.UpdateStoreInput{
		ID:        "outlet-01",
		Name:      &name,
		OpenHours: &hours,
	})
	if err != nil {
		t.Fatalf("update store: %v", err)
	}

	patch := repo.patches["outlet-01"]
	if len(patch) != 2 {
		t.Fatalf("patch = %v, want exactly name and open_hours", patch)
	}
	for _, k := range []string{"_id", "id"} {
		if _, ok := patch[k]; ok {
			t.Errorf("%s leaked into patch", k)
		}
	}
}

func TestUpdateStore_NotFound(t *testing.T) {
	svc, _ := newStoreFixture(t)

	name := "X"
	err := svc.UpdateStore(context.Background(), ports.UpdateStoreInput{ID: "ghost", Name: &name})
	if !errors.Is(err, domain.ErrStoreNotFound) {
		t.Fatalf("err = %v, want ErrStoreNotFound", err)
	}
}

func TestUpdateStore_CoordinatesRequireBothAxes(t *testing.T) {
	svc, repo := newStoreFixture(t)
	if _, err := svc.CreateStore(context.Background(), ports.CreateStoreInput{ID: "outlet-01", Name: "X"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	lat := -6.2
	if err := svc.UpdateStore(context.Background(), ports.UpdateStoreInput{ID: "outlet-01", Lat: &lat}); err != nil {
		t.Fatalf("update store: %v", err)
	}
	if _, ok := repo.patches["outlet-01"]; ok {
		t.Errorf("lat-only patch should not reach the repository")
	}
}
