package cache

import (
	"context"
	"testing"
	"time"

	"github.com/sellerdesk/stockwise/backend-go/internal/domain"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	key := Key{Dataset: domain.DatasetRemains, StoreID: "store-1"}

	// Absent before any save
	if _, ok, err := store.Get(ctx, key); err != nil || ok {
		t.Fatalf("Get before save = (ok=%v, err=%v), want absent without error", ok, err)
	}
	if _, ok, err := store.Age(ctx, key); err != nil || ok {
		t.Fatalf("Age before save = (ok=%v, err=%v), want absent without error", ok, err)
	}

	payload := []byte(`[{"item_id":1}]`)
	if err := store.Save(ctx, key, payload); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, ok, err := store.Get(ctx, key)
	if err != nil || !ok {
		t.Fatalf("Get after save = (ok=%v, err=%v)", ok, err)
	}
	if string(got) != string(payload) {
		t.Errorf("Get = %s, want %s", got, payload)
	}

	age, ok, err := store.Age(ctx, key)
	if err != nil || !ok {
		t.Fatalf("Age after save = (ok=%v, err=%v)", ok, err)
	}
	if age < 0 {
		t.Errorf("Age = %v, want non-negative", age)
	}
}

func TestMemoryStore_AgeTracksClock(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	key := Key{Dataset: domain.DatasetSalesVelocity, StoreID: "store-1"}

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time { return now })

	if err := store.Save(ctx, key, []byte(`{}`)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	now = now.Add(3 * time.Hour)
	age, ok, _ := store.Age(ctx, key)
	if !ok || age != 3*time.Hour {
		t.Errorf("Age = (%v, %v), want 3h", age, ok)
	}
}

func TestMemoryStore_Overwrite(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	key := Key{Dataset: domain.DatasetStorageLedger, StoreID: "store-1"}

	store.Save(ctx, key, []byte("old"))
	store.Save(ctx, key, []byte("new"))

	got, _, _ := store.Get(ctx, key)
	if string(got) != "new" {
		t.Errorf("Get after overwrite = %s, want new", got)
	}
}

func TestMemoryStore_Clear(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	key := Key{Dataset: domain.DatasetRemains, StoreID: "store-1"}

	store.Save(ctx, key, []byte("x"))
	if err := store.Clear(ctx, key); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok, _ := store.Get(ctx, key); ok {
		t.Error("Get after Clear = present, want absent")
	}
}

func TestMemoryStore_TenantIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	keyA := Key{Dataset: domain.DatasetRemains, StoreID: "store-a"}
	keyB := Key{Dataset: domain.DatasetRemains, StoreID: "store-b"}

	store.Save(ctx, keyA, []byte("payload-a"))

	if _, ok, _ := store.Get(ctx, keyB); ok {
		t.Fatal("store-b sees store-a's payload")
	}

	store.Save(ctx, keyB, []byte("payload-b"))
	gotA, _, _ := store.Get(ctx, keyA)
	gotB, _, _ := store.Get(ctx, keyB)
	if string(gotA) != "payload-a" || string(gotB) != "payload-b" {
		t.Errorf("cross-tenant leak: a=%s b=%s", gotA, gotB)
	}
}

func TestMemoryStore_DatasetIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	remains := Key{Dataset: domain.DatasetRemains, StoreID: "s"}
	ledger := Key{Dataset: domain.DatasetStorageLedger, StoreID: "s"}

	store.Save(ctx, remains, []byte("remains"))
	if _, ok, _ := store.Get(ctx, ledger); ok {
		t.Error("datasets share a record for the same store")
	}
}
