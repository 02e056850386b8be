package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/dukandar/khata/internal/models"
	"github.com/dukandar/khata/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func mustCreateUser(t *testing.T, store *SQLiteStore, username string) *models.User {
	t.Helper()

	user := &models.User{
		Name:         "Test User",
		Username:     username,
		PasswordHash: "not-a-real-hash",
		ShopName:     "Test Shop",
	}
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser(%s) failed: %v", username, err)
	}
	return user
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateUser assigns ID and defaults", func(t *testing.T) {
		user := mustCreateUser(t, store, "demo")
		if user.ID == 0 {
			t.Error("Expected user ID to be assigned")
		}
		if user.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
		if user.Language != "en" {
			t.Errorf("Expected default language en, got %q", user.Language)
		}
	})

	t.Run("GetUserByUsername roundtrip", func(t *testing.T) {
		got, err := store.GetUserByUsername(ctx, "demo")
		if err != nil {
			t.Fatalf("GetUserByUsername failed: %v", err)
		}
		if got == nil {
			t.Fatal("Expected user, got nil")
		}
		if got.Username != "demo" || got.ShopName != "Test Shop" {
			t.Errorf("Unexpected user: %+v", got)
		}
	})

	t.Run("GetUserByUsername returns nil for missing user", func(t *testing.T) {
		got, err := store.GetUserByUsername(ctx, "ghost")
		if err != nil {
			t.Fatalf("GetUserByUsername failed: %v", err)
		}
		if got != nil {
			t.Errorf("Expected nil, got %+v", got)
		}
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		dup := &models.User{Name: "Other", Username: "demo", PasswordHash: "x"}
		if err := store.CreateUser(ctx, dup); err == nil {
			t.Error("Expected unique constraint error, got nil")
		}
	})

	t.Run("UpdateUserProfile changes display fields only", func(t *testing.T) {
		user, err := store.GetUserByUsername(ctx, "demo")
		if err != nil || user == nil {
			t.Fatalf("GetUserByUsername failed: %v", err)
		}

		user.Name = "Renamed"
		user.ShopName = "New Shop"
		user.ShopAddress = "Main Street"
		user.Language = "hi"
		if err := store.UpdateUserProfile(ctx, user); err != nil {
			t.Fatalf("UpdateUserProfile failed: %v", err)
		}

		got, err := store.GetUserByID(ctx, user.ID)
		if err != nil || got == nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if got.Name != "Renamed" || got.ShopName != "New Shop" || got.Language != "hi" {
			t.Errorf("Profile not updated: %+v", got)
		}
		if got.Username != "demo" {
			t.Errorf("Username must not change, got %q", got.Username)
		}
	})
}

func TestItems(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := mustCreateUser(t, store, "alice")
	bob := mustCreateUser(t, store, "bob")

	sugar := &models.Item{UserID: alice.ID, Name: "Sugar", Unit: "kg", Price: 45.0}
	if err := store.CreateItem(ctx, sugar); err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}
	if sugar.ID == 0 {
		t.Error("Expected item ID to be assigned")
	}

	t.Run("ListItems is owner scoped", func(t *testing.T) {
		items, err := store.ListItems(ctx, alice.ID)
		if err != nil {
			t.Fatalf("ListItems failed: %v", err)
		}
		if len(items) != 1 || items[0].Name != "Sugar" {
			t.Errorf("Unexpected items for alice: %+v", items)
		}

		items, err = store.ListItems(ctx, bob.ID)
		if err != nil {
			t.Fatalf("ListItems failed: %v", err)
		}
		if len(items) != 0 {
			t.Errorf("Expected no items for bob, got %d", len(items))
		}
	})

	t.Run("delete of foreign item is a no-op", func(t *testing.T) {
		if err := store.DeleteItem(ctx, bob.ID, sugar.ID); err != nil {
			t.Fatalf("DeleteItem failed: %v", err)
		}
		items, _ := store.ListItems(ctx, alice.ID)
		if len(items) != 1 {
			t.Errorf("Foreign delete removed alice's item")
		}
	})

	t.Run("delete of absent item is a no-op", func(t *testing.T) {
		if err := store.DeleteItem(ctx, alice.ID, 99999); err != nil {
			t.Errorf("Expected no error for absent item, got %v", err)
		}
	})

	t.Run("delete of owned item removes it", func(t *testing.T) {
		if err := store.DeleteItem(ctx, alice.ID, sugar.ID); err != nil {
			t.Fatalf("DeleteItem failed: %v", err)
		}
		items, _ := store.ListItems(ctx, alice.ID)
		if len(items) != 0 {
			t.Errorf("Expected empty catalog, got %d items", len(items))
		}
	})
}

func TestBills(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := mustCreateUser(t, store, "alice")
	bob := mustCreateUser(t, store, "bob")

	bill := &models.Bill{
		UserID:        alice.ID,
		Total:         90.0,
		PaymentMethod: "Cash",
		Items: []models.BillItem{
			{ItemName: "Sugar", Unit: "kg", PricePerUnit: 45.0, Quantity: 2, Subtotal: 90.0},
		},
	}
	if err := store.CreateBill(ctx, bill); err != nil {
		t.Fatalf("CreateBill failed: %v", err)
	}
	if bill.ID == 0 {
		t.Error("Expected bill ID to be assigned")
	}
	if bill.CreatedAt == 0 {
		t.Error("Expected CreatedAt to be set")
	}

	t.Run("GetBill retrieves complete bill", func(t *testing.T) {
		got, err := store.GetBill(ctx, alice.ID, bill.ID)
		if err != nil {
			t.Fatalf("GetBill failed: %v", err)
		}
		if got.Total != 90.0 || got.PaymentMethod != "Cash" {
			t.Errorf("Unexpected bill: %+v", got)
		}
		if len(got.Items) != 1 {
			t.Fatalf("Expected 1 line item, got %d", len(got.Items))
		}
		item := got.Items[0]
		if item.ItemName != "Sugar" || item.Unit != "kg" || item.PricePerUnit != 45.0 ||
			item.Quantity != 2 || item.Subtotal != 90.0 {
			t.Errorf("Unexpected line item: %+v", item)
		}
	})

	t.Run("GetBill hides foreign bills", func(t *testing.T) {
		_, err := store.GetBill(ctx, bob.ID, bill.ID)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound for foreign bill, got %v", err)
		}
	})

	t.Run("GetBill returns ErrNotFound for absent bill", func(t *testing.T) {
		_, err := store.GetBill(ctx, alice.ID, 99999)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("empty cart persists a bill with no line items", func(t *testing.T) {
		empty := &models.Bill{UserID: alice.ID, Total: 0, PaymentMethod: "Cash"}
		if err := store.CreateBill(ctx, empty); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}
		got, err := store.GetBill(ctx, alice.ID, empty.ID)
		if err != nil {
			t.Fatalf("GetBill failed: %v", err)
		}
		if len(got.Items) != 0 {
			t.Errorf("Expected 0 line items, got %d", len(got.Items))
		}
	})

	t.Run("ListBills is owner scoped and newest first", func(t *testing.T) {
		older := &models.Bill{UserID: alice.ID, Total: 10, PaymentMethod: "Cash", CreatedAt: 1000}
		newer := &models.Bill{UserID: alice.ID, Total: 20, PaymentMethod: "UPI", CreatedAt: 2000}
		for _, b := range []*models.Bill{older, newer} {
			if err := store.CreateBill(ctx, b); err != nil {
				t.Fatalf("CreateBill failed: %v", err)
			}
		}

		bills, err := store.ListBills(ctx, alice.ID)
		if err != nil {
			t.Fatalf("ListBills failed: %v", err)
		}
		for i := 1; i < len(bills); i++ {
			if bills[i-1].CreatedAt < bills[i].CreatedAt {
				t.Errorf("Bills not in descending order at index %d", i)
			}
		}

		bobBills, err := store.ListBills(ctx, bob.ID)
		if err != nil {
			t.Fatalf("ListBills failed: %v", err)
		}
		if len(bobBills) != 0 {
			t.Errorf("Expected no bills for bob, got %d", len(bobBills))
		}
	})
}

func TestBillSnapshotSurvivesItemDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := mustCreateUser(t, store, "alice")

	sugar := &models.Item{UserID: alice.ID, Name: "Sugar", Unit: "kg", Price: 45.0}
	if err := store.CreateItem(ctx, sugar); err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}

	bill := &models.Bill{
		UserID:        alice.ID,
		Total:         90.0,
		PaymentMethod: "Cash",
		Items: []models.BillItem{
			{ItemName: sugar.Name, Unit: sugar.Unit, PricePerUnit: sugar.Price, Quantity: 2, Subtotal: 90.0},
		},
	}
	if err := store.CreateBill(ctx, bill); err != nil {
		t.Fatalf("CreateBill failed: %v", err)
	}

	if err := store.DeleteItem(ctx, alice.ID, sugar.ID); err != nil {
		t.Fatalf("DeleteItem failed: %v", err)
	}

	got, err := store.GetBill(ctx, alice.ID, bill.ID)
	if err != nil {
		t.Fatalf("GetBill failed: %v", err)
	}
	if len(got.Items) != 1 {
		t.Fatalf("Expected snapshot to survive, got %d items", len(got.Items))
	}
	if got.Items[0].ItemName != "Sugar" || got.Items[0].PricePerUnit != 45.0 {
		t.Errorf("Snapshot changed after item delete: %+v", got.Items[0])
	}
}

func TestCreateBillAtomicity(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := mustCreateUser(t, store, "alice")

	// Break the line-item table so the second insert of the transaction fails
	if _, err := store.db.Exec("DROP TABLE bill_items"); err != nil {
		t.Fatalf("Failed to drop bill_items: %v", err)
	}

	bill := &models.Bill{
		UserID:        alice.ID,
		Total:         90.0,
		PaymentMethod: "Cash",
		Items: []models.BillItem{
			{ItemName: "Sugar", Unit: "kg", PricePerUnit: 45.0, Quantity: 2, Subtotal: 90.0},
		},
	}
	if err := store.CreateBill(ctx, bill); err == nil {
		t.Fatal("Expected CreateBill to fail with broken bill_items table")
	}

	// The bill header insert must have rolled back with the failed line item
	var count int
	if err := store.db.QueryRow("SELECT COUNT(*) FROM bills WHERE user_id = ?", alice.ID).Scan(&count); err != nil {
		t.Fatalf("Failed to count bills: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 bills after failed transaction, got %d", count)
	}
}
