package store

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"

	"shopadmin/internal/models"
)

// seedOrder inserts a customer, product, order, and one line item directly.
// Orders are created by the storefront, not this backend, so the store has
// no insert path of its own.
func seedOrder(t *testing.T, db *sql.DB) (orderID, customerID uuid.UUID) {
	t.Helper()

	var custID uuid.UUID
	email := "buyer-" + uuid.NewString()[:8] + "@example.com"
	if err := db.QueryRow(`
		INSERT INTO customers (email, name) VALUES ($1, 'Buyer') RETURNING id
	`, email).Scan(&custID); err != nil {
		t.Fatalf("seed customer: %v", err)
	}

	var prodID uuid.UUID
	sku := "ORD-" + uuid.NewString()[:8]
	if err := db.QueryRow(`
		INSERT INTO products (sku, name, slug, price_cents, currency)
		VALUES ($1, 'Order Test Product', $2, 500, 'EUR') RETURNING id
	`, sku, "order-test-"+uuid.NewString()[:8]).Scan(&prodID); err != nil {
		t.Fatalf("seed product: %v", err)
	}

	var ordID uuid.UUID
	if err := db.QueryRow(`
		INSERT INTO orders (number, customer_id, status, total_cents, currency)
		VALUES ($1, $2, 'pending', 1000, 'EUR') RETURNING id
	`, "T-"+uuid.NewString()[:8], custID).Scan(&ordID); err != nil {
		t.Fatalf("seed order: %v", err)
	}

	if _, err := db.Exec(`
		INSERT INTO order_items (order_id, product_id, product_name, quantity, unit_price_cents)
		VALUES ($1, $2, 'Order Test Product', 2, 500)
	`, ordID, prodID); err != nil {
		t.Fatalf("seed order item: %v", err)
	}

	t.Cleanup(func() {
		db.Exec("DELETE FROM orders WHERE id = $1", ordID)
		db.Exec("DELETE FROM products WHERE id = $1", prodID)
		db.Exec("DELETE FROM customers WHERE id = $1", custID)
	})
	return ordID, custID
}

func TestOrderFindWithItems(t *testing.T) {
	db := testDB(t)
	s := NewOrderStore(db)

	orderID, _ := seedOrder(t, db)

	order, err := s.FindByID(orderID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if len(order.Items) != 1 {
		t.Fatalf("items: got %d, want 1", len(order.Items))
	}
	if order.Items[0].Quantity != 2 || order.Items[0].UnitPriceCents != 500 {
		t.Errorf("item: got qty %d price %d", order.Items[0].Quantity, order.Items[0].UnitPriceCents)
	}
}

func TestOrderListByCustomer(t *testing.T) {
	db := testDB(t)
	s := NewOrderStore(db)

	orderID, customerID := seedOrder(t, db)

	orders, total, err := s.List(OrderFilter{CustomerID: &customerID}, 10, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || len(orders) != 1 || orders[0].ID != orderID {
		t.Fatalf("got total %d len %d, want the seeded order", total, len(orders))
	}
}

func TestOrderUpdateStatus(t *testing.T) {
	db := testDB(t)
	s := NewOrderStore(db)

	orderID, _ := seedOrder(t, db)

	updated, err := s.UpdateStatus(orderID, models.OrderStatusPaid)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != models.OrderStatusPaid {
		t.Errorf("status: got %q, want paid", updated.Status)
	}

	if _, err := s.UpdateStatus(uuid.New(), models.OrderStatusPaid); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown order, got %v", err)
	}
}
