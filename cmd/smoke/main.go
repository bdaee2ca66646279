// Command smoke runs the order workflow end to end against the configured
// Postgres database and exits non-zero on the first broken expectation.
package main

import (
	"admin-service/internal/database"
	"admin-service/internal/models"
	"admin-service/internal/repository"
	"admin-service/internal/service"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

func main() {
	cfg, err := database.LoadConfig()
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}

	ctx := context.Background()
	pool, err := database.ConnectDB(ctx, cfg)
	if err != nil {
		log.Fatal("failed to connect database: ", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatal("migrations failed: ", err)
	}

	var now time.Time
	if err := pool.QueryRow(ctx, "SELECT NOW()").Scan(&now); err != nil {
		log.Fatal("query failed: ", err)
	}
	fmt.Println("Current database time:", now)

	testOrderWorkflow(ctx, pool)
}

func testOrderWorkflow(ctx context.Context, pool *pgxpool.Pool) {
	fmt.Println("\n=== Testing order workflow ===")

	products := service.NewProductService(repository.NewProductRepository(pool))
	orders := service.NewOrderService(repository.NewOrderRepository(pool), repository.NewProductRepository(pool))

	quantity := 5
	price := decimal.RequireFromString("10.00")
	widget, err := products.Create(ctx, service.CreateProductInput{
		Name:        "Widget " + uuid.NewString()[:8],
		Description: "smoke test product",
		Quantity:    &quantity,
		Price:       &price,
	})
	if err != nil {
		log.Fatal("❌ product create failed: ", err)
	}
	fmt.Printf("✅ Created product %s\n", widget.ID)

	// 1. pricing
	order, err := orders.Create(ctx, service.CreateOrderInput{
		UserID:   "smoke-user",
		Products: []service.LineRequest{{ProductID: widget.ID, Quantity: 2}},
	})
	if err != nil {
		log.Fatal("❌ order create failed: ", err)
	}
	if !order.Subtotal.Equal(decimal.RequireFromString("20.00")) || !order.Total.Equal(decimal.RequireFromString("23.20")) {
		log.Fatalf("❌ unexpected totals: subtotal %s, total %s", order.Subtotal, order.Total)
	}
	if order.Status != models.OrderStatusPending {
		log.Fatalf("❌ unexpected status %s", order.Status)
	}
	fmt.Printf("✅ Order %s: subtotal %s, total %s\n", order.ID, order.Subtotal.StringFixed(2), order.Total.StringFixed(2))

	// 2. missing product aborts the order
	_, err = orders.Create(ctx, service.CreateOrderInput{
		UserID:   "smoke-user",
		Products: []service.LineRequest{{ProductID: uuid.NewString(), Quantity: 1}},
	})
	if !errors.Is(err, repository.ErrNotFound) {
		log.Fatal("❌ missing product should return ErrNotFound, got: ", err)
	}
	fmt.Println("✅ Missing product rejected")

	// 3. read back with resolved product
	loaded, err := orders.Get(ctx, order.ID)
	if err != nil {
		log.Fatal("❌ order get failed: ", err)
	}
	if len(loaded.Items) != 1 || loaded.Items[0].Product == nil || loaded.Items[0].Product.ID != widget.ID {
		log.Fatal("❌ line item did not resolve its product")
	}
	fmt.Println("✅ Line items resolve their product")

	// 4. cancel twice
	for i := 0; i < 2; i++ {
		cancelled, err := orders.Cancel(ctx, order.ID)
		if err != nil || cancelled.Status != models.OrderStatusCancelled {
			log.Fatal("❌ cancel failed: ", err)
		}
	}
	fmt.Println("✅ Cancel is repeatable")

	if _, err := products.Delete(ctx, widget.ID); err != nil {
		log.Fatal("❌ product delete failed: ", err)
	}
	fmt.Println("\n🎉 All checks passed")
}
