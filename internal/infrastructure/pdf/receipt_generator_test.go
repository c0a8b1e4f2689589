package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restaurante-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0.00":       "0,00",
		"999.99":     "999,99",
		"25000.50":   "25.000,50",
		"1000000.00": "1.000.000,00",
		"-1000.00":   "-1.000,00",
		"1234":       "1.234",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(in), in)
	}
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "22,00 USD", money(decimal.RequireFromString("22"), "USD"))
	assert.Equal(t, "$1.500,25", money(decimal.RequireFromString("1500.25"), ""))
}

func TestGenerateOrderReceipt(t *testing.T) {
	arepa := &entity.MenuItem{ID: "m1", Name: "Arepa", Currency: "USD", Price: decimal.RequireFromString("10.00")}
	order := &entity.OrderDetail{
		Order: entity.Order{
			ID:        "5f0c2a8e-1111-2222-3333-444455556666",
			UserID:    "u1",
			Status:    entity.OrderStatusPending,
			Address:   "Calle 10 # 4-20",
			Phone:     "3001234567",
			Total:     decimal.RequireFromString("22.00"),
			CreatedAt: time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC),
		},
		Customer: entity.OrderCustomer{Name: "Ana", Email: "ana@example.com"},
		Items: []entity.OrderLine{{
			OrderItem: entity.OrderItem{ID: "i1", MenuItemID: "m1", Quantity: 2, Subtotal: decimal.RequireFromString("20.00")},
			MenuItem:  arepa,
		}},
		Payment: &entity.Payment{Method: entity.PaymentMethodCash, Status: entity.PaymentStatusPending, Amount: decimal.RequireFromString("22.00")},
	}

	out, err := NewMarotoReceiptGenerator("La Fonda").GenerateOrderReceipt(context.Background(), order)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
