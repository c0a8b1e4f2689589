package ordering

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/restaurante-api/internal/domain/entity"
)

// ServiceTaxMultiplier impuesto de servicio fijo (10%) aplicado sobre la suma de subtotales.
var ServiceTaxMultiplier = decimal.RequireFromString("1.10")

// bucket acumulador por plato: una línea del pedido por plato distinto.
type bucket struct {
	item     *entity.MenuItem
	quantity int
	subtotal decimal.Decimal
}

// priceBuckets agrupa los ids pedidos (con repeticiones) usando el precio del servidor.
// Conserva el orden de primera aparición. Todos los ids deben estar en byID.
func priceBuckets(requested []string, byID map[string]*entity.MenuItem) []*bucket {
	index := make(map[string]*bucket, len(byID))
	out := make([]*bucket, 0, len(byID))
	for _, id := range requested {
		b, ok := index[id]
		if !ok {
			b = &bucket{item: byID[id]}
			index[id] = b
			out = append(out, b)
		}
		b.quantity++
		b.subtotal = b.subtotal.Add(b.item.Price)
	}
	return out
}

// orderTotal suma los subtotales y aplica el impuesto de servicio, redondeado a 2 decimales.
func orderTotal(buckets []*bucket) (subtotal, total decimal.Decimal) {
	for _, b := range buckets {
		subtotal = subtotal.Add(b.subtotal)
	}
	return subtotal, subtotal.Mul(ServiceTaxMultiplier).Round(2)
}

// distinct devuelve los ids sin repetir, en orden de primera aparición.
func distinct(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
