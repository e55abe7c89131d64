// internal/adapters/out/firestore/order_mapper_fs.go
package firestore

import (
	"fmt"
	"time"

	orderdom "nursery/internal/domain/order"
)

// dataToOrder converts raw document data to orderdom.Order.
//
// Deliberately tolerant: partial documents (old app versions wrote a
// few different shapes) decode to an Order with the fields that are
// there; missing items render as an empty list, an unknown status
// reads as Pending. Only a completely empty document is an error.
func dataToOrder(docID string, data map[string]any, createTime time.Time) (orderdom.Order, error) {
	if len(data) == 0 {
		return orderdom.Order{}, fmt.Errorf("empty order document: %s", docID)
	}

	o := orderdom.Order{
		OrderID: mapGetStr(data, "orderId"),
		UserID:  mapGetStr(data, "userId"),
		Name:    mapGetStr(data, "name"),
		Email:   mapGetStr(data, "email"),
		Total:   mapGetInt(data, "total"),
	}
	if o.OrderID == "" {
		o.OrderID = docID
	}

	if c, ok := decodeCoordinate(data["location"]); ok {
		o.Location = c
	}

	// deliveryLocation carries its own timestamp alongside the coords.
	if m := asMapAny(data["deliveryLocation"]); m != nil {
		if c, ok := decodeCoordinate(m); ok {
			o.DeliveryLocation = c
		}
		o.DeliveryLocationAt = mapGetTime(m, "timestamp")
	}

	switch orderdom.DeliveryStatus(mapGetStr(data, "deliveryStatus")) {
	case orderdom.StatusDelivered:
		o.DeliveryStatus = orderdom.StatusDelivered
	default:
		o.DeliveryStatus = orderdom.StatusPending
	}

	o.Items = decodeItems(data["items"])

	o.Timestamp = mapGetTime(data, "timestamp")
	if o.Timestamp.IsZero() && !createTime.IsZero() {
		o.Timestamp = createTime.UTC()
	}

	return o, nil
}

func decodeItems(v any) []orderdom.Item {
	// Firestore hands back []any; our own creation payload carries
	// []map[string]any. Accept both.
	var arr []any
	switch t := v.(type) {
	case []any:
		arr = t
	case []map[string]any:
		arr = make([]any, len(t))
		for i, m := range t {
			arr[i] = m
		}
	default:
		return nil
	}

	items := make([]orderdom.Item, 0, len(arr))
	for _, el := range arr {
		m := asMapAny(el)
		if m == nil {
			continue
		}
		it := orderdom.Item{
			ProductID: mapGetStr(m, "productId"),
			Name:      mapGetStr(m, "name"),
			UnitPrice: mapGetInt(m, "unitPrice"),
			Quantity:  mapGetInt(m, "quantity"),
		}
		// 旧スキーマ救済: id / price
		if it.ProductID == "" {
			it.ProductID = mapGetStr(m, "id")
		}
		if it.UnitPrice == 0 {
			it.UnitPrice = mapGetInt(m, "price")
		}
		if it.ProductID == "" && it.Name == "" {
			continue
		}
		items = append(items, it)
	}
	return items
}

// orderToData builds the document written at creation.
func orderToData(o orderdom.Order) map[string]any {
	items := make([]map[string]any, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, map[string]any{
			"productId": it.ProductID,
			"name":      it.Name,
			"unitPrice": it.UnitPrice,
			"quantity":  it.Quantity,
		})
	}

	deliveryLoc := coordinateToMap(o.DeliveryLocation)
	deliveryLoc["timestamp"] = o.DeliveryLocationAt

	return map[string]any{
		"orderId":          o.OrderID,
		"userId":           o.UserID,
		"name":             o.Name,
		"email":            o.Email,
		"items":            items,
		"total":            o.Total,
		"location":         coordinateToMap(o.Location),
		"deliveryStatus":   string(o.DeliveryStatus),
		"deliveryLocation": deliveryLoc,
		"timestamp":        o.Timestamp,
	}
}
