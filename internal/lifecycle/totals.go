package lifecycle

import "dishpatch/internal/model"

// LineTotal is unit price times quantity for one line item. No
// rounding; currency display is a presentation concern.
func LineTotal(item model.OrderItem) float64 {
	return item.UnitPrice * float64(item.Quantity)
}

// ItemsSubtotal sums the line totals of an order's items. At creation
// time this equals TotalAmount; it is never used to overwrite the
// stored snapshot.
func ItemsSubtotal(order model.Order) float64 {
	var sum float64
	for _, item := range order.Items {
		sum += LineTotal(item)
	}
	return sum
}

// OrderTotal is the amount the customer pays: the item snapshot total
// plus the delivery fee.
func OrderTotal(order model.Order) float64 {
	return order.TotalAmount + order.DeliveryFee
}

// BucketCounts returns the badge counter for every bucket the policy
// exposes, including zero counts. For each bucket the count equals
// len(ListByBucket(orders, bucket, policy)).
func BucketCounts(orders []model.Order, policy ViewPolicy) map[Bucket]int {
	counts := make(map[Bucket]int)
	for _, b := range Buckets(policy) {
		counts[b] = 0
	}
	for _, o := range orders {
		counts[Classify(o.Status, policy)]++
	}
	return counts
}
