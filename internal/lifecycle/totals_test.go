package lifecycle

import (
	"testing"
	"time"

	"dishpatch/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineTotal(t *testing.T) {
	item := model.OrderItem{UnitPrice: 12.99, Quantity: 2}
	assert.InDelta(t, 25.98, LineTotal(item), 0.0001)
}

func TestItemsSubtotalMatchesTotalAmountAtCreation(t *testing.T) {
	order := model.Order{
		Items: []model.OrderItem{
			{UnitPrice: 12.99, Quantity: 2},
			{UnitPrice: 4.99, Quantity: 1},
		},
		TotalAmount: 30.97,
		DeliveryFee: 5.00,
	}

	assert.InDelta(t, 30.97, ItemsSubtotal(order), 0.0001)
	assert.InDelta(t, order.TotalAmount, ItemsSubtotal(order), 0.0001)
	assert.InDelta(t, 35.97, OrderTotal(order), 0.0001)
}

func TestBucketCounts_RestaurantExample(t *testing.T) {
	// 10 orders: pending x2, confirmed x1, preparing x3,
	// ready_for_pickup x1, delivered x2, cancelled x1.
	statuses := []model.OrderStatus{
		model.StatusPending, model.StatusPending,
		model.StatusConfirmed,
		model.StatusPreparing, model.StatusPreparing, model.StatusPreparing,
		model.StatusReadyForPickup,
		model.StatusDelivered, model.StatusDelivered,
		model.StatusCancelled,
	}

	orders := make([]model.Order, len(statuses))
	for i, s := range statuses {
		orders[i] = orderWith(s, time.Date(2024, 1, 15, 12, i, 0, 0, time.UTC))
	}

	counts := BucketCounts(orders, ViewRestaurant)

	assert.Equal(t, 2, counts[BucketNew])
	assert.Equal(t, 1, counts[BucketConfirmed])
	assert.Equal(t, 3, counts[BucketPreparing])
	assert.Equal(t, 1, counts[BucketReady])
	assert.Equal(t, 3, counts[BucketCompleted])

	total := 0
	for _, c := range counts {
		total += c
	}
	assert.Equal(t, len(orders), total)
}

func TestBucketCounts_IncludesZeroBuckets(t *testing.T) {
	counts := BucketCounts(nil, ViewRestaurant)

	require.Len(t, counts, len(Buckets(ViewRestaurant)))
	for _, b := range Buckets(ViewRestaurant) {
		assert.Equal(t, 0, counts[b])
	}
}

func TestBucketCounts_AgreesWithListByBucket(t *testing.T) {
	base := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	orders := make([]model.Order, 0, len(model.AllStatuses()))
	for i, s := range model.AllStatuses() {
		orders = append(orders, orderWith(s, base.Add(time.Duration(i)*time.Minute)))
	}

	for _, policy := range []ViewPolicy{ViewRestaurant, ViewCustomer} {
		counts := BucketCounts(orders, policy)
		for _, b := range Buckets(policy) {
			assert.Equal(t, len(ListByBucket(orders, b, policy)), counts[b],
				"bucket %s under %s", b, policy)
		}
	}
}
