package lifecycle

import (
	"fmt"
	"sort"

	"dishpatch/internal/model"
)

// Bucket is a coarse grouping of statuses that drives a tabbed view.
type Bucket string

const (
	// Restaurant view buckets.
	BucketNew       Bucket = "new"
	BucketConfirmed Bucket = "confirmed"
	BucketPreparing Bucket = "preparing"
	BucketReady     Bucket = "ready"
	BucketCompleted Bucket = "completed"

	// Customer view buckets.
	BucketActive  Bucket = "active"
	BucketHistory Bucket = "history"
)

// ViewPolicy names a role-specific status-to-bucket mapping. The two
// apps historically used different granularities; they are kept as
// separate policies on purpose rather than unified.
type ViewPolicy string

const (
	ViewRestaurant ViewPolicy = "restaurant"
	ViewCustomer   ViewPolicy = "customer"
)

// Once picked up, an order has left the kitchen: everything from
// picked_up onward lands in the restaurant's completed tab.
var restaurantBuckets = map[model.OrderStatus]Bucket{
	model.StatusPending:        BucketNew,
	model.StatusConfirmed:      BucketConfirmed,
	model.StatusPreparing:      BucketPreparing,
	model.StatusReadyForPickup: BucketReady,
	model.StatusPickedUp:       BucketCompleted,
	model.StatusOnTheWay:       BucketCompleted,
	model.StatusArrived:        BucketCompleted,
	model.StatusDelivered:      BucketCompleted,
	model.StatusCancelled:      BucketCompleted,
	model.StatusRefunded:       BucketCompleted,
}

var customerBuckets = map[model.OrderStatus]Bucket{
	model.StatusPending:        BucketActive,
	model.StatusConfirmed:      BucketActive,
	model.StatusPreparing:      BucketActive,
	model.StatusReadyForPickup: BucketActive,
	model.StatusPickedUp:       BucketActive,
	model.StatusOnTheWay:       BucketActive,
	model.StatusArrived:        BucketActive,
	model.StatusDelivered:      BucketHistory,
	model.StatusCancelled:      BucketHistory,
	model.StatusRefunded:       BucketHistory,
}

var policyBuckets = map[ViewPolicy]map[model.OrderStatus]Bucket{
	ViewRestaurant: restaurantBuckets,
	ViewCustomer:   customerBuckets,
}

// Buckets returns the buckets a policy exposes, in tab order.
func Buckets(policy ViewPolicy) []Bucket {
	switch policy {
	case ViewRestaurant:
		return []Bucket{BucketNew, BucketConfirmed, BucketPreparing, BucketReady, BucketCompleted}
	case ViewCustomer:
		return []Bucket{BucketActive, BucketHistory}
	default:
		return nil
	}
}

// ValidPolicy reports whether the policy name is known.
func ValidPolicy(policy ViewPolicy) bool {
	_, ok := policyBuckets[policy]
	return ok
}

// Classify maps a status to its bucket under the given policy. Total
// over all defined statuses once CheckBuckets has passed at startup.
func Classify(status model.OrderStatus, policy ViewPolicy) Bucket {
	return policyBuckets[policy][status]
}

// ListByBucket returns the orders whose classification matches bucket,
// most recent first. Stable under created_at ties: input relative
// order is preserved. The input slice is not modified.
func ListByBucket(orders []model.Order, bucket Bucket, policy ViewPolicy) []model.Order {
	matched := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if Classify(o.Status, policy) == bucket {
			matched = append(matched, o)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched
}

// CheckBuckets verifies that every defined status maps to exactly one
// bucket under every policy. Run at startup next to CheckTransitions.
func CheckBuckets() error {
	for policy, mapping := range policyBuckets {
		exposed := make(map[Bucket]bool)
		for _, b := range Buckets(policy) {
			exposed[b] = true
		}
		for _, s := range model.AllStatuses() {
			b, ok := mapping[s]
			if !ok {
				return fmt.Errorf("status %q unmapped under %q view policy", s, policy)
			}
			if !exposed[b] {
				return fmt.Errorf("status %q maps to bucket %q not exposed by %q view policy", s, b, policy)
			}
		}
	}
	return nil
}
