// Package ordercache caches the claimable-order listing in Redis.
//
// The cache holds exactly one key, the serialized list of pending orders,
// refreshed by a background job and invalidated by every successful command.
// It only ever serves the driver polling endpoint; claim arbitration always
// goes to the database, so a stale entry is harmless.
package ordercache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"pedidos/internal/core/domain/model/kernel"
	"pedidos/internal/core/domain/model/order"

	"github.com/go-redis/redis/v8"
)

// availableOrdersKey holds the single cached listing.
const availableOrdersKey = "orders:available"

// defaultTTL bounds staleness even if invalidation is missed. The refresh
// job rewrites the key well before this expires.
const defaultTTL = 30 * time.Second

// RedisOrderCache implements ports.OrderCache over a Redis client.
type RedisOrderCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisOrderCache creates a cache over the given client. A non-positive
// ttl falls back to the default.
func NewRedisOrderCache(client *redis.Client, ttl time.Duration) *RedisOrderCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisOrderCache{client: client, ttl: ttl}
}

// orderEntry is the JSON form of one cached order.
type orderEntry struct {
	ID            string    `json:"id"`
	CustomerID    string    `json:"customerId"`
	CustomerEmail string    `json:"customerEmail"`
	Description   string    `json:"description"`
	Destination   string    `json:"destination"`
	DriverID      *string   `json:"driverId,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	Version       int64     `json:"version"`
}

// SetAvailableOrders replaces the cached listing.
func (c *RedisOrderCache) SetAvailableOrders(ctx context.Context, orders []*order.Order) error {
	entries := make([]orderEntry, 0, len(orders))
	for _, o := range orders {
		entries = append(entries, toEntry(o))
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, availableOrdersKey, data, c.ttl).Err()
}

// GetAvailableOrders returns the cached listing. The second return value
// reports whether the cache held an entry at all; a missing key is a miss,
// not an error.
func (c *RedisOrderCache) GetAvailableOrders(ctx context.Context) ([]*order.Order, bool, error) {
	data, err := c.client.Get(ctx, availableOrdersKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var entries []orderEntry
	if err = json.Unmarshal(data, &entries); err != nil {
		return nil, false, err
	}

	orders := make([]*order.Order, 0, len(entries))
	for _, entry := range entries {
		o, entryErr := fromEntry(entry)
		if entryErr != nil {
			return nil, false, entryErr
		}
		orders = append(orders, o)
	}

	return orders, true, nil
}

// InvalidateAvailableOrders drops the cached listing so the next read goes
// to the database.
func (c *RedisOrderCache) InvalidateAvailableOrders(ctx context.Context) error {
	return c.client.Del(ctx, availableOrdersKey).Err()
}

func toEntry(o *order.Order) orderEntry {
	entry := orderEntry{
		ID:            o.ID().String(),
		CustomerID:    o.CustomerID().String(),
		CustomerEmail: o.CustomerEmail(),
		Description:   o.Description(),
		Destination:   o.Destination(),
		Status:        o.Status().String(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
		Version:       o.Version(),
	}
	if d := o.Driver(); d != nil {
		raw := d.String()
		entry.DriverID = &raw
	}
	return entry
}

func fromEntry(entry orderEntry) (*order.Order, error) {
	id, err := kernel.UUIDFromString(entry.ID)
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromString(entry.CustomerID)
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if entry.DriverID != nil {
		dID, driverErr := kernel.UUIDFromString(*entry.DriverID)
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	status, err := order.ParseStatus(entry.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, customerID,
		entry.CustomerEmail, entry.Description, entry.Destination,
		driverID, status,
		entry.CreatedAt, entry.UpdatedAt, entry.Version,
	)
}
