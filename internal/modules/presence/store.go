package presence

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"swiftdrop/internal/types"
)

const geoKey = "drivers:geo"

// RedisStore keeps driver positions in a Redis GEO set plus a small metadata
// hash per driver, and persists each driver's online preference so it
// survives app restarts.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) Upsert(ctx context.Context, ping DriverPing) error {
	err := r.client.GeoAdd(ctx, geoKey, &redis.GeoLocation{
		Name:      string(ping.DriverID),
		Longitude: ping.Location.Lng,
		Latitude:  ping.Location.Lat,
	}).Err()
	if err != nil {
		return err
	}
	return r.client.HSet(ctx, metaKey(ping.DriverID), map[string]interface{}{
		"updated": ping.At.UTC().Format(time.RFC3339),
	}).Err()
}

func (r *RedisStore) Remove(ctx context.Context, driverID types.ID) error {
	if err := r.client.ZRem(ctx, geoKey, string(driverID)).Err(); err != nil {
		return err
	}
	return r.client.Del(ctx, metaKey(driverID)).Err()
}

func (r *RedisStore) Nearby(ctx context.Context, at types.Point, radiusKm float64, limit int) ([]NearbyDriver, error) {
	res, err := r.client.GeoRadius(ctx, geoKey, at.Lng, at.Lat, &redis.GeoRadiusQuery{
		Radius:    radiusKm,
		Unit:      "km",
		WithCoord: true,
		WithDist:  true,
		Count:     limit,
		Sort:      "ASC",
	}).Result()
	if err != nil {
		return nil, err
	}
	out := make([]NearbyDriver, 0, len(res))
	for _, g := range res {
		out = append(out, NearbyDriver{
			DriverID:   types.ID(g.Name),
			Location:   types.Point{Lat: g.Latitude, Lng: g.Longitude},
			DistanceKm: g.Dist,
		})
	}
	return out, nil
}

// SavePreference records the driver's chosen availability so the app can
// restore it on its next cold start.
func (r *RedisStore) SavePreference(ctx context.Context, driverID types.ID, online bool) error {
	v := "0"
	if online {
		v = "1"
	}
	return r.client.Set(ctx, prefKey(driverID), v, 0).Err()
}

// LoadPreference returns the stored availability; a driver with no stored
// preference is offline.
func (r *RedisStore) LoadPreference(ctx context.Context, driverID types.ID) (bool, error) {
	v, err := r.client.Get(ctx, prefKey(driverID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return v == "1", nil
}

func metaKey(id types.ID) string { return "driver:meta:" + string(id) }
func prefKey(id types.ID) string { return "driver:pref:" + string(id) }
