package ecs

import "reflect"

// WorldStats is a point-in-time summary of a world's storage.
type WorldStats struct {
	EntityCount    int
	Pools          []PoolStats
	SingletonCount int
	SingletonTypes []reflect.Type
}

// PoolStats describes one component pool.
type PoolStats struct {
	Type  reflect.Type
	Tag   bool
	Count int
}

// CollectStats gathers statistics about entities, pools and singletons.
// Pools are listed in registration order.
func (w *World) CollectStats() WorldStats {
	stats := WorldStats{
		EntityCount: w.Len(),
		Pools:       make([]PoolStats, 0, len(w.pools)),
	}

	for _, pool := range w.pools {
		stats.Pools = append(stats.Pools, PoolStats{
			Type:  pool.Type(),
			Tag:   pool.isTag(),
			Count: pool.Len(),
		})
	}

	stats.SingletonCount = len(w.singletons)
	stats.SingletonTypes = make([]reflect.Type, 0, len(w.singletons))
	for t := range w.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, t)
	}
	return stats
}
