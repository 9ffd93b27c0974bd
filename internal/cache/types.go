package cache

// DefaultCapacity is the number of verses kept when no capacity is given.
const DefaultCapacity = 100

// Stats holds cache performance metrics.
type Stats struct {
	Capacity  int // maximum number of entries
	ItemCount int

	Hits      int64
	Misses    int64
	Evictions int64
	HitRate   float64
}
