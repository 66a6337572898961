package core

type Options struct {
	// Target is the opaque connection descriptor handed to the driver.
	Target string
	// Capacity is the fixed number of resources, dialed eagerly. 0 means DefaultCapacity.
	Capacity int
	// ReplaceClosed controls the dead-resource policy: when a resource comes
	// back dead on Release, its slot is redialed in the background instead of
	// being retired for good.
	ReplaceClosed bool
	// RepairParallel caps concurrent redials across the pool.
	RepairParallel uint32
	// LockDir, when set, holds a file lock per target so that only one
	// process pools an exclusive target. Empty disables the lock.
	LockDir string
}

const DefaultCapacity = 10

var DefaultOptions = Options{
	Capacity:       DefaultCapacity,
	ReplaceClosed:  true,
	RepairParallel: 2,
}
