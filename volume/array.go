package volume

// Array is a dense container backed by a flat slice. It trades memory for
// uniform access cost and allows per-line parallel filtering, which the
// pointer-chasing octree representation does not.
type Array[V comparable] struct {
	sizeX, sizeY, sizeZ int
	initValue           V
	data                []V
}

// NewArray allocates a dense volume of the given logical size with every
// cell set to initValue.
func NewArray[V comparable](sizeX, sizeY, sizeZ int, initValue V) *Array[V] {
	data := make([]V, sizeX*sizeY*sizeZ)
	for i := range data {
		data[i] = initValue
	}
	return &Array[V]{
		sizeX:     sizeX,
		sizeY:     sizeY,
		sizeZ:     sizeZ,
		initValue: initValue,
		data:      data,
	}
}

func (a *Array[V]) index(i, j, k int) int {
	return k + j*a.sizeZ + i*a.sizeZ*a.sizeY
}

// Get returns the value at (i, j, k), or the init value out of bounds.
func (a *Array[V]) Get(i, j, k int) V {
	if i < 0 || i >= a.sizeX || j < 0 || j >= a.sizeY || k < 0 || k >= a.sizeZ {
		return a.initValue
	}
	return a.data[a.index(i, j, k)]
}

// Set stores value at (i, j, k); out-of-bounds writes are dropped.
func (a *Array[V]) Set(i, j, k int, value V) {
	if i < 0 || i >= a.sizeX || j < 0 || j >= a.sizeY || k < 0 || k >= a.sizeZ {
		return
	}
	a.data[a.index(i, j, k)] = value
}

// SizeX returns the logical X extent.
func (a *Array[V]) SizeX() int { return a.sizeX }

// SizeY returns the logical Y extent.
func (a *Array[V]) SizeY() int { return a.sizeY }

// SizeZ returns the logical Z extent.
func (a *Array[V]) SizeZ() int { return a.sizeZ }
