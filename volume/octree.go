package volume

import (
	"github.com/DmitriyVTitov/size"
	"github.com/dustin/go-humanize"
	"github.com/edaniels/golog"
)

// Each node in the tree is either solid, meaning the whole cube it covers
// holds a single value, or gray, meaning it delegates to eight child octants.
const (
	solidNode = nodeType(iota)
	grayNode
)

// nodeType tags the two possible states of an octree node.
type nodeType uint8

// Octant membership bits. A child index is the OR of the high-half bits of
// the three axes.
const (
	octX = 0x04
	octY = 0x02
	octZ = 0x01
)

// node covers a cube of some power-of-two edge. A solid node stores the value
// of every cell in its cube; a gray node owns eight children, one per octant.
// Children are owned exclusively by their parent and a gray node's children
// are never mutually collapsible into a single value: any write that makes
// them uniform immediately reverts the parent to solid.
type node[V comparable] struct {
	typ      nodeType
	value    V
	children [8]*node[V]
}

func newSolidNode[V comparable](value V) *node[V] {
	return &node[V]{typ: solidNode, value: value}
}

// Volume is a sparse voxel container backed by an octree. Homogeneous regions
// occupy a single node regardless of their extent, so uniform volumes cost
// O(1) while still allowing per-voxel detail where writes differ.
//
// The tree is single-writer: Set mutates shared node pointers without
// locking and must not race with other calls.
type Volume[V comparable] struct {
	root                *node[V]
	rootSize            int
	sizeX, sizeY, sizeZ int
	initValue           V
}

// NewVolume creates an octree-backed volume of the given logical size with
// every cell holding initValue. The internal root covers the smallest power
// of two not less than the largest logical extent.
func NewVolume[V comparable](sizeX, sizeY, sizeZ int, initValue V) *Volume[V] {
	maxSize := sizeX
	if sizeY > maxSize {
		maxSize = sizeY
	}
	if sizeZ > maxSize {
		maxSize = sizeZ
	}
	rootSize := 1
	for rootSize < maxSize {
		rootSize <<= 1
	}
	return &Volume[V]{
		root:      newSolidNode(initValue),
		rootSize:  rootSize,
		sizeX:     sizeX,
		sizeY:     sizeY,
		sizeZ:     sizeZ,
		initValue: initValue,
	}
}

// Get returns the value at (i, j, k). Positions outside the logical extents
// yield the init value; callers treat that as the canonical "outside" answer.
func (v *Volume[V]) Get(i, j, k int) V {
	if i < 0 || i >= v.sizeX || j < 0 || j >= v.sizeY || k < 0 || k >= v.sizeZ {
		return v.initValue
	}
	return v.root.get(v.rootSize, Position{i, j, k})
}

// Set stores value at (i, j, k). Out-of-bounds writes are silently dropped.
func (v *Volume[V]) Set(i, j, k int, value V) {
	if i < 0 || i >= v.sizeX || j < 0 || j >= v.sizeY || k < 0 || k >= v.sizeZ {
		return
	}
	v.root.set(v.rootSize, Position{i, j, k}, value)
}

// SizeX returns the logical X extent.
func (v *Volume[V]) SizeX() int { return v.sizeX }

// SizeY returns the logical Y extent.
func (v *Volume[V]) SizeY() int { return v.sizeY }

// SizeZ returns the logical Z extent.
func (v *Volume[V]) SizeZ() int { return v.sizeZ }

// NodeCount returns the number of live octree nodes. Diagnostics only; a
// fully homogeneous volume counts exactly one.
func (v *Volume[V]) NodeCount() int {
	return v.root.count()
}

// MemUsed returns the approximate memory footprint of the tree in bytes.
func (v *Volume[V]) MemUsed() int {
	return size.Of(v.root)
}

// LogMemUsage reports tree occupancy to the given logger.
func (v *Volume[V]) LogMemUsage(logger golog.Logger) {
	logger.Debugf(
		"octree %dx%dx%d (root %d): %d nodes, %s",
		v.sizeX, v.sizeY, v.sizeZ, v.rootSize,
		v.NodeCount(), humanize.Bytes(uint64(v.MemUsed())),
	)
}

// findOctant returns the child index of pos within a node of edge nodeSize.
func findOctant(nodeSize int, pos Position) int {
	octant := 0
	if pos.X >= nodeSize>>1 {
		octant |= octX
	}
	if pos.Y >= nodeSize>>1 {
		octant |= octY
	}
	if pos.Z >= nodeSize>>1 {
		octant |= octZ
	}
	return octant
}

// toOctant translates pos into the local frame of the given child octant.
func toOctant(octant, nodeSize int, pos Position) Position {
	if octant&octX != 0 {
		pos.X -= nodeSize >> 1
	}
	if octant&octY != 0 {
		pos.Y -= nodeSize >> 1
	}
	if octant&octZ != 0 {
		pos.Z -= nodeSize >> 1
	}
	return pos
}

func (n *node[V]) get(nodeSize int, pos Position) V {
	if n.typ == solidNode {
		return n.value
	}
	octant := findOctant(nodeSize, pos)
	return n.children[octant].get(nodeSize>>1, toOctant(octant, nodeSize, pos))
}

func (n *node[V]) set(nodeSize int, pos Position, value V) {
	if n.typ == solidNode && n.value == value {
		return
	}

	if n.typ == solidNode {
		if nodeSize == 1 {
			n.value = value
			return
		}
		// Split: the differing write needs per-octant resolution.
		n.typ = grayNode
		for i := range n.children {
			n.children[i] = newSolidNode(n.value)
		}
	}

	octant := findOctant(nodeSize, pos)
	n.children[octant].set(nodeSize>>1, toOctant(octant, nodeSize, pos), value)

	// Collapse when the write made all eight children solid and uniform.
	for i := range n.children {
		if n.children[i].typ != solidNode || n.children[i].value != value {
			return
		}
	}
	n.typ = solidNode
	n.value = value
	n.children = [8]*node[V]{}
}

func (n *node[V]) count() int {
	count := 1
	if n.typ == grayNode {
		for i := range n.children {
			count += n.children[i].count()
		}
	}
	return count
}
