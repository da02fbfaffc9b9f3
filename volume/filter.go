package volume

import (
	"context"
	"math"
	"reflect"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"go.viam.com/voxel/utils"
)

// FIRFilter is a zero-phase symmetric low-pass kernel applied along grid
// lines. Rows are clamped at their ends: samples past either end repeat the
// boundary cell, matching the clamped boundary semantics of the containers.
type FIRFilter struct {
	weights    []float64
	halfWindow int
}

// NewCatmullRomFilter builds a low-pass filter from the Catmull-Rom cubic
// dilated so that its support spans cutoffPeriod cells on each side of the
// center. A cutoff of 2 samples the cubic at integer knots and is therefore
// the identity; downscaling by factor f uses a cutoff of max(2, 2f).
func NewCatmullRomFilter(cutoffPeriod float64) *FIRFilter {
	halfWindow := int(math.Ceil(cutoffPeriod))
	if halfWindow < 1 {
		halfWindow = 1
	}
	weights := make([]float64, 2*halfWindow+1)
	for i := -halfWindow; i <= halfWindow; i++ {
		weights[i+halfWindow] = catmullRom(2 * float64(i) / cutoffPeriod)
	}
	floats.Scale(1/floats.Sum(weights), weights)
	return &FIRFilter{weights: weights, halfWindow: halfWindow}
}

// catmullRom evaluates the Catmull-Rom cubic (a = -1/2) on support (-2, 2).
func catmullRom(x float64) float64 {
	x = math.Abs(x)
	switch {
	case x < 1:
		return 1.5*x*x*x - 2.5*x*x + 1
	case x < 2:
		return -0.5*x*x*x + 2.5*x*x - 4*x + 2
	}
	return 0
}

// Convolve applies the filter at offset pos of a row of rowSize cells read
// through it, which must sit at the row start.
func Convolve[V Number](f *FIRFilter, it Iterator[V], pos, rowSize int) float64 {
	var acc float64
	for i := -f.halfWindow; i <= f.halfWindow; i++ {
		j := pos + i
		if j < 0 {
			j = 0
		}
		if j > rowSize-1 {
			j = rowSize - 1
		}
		acc += f.weights[i+f.halfWindow] * float64(it.At(j))
	}
	return acc
}

// FilterInplace runs the filter over every grid line of the container along
// the given displacement, writing results back over the source. Each line is
// fully read before it is rewritten, so the pass is order-independent within
// a line; results clamp to the representable range of the value type.
func FilterInplace[V Number](f *FIRFilter, diff Displacement, c Container[V]) error {
	if diff.IsZero() {
		return errors.New("filtering requires a nonzero displacement")
	}
	lo, hi := valueLimits[V]()
	for _, pos := range IteratorPositions(c, diff) {
		filterLine(f, NewIterator(c, pos, diff), lo, hi)
	}
	return nil
}

// FilterInplaceParallel is the dense-array variant of FilterInplace. Lines
// are independent, so they are distributed across workers; the octree
// container cannot take this path because its writes are single-writer.
func FilterInplaceParallel[V Number](ctx context.Context, f *FIRFilter, diff Displacement, arr *Array[V]) error {
	if diff.IsZero() {
		return errors.New("filtering requires a nonzero displacement")
	}
	lo, hi := valueLimits[V]()
	positions := IteratorPositions[V](arr, diff)
	return utils.GroupWorkParallel(
		ctx,
		len(positions),
		func(groupSize int) {},
		func(groupNum, groupSize, from, to int) (utils.MemberWorkFunc, utils.GroupWorkDoneFunc) {
			return func(memberNum, workNum int) {
				filterLine(f, NewIterator[V](arr, positions[workNum], diff), lo, hi)
			}, nil
		},
	)
}

func filterLine[V Number](f *FIRFilter, begin Iterator[V], lo, hi float64) {
	rowSize := begin.End().Sub(begin)
	if rowSize <= 0 {
		return
	}
	filtered := make([]V, rowSize)
	for x := 0; x < rowSize; x++ {
		filtered[x] = V(math.Min(math.Max(Convolve(f, begin, x, rowSize), lo), hi))
	}
	it := begin
	for x := 0; x < rowSize; x++ {
		it.SetValue(filtered[x])
		it.Next()
	}
}

// valueLimits returns the representable range of V for clamping filter
// output before conversion back to the stored type.
func valueLimits[V Number]() (float64, float64) {
	switch reflect.TypeOf(*new(V)).Kind() {
	case reflect.Int:
		return math.MinInt, math.MaxInt
	case reflect.Int8:
		return math.MinInt8, math.MaxInt8
	case reflect.Int16:
		return math.MinInt16, math.MaxInt16
	case reflect.Int32:
		return math.MinInt32, math.MaxInt32
	case reflect.Int64:
		return math.MinInt64, math.MaxInt64
	case reflect.Uint8:
		return 0, math.MaxUint8
	case reflect.Uint16:
		return 0, math.MaxUint16
	case reflect.Uint32:
		return 0, math.MaxUint32
	case reflect.Float32:
		return -math.MaxFloat32, math.MaxFloat32
	default:
		return -math.MaxFloat64, math.MaxFloat64
	}
}
