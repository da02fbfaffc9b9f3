package field

import (
	"context"
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/voxel/volume"
)

// Downscale reduces the field resolution by an integer factor. The field is
// low-pass filtered in place along each axis with a Catmull-Rom kernel at
// cutoff max(2, 2*factor), then every factor-th cell is read into a coarse
// grid whose voxel size is factor times larger and whose bounds are shifted
// so coarse voxel centers land on the centroids of the fine blocks they
// replace. The coarse container replaces the fine one only after it is fully
// populated; on error the field is left on its original container. A factor
// of 1 leaves values unchanged because the cutoff-2 kernel is the identity.
func (sf *ScalarField[V]) Downscale(ctx context.Context, factor int) error {
	if factor < 1 {
		return errors.Errorf("invalid downscale factor %d", factor)
	}
	sf.logger.Debugf("downscaling volume by factor %d", factor)

	filterCutoff := math.Max(2, 2*float64(factor))
	directions := []volume.Displacement{{X: 1}, {Y: 1}, {Z: 1}}
	for axis, dir := range directions {
		sf.logger.Debugf("filtering volume in axis %d", axis)
		filter := volume.NewCatmullRomFilter(filterCutoff)
		if arr, ok := sf.container.(*volume.Array[V]); ok {
			if err := volume.FilterInplaceParallel(ctx, filter, dir, arr); err != nil {
				return err
			}
			continue
		}
		if err := volume.FilterInplace(filter, dir, sf.container); err != nil {
			return err
		}
	}

	sf.logger.Debugf("collecting filtered data")

	shift := float64(factor-1) * sf.voxelSize / 2
	lower := r3.Vector{X: sf.lower.X - shift, Y: sf.lower.Y - shift, Z: sf.lower.Z - shift}

	var zero V
	tmp, err := NewGeoVolume(lower, sf.upper, sf.voxelSize*float64(factor), zero, sf.alloc, sf.logger)
	if err != nil {
		return err
	}

	dispNew := [3]volume.Displacement{{X: 1}, {Y: 1}, {Z: 1}}
	dispOrig := [3]volume.Displacement{{X: factor}, {Y: factor}, {Z: factor}}

	xitN := volume.NewIterator(tmp.container, volume.Position{}, dispNew[0])
	xendN := xitN.End()
	xitO := volume.NewIterator(sf.container, volume.Position{}, dispOrig[0])
	xendO := xitO.End()
	for !xitN.Equal(xendN) && !xitO.Equal(xendO) {
		yitN := volume.NewIterator(tmp.container, xitN.Pos, dispNew[1])
		yendN := yitN.End()
		yitO := volume.NewIterator(sf.container, xitO.Pos, dispOrig[1])
		yendO := yitO.End()
		for !yitN.Equal(yendN) && !yitO.Equal(yendO) {
			zitN := volume.NewIterator(tmp.container, yitN.Pos, dispNew[2])
			zendN := zitN.End()
			zitO := volume.NewIterator(sf.container, yitO.Pos, dispOrig[2])
			zendO := zitO.End()
			for !zitN.Equal(zendN) && !zitO.Equal(zendO) {
				zitN.SetValue(zitO.Value())
				zitN.Next()
				zitO.Next()
			}
			yitN.Next()
			yitO.Next()
		}
		xitN.Next()
		xitO.Next()
	}

	*sf.GeoVolume = *tmp
	return nil
}
