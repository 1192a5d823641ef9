package collision

import (
	"math"

	"gridcollide/internal/geom"
)

func posInf() float64 { return math.Inf(1) }
func negInf() float64 { return math.Inf(-1) }

func identityTransform() Transform {
	return geom.Identity()
}
