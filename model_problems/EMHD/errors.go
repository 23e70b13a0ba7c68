package EMHD

import (
	"errors"
	"fmt"

	"github.com/notargets/emhd/types"
)

// ErrFluidState matches every FluidStateError through errors.Is
var ErrFluidState = errors.New("non-physical fluid state")

// FluidStateError reports the first grid point where a primitive state
// cannot be turned into a physical fluid state
type FluidStateError struct {
	Location types.Location
	Index    int // Flat index in the padded grid
	Quantity string
	Value    float64
}

func (e *FluidStateError) Error() string {
	return fmt.Sprintf("%s: %s = %g at %s point %d",
		ErrFluidState.Error(), e.Quantity, e.Value, e.Location.Print(), e.Index)
}

func (e *FluidStateError) Is(target error) bool { return target == ErrFluidState }
