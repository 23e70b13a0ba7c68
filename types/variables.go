package types

type FluidVar uint8

// Ordering of primitive, flux, conserved and source variables
const (
	RHO FluidVar = iota
	UU
	U1
	U2
	U3
	B1
	B2
	B3
	QTILDE
	DPTILDE
	NumFluidVars
)

var FluidVarNames = []string{
	"rho", "u", "u1", "u2", "u3", "B1", "B2", "B3", "qTilde", "deltaPTilde",
}

func (fv FluidVar) String() string {
	if int(fv) >= len(FluidVarNames) {
		return "unknown"
	}
	return FluidVarNames[fv]
}

// Velocity returns U1, U2 or U3 for spatial direction dir
func Velocity(dir int) FluidVar { return U1 + FluidVar(dir-1) }

// Magnetic returns B1, B2 or B3 for spatial direction dir
func Magnetic(dir int) FluidVar { return B1 + FluidVar(dir-1) }
