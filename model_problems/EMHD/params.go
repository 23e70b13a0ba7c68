package EMHD

import (
	"fmt"
)

// Params is the closure and scheme selection of the model, fixed for the
// lifetime of the objects built from it
type Params struct {
	AdiabaticIndex           float64 // Gamma of the ideal gas law
	Conduction               bool
	Viscosity                bool
	HighOrderTermsConduction bool
	HighOrderTermsViscosity  bool
	ConductionTau            float64 // Relaxation time of both dissipative fields
	ConductionAlpha          float64 // chi = ConductionAlpha * cs^2 * tau
	ViscosityAlpha           float64 // nu = ViscosityAlpha * cs^2 * tau
	Reconstruction           ReconstructionType
	FluxType                 FluxType
	Relaxation               RelaxationPolicy
	ProcLimit                int // Shards per parallel sweep, 0 uses all CPUs
}

func DefaultParams() (p Params) {
	p = Params{
		AdiabaticIndex:  4. / 3.,
		ConductionTau:   1,
		ConductionAlpha: 1,
		ViscosityAlpha:  1,
		Reconstruction:  RECONSTRUCT_MM,
		FluxType:        FLUX_LaxFriedrichs,
		Relaxation:      ExplicitRelaxation{},
	}
	return
}

// Check panics on a closure that cannot produce a physical state
func (p Params) Check() {
	if !(p.AdiabaticIndex > 1) {
		panic(fmt.Errorf("adiabatic index must be > 1, have %g", p.AdiabaticIndex))
	}
	if (p.Conduction || p.Viscosity) && !(p.ConductionTau > 0) {
		panic(fmt.Errorf("relaxation time must be positive, have %g", p.ConductionTau))
	}
	if p.Relaxation == nil {
		panic(fmt.Errorf("no relaxation policy selected"))
	}
}

func (p Params) Dissipative() bool { return p.Conduction || p.Viscosity }

func (p Params) Print() {
	fmt.Printf("%8.5f\t\t= Adiabatic Index\n", p.AdiabaticIndex)
	fmt.Printf("[%v, %v]\t\t= Conduction, High Order Terms\n", p.Conduction, p.HighOrderTermsConduction)
	fmt.Printf("[%v, %v]\t\t= Viscosity, High Order Terms\n", p.Viscosity, p.HighOrderTermsViscosity)
	fmt.Printf("%8.5f\t\t= Relaxation Time\n", p.ConductionTau)
	fmt.Printf("[%8.5f, %8.5f]\t= Conduction, Viscosity Alpha\n", p.ConductionAlpha, p.ViscosityAlpha)
	fmt.Printf("[%s]\t\t\t= Reconstruction\n", p.Reconstruction.Print())
	fmt.Printf("[%s]\t\t= Flux Type\n", p.FluxType.Print())
	fmt.Printf("[%s]\t\t= Relaxation\n", p.Relaxation.Name())
}
