package InputParameters

import (
	"fmt"
	"strings"

	"github.com/ghodss/yaml"

	"github.com/notargets/emhd/geometry"
	"github.com/notargets/emhd/grid"
	"github.com/notargets/emhd/model_problems/EMHD"
	"github.com/notargets/emhd/types"
)

// Parameters obtained from the YAML input file
type InputParameters struct {
	Title                    string    `json:"Title"`
	Cells                    []int     `json:"Cells"`    // Interior cells per active direction
	NumGhost                 int       `json:"NumGhost"` // Raised to what the reconstruction needs
	Start                    []float64 `json:"Start"`
	End                      []float64 `json:"End"`
	Spacetime                string    `json:"Spacetime"`
	Spin                     float64   `json:"Spin"`
	InitType                 string    `json:"InitType"`
	Amplitude                float64   `json:"Amplitude"`
	AdiabaticIndex           float64   `json:"AdiabaticIndex"`
	Conduction               bool      `json:"Conduction"`
	Viscosity                bool      `json:"Viscosity"`
	HighOrderTermsConduction bool      `json:"HighOrderTermsConduction"`
	HighOrderTermsViscosity  bool      `json:"HighOrderTermsViscosity"`
	ConductionTau            float64   `json:"ConductionTau"`
	ConductionAlpha          float64   `json:"ConductionAlpha"`
	ViscosityAlpha           float64   `json:"ViscosityAlpha"`
	Reconstruction           string    `json:"Reconstruction"`
	FluxType                 string    `json:"FluxType"`
	Relaxation               string    `json:"Relaxation"`
	ProcLimit                int       `json:"ProcLimit"`
	Dt                       float64   `json:"Dt"`
}

// Parse fills ip from YAML, keys that are absent keep the model defaults
func (ip *InputParameters) Parse(data []byte) (err error) {
	p := EMHD.DefaultParams()
	*ip = InputParameters{
		InitType:        "uniform",
		Amplitude:       1.e-4,
		Spacetime:       "minkowski",
		AdiabaticIndex:  p.AdiabaticIndex,
		ConductionTau:   p.ConductionTau,
		ConductionAlpha: p.ConductionAlpha,
		ViscosityAlpha:  p.ViscosityAlpha,
		Reconstruction:  "mm",
		FluxType:        "llf",
		Relaxation:      "explicit",
		Dt:              1.e-3,
	}
	if err = yaml.Unmarshal(data, ip); err != nil {
		return
	}
	return ip.check()
}

func (ip *InputParameters) check() (err error) {
	dim := len(ip.Cells)
	switch {
	case dim < 1 || dim > 3:
		err = fmt.Errorf("Cells must list the cell count of 1 to 3 directions, have %v", ip.Cells)
	case len(ip.Start) != dim || len(ip.End) != dim:
		err = fmt.Errorf("Start %v and End %v must have one entry per direction in Cells %v", ip.Start, ip.End, ip.Cells)
	case !(ip.Dt > 0):
		err = fmt.Errorf("Dt must be positive, have %g", ip.Dt)
	case dim < 2 && isKerrSchild(ip.Spacetime):
		// Inactive directions sit at coordinate 0, theta = 0 is the polar axis
		err = fmt.Errorf("spacetime %s needs the theta direction active, have %d direction(s)", ip.Spacetime, dim)
	}
	if err != nil {
		return
	}
	for d := 0; d < dim; d++ {
		if ip.Cells[d] < 1 {
			return fmt.Errorf("direction %d has %d cells", d+1, ip.Cells[d])
		}
		if !(ip.End[d] > ip.Start[d]) {
			return fmt.Errorf("direction %d has End %g <= Start %g", d+1, ip.End[d], ip.Start[d])
		}
	}
	return
}

func isKerrSchild(label string) bool {
	newST, ok := geometry.SpacetimeNames[strings.ToLower(strings.TrimSpace(label))]
	if !ok {
		return false
	}
	_, ks := newST(0).(geometry.KerrSchild)
	return ks
}

func (ip *InputParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("%v\t\t\t= Cells\n", ip.Cells)
	fmt.Printf("%v -> %v\t= Domain\n", ip.Start, ip.End)
	fmt.Printf("[%s, %8.5f]\t= Spacetime, Spin\n", ip.Spacetime, ip.Spin)
	fmt.Printf("[%s]\t\t= InitType\n", ip.InitType)
	fmt.Printf("%8.5f\t\t= Dt\n", ip.Dt)
	ip.ToParams().Print()
}

// ToParams converts the scheme labels and closure values into model parameters
func (ip *InputParameters) ToParams() (p EMHD.Params) {
	p = EMHD.Params{
		AdiabaticIndex:           ip.AdiabaticIndex,
		Conduction:               ip.Conduction,
		Viscosity:                ip.Viscosity,
		HighOrderTermsConduction: ip.HighOrderTermsConduction,
		HighOrderTermsViscosity:  ip.HighOrderTermsViscosity,
		ConductionTau:            ip.ConductionTau,
		ConductionAlpha:          ip.ConductionAlpha,
		ViscosityAlpha:           ip.ViscosityAlpha,
		Reconstruction:           EMHD.NewReconstructionType(ip.Reconstruction),
		FluxType:                 EMHD.NewFluxType(ip.FluxType),
		Relaxation:               EMHD.NewRelaxationPolicy(ip.Relaxation),
		ProcLimit:                ip.ProcLimit,
	}
	return
}

// NewGeometry builds the grid and the precomputed geometry the input describes
func (ip *InputParameters) NewGeometry() (geom *geometry.Geometry, err error) {
	var (
		ng         = ip.NumGhost
		start, end [3]float64
	)
	if rng := EMHD.NewReconstructionType(ip.Reconstruction).NumGhost(); ng < rng {
		ng = rng
	}
	g := grid.NewGrid(len(ip.Cells), ng, int(types.NumFluidVars), ip.Cells...)
	copy(start[:], ip.Start)
	copy(end[:], ip.End)
	return geometry.NewGeometry(geometry.NewSpacetime(ip.Spacetime, ip.Spin),
		geometry.NewDomain(start, end, g), g, ip.ProcLimit)
}
