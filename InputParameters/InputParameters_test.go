package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/emhd/geometry"
	"github.com/notargets/emhd/model_problems/EMHD"
	"github.com/notargets/emhd/types"
)

func TestInputParameters(t *testing.T) {
	{ // Defaults fill what the file leaves out
		ip := &InputParameters{}
		require.NoError(t, ip.Parse([]byte(`
Title: "Sod"
Cells: [32]
Start: [0]
End: [1]
InitType: ShockTube
`)))
		assert.Equal(t, "Sod", ip.Title)
		assert.Equal(t, []int{32}, ip.Cells)
		assert.Equal(t, "minkowski", ip.Spacetime)
		assert.Equal(t, 1.e-3, ip.Dt)
		p := ip.ToParams()
		assert.Equal(t, EMHD.DefaultParams().AdiabaticIndex, p.AdiabaticIndex)
		assert.Equal(t, EMHD.RECONSTRUCT_MM, p.Reconstruction)
		assert.Equal(t, EMHD.FLUX_LaxFriedrichs, p.FluxType)
		assert.False(t, p.Relaxation.Implicit())
		assert.False(t, p.Dissipative())
	}
	{ // Every key is read
		ip := &InputParameters{}
		require.NoError(t, ip.Parse([]byte(`
Title: "Curved"
Cells: [8, 4]
NumGhost: 1
Start: [4, 1.0]
End: [6, 2.0]
Spacetime: KerrSchild
Spin: 0.5
AdiabaticIndex: 1.6666666666666667
Conduction: true
Viscosity: true
HighOrderTermsViscosity: true
ConductionTau: 0.25
ConductionAlpha: 2
ViscosityAlpha: 3
Reconstruction: weno5
FluxType: HLL
Relaxation: implicit
ProcLimit: 2
Dt: 0.01
`)))
		p := ip.ToParams()
		assert.Equal(t, 5./3., p.AdiabaticIndex)
		assert.True(t, p.Conduction && p.Viscosity)
		assert.False(t, p.HighOrderTermsConduction)
		assert.True(t, p.HighOrderTermsViscosity)
		assert.Equal(t, 0.25, p.ConductionTau)
		assert.Equal(t, 2., p.ConductionAlpha)
		assert.Equal(t, 3., p.ViscosityAlpha)
		assert.Equal(t, EMHD.RECONSTRUCT_WENO5, p.Reconstruction)
		assert.Equal(t, EMHD.FLUX_HLL, p.FluxType)
		assert.True(t, p.Relaxation.Implicit())
		assert.Equal(t, 2, p.ProcLimit)
		geom, err := ip.NewGeometry()
		require.NoError(t, err)
		g := geom.Grid()
		assert.Equal(t, 2, g.Dim)
		// WENO5 needs more ghost zones than the file asked for
		assert.Equal(t, 3, g.NumGhost)
		assert.Equal(t, geometry.KerrSchild{Spin: 0.5}, geom.Spacetime)
		assert.InDelta(t, 0.25, geom.DX(1), 1.e-15)
		assert.InDelta(t, 4.125, geom.XCoords(types.CENTER, g.Index(0, 0, 0))[1], 1.e-15)
	}
	{ // Bad input is reported
		for _, bad := range []string{
			`Cells: [4]`,
			`Cells: [4, 4, 4, 4]
Start: [0, 0, 0, 0]
End: [1, 1, 1, 1]`,
			`Cells: [4]
Start: [1]
End: [0]`,
			`Cells: [0]
Start: [0]
End: [1]`,
			`Cells: [4]
Start: [0]
End: [1]
Dt: -1`,
			`Cells: [4`,
			`Cells: [4]
Start: [4]
End: [6]
Spacetime: Kerr`,
		} {
			ip := &InputParameters{}
			assert.Error(t, ip.Parse([]byte(bad)), bad)
		}
		assert.True(t, isKerrSchild(" KerrSchild"))
		assert.False(t, isKerrSchild("minkowski"))
		assert.False(t, isKerrSchild("schwarzschild-droste"))
	}
}
