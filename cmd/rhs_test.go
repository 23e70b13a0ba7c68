package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ghodss/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/notargets/emhd/InputParameters"
	"github.com/notargets/emhd/geometry"
	"github.com/notargets/emhd/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func parseInput(t *testing.T, data string) (ip *InputParameters.InputParameters) {
	ip = &InputParameters.InputParameters{}
	require.NoError(t, ip.Parse([]byte(data)))
	return
}

func TestRunRHS(t *testing.T) {
	log := zaptest.NewLogger(t)
	{ // A uniform state is steady
		norms, err := RunRHS(parseInput(t, `
Cells: [8, 4]
Start: [0, 0]
End: [1, 1]
InitType: Uniform
ProcLimit: 2
`), log)
		require.NoError(t, err)
		require.Equal(t, int(types.NumFluidVars), len(norms))
		for _, vn := range norms {
			assert.InDelta(t, 0., vn.LInf, 1.e-14, vn.Var.String())
			assert.InDelta(t, 0., vn.L2, 1.e-14, vn.Var.String())
		}
	}
	{ // The shock tube moves mass and momentum, not field
		norms, err := RunRHS(parseInput(t, `
Cells: [16]
Start: [0]
End: [1]
InitType: ShockTube
FluxType: HLL
Reconstruction: WENO5
ProcLimit: 2
`), log)
		require.NoError(t, err)
		assert.Greater(t, norms[types.RHO].LInf, 0.)
		assert.Greater(t, norms[types.U1].LInf, 0.)
		assert.LessOrEqual(t, norms[types.RHO].L2, norms[types.RHO].LInf)
		assert.Equal(t, 0., norms[types.B1].LInf)
	}
	{ // Dissipative runs with implicit relaxation
		norms, err := RunRHS(parseInput(t, `
Cells: [16]
Start: [0]
End: [1]
InitType: SoundWave
Amplitude: 0.01
Conduction: true
Viscosity: true
ConductionTau: 0.5
Relaxation: Implicit
ProcLimit: 2
`), log)
		require.NoError(t, err)
		assert.Greater(t, norms[types.RHO].LInf, 0.)
	}
}

func TestExampleFile(t *testing.T) {
	ip := parseInput(t, exampleFile)
	assert.Equal(t, []int{64}, ip.Cells)
	assert.Equal(t, []float64{0}, ip.Start)
	norms, err := RunRHS(ip, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Greater(t, norms[types.RHO].LInf, 0.)
}

func TestRunGeometry(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RunGeometry(parseInput(t, `
Cells: [3, 2]
Start: [0, 0]
End: [3, 1]
`), &buf, zaptest.NewLogger(t)))
	var dp geometry.Dump
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &dp))
	assert.Equal(t, "Minkowski", dp.Spacetime)
	assert.Equal(t, 2, dp.Dim)
	require.Equal(t, 6, len(dp.Points))
	assert.Equal(t, -1., dp.Points[0].GCov[0][0])
	assert.Equal(t, 1., dp.Points[0].GCon[1][1])
	assert.Equal(t, 0.5, dp.Points[0].X[1])
}

func TestCommands(t *testing.T) {
	var (
		dir   = t.TempDir()
		input = filepath.Join(dir, "input.yaml")
		out   = filepath.Join(dir, "geometry.yaml")
	)
	require.NoError(t, os.WriteFile(input, []byte(exampleFile), 0644))
	ip, err := readInput(input)
	require.NoError(t, err)
	assert.Equal(t, "Shock Tube", ip.Title)
	assert.Equal(t, []int{64}, ip.Cells)
	_, err = readInput(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	rootCmd.SetArgs([]string{"geometry", "-I", input, "-o", out})
	require.NoError(t, rootCmd.Execute())
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var dp geometry.Dump
	require.NoError(t, yaml.Unmarshal(data, &dp))
	assert.Equal(t, 64, len(dp.Points))
}
