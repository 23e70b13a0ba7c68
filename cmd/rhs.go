/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/emhd/InputParameters"
	"github.com/notargets/emhd/model_problems/EMHD"
	"github.com/notargets/emhd/types"
	"github.com/notargets/emhd/utils"
)

// VarNorm is the size of the right hand side of one conserved variable over
// the interior cells
type VarNorm struct {
	Var  types.FluidVar
	L2   float64 // Root mean square
	LInf float64
}

// RHSCmd represents the rhs command
var RHSCmd = &cobra.Command{
	Use:   "rhs",
	Short: "Evaluate the spatial operator once on an initial condition",
	Long: `
Builds the grid, geometry and model described by the input file, fills the
initial condition and reports the norms of the conserved right hand side.

emhd rhs -I input.yaml`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			file string
			ip   *InputParameters.InputParameters
		)
		if file, err = inputFile(cmd); err != nil {
			return
		}
		if ip, err = readInput(file); err != nil {
			return
		}
		if viper.GetBool("verbose") {
			ip.Print()
		}
		_, err = RunRHS(ip, logger)
		return
	},
}

func init() {
	rootCmd.AddCommand(RHSCmd)
	addInputFlag(RHSCmd)
}

// RunRHS evaluates the spatial operator on the initial condition of ip
func RunRHS(ip *InputParameters.InputParameters, log *zap.Logger) (norms []VarNorm, err error) {
	var (
		params = ip.ToParams()
		it     = EMHD.NewInitType(ip.InitType)
	)
	geom, err := ip.NewGeometry()
	if err != nil {
		return
	}
	g := geom.Grid()
	log.Info("grid",
		zap.Ints("N", g.N[:g.Dim]),
		zap.Int("ghosts", g.NumGhost),
		zap.String("spacetime", geom.Spacetime.Name()),
		zap.String("init", it.Print()),
	)
	m := EMHD.NewModel(geom, params)
	prim, rhs := m.NewPrimitives(), m.NewPrimitives()
	m.Initialize(it, prim, ip.Amplitude)
	terms, err := m.RHS(prim, prim, ip.Dt, rhs)
	if err != nil {
		return nil, fmt.Errorf("evaluating the right hand side: %w", err)
	}
	log.Debug("memory", zap.String("usage", utils.GetMemUsage()))
	interior := make([]float64, 0, g.N[0]*g.N[1]*g.N[2])
	for v := types.RHO; v < types.NumFluidVars; v++ {
		if i := utils.FirstNonFinite(rhs.Vars[v]); i >= 0 {
			return nil, fmt.Errorf("right hand side of %s is %g at index %d", v, rhs.Vars[v][i], i)
		}
		interior = interior[:0]
		g.ForInterior(0, g.Size(), func(k int) {
			interior = append(interior, rhs.Vars[v][k])
		})
		vn := VarNorm{
			Var:  v,
			L2:   floats.Norm(interior, 2) / math.Sqrt(float64(len(interior))),
			LInf: floats.Norm(interior, math.Inf(1)),
		}
		log.Info("rhs", zap.Stringer("var", v), zap.Float64("L2", vn.L2), zap.Float64("LInf", vn.LInf))
		norms = append(norms, vn)
	}
	for _, term := range terms {
		log.Debug("stiff relaxation term", zap.Stringer("var", term.Var), zap.Int("len", term.Len()))
	}
	return
}
