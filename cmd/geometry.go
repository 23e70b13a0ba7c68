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
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/notargets/emhd/InputParameters"
)

// GeometryCmd represents the geometry command
var GeometryCmd = &cobra.Command{
	Use:   "geometry",
	Short: "Dump the metric and connection at cell centers",
	Long: `
Writes gCov, gCon and the connection gammaDownDownDown at the center of every
interior cell of the grid described by the input file as YAML.

emhd geometry -I input.yaml -o geometry.yaml`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			file, out string
			ip        *InputParameters.InputParameters
			w         io.Writer = os.Stdout
		)
		if file, err = inputFile(cmd); err != nil {
			return
		}
		if ip, err = readInput(file); err != nil {
			return
		}
		if out, err = cmd.Flags().GetString("output"); err != nil {
			return
		}
		if len(out) != 0 {
			var f *os.File
			if f, err = os.Create(out); err != nil {
				return
			}
			defer f.Close()
			w = f
		}
		return RunGeometry(ip, w, logger)
	},
}

func init() {
	rootCmd.AddCommand(GeometryCmd)
	addInputFlag(GeometryCmd)
	GeometryCmd.Flags().StringP("output", "o", "", "YAML file to write, default is stdout")
}

// RunGeometry writes the cell center geometry of the grid ip describes to w
func RunGeometry(ip *InputParameters.InputParameters, w io.Writer, log *zap.Logger) (err error) {
	geom, err := ip.NewGeometry()
	if err != nil {
		return
	}
	g := geom.Grid()
	log.Info("geometry dump",
		zap.String("spacetime", geom.Spacetime.Name()),
		zap.Ints("N", g.N[:g.Dim]),
	)
	return geom.Dump(w)
}
