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
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/emhd/InputParameters"
)

const exampleFile = `
########################################
Title: "Shock Tube"
Cells: [64]
Start: [0]
End: [1]
Spacetime: Minkowski # Can be "KerrSchild" with Spin
InitType: ShockTube # Can be "Uniform" or "SoundWave"
Reconstruction: MM # Can be "WENO5"
FluxType: LLF # Can be "HLL"
Relaxation: Explicit # Can be "Implicit"
Conduction: false
Viscosity: false
Dt: 0.001
########################################
`

// inputFile returns the -I flag, or the "input" key of the config file
func inputFile(cmd *cobra.Command) (file string, err error) {
	if file, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
		return
	}
	if len(file) == 0 {
		file = viper.GetString("input")
	}
	if len(file) == 0 {
		err = fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile), example:%s", exampleFile)
	}
	return
}

func readInput(file string) (ip *InputParameters.InputParameters, err error) {
	var data []byte
	if data, err = os.ReadFile(file); err != nil {
		return
	}
	ip = &InputParameters.InputParameters{}
	if err = ip.Parse(data); err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return
}

func addInputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- N, Start, End\n\t- Spacetime\n\t- Reconstruction, FluxType")
}
