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

	"github.com/ghodss/yaml"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/shiji203/data-driven-discretization-1d/baseline"
)

// BaselineCmd represents the baseline command
var BaselineCmd = &cobra.Command{
	Use:   "baseline",
	Short: "Generate baseline training data for a conservative equation",
	Long: `
Integrates a flux conservative equation for every (sample, accuracy order)
pair in parallel and writes one combined dataset sorted by sample and
accuracy order,

pde1d baseline --equation kdv --numSamples 10 -o kdv_baseline.json`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := processBaselineInput(cmd)
		if prof, _ := cmd.Flags().GetBool("profile"); prof {
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
		}
		if err := baseline.Run(cfg); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func processBaselineInput(cmd *cobra.Command) (cfg *baseline.Config) {
	cfg = &baseline.Config{}
	if inputFile, _ := cmd.Flags().GetString("inputFile"); len(inputFile) != 0 {
		data, err := os.ReadFile(inputFile)
		if err != nil {
			panic(err)
		}
		if err = yaml.Unmarshal(data, cfg); err != nil {
			panic(err)
		}
		return
	}
	cfg.OutputPath, _ = cmd.Flags().GetString("outputPath")
	cfg.Equation, _ = cmd.Flags().GetString("equation")
	cfg.EquationParams, _ = cmd.Flags().GetString("equationParams")
	cfg.NumSamples, _ = cmd.Flags().GetInt("numSamples")
	cfg.TimeMax, _ = cmd.Flags().GetFloat64("timeMax")
	cfg.AccuracyOrders, _ = cmd.Flags().GetIntSlice("accuracyOrders")
	cfg.TimeDelta, _ = cmd.Flags().GetFloat64("timeDelta")
	cfg.Warmup, _ = cmd.Flags().GetFloat64("warmup")
	cfg.IntegrateMethod, _ = cmd.Flags().GetString("integrateMethod")
	cfg.ExactFilterInterval, _ = cmd.Flags().GetFloat64("exactFilterInterval")
	cfg.Parallelism, _ = cmd.Flags().GetInt("parallelism")
	return
}

func init() {
	rootCmd.AddCommand(BaselineCmd)
	BaselineCmd.Flags().StringP("inputFile", "I", "", "YAML file carrying the full pipeline configuration")
	BaselineCmd.Flags().StringP("outputPath", "o", "", "Full path to which to save the resulting dataset (.json, .yaml)")
	BaselineCmd.Flags().StringP("equation", "e", "burgers", "Equation to integrate: burgers, kdv, ks")
	BaselineCmd.Flags().StringP("equationParams", "p", `{"num_points": 400}`, "Parameters to pass to the equation constructor (YAML or JSON map)")
	BaselineCmd.Flags().IntP("numSamples", "n", 10, "Number of times to integrate each equation")
	BaselineCmd.Flags().Float64("timeMax", 10, "Total time for which to run each integration")
	BaselineCmd.Flags().IntSlice("accuracyOrders", []int{1, 3}, "Accuracy orders for which to calculate results")
	BaselineCmd.Flags().Float64("timeDelta", 1, "Difference between saved time steps in the integration")
	BaselineCmd.Flags().Float64("warmup", 0, "Amount of time to integrate before recording results")
	BaselineCmd.Flags().String("integrateMethod", "midpoint", "Method to use for integration: midpoint, rk4")
	BaselineCmd.Flags().Float64("exactFilterInterval", 0, "Interval between periodic filtering. Only used for spectral methods")
	BaselineCmd.Flags().Int("parallelism", 0, "Number of parallel workers, 0 = number of CPUs")
	BaselineCmd.Flags().Bool("profile", false, "write a CPU profile for the run")
}
