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
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/notargets/gopattern/InputParameters"
	"github.com/notargets/gopattern/cleanup"
	"github.com/notargets/gopattern/mesh"
	"github.com/notargets/gopattern/pattern"
	"github.com/notargets/gopattern/readfiles"
	"github.com/notargets/gopattern/utils"
)

// CleanupCmd represents the cleanup command
var CleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Collapse short edges and relax a seam chain or the boundary",
	Long: `
Cleans up the seam chain away from star junctions, or the boundary with --boundary: short edges are
collapsed, the chain is relaxed and the vertices around it are smoothed.

gopattern cleanup -F shirt.obj -o shirt_clean.obj --minEdgeLength 0.005`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			meshFile, _ = cmd.Flags().GetString("meshFile")
			output, _   = cmd.Flags().GetString("output")
			pp          *InputParameters.PatternParameters
			m           *mesh.Mesh
			res         cleanup.Result
		)
		if len(meshFile) == 0 {
			return errors.New("must supply a mesh file (-F, --meshFile) in OBJ format")
		}
		if pp, err = loadParameters(); err != nil {
			return
		}
		c := &pp.Cleanup
		if cmd.Flags().Changed("boundary") {
			c.Boundary, _ = cmd.Flags().GetBool("boundary")
		}
		if cmd.Flags().Changed("minEdgeLength") {
			c.MinEdgeLength, _ = cmd.Flags().GetFloat64("minEdgeLength")
		}
		if cmd.Flags().Changed("relax") {
			c.RelaxIterations, _ = cmd.Flags().GetInt("relax")
		}
		if err = pp.Validate(); err != nil {
			return
		}
		if m, err = readfiles.ReadOBJFile(meshFile, true); err != nil {
			return
		}
		if res, err = pattern.Cleanup(m, pp, utils.LogProgress("cleanup")); err != nil {
			return
		}
		if output == "" {
			output = outputName(meshFile, "_clean.obj")
		}
		if err = readfiles.WriteOBJFile(output, m); err != nil {
			return
		}
		log.Infof("wrote %s: %d collapsed, %d relaxed, %d smoothed", output, res.Collapsed, res.Relaxed,
			res.Smoothed)
		return
	},
}

func init() {
	rootCmd.AddCommand(CleanupCmd)
	CleanupCmd.Flags().StringP("meshFile", "F", "", "mesh file in OBJ format")
	CleanupCmd.Flags().StringP("output", "o", "", "output OBJ file, default <mesh>_clean.obj")
	CleanupCmd.Flags().Bool("boundary", false, "clean up the boundary edges instead of the seam chain")
	CleanupCmd.Flags().Float64("minEdgeLength", 0.002, "collapse chain edges shorter than this")
	CleanupCmd.Flags().Int("relax", 1, "relax iterations")
}
