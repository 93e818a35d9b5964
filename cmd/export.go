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
	"github.com/notargets/gopattern/mesh"
	"github.com/notargets/gopattern/pattern"
	"github.com/notargets/gopattern/readfiles"
)

// ExportCmd represents the export command
var ExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a flattened mesh as a sewing pattern document",
	Long: `
Traces the outline of every piece of a flattened OBJ mesh, adds the alignment markers and writes
an SVG, SVG pages tiled on a paper size, or a DXF.

gopattern export -F shirt_pattern.obj -o shirt.svg --format tiles --page A4`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			meshFile, _ = cmd.Flags().GetString("meshFile")
			output, _   = cmd.Flags().GetString("output")
			pp          *InputParameters.PatternParameters
		)
		if len(meshFile) == 0 {
			return errors.New("must supply a flattened mesh file (-F, --meshFile) in OBJ format")
		}
		if pp, err = loadParameters(); err != nil {
			return
		}
		for flag, field := range map[string]*string{
			"format":  &pp.OutputFormat,
			"page":    &pp.PageSize,
			"markers": &pp.MarkerMode,
		} {
			if cmd.Flags().Changed(flag) {
				*field, _ = cmd.Flags().GetString(flag)
			}
		}
		if cmd.Flags().Changed("overlap") {
			pp.PageOverlap, _ = cmd.Flags().GetInt("overlap")
		}
		if err = pp.Validate(); err != nil {
			return
		}
		if output == "" {
			output = outputName(meshFile, "."+pp.OutputFormat)
			if pp.OutputFormat == "tiles" {
				output = outputName(meshFile, ".svg")
			}
		}
		var m *mesh.Mesh
		if m, err = readfiles.ReadOBJFile(meshFile, true); err != nil {
			return
		}
		var files []string
		if files, err = pattern.Export(m, pp, output); err != nil {
			return
		}
		log.Infof("exported %v", files)
		return
	},
}

func init() {
	rootCmd.AddCommand(ExportCmd)
	ExportCmd.Flags().StringP("meshFile", "F", "", "flattened mesh file in OBJ format")
	ExportCmd.Flags().StringP("output", "o", "", "output file, default named after the mesh")
	ExportCmd.Flags().String("format", "svg", "svg, tiles or dxf")
	ExportCmd.Flags().String("page", "A4", "page size for tiles")
	ExportCmd.Flags().Int("overlap", 20, "page overlap in pixels for tiles")
	ExportCmd.Flags().String("markers", "auto", "alignment markers: off, seam or auto")
}
