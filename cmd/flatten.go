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
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/gopattern/InputParameters"
	"github.com/notargets/gopattern/export"
	"github.com/notargets/gopattern/mesh"
	"github.com/notargets/gopattern/pattern"
	"github.com/notargets/gopattern/readfiles"
	"github.com/notargets/gopattern/utils"
)

type FlattenRun struct {
	MeshFile   string
	OutputFile string
	ExportFile string
	STLFile    string
	Plot       bool
	Delay      time.Duration
}

// FlattenCmd represents the flatten command
var FlattenCmd = &cobra.Command{
	Use:   "flatten",
	Short: "Cut a seam marked mesh into pieces and lay them flat",
	Long: `
Reads an OBJ mesh whose seams are line elements or #@seam records, cuts it along the seams,
unwraps and flattens every piece and writes the result as OBJ, optionally exporting the pattern.

gopattern flatten -F shirt.obj -o shirt_flat.obj --export shirt.svg`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		fr := &FlattenRun{}
		fr.MeshFile, _ = cmd.Flags().GetString("meshFile")
		fr.OutputFile, _ = cmd.Flags().GetString("output")
		fr.ExportFile, _ = cmd.Flags().GetString("export")
		fr.STLFile, _ = cmd.Flags().GetString("stl")
		fr.Plot, _ = cmd.Flags().GetBool("plot")
		dr, _ := cmd.Flags().GetInt("delay")
		fr.Delay = time.Duration(dr) * time.Millisecond
		if len(fr.MeshFile) == 0 {
			return errors.New("must supply a mesh file (-F, --meshFile) in OBJ format")
		}
		var pp *InputParameters.PatternParameters
		if pp, err = loadParameters(); err != nil {
			fmt.Printf("Example File:%s\n", exampleParameters)
			return
		}
		return RunFlatten(fr, pp)
	},
}

func init() {
	rootCmd.AddCommand(FlattenCmd)
	FlattenCmd.Flags().StringP("meshFile", "F", "", "mesh file to read in OBJ format")
	FlattenCmd.Flags().StringP("output", "o", "", "OBJ file for the flattened mesh, default <mesh>_pattern.obj")
	FlattenCmd.Flags().String("export", "", "also export the pattern to this file in the configured format")
	FlattenCmd.Flags().String("stl", "", "also write the flattened mesh as STL for a cloth simulation")
	FlattenCmd.Flags().BoolP("plot", "g", false, "display the flattened pattern")
	FlattenCmd.Flags().IntP("delay", "d", 0, "milliseconds to keep the plot open")
}

func outputName(input, suffix string) string {
	return strings.TrimSuffix(input, ".obj") + suffix
}

func RunFlatten(fr *FlattenRun, pp *InputParameters.PatternParameters) (err error) {
	var (
		m   *mesh.Mesh
		res *pattern.Result
	)
	if m, err = readfiles.ReadOBJFile(fr.MeshFile, true); err != nil {
		return
	}
	pp.Print()
	if res, err = pattern.Run(m, pp, utils.LogProgress("flatten")); err != nil {
		return
	}
	if res.Flatten.Skipped != nil {
		log.Warnf("some islands were skipped: %v", res.Flatten.Skipped)
	}
	if fr.OutputFile == "" {
		fr.OutputFile = outputName(fr.MeshFile, "_pattern.obj")
	}
	if err = readfiles.WriteOBJFile(fr.OutputFile, res.Mesh); err != nil {
		return
	}
	log.Infof("wrote %s", fr.OutputFile)
	if fr.STLFile != "" {
		if err = res.Mesh.SaveSTL(fr.STLFile); err != nil {
			return
		}
	}
	if fr.ExportFile != "" {
		var files []string
		if files, err = pattern.Export(res.Mesh, pp, fr.ExportFile); err != nil {
			return
		}
		log.Infof("exported %v", files)
	}
	if fr.Plot {
		plotPattern(res.Mesh, pp, fr.Delay)
	}
	return
}

// plotPattern shows the UV layout with its outlines and marker ticks in UV units
func plotPattern(m *mesh.Mesh, pp *InputParameters.PatternParameters, delay time.Duration) {
	_, outlines, marks, err := pattern.Layout(m, pp)
	if err != nil {
		log.Errorf("plot: %v", err)
		return
	}
	var (
		lines [][]r2.Vec
		ticks [][2]r2.Vec
		size  = export.TickLength / pp.DocumentSize
	)
	for _, groups := range outlines {
		for _, g := range groups {
			lines = append(lines, g.Points)
		}
	}
	for _, mk := range marks {
		ticks = append(ticks, [2]r2.Vec{mk.Pos, r2.Add(mk.Pos, r2.Scale(size, mk.Dir))})
	}
	readfiles.NewPatternPlot(m, lines, ticks).Plot(delay)
}
