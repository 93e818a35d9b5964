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
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/notargets/gopattern/boundary"
	"github.com/notargets/gopattern/mesh"
	"github.com/notargets/gopattern/readfiles"
	"github.com/notargets/gopattern/topology"
)

// InfoCmd represents the info command
var InfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print mesh statistics, the seam classification and the face islands",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		meshFile, _ := cmd.Flags().GetString("meshFile")
		if len(meshFile) == 0 {
			return errors.New("must supply a mesh file (-F, --meshFile) in OBJ format")
		}
		var m *mesh.Mesh
		if m, err = readfiles.ReadOBJFile(meshFile, false); err != nil {
			return
		}
		PrintInfo(os.Stdout, m)
		return
	},
}

func init() {
	rootCmd.AddCommand(InfoCmd)
	InfoCmd.Flags().StringP("meshFile", "F", "", "mesh file in OBJ format")
}

func PrintInfo(w io.Writer, m *mesh.Mesh) {
	var (
		tp                  = m.BuildTopology()
		cl                  = topology.Classify(m)
		border, wire, other int
	)
	for e := range m.Edges {
		switch {
		case tp.IsBoundaryEdge(e):
			border++
		case tp.IsWireEdge(e):
			wire++
		case !tp.IsManifoldEdge(e):
			other++
		}
	}
	fmt.Fprintf(w, "%v\n", m)
	fmt.Fprintf(w, "%8d\t= Boundary Edges\n", border)
	fmt.Fprintf(w, "%8d\t= Wire Edges\n", wire)
	fmt.Fprintf(w, "%8d\t= Non Manifold Edges\n", other)
	fmt.Fprintf(w, "%8d\t= Seam Edges\n", m.SeamEdges().Len())
	fmt.Fprintf(w, "%8d\t= Star Seam Edges\n", cl.Star.Len())
	fmt.Fprintf(w, "%8d\t= Removable Seam Edges\n", cl.Removable.Len())
	fmt.Fprintf(w, "%8d\t= Fan Faces\n", cl.Fans.Len())
	if m.Faces != nil {
		fmt.Fprintf(w, "%8.5f\t= Area\n", m.Area(nil))
		fmt.Fprintf(w, "%8.5f\t= Volume\n", m.Volume())
	}
	for _, name := range m.AttributeNames() {
		fmt.Fprintf(w, "%8.5f\t= %s\n", m.Attributes[name], name)
	}
	islands := tp.Islands(m)
	fmt.Fprintf(w, "%8d\t= Islands\n", len(islands))
	for i, island := range islands {
		fmt.Fprintf(w, "\tisland %d: %d faces, area %8.5f\n", i, len(island), m.Area(island))
		for j, g := range boundary.TraceIsland(m, tp, island) {
			c := g.Curve()
			kind := "open"
			if c.Closed() {
				kind = "closed"
			}
			fmt.Fprintf(w, "\t\tboundary %d: %s, %d vertices\n", j, kind, len(c.Vertices()))
		}
	}
}
