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

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gopattern/InputParameters"
	"github.com/notargets/gopattern/utils"
)

var (
	cfgFile  string
	profiler interface{ Stop() }
	log      = utils.NamedLogger("cmd")
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gopattern",
	Short: "Turns a seam marked 3D mesh into a flat sewing pattern",
	Long: `
Cuts a mesh along its seam edges, unwraps and flattens every piece with area correction
and exports the pieces as SVG, tiled print pages or DXF with matching alignment markers.

gopattern flatten -F shirt.obj -o shirt_flat.obj --export shirt.svg`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
		if err = utils.SetLogLevel(viper.GetString("log-level")); err != nil {
			return
		}
		if viper.GetBool("profile") {
			profiler = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
		}
		return
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if profiler != nil {
			profiler.Stop()
			profiler = nil
		}
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.gopattern.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: panic, fatal, error, warn, info, debug")
	rootCmd.PersistentFlags().Bool("profile", false, "write a CPU profile to the current directory")
	rootCmd.PersistentFlags().StringP("inputParametersFile", "I", "", "YAML file for the pattern parameters")
	for _, name := range []string{"log-level", "profile", "inputParametersFile"} {
		if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			panic(err)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".gopattern")
	}
	viper.SetEnvPrefix("GOPATTERN")
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err == nil {
		log.Debugf("Using config file: %s", viper.ConfigFileUsed())
	}
}

/*
loadParameters starts from the defaults and overlays the parameters file given with -I, or through the config
file or the GOPATTERN_INPUTPARAMETERSFILE environment variable.
*/
func loadParameters() (pp *InputParameters.PatternParameters, err error) {
	pp = InputParameters.Defaults()
	file := viper.GetString("inputParametersFile")
	if file == "" {
		return pp, pp.Validate()
	}
	var data []byte
	if data, err = os.ReadFile(file); err != nil {
		return
	}
	if err = pp.Parse(data); err != nil {
		return
	}
	log.Infof("parameters read from %s", file)
	return
}

const exampleParameters = `
########################################
Title: "shirt"
UnwrapMethod: angle-based  # or conformal, keep-existing
WorkOnDuplicate: true
ApplyModifiers: false
Modifiers: [triangulate, weld, "scale:0.01"]
UseRemesh: false
RemeshTriangles: 5000
SeamMaxEdgeLength: 0.02
Bevel: split               # or offset, with BevelWidth
AreaCorrection: global     # or island
MarkerMode: auto           # or seam, off
OutputFormat: svg          # or tiles, dxf
PageSize: A4
PageOverlap: 20
DocumentSize: 1024
Cleanup:
  MinEdgeLength: 0.002
  RelaxIterations: 1
  NeighborRadius: 1
  NeighborSmooth: 0.8
########################################
`
