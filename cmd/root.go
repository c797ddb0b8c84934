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
	"go.uber.org/zap"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "odtmesh",
	Short: "Optimal Delaunay Triangulation mesh relaxation",
	Long: `Relaxes 2D triangle meshes toward an Optimal Delaunay Triangulation, moving the
interior nodes to minimize the interpolation error of ||x||^2 with fixed point
iterations or a quasi Newton optimizer that restores the Delaunay property
after every step.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.odtmesh.yaml)")
	rootCmd.PersistentFlags().String("profile", "", "write a CPU profile into this directory")
	rootCmd.PersistentFlags().Bool("perf", false, "count the CPU instructions of the run (linux only)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "print statistics after every step and debug logs")
	for _, name := range []string{"profile", "perf", "verbose"} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".odtmesh" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".odtmesh")
	}

	viper.SetEnvPrefix("odtmesh")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

// withProfiling runs f under the profilers requested on the command line
func withProfiling(logger *zap.Logger, f func() error) error {
	if dir := viper.GetString("profile"); len(dir) != 0 {
		logger.Info("CPU profiling", zap.String("dir", dir))
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(dir), profile.Quiet).Stop()
	}
	if viper.GetBool("perf") {
		return countInstructions(logger, f)
	}
	return f()
}
