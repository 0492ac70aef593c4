package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "imagehash",
	Short: "A CLI tool for computing and comparing perceptual image hashes",
	Long: `Imagehash computes perceptual hashes of images: compact fingerprints
where visually similar images end up within a small Hamming distance
of each other. It supports the mean, median, gradient, vertical
gradient, double gradient and blockhash algorithms, optional Gaussian
and DCT preprocessing, and both LSB-first and MSB-first bit packing.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
