package cmd

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/kozaktomas/imagehash/internal/config"
	"github.com/kozaktomas/imagehash/internal/constants"
	"github.com/spf13/cobra"
)

var dedupeCmd = &cobra.Command{
	Use:   "dedupe <directory>",
	Short: "Find near-duplicate images in a directory",
	Long: `Hash every image in a directory and group files whose pairwise
Hamming distance is within the threshold.

Examples:
  # Find near-duplicates with the default gradient hash
  imagehash dedupe ~/Pictures

  # Stricter matching with pHash, searching subdirectories
  imagehash dedupe --preset phash --threshold 4 --recursive ~/Pictures`,
	Args: cobra.ExactArgs(1),
	RunE: runDedupe,
}

func init() {
	rootCmd.AddCommand(dedupeCmd)

	addHasherFlags(dedupeCmd)
	dedupeCmd.Flags().Int("threshold", 0, "Maximum distance within a duplicate group (0 = config default)")
	dedupeCmd.Flags().Bool("recursive", false, "Search subdirectories")
	dedupeCmd.Flags().Bool("json", false, "Output as JSON")
	dedupeCmd.Flags().Int("concurrency", constants.DefaultConcurrency, "Number of parallel workers")
}

// DuplicateGroup is one cluster of near-duplicate files.
type DuplicateGroup struct {
	Files []string `json:"files"`
}

// DedupeResult is the output of the dedupe command.
type DedupeResult struct {
	Scanned int              `json:"scanned"`
	Groups  []DuplicateGroup `json:"groups"`
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".tiff": true,
	".webp": true,
}

func runDedupe(cmd *cobra.Command, args []string) error {
	jsonOutput := mustGetBool(cmd, "json")
	recursive := mustGetBool(cmd, "recursive")
	concurrency := mustGetInt(cmd, "concurrency")

	cfg := config.Load()
	hasher, err := buildHasher(cmd, cfg)
	if err != nil {
		return err
	}

	threshold := mustGetInt(cmd, "threshold")
	if threshold <= 0 {
		threshold = cfg.Hash.Threshold
	}

	files, err := collectImageFiles(args[0], recursive)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no image files found in %s", args[0])
	}

	bar := newHashProgressBar(len(files), jsonOutput)
	results, errs := hashFilesConcurrently(hasher, files, concurrency, false, bar)
	for _, err := range errs {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	groups := groupDuplicates(results, threshold)

	output := DedupeResult{Scanned: len(results), Groups: groups}
	if jsonOutput {
		return outputJSON(output)
	}

	if len(groups) == 0 {
		fmt.Printf("No near-duplicates among %d images (threshold %d)\n", len(results), threshold)
		return nil
	}
	fmt.Printf("Found %d duplicate groups among %d images (threshold %d):\n", len(groups), len(results), threshold)
	for i, group := range groups {
		fmt.Printf("\nGroup %d:\n", i+1)
		for _, file := range group.Files {
			fmt.Printf("  %s\n", file)
		}
	}
	return nil
}

// collectImageFiles lists image files in a directory, optionally recursing
// into subdirectories.
func collectImageFiles(dir string, recursive bool) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if !recursive && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if imageExtensions[strings.ToLower(filepath.Ext(path))] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	return files, nil
}

// groupDuplicates clusters hashes by union-find over all pairs within the
// threshold: transitive near-duplicates land in the same group.
func groupDuplicates(results []HashResult, threshold int) []DuplicateGroup {
	parent := make([]int, len(results))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}

	for i := 0; i < len(results); i++ {
		for j := i + 1; j < len(results); j++ {
			dist, err := results[i].Raw.Distance(results[j].Raw)
			if err != nil {
				// Mixed hash sizes cannot happen within one run.
				continue
			}
			if dist <= threshold {
				parent[find(i)] = find(j)
			}
		}
	}

	members := make(map[int][]string)
	for i := range results {
		root := find(i)
		members[root] = append(members[root], results[i].File)
	}

	var groups []DuplicateGroup
	for i := range results {
		if find(i) == i && len(members[i]) > 1 {
			groups = append(groups, DuplicateGroup{Files: members[i]})
		}
	}
	return groups
}
