package cmd

import (
	"fmt"
	"os"
	"sync"
	"text/tabwriter"

	"github.com/kozaktomas/imagehash/internal/config"
	"github.com/kozaktomas/imagehash/internal/constants"
	"github.com/kozaktomas/imagehash/internal/imghash"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var hashCmd = &cobra.Command{
	Use:   "hash [files...]",
	Short: "Compute perceptual hashes of image files",
	Long: `Compute the perceptual hash of one or more image files.

Examples:
  # Gradient hash (dHash) of a single image
  imagehash hash photo.jpg

  # Classic pHash: median algorithm with DCT preprocessing
  imagehash hash --preset phash photo.jpg

  # 16x16 blockhash, MSB-first packing, JSON output
  imagehash hash --alg blockhash --size 16 --msb --json *.png

  # Hash a large batch with 10 workers
  imagehash hash --concurrency 10 photos/*.jpg`,
	Args: cobra.MinimumNArgs(1),
	RunE: runHash,
}

func init() {
	rootCmd.AddCommand(hashCmd)

	addHasherFlags(hashCmd)
	hashCmd.Flags().Bool("json", false, "Output as JSON")
	hashCmd.Flags().Bool("base64", false, "Include base64 encoding in the output")
	hashCmd.Flags().Int("concurrency", constants.DefaultConcurrency, "Number of parallel workers")
}

func runHash(cmd *cobra.Command, args []string) error {
	jsonOutput := mustGetBool(cmd, "json")
	withBase64 := mustGetBool(cmd, "base64")
	concurrency := mustGetInt(cmd, "concurrency")

	cfg := config.Load()
	hasher, err := buildHasher(cmd, cfg)
	if err != nil {
		return err
	}

	bar := newHashProgressBar(len(args), jsonOutput)
	results, errs := hashFilesConcurrently(hasher, args, concurrency, withBase64, bar)

	if jsonOutput {
		if err := outputJSON(results); err != nil {
			return err
		}
	} else {
		outputHashTable(results)
	}

	for _, err := range errs {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if len(results) == 0 && len(errs) > 0 {
		return fmt.Errorf("all %d files failed", len(errs))
	}
	return nil
}

// hashFilesConcurrently hashes files with workers and returns results in
// input order plus the errors encountered.
func hashFilesConcurrently(hasher *imghash.Hasher, files []string, concurrency int, withBase64 bool, bar *progressbar.ProgressBar) ([]HashResult, []error) {
	results := make([]HashResult, len(files))
	ok := make([]bool, len(files))
	var errs []error
	var mu sync.Mutex
	sem := make(chan struct{}, max(concurrency, 1))
	var wg sync.WaitGroup

	for i := range files {
		wg.Add(1)
		go func(idx int, path string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			result, err := hashFile(hasher, path, withBase64)
			mu.Lock()
			if err != nil {
				errs = append(errs, err)
			} else {
				results[idx] = result
				ok[idx] = true
			}
			mu.Unlock()

			if bar != nil {
				bar.Add(1)
			}
		}(i, files[i])
	}
	wg.Wait()

	valid := make([]HashResult, 0, len(results))
	for i := range results {
		if ok[i] {
			valid = append(valid, results[i])
		}
	}
	return valid, errs
}

// newHashProgressBar creates a progress bar for hash computation, or nil
// for single files and JSON output.
func newHashProgressBar(count int, jsonOutput bool) *progressbar.ProgressBar {
	if jsonOutput || count < 2 {
		return nil
	}
	return progressbar.NewOptions(count,
		progressbar.OptionSetDescription("Computing hashes"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("images"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
	)
}

func outputHashTable(results []HashResult) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tALG\tSIZE\tHASH")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%s\n", r.File, r.Alg, r.Width, r.Height, r.Hash)
	}
	w.Flush()
}
