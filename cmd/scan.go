package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/semanticdata/duplicate-finder/internal/export"
	"github.com/semanticdata/duplicate-finder/internal/rcfile"
	"github.com/semanticdata/duplicate-finder/internal/scanner"
	"github.com/semanticdata/duplicate-finder/internal/tui"
	"github.com/semanticdata/duplicate-finder/pkg/sizeutil"
)

var (
	scanExcludeDirs    []string
	scanExcludeExts    []string
	scanMinSize        string
	scanOutput         string
	scanFormat         string
	scanAlgo           string
	scanWorkers        int
	scanDryRun         bool
	scanVerbose        bool
	scanIncludeDotDirs bool
	scanPartial        bool
)

var scanCmd = &cobra.Command{
	Use:   "scan [flags] <directory>",
	Short: "Scan a directory tree for duplicate files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := args[0]
		applyRcDefaults(cmd, root)

		format, err := export.ParseFormat(scanFormat)
		if err != nil {
			return err
		}

		cfg, err := scanner.NewScanConfig(root, scanExcludeDirs, scanExcludeExts, scanMinSize, scanIncludeDotDirs, scanVerbose)
		if err != nil {
			return err
		}

		printBanner(cfg)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		opts := scanner.Options{
			Algorithm:       scanner.Algorithm(scanAlgo),
			Workers:         scanWorkers,
			PartialOnCancel: scanPartial,
		}
		if scanVerbose {
			opts.Events = verboseEvents(os.Stderr)
		}

		if scanDryRun {
			return runDryRun(ctx, cfg, opts)
		}

		started := time.Now()

		scanCtx, cancelScan := context.WithCancel(ctx)
		defer cancelScan()

		var updates chan scanner.ProgressUpdate
		uiDone := make(chan struct{})
		if !scanVerbose {
			updates = make(chan scanner.ProgressUpdate, 64)
			opts.Updates = updates
			program := tea.NewProgram(tui.NewModel(updates))
			go func() {
				// Bubbletea holds the terminal in raw mode, so Ctrl+C
				// reaches the UI instead of arriving as SIGINT. Any UI
				// exit before the scan finishes counts as an interrupt.
				_, _ = program.Run()
				cancelScan()
				close(uiDone)
			}()
		}

		report, err := scanner.Run(scanCtx, cfg, opts)
		if updates != nil {
			// Stop the progress UI before printing results.
			close(updates)
			<-uiDone
		}
		if err != nil {
			return err
		}

		printReport(report, time.Since(started))

		if scanOutput != "" {
			if err := export.WriteFile(scanOutput, format, report); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "\nResults exported to %s in %s format\n", accentStyle.Render(scanOutput), scanFormat)
		}
		return nil
	},
}

func init() {
	scanCmd.Flags().StringArrayVarP(&scanExcludeDirs, "exclude-dir", "e", nil, "directory to exclude (repeatable)")
	scanCmd.Flags().StringArrayVarP(&scanExcludeExts, "exclude-ext", "x", nil, "file extension to exclude (repeatable)")
	scanCmd.Flags().StringVarP(&scanMinSize, "min-size", "m", "0B", "minimum file size to consider (e.g. 10KB, 5MB)")
	scanCmd.Flags().StringVarP(&scanOutput, "output", "o", "", "export results to a file")
	scanCmd.Flags().Lookup("output").NoOptDefVal = "duplicates.txt"
	scanCmd.Flags().StringVar(&scanFormat, "format", "txt", "output format: txt, json, or csv")
	scanCmd.Flags().StringVar(&scanAlgo, "algo", "md5", "content hash algorithm: md5 or xx64")
	scanCmd.Flags().IntVar(&scanWorkers, "workers", 0, "hashing workers (0 = number of CPUs)")
	scanCmd.Flags().BoolVar(&scanDryRun, "dry-run", false, "estimate traversal cost without hashing anything")
	scanCmd.Flags().BoolVarP(&scanVerbose, "verbose", "v", false, "log traversal and hashing progress instead of the progress bar")
	scanCmd.Flags().BoolVar(&scanIncludeDotDirs, "include-dot-dirs", false, "descend into directories starting with a dot (like .git)")
	scanCmd.Flags().BoolVar(&scanPartial, "partial", false, "emit a best-effort report when interrupted")

	rootCmd.AddCommand(scanCmd)
}

// applyRcDefaults fills in flag values from a .dupfinder.ini, if one
// exists. Flags set on the command line always win.
func applyRcDefaults(cmd *cobra.Command, root string) {
	defaults, err := rcfile.Load(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return
	}
	if defaults == nil {
		return
	}

	flags := cmd.Flags()
	if !flags.Changed("min-size") && defaults.MinSize != "" {
		scanMinSize = defaults.MinSize
	}
	if !flags.Changed("exclude-dir") && len(defaults.ExcludeDirs) > 0 {
		scanExcludeDirs = defaults.ExcludeDirs
	}
	if !flags.Changed("exclude-ext") && len(defaults.ExcludeExts) > 0 {
		scanExcludeExts = defaults.ExcludeExts
	}
	if !flags.Changed("include-dot-dirs") && defaults.IncludeDotDirs {
		scanIncludeDotDirs = true
	}
	if !flags.Changed("format") && defaults.Format != "" {
		scanFormat = defaults.Format
	}
	if !flags.Changed("algo") && defaults.Algorithm != "" {
		scanAlgo = defaults.Algorithm
	}
	if !flags.Changed("workers") && defaults.Workers > 0 {
		scanWorkers = defaults.Workers
	}
}

func runDryRun(ctx context.Context, cfg *scanner.ScanConfig, opts scanner.Options) error {
	fmt.Fprintln(os.Stdout, warnStyle.Render("DRY RUN")+" - estimating traversal cost without hashing")

	est, err := scanner.DryRun(ctx, cfg, opts)
	if err != nil {
		return err
	}

	rows := []tui.SummaryRow{
		{Label: "Directories visited", Value: fmt.Sprintf("%d", est.Dirs)},
		{Label: "Files matching filters", Value: fmt.Sprintf("%d", est.Files)},
		{Label: "Total size", Value: sizeutil.FormatSize(est.TotalBytes)},
		{Label: "Files that would be hashed", Value: fmt.Sprintf("%d", est.Candidates)},
	}
	fmt.Fprintln(os.Stdout, tui.RenderSummary(rows))
	printWarnings(est.Warnings)
	return nil
}

func printBanner(cfg *scanner.ScanConfig) {
	fmt.Fprintf(os.Stdout, "%s %s\n", dimStyle.Render("Scanning:"), accentStyle.Render(cfg.Root))
	if len(cfg.ExcludeDirs) > 0 {
		fmt.Fprintf(os.Stdout, "%s %v\n", dimStyle.Render("Excluding directories:"), cfg.ExcludeDirs)
	}
	if len(cfg.ExcludeExts) > 0 {
		exts := make([]string, 0, len(cfg.ExcludeExts))
		for ext := range cfg.ExcludeExts {
			exts = append(exts, ext)
		}
		sort.Strings(exts)
		fmt.Fprintf(os.Stdout, "%s %v\n", dimStyle.Render("Excluding extensions:"), exts)
	}
	if cfg.MinSize > 0 {
		fmt.Fprintf(os.Stdout, "%s %s\n", dimStyle.Render("Minimum file size:"), sizeutil.FormatSize(cfg.MinSize))
	}
}

func printReport(report *scanner.Report, elapsed time.Duration) {
	if report.Partial {
		fmt.Fprintln(os.Stdout, warnStyle.Render("Scan interrupted - results are partial."))
	}

	if len(report.Sets) == 0 {
		fmt.Fprintln(os.Stdout, successStyle.Render("No duplicate files found."))
		printWarnings(report.Warnings)
		return
	}

	for _, set := range report.Sets {
		fmt.Fprintf(os.Stdout, "\n%s %s\n",
			warnStyle.Render("Duplicate set"),
			dimStyle.Render(fmt.Sprintf("(size: %s)", sizeutil.FormatSize(set.Size))))
		for _, path := range set.Files {
			fmt.Fprintf(os.Stdout, "  %s %s\n", dimStyle.Render("-"), pathStyle.Render(path))
		}
	}

	rows := []tui.SummaryRow{
		{Label: "Scan duration", Value: elapsed.Round(10 * time.Millisecond).String()},
		{Label: "Files scanned", Value: fmt.Sprintf("%d", report.TotalFiles)},
		{Label: "Total size", Value: sizeutil.FormatSize(report.TotalBytes)},
		{Label: "Duplicate sets", Value: fmt.Sprintf("%d", len(report.Sets))},
		{Label: "Duplicate files", Value: fmt.Sprintf("%d", report.DuplicateFiles)},
		{Label: "Space used by duplicates", Value: sizeutil.FormatSize(report.DuplicateBytes)},
		{Label: "Potential savings", Value: sizeutil.FormatSize(report.Savings)},
	}
	fmt.Fprintln(os.Stdout)
	fmt.Fprintln(os.Stdout, tui.RenderSummary(rows))
	printWarnings(report.Warnings)
}

func printWarnings(warnings []scanner.Warning) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintf(os.Stderr, "\n%s\n", warnStyle.Render(fmt.Sprintf("%d path(s) could not be read:", len(warnings))))
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "  %s\n", dimStyle.Render(w.Err.Error()))
	}
}

// verboseEvents logs traversal and hashing progress to w. Hash callbacks
// fire concurrently from every worker, so writes go through one mutex to
// keep lines whole.
func verboseEvents(w io.Writer) *scanner.Events {
	var mu sync.Mutex
	logf := func(format string, args ...any) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(w, format, args...)
	}

	return &scanner.Events{
		DirVisited: func(path string) {
			logf("%s %s\n", dimStyle.Render("dir"), path)
		},
		DirSkipped: func(path string) {
			logf("%s %s\n", dimStyle.Render("skip"), path)
		},
		FileHashed: func(path, digest string) {
			logf("%s %s %s\n", dimStyle.Render("hash"), path, dimStyle.Render(digest))
		},
		WarningSeen: func(warning scanner.Warning) {
			logf("%s %v\n", warnStyle.Render("warn"), warning.Err)
		},
	}
}

var (
	accentStyle  = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorAccent)
	pathStyle    = lipgloss.NewStyle().Foreground(tui.ColorInk)
	successStyle = lipgloss.NewStyle().Foreground(tui.ColorSuccess)
	warnStyle    = lipgloss.NewStyle().Foreground(tui.ColorWarn)
	dimStyle     = lipgloss.NewStyle().Foreground(tui.ColorDim)
)
