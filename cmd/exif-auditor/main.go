package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/f18m/photo-metadata-sanitizer-tools/internal/classifier"
	"github.com/f18m/photo-metadata-sanitizer-tools/internal/config"
	"github.com/f18m/photo-metadata-sanitizer-tools/internal/extractor"
	"github.com/f18m/photo-metadata-sanitizer-tools/internal/logger"
	"github.com/f18m/photo-metadata-sanitizer-tools/internal/probe"
	"github.com/f18m/photo-metadata-sanitizer-tools/internal/report"
	"github.com/f18m/photo-metadata-sanitizer-tools/internal/statistics"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	yearFlag  int
	outputDir string
	verbosity int
	quiet     bool
)

// rootCmd is the base command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "exif-auditor <base-path>",
	Short: "Detect media files whose creation-date metadata does not match their year directory",
	Long: `exif-auditor scans a directory tree organized in per-year subdirectories
(e.g. 2020/, 2021/, ...) and flags every picture and video whose embedded
creation-date metadata is missing, unparsable, or inconsistent with the year
implied by its containing directory.

The scan is strictly read-only and runs in a single pass. For each processed
year it writes two report files into the output directory:

  {year}_non_matching_files.txt   files whose creation date needs fixing
  {year}_failed_to_read_files.txt files that could not be read or parsed

These reports are consumed by the separate fix tool.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAudit(args[0])
	},
}

// checkCmd tests metadata extraction on a single file.
var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Check creation-date metadata of a single file",
	Long: `Runs the metadata extractor on one file and prints the outcome without
writing any report file. Useful for debugging extraction issues.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(args[0])
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase verbosity (repeatable)")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "suppress non-error output")

	rootCmd.Flags().IntVar(&yearFlag, "year", 0, "process only this year directory (e.g., 2020)")
	rootCmd.Flags().StringVar(&outputDir, "output-dir", "", "directory for the report files (default: working directory)")

	rootCmd.AddCommand(checkCmd)
}

// initConfig loads configuration file and environment variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.exif-auditor")
		viper.AddConfigPath("/etc/exif-auditor")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// yearDir couples a resolved directory path with its numeric year.
type yearDir struct {
	path string
	year int
}

// runAudit executes the directory audit.
func runAudit(basePath string) error {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if outputDir != "" {
		cfg.OutputDirectory = outputDir
	}

	log := setupLogger(cfg)

	if !dirExists(basePath) {
		return fmt.Errorf("base directory does not exist: %s", basePath)
	}

	dirs, err := resolveYearDirs(basePath, log)
	if err != nil {
		return err
	}
	if len(dirs) == 0 {
		log.Warnf("No 4-digit year directories found under %s", basePath)
		return nil
	}

	ext, closeExtractor := buildExtractor(cfg, log)
	defer closeExtractor()

	stats := statistics.NewStatistics()
	cls := classifier.New(log, ext, stats, cfg.IgnoredExtensions)
	writer := report.NewWriter(cfg.OutputDirectory, log)

	for _, dir := range dirs {
		logger.WithYear(log, dir.year).Infof("Processing directory %s", dir.path)

		rep, err := cls.Classify(dir.path, dir.year)
		if err != nil {
			return fmt.Errorf("classification failed for %s: %w", dir.path, err)
		}
		if err := writer.Write(dir.year, rep); err != nil {
			return fmt.Errorf("failed to write reports: %w", err)
		}
	}

	stats.Finalize()
	if !quiet {
		fmt.Println("\n" + stats.GetSummary())
		fmt.Println("\nAll processing done.")
		fmt.Println("Use the fix tool to correct the files listed in the generated report files.")
	}

	return nil
}

// runCheck runs the extractor on a single file and prints the outcome.
// No report file is written.
func runCheck(filePath string) error {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := setupLogger(cfg)

	if !fileExists(filePath) {
		return fmt.Errorf("file does not exist: %s", filePath)
	}

	ext, closeExtractor := buildExtractor(cfg, log)
	defer closeExtractor()

	outcome := ext.Extract(filePath)
	switch outcome.Result {
	case extractor.ValidCreationTimestamp:
		fmt.Printf("The file %s has a valid creation timestamp: %s (year is %d)\n",
			filePath, outcome.Timestamp.Format("2006-01-02 15:04:05"), outcome.Timestamp.Year())
	case extractor.FailedToRead:
		fmt.Printf("Error: failed to read the file %s\n", filePath)
	case extractor.NoMetadata:
		fmt.Printf("Error: file %s does not have any creation-date metadata tag\n", filePath)
	case extractor.InvalidTimestampFormat:
		fmt.Printf("Error: file %s has an invalid timestamp format in its creation-date metadata tag\n", filePath)
	}

	return nil
}

// resolveYearDirs returns the year directories to process, in sorted
// order. With --year set, only that directory is returned and it must
// exist.
func resolveYearDirs(basePath string, log *logrus.Logger) ([]yearDir, error) {
	if yearFlag != 0 {
		chosen := filepath.Join(basePath, strconv.Itoa(yearFlag))
		if !dirExists(chosen) {
			return nil, fmt.Errorf("directory for year %d does not exist: %s", yearFlag, chosen)
		}
		log.Infof("Processing only year %d", yearFlag)
		return []yearDir{{path: chosen, year: yearFlag}}, nil
	}

	entries, err := os.ReadDir(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to list base directory %s: %w", basePath, err)
	}

	var dirs []yearDir
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		year, ok := parseYearName(name)
		if !ok {
			log.Infof("Skipping non-year directory %s", name)
			continue
		}
		dirs = append(dirs, yearDir{path: filepath.Join(basePath, name), year: year})
	}
	// os.ReadDir returns entries sorted by name, which for 4-digit
	// names is also numeric order.
	return dirs, nil
}

// parseYearName reports whether name is exactly four digits and
// returns its numeric value.
func parseYearName(name string) (int, bool) {
	if len(name) != 4 {
		return 0, false
	}
	for _, r := range name {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	year, err := strconv.Atoi(name)
	if err != nil {
		return 0, false
	}
	return year, true
}

// buildExtractor wires the metadata extractor with its image sources
// and the container prober. The returned close function shuts down the
// exiftool process.
func buildExtractor(cfg *config.Config, log *logrus.Logger) (*extractor.MetadataExtractor, func()) {
	prio := extractor.NewTagPriority()
	exiftoolSource := extractor.NewExiftoolSource(log, prio)
	sources := []extractor.ImageMetadataSource{
		extractor.NewGoexifSource(log, prio),
		exiftoolSource,
	}

	ext := extractor.NewMetadataExtractor(
		log,
		prio,
		sources,
		probe.New(),
		cfg.ImageExtensions,
		cfg.VideoExtensions,
	)
	return ext, exiftoolSource.Close
}

// setupLogger configures and returns a logger. The --verbose count
// raises the level to debug (1) or trace (2+); --quiet drops it to
// error.
func setupLogger(cfg *config.Config) *logrus.Logger {
	loggerCfg := logger.LoggerConfig{
		Level:      cfg.Logging.Level,
		FilePath:   cfg.Logging.FilePath,
		MaxSize:    cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAge:     cfg.Logging.MaxAge,
		Compress:   cfg.Logging.Compress,
		Console:    !quiet,
	}

	switch {
	case quiet:
		loggerCfg.Level = "error"
	case verbosity == 1:
		loggerCfg.Level = "debug"
	case verbosity >= 2:
		loggerCfg.Level = "trace"
	}

	log, err := logger.NewLogger(loggerCfg)
	if err != nil {
		log = logrus.New()
		log.SetLevel(logrus.InfoLevel)
	}

	return log
}

// fileExists returns true if the given path exists and is a file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// dirExists returns true if the given path exists and is a directory.
func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
