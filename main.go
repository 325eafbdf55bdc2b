package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/NickyBoy89/java2cpp/model"
	"github.com/NickyBoy89/java2cpp/parsing"
	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Version can be overridden at build time via -ldflags
var Version = "0.1.0-dev"

var rootCmd = &cobra.Command{
	Use:   "java2cpp",
	Short: "Translate Java classes into C++ headers",
	Long:  `java2cpp translates Java classes, including single inheritance and constructor chaining, into C++ class declarations`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		levelName, err := cmd.Root().PersistentFlags().GetString("log-level")
		if err != nil {
			return fmt.Errorf("failed to get log-level flag: %w", err)
		}
		level, err := log.ParseLevel(levelName)
		if err != nil {
			return err
		}
		log.SetLevel(level)
		log.SetOutput(os.Stderr)
		return nil
	},
	SilenceUsage: true,
}

var translateCmd = &cobra.Command{
	Use:   "translate [flags] <file.java>...",
	Short: "Translate Java source files into a single C++ header",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTranslate,
}

var checkCmd = &cobra.Command{
	Use:   "check <file.java>...",
	Short: "Report the classes that cannot be translated, without writing any output",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "java2cpp", color.New(color.FgGreen, color.Bold).Sprint(Version))
	},
}

func init() {
	rootCmd.Version = Version

	rootCmd.AddCommand(translateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize diagnostics (auto|on|off)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().Bool("dump-model", false, "dump the parsed classes to stderr")

	translateCmd.Flags().StringP("output", "o", "", "output file, defaults to stdout")
	translateCmd.Flags().String("format", "", "output format (text|msgpack), overrides the config")
	translateCmd.Flags().Int("jobs", -1, "max classes translated in parallel (0=GOMAXPROCS), overrides the config")
	translateCmd.Flags().String("config", "", "config file, defaults to ./java2cpp.toml if present")

	checkCmd.Flags().String("config", "", "config file, defaults to ./java2cpp.toml if present")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// loadConfig loads the config named by --config, then applies the flags that
// override it
func loadConfig(cmd *cobra.Command) (Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return Config{}, err
	}

	if format := cmd.Flags().Lookup("format"); format != nil && format.Changed {
		cfg.Format = format.Value.String()
	}
	if jobs := cmd.Flags().Lookup("jobs"); jobs != nil && jobs.Changed {
		cfg.Jobs, err = cmd.Flags().GetInt("jobs")
		if err != nil {
			return Config{}, fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadClasses parses every source file. Classes that could not be parsed are
// reported in the error list, and the others are returned in source order
func loadClasses(paths []string) ([]*model.ClassDecl, model.ErrorList, error) {
	var classes []*model.ClassDecl
	var errs model.ErrorList
	for _, path := range paths {
		source, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, err
		}
		file := &parsing.SourceFile{Name: path, Source: source}
		if err := file.ParseAST(); err != nil {
			return nil, nil, err
		}
		parsed, parseErrs := file.ParseClasses()

		log.WithFields(log.Fields{
			"file":    path,
			"classes": len(parsed),
			"errors":  len(parseErrs),
		}).Debug("Parsed file")

		classes = append(classes, parsed...)
		errs = append(errs, parseErrs...)
	}
	return classes, errs, nil
}

// translateFiles runs the whole pipeline on the given files, and returns the
// failures of every class, sorted by position
func translateFiles(cmd *cobra.Command, paths []string, cfg Config) (*Result, error) {
	classes, parseErrs, err := loadClasses(paths)
	if err != nil {
		return nil, err
	}

	dump, err := cmd.Root().PersistentFlags().GetBool("dump-model")
	if err != nil {
		return nil, fmt.Errorf("failed to get dump-model flag: %w", err)
	}
	if dump {
		config := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}
		config.Fdump(cmd.ErrOrStderr(), classes)
	}

	result, err := Translate(context.Background(), classes, cfg.Options())
	if err != nil {
		return nil, err
	}
	result.Errors = append(parseErrs, result.Errors...)
	result.Errors.Sort()
	return result, nil
}

// reportErrors prints the failures of a translation to stderr
func reportErrors(cmd *cobra.Command, errs model.ErrorList) error {
	if len(errs) == 0 {
		return nil
	}
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stderr))
	NewDiagnosticPrinter(useColor).Print(cmd.ErrOrStderr(), errs)
	return fmt.Errorf("%d classes failed to translate", len(errs))
}

func runTranslate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	result, err := translateFiles(cmd, args, cfg)
	if err != nil {
		return err
	}

	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}

	// The classes that did translate are still written when others failed
	if outputPath == "" {
		err = WriteResult(cmd.OutOrStdout(), result, cfg.Format)
	} else {
		var file *os.File
		file, err = os.Create(outputPath)
		if err != nil {
			return err
		}
		err = writeAndClose(file, result, cfg.Format)
	}
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return reportErrors(cmd, result.Errors)
}

// writeAndClose writes a result and closes the writer. A failed close is
// reported, since buffered output may not have reached the file
func writeAndClose(w io.WriteCloser, result *Result, format string) error {
	if err := WriteResult(w, result, format); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	result, err := translateFiles(cmd, args, cfg)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"translated": len(result.Units),
		"failed":     len(result.Errors),
	}).Info("Checked classes")
	return reportErrors(cmd, result.Errors)
}
