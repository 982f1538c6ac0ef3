package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/llogiq/cpp-demangle"
	"github.com/spf13/cobra"
)

var (
	outputFile string
	output     io.Writer
	format     string
	typesOnly  bool
)

var rootCmd = &cobra.Command{
	Use:   "cppfilt [symbol...]",
	Short: "Demangle Itanium C++ ABI symbol names",
	Long: `cppfilt demangles Itanium C++ ABI mangled names back into their
source-level C++ form.

With one or more symbol arguments, each is demangled and printed in turn.
With no arguments, symbols are read one per line from standard input,
matching the behavior of the standard c++filt tool.`,
	RunE: runRoot,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if outputFile != "" {
			f, err := os.Create(outputFile)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			output = f
		} else {
			output = os.Stdout
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if f, ok := output.(*os.File); ok && f != os.Stdout {
			f.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "write output to file instead of stdout")
	rootCmd.Flags().StringVar(&format, "format", "text", `output format: "text" or "json"`)
	rootCmd.Flags().BoolVar(&typesOnly, "types-only", false, "tolerate a bare <type> with no _Z/__Z prefix")
}

type result struct {
	Mangled   string `json:"mangled"`
	Demangled string `json:"demangled,omitempty"`
	Error     string `json:"error,omitempty"`
}

func runRoot(cmd *cobra.Command, args []string) error {
	symbols := args
	if len(symbols) == 0 {
		var err error
		symbols, err = readLines(os.Stdin)
		if err != nil {
			return err
		}
	}

	results := make([]result, 0, len(symbols))
	for _, sym := range symbols {
		results = append(results, demangleOne(sym))
	}

	switch format {
	case "json":
		return writeJSON(results)
	default:
		return writeText(results)
	}
}

func demangleOne(sym string) result {
	r := result{Mangled: sym}

	looksMangled := strings.HasPrefix(sym, "_Z") || strings.HasPrefix(sym, "__Z")
	if !looksMangled && !typesOnly {
		r.Demangled = sym
		return r
	}

	demangled, err := demangle.DemangleString(sym)
	if err != nil {
		r.Error = err.Error()
		r.Demangled = sym
		return r
	}
	r.Demangled = demangled
	return r
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return lines, nil
}

func writeText(results []result) error {
	for _, r := range results {
		if r.Error != "" {
			fmt.Fprintln(output, r.Mangled)
			continue
		}
		fmt.Fprintln(output, r.Demangled)
	}
	return nil
}

func writeJSON(results []result) error {
	enc := json.NewEncoder(output)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
