package main

import (
	"bufio"
	"fmt"
	"os"
	"runtime"

	gojson "github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajitpratap0/colwire/pkg/column"
	"github.com/ajitpratap0/colwire/pkg/config"
	"github.com/ajitpratap0/colwire/pkg/logger"
)

var version = "0.1.0"

func main() {
	// Load .env file if it exists
	_ = godotenv.Load() // Ignore error if .env doesn't exist

	var (
		configPath string
		logLevel   string
	)

	root := &cobra.Command{
		Use:   "colwire",
		Short: "colwire - columnar wire format tool",
		Long: `colwire inspects, dumps and builds column container files in the
length-prefixed columnar wire format.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				if err := config.Load(configPath, cfg); err != nil {
					return err
				}
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}
			return logger.Init(logger.Config{
				Level:       cfg.Log.Level,
				Development: cfg.Log.Development,
				Encoding:    cfg.Log.Encoding,
			})
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML tool configuration")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override configured log level")

	// Version command
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("colwire v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	root.AddCommand(inspectCmd())
	root.AddCommand(dumpCmd())
	root.AddCommand(convertCmd())

	if err := root.Execute(); err != nil {
		logger.Error("command failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Show header and row statistics of a column container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := readContainer(args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Type:  %s\n", col.Type())
			fmt.Printf("Rows:  %d\n", col.Size())

			var total, maxRow int
			minRow := -1
			for i := 0; i < col.Size(); i++ {
				item, err := col.GetItem(i)
				if err != nil {
					return err
				}
				n := len(item.Data)
				total += n
				if n > maxRow {
					maxRow = n
				}
				if minRow < 0 || n < minRow {
					minRow = n
				}
			}
			if minRow < 0 {
				minRow = 0
			}

			fmt.Printf("Bytes: %d (min %d, max %d per row)\n", total, minRow, maxRow)
			return nil
		},
	}
}

func dumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <file>",
		Short: "Print every row of a column container as JSON lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := readContainer(args[0])
			if err != nil {
				return err
			}

			enc := gojson.NewEncoder(os.Stdout)
			for i := 0; i < col.Size(); i++ {
				item, err := col.GetItem(i)
				if err != nil {
					return err
				}
				line := map[string]interface{}{
					"row":   i,
					"value": item.String(),
				}
				if err := enc.Encode(line); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func convertCmd() *cobra.Command {
	var validate bool

	cmd := &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Build a column container from newline-delimited text",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer in.Close() //nolint:errcheck // Read-only file

			col := column.NewJSONColumn()
			scanner := bufio.NewScanner(in)
			scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
			for scanner.Scan() {
				if validate {
					if err := col.AppendJSON(scanner.Text()); err != nil {
						return err
					}
					continue
				}
				col.Append(scanner.Text())
			}
			if err := scanner.Err(); err != nil {
				return err
			}

			out, err := os.Create(args[1])
			if err != nil {
				return err
			}
			w := bufio.NewWriter(out)
			if err := column.WriteFile(w, col); err != nil {
				_ = out.Close()
				return err
			}
			if err := w.Flush(); err != nil {
				_ = out.Close()
				return err
			}
			if err := out.Close(); err != nil {
				return err
			}

			logger.Info("wrote column container",
				zap.String("file", args[1]),
				zap.Int("rows", col.Size()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&validate, "validate-json", false, "Reject lines that are not valid JSON")
	return cmd
}

func readContainer(path string) (column.Column, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck // Read-only file

	return column.ReadFile(bufio.NewReader(f))
}
