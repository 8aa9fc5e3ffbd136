// Command corefmt is a small demo CLI exercising the format engine, the
// context, and the allocators end to end: "corefmt run" renders a format
// string against its remaining arguments, "corefmt bench" burst-allocates
// against the temporary arena and reports its FREE_ALL growth stats.
//
// Grounded on saferwall-pe's cobra-based manifest shape (root command +
// subcommands, persistent flags) with yaml.v3 wired in for an optional
// context-override config file, following the ambient stack this module
// carries throughout (golang/glog for diagnostics, testify in tests only).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/light-std/ls/alloc"
	"github.com/light-std/ls/ctx"
	"github.com/light-std/ls/format"
)

// configOverrides is the optional YAML document loaded via --config,
// applied on top of ctx.New()'s defaults.
type configOverrides struct {
	Locale           string `yaml:"locale"`
	DisableANSICodes bool   `yaml:"disable_ansi_codes"`
	AllocAlignment   int    `yaml:"alloc_alignment"`
}

func loadOverrides(path string) (configOverrides, error) {
	var cfg configOverrides
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func buildContext(cfg configOverrides) *ctx.Context {
	c := ctx.New()
	c.FmtDisableANSICodes = cfg.DisableANSICodes
	if cfg.AllocAlignment > 0 {
		c.AllocAlignment = cfg.AllocAlignment
	}
	switch cfg.Locale {
	case "turkic":
		c.Locale = ctx.LocaleTurkic
	default:
		c.Locale = ctx.LocaleDefault
	}
	return c
}

func main() {
	var configPath string

	root := &cobra.Command{
		Use:   "corefmt",
		Short: "Demo CLI for the light-std-style format engine",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "optional YAML context overrides")

	runCmd := &cobra.Command{
		Use:   "run <format-string> [args...]",
		Short: "Render a format string against its arguments",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadOverrides(configPath)
			if err != nil {
				return err
			}
			c := buildContext(cfg)

			formatArgs := make([]any, len(args)-1)
			for i, a := range args[1:] {
				formatArgs[i] = a
			}
			out := format.Sprint(c, args[0], formatArgs...)
			fmt.Println(out.String())
			return nil
		},
	}

	var benchAllocs int
	var benchSize int
	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "Burst-allocate against the temporary arena and print FREE_ALL stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadOverrides(configPath)
			if err != nil {
				return err
			}
			c := buildContext(cfg)

			for i := 0; i < benchAllocs; i++ {
				alloc.Allocate(c.TempAlloc, int64(benchSize), 0)
			}
			fmt.Printf("pages: %d\n", c.TempData.PageCount())
			fmt.Printf("base reserved: %d bytes\n", c.TempData.BaseReserved())
			fmt.Printf("total used: %d bytes\n", c.TempData.TotalUsed())

			ok := alloc.FreeAll(c.TempAlloc, 0)
			fmt.Printf("FREE_ALL supported: %v\n", ok)
			fmt.Printf("pages after FREE_ALL: %d\n", c.TempData.PageCount())
			return nil
		},
	}
	benchCmd.Flags().IntVar(&benchAllocs, "allocs", 10000, "number of allocations to burst")
	benchCmd.Flags().IntVar(&benchSize, "size", 64, "bytes per allocation")

	root.AddCommand(runCmd, benchCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
