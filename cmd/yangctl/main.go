// Command yangctl parses and compiles YANG modules, and exercises the
// feature-enable/disable engine from the command line.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/coreyang/yangcore/internal/feature"
	"github.com/coreyang/yangcore/internal/telemetry"
	"github.com/coreyang/yangcore/yang"
	"github.com/coreyang/yangcore/yangconfig"
)

var (
	configPath  string
	logLevel    string
	searchPaths []string
	cfg         = yangconfig.Default()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "yangctl",
		Short: "Parse, compile, and exercise feature sets of YANG modules",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				loaded, err := yangconfig.Load(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if logLevel == "" {
				logLevel = cfg.LogLevel
			}
			if len(searchPaths) == 0 {
				searchPaths = cfg.SearchPath
			}
			telemetry.SetLevel(logLevel)
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a yangconfig YAML file")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn, or error")
	cmd.PersistentFlags().StringSliceVar(&searchPaths, "search-path", nil, "directory to search for imported modules (repeatable)")

	cmd.AddCommand(newParseCmd())
	cmd.AddCommand(newCompileCmd())
	cmd.AddCommand(newFeaturesCmd())
	return cmd
}

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <module.yang>",
		Short: "Parse a module and print its top-level statement inventory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			parsed, err := yang.ParseString(string(src))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "module %s\n", parsed.Name)
			fmt.Fprintf(cmd.OutOrStdout(), "  namespace: %s\n", parsed.Namespace)
			fmt.Fprintf(cmd.OutOrStdout(), "  prefix:    %s\n", parsed.Prefix)
			fmt.Fprintf(cmd.OutOrStdout(), "  typedefs:  %d\n", len(parsed.Typedefs))
			fmt.Fprintf(cmd.OutOrStdout(), "  features:  %d\n", len(parsed.Features))
			fmt.Fprintf(cmd.OutOrStdout(), "  identities: %d\n", len(parsed.Identities))
			fmt.Fprintf(cmd.OutOrStdout(), "  groupings: %d\n", len(parsed.Groupings))
			fmt.Fprintf(cmd.OutOrStdout(), "  top-level data nodes: %d\n", len(parsed.Children))
			return nil
		},
	}
}

func newCompileCmd() *cobra.Command {
	var implement bool
	cmd := &cobra.Command{
		Use:   "compile <module.yang>",
		Short: "Compile a module and its imports, reporting diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, src, err := newContextForFile(args[0])
			if err != nil {
				return err
			}
			mod, err := ctx.CompileString(src, implement)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s@%s compiled (implemented=%v)\n", mod.Name, mod.Revision, mod.Implemented)
			fmt.Fprintf(cmd.OutOrStdout(), "  features: %d\n", len(mod.Compiled.Features))
			fmt.Fprintf(cmd.OutOrStdout(), "  identities: %d\n", len(mod.Compiled.Identities))
			return nil
		},
	}
	cmd.Flags().BoolVar(&implement, "implement", false, "mark the module implemented, not just imported")
	return cmd
}

func newFeaturesCmd() *cobra.Command {
	var enable, disable []string
	cmd := &cobra.Command{
		Use:   "features <module.yang>",
		Short: "Compile a module, apply feature changes, and print the resulting state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, src, err := newContextForFile(args[0])
			if err != nil {
				return err
			}
			mod, err := ctx.CompileString(src, true)
			if err != nil {
				return err
			}
			for _, name := range disable {
				if err := feature.Change(mod.Compiled.Features, name, false); err != nil {
					return err
				}
			}
			for _, name := range enable {
				if err := feature.Change(mod.Compiled.Features, name, true); err != nil {
					return err
				}
			}
			for _, f := range mod.Compiled.Features {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", f.Name, f.Enabled)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&enable, "enable", nil, "feature name to enable, or \"*\" for every feature (repeatable)")
	cmd.Flags().StringSliceVar(&disable, "disable", nil, "feature name to disable (repeatable)")
	return cmd
}

func newContextForFile(path string) (*yang.Context, string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	dirs := append([]string{filepath.Dir(path)}, searchPaths...)
	if cfg.SearchCWD {
		if cwd, err := os.Getwd(); err == nil {
			dirs = append(dirs, cwd)
		}
	}
	loader := yang.NewFSLoader(os.DirFS("/"), stripLeadingSlash(dirs)...)
	loader.SearchCWD = false // CWD, if wanted, is already absolute in dirs above
	ctx := yang.NewContext(loader)
	ctx.FreeSource = cfg.FreeSource
	return ctx, string(src), nil
}

func stripLeadingSlash(dirs []string) []string {
	out := make([]string, len(dirs))
	for i, d := range dirs {
		abs, err := filepath.Abs(d)
		if err != nil {
			out[i] = d
			continue
		}
		out[i] = abs[1:] // os.DirFS("/") roots at "/", fs.FS paths never start with "/"
	}
	return out
}
