package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dshills/ropecut/internal/app"
	"github.com/dshills/ropecut/internal/script"
)

func createRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Apply a judge-format script from a file or stdin",
		Long: `run reads the judge format: the text on the first line, the number of
moves n on the second, then n lines "i j k". It prints the final text.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRunner(cmd)
			if err != nil {
				return err
			}

			if len(args) == 1 {
				_, err = r.RunFileAs(cmd.Context(), script.FormatJudge, args[0])
				return err
			}

			in := cmd.InOrStdin()
			if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
				fmt.Fprintln(cmd.ErrOrStderr(), "usage: ropecut run script.txt, or pipe a script: ropecut run < script.txt")
				return app.ErrInteractiveInput
			}
			_, err = r.RunReader(cmd.Context(), script.FormatJudge, "<stdin>", in)
			return err
		},
	}
	return cmd
}

func createApplyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply <script>",
		Short: "Apply a script, choosing the format by extension",
		Long: `apply reads .txt (judge), .toml, .yaml, .json or .lua scripts and
prints the final text.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRunner(cmd)
			if err != nil {
				return err
			}
			_, err = r.RunFile(cmd.Context(), args[0])
			return err
		},
	}
	return cmd
}

func createWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <script>",
		Short: "Apply a script now and again every time it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRunner(cmd)
			if err != nil {
				return err
			}
			return r.Watch(cmd.Context(), args[0])
		},
	}
	return cmd
}

func createConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			data, err := cfg.MarshalTOML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	return cmd
}

func createVersionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ropecut %s\n", version)
			fmt.Fprintf(out, "Commit: %s\n", commit)
			fmt.Fprintf(out, "Built: %s\n", date)
			fmt.Fprintf(out, "Go: %s\n", runtime.Version())
		},
	}
	return cmd
}
