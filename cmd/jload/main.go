// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

// Program jload checks and reprints JSON documents.
package main

import (
	"fmt"
	"os"

	"github.com/creachadair/jload"
	"github.com/creachadair/jload/ast"
	"github.com/spf13/cobra"
)

func main() {
	var anyRoot, rejectDup, ignoreTrailing bool

	opts := func() jload.Options {
		var o jload.Options
		if anyRoot {
			o |= jload.DecodeAny
		}
		if rejectDup {
			o |= jload.RejectDuplicates
		}
		if ignoreTrailing {
			o |= jload.DisableEOFCheck
		}
		return o
	}

	rootCmd := &cobra.Command{
		Use:           "jload",
		Short:         "Check and reprint JSON documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVar(&anyRoot, "any", false,
		"Accept any value at the document root, not only an object or array")
	rootCmd.PersistentFlags().BoolVar(&rejectDup, "reject-duplicates", false,
		"Report an error for duplicate object keys")
	rootCmd.PersistentFlags().BoolVar(&ignoreTrailing, "ignore-trailing", false,
		"Ignore trailing input after the document")

	checkCmd := &cobra.Command{
		Use:   "check [file...]",
		Short: "Verify that each input is a valid JSON document",
		RunE: func(cmd *cobra.Command, args []string) error {
			return eachInput(args, opts(), func(ast.Value) error { return nil })
		},
	}

	printCmd := &cobra.Command{
		Use:   "print [file...]",
		Short: "Decode each input and reprint it as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return eachInput(args, opts(), func(v ast.Value) error {
				_, err := fmt.Println(v.JSON())
				return err
			})
		},
	}

	rootCmd.AddCommand(checkCmd, printCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// eachInput decodes each named file, or stdin if no files are named, and
// hands each decoded document to f. The first failure ends the walk.
func eachInput(paths []string, opts jload.Options, f func(ast.Value) error) error {
	if len(paths) == 0 {
		v, err := jload.Decode(os.Stdin, opts)
		if err != nil {
			return err
		}
		return f(v)
	}
	for _, path := range paths {
		v, err := jload.DecodeFile(path, opts)
		if err != nil {
			return err
		}
		if err := f(v); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}
