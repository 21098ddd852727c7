// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/hokaccha/go-prettyjson"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/ocsp"
)

const fileMode = 0o644

var (
	// Limit query parameter.
	Limit uint64 = 10
	// Offset query parameter.
	Offset uint64 = 0
	// ConfigPath config path parameter.
	ConfigPath string = ""
	// RawOutput raw output mode.
	RawOutput bool = false
	// RevokePredecessor revokes the renewed certificate's predecessor.
	RevokePredecessor bool = false
)

func logJSONCmd(cmd cobra.Command, iList ...any) {
	for _, i := range iList {
		m, err := json.Marshal(i)
		if err != nil {
			logErrorCmd(cmd, err)
			return
		}

		pj, err := prettyjson.Format(m)
		if err != nil {
			logErrorCmd(cmd, err)
			return
		}

		fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n\n", string(pj))
	}
}

func logUsageCmd(cmd cobra.Command, u string) {
	fmt.Fprintf(cmd.OutOrStdout(), color.YellowString("\nusage: %s\n\n"), u)
}

func logErrorCmd(cmd cobra.Command, err error) {
	boldRed := color.New(color.FgRed, color.Bold)
	boldRed.Fprintf(cmd.ErrOrStderr(), "\nerror: ")

	fmt.Fprintf(cmd.ErrOrStderr(), "%s\n\n", color.RedString(err.Error()))
}

func logOKCmd(cmd cobra.Command) {
	fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n\n", color.BlueString("ok"))
}

func logOCSPCmd(cmd cobra.Command, res *ocsp.Response) {
	status := "unknown"
	switch res.Status {
	case ocsp.Good:
		status = "good"
	case ocsp.Revoked:
		status = "revoked"
	}
	logJSONCmd(cmd, map[string]any{
		"serial_number": res.SerialNumber.String(),
		"status":        status,
		"produced_at":   res.ProducedAt,
		"this_update":   res.ThisUpdate,
		"next_update":   res.NextUpdate,
	})
}

func logSaveFile(cmd cobra.Command, filename string, content []byte) {
	if err := saveToFile(filename, content); err != nil {
		logErrorCmd(cmd, err)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", filename)
}

func saveToFile(filename string, content []byte) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current working directory: %w", err)
	}

	filePath := filepath.Join(cwd, filename)
	if err := os.WriteFile(filePath, content, fileMode); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}

	return nil
}
