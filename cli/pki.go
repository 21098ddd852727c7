// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"github.com/absmach/simpleca"
	"github.com/absmach/simpleca/pki"
	"github.com/spf13/cobra"
)

// NewBootstrapCmd returns the root CA bootstrap command. It runs locally
// against the storage path, without the certs service.
func NewBootstrapCmd() *cobra.Command {
	var caConfigPath string

	cmd := cobra.Command{
		Use:   "bootstrap <storage_path>",
		Short: "Bootstrap root CA",
		Long:  `Generates the root CA key pair and a self-signed CA certificate under the given storage path. Fails if CA material already exists there.`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 1 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}
			cfg := simpleca.CAConfig{}
			if caConfigPath != "" {
				c, err := simpleca.LoadCAConfig(caConfigPath)
				if err != nil {
					logErrorCmd(*cmd, err)
					return
				}
				cfg = c
			}
			if _, err := pki.Bootstrap(args[0], cfg, nil); err != nil {
				logErrorCmd(*cmd, err)
				return
			}
			logOKCmd(*cmd)
		},
	}

	cmd.Flags().StringVarP(&caConfigPath, "ca-config", "f", "", "CA subject configuration file")

	return &cmd
}
