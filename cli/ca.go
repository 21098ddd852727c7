// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"

	casdk "github.com/absmach/simpleca/sdk"
	"github.com/spf13/cobra"
)

// Keep SDK handle in global var.
var sdk casdk.SDK

func SetSDK(s casdk.SDK) {
	sdk = s
}

var cmdCerts = []cobra.Command{
	{
		Use:   "issue <subject> '[\"<ip_addr_1>\", \"<ip_addr_2>\"]' '[\"<dns_name_1>\"]' [<ttl>]",
		Short: "Issue certificate",
		Long:  `Issues a certificate for a given subject.`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) < 3 || len(args) > 4 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}
			var ipAddrs []string
			if err := json.Unmarshal([]byte(args[1]), &ipAddrs); err != nil {
				logErrorCmd(*cmd, err)
				return
			}
			var dnsNames []string
			if err := json.Unmarshal([]byte(args[2]), &dnsNames); err != nil {
				logErrorCmd(*cmd, err)
				return
			}
			ttl := ""
			if len(args) == 4 {
				ttl = args[3]
			}
			cert, err := sdk.IssueCert(args[0], ttl, ipAddrs, dnsNames, casdk.Options{})
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}
			logJSONCmd(*cmd, cert)
		},
	},
	{
		Use:   "get [all | <serial_number>]",
		Short: "Get certificate",
		Long:  `Gets a certificate for a given serial number or lists all certificates.`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 1 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}
			if args[0] == "all" {
				pm := casdk.PageMetadata{
					Limit:  Limit,
					Offset: Offset,
				}
				page, err := sdk.ListCerts(pm)
				if err != nil {
					logErrorCmd(*cmd, err)
					return
				}
				logJSONCmd(*cmd, page)
				return
			}
			cert, err := sdk.ViewCert(args[0])
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}
			logJSONCmd(*cmd, cert)
		},
	},
	{
		Use:   "renew <serial_number> [<ttl>]",
		Short: "Renew certificate",
		Long:  `Renews a certificate for a given serial number. Use --revoke to revoke the predecessor.`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) < 1 || len(args) > 2 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}
			ttl := ""
			if len(args) == 2 {
				ttl = args[1]
			}
			cert, err := sdk.RenewCert(args[0], ttl, RevokePredecessor)
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}
			logJSONCmd(*cmd, cert)
		},
	},
	{
		Use:   "revoke <serial_number> [<reason>]",
		Short: "Revoke certificate",
		Long:  `Revokes a certificate for a given serial number with an optional reason code name.`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) < 1 || len(args) > 2 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}
			reason := ""
			if len(args) == 2 {
				reason = args[1]
			}
			if err := sdk.RevokeCert(args[0], reason); err != nil {
				logErrorCmd(*cmd, err)
				return
			}
			logOKCmd(*cmd)
		},
	},
	{
		Use:   "crl",
		Short: "Generate CRL",
		Long:  `Generates and signs a fresh certificate revocation list.`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 0 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}
			crl, err := sdk.GenerateCRL()
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}
			logJSONCmd(*cmd, crl)
		},
	},
	{
		Use:   "ca",
		Short: "Get CA certificate",
		Long:  `Retrieves the PEM-encoded CA certificate and saves it to ca.crt.`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 0 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}
			pem, err := sdk.ViewCA()
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}
			logSaveFile(*cmd, "ca.crt", pem)
		},
	},
	{
		Use:   "ocsp <serial_number>",
		Short: "OCSP",
		Long:  `Checks the revocation status of a certificate with a given serial number.`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 1 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}
			res, err := sdk.OCSP(args[0])
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}
			logOCSPCmd(*cmd, res)
		},
	},
	{
		Use:   "state",
		Short: "Get CA state",
		Long:  `Retrieves the persisted serial and CRL counters.`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 0 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}
			state, err := sdk.State()
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}
			logJSONCmd(*cmd, state)
		},
	},
}

// NewCertsCmd returns certificate command.
func NewCertsCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:   "certs [issue | get | renew | revoke | crl | ca | ocsp | state]",
		Short: "Certificates management",
		Long:  `Certificates management: issue, get, renew, revoke, CRL, CA, OCSP, state.`,
	}

	for i := range cmdCerts {
		cmd.AddCommand(&cmdCerts[i])
	}

	return &cmd
}
