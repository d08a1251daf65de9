package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aayushgelal/emvqr"
)

type decodedPayload struct {
	Dynamic        bool          `yaml:"dynamic"`
	Amount         string        `yaml:"amount,omitempty"`
	MerchantName   string        `yaml:"merchant_name"`
	MerchantCity   string        `yaml:"merchant_city"`
	TerminalID     string        `yaml:"terminal_id,omitempty"`
	Remarks        string        `yaml:"remarks,omitempty"`
	CRC            string        `yaml:"crc"`
	Fields         []emvqr.Field `yaml:"fields"`
	AdditionalData []emvqr.Field `yaml:"additional_data,omitempty"`
}

func decodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode [payload]",
		Short: "Verify and print the fields of a payload as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := emvqr.Decode(args[0])
			if err != nil {
				return err
			}

			amount, err := p.Amount()
			if err != nil {
				return err
			}

			out := decodedPayload{
				Dynamic:        p.IsDynamic(),
				MerchantName:   p.MerchantName(),
				MerchantCity:   p.MerchantCity(),
				TerminalID:     p.TerminalID(),
				Remarks:        p.Remarks(),
				CRC:            p.CRC(),
				Fields:         p.Fields(),
				AdditionalData: p.AdditionalData(),
			}
			if amount.Valid {
				out.Amount = amount.Decimal.StringFixed(2)
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(out); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}

func verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify [payload]",
		Short: "Check the CRC of a payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := emvqr.VerifyCRC(args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}

func crcCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "crc [data]",
		Short: "Print the CRC-16/CCITT-FALSE of data",
		Long: `Print the CRC-16/CCITT-FALSE of data. To seal a payload by hand, data
must end with the "6304" header and must not contain the checksum.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), emvqr.ComputeCRC(args[0]))
			return nil
		},
	}
}
