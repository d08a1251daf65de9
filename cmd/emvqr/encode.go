package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/aayushgelal/emvqr"
	"github.com/aayushgelal/emvqr/internal/qrimage"
)

func encodeCmd(logger func(*cobra.Command) *slog.Logger) *cobra.Command {
	var (
		configPath string
		amount     string
		remarks    string
		uniqueRef  bool
		pngPath    string
		size       int
	)

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode a payload for the configured merchant",
		Long: `Encode prints a sealed EMV-QR payload. Without --amount the code is
static (reusable); with --amount it is dynamic and carries the amount.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger(cmd)

			merchant, err := loadMerchant(configPath)
			if err != nil {
				return err
			}

			enc, err := emvqr.NewEncoder(merchant, emvqr.WithLogger(log))
			if err != nil {
				return err
			}

			tx := emvqr.Transaction{Remarks: remarks}
			if uniqueRef && remarks == "" {
				tx.Remarks = newBillReference()
			}
			if amount != "" {
				d, err := emvqr.ParseAmount(amount)
				if err != nil {
					return err
				}
				tx.Amount = decimal.NewNullDecimal(d)
			}

			payload, err := enc.Encode(tx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), payload)

			if pngPath != "" {
				if err := qrimage.WriteFile(pngPath, payload, size); err != nil {
					return err
				}
				log.Info("wrote QR image", slog.String("path", pngPath), slog.Int("size", size))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Merchant profile (YAML or JSON)")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "Transaction amount; omit for a static code")
	cmd.Flags().StringVarP(&remarks, "remarks", "r", "", "Bill reference / remarks")
	cmd.Flags().BoolVar(&uniqueRef, "unique-ref", false, "Generate a unique bill reference when --remarks is empty")
	cmd.Flags().StringVar(&pngPath, "png", "", "Also write the QR image to this PNG file")
	cmd.Flags().IntVar(&size, "size", qrimage.DefaultSize, "PNG size in pixels")

	return cmd
}

// newBillReference returns a 12 character reference derived from a random
// UUID.
func newBillReference() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(id[:12])
}
