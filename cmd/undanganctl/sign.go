package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/polkiloo/undangan/internal/pkg/webhook"
)

func signCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Print the notification signature for the given fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := serverKey(cmd)
			if err != nil {
				return err
			}
			orderID, _ := cmd.Flags().GetString("order-id")
			statusCode, _ := cmd.Flags().GetString("status-code")
			grossAmount, _ := cmd.Flags().GetString("gross-amount")

			fmt.Fprintln(cmd.OutOrStdout(), webhook.Sign(orderID, statusCode, grossAmount, key))
			return nil
		},
	}

	cmd.Flags().String("order-id", "", "Order reference, e.g. INV-...")
	cmd.Flags().String("status-code", "200", "Gateway status code")
	cmd.Flags().String("gross-amount", "", "Gross amount as sent by the gateway, e.g. 150000.00")
	_ = cmd.MarkFlagRequired("order-id")
	_ = cmd.MarkFlagRequired("gross-amount")

	return cmd
}
