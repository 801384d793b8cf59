package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/polkiloo/undangan/internal/domain/model"
	"github.com/polkiloo/undangan/internal/pkg/webhook"
)

const defaultNotificationURL = "http://localhost:8080/api/payments/notification"

func replayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Send a signed payment notification to a running service",
		Long: `Builds a notification the way the gateway would, signs it with the
server key and posts it to the notification endpoint. Useful to settle
sandbox orders or to re-deliver a missed callback.`,
		Args: cobra.NoArgs,
		RunE: runReplay,
	}

	cmd.Flags().String("url", defaultNotificationURL, "Notification endpoint")
	cmd.Flags().String("order-id", "", "Order reference")
	cmd.Flags().String("status-code", "200", "Gateway status code")
	cmd.Flags().String("gross-amount", "", "Gross amount, e.g. 150000.00")
	cmd.Flags().String("transaction-status", "settlement", "capture, settlement, pending, deny, cancel or expire")
	cmd.Flags().String("fraud-status", "", "Fraud status for capture notifications")
	cmd.Flags().String("payment-type", "", "Payment method, e.g. bank_transfer")
	cmd.Flags().String("transaction-id", "", "Gateway transaction id")
	cmd.Flags().Duration("timeout", 10*time.Second, "Request timeout")
	_ = cmd.MarkFlagRequired("order-id")
	_ = cmd.MarkFlagRequired("gross-amount")

	return cmd
}

func runReplay(cmd *cobra.Command, args []string) error {
	key, err := serverKey(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	url, _ := flags.GetString("url")
	timeout, _ := flags.GetDuration("timeout")

	n := model.Notification{}
	n.OrderReference, _ = flags.GetString("order-id")
	n.StatusCode, _ = flags.GetString("status-code")
	n.GrossAmount, _ = flags.GetString("gross-amount")
	n.TransactionStatus, _ = flags.GetString("transaction-status")
	n.FraudStatus = optional(flags.GetString("fraud-status"))
	n.PaymentType = optional(flags.GetString("payment-type"))
	n.TransactionID = optional(flags.GetString("transaction-id"))
	n.SignatureKey = webhook.Sign(n.OrderReference, n.StatusCode, n.GrossAmount, key)

	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	req, err := http.NewRequestWithContext(cmd.Context(), http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("deliver notification: %w", err)
	}
	defer resp.Body.Close()

	reply, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", resp.Status, bytes.TrimSpace(reply))
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("notification rejected with status %d", resp.StatusCode)
	}
	return nil
}

func optional(v string, _ error) *string {
	if v == "" {
		return nil
	}
	return &v
}
