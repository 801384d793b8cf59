package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "undanganctl",
		Short:         "Operator tools for the undangan payment service",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("server-key", "", "Gateway server key (default $MIDTRANS_SERVER_KEY)")

	rootCmd.AddCommand(signCmd())
	rootCmd.AddCommand(replayCmd())
	return rootCmd
}

func serverKey(cmd *cobra.Command) (string, error) {
	key, _ := cmd.Flags().GetString("server-key")
	if key == "" {
		key = os.Getenv("MIDTRANS_SERVER_KEY")
	}
	if key == "" {
		return "", fmt.Errorf("server key is required: pass --server-key or set MIDTRANS_SERVER_KEY")
	}
	return key, nil
}
