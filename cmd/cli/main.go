package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tradebooks-cli",
		Short: "Tradebooks CLI tool",
		Long:  `A command line interface for interacting with the Tradebooks API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Tradebooks API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(balanceSheetCmd())
	rootCmd.AddCommand(reconcileCmd())
	rootCmd.AddCommand(sequenceCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func balanceSheetCmd() *cobra.Command {
	var asOf string

	cmd := &cobra.Command{
		Use:   "balance-sheet",
		Short: "Fetch the balance sheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			url := baseURL + "/api/v1/balance-sheet"
			if asOf != "" {
				url += "?as_of=" + asOf
			}
			return getAndPrint(url)
		},
	}

	cmd.Flags().StringVar(&asOf, "as-of", "", "Report date (YYYY-MM-DD), defaults to today")

	return cmd
}

func reconcileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Compare live balances against replayed balances",
		RunE: func(cmd *cobra.Command, args []string) error {
			return getAndPrint(baseURL + "/api/v1/reconciliation")
		},
	}
}

func sequenceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sequence",
		Short: "Sequence counter operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "next <name>",
		Short: "Allocate the next value of a named counter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := &http.Client{Timeout: timeout}
			resp, err := client.Post(baseURL+"/api/v1/sequences/"+args[0]+"/next", "application/json", nil)
			if err != nil {
				return fmt.Errorf("request failed: %w", err)
			}
			defer resp.Body.Close()
			return printResponse(resp)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "peek <name>",
		Short: "Show the value the counter would hand out next",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return getAndPrint(baseURL + "/api/v1/sequences/" + args[0])
		},
	})

	return cmd
}

func getAndPrint(url string) error {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("request failed (status %d): %s", resp.StatusCode, string(body))
	}

	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	printJSON(parsed)
	return nil
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to format output: %v\n", err)
		return
	}
	fmt.Println(string(out))
}
