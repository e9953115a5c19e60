package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
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
		Use:   "caixa-cli",
		Short: "Caixa CLI tool",
		Long:  `A command line interface for interacting with the Caixa cash-control API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Caixa API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(varianceCmd())
	rootCmd.AddCommand(healthCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func reportCmd() *cobra.Command {
	var (
		store       string
		start       string
		end         string
		granularity string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Fetch a bucketized cash report for a store",
		Run: func(cmd *cobra.Command, args []string) {
			query := url.Values{}
			query.Set("start", start)
			query.Set("end", end)
			query.Set("granularity", granularity)
			fetchJSON(fmt.Sprintf("%s/api/v1/stores/%s/report?%s", baseURL, url.PathEscape(store), query.Encode()))
		},
	}

	cmd.Flags().StringVar(&store, "store", "", "Store identifier")
	cmd.Flags().StringVar(&start, "start", "", "Period start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Period end (YYYY-MM-DD)")
	cmd.Flags().StringVar(&granularity, "granularity", "day", "Bucket granularity: day, week or month")
	cmd.MarkFlagRequired("store")
	cmd.MarkFlagRequired("start")
	cmd.MarkFlagRequired("end")

	return cmd
}

func varianceCmd() *cobra.Command {
	var (
		store string
		month string
	)

	cmd := &cobra.Command{
		Use:   "variance",
		Short: "Compare a store's month against the previous one",
		Run: func(cmd *cobra.Command, args []string) {
			query := url.Values{}
			query.Set("month", month)
			fetchJSON(fmt.Sprintf("%s/api/v1/stores/%s/variance?%s", baseURL, url.PathEscape(store), query.Encode()))
		},
	}

	cmd.Flags().StringVar(&store, "store", "", "Store identifier")
	cmd.Flags().StringVar(&month, "month", "", "Month to compare (YYYY-MM)")
	cmd.MarkFlagRequired("store")
	cmd.MarkFlagRequired("month")

	return cmd
}

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check API readiness",
		Run: func(cmd *cobra.Command, args []string) {
			fetchJSON(baseURL + "/ready")
		},
	}
}

func fetchJSON(requestURL string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(requestURL)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	printJSON(result)
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to format response: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
