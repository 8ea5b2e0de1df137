package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	var sumDate string
	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the derived daily summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			if sumDate == "" {
				sumDate = today()
			}
			data, err := doGet(fmt.Sprintf("/api/users/%s/summary/%s", userFlag, sumDate), nil)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	summaryCmd.Flags().StringVarP(&sumDate, "date", "d", "", "Day (YYYY-MM-DD, default today)")
	rootCmd.AddCommand(summaryCmd)

	var days int
	analyticsCmd := &cobra.Command{Use: "analytics", Short: "Rolling-window analytics"}
	analyticsCmd.PersistentFlags().IntVar(&days, "days", 30, "Trailing window in days")

	for _, sub := range []string{"breakdown", "streaks", "summary"} {
		sub := sub
		analyticsCmd.AddCommand(&cobra.Command{
			Use:   sub,
			Short: "Show " + sub + " over the window",
			RunE: func(cmd *cobra.Command, args []string) error {
				data, err := doGet(fmt.Sprintf("/api/users/%s/analytics/%s", userFlag, sub),
					map[string]string{"days": strconv.Itoa(days)})
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(os.Stdout, string(data))
				return nil
			},
		})
	}
	rootCmd.AddCommand(analyticsCmd)

	var insightDays int
	insightsCmd := &cobra.Command{
		Use:   "insights",
		Short: "Show behavioral insights",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("/api/users/%s/insights", userFlag),
				map[string]string{"days": strconv.Itoa(insightDays)})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	insightsCmd.Flags().IntVar(&insightDays, "days", 30, "Trailing window in days")
	rootCmd.AddCommand(insightsCmd)
}
