package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	var date, goalsMet, worked, didnt, why, adjust string
	var hours float64

	reflectCmd := &cobra.Command{
		Use:   "reflect",
		Short: "Save the end-of-day reflection (updates in place on repeat)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if date == "" {
				date = today()
			}
			payload := map[string]interface{}{"date": date}
			if goalsMet != "" {
				payload["goalsMet"] = goalsMet
			}
			if worked != "" {
				payload["whatWorked"] = worked
			}
			if didnt != "" {
				payload["whatDidnt"] = didnt
			}
			if why != "" {
				payload["why"] = why
			}
			if adjust != "" {
				payload["adjustment"] = adjust
			}
			if cmd.Flags().Changed("hours") {
				payload["actualFocusHours"] = hours
			}
			data, err := doPost(fmt.Sprintf("/api/users/%s/reflections", userFlag), payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	reflectCmd.Flags().StringVarP(&date, "date", "d", "", "Day (YYYY-MM-DD, default today)")
	reflectCmd.Flags().StringVar(&goalsMet, "goals-met", "", "yes, partial or no")
	reflectCmd.Flags().StringVar(&worked, "worked", "", "What worked")
	reflectCmd.Flags().StringVar(&didnt, "didnt", "", "What didn't work")
	reflectCmd.Flags().StringVar(&why, "why", "", "Why it went that way")
	reflectCmd.Flags().StringVar(&adjust, "adjust", "", "Adjustment for tomorrow")
	reflectCmd.Flags().Float64Var(&hours, "hours", 0, "Actual focus hours")
	rootCmd.AddCommand(reflectCmd)
}
