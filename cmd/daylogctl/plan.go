package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

func today() string { return time.Now().Format("2006-01-02") }

func init() {
	planCmd := &cobra.Command{Use: "plan", Short: "Daily plan operations"}

	var goals []string
	var hours float64
	var date string
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Set the plan for a day (replaces goals and focus budget)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if date == "" {
				date = today()
			}
			payload := map[string]interface{}{
				"goals":             goals,
				"plannedFocusHours": hours,
			}
			data, err := doPut(fmt.Sprintf("/api/users/%s/plans/%s", userFlag, date), payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	setCmd.Flags().StringArrayVarP(&goals, "goal", "g", nil, "Goal text (repeatable)")
	setCmd.Flags().Float64Var(&hours, "hours", 0, "Planned focus hours")
	setCmd.Flags().StringVarP(&date, "date", "d", "", "Day (YYYY-MM-DD, default today)")
	planCmd.AddCommand(setCmd)

	var getDate string
	getCmd := &cobra.Command{
		Use:   "get",
		Short: "Show the plan for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			if getDate == "" {
				getDate = today()
			}
			data, err := doGet(fmt.Sprintf("/api/users/%s/plans/%s", userFlag, getDate), nil)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	getCmd.Flags().StringVarP(&getDate, "date", "d", "", "Day (YYYY-MM-DD, default today)")
	planCmd.AddCommand(getCmd)

	var doneDate string
	var undone bool
	doneCmd := &cobra.Command{
		Use:   "done INDEX",
		Short: "Mark a plan goal complete (or incomplete with --undo)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if doneDate == "" {
				doneDate = today()
			}
			payload := map[string]interface{}{"completed": !undone}
			data, err := doPost(fmt.Sprintf("/api/users/%s/plans/%s/goals/%s", userFlag, doneDate, args[0]), payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	doneCmd.Flags().StringVarP(&doneDate, "date", "d", "", "Day (YYYY-MM-DD, default today)")
	doneCmd.Flags().BoolVar(&undone, "undo", false, "Mark the goal incomplete instead")
	planCmd.AddCommand(doneCmd)

	rootCmd.AddCommand(planCmd)
}
