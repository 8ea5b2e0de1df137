package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

func init() {
	activitiesCmd := &cobra.Command{Use: "activities", Short: "Activity operations"}

	var category, start, end, note, energy, workType string
	var minutes int
	logCmd := &cobra.Command{
		Use:   "log",
		Short: "Log a finished activity block",
		RunE: func(cmd *cobra.Command, args []string) error {
			if category == "" {
				return fmt.Errorf("--category required")
			}
			startTime, endTime, err := resolveSpan(start, end, minutes)
			if err != nil {
				return err
			}
			payload := map[string]interface{}{
				"category":  category,
				"startTime": startTime.Format(time.RFC3339),
				"endTime":   endTime.Format(time.RFC3339),
			}
			if note != "" {
				payload["note"] = note
			}
			if energy != "" {
				payload["energyCost"] = energy
			}
			if workType != "" {
				payload["workType"] = workType
			}
			data, err := doPost(fmt.Sprintf("/api/users/%s/activities", userFlag), payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	logCmd.Flags().StringVarP(&category, "category", "c", "", "Category: Study, Coding, Work, Reading, Rest, Social, Other (required)")
	logCmd.Flags().StringVar(&start, "start", "", "Start time, RFC3339 (default: end minus --minutes)")
	logCmd.Flags().StringVar(&end, "end", "", "End time, RFC3339 (default: now)")
	logCmd.Flags().IntVarP(&minutes, "minutes", "m", 0, "Duration in minutes, used when --start is omitted")
	logCmd.Flags().StringVarP(&note, "note", "n", "", "Optional note")
	logCmd.Flags().StringVar(&energy, "energy", "", "Energy cost: light, medium, heavy")
	logCmd.Flags().StringVar(&workType, "work-type", "", "Work type: deep, shallow, mixed, rest")
	_ = logCmd.MarkFlagRequired("category")
	activitiesCmd.AddCommand(logCmd)

	var listStart, listEnd string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List logged activities",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := map[string]string{}
			if listStart != "" {
				q["start"] = listStart
			}
			if listEnd != "" {
				q["end"] = listEnd
			}
			data, err := doGet(fmt.Sprintf("/api/users/%s/activities", userFlag), q)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	listCmd.Flags().StringVar(&listStart, "start", "", "Range start, RFC3339")
	listCmd.Flags().StringVar(&listEnd, "end", "", "Range end, RFC3339")
	activitiesCmd.AddCommand(listCmd)

	rootCmd.AddCommand(activitiesCmd)

	interruptionsCmd := &cobra.Command{Use: "interruptions", Short: "Interruption operations"}

	var kind, intNote string
	var intMinutes int
	intLogCmd := &cobra.Command{
		Use:   "log",
		Short: "Log an interruption",
		RunE: func(cmd *cobra.Command, args []string) error {
			if kind == "" {
				return fmt.Errorf("--kind required")
			}
			payload := map[string]interface{}{
				"time": time.Now().Format(time.RFC3339),
				"kind": kind,
			}
			if intMinutes > 0 {
				payload["durationMinutes"] = intMinutes
			}
			if intNote != "" {
				payload["note"] = intNote
			}
			data, err := doPost(fmt.Sprintf("/api/users/%s/interruptions", userFlag), payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	intLogCmd.Flags().StringVarP(&kind, "kind", "k", "", "Kind: Phone, Social Media, Noise, Other (required)")
	intLogCmd.Flags().IntVarP(&intMinutes, "minutes", "m", 0, "Duration in minutes (omit for the 5-minute default)")
	intLogCmd.Flags().StringVarP(&intNote, "note", "n", "", "Optional note")
	_ = intLogCmd.MarkFlagRequired("kind")
	interruptionsCmd.AddCommand(intLogCmd)

	intListCmd := &cobra.Command{
		Use:   "list",
		Short: "List logged interruptions",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("/api/users/%s/interruptions", userFlag), nil)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	interruptionsCmd.AddCommand(intListCmd)

	rootCmd.AddCommand(interruptionsCmd)
}

// resolveSpan turns the flag combinations into a concrete start/end pair:
// explicit times win; otherwise the block ends now and --minutes sets its
// length.
func resolveSpan(start, end string, minutes int) (time.Time, time.Time, error) {
	endTime := time.Now()
	if end != "" {
		t, err := time.Parse(time.RFC3339, end)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("--end must be RFC3339")
		}
		endTime = t
	}
	if start != "" {
		t, err := time.Parse(time.RFC3339, start)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("--start must be RFC3339")
		}
		return t, endTime, nil
	}
	if minutes <= 0 {
		return time.Time{}, time.Time{}, fmt.Errorf("either --start or --minutes required")
	}
	return endTime.Add(-time.Duration(minutes) * time.Minute), endTime, nil
}
