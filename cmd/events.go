package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/hoaithanh/giaitoan/internal/llm"
	"github.com/hoaithanh/giaitoan/internal/store"
	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Inspect model request/response events",
}

// openStore opens the audit log named by --db or the default path.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent model events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		channel, _ := cmd.Flags().GetString("channel")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		events, err := s.EventRepo().QueryLLMEvents(ctx, store.QueryOpts{Limit: limit, Channel: channel})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No events found.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-7s  %-28s  %-6s  %-6s  %-7s  %s\n",
			"ID", "Timestamp", "Channel", "Model", "In", "Out", "Ms", "OK")
		fmt.Fprintln(out, strings.Repeat("─", 100))

		for _, e := range events {
			ok := "✓"
			if !e.Success {
				ok = "✗"
				if e.FinishReason != "" {
					ok += " " + e.FinishReason
				}
			}
			fmt.Fprintf(out, "%-5d  %-19s  %-7s  %-28s  %-6d  %-6d  %-7d  %s\n",
				e.ID,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Channel,
				truncate(e.Model, 28),
				e.InputTokens,
				e.OutputTokens,
				e.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

var eventsViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View full request/response for an event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var id int64
		if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(context.Background(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}

		out := cmd.OutOrStdout()
		sep := strings.Repeat("─", 60)

		fmt.Fprintf(out, "ID:        %d\n", e.ID)
		fmt.Fprintf(out, "Time:      %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(out, "Request:   %s\n", e.RequestID)
		fmt.Fprintf(out, "Channel:   %s\n", e.Channel)
		fmt.Fprintf(out, "Provider:  %s\n", e.Provider)
		fmt.Fprintf(out, "Model:     %s\n", e.Model)
		fmt.Fprintf(out, "Tokens:    %d in / %d out\n", e.InputTokens, e.OutputTokens)
		fmt.Fprintf(out, "Latency:   %dms\n", e.LatencyMs)
		fmt.Fprintf(out, "Success:   %v\n", e.Success)
		if e.FinishReason != "" {
			fmt.Fprintf(out, "Finish:    %s\n", e.FinishReason)
		}
		if e.ErrorMessage != "" {
			fmt.Fprintf(out, "Error:     %s\n", e.ErrorMessage)
		}

		for _, section := range []struct{ title, body string }{
			{"REQUEST", e.RequestBody},
			{"RESPONSE", e.ResponseBody},
		} {
			fmt.Fprintln(out)
			fmt.Fprintln(out, sep)
			fmt.Fprintln(out, section.title)
			fmt.Fprintln(out, sep)
			if section.body != "" {
				fmt.Fprintln(out, section.body)
			} else {
				fmt.Fprintln(out, "(not captured)")
			}
		}
		return nil
	},
}

var eventsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		byChannel, err := s.EventRepo().LLMUsageByChannel(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(byChannel) == 0 {
			fmt.Fprintln(out, "No usage recorded yet.")
			return nil
		}

		fmt.Fprintln(out, "Usage by Channel")
		fmt.Fprintln(out, strings.Repeat("─", 72))
		fmt.Fprintf(out, "%-10s  %8s  %8s  %10s  %10s  %10s\n",
			"Channel", "Requests", "Failed", "Input", "Output", "Avg Ms")
		fmt.Fprintln(out, strings.Repeat("─", 72))

		var totalReq, totalFail, totalIn, totalOut int
		for _, st := range byChannel {
			fmt.Fprintf(out, "%-10s  %8d  %8d  %10d  %10d  %10.0f\n",
				st.Key, st.Requests, st.Failures, st.InputTokens, st.OutputTokens, st.AvgLatencyMs)
			totalReq += st.Requests
			totalFail += st.Failures
			totalIn += st.InputTokens
			totalOut += st.OutputTokens
		}
		fmt.Fprintln(out, strings.Repeat("─", 72))
		fmt.Fprintf(out, "%-10s  %8d  %8d  %10d  %10d\n",
			"TOTAL", totalReq, totalFail, totalIn, totalOut)

		byModel, err := s.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, "Estimated Cost (USD)")
		fmt.Fprintln(out, strings.Repeat("─", 72))
		fmt.Fprintf(out, "%-32s  %8s  %10s  %10s  %8s\n",
			"Model", "Requests", "Input", "Output", "Cost")
		fmt.Fprintln(out, strings.Repeat("─", 72))

		var totalCost float64
		var unknown []string
		for _, mu := range byModel {
			cost := llm.LookupCost(mu.Key)
			if cost == nil {
				unknown = append(unknown, mu.Key)
				fmt.Fprintf(out, "%-32s  %8d  %10d  %10d  %8s\n",
					truncate(mu.Key, 32), mu.Requests, mu.InputTokens, mu.OutputTokens, "?")
				continue
			}
			c := cost.Cost(mu.InputTokens, mu.OutputTokens)
			totalCost += c
			fmt.Fprintf(out, "%-32s  %8d  %10d  %10d  %8s\n",
				truncate(mu.Key, 32), mu.Requests, mu.InputTokens, mu.OutputTokens, formatCost(c))
		}

		fmt.Fprintln(out, strings.Repeat("─", 72))
		label := "TOTAL"
		if len(unknown) > 0 {
			label = "TOTAL (partial)"
		}
		fmt.Fprintf(out, "%-32s  %8s  %10s  %10s  %8s\n", label, "", "", "", formatCost(totalCost))
		if len(unknown) > 0 {
			fmt.Fprintf(out, "\nPricing unavailable for: %s\n", strings.Join(unknown, ", "))
		}
		return nil
	},
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	eventsListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	eventsListCmd.Flags().StringP("channel", "c", "", "Filter by channel (tui, web, cli)")

	eventsCmd.AddCommand(eventsListCmd)
	eventsCmd.AddCommand(eventsViewCmd)
	eventsCmd.AddCommand(eventsStatsCmd)
}
