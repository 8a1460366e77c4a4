package client

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/encoding/protojson"

	transports "github.com/doublemarked/unload-test/internal/cmd/client/transports"
)

// NewEventsCommand constructs the `events` command group and subcommands.
func NewEventsCommand(baseURL BaseURLFunc) *cobra.Command {
	eventsCmd := &cobra.Command{Use: "events", Short: "Event log operations"}
	eventsCmd.PersistentFlags().String("transport", "http", "Transport: http|grpc")

	eventsCmd.AddCommand(
		newEventsListCommand(baseURL),
		newEventsSendCommand(baseURL),
		newEventsClearCommand(baseURL),
		newEventsWatchCommand(baseURL),
	)
	return eventsCmd
}

func transportFor(cmd *cobra.Command, baseURL BaseURLFunc) (transports.EventsTransport, error) {
	name, _ := cmd.Flags().GetString("transport")
	return getTransport(name, baseURL)
}

// newEventsListCommand constructs the `events list` subcommand.
func newEventsListCommand(baseURL BaseURLFunc) *cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Print the event log, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, _ := cmd.Flags().GetString("filter")
			asJSON, _ := cmd.Flags().GetBool("json")
			t, err := transportFor(cmd, baseURL)
			if err != nil {
				return err
			}
			events, err := t.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return printEvents(cmd.OutOrStdout(), events, asJSON)
		},
	}
	listCmd.Flags().String("filter", "", "CEL filter (server-side), e.g. event.source == \"unload\"")
	listCmd.Flags().Bool("json", false, "Print the raw JSON array")
	return listCmd
}

// newEventsSendCommand constructs the `events send` subcommand.
func newEventsSendCommand(baseURL BaseURLFunc) *cobra.Command {
	sendCmd := &cobra.Command{
		Use:   "send",
		Short: "Append an event",
		RunE: func(cmd *cobra.Command, _ []string) error {
			source, _ := cmd.Flags().GetString("source")
			typ, _ := cmd.Flags().GetString("type")
			instance, _ := cmd.Flags().GetString("instance")
			if instance == "" {
				instance = newInstanceID()
			}
			t, err := transportFor(cmd, baseURL)
			if err != nil {
				return err
			}
			events, err := t.Send(cmd.Context(), transports.SendRequest{Source: source, Type: typ, Instance: instance})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sent instance=%s log_size=%d\n", instance, len(events))
			return nil
		},
	}
	sendCmd.Flags().String("source", "manual", "Event source: manual|unload|...")
	sendCmd.Flags().String("type", "fetch", "Event type: fetch|beacon")
	sendCmd.Flags().String("instance", "", "Instance id (default: random 5 characters)")
	return sendCmd
}

// newEventsClearCommand constructs the `events clear` subcommand.
func newEventsClearCommand(baseURL BaseURLFunc) *cobra.Command {
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the event log (requires --confirm)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			confirm, _ := cmd.Flags().GetBool("confirm")
			if !confirm {
				return fmt.Errorf("refusing to clear without --confirm")
			}
			t, err := transportFor(cmd, baseURL)
			if err != nil {
				return err
			}
			if err := t.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
	clearCmd.Flags().Bool("confirm", false, "Confirm clearing the log")
	return clearCmd
}

// newEventsWatchCommand constructs the `events watch` subcommand.
func newEventsWatchCommand(baseURL BaseURLFunc) *cobra.Command {
	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Print the log every time it changes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			t, err := transportFor(cmd, baseURL)
			if err != nil {
				return err
			}
			seen := 0
			errStop := fmt.Errorf("limit reached")
			err = t.Watch(cmd.Context(), func(events []*transports.Event) error {
				if err := writeJSON(cmd.OutOrStdout(), events); err != nil {
					return err
				}
				seen++
				if limit > 0 && seen >= limit {
					return errStop
				}
				return nil
			})
			if err == errStop {
				return nil
			}
			return err
		},
	}
	watchCmd.Flags().Int("limit", 0, "Stop after N updates (0 = until interrupted)")
	return watchCmd
}

var eventMarshal = protojson.MarshalOptions{UseProtoNames: true, EmitUnpopulated: true}

// writeJSON prints events as one compact JSON array line.
func writeJSON(w io.Writer, events []*transports.Event) error {
	items := make([]json.RawMessage, 0, len(events))
	for _, e := range events {
		b, err := eventMarshal.Marshal(e)
		if err != nil {
			return err
		}
		items = append(items, b)
	}
	line, err := json.Marshal(items)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", line)
	return err
}

func printEvents(w io.Writer, events []*transports.Event, asJSON bool) error {
	if asJSON {
		return writeJSON(w, events)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIMESTAMP\tSOURCE\tTYPE\tINSTANCE")
	for _, e := range events {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.GetTimestamp(), e.GetSource(), e.GetType(), e.GetInstance())
	}
	return tw.Flush()
}
