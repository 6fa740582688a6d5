package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/tubebridge/tubebridge-api/internal/client"
)

const defaultAPITimeout = time.Minute

// newAPIClient builds a client for the configured base URL. The bearer token
// comes from --token or the TUBEBRIDGE_API_TOKEN environment variable.
func newAPIClient(cmdCtx *commandContext, baseURL, token string) (*client.Client, error) {
	if baseURL == "" {
		baseURL = cmdCtx.Config.HTTP.BaseURL
	}
	if token == "" {
		token = os.Getenv("TUBEBRIDGE_API_TOKEN")
	}

	return client.New(client.Options{
		BaseURL: baseURL,
		Token:   token,
		OnAuthExpired: func() {
			cmdCtx.Logger.Warn("session expired; obtain a fresh token and retry")
		},
	})
}

type apiFlags struct {
	fs      *flag.FlagSet
	baseURL *string
	token   *string
}

func newAPIFlagSet(name string) apiFlags {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return apiFlags{
		fs:      fs,
		baseURL: fs.String("url", "", "API base URL (defaults to APP_BASE_URL)"),
		token:   fs.String("token", "", "Bearer token (defaults to TUBEBRIDGE_API_TOKEN)"),
	}
}

func runListUploads(cmdCtx *commandContext, args []string) error {
	af := newAPIFlagSet("list-uploads")
	limit := af.fs.Int("limit", 50, "Maximum uploads to return")
	offset := af.fs.Int("offset", 0, "Number of uploads to skip")
	status := af.fs.String("status", "", "Filter by status (Pending, Approved, Rejected, Scheduled)")
	query := af.fs.String("q", "", "Filter by title or tag substring")
	if err := af.fs.Parse(args); err != nil {
		return err
	}

	api, err := newAPIClient(cmdCtx, *af.baseURL, *af.token)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultAPITimeout)
	defer cancel()

	page, err := api.ListUploads(ctx, client.ListUploadsParams{
		Limit:  *limit,
		Offset: *offset,
		Q:      *query,
		Status: *status,
	})
	if err != nil {
		return fmt.Errorf("list uploads: %w", err)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err = writef(tw, "ID\tSTATUS\tTITLE\tVIDEO\tUPLOADED\n"); err != nil {
		return fmt.Errorf("print uploads header: %w", err)
	}
	for _, u := range page.Data {
		if err = writef(tw, "%d\t%s\t%s\t%s\t%s\n",
			u.ID, u.Status, u.Title, u.VideoFileName, u.UploadDate.Format(time.RFC3339)); err != nil {
			return fmt.Errorf("print upload row: %w", err)
		}
	}
	if err = tw.Flush(); err != nil {
		return fmt.Errorf("flush uploads table: %w", err)
	}
	return writef(os.Stdout, "\nShowing %d of %d uploads\n", len(page.Data), page.Total)
}

func runApproveUpload(cmdCtx *commandContext, args []string) error {
	af := newAPIFlagSet("approve-upload")
	id := af.fs.Int64("id", 0, "Upload ID to approve")
	if err := af.fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		if rest := af.fs.Args(); len(rest) == 1 {
			parsed, parseErr := strconv.ParseInt(rest[0], 10, 64)
			if parseErr != nil {
				return fmt.Errorf("parse upload ID %q: %w", rest[0], parseErr)
			}
			*id = parsed
		}
	}
	if *id <= 0 {
		return errors.New("--id is required and must be positive")
	}

	api, err := newAPIClient(cmdCtx, *af.baseURL, *af.token)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultAPITimeout)
	defer cancel()

	upload, err := api.ApproveUpload(ctx, *id)
	if err != nil {
		return fmt.Errorf("approve upload %d: %w", *id, err)
	}
	return writef(os.Stdout, "Upload %d (%q) is now %s\n", upload.ID, upload.Title, upload.Status)
}

func runRejectUpload(cmdCtx *commandContext, args []string) error {
	af := newAPIFlagSet("reject-upload")
	id := af.fs.Int64("id", 0, "Upload ID to reject")
	feedback := af.fs.String("feedback", "", "Feedback for the submitter (required)")
	if err := af.fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return errors.New("--id is required and must be positive")
	}
	if *feedback == "" {
		return errors.New("--feedback is required")
	}

	api, err := newAPIClient(cmdCtx, *af.baseURL, *af.token)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultAPITimeout)
	defer cancel()

	upload, err := api.RejectUpload(ctx, *id, *feedback)
	if err != nil {
		return fmt.Errorf("reject upload %d: %w", *id, err)
	}
	return writef(os.Stdout, "Upload %d (%q) is now %s\n", upload.ID, upload.Title, upload.Status)
}

func runListManagers(cmdCtx *commandContext, args []string) error {
	af := newAPIFlagSet("list-managers")
	limit := af.fs.Int("limit", 50, "Maximum managers to return")
	offset := af.fs.Int("offset", 0, "Number of managers to skip")
	if err := af.fs.Parse(args); err != nil {
		return err
	}

	api, err := newAPIClient(cmdCtx, *af.baseURL, *af.token)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultAPITimeout)
	defer cancel()

	managers, err := api.ListManagers(ctx, *limit, *offset)
	if err != nil {
		return fmt.Errorf("list managers: %w", err)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err = writef(tw, "ID\tNAME\tEMAIL\tSTATUS\n"); err != nil {
		return fmt.Errorf("print managers header: %w", err)
	}
	for _, m := range managers {
		if err = writef(tw, "%s\t%s\t%s\t%s\n", m.ID, m.Name, m.Email, m.Status); err != nil {
			return fmt.Errorf("print manager row: %w", err)
		}
	}
	return tw.Flush()
}

func runHealth(cmdCtx *commandContext, args []string) error {
	af := newAPIFlagSet("health")
	if err := af.fs.Parse(args); err != nil {
		return err
	}

	api, err := newAPIClient(cmdCtx, *af.baseURL, *af.token)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, 10*time.Second)
	defer cancel()

	if err = api.Health(ctx); err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	return writeln(os.Stdout, "OK")
}
