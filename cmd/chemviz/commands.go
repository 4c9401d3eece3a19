package main

import (
	"bufio"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"chemviz/internal/models"
	"chemviz/internal/service"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the credential",
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			if password == "" {
				// read from stdin so it stays out of shell history
				fmt.Fprint(cmd.OutOrStdout(), "Password: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}
			if err := a.services.SignIn(cmd.Context(), username, password); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", username)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "Backend username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Backend password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored credential",
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			if err := a.services.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		}),
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show session state",
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			claims, _ := a.services.Claims()
			printStatus(cmd.OutOrStdout(), a.cfg.API.BaseURL, a.services.Authenticated(), claims)
			return nil
		}),
	}
}

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List the most recent uploads",
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			if err := a.services.Refresh(cmd.Context()); err != nil {
				return err
			}
			printHistory(cmd.OutOrStdout(), a.services.History.List())
			return nil
		}),
	}
}

func newUploadCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "upload <path>",
		Short: "Upload a CSV or Excel workbook for analysis",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			if err := a.services.SelectFile(models.FileRef{Name: name, Path: args[0]}); err != nil {
				return err
			}
			entry, err := a.services.Submit(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Upload successful: %s (id %d)\n", entry.Filename, entry.ID)
			printHistory(cmd.OutOrStdout(), a.services.History.List())
			return nil
		}),
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "Name announced to the backend (default: base of path)")
	return cmd
}

func newAnalyticsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analytics <id>",
		Short: "Show the analytics of a history entry",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			id, err := parseEntryID(args[0])
			if err != nil {
				return err
			}
			active, err := a.services.Select(cmd.Context(), id)
			if err != nil {
				return err
			}
			printProjection(cmd.OutOrStdout(), active.Projection)
			return nil
		}),
	}
}

func newReportCmd() *cobra.Command {
	var filename, dir string
	cmd := &cobra.Command{
		Use:   "report <id>",
		Short: "Download the PDF report of a history entry",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			id, err := parseEntryID(args[0])
			if err != nil {
				return err
			}
			if filename == "" {
				if err := a.services.Refresh(cmd.Context()); err != nil {
					return err
				}
				entry, ok := a.services.Find(id)
				if !ok {
					return fmt.Errorf("%w: %d (pass --filename for older uploads)", service.ErrEntryNotFound, id)
				}
				filename = entry.Filename
			}
			if dir == "" {
				dir = a.cfg.Downloads.Dir
			}
			path, err := a.services.Download(cmd.Context(), service.NewFileSaver(afero.NewOsFs(), dir), id, filename)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report saved to %s\n", filepath.Clean(path))
			return nil
		}),
	}
	cmd.Flags().StringVarP(&filename, "filename", "f", "", "Dataset filename (default: looked up in history)")
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Destination directory (default downloads.dir)")
	return cmd
}

func newNoticesCmd() *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "notices",
		Short: "List recorded notices",
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			notices, err := a.services.Notices.List(cmd.Context(), service.NoticeFilter{Kind: strings.ToUpper(kind)})
			if err != nil {
				return err
			}
			printNotices(cmd.OutOrStdout(), notices)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&kind, "kind", "k", "", "Only notices of this kind, e.g. UPLOAD_FAILED")
	return cmd
}

var errInvalidEntryID = errors.New("entry id must be a positive integer")

func parseEntryID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", errInvalidEntryID, s)
	}
	return id, nil
}
