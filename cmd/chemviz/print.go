package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"chemviz/internal/models"
	"chemviz/internal/service"
)

const timeLayout = "2006-01-02 15:04"

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printStatus(w io.Writer, backend string, authenticated bool, claims *service.SessionClaims) {
	fmt.Fprintf(w, "Backend: %s\n", backend)
	if !authenticated {
		fmt.Fprintln(w, "Session: signed out")
		return
	}
	fmt.Fprintln(w, "Session: signed in")
	if claims == nil {
		return
	}
	if claims.Subject != "" {
		fmt.Fprintf(w, "Subject: %s\n", claims.Subject)
	}
	if !claims.ExpiresAt.IsZero() {
		fmt.Fprintf(w, "Expires: %s\n", claims.ExpiresAt.Local().Format(timeLayout))
	}
}

func printHistory(w io.Writer, entries []models.HistoryEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No uploads yet")
		return
	}
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "ID\tFILENAME\tUPLOADED")
	for _, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", e.ID, e.Filename, formatTime(e.UploadedAt))
	}
	_ = tw.Flush()
}

func printProjection(w io.Writer, p models.Projection) {
	fmt.Fprintf(w, "%s (%s)\n\n", p.Filename, p.Kind)

	fmt.Fprintln(w, p.Chart.Title)
	tw := newTabWriter(w)
	switch p.Chart.Kind {
	case models.ChartBar:
		for _, b := range p.Chart.Bars {
			fmt.Fprintf(tw, "  %s\t%d\n", b.Label, b.Count)
		}
	case models.ChartScatter:
		for _, s := range p.Chart.Series {
			fmt.Fprintf(tw, "  %s\t%d points\n", s.Name, len(s.Points))
		}
	}
	_ = tw.Flush()
	if p.Chart.Caption != "" {
		fmt.Fprintln(w, p.Chart.Caption)
	}

	fmt.Fprintln(w)
	tw = newTabWriter(w)
	fmt.Fprintf(tw, "Total\t%d\n", p.Summary.TotalCount)
	for _, s := range p.Summary.Scalars {
		fmt.Fprintf(tw, "%s\t%s\n", s.Name, s.Display)
	}
	_ = tw.Flush()

	if len(p.Table.Columns) == 0 {
		return
	}
	fmt.Fprintln(w)
	tw = newTabWriter(w)
	fmt.Fprintln(tw, strings.Join(p.Table.Columns, "\t"))
	for _, row := range p.Table.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	_ = tw.Flush()
}

func printNotices(w io.Writer, notices []models.Notice) {
	if len(notices) == 0 {
		fmt.Fprintln(w, "No notices")
		return
	}
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "TIME\tKIND\tMESSAGE")
	for _, n := range notices {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", formatTime(n.OccurredAt), n.Kind, n.Message)
	}
	_ = tw.Flush()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}
