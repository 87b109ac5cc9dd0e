package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/userdir/internal/config"
	"github.com/rshade/userdir/internal/engine"
	"github.com/rshade/userdir/internal/logging"
	"github.com/rshade/userdir/internal/pagination"
	"github.com/rshade/userdir/internal/source"
	"github.com/rshade/userdir/internal/tui"
	"github.com/rshade/userdir/internal/users"
)

// Output formats accepted by --output.
const (
	OutputTable  = "table"
	OutputJSON   = "json"
	OutputNDJSON = "ndjson"
)

// tabPadding is the minimum column padding for tabwriter output.
const tabPadding = 2

// ListParams holds the list command flags.
type ListParams struct {
	pagination.PaginationParams

	Output string
}

// NewListCmd creates the list command, which prints one derived page of users.
func NewListCmd() *cobra.Command {
	params := ListParams{PaginationParams: *pagination.NewPaginationParams()}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print users filtered, sorted and paginated",
		Long: `Fetches the user directory and prints the requested page.

Search matches a case-insensitive substring of the user's name. Sorting uses
the collation rules of view.locale. A failed fetch is logged and prints an
empty result.`,
		Example: `  # First page, sorted A to Z
  userdir list

  # Users whose name contains "an", page 2, ten per page
  userdir list --search an --page 2 --page-size 10

  # Everyone, Z to A, one JSON object per line
  userdir list --sort name:desc --all --output ndjson`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := activeConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("page-size") {
				params.PageSize = cfg.View.PageSize
			}
			if !cmd.Flags().Changed("sort") {
				params.Sort = pagination.SortFieldName + ":" + cfg.View.SortOrder
			}
			if params.Output == "" {
				params.Output = cfg.Output.DefaultFormat
			}
			return runList(cmd, cfg, params)
		},
	}

	cmd.Flags().StringVar(&params.Search, "search", "", "case-insensitive name substring")
	cmd.Flags().StringVar(&params.Sort, "sort", params.Sort, "sort expression: name, name:asc or name:desc")
	cmd.Flags().IntVar(&params.Page, "page", params.Page, "page number (1-based)")
	cmd.Flags().IntVar(&params.PageSize, "page-size", params.PageSize, "users per page")
	cmd.Flags().BoolVar(&params.All, "all", false, "print every matching user instead of one page")
	cmd.Flags().StringVarP(&params.Output, "output", "o", "", "output format: table, json or ndjson")

	return cmd
}

func validateOutput(format string) error {
	switch format {
	case OutputTable, OutputJSON, OutputNDJSON:
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func runList(cmd *cobra.Command, cfg *config.Config, params ListParams) error {
	if err := params.Validate(); err != nil {
		return err
	}
	if err := validateOutput(params.Output); err != nil {
		return err
	}
	order, err := params.SortOrder()
	if err != nil {
		return err
	}
	sortOrder, err := users.ParseSortOrder(order)
	if err != nil {
		return err
	}
	pipeline, err := newPipeline(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	fetcher, err := newFetcher(cfg, log)
	if err != nil {
		return err
	}
	snapshot := fetchSnapshot(ctx, fetcher)

	q := engine.Query{
		SearchTerm:  params.Search,
		SortOrder:   sortOrder,
		CurrentPage: params.Page,
		PageSize:    params.PageSize,
	}
	view := engine.Derive(pipeline, snapshot, q)
	if params.All {
		view.Users = view.Matches
	}

	log.Debug().
		Ctx(ctx).
		Str("component", "cli").
		Str("search", q.SearchTerm).
		Str("sort", q.SortOrder.String()).
		Int("page", q.CurrentPage).
		Int("matches", view.TotalMatches).
		Msg("derived view")

	err = renderView(cmd.OutOrStdout(), params.Output, view, params.All, cfg)
	if isBrokenPipe(err) {
		return nil
	}
	return err
}

// fetchSnapshot loads the user list. A failure is logged and yields an empty list.
func fetchSnapshot(ctx context.Context, fetcher source.Fetcher) []users.User {
	records, err := fetcher.FetchAllUsers(ctx)
	if err != nil {
		logging.FromContext(ctx).Warn().
			Ctx(ctx).
			Str("component", "cli").
			Err(err).
			Msg("user fetch failed; showing empty list")
		return []users.User{}
	}
	return records
}

func renderView(w io.Writer, format string, view engine.View, all bool, cfg *config.Config) error {
	switch format {
	case OutputJSON:
		return renderJSON(w, view, all)
	case OutputNDJSON:
		return renderNDJSON(w, view)
	default:
		tag, _ := cfg.LocaleTag()
		if all {
			return renderPlainTable(w, view, tag, all)
		}
		switch tui.DetectOutputMode(false, false, false) {
		case tui.OutputModeInteractive, tui.OutputModeStyled:
			_, err := fmt.Fprint(w, tui.RenderUserTable(view, tui.TerminalWidth()))
			return err
		case tui.OutputModePlain:
			fallthrough
		default:
			return renderPlainTable(w, view, tag, all)
		}
	}
}

// listJSON is the --output json document.
type listJSON struct {
	Users      []users.User               `json:"users"`
	Query      queryJSON                  `json:"query"`
	Pagination *pagination.PaginationMeta `json:"pagination,omitempty"`
}

type queryJSON struct {
	Search string `json:"search"`
	Sort   string `json:"sort"`
}

func renderJSON(w io.Writer, view engine.View, all bool) error {
	doc := listJSON{
		Users: view.Users,
		Query: queryJSON{
			Search: view.Query.SearchTerm,
			Sort:   pagination.SortFieldName + ":" + view.Query.SortOrder.String(),
		},
	}
	if doc.Users == nil {
		doc.Users = []users.User{}
	}
	if !all {
		meta := view.Meta()
		doc.Pagination = &meta
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// renderNDJSON writes one user per line without pagination metadata.
func renderNDJSON(w io.Writer, view engine.View) error {
	enc := json.NewEncoder(w)
	for _, u := range view.Users {
		if err := enc.Encode(u); err != nil {
			return err
		}
	}
	return nil
}

func renderPlainTable(w io.Writer, view engine.View, tag language.Tag, all bool) error {
	p := message.NewPrinter(tag)

	if len(view.Users) == 0 {
		_, err := p.Fprintf(w, "No users to display (%d total).\n", view.TotalRecords)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "ID\tName\tUsername\tEmail")
	fmt.Fprintln(tw, "--\t----\t--------\t-----")
	for _, u := range view.Users {
		username, _ := u.Field("username")
		email, _ := u.Field("email")
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", u.ID, u.Name, username, email)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if all {
		_, err := p.Fprintf(w, "\n%d of %d users\n", view.TotalMatches, view.TotalRecords)
		return err
	}
	first, last := view.Bounds()
	_, err := p.Fprintf(w, "\nShowing %d-%d of %d users · page %d of %d\n",
		first, last, view.TotalMatches, view.Page(), view.TotalPages)
	return err
}

// isBrokenPipe reports whether err is EPIPE from a closed reader such as `head`.
func isBrokenPipe(err error) bool {
	return err != nil && errors.Is(err, syscall.EPIPE)
}
