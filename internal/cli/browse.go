package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/userdir/internal/engine"
	"github.com/rshade/userdir/internal/logging"
	"github.com/rshade/userdir/internal/pagination"
	"github.com/rshade/userdir/internal/tui"
)

const browseCmdName = "browse"

// NewBrowseCmd creates the interactive browser command. Without a terminal it
// prints the first page the way `list` does.
func NewBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   browseCmdName,
		Short: "Browse users interactively",
		Long: `Opens an interactive list of users.

Keys: / search, s toggle sort, ←/→ or h/l change page, 1-9 jump to a page,
↑/↓ or j/k select, enter show details, r refresh (reuses a
snapshot younger than cache.ttl_seconds), R reload from the source, q quit.

Logs are written to ~/.userdir/userdir.log while the browser is open.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := activeConfig()
			if err != nil {
				return err
			}

			if tui.DetectOutputMode(false, false, false) != tui.OutputModeInteractive {
				params := ListParams{PaginationParams: *pagination.NewPaginationParams()}
				params.PageSize = cfg.View.PageSize
				params.Sort = pagination.SortFieldName + ":" + cfg.View.SortOrder
				params.Output = OutputTable
				return runList(cmd, cfg, params)
			}

			pipeline, err := newPipeline(cfg)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			fetcher, err := newFetcher(cfg, logging.FromContext(ctx))
			if err != nil {
				return err
			}

			session := engine.NewSession(pipeline, cfg.View.PageSize)
			session.SetSortOrder(cfg.SortOrder())

			p := tea.NewProgram(
				tui.NewUserListModel(ctx, fetcher, session),
				tea.WithAltScreen(),
				tea.WithContext(ctx),
			)
			if _, err = p.Run(); err != nil {
				return fmt.Errorf("failed to run interactive browser: %w", err)
			}
			return nil
		},
	}
}
