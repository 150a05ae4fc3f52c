package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"streamvault/internal/data/repository"
	"streamvault/internal/dto/request"
	"streamvault/internal/dto/response"
	"streamvault/internal/usecase"

	"github.com/spf13/cobra"
)

func newTitlesCommand(ctx *commandContext) *cobra.Command {
	req := &request.TitleListRequest{}
	var genres string

	cmd := &cobra.Command{
		Use:   "titles",
		Short: "List catalog titles with the admin filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, logger, err := ctx.ensure()
			if err != nil {
				return err
			}

			db, err := ctx.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			if genres != "" {
				req.Genres = strings.Split(genres, ",")
			}

			repos := repository.NewRepository(db, nil, logger)
			service := usecase.NewTitleService(repos, config.Catalog, logger)

			page, err := service.ListTitles(cmd.Context(), req)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTitles(page))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&req.Status, "status", "", "Filter by status (draft, published, processing)")
	flags.StringVar(&req.Type, "type", "", "Filter by type (movie, series)")
	flags.StringVar(&req.Search, "q", "", "Search title, synopsis, cast and tags")
	flags.StringVar(&genres, "genres", "", "Comma separated genres; any match")
	flags.StringVar(&req.SortBy, "sort", "created_at", "Sort column (created_at, title, year, views_count, internal_rating)")
	flags.StringVar(&req.SortOrder, "order", "desc", "Sort order (asc, desc)")
	flags.IntVar(&req.Page, "page", 1, "Page number")
	flags.IntVar(&req.PerPage, "per-page", 0, "Rows per page (default from ADMIN_PAGE_SIZE)")

	return cmd
}

func renderTitles(page *response.PaginatedResponse[response.TitleResponse]) string {
	headers := []string{"Slug", "Title", "Type", "Status", "Year", "Views", "Featured"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft}

	rows := make([][]string, 0, len(page.Data))
	for _, t := range page.Data {
		year := "-"
		if t.Year != nil {
			year = strconv.Itoa(*t.Year)
		}
		featured := ""
		if t.Featured {
			featured = "yes"
		}
		rows = append(rows, []string{
			t.Slug,
			t.Title,
			t.Type,
			t.Status,
			year,
			strconv.FormatInt(t.ViewsCount, 10),
			featured,
		})
	}

	footer := fmt.Sprintf("page %d/%d, %d titles",
		page.Pagination.Page, page.Pagination.TotalPages, page.Pagination.Total)

	return renderTable(headers, rows, aligns) + "\n" + footer
}
