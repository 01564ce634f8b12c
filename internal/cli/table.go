package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Veraticus/dex/internal/catalog"
	"github.com/Veraticus/dex/internal/model"
)

// PrintPokemonPage writes one page of records as a table followed by the
// page indicator.
func PrintPokemonPage(out io.Writer, page []model.Pokemon, info catalog.PageInfo) error {
	if len(page) == 0 {
		msg := "No pokemon match these filters."
		if info.Total > 0 {
			msg = "No pokemon on this page."
		}
		if _, err := fmt.Fprintln(out, FormatInfo(msg)); err != nil {
			return err
		}
		_, err := fmt.Fprintln(out, SubtleStyle.Render(PageIndicator(info)))
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tNAME\tTYPES\tWEIGHT")
	for _, p := range page {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", p.ID, p.DisplayName(), p.TypeList(), p.Weight)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}

	_, err := fmt.Fprintln(out, SubtleStyle.Render(PageIndicator(info)))
	return err
}

// PageIndicator renders "page X of Y (N matches)".
func PageIndicator(info catalog.PageInfo) string {
	total := max(info.TotalPages, 1)
	return fmt.Sprintf("page %d of %d (%d matches)", info.Page, total, info.Total)
}
