package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/list"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/mchmarny/navmenu/internal/config"
	"github.com/mchmarny/navmenu/pkg/menu"
)

const separatorLine = "──────"

func newRenderCmd() *cobra.Command {
	var (
		uri    string
		asJSON bool
		hidden bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the menu resolved for a page",
		Long: `Print the menu as seen from the page at --uri: resolved links with
propagated parameters, active items and display conditions applied.`,
		Example: `  menud render -f menu.yaml --uri '/app/docs?mode=dark'
  menud render -f menu.yaml --uri / --json --condition admin=true`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := config.LoadSettings(cmd.Flags())
			if err != nil {
				return err
			}

			m, err := loadMenu(cmd, s)
			if err != nil {
				return err
			}

			var opts []menu.ViewOption
			if hidden {
				opts = append(opts, menu.WithHidden())
			}
			view := menu.Resolve(m, menu.NewRequest(uri), opts...)

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), view)
			}
			return writeTree(cmd.OutOrStdout(), view)
		},
	}

	cmd.Flags().StringVar(&uri, "uri", "/", "request URI of the page the menu is rendered for")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the view as JSON")
	cmd.Flags().BoolVar(&hidden, "hidden", false, "include hidden items")

	return cmd
}

func writeJSON(w io.Writer, view menu.View) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(view)
}

func writeTree(w io.Writer, view menu.View) error {
	l := list.NewWriter()
	l.SetStyle(list.StyleConnectedRounded)
	appendItems(l, view.Items)

	title := view.Title
	if view.Version != "" {
		title += " (" + view.Version + ")"
	}

	if _, err := fmt.Fprintln(w, text.Bold.Sprint(title)); err != nil {
		return err
	}
	if len(view.Items) == 0 {
		_, err := fmt.Fprintln(w, text.Faint.Sprint("(empty)"))
		return err
	}
	_, err := fmt.Fprintln(w, l.Render())
	return err
}

func appendItems(l list.Writer, items []menu.ItemView) {
	for _, it := range items {
		l.AppendItem(describe(it))
		if len(it.Children) > 0 {
			l.Indent()
			appendItems(l, it.Children)
			l.UnIndent()
		}
	}
}

func describe(it menu.ItemView) string {
	if it.Separator {
		return text.Faint.Sprint(separatorLine)
	}

	var b strings.Builder
	if it.Active {
		b.WriteString(text.Colors{text.Bold, text.FgGreen}.Sprint(it.Label))
	} else {
		b.WriteString(it.Label)
	}

	if it.Link != "" {
		b.WriteString(" ")
		b.WriteString(text.FgCyan.Sprint(it.Link))
	}

	var tags []string
	if it.Active {
		tags = append(tags, "active")
	}
	if it.Extended {
		tags = append(tags, "extended")
	}
	if it.Hidden {
		tags = append(tags, "hidden")
	}
	if it.CSSClass != "" {
		tags = append(tags, "."+it.CSSClass)
	}
	for _, s := range it.Styles {
		tags = append(tags, string(s.Kind))
	}

	if len(tags) > 0 {
		b.WriteString(" ")
		b.WriteString(text.Faint.Sprint("[" + strings.Join(tags, ", ") + "]"))
	}

	return b.String()
}
