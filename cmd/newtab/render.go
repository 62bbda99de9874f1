package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/newtab/internal/errors"
	"github.com/vango-dev/newtab/pkg/components/deletemenu"
	"github.com/vango-dev/newtab/pkg/experiments"
	"github.com/vango-dev/newtab/pkg/render"
	"github.com/vango-dev/newtab/pkg/store"
)

type renderOptions struct {
	url        string
	bookmark   string
	visible    bool
	reverse    bool
	experiment string
	page       string
	source     string
	index      int
	pretty     bool
	selectKind string
}

func renderCmd() *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a DeleteMenu",
		Long: `Render a DeleteMenu to HTML, or with --select print the actions
selecting an option dispatches.

Examples:
  newtab render --url=https://foo.com --visible
  newtab render --url=https://foo.com --bookmark=bm-1 --experiment=exp-001 --reverse
  newtab render --url=https://foo.com --index=3 --select=block`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.url, "url", "", "Site URL (required)")
	cmd.Flags().StringVar(&opts.bookmark, "bookmark", "", "Bookmark GUID if the site is bookmarked")
	cmd.Flags().BoolVar(&opts.visible, "visible", false, "Render the menu visible")
	cmd.Flags().BoolVar(&opts.reverse, "reverse", false, "Reverse the menu options (experiment variant)")
	cmd.Flags().StringVar(&opts.experiment, "experiment", "", "Active experiment id")
	cmd.Flags().StringVar(&opts.page, "page", "", "Analytics page name")
	cmd.Flags().StringVar(&opts.source, "source", "", "Analytics source name")
	cmd.Flags().IntVar(&opts.index, "index", -1, "Tile position; negative leaves it out")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "Pretty-print the HTML")
	cmd.Flags().StringVar(&opts.selectKind, "select", "", "Print the actions for an option: delete or block")
	_ = cmd.MarkFlagRequired("url")

	return cmd
}

func (o renderOptions) props() deletemenu.Props {
	p := deletemenu.Props{
		URL:          o.url,
		BookmarkGUID: o.bookmark,
		Visible:      o.visible,
		Page:         o.page,
		Source:       o.source,
	}
	if o.index >= 0 {
		p.Index = deletemenu.Position(o.index)
	}
	return p
}

func (o renderOptions) state() store.State {
	return store.State{Experiments: &store.Experiments{
		Data: store.ExperimentData{ID: o.experiment, ReverseMenuOptions: o.reverse},
	}}
}

func runRender(cmd *cobra.Command, opts renderOptions) error {
	out := cmd.OutOrStdout()
	state := opts.state()

	if opts.selectKind != "" {
		kind := deletemenu.Kind(opts.selectKind)
		acts := deletemenu.BuildActions(opts.props(), experiments.FromState(state), kind)
		if acts == nil {
			return errors.Newf(errors.CategoryCLI, "unknown option %q", opts.selectKind).
				WithSuggestion("Use --select=delete or --select=block")
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(acts)
	}

	menu := deletemenu.New(opts.props(), deletemenu.Deps{
		State: store.StateFunc(func() store.State { return state }),
	})
	html, err := render.NewRenderer(render.RendererConfig{Pretty: opts.pretty}).RenderToString(menu.Render())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, html)
	return err
}
