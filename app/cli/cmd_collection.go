package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yoockh/showcase/internal/client"
	"github.com/yoockh/showcase/internal/models"
	"github.com/yoockh/showcase/internal/render"
)

type filterFlags struct {
	query  string
	facets []string
	view   string
}

func (f *filterFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.query, "query", "q", "", "case-insensitive text search")
	cmd.Flags().StringArrayVarP(&f.facets, "facet", "f", nil, "facet filter as name=value, repeatable; value \"all\" clears it")
	cmd.Flags().StringVar(&f.view, "view", "grid", "grid or list")
}

func (a *cli) listCmd() *cobra.Command {
	var ff filterFlags
	cmd := &cobra.Command{
		Use:   "list <kind>",
		Short: "Show one collection, filtered locally",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}
			mode, err := render.ParseMode(ff.view)
			if err != nil {
				return err
			}
			facets, err := parsePairs(ff.facets)
			if err != nil {
				return err
			}

			v, err := newView(kind, a.api, a.log)
			if err != nil {
				return err
			}
			// a failed load leaves an empty collection and a notice
			_ = v.Load(cmd.Context())

			v.SetSearch(ff.query)
			for name, val := range facets {
				v.SetFacet(name, val)
			}

			a.printView(cmd.OutOrStdout(), v, render.New(mode, a.width))
			return nil
		},
	}
	ff.bind(cmd)
	return cmd
}

func (a *cli) printView(w io.Writer, v view, r *render.Renderer) {
	if n := v.Notice(); n != nil {
		fmt.Fprintf(w, "%s: %s\n", n.Level, n.Message)
	}
	fmt.Fprint(w, r.Stats(v.Stats(), v.statsFacet()))
	fmt.Fprint(w, r.Render(v.items()))
}

type writeFlags struct {
	fields []string
	image  string
}

func (f *writeFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.fields, "field", nil, "form field as name=value, repeatable (skills takes a JSON list or a comma list)")
	cmd.Flags().StringVar(&f.image, "image", "", "path of an image to upload")
}

// form opens the image, if any. The returned func closes it.
func (f *writeFlags) form() (models.Form, *client.Image, func(), error) {
	pairs, err := parsePairs(f.fields)
	if err != nil {
		return nil, nil, nil, err
	}
	form := models.Form(pairs)
	if raw, ok := form["skills"]; ok {
		form["skills"] = models.FormatSkills(models.ParseSkills(raw))
	}

	if f.image == "" {
		return form, nil, func() {}, nil
	}
	file, err := os.Open(f.image)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open image: %w", err)
	}
	return form, &client.Image{Name: filepath.Base(f.image), Reader: file}, func() { _ = file.Close() }, nil
}

func (a *cli) createCmd() *cobra.Command {
	var wf writeFlags
	cmd := &cobra.Command{
		Use:     "create <kind>",
		Short:   "Create a record, then reload its collection",
		Example: `  showcase create certificate --field title="AWS Developer" --field category=cloud --image aws.png`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutate(cmd, args[0], &wf, func(ctx context.Context, v view, form models.Form, img *client.Image) error {
				return v.Create(ctx, form, img)
			})
		},
	}
	wf.bind(cmd)
	return cmd
}

func (a *cli) updateCmd() *cobra.Command {
	var wf writeFlags
	cmd := &cobra.Command{
		Use:   "update <kind> <id>",
		Short: "Update the given fields of a record, keeping its image unless --image is set",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[1]
			return a.mutate(cmd, args[0], &wf, func(ctx context.Context, v view, form models.Form, img *client.Image) error {
				return v.Update(ctx, id, form, img)
			})
		},
	}
	wf.bind(cmd)
	return cmd
}

type mutation func(ctx context.Context, v view, form models.Form, img *client.Image) error

func (a *cli) mutate(cmd *cobra.Command, kindArg string, wf *writeFlags, fn mutation) error {
	kind, err := parseKind(kindArg)
	if err != nil {
		return err
	}
	form, img, done, err := wf.form()
	if err != nil {
		return err
	}
	defer done()

	v, err := newView(kind, a.api, a.log)
	if err != nil {
		return err
	}
	err = fn(cmd.Context(), v, form, img)
	if n := v.Notice(); n != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", n.Level, n.Message)
	}
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), render.New(render.ModeList, a.width).Render(v.items()))
	return nil
}

func (a *cli) deleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <kind> <id>",
		Short: "Delete a record permanently",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}
			id := args[1]

			if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete %s %s? This cannot be undone. [y/N] ", kind.Label(), id)) {
				fmt.Fprintln(cmd.OutOrStdout(), "cancelled")
				return nil
			}

			v, err := newView(kind, a.api, a.log)
			if err != nil {
				return err
			}
			err = v.Delete(cmd.Context(), id)
			if n := v.Notice(); n != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", n.Level, n.Message)
			}
			return err
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	line, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
