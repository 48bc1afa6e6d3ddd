package main

import (
	"fmt"
	"image"
	"sort"

	"github.com/fogleman/gg"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"quill/pkg/layout"
)

func (c *cli) newFetchCmd() *cobra.Command {
	var include bool
	cmd := &cobra.Command{
		Use:   "fetch URL",
		Short: "Fetch a page over HTTP/1.0 and print its body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := c.client().Fetch(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if include {
				fmt.Fprintf(out, "%d %s\n", resp.Status, resp.Explanation)
				names := make([]string, 0, len(resp.Headers))
				for name := range resp.Headers {
					names = append(names, name)
				}
				sort.Strings(names)
				for _, name := range names {
					fmt.Fprintf(out, "%s: %s\n", name, resp.Headers[name])
				}
				fmt.Fprintln(out)
			}
			_, err = fmt.Fprint(out, resp.Body)
			return err
		},
	}
	cmd.Flags().BoolVarP(&include, "include", "i", false, "print the status line and headers before the body")
	return cmd
}

func (c *cli) newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens URL|FILE",
		Short: "Print the token stream of a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := c.renderer(c.fetcher()).Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, tok := range doc.Tokens {
				fmt.Fprintln(out, tok)
			}
			return nil
		},
	}
}

func (c *cli) newLayoutCmd() *cobra.Command {
	var width float64
	cmd := &cobra.Command{
		Use:   "layout URL|FILE",
		Short: "Print the display list of a page as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if width <= 0 {
				width = c.cfg.Viewport.Width
			}
			r := c.renderer(c.fetcher())
			doc, err := r.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			dl := r.Layout(doc, width)
			if dl == nil {
				dl = layout.DisplayList{}
			}
			enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(dl)
		},
	}
	cmd.Flags().Float64Var(&width, "width", 0, "viewport width (default from config)")
	return cmd
}

func (c *cli) newRenderCmd() *cobra.Command {
	var (
		output        string
		width, height int
		scroll        float64
	)
	cmd := &cobra.Command{
		Use:   "render URL|FILE",
		Short: "Draw the visible part of a page to a PNG file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if width <= 0 {
				width = int(c.cfg.Viewport.Width)
			}
			if height <= 0 {
				height = int(c.cfg.Viewport.Height)
			}
			if scroll < 0 {
				return fmt.Errorf("scroll must not be negative, got %v", scroll)
			}
			r := c.renderer(c.fetcher())
			doc, err := r.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			target := image.NewRGBA(image.Rect(0, 0, width, height))
			dl := r.Layout(doc, float64(width))
			if err := r.Draw(dl, target, scroll); err != nil {
				return err
			}
			if err := gg.SavePNG(output, target); err != nil {
				return fmt.Errorf("saving %s: %w", output, err)
			}
			c.logger.Info("rendered",
				zap.String("uri", args[0]),
				zap.String("output", output),
				zap.Int("boxes", len(dl)),
				zap.Float64("scroll", scroll))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "quill.png", "output PNG file path")
	cmd.Flags().IntVar(&width, "width", 0, "viewport width in pixels (default from config)")
	cmd.Flags().IntVar(&height, "height", 0, "viewport height in pixels (default from config)")
	cmd.Flags().Float64Var(&scroll, "scroll", 0, "vertical scroll offset in pixels")
	return cmd
}
