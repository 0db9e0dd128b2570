package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/VantageDataChat/pptassist/office"
	"github.com/VantageDataChat/pptassist/pptx"
	"github.com/VantageDataChat/pptassist/service"
	"github.com/VantageDataChat/pptassist/tablesource"
)

const deckArgs = "[deck.pptx]"

var alignTypes = map[string]service.AlignmentType{
	"left":   service.AlignLeft,
	"center": service.AlignCenter,
	"right":  service.AlignRight,
	"top":    service.AlignTop,
	"middle": service.AlignMiddle,
	"bottom": service.AlignBottom,
}

var alignRefs = map[string]service.AlignmentReference{
	"slide":     service.RefSlide,
	"selection": service.RefSelectedObjects,
	"first":     service.RefFirstObject,
	"last":      service.RefLastObject,
}

var axes = map[string]service.DistributionType{
	"horizontal": service.DistributeHorizontal,
	"vertical":   service.DistributeVertical,
}

// lookup resolves a flag value against a name table.
func lookup[T any](flag, value string, table map[string]T) (T, error) {
	v, ok := table[strings.ToLower(value)]
	if !ok {
		names := make([]string, 0, len(table))
		for k := range table {
			names = append(names, k)
		}
		sort.Strings(names)
		return v, fmt.Errorf("invalid --%s %q (must be one of %s)", flag, value, strings.Join(names, ", "))
	}
	return v, nil
}

func report(w io.Writer, what string, out service.Outcome) {
	if out.Command != "" {
		fmt.Fprintf(w, "%s: host command %s\n", what, out.Command)
		return
	}
	fmt.Fprintf(w, "%s: %d shape(s) moved\n", what, out.Changed)
	if !out.Confirmed() {
		fmt.Fprintf(w, "not confirmed by host: %s\n", strings.Join(out.Unconfirmed, ", "))
	}
}

func newFeaturesCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "features " + deckArgs,
		Short: "List what the host supports",
		Args:  cobra.MaximumNArgs(1),
		RunE: guarded(opts, false, func(cmd *cobra.Command, s *session, _ []string) error {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "platform: %s\nhost: %s %s\n", s.app.Platform(), s.app.Name(), s.app.Version())
			for _, f := range office.AllFeatures() {
				fmt.Fprintf(w, "  %-22s %t\n", f, s.app.IsFeatureSupported(f))
			}
			return nil
		}),
	}
}

func newAlignCmd(opts *globalOptions) *cobra.Command {
	var typ, ref string
	cmd := &cobra.Command{
		Use:   "align " + deckArgs,
		Short: "Align the selected shapes",
		Args:  cobra.MaximumNArgs(1),
		RunE: guarded(opts, true, func(cmd *cobra.Command, s *session, _ []string) error {
			t, err := lookup("type", typ, alignTypes)
			if err != nil {
				return err
			}
			r, err := lookup("ref", ref, alignRefs)
			if err != nil {
				return err
			}
			out, err := service.NewAlignmentService(s.app, s.log).AlignSelection(t, r)
			if err != nil {
				return err
			}
			report(cmd.OutOrStdout(), "align "+t.String(), out)
			return nil
		}),
	}
	cmd.Flags().StringVar(&typ, "type", "left", "Edge or centre line: left, center, right, top, middle, bottom")
	cmd.Flags().StringVar(&ref, "ref", "selection", "Reference: slide, selection, first, last")
	return cmd
}

func newDistributeCmd(opts *globalOptions) *cobra.Command {
	var axis string
	cmd := &cobra.Command{
		Use:   "distribute " + deckArgs,
		Short: "Space three or more selected shapes evenly",
		Args:  cobra.MaximumNArgs(1),
		RunE: guarded(opts, true, func(cmd *cobra.Command, s *session, _ []string) error {
			d, err := lookup("axis", axis, axes)
			if err != nil {
				return err
			}
			out, err := service.NewAlignmentService(s.app, s.log).DistributeSelection(d)
			if err != nil {
				return err
			}
			report(cmd.OutOrStdout(), "distribute "+d.String(), out)
			return nil
		}),
	}
	cmd.Flags().StringVar(&axis, "axis", "horizontal", "Axis: horizontal or vertical")
	return cmd
}

func newEqualizeCmd(opts *globalOptions) *cobra.Command {
	var dim string
	cmd := &cobra.Command{
		Use:   "equalize " + deckArgs,
		Short: "Give the selected shapes the largest width, height or both",
		Args:  cobra.MaximumNArgs(1),
		RunE: guarded(opts, true, func(cmd *cobra.Command, s *session, _ []string) error {
			svc := service.NewAlignmentService(s.app, s.log)
			shapes := s.selected()
			var (
				out service.Outcome
				err error
			)
			switch strings.ToLower(dim) {
			case "width":
				out, err = svc.SetEqualWidth(shapes)
			case "height":
				out, err = svc.SetEqualHeight(shapes)
			case "size":
				out, err = svc.SetEqualSize(shapes)
			default:
				return fmt.Errorf("invalid --dim %q (must be width, height or size)", dim)
			}
			if err != nil {
				return err
			}
			report(cmd.OutOrStdout(), "equalize "+dim, out)
			return nil
		}),
	}
	cmd.Flags().StringVar(&dim, "dim", "size", "Dimension: width, height or size")
	return cmd
}

func newSwapCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "swap " + deckArgs,
		Short: "Swap the positions of two selected shapes",
		Args:  cobra.MaximumNArgs(1),
		RunE: guarded(opts, true, func(cmd *cobra.Command, s *session, _ []string) error {
			shapes := s.selected()
			if len(shapes) != 2 {
				return fmt.Errorf("swap needs exactly two selected shapes, have %d", len(shapes))
			}
			out, err := service.NewAlignmentService(s.app, s.log).SwapPositions(shapes[0], shapes[1])
			if err != nil {
				return err
			}
			report(cmd.OutOrStdout(), "swap", out)
			return nil
		}),
	}
}

func newTableCmd(opts *globalOptions) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Format tables",
	}
	cmd.PersistentFlags().StringVar(&name, "table", "", "Table shape name (default: selected or first table)")

	format := &cobra.Command{
		Use:   "format " + deckArgs,
		Short: "Apply the configured header, body and banding styles",
		Args:  cobra.MaximumNArgs(1),
		RunE: guarded(opts, true, func(cmd *cobra.Command, s *session, _ []string) error {
			table, err := s.findTable(name)
			if err != nil {
				return err
			}
			if err := service.NewTableFormatService(s.app, s.cfg, s.log).FormatTable(table, s.tableOptions()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "formatted %dx%d table\n", table.Rows(), table.Columns())
			return nil
		}),
	}

	threeLine := &cobra.Command{
		Use:   "three-line " + deckArgs,
		Short: "Format a table with three horizontal rules and no grid",
		Args:  cobra.MaximumNArgs(1),
		RunE: guarded(opts, true, func(cmd *cobra.Command, s *session, _ []string) error {
			table, err := s.findTable(name)
			if err != nil {
				return err
			}
			if err := service.NewTableFormatService(s.app, s.cfg, s.log).FormatTableAsThreeLine(table); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "three-line table: %d rows\n", table.Rows())
			return nil
		}),
	}

	var decimals int
	numbers := &cobra.Command{
		Use:   "numbers " + deckArgs,
		Short: "Round numeric cells to fixed decimals and right-align them",
		Args:  cobra.MaximumNArgs(1),
		RunE: guarded(opts, true, func(cmd *cobra.Command, s *session, _ []string) error {
			table, err := s.findTable(name)
			if err != nil {
				return err
			}
			n, err := service.NewTableFormatService(s.app, s.cfg, s.log).FormatNumbers(table, decimals)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d numeric cell(s) formatted\n", n)
			return nil
		}),
	}
	numbers.Flags().IntVar(&decimals, "decimals", -1, "Decimal places (default: table.decimal_places from config)")

	var (
		xlsx, sheet, cellRange string
		left, top, width       float64
		rowHeight              float64
	)
	importCmd := &cobra.Command{
		Use:   "import " + deckArgs,
		Short: "Add a three-line table filled from a spreadsheet range",
		Args:  cobra.MaximumNArgs(1),
		RunE: guarded(opts, true, func(cmd *cobra.Command, s *session, _ []string) error {
			if xlsx == "" {
				return fmt.Errorf("--xlsx is required")
			}
			data, err := tablesource.ReadRange(xlsx, sheet, cellRange)
			if err != nil {
				return err
			}
			slide, err := s.activeSlide()
			if err != nil {
				return err
			}
			rows, cols := tablesource.Size(data)
			shape := slide.AddTable(rows, cols, office.NewShapeRect(left, top, width, rowHeight*float64(rows)))
			if shape == nil || shape.Table() == nil {
				return fmt.Errorf("host could not add a %dx%d table", rows, cols)
			}
			table := shape.Table()
			if _, err := tablesource.Fill(table, data); err != nil {
				return err
			}
			if err := service.NewTableFormatService(s.app, s.cfg, s.log).FormatTableAsThreeLine(table); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %dx%d table as %q\n", rows, cols, shape.Name())
			return nil
		}),
	}
	f := importCmd.Flags()
	f.StringVar(&xlsx, "xlsx", "", "Workbook to read")
	f.StringVar(&sheet, "sheet", "", "Sheet name (default: first sheet)")
	f.StringVar(&cellRange, "range", "", "Cell range such as A1:D8 (default: used range)")
	f.Float64Var(&left, "left", 40, "Table left in points")
	f.Float64Var(&top, "top", 100, "Table top in points")
	f.Float64Var(&width, "width", 640, "Table width in points")
	f.Float64Var(&rowHeight, "row-height", 24, "Row height in points")

	cmd.AddCommand(format, threeLine, numbers, importCmd)
	return cmd
}

// tableOptions builds the full formatting pass from the table settings.
func (s *session) tableOptions() service.TableFormatOptions {
	tc := s.cfg.Table
	header := office.RowStyle{
		Font:       tc.HeaderFont(),
		Horizontal: office.HAlignCenter,
		Vertical:   office.VAlignMiddle,
		Top:        tc.HeaderRule(),
		Bottom:     tc.HeaderRule(),
		Fill:       tc.HeaderFillColor(),
	}
	data := office.RowStyle{
		Font:     s.cfg.TableBodyFont(),
		Vertical: office.VAlignMiddle,
		Bottom:   tc.BodyRule(),
	}
	opts := service.TableFormatOptions{
		StyleID: tc.StyleID,
		Flags:   &office.TableFlags{FirstRow: true, BandRows: tc.AlternateFillColor().Valid},
		Header:  &header,
		Data:    &data,
	}
	if tc.AlternateFillColor().Valid {
		alt := data
		alt.Fill = tc.AlternateFillColor()
		opts.Alternate = &alt
	}
	return opts
}

func newGlassCardCmd(opts *globalOptions) *cobra.Command {
	var title string
	cmd := &cobra.Command{
		Use:   "glass-card " + deckArgs,
		Short: "Draw a translucent card over the selection or the slide centre",
		Args:  cobra.MaximumNArgs(1),
		RunE: guarded(opts, true, func(cmd *cobra.Command, s *session, _ []string) error {
			svc := service.NewGlassCardService(s.app, s.renderer, s.cfg, s.log)
			shape, err := svc.CreateGlassCard(service.GlassCardOptions{Title: title})
			if err != nil {
				return err
			}
			if shape == nil {
				return fmt.Errorf("host did not draw the card")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %q\n", shape.Name())
			return nil
		}),
	}
	cmd.Flags().StringVar(&title, "title", "", "Card title")
	return cmd
}

func newPreviewCmd(opts *globalOptions) *cobra.Command {
	var (
		image string
		width int
	)
	cmd := &cobra.Command{
		Use:   "preview deck.pptx",
		Short: "Render the active slide to a PNG or JPEG image",
		Args:  cobra.ExactArgs(1),
		RunE: guarded(opts, false, func(cmd *cobra.Command, s *session, _ []string) error {
			if s.doc == nil {
				return fmt.Errorf("preview works on files only")
			}
			if image == "" {
				return fmt.Errorf("--image is required")
			}
			ro := pptx.DefaultRenderOptions()
			ro.Width = width
			if strings.HasSuffix(strings.ToLower(image), ".jpg") || strings.HasSuffix(strings.ToLower(image), ".jpeg") {
				ro.Format = pptx.ImageFormatJPEG
			}
			slide, err := s.activeSlide()
			if err != nil {
				return err
			}
			if err := s.doc.Presentation().SaveSlideAsImage(slide.Index()-1, image, ro); err != nil {
				return fmt.Errorf("render slide %d: %w", slide.Index(), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "slide %d written to %s\n", slide.Index(), image)
			return nil
		}),
	}
	cmd.Flags().StringVar(&image, "image", "", "Output image path (.png, .jpg)")
	cmd.Flags().IntVar(&width, "width", 960, "Image width in pixels")
	return cmd
}
