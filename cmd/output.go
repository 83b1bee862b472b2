package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KaramelBytes/mhdash/internal/dashboard"
	"github.com/KaramelBytes/mhdash/internal/render"
	"github.com/KaramelBytes/mhdash/internal/utils"
)

// outputFlags are shared by the page commands.
type outputFlags struct {
	format    string
	chart     string
	chartKind string
	xlsx      string
}

func (o *outputFlags) register(c *cobra.Command) {
	c.Flags().StringVarP(&o.format, "format", "f", "table", "output format: table|markdown|json")
	c.Flags().StringVar(&o.chart, "chart", "", "write a chart image (.svg or .png)")
	c.Flags().StringVar(&o.chartKind, "chart-kind", "bar", "chart type: bar|pie")
	c.Flags().StringVar(&o.xlsx, "xlsx", "", "write the page as an XLSX workbook")
}

// page is a dashboard view that can report itself.
type page interface {
	Markdown() string
}

// emit prints view in the chosen format, then writes the optional chart and workbook.
func (o *outputFlags) emit(cmd *cobra.Command, view page, ok bool, warnings []string, table func(io.Writer)) error {
	out := cmd.OutOrStdout()
	for _, w := range warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: %s\n", w)
		logger.Debug("page warning", zap.String("command", cmd.Name()), zap.String("warning", w))
	}

	switch strings.ToLower(o.format) {
	case "json":
		b, err := utils.PrettyJSON(view)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(b))
	case "markdown", "md":
		fmt.Fprint(out, view.Markdown())
	case "table", "":
		if !ok {
			fmt.Fprint(out, view.Markdown())
			break
		}
		table(out)
	default:
		return fmt.Errorf("unsupported --format: %s (use table|markdown|json)", o.format)
	}

	if o.chart != "" {
		if err := o.writeChart(cmd, view); err != nil {
			return err
		}
	}
	if o.xlsx != "" {
		var buf bytes.Buffer
		if err := render.WriteWorkbook(&buf, view); err != nil {
			return err
		}
		if err := writeFile(o.xlsx, buf.Bytes()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote workbook to %s\n", o.xlsx)
	}
	return nil
}

func (o *outputFlags) writeChart(cmd *cobra.Command, view page) error {
	kind, err := render.ParseKind(o.chartKind)
	if err != nil {
		return err
	}
	format, err := render.ParseFormat(o.chart)
	if err != nil {
		return err
	}
	size := render.Size{Width: settings().ChartWidth, Height: settings().ChartHeight}
	var buf bytes.Buffer
	if err := render.Chart(&buf, view, kind, format, size); err != nil {
		if errors.Is(err, render.ErrNotDrawable) {
			fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: no chart written to %s: nothing to draw\n", o.chart)
			return nil
		}
		return err
	}
	if err := writeFile(o.chart, buf.Bytes()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote chart to %s\n", o.chart)
	return nil
}

func writeFile(path string, b []byte) error {
	if err := utils.EnsureParentDir(path); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func factorStatus(v *dashboard.FactorView) bool { return v.Status == dashboard.StatusOK }
