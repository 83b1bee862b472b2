package render

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/mhdash/internal/dashboard"
)

// Sheet is one worksheet of an export workbook.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]any
}

// Sheets flattens a dashboard view into worksheets. Views that are not ok
// still yield a sheet holding their status message.
func Sheets(view any) ([]Sheet, error) {
	switch v := view.(type) {
	case *dashboard.FactorView:
		s := Sheet{Name: dashboard.Label(v.Page)}
		if v.Status != dashboard.StatusOK {
			s.Header = []string{"Status", "Message"}
			s.Rows = [][]any{{string(v.Status), v.Message}}
			return []Sheet{s}, nil
		}
		s.Header = []string{dashboard.Label(v.Dimension), "Category", v.Label}
		for _, g := range v.Counts.Groups {
			s.Rows = append(s.Rows, []any{v.Counts.Key(g, v.Dimension), string(g.Category), g.Count})
		}
		return []Sheet{s}, nil
	case *dashboard.SummaryView:
		s := Sheet{Name: "Summary", Header: []string{"Factor", "Category", "Count"}}
		for _, f := range v.Factors {
			for _, g := range f.Counts.Groups {
				s.Rows = append(s.Rows, []any{f.Label, string(g.Category), g.Count})
			}
		}
		return []Sheet{s}, nil
	case *dashboard.OverviewView:
		b := Sheet{Name: "Breakdown", Header: []string{v.Label, "Count", "Percent"}}
		for _, a := range v.Breakdown {
			b.Rows = append(b.Rows, []any{a.Answer, a.Count, a.Percent})
		}
		c := Sheet{Name: "Countries", Header: []string{"Country", "Surveys"}}
		if v.Map != nil {
			for _, cc := range v.Map.Countries {
				c.Rows = append(c.Rows, []any{cc.Country, cc.Count})
			}
		}
		return []Sheet{b, c}, nil
	}
	return nil, fmt.Errorf("cannot export %T", view)
}

// Workbook builds an excelize file with one sheet per entry.
func Workbook(sheets []Sheet) (*excelize.File, error) {
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook needs at least one sheet")
	}
	f := excelize.NewFile()
	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), s.Name); err != nil {
				_ = f.Close()
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("add sheet %s: %w", s.Name, err)
		}
		if err := writeSheet(f, s); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

func writeSheet(f *excelize.File, s Sheet) error {
	header := make([]any, len(s.Header))
	for i, h := range s.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(s.Name, "A1", &header); err != nil {
		return fmt.Errorf("write %s header: %w", s.Name, err)
	}
	for r, row := range s.Rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(s.Name, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", s.Name, r+2, err)
		}
	}
	return nil
}

// WriteWorkbook writes every view as worksheets to w.
func WriteWorkbook(w io.Writer, views ...any) error {
	var sheets []Sheet
	for _, v := range views {
		s, err := Sheets(v)
		if err != nil {
			return err
		}
		sheets = append(sheets, s...)
	}
	f, err := Workbook(sheets)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
