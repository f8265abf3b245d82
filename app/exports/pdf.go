package exports

import (
	"fmt"
	"strings"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/22dimrodi-maker/student-orders/app/models"
	"github.com/22dimrodi-maker/student-orders/app/reports"
)

// SlipOptions carries the decorations of a printed document: an optional
// logo for the page header and the URL encoded into the footer QR code.
// A zero Now defaults to the wall clock.
type SlipOptions struct {
	LogoPath string
	AppURL   string
	Now      time.Time
}

// slipLine is one product row of a student's slip, already aggregated to the
// (product, unit price) grain.
type slipLine struct {
	Product   string
	UnitPrice decimal.Decimal
	Qty       int
	Total     decimal.Decimal
}

type studentSlip struct {
	Student  string
	Class    string
	Lines    []slipLine
	Subtotal decimal.Decimal
}

type schoolSlip struct {
	School   string
	Students []studentSlip
	Total    decimal.Decimal
}

type slipDocument struct {
	Schools []schoolSlip
	Grand   decimal.Decimal
}

// buildSlipDocument walks the detailed aggregation into the school → student
// → product hierarchy and accumulates subtotals, school totals and the grand
// total. Pagination happens later and cannot affect these sums.
func buildSlipDocument(rows []models.OrderLine) slipDocument {
	var doc slipDocument
	for _, g := range reports.Detailed(rows) {
		if len(doc.Schools) == 0 || doc.Schools[len(doc.Schools)-1].School != g.School {
			doc.Schools = append(doc.Schools, schoolSlip{School: g.School})
		}
		school := &doc.Schools[len(doc.Schools)-1]

		if len(school.Students) == 0 ||
			school.Students[len(school.Students)-1].Student != g.Student ||
			school.Students[len(school.Students)-1].Class != g.Class {
			school.Students = append(school.Students, studentSlip{Student: g.Student, Class: g.Class})
		}
		student := &school.Students[len(school.Students)-1]

		student.Lines = append(student.Lines, slipLine{
			Product:   g.Product,
			UnitPrice: g.UnitPrice,
			Qty:       g.Qty,
			Total:     g.Total,
		})
		student.Subtotal = student.Subtotal.Add(g.Total)
		school.Total = school.Total.Add(g.Total)
		doc.Grand = doc.Grand.Add(g.Total)
	}
	return doc
}

// OrderSlips renders the paginated slip document: one block per school,
// one sub-block per student with its product rows and subtotal, school
// totals, and a grand total at the end. The page header is redrawn and the
// footer (timestamp, QR code, page number) appended on every page.
func OrderSlips(rows []models.OrderLine, title string, opts SlipOptions) ([]byte, error) {
	doc := buildSlipDocument(rows)
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	cfg := config.NewBuilder().
		WithPageNumber().
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()
	m := maroto.New(cfg)

	if err := m.RegisterHeader(pageHeader(title, opts)...); err != nil {
		return nil, fmt.Errorf("failed to register header: %w", err)
	}
	if err := m.RegisterFooter(pageFooter(opts)...); err != nil {
		return nil, fmt.Errorf("failed to register footer: %w", err)
	}

	for _, school := range doc.Schools {
		heading := school.School
		if heading == "" {
			heading = "No school"
		}
		m.AddRow(9, text.NewCol(12, heading, props.Text{
			Size:  12,
			Style: fontstyle.Bold,
			Top:   2,
		}))

		for _, student := range school.Students {
			label := student.Student
			if student.Class != "" {
				label = fmt.Sprintf("%s (%s)", student.Student, student.Class)
			}
			m.AddRow(7, text.NewCol(12, label, props.Text{
				Size:  10,
				Style: fontstyle.Bold,
				Top:   1,
			}))
			m.AddRow(6,
				text.NewCol(6, "Product", props.Text{Size: 8, Style: fontstyle.Bold}),
				text.NewCol(2, "Unit price", props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}),
				text.NewCol(2, "Qty", props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}),
				text.NewCol(2, "Total", props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}),
			)
			for _, l := range student.Lines {
				m.AddRow(5,
					text.NewCol(6, l.Product, props.Text{Size: 8}),
					text.NewCol(2, l.UnitPrice.StringFixed(2), props.Text{Size: 8, Align: align.Right}),
					text.NewCol(2, fmt.Sprintf("%d", l.Qty), props.Text{Size: 8, Align: align.Right}),
					text.NewCol(2, l.Total.StringFixed(2), props.Text{Size: 8, Align: align.Right}),
				)
			}
			m.AddRow(6,
				col.New(8),
				text.NewCol(2, "Subtotal", props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}),
				text.NewCol(2, student.Subtotal.StringFixed(2), props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}),
			)
		}

		m.AddRow(2, line.NewCol(12))
		m.AddRow(7,
			col.New(6),
			text.NewCol(4, "School total", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
			text.NewCol(2, school.Total.StringFixed(2), props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
		)
	}

	m.AddRow(3, line.NewCol(12))
	m.AddRow(9,
		col.New(6),
		text.NewCol(4, "Grand total", props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, doc.Grand.StringFixed(2), props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right}),
	)

	generated, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate document: %w", err)
	}
	return generated.GetBytes(), nil
}

// Column describes one column of the tabular document variant.
type Column struct {
	Header string
	Width  int
	Money  bool
	Right  bool
}

// MoneyHeader reports whether a column header signals a monetary column, in
// which case its cells are rendered with two decimals.
func MoneyHeader(label string) bool {
	l := strings.ToLower(label)
	for _, marker := range []string{"total", "price", "σύνολο", "τιμή"} {
		if strings.Contains(l, marker) {
			return true
		}
	}
	return false
}

// Table renders the single-table document variant: the title and column
// headers are part of the page header, so they are redrawn after every page
// break; one line per row with per-column alignment.
func Table(title string, cols []Column, rows [][]string, opts SlipOptions) ([]byte, error) {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	cfg := config.NewBuilder().
		WithPageNumber().
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()
	m := maroto.New(cfg)

	header := pageHeader(title, opts)
	headerCols := make([]core.Col, 0, len(cols))
	for _, c := range cols {
		al := align.Left
		if c.Right || c.Money {
			al = align.Right
		}
		headerCols = append(headerCols, text.NewCol(c.Width, c.Header, props.Text{
			Size:  8,
			Style: fontstyle.Bold,
			Align: al,
		}))
	}
	header = append(header, row.New(6).Add(headerCols...))
	if err := m.RegisterHeader(header...); err != nil {
		return nil, fmt.Errorf("failed to register header: %w", err)
	}
	if err := m.RegisterFooter(pageFooter(opts)...); err != nil {
		return nil, fmt.Errorf("failed to register footer: %w", err)
	}

	for _, r := range rows {
		rowCols := make([]core.Col, 0, len(cols))
		for i, c := range cols {
			value := ""
			if i < len(r) {
				value = r[i]
			}
			al := align.Left
			if c.Right || c.Money {
				al = align.Right
			}
			if c.Money {
				if d, err := decimal.NewFromString(strings.TrimSpace(value)); err == nil {
					value = d.StringFixed(2)
				}
			}
			rowCols = append(rowCols, text.NewCol(c.Width, value, props.Text{Size: 8, Align: al}))
		}
		m.AddRow(5, rowCols...)
	}

	generated, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate document: %w", err)
	}
	return generated.GetBytes(), nil
}

func pageHeader(title string, opts SlipOptions) []core.Row {
	var cols []core.Col
	if opts.LogoPath != "" {
		cols = append(cols, image.NewFromFileCol(2, opts.LogoPath, props.Rect{Center: true, Percent: 90}))
	} else {
		cols = append(cols, col.New(2))
	}
	cols = append(cols,
		text.NewCol(8, title, props.Text{Size: 14, Style: fontstyle.Bold, Align: align.Center, Top: 3}),
		text.NewCol(2, opts.Now.Format("02/01/2006"), props.Text{Size: 9, Align: align.Right, Top: 4}),
	)
	return []core.Row{
		row.New(16).Add(cols...),
		row.New(2).Add(line.NewCol(12)),
	}
}

func pageFooter(opts SlipOptions) []core.Row {
	cols := []core.Col{
		text.NewCol(8, "Printed "+opts.Now.Format("02/01/2006 15:04"), props.Text{Size: 7, Top: 6}),
	}
	if opts.AppURL != "" {
		cols = append(cols, code.NewQrCol(4, opts.AppURL, props.Rect{Center: true, Percent: 100}))
	} else {
		cols = append(cols, col.New(4))
	}
	return []core.Row{row.New(12).Add(cols...)}
}
