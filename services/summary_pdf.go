package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GenerateSummaryPDF renders the quotation summary document using
// maroto/v2 and returns the raw PDF bytes.
func GenerateSummaryPDF(data SummaryData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).
		WithTopMargin(12).
		WithRightMargin(12).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addSummaryTitle(m, data)
	addQuotationInfo(m, data)
	addServiceTableHeader(m)
	for _, r := range data.Rows {
		addServiceTableRow(m, r)
	}
	addPricingSummary(m, data)
	addTermsSection(m, data)
	addSignatureBlock(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addSummaryTitle adds the firm banner and document title.
func addSummaryTitle(m core.Maroto, data SummaryData) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New("RERA Easy", props.Text{
					Size:  18,
					Style: fontstyle.Bold,
					Align: align.Center,
					Color: &props.Color{Red: 25, Green: 70, Blue: 140},
				}),
			),
		),
		row.New(8).Add(
			col.New(12).Add(
				text.New("Quotation for MahaRERA Compliance Services", props.Text{
					Size:  11,
					Align: align.Center,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
		row.New(6).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("Quotation No: %s", data.Quotation.ID), props.Text{
					Size:  9,
					Align: align.Left,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Date: %s", data.GeneratedDate), props.Text{
					Size:  9,
					Align: align.Right,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
		row.New(4).Add(col.New(12).Add(line.New())),
	)
}

// addQuotationInfo adds the developer/project detail grid.
func addQuotationInfo(m core.Maroto, data SummaryData) {
	q := data.Quotation
	pairs := [][2]string{
		{"Developer", q.DeveloperName},
		{"Project", q.ProjectName},
		{"Category", q.DeveloperType},
		{"Region", q.ProjectRegion},
		{"Plot Area", fmt.Sprintf("%.0f sq.m.", q.PlotArea)},
		{"Validity", q.Validity},
		{"Advance Payment", q.PaymentSchedule},
	}
	if q.ReraNumber != "" {
		pairs = append(pairs, [2]string{"RERA No", q.ReraNumber})
	}

	for i := 0; i < len(pairs); i += 2 {
		cols := []core.Col{
			infoCol(pairs[i][0], pairs[i][1]),
		}
		if i+1 < len(pairs) {
			cols = append(cols, infoCol(pairs[i+1][0], pairs[i+1][1]))
		} else {
			cols = append(cols, col.New(6))
		}
		m.AddRows(row.New(6).Add(cols...))
	}

	m.AddRows(row.New(4).Add(col.New(12)))
}

func infoCol(label, value string) core.Col {
	return col.New(6).Add(
		text.New(fmt.Sprintf("%s: %s", label, value), props.Text{
			Size:  9,
			Align: align.Left,
		}),
	)
}

// addServiceTableHeader adds the column header band of the service table.
func addServiceTableHeader(m core.Maroto) {
	headerCell := props.Cell{BackgroundColor: &props.Color{Red: 51, Green: 51, Blue: 51}}
	headerText := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left
	headerTextRight := headerText
	headerTextRight.Align = align.Right

	m.AddRows(
		row.New(8).Add(
			col.New(2).Add(text.New("Sr No", headerText)).WithStyle(&headerCell),
			col.New(5).Add(text.New("Particulars", headerTextLeft)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Duration", headerText)).WithStyle(&headerCell),
			col.New(3).Add(text.New("Amount", headerTextRight)).WithStyle(&headerCell),
		),
	)
}

// addServiceTableRow adds one line of the service table. Header rows are
// bold on a light band; sub-service rows indent without amounts.
func addServiceTableRow(m core.Maroto, r SummaryRow) {
	style := props.Text{Size: 9, Align: align.Left}
	indent := ""
	var cellStyle *props.Cell

	switch r.Level {
	case 0:
		style.Style = fontstyle.Bold
		cellStyle = &props.Cell{BackgroundColor: &props.Color{Red: 235, Green: 238, Blue: 245}}
	case 2:
		style.Size = 8
		style.Color = &props.Color{Red: 90, Green: 90, Blue: 90}
		indent = "    - "
	}

	amount := ""
	if r.ShowAmount {
		amount = FormatINRWhole(r.Amount)
	}

	colIndex := col.New(2).Add(text.New(r.Index, props.Text{
		Size: style.Size, Style: style.Style, Align: align.Center, Color: style.Color,
	}))
	colDesc := col.New(5).Add(text.New(indent+r.Description, style))
	colDuration := col.New(2).Add(text.New(r.Duration, props.Text{
		Size: 8, Align: align.Center, Color: &props.Color{Red: 90, Green: 90, Blue: 90},
	}))
	colAmount := col.New(3).Add(text.New(amount, props.Text{
		Size: style.Size, Style: style.Style, Align: align.Right,
	}))

	if cellStyle != nil {
		colIndex = colIndex.WithStyle(cellStyle)
		colDesc = colDesc.WithStyle(cellStyle)
		colDuration = colDuration.WithStyle(cellStyle)
		colAmount = colAmount.WithStyle(cellStyle)
	}

	m.AddRows(row.New(6).Add(colIndex, colDesc, colDuration, colAmount))
}

// addPricingSummary adds the totals block with discounts and the amount
// in words.
func addPricingSummary(m core.Maroto, data SummaryData) {
	m.AddRows(row.New(4).Add(col.New(12).Add(line.New())))

	addTotalLine(m, "Subtotal (before discounts)", data.OriginalSubtotal, false)
	if data.ServiceDiscount > 0 {
		addTotalLine(m, "Service Discounts", -data.ServiceDiscount, false)
	}
	if data.GlobalDiscount > 0 {
		label := "Global Discount"
		if data.Quotation.GlobalDiscountPercent > 0 {
			label = fmt.Sprintf("Global Discount (%s)", FormatPercent(data.Quotation.GlobalDiscountPercent))
		}
		addTotalLine(m, label, -data.GlobalDiscount, false)
	}
	addTotalLine(m, "Total Amount", data.TotalAmount, true)

	m.AddRows(
		row.New(7).Add(
			col.New(12).Add(
				text.New(fmt.Sprintf("Amount in words: %s", data.AmountInWords), props.Text{
					Size:  9,
					Style: fontstyle.Italic,
					Align: align.Left,
				}),
			),
		),
	)
}

func addTotalLine(m core.Maroto, label string, amount float64, grand bool) {
	size := 9.0
	style := fontstyle.Normal
	if grand {
		size = 11
		style = fontstyle.Bold
	}

	rendered := FormatINRWhole(amount)
	if amount < 0 {
		rendered = "-" + FormatINRWhole(-amount)
	}

	m.AddRows(
		row.New(6).Add(
			col.New(9).Add(text.New(label, props.Text{
				Size: size, Style: style, Align: align.Right,
			})),
			col.New(3).Add(text.New(rendered, props.Text{
				Size: size, Style: style, Align: align.Right,
			})),
		),
	)
}

// addTermsSection lists the accepted terms and conditions.
func addTermsSection(m core.Maroto, data SummaryData) {
	if len(data.Terms) == 0 {
		return
	}

	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New("Terms & Conditions", props.Text{
					Size:  11,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
		),
	)

	for i, term := range data.Terms {
		m.AddRows(
			row.New(5).Add(
				col.New(12).Add(
					text.New(fmt.Sprintf("%d. %s", i+1, term), props.Text{
						Size:  8,
						Align: align.Left,
						Color: &props.Color{Red: 60, Green: 60, Blue: 60},
					}),
				),
			),
		)
	}
}

// addSignatureBlock adds the acceptance signature area.
func addSignatureBlock(m core.Maroto, data SummaryData) {
	m.AddRows(
		row.New(14).Add(col.New(12)),
		row.New(6).Add(
			col.New(6).Add(text.New("For RERA Easy", props.Text{
				Size: 9, Style: fontstyle.Bold, Align: align.Left,
			})),
			col.New(6).Add(text.New("Accepted by (Developer)", props.Text{
				Size: 9, Style: fontstyle.Bold, Align: align.Right,
			})),
		),
		row.New(12).Add(col.New(12)),
		row.New(6).Add(
			col.New(6).Add(text.New("Authorised Signatory", props.Text{
				Size: 8, Align: align.Left, Color: &props.Color{Red: 90, Green: 90, Blue: 90},
			})),
			col.New(6).Add(text.New("Signature & Stamp", props.Text{
				Size: 8, Align: align.Right, Color: &props.Color{Red: 90, Green: 90, Blue: 90},
			})),
		),
	)
}
