package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// PaymentReportData is everything the payment report needs, pre-formatted.
type PaymentReportData struct {
	ChapterName    string
	ChapterAddress string
	GeneratedAt    string
	Period         string

	TotalMembers   int
	TotalPayments  int
	TotalCollected string

	Rows []PaymentReportRow
}

type PaymentReportRow struct {
	MemberName  string
	BatchNumber string
	PaymentDate string
	Amount      string
	Notes       string
}

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

func (p *PDFProvider) GeneratePaymentReport(ctx context.Context, data PaymentReportData) (io.Reader, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, data.ChapterName, props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)
	if data.ChapterAddress != "" {
		m.AddRow(8,
			text.NewCol(12, data.ChapterAddress, props.Text{Size: 9}),
		)
	}
	m.AddRow(10,
		text.NewCol(12, "Dues Payment Report", props.Text{
			Size:  13,
			Style: fontstyle.Bold,
		}),
	)

	// Summary block
	m.AddRow(24,
		col.New(6).Add(
			text.New("Generated: "+data.GeneratedAt, props.Text{Top: 0, Size: 9}),
			text.New("Period: "+data.Period, props.Text{Top: 5, Size: 9}),
		),
		col.New(6).Add(
			text.New(fmt.Sprintf("Members: %d", data.TotalMembers), props.Text{Top: 0, Size: 9}),
			text.New(fmt.Sprintf("Payments: %d", data.TotalPayments), props.Text{Top: 5, Size: 9}),
			text.New("Collected: "+data.TotalCollected, props.Text{Top: 10, Size: 9, Style: fontstyle.Bold}),
		),
	)

	// Table header
	m.AddRow(10,
		text.NewCol(4, "Member", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Batch", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Date", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Notes", props.Text{Style: fontstyle.Bold, Size: 9}),
	)

	for _, row := range data.Rows {
		m.AddRow(8,
			text.NewCol(4, row.MemberName, props.Text{Size: 9}),
			text.NewCol(2, row.BatchNumber, props.Text{Size: 9}),
			text.NewCol(2, row.PaymentDate, props.Text{Size: 9}),
			text.NewCol(2, row.Amount, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, row.Notes, props.Text{Size: 9}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(doc.GetBytes()), nil
}
