// Package pdf renders selected jobs into a single A4 invoice document. Every
// job starts on a fresh page; the letterhead and banking boilerplate are
// fixed company data.
package pdf

import (
	"log"
	"math"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/rkradolfer/jobadmin/internal/format"
	"github.com/rkradolfer/jobadmin/internal/models"
)

// Issuer letterhead and banking details printed on every invoice.
const (
	companyName    = "DÜBENDORFER SANITÄR-SERVICE GmbH"
	companyAddress = "Glattwiesenstrasse 20, 8152 Glattbrugg"
	companyPhone   = "Tel: 076 388 95 60"

	bankName = "Bank: UBS Switzerland AG"
	bankIBAN = "IBAN: CH85 0028 3283 1127 5501 Y"
	bankBIC  = "BIC: UBSWCHZH80A"
	bankMWST = "MWST-Nr.: CHE-257.523.928"
)

// JobDocument pairs a persisted job with its line items for rendering.
type JobDocument struct {
	Job   models.Job
	Items []models.JobItem
}

// Invoice produces one PDF containing the given jobs in input order, one page
// group per job.
func Invoice(jobs []JobDocument) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()
	m := maroto.New(cfg)

	for _, jd := range jobs {
		m.AddPages(page.New().Add(jobRows(jd)...))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

func jobRows(jd JobDocument) []core.Row {
	rows := []core.Row{
		text.NewRow(10, companyName, props.Text{Size: 14, Style: fontstyle.Bold}),
		text.NewRow(5, companyAddress, props.Text{Size: 9}),
		text.NewRow(5, companyPhone, props.Text{Size: 9}),
		text.NewRow(8, ""),
		text.NewRow(5, "Bill To:", props.Text{Size: 10}),
		text.NewRow(5, jd.Job.ClientName, props.Text{Size: 10, Style: fontstyle.Bold}),
	}
	for _, line := range strings.Split(jd.Job.ClientAddress, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			rows = append(rows, text.NewRow(5, line, props.Text{Size: 10}))
		}
	}
	rows = append(rows,
		text.NewRow(8, ""),
		text.NewRow(5, "Invoice #: "+jd.Job.JobID, props.Text{Size: 10}),
		text.NewRow(5, "Date: "+jd.Job.JobDate, props.Text{Size: 10}),
		text.NewRow(6, ""),
	)

	rows = append(rows, tableRows(jd)...)

	rows = append(rows,
		text.NewRow(10, ""),
		text.NewRow(5, "Bank Details:", props.Text{Size: 10, Style: fontstyle.Bold}),
		text.NewRow(5, bankName, props.Text{Size: 9}),
		text.NewRow(5, bankIBAN, props.Text{Size: 9}),
		text.NewRow(5, bankBIC, props.Text{Size: 9}),
		text.NewRow(5, bankMWST, props.Text{Size: 9}),
	)
	return rows
}

// tableRows builds the items table: header, one row per item, one total row.
// A job without items still gets the header and the total row.
func tableRows(jd JobDocument) []core.Row {
	white := &props.Color{Red: 255, Green: 255, Blue: 255}
	gray := &props.Color{Red: 120, Green: 120, Blue: 120}

	header := row.New(7).Add(
		text.NewCol(6, "Description", props.Text{Size: 10, Style: fontstyle.Bold, Color: white}),
		text.NewCol(2, "Quantity", props.Text{Size: 10, Style: fontstyle.Bold, Color: white, Align: align.Right}),
		text.NewCol(2, "Price", props.Text{Size: 10, Style: fontstyle.Bold, Color: white, Align: align.Right}),
		text.NewCol(2, "Total", props.Text{Size: 10, Style: fontstyle.Bold, Color: white, Align: align.Right}),
	).WithStyle(&props.Cell{BackgroundColor: gray})

	rows := []core.Row{header}

	var lineSum float64
	for _, it := range jd.Items {
		lineTotal := it.LineTotal()
		lineSum += lineTotal
		rows = append(rows, row.New(6).Add(
			text.NewCol(6, it.Description, props.Text{Size: 9}),
			text.NewCol(2, format.Quantity(it.Quantity), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, format.CHF(it.Price), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, format.CHF(lineTotal), props.Text{Size: 9, Align: align.Right}),
		).WithStyle(&props.Cell{BorderType: border.Full}))
	}

	// The stored total is printed as-is; a disagreement with the recomputed
	// line sum means the data changed after save and is only warned about.
	if math.Abs(lineSum-jd.Job.TotalAmount) > 0.005 {
		log.Printf("invoice %s: stored total %.2f differs from line sum %.2f",
			jd.Job.JobID, jd.Job.TotalAmount, lineSum)
	}

	rows = append(rows, row.New(7).Add(
		col.New(8),
		text.NewCol(2, "Total:", props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, format.CHF(jd.Job.TotalAmount), props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
	))
	return rows
}
