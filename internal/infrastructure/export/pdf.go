package export

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/tu-usuario/imprenta-pos/internal/application/dto"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// RecountSheetPDF genera la hoja de recuento físico de una tienda: la tabla de
// materiales con el saldo del sistema y una columna en blanco para anotar el
// conteo real. El resultado del recuento entra después como ajustes absolutos.
func RecountSheetPDF(storeName string, rows []dto.StockRowResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Hoja de recuento físico", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(storeName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range rows {
		m.AddRows(tableDetailRow(r))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generar hoja de recuento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(storeName string) core.Row {
	return row.New(12).Add(
		col.New(8).Add(
			text.New("Hoja de recuento físico", props.Text{
				Size: 14, Style: fontstyle.Bold, Color: colorPrimary,
			}),
			text.New("Tienda: "+storeName, props.Text{Top: 7, Size: 9}),
		),
		col.New(4).Add(
			text.New(time.Now().Format("2006-01-02 15:04"), props.Text{
				Align: align.Right, Size: 9, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 9}
	return row.New(7).Add(
		col.New(5).Add(text.New("Material", header)),
		col.New(2).Add(text.New("Stocked", header)),
		col.New(2).Add(text.New("Saldo", header)),
		col.New(3).Add(text.New("Conteo físico", header)),
	)
}

func tableDetailRow(r dto.StockRowResponse) core.Row {
	cell := props.Text{Size: 9}
	return row.New(6).Add(
		col.New(5).Add(text.New(r.MaterialName, cell)),
		col.New(2).Add(text.New(fmt.Sprintf("%d", r.Stocked), cell)),
		col.New(2).Add(text.New(fmt.Sprintf("%d", r.Remaining), cell)),
		// Columna en blanco: se llena a mano
		col.New(3).Add(text.New("____________", props.Text{Size: 9, Color: colorGray})),
	)
}

func footerRow() core.Row {
	return row.New(6).Add(
		col.New(12).Add(
			text.New("Cargar el resultado del conteo como ajuste absoluto; el consumo acumulado se resetea.", props.Text{
				Size: 8, Color: colorGray,
			}),
		),
	)
}
