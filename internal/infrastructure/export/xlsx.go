// Package export genera los archivos descargables del inventario: el listado
// de stock en Excel y la hoja de recuento físico en PDF.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/tu-usuario/imprenta-pos/internal/application/dto"
)

// StockXLSX genera el listado de stock de una tienda como libro Excel.
// La columna "conteo físico" queda vacía: el operador la llena a mano durante
// el inventario y el resultado se carga como ajustes absolutos.
func StockXLSX(storeName string, rows []dto.StockRowResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"material_id",
		"material",
		"stocked",
		"consumido",
		"saldo",
		"costo_unitario",
		"activo",
		"conteo físico", // la llena el operador
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("encabezado xlsx: %w", err)
	}

	rowIdx := 2
	for _, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, rowIdx)
		if err != nil {
			return nil, fmt.Errorf("celda xlsx: %w", err)
		}
		values := []interface{}{
			r.MaterialID,
			r.MaterialName,
			r.Stocked,
			r.Used,
			r.Remaining,
			r.UnitCost.String(),
			r.Active,
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("fila xlsx: %w", err)
		}
		rowIdx++
	}

	f.SetSheetName(sheet, storeName)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("escribir xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
