package report

import (
	"bytes"

	"github.com/xuri/excelize/v2"

	"github.com/sanathpai/ZambiaShoppe-sub001/internal/domain/dedup"
	"github.com/sanathpai/ZambiaShoppe-sub001/internal/domain/repair"
)

// ConsolidationPreviewXLSX формирует Excel-отчёт предпросмотра: одна строка
// на дубликат, видно что и куда уедет — до того, как что-то записано.
func ConsolidationPreviewXLSX(items []dedup.PreviewItem) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"user_id",
		"product_name",
		"variety",
		"brand",
		"size",
		"canonical_id",
		"duplicate_id",
		"units",
		"conversions",
		"prices",
		"purchases",
		"sales",
		"offerings",
		"inventory_action",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	row := 2
	for _, it := range items {
		excelRow := []interface{}{
			it.Key.UserID,
			it.Key.Name,
			it.Key.Variety,
			it.Key.Brand,
			it.Key.Size,
			it.CanonicalID,
			it.DuplicateID,
			it.Counts.Units,
			it.Counts.Conversions,
			it.Counts.Prices,
			it.Counts.Purchases,
			it.Counts.Sales,
			it.Counts.ProductOfferings,
			it.Counts.InventoryAction,
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			return nil, err
		}
		row++
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RepairSummaryXLSX — сводка прогона ремонтов, по строке на инструмент.
func RepairSummaryXLSX(reports []*repair.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{"tool", "scanned", "fixed", "deleted", "failures"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	row := 2
	for _, rep := range reports {
		excelRow := []interface{}{
			rep.Tool,
			rep.Scanned,
			rep.Fixed,
			rep.Deleted,
			len(rep.Failures),
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			return nil, err
		}
		row++
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
