package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xitongsys/parquet-go-source/writerfile"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/yintu/pmc/pkg/application/dto"
	"github.com/yintu/pmc/pkg/domain/entities"
)

type detailRecord struct {
	ProductionOrder   string   `parquet:"name=production_order, type=BYTE_ARRAY, convertedtype=UTF8"`
	CustomerOrder     string   `parquet:"name=customer_order, type=BYTE_ARRAY, convertedtype=UTF8"`
	ProductModel      string   `parquet:"name=product_model, type=BYTE_ARRAY, convertedtype=UTF8"`
	Site              string   `parquet:"name=site, type=BYTE_ARRAY, convertedtype=UTF8"`
	Month             string   `parquet:"name=month, type=BYTE_ARRAY, convertedtype=UTF8"`
	OrderValueRMB     *float64 `parquet:"name=order_value_rmb, type=DOUBLE, repetitiontype=OPTIONAL"`
	CountsOrderValue  bool     `parquet:"name=counts_order_value, type=BOOLEAN"`
	MaterialID        string   `parquet:"name=material_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	MaterialName      string   `parquet:"name=material_name, type=BYTE_ARRAY, convertedtype=UTF8"`
	ShortageQty       *float64 `parquet:"name=shortage_qty, type=DOUBLE, repetitiontype=OPTIONAL"`
	Supplier          string   `parquet:"name=supplier, type=BYTE_ARRAY, convertedtype=UTF8"`
	SupplierStatus    string   `parquet:"name=supplier_status, type=BYTE_ARRAY, convertedtype=UTF8"`
	UnitPriceRMB      *float64 `parquet:"name=unit_price_rmb, type=DOUBLE, repetitiontype=OPTIONAL"`
	PriceSource       string   `parquet:"name=price_source, type=BYTE_ARRAY, convertedtype=UTF8"`
	ShortageAmountRMB float64  `parquet:"name=shortage_amount_rmb, type=DOUBLE"`
	CountsShortage    bool     `parquet:"name=counts_shortage, type=BOOLEAN"`
	ReturnRatio       string   `parquet:"name=return_ratio, type=BYTE_ARRAY, convertedtype=UTF8"`
	Completeness      string   `parquet:"name=completeness, type=BYTE_ARRAY, convertedtype=UTF8"`
	Marks             string   `parquet:"name=marks, type=BYTE_ARRAY, convertedtype=UTF8"`
}

func newDetailRecord(r dto.DetailRow) *detailRecord {
	rec := &detailRecord{
		ProductionOrder:   string(r.Order.ProductionOrderID),
		CustomerOrder:     string(r.Order.CustomerOrderID),
		ProductModel:      r.Order.ProductModel,
		Site:              r.Order.Site.String(),
		Month:             r.Order.Month.String(),
		OrderValueRMB:     optionalFloat(r.OrderValueRMB),
		CountsOrderValue:  r.CountsOrderValue,
		MaterialID:        string(r.MaterialID()),
		Supplier:          r.Supplier.SupplierName(),
		SupplierStatus:    r.Supplier.Status.String(),
		UnitPriceRMB:      optionalFloat(r.UnitPriceRMB),
		PriceSource:       r.PriceSource.String(),
		ShortageAmountRMB: r.ShortageAmountRMB.InexactFloat64(),
		CountsShortage:    r.CountsShortage,
		ReturnRatio:       r.ReturnRatio.String(),
		Completeness:      r.Completeness.String(),
		Marks:             strings.Join(r.Marks, "; "),
	}
	if line, ok := r.Shortage.Get(); ok {
		rec.MaterialName = line.MaterialName
		rec.ShortageQty = optionalFloat(line.ShortageQty)
	}
	return rec
}

// writeParquet saves the detail rows as a snappy-compressed parquet file
func writeParquet(path string, rows []dto.DetailRow) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	fw := writerfile.NewWriterFile(file)
	pw, err := writer.NewParquetWriter(fw, new(detailRecord), 1)
	if err != nil {
		file.Close()
		return fmt.Errorf("failed to build parquet schema: %w", err)
	}
	pw.RowGroupSize = 64 * 1024 * 1024
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, row := range rows {
		if err := pw.Write(newDetailRecord(row)); err != nil {
			pw.WriteStop()
			file.Close()
			return fmt.Errorf("failed to write parquet row: %w", err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		file.Close()
		return fmt.Errorf("failed to flush parquet file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close parquet file: %w", err)
	}
	return nil
}

func optionalFloat(v entities.Optional[decimal.Decimal]) *float64 {
	d, ok := v.Get()
	if !ok {
		return nil
	}
	f := d.InexactFloat64()
	return &f
}
