package catalog

import (
	"io"

	"github.com/mikios34/storefront-backend/entity"
	"github.com/tealeg/xlsx"
)

var exportHeaders = []string{
	"ID", "Title", "Slug", "Description", "UnitPrice", "PriceWithTax",
	"Inventory", "CollectionID", "CreatedAt", "LastUpdate",
}

// WriteProductsXLSX renders products into a single "Products" sheet.
func WriteProductsXLSX(w io.Writer, products []entity.Product) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return err
	}

	headerRow := sheet.AddRow()
	for _, h := range exportHeaders {
		headerRow.AddCell().SetValue(h)
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetValue(p.ID.String())
		row.AddCell().SetValue(p.Title)
		row.AddCell().SetValue(p.Slug)
		row.AddCell().SetValue(p.Description)
		row.AddCell().SetValue(p.UnitPrice.StringFixed(2))
		row.AddCell().SetValue(p.PriceWithTax.StringFixed(2))
		row.AddCell().SetInt(p.Inventory)
		row.AddCell().SetValue(p.CollectionID.String())
		row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
		row.AddCell().SetValue(p.UpdatedAt.Format("2006-01-02 15:04:05"))
	}

	return file.Write(w)
}
