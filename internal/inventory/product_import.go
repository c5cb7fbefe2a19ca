package inventory

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"fabrica-backend/internal/ledger"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ParseProductSheet reads products from the first sheet of an .xlsx file.
// Columns: name, code, stock, sale price, unit cost, category. A first row
// carrying the column titles is skipped.
func ParseProductSheet(r io.Reader) ([]ledger.NewProduct, error) {
	excelFile, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: excel file could not be read: %v", ledger.ErrInvalidArgument, err)
	}
	defer excelFile.Close()

	sheetList := excelFile.GetSheetList()
	if len(sheetList) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ledger.ErrInvalidArgument)
	}

	rows, err := excelFile.GetRows(sheetList[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: sheet could not be read: %v", ledger.ErrInvalidArgument, err)
	}

	start := 0
	if len(rows) > 0 && isHeaderRow(rows[0]) {
		start = 1
	}

	products := make([]ledger.NewProduct, 0, len(rows))
	for i := start; i < len(rows); i++ {
		row := rows[i]
		if len(row) == 0 || strings.TrimSpace(strings.Join(row, "")) == "" {
			continue
		}

		p, err := parseProductRow(row)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ledger.ErrInvalidArgument, i+1, err)
		}
		products = append(products, p)
	}

	if len(products) == 0 {
		return nil, fmt.Errorf("%w: no products found in sheet", ledger.ErrInvalidArgument)
	}
	return products, nil
}

var (
	nameHeaders = map[string]bool{"NOMBRE": true, "PRODUCTO": true, "NAME": true, "PRODUCT": true}
	codeHeaders = map[string]bool{"CÓDIGO": true, "CODIGO": true, "CODE": true}
)

// isHeaderRow matches whole column titles only, so a product called
// "Producto A" is still data.
func isHeaderRow(row []string) bool {
	cell := func(i int) string {
		if i < len(row) {
			return strings.ToUpper(strings.TrimSpace(row[i]))
		}
		return ""
	}
	return nameHeaders[cell(0)] || codeHeaders[cell(1)]
}

func parseProductRow(row []string) (ledger.NewProduct, error) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	p := ledger.NewProduct{
		Name:     cell(0),
		Code:     cell(1),
		Category: cell(5),
	}

	if s := cell(2); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return p, fmt.Errorf("stock %q is not a whole number", s)
		}
		p.Stock = n
	}

	var err error
	if p.SalePrice, err = parseAmount(cell(3)); err != nil {
		return p, fmt.Errorf("sale price: %v", err)
	}
	if p.UnitCost, err = parseAmount(cell(4)); err != nil {
		return p, fmt.Errorf("unit cost: %v", err)
	}
	return p, nil
}

var thousandsGrouped = regexp.MustCompile(`^-?\d{1,3}(\.\d{3})+$`)

// parseAmount accepts plain numbers and guaraní-formatted text like "Gs. 1.500".
func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	clean := strings.ReplaceAll(strings.TrimPrefix(s, "Gs."), " ", "")
	switch {
	case thousandsGrouped.MatchString(clean):
		clean = strings.ReplaceAll(clean, ".", "")
	case strings.Contains(clean, ","):
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%q is not an amount", s)
	}
	return d, nil
}

// POST /api/products/import (multipart, field "file")
func ImportProductsHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "No se pudo subir el archivo: "+err.Error())
		}

		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			return fiber.NewError(fiber.StatusBadRequest, "Solo se aceptan archivos .xlsx")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo abrir el archivo: "+err.Error())
		}
		defer file.Close()

		rows, err := ParseProductSheet(file)
		if err != nil {
			return err
		}

		n, err := store.ImportProducts(c.UserContext(), rows)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"imported": n,
			"message":  fmt.Sprintf("%d productos importados", n),
		})
	}
}
