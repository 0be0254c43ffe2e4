// test/helpers/archive.go
package helpers

import (
	"bytes"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/seller-sync/internal/core/domain"
)

// BannerRows is the number of rows the vendor export places above the header
const BannerRows = 17

// DefaultHeader is the vendor column header row
var DefaultHeader = []string{"Наименование", "Код", "Количество", "Цена"}

// ArchiveEntry is one file inside a test zip archive
type ArchiveEntry struct {
	Name string
	Data []byte
}

// BuildSheet renders a workbook with banner rows, the given header and data
// rows, mimicking the vendor export layout.
func BuildSheet(t testing.TB, header []string, rows [][]string) []byte {
	t.Helper()

	return BuildSheetWith(t, header, func(sheet *xlsx.Sheet) {
		for _, values := range rows {
			row := sheet.AddRow()
			for _, v := range values {
				row.AddCell().SetString(v)
			}
		}
	})
}

// BuildSheetWith renders the banner and header rows and lets fill add data
// rows with typed cells.
func BuildSheetWith(t testing.TB, header []string, fill func(sheet *xlsx.Sheet)) []byte {
	t.Helper()

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Остатки")
	require.NoError(t, err)

	for i := 0; i < BannerRows; i++ {
		row := sheet.AddRow()
		row.AddCell().SetString("Прайс-лист")
		if i == 1 {
			row.AddCell().SetString("Остатки на складе")
		}
	}

	headerRow := sheet.AddRow()
	for _, name := range header {
		headerRow.AddCell().SetString(name)
	}

	fill(sheet)

	var buf bytes.Buffer
	require.NoError(t, file.Write(&buf))
	return buf.Bytes()
}

// BuildSpreadsheet renders inventory records in the default vendor layout
func BuildSpreadsheet(t testing.TB, records []domain.InventoryRecord) []byte {
	t.Helper()

	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{"Часы " + string(r.Code), string(r.Code), r.Quantity, r.Price}
	}
	return BuildSheet(t, DefaultHeader, rows)
}

// BuildArchive zips the given entries
func BuildArchive(t testing.TB, entries ...ArchiveEntry) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.Name)
		require.NoError(t, err)
		_, err = w.Write(e.Data)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	return buf.Bytes()
}

// BuildInventoryArchive zips a single ostatki.xlsx holding records
func BuildInventoryArchive(t testing.TB, records []domain.InventoryRecord) []byte {
	t.Helper()

	return BuildArchive(t, ArchiveEntry{
		Name: "ostatki.xlsx",
		Data: BuildSpreadsheet(t, records),
	})
}
