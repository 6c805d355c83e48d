package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/dental-inventario/internal/domain/inventory"
)

// catalogRow fila ya normalizada del catálogo.
type catalogRow struct {
	ID           string
	Name         string
	Category     string
	Area         string
	Quantity     int
	UnitPrice    decimal.Decimal
	MinStock     int
	MaxStock     *int
	Expiration   *time.Time
	Supplier     string
	Refrigerated bool
}

// Encabezados aceptados por columna (en minúsculas, sin tildes).
var headerAliases = map[string][]string{
	"id":            {"id", "codigo"},
	"name":          {"nombre", "producto", "name"},
	"category":      {"categoria", "category"},
	"area":          {"area", "ubicacion"},
	"quantity":      {"cantidad", "stock", "quantity"},
	"unit_price":    {"precio", "precio_unitario", "unit_price"},
	"min_stock":     {"stock_minimo", "minimo", "min_stock"},
	"max_stock":     {"stock_maximo", "maximo", "max_stock"},
	"expiration":    {"vencimiento", "fecha_vencimiento", "expiration_date"},
	"supplier":      {"proveedor", "supplier"},
	"refrigeration": {"refrigeracion", "requiere_refrigeracion", "refrigerated"},
}

var dateLayouts = []string{"2006-01-02", "02/01/2006", "02-01-2006"}

// decodeInput devuelve el contenido en UTF-8; si no es UTF-8 válido se asume ISO-8859-1.
func decodeInput(raw []byte) ([]byte, error) {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	if utf8.Valid(raw) {
		return raw, nil
	}
	return io.ReadAll(transform.NewReader(bytes.NewReader(raw), charmap.ISO8859_1.NewDecoder()))
}

// parseCatalog lee el CSV. Las filas sin nombre o sin área se omiten y se cuentan en skipped.
// Montos y cantidades mal formados quedan en cero.
func parseCatalog(raw []byte) (rows []catalogRow, skipped int, err error) {
	data, err := decodeInput(raw)
	if err != nil {
		return nil, 0, err
	}
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = detectSeparator(data)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("encabezado: %w", err)
	}
	cols := mapHeader(header)
	if _, ok := cols["name"]; !ok {
		return nil, 0, fmt.Errorf("falta la columna nombre")
	}

	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, skipped, err
		}
		get := func(key string) string {
			i, ok := cols[key]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		row := catalogRow{
			ID:           get("id"),
			Name:         get("name"),
			Category:     get("category"),
			Area:         get("area"),
			Quantity:     inventory.ParseQuantity(get("quantity")),
			UnitPrice:    inventory.ParseAmount(get("unit_price")),
			MinStock:     inventory.ParseQuantity(get("min_stock")),
			Supplier:     get("supplier"),
			Refrigerated: parseYes(get("refrigeration")),
		}
		if row.Name == "" || row.Area == "" {
			skipped++
			continue
		}
		if row.ID == "" {
			row.ID = uuid.New().String()
		}
		if s := get("max_stock"); s != "" {
			m := inventory.ParseQuantity(s)
			row.MaxStock = &m
		}
		row.Expiration = parseDate(get("expiration"))
		rows = append(rows, row)
	}
	return rows, skipped, nil
}

func detectSeparator(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.Count(line, []byte(";")) > bytes.Count(line, []byte(",")) {
		return ';'
	}
	return ','
}

func mapHeader(header []string) map[string]int {
	cols := make(map[string]int)
	for i, h := range header {
		name := strings.ReplaceAll(inventory.Fold(h), " ", "_")
		for key, aliases := range headerAliases {
			for _, a := range aliases {
				if name == a {
					if _, seen := cols[key]; !seen {
						cols[key] = i
					}
				}
			}
		}
	}
	return cols
}

func parseDate(s string) *time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func parseYes(s string) bool {
	switch inventory.Fold(s) {
	case "si", "s", "x", "1", "true", "yes":
		return true
	}
	return false
}

// writeSQL escribe un INSERT idempotente por producto (ON CONFLICT actualiza el catálogo, no el stock).
func writeSQL(w io.Writer, source string, rows []catalogRow) error {
	var b strings.Builder
	b.WriteString("-- Catálogo de insumos dentales\n")
	fmt.Fprintf(&b, "-- Generado desde %s\n\n", source)
	for _, r := range rows {
		b.WriteString("INSERT INTO products (id, name, category, area, quantity, unit_price, min_stock, max_stock, expiration_date, supplier, requires_refrigeration)\n")
		fmt.Fprintf(&b, "VALUES (%s, %s, %s, %s, %d, %s, %d, %s, %s, %s, %t)\n",
			quote(r.ID), quote(r.Name), quote(r.Category), quote(r.Area),
			r.Quantity, r.UnitPrice.StringFixed(2), r.MinStock,
			intOrNull(r.MaxStock), dateOrNull(r.Expiration), quote(r.Supplier), r.Refrigerated)
		b.WriteString("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, category = EXCLUDED.category, area = EXCLUDED.area,\n")
		b.WriteString("  unit_price = EXCLUDED.unit_price, min_stock = EXCLUDED.min_stock, max_stock = EXCLUDED.max_stock,\n")
		b.WriteString("  expiration_date = EXCLUDED.expiration_date, supplier = EXCLUDED.supplier,\n")
		b.WriteString("  requires_refrigeration = EXCLUDED.requires_refrigeration, updated_at = now();\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func intOrNull(v *int) string {
	if v == nil {
		return "NULL"
	}
	return strconv.Itoa(*v)
}

func dateOrNull(t *time.Time) string {
	if t == nil {
		return "NULL"
	}
	return quote(t.Format("2006-01-02"))
}
