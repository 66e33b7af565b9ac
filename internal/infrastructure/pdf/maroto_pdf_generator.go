// Package pdf genera el comprobante imprimible de un movimiento de inventario.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre app + tipo  │  N° Movimiento + Fecha        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESPONSABLE: usuario que registró el movimiento            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Producto | Almacén | Lote | Caducidad | Cant.   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: líneas / unidades                                  │
//	│  FOOTER: QR con la referencia del movimiento                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/duquediazn/tabula-backend/internal/application/ports"
	"github.com/duquediazn/tabula-backend/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorEntrada = &props.Color{Red: 20, Green: 120, Blue: 60}
	colorSalida  = &props.Color{Red: 170, Green: 40, Blue: 40}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ports.VoucherGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa ports.VoucherGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	appName string
}

// NewMarotoPDFGenerator construye el generador; appName aparece en la cabecera.
func NewMarotoPDFGenerator(appName string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{appName: nonEmpty(appName, "Tabula")}
}

// GenerateMovementPDF genera el comprobante y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateMovementPDF(
	_ context.Context,
	mov *entity.Movement,
	lines []entity.MovementLineDetail,
) ([]byte, error) {
	if mov == nil {
		return nil, errors.New("pdf: movimiento nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Movimiento %d", mov.ID), true).
		WithAuthor(g.appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(mov))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(userRow(mov))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(lines))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(mov))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoPDFGenerator) headerRow(mov *entity.Movement) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.appName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Comprobante de "+typeLabel(mov.Type), props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 9, Color: typeColor(mov.Type),
			}),
		),
		col.New(5).Add(
			text.New("MOVIMIENTO DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("N° %d", mov.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+mov.Date.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func userRow(mov *entity.Movement) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("REGISTRADO POR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s (id %d)", nonEmpty(mov.UserName, "Desconocido"), mov.UserID), props.Text{
				Size: 9, Top: 6,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Producto", 4, align.Left),
		h("Almacén", 3, align.Left),
		h("Lote", 2, align.Left),
		h("Caducidad", 1, align.Center),
		h("Cant.", 1, align.Right),
	)
}

// tableDetailRows una fila por línea, en el orden de id_linea.
func tableDetailRows(lines []entity.MovementLineDetail) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, d := range lines {
		expiry := "-"
		if d.ExpiryDate != nil {
			expiry = d.ExpiryDate.Format("02/01/2006")
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(strconv.Itoa(d.LineID), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(4).Add(text.New(
				fmt.Sprintf("%s (%d)", d.ProductName, d.ProductCode),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				fmt.Sprintf("%s (%d)", d.WarehouseName, d.WarehouseCode),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(d.Lot, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(1).Add(text.New(expiry, props.Text{Size: 7, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(formatUnits(d.Quantity), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalsRow(lines []entity.MovementLineDetail) core.Row {
	units := 0
	for _, d := range lines {
		units += d.Quantity
	}
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(12).Add(
		col.New(6),
		col.New(3).Add(label("Líneas:"), label("Unidades:")),
		col.New(3).Add(value(strconv.Itoa(len(lines))), value(formatUnits(units))),
	)
}

func footerRow(mov *entity.Movement) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(QRPayload(mov), props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Referencia del movimiento para su verificación en el sistema.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New(QRPayload(mov), props.Text{
				Size: 7, Top: 12, Left: 3, Color: colorGray,
			}),
		),
	)
}

// QRPayload contenido del código QR del comprobante.
func QRPayload(mov *entity.Movement) string {
	return fmt.Sprintf("MOV:%d|TIPO:%s|FECHA:%s|USUARIO:%d",
		mov.ID, mov.Type, mov.Date.UTC().Format("2006-01-02T15:04:05Z"), mov.UserID)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func typeLabel(t string) string {
	if t == "" {
		return "movimiento"
	}
	return strings.ToLower(t)
}

func typeColor(t string) *props.Color {
	if t == entity.MovementTypeSalida {
		return colorSalida
	}
	return colorEntrada
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatUnits inserta puntos de miles. Ej: 25000 → "25.000".
func formatUnits(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	if len(s) <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	buf := make([]byte, 0, len(s)+len(s)/3+1)
	if neg {
		buf = append(buf, '-')
	}
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
