// Package pdf renders printable quotes and execution reports, plus the short
// share messages that accompany them.
package pdf

import (
	"bytes"
	"fmt"
	"time"

	"fieldservice-agent/internal/core"

	"github.com/jung-kurt/gofpdf"
)

// Generator renders company-branded documents. The company fields come from
// configuration and appear on every document header and footer.
type Generator struct {
	CompanyName  string
	CompanyTaxID string
	BankInfo     string
}

func New(companyName, companyTaxID, bankInfo string) *Generator {
	if companyName == "" {
		companyName = "SITEC Ingeniería"
	}
	return &Generator{CompanyName: companyName, CompanyTaxID: companyTaxID, BankInfo: bankInfo}
}

// QuotePDF renders a quote as an A4 document.
func (g *Generator) QuotePDF(q core.Quote, client core.Client) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Cotización %s", q.Number), true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	g.header(pdf, tr, fmt.Sprintf("COTIZACIÓN %s", q.Number))

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 5, tr(fmt.Sprintf("Fecha: %s", q.Date)))
	pdf.Ln(5)
	pdf.Cell(0, 5, tr(fmt.Sprintf("Cliente: %s", client.Name)))
	pdf.Ln(5)
	if client.NIT != "" {
		pdf.Cell(0, 5, tr(fmt.Sprintf("NIT: %s", client.NIT)))
		pdf.Ln(5)
	}
	if len(q.ServiceTypes) > 0 {
		pdf.Cell(0, 5, tr(fmt.Sprintf("Servicio: %s", joinServiceTypes(q.ServiceTypes))))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(95, 7, tr("Descripción"))
	pdf.Cell(20, 7, "Cant.")
	pdf.Cell(35, 7, "Vr. unitario")
	pdf.Cell(35, 7, "Vr. total")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	for _, it := range q.Items {
		pdf.Cell(95, 6, tr(truncate(it.Description, 55)))
		pdf.Cell(20, 6, fmt.Sprintf("%d", it.Quantity))
		pdf.Cell(35, 6, FormatCOP(it.UnitPrice))
		pdf.Cell(35, 6, FormatCOP(it.LineTotal()))
		pdf.Ln(6)
	}

	pdf.Ln(4)
	totals := []struct {
		label string
		value string
	}{
		{"Subtotal equipos", FormatCOP(q.SubtotalItems)},
		{"Mano de obra", FormatCOP(q.LaborCost)},
		{"Subtotal", FormatCOP(q.SubtotalGeneral)},
		{"IVA 19%", FormatCOP(q.IVA)},
		{"TOTAL", FormatCOP(q.Total)},
	}
	for i, row := range totals {
		if i == len(totals)-1 {
			pdf.SetFont("Helvetica", "B", 11)
		} else {
			pdf.SetFont("Helvetica", "", 10)
		}
		pdf.Cell(115, 6, "")
		pdf.Cell(35, 6, tr(row.label))
		pdf.Cell(35, 6, row.value)
		pdf.Ln(6)
	}

	pdf.Ln(4)
	g.textBlock(pdf, tr, "Observaciones", q.Observations)
	g.textBlock(pdf, tr, "Condiciones comerciales", q.CommercialConditions)
	if g.BankInfo != "" {
		g.textBlock(pdf, tr, "Datos de pago", g.BankInfo)
	}
	g.footer(pdf, tr)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render quote pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// ReportPDF renders an execution report as an A4 document.
func (g *Generator) ReportPDF(r core.ExecutionReport, visit core.Visit, client core.Client, tech core.Technician) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Informe de trabajo realizado", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	g.header(pdf, tr, "INFORME DE TRABAJO REALIZADO")

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 5, tr(fmt.Sprintf("Fecha: %s", r.Date)))
	pdf.Ln(5)
	pdf.Cell(0, 5, tr(fmt.Sprintf("Cliente: %s", client.Name)))
	pdf.Ln(5)
	pdf.Cell(0, 5, tr(fmt.Sprintf("Técnico: %s", tech.Name)))
	pdf.Ln(5)
	pdf.Cell(0, 5, tr(fmt.Sprintf("Lugar: %s", visit.Address)))
	pdf.Ln(8)

	g.textBlock(pdf, tr, "Actividades realizadas", r.Activities)
	if r.EquipmentIntervened != "" {
		g.textBlock(pdf, tr, "Equipos intervenidos", r.EquipmentIntervened)
	}
	if r.Observations != "" {
		g.textBlock(pdf, tr, "Observaciones", r.Observations)
	}
	if r.WarrantyMonths > 0 {
		pdf.SetFont("Helvetica", "", 10)
		pdf.Cell(0, 6, tr(fmt.Sprintf("Garantía del trabajo: %d meses.", r.WarrantyMonths)))
		pdf.Ln(8)
	}
	if r.ClientSignature != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "", 10)
		pdf.Cell(0, 5, "_________________________")
		pdf.Ln(5)
		pdf.Cell(0, 5, tr(fmt.Sprintf("Recibido por: %s", r.ClientSignature)))
		pdf.Ln(5)
	}
	g.footer(pdf, tr)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render report pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *Generator) header(pdf *gofpdf.Fpdf, tr func(string) string, title string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, tr(g.CompanyName))
	pdf.Ln(7)
	if g.CompanyTaxID != "" {
		pdf.SetFont("Helvetica", "", 9)
		pdf.Cell(0, 5, tr(fmt.Sprintf("NIT %s", g.CompanyTaxID)))
		pdf.Ln(6)
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, tr(title))
	pdf.Ln(10)
}

func (g *Generator) footer(pdf *gofpdf.Fpdf, tr func(string) string) {
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 8)
	pdf.Cell(0, 4, tr(fmt.Sprintf("%s · Generado el %s", g.CompanyName, time.Now().Format("2006-01-02"))))
}

func (g *Generator) textBlock(pdf *gofpdf.Fpdf, tr func(string) string, label, body string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(0, 6, tr(label))
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(0, 5, tr(body), "", "L", false)
	pdf.Ln(3)
}

func joinServiceTypes(types []core.ServiceType) string {
	out := ""
	for i, st := range types {
		if i > 0 {
			out += ", "
		}
		out += string(st)
	}
	return out
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
