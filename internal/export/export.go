// Package export renders closures and monthly reports as downloadable documents.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/livro_caixa/internal/apperrors"
	"github.com/SscSPs/livro_caixa/internal/core/domain"
	"github.com/SscSPs/livro_caixa/internal/utils/datetime"
)

// Format is an output format of an export.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatHTML Format = "html"
	FormatXLSX Format = "xlsx"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	footerText = "Gerado pelo Livro Caixa Profissional"
)

// ParseFormat accepts pdf, html or xlsx in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPDF, FormatHTML, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("%w: unsupported export format %q", apperrors.ErrValidation, s)
	}
}

// Document is a rendered export ready to be served as an attachment.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ClosureView is everything a closure export prints.
type ClosureView struct {
	Closure     domain.Closure
	CompanyName string
	GeneratedAt time.Time
	Location    *time.Location
}

func (v ClosureView) paymentTotals() []domain.PaymentTotal {
	return domain.TotalsByPaymentMethod(v.Closure.Sales)
}

// MonthlyView is everything a monthly export prints.
type MonthlyView struct {
	Report   domain.MonthlyReport
	Location *time.Location
}

func (v MonthlyView) title() string {
	return fmt.Sprintf("%s de %d", datetime.MonthName(v.Report.Month), v.Report.Year)
}

// RenderClosure renders a single closure. XLSX is only offered for monthly reports.
func RenderClosure(view ClosureView, format Format) (*Document, error) {
	base := "fechamento-" + datetime.FormatISODate(view.Closure.Date)
	switch format {
	case FormatHTML:
		body, err := closureHTML(view)
		if err != nil {
			return nil, err
		}
		return &Document{Filename: base + ".html", ContentType: contentTypeHTML, Body: body}, nil
	case FormatPDF:
		body, err := closurePDF(view)
		if err != nil {
			return nil, err
		}
		return &Document{Filename: base + ".pdf", ContentType: contentTypePDF, Body: body}, nil
	default:
		return nil, fmt.Errorf("%w: format %q is not available for closures", apperrors.ErrValidation, format)
	}
}

// RenderMonthly renders a monthly report in any supported format.
func RenderMonthly(view MonthlyView, format Format) (*Document, error) {
	base := "relatorio-mensal-" + datetime.FormatMonth(view.Report.Year, view.Report.Month)
	var (
		body        []byte
		contentType string
		err         error
	)
	switch format {
	case FormatHTML:
		body, err = monthlyHTML(view)
		contentType = contentTypeHTML
	case FormatPDF:
		body, err = monthlyPDF(view)
		contentType = contentTypePDF
	case FormatXLSX:
		body, err = monthlyXLSX(view)
		contentType = contentTypeXLSX
	default:
		return nil, fmt.Errorf("%w: unsupported export format %q", apperrors.ErrValidation, format)
	}
	if err != nil {
		return nil, err
	}
	return &Document{Filename: base + "." + string(format), ContentType: contentType, Body: body}, nil
}
