package http

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/swiftpos/backend/internal/cfg"
	"github.com/swiftpos/backend/internal/domain"
	"github.com/swiftpos/backend/internal/usecase"
	"github.com/swiftpos/backend/pkg/e"
	"github.com/swiftpos/backend/pkg/logger"
)

// InvoiceHandler отдает печатную форму счета.
// Четыре состояния страницы: загрузка (гидратация не завершена), счет не найден
// (после исчерпания повторов), счет без позиций и собственно счет с отложенным
// одноразовым запуском печати.
type InvoiceHandler struct {
	invoice usecase.InvoiceUC
	cfg     *cfg.StoreCfg
	logger  logger.Logger
	tmpl    *template.Template
}

func NewInvoiceHandler(invoice usecase.InvoiceUC, cfg *cfg.StoreCfg, logger logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		invoice: invoice,
		cfg:     cfg,
		logger:  logger,
		tmpl:    template.Must(template.New("invoice").Funcs(templateFuncs).Parse(invoicePages)),
	}
}

type invoiceView struct {
	InvoiceNumber string
	Date          string
	Items         []domain.SoldItem
	Subtotal      float64
	Tax           float64
	TotalAmount   float64
	PrintDelayMs  int64
}

var templateFuncs = template.FuncMap{
	"money": func(v float64) string {
		return fmt.Sprintf("%.2f", v)
	},
	"mulf": func(price float64, qty int) float64 {
		return price * float64(qty)
	},
}

// getInvoicePage
//
//	@Summary	Печатная форма счета
//	@Tags		invoice
//	@Produce	html
//	@Param		id	path	string	true	"ID продажи"
//	@Success	200
//	@Failure	404
//	@Router		/invoice/{id} [get]
func (h *InvoiceHandler) getInvoicePage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	sale, err := h.invoice.GetInvoice(r.Context(), id)
	switch {
	case err == nil:
		h.render(w, http.StatusOK, "invoice_page", h.buildView(sale))
	case errors.Is(err, e.ErrStoreNotReady):
		// Страница сама перезапросит себя, когда гидратация закончится
		h.render(w, http.StatusOK, "loading_page", nil)
	case errors.Is(err, e.ErrSaleNotFound):
		h.render(w, http.StatusNotFound, "not_found_page", nil)
	case errors.Is(err, e.ErrSaleMalformed):
		h.render(w, http.StatusUnprocessableEntity, "malformed_page", nil)
	default:
		h.logger.Errorf(err, "invoice page failed, sale_id: %s", id)
		http.Error(w, e.ErrInternalServerError.Error(), http.StatusInternalServerError)
	}
}

func (h *InvoiceHandler) buildView(sale *domain.Sale) *invoiceView {
	number := strings.ToUpper(sale.ID)
	if len(sale.ID) >= 6 {
		number = strings.ToUpper(sale.ID[len(sale.ID)-6:])
	}

	date := sale.Date
	if parsed, err := time.Parse(time.RFC3339Nano, sale.Date); err == nil {
		date = parsed.Local().Format("02.01.2006 15:04:05")
	}

	return &invoiceView{
		InvoiceNumber: number,
		Date:          date,
		Items:         sale.SoldItems,
		Subtotal:      sale.Subtotal,
		Tax:           sale.Tax,
		TotalAmount:   sale.TotalAmount,
		PrintDelayMs:  h.cfg.PrintDelay.Milliseconds(),
	}
}

func (h *InvoiceHandler) render(w http.ResponseWriter, status int, page string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.tmpl.ExecuteTemplate(w, page, data); err != nil {
		h.logger.Errorf(err, "failed to render %s", page)
	}
}

const invoicePages = `
{{define "loading_page"}}<!DOCTYPE html>
<html>
<head>
	<meta charset="utf-8">
	<meta http-equiv="refresh" content="1">
	<title>SwiftPOS — Invoice</title>
</head>
<body>
	<p>Loading invoice...</p>
</body>
</html>{{end}}

{{define "not_found_page"}}<!DOCTYPE html>
<html>
<head>
	<meta charset="utf-8">
	<title>SwiftPOS — Invoice not found</title>
</head>
<body>
	<h2>Invoice not found</h2>
	<p>The sale you are looking for could not be located. This may be a timing issue — please try refreshing the page.</p>
	<p>
		<button onclick="window.location.reload()">Refresh Page</button>
		<a href="/pos">Return to POS</a>
	</p>
</body>
</html>{{end}}

{{define "malformed_page"}}<!DOCTYPE html>
<html>
<head>
	<meta charset="utf-8">
	<title>SwiftPOS — Invoice Error</title>
</head>
<body>
	<h2>Invoice Error</h2>
	<p>This invoice has no items. Please contact support if this persists.</p>
	<p><a href="/pos">Return to POS</a></p>
</body>
</html>{{end}}

{{define "invoice_page"}}<!DOCTYPE html>
<html>
<head>
	<meta charset="utf-8">
	<title>SwiftPOS — Invoice #{{.InvoiceNumber}}</title>
</head>
<body>
	<h1>SwiftPOS</h1>
	<p>Invoice #{{.InvoiceNumber}}</p>
	<p>{{.Date}}</p>
	<table>
		<thead>
			<tr><th>Code</th><th>Item</th><th>Qty</th><th>Price</th><th>Total</th></tr>
		</thead>
		<tbody>
		{{range .Items}}
			<tr>
				<td>{{.ProductCode}}</td>
				<td>{{.Name}}</td>
				<td>{{.Quantity}}</td>
				<td>{{money .Price}}</td>
				<td>{{money (mulf .Price .Quantity)}}</td>
			</tr>
		{{end}}
		</tbody>
	</table>
	<p>Subtotal: {{money .Subtotal}}</p>
	<p>Tax: {{money .Tax}}</p>
	<p><strong>Total: {{money .TotalAmount}}</strong></p>
	<script>
		// Одноразовый отложенный запуск печати после рендера
		setTimeout(function () { window.print(); }, {{.PrintDelayMs}});
	</script>
</body>
</html>{{end}}
`
