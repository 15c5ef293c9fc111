package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tallergestion/workshop-api/internal/httperr"
	"github.com/tallergestion/workshop-api/internal/httpresp"
	"github.com/tallergestion/workshop-api/internal/timezone"
)

type ReportHandler struct {
	db *gorm.DB
}

func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{db: db}
}

type incomeRow struct {
	Month   string  `json:"month"`
	Repairs int64   `json:"repairs"`
	Income  float64 `json:"income"`
}

// Income calcula el ingreso mensual sobre reparaciones completadas:
// el precio del servicio asociado, agrupado por mes de entrega.
// ?from / ?to acotan el rango (2006-01-02); ?format=csv exporta.
func (h *ReportHandler) Income(c *gin.Context) {
	loc := timezone.Location(timezone.DefaultTimezone)

	now := timezone.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc).AddDate(0, -11, 0)
	to := now

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Fecha 'from' inválida.")
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Fecha 'to' inválida.")
			return
		}
		to = parsed.AddDate(0, 0, 1)
	}

	var rows []incomeRow
	if err := h.db.
		Table("repairs").
		Select("to_char(repairs.checked_out_at, 'YYYY-MM') AS month, COUNT(*) AS repairs, COALESCE(SUM(services.price), 0) AS income").
		Joins("JOIN services ON services.id = repairs.service_id").
		Where("repairs.status = ?", "completed").
		Where("repairs.checked_out_at >= ? AND repairs.checked_out_at < ?", from, to).
		Group("month").
		Order("month ASC").
		Scan(&rows).Error; err != nil {

		httperr.Internal(c, "failed_to_build_report", "Error al generar el informe.")
		return
	}

	if c.Query("format") == "csv" {
		h.writeCSV(c, rows)
		return
	}

	var total float64
	for _, r := range rows {
		total += r.Income
	}

	httpresp.OK(c, gin.H{
		"from":   from.Format("2006-01-02"),
		"to":     to.Format("2006-01-02"),
		"rows":   rows,
		"income": total,
	})
}

func (h *ReportHandler) writeCSV(c *gin.Context, rows []incomeRow) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="ingresos.csv"`)
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"mes", "reparaciones", "ingreso"})
	for _, r := range rows {
		_ = w.Write([]string{
			r.Month,
			fmt.Sprintf("%d", r.Repairs),
			fmt.Sprintf("%.2f", r.Income),
		})
	}
	w.Flush()
}
