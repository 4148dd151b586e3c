package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"calc-hub/reference"
)

func (h *Handler) registerReference(rg *gin.RouterGroup) {
	rg.GET("/tax", h.taxTables)
	rg.GET("/cpi", h.cpiSeries)
}

// taxTables returns every tax year, or one with ?year=.
func (h *Handler) taxTables(c *gin.Context) {
	tables := h.svc.Tables

	if raw := c.Query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(c, "year must be a number")
			return
		}
		ty, ok := tables.TaxYear(year)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "no tax data for year " + raw})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "tax_year": ty})
		return
	}

	years := make([]reference.TaxYear, 0)
	for _, y := range tables.TaxYears() {
		ty, _ := tables.TaxYear(y)
		years = append(years, ty)
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "tax_years": years})
}

func (h *Handler) cpiSeries(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "cpi": h.svc.Tables.CPISeries()})
}
