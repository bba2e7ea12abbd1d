package handlers

import (
	"net/http"

	"corptransit/internal/http/middleware"
	"corptransit/internal/repositories"
	"corptransit/internal/services"

	"github.com/gin-gonic/gin"
)

func newReportService(c *gin.Context) services.ReportService {
	return services.ReportService{
		Billing:   newBillingService(c),
		ModelRepo: repositories.BillingModelRepository{},
		RequestID: middleware.GetRequestID(c),
	}
}

// GET /api/reports/billing/client/:clientId/vendor/:vendorId/pdf?month=YYYY-MM
func GetBillingStatementPDF(c *gin.Context) {
	clientID, ok := ParamUUID(c, "clientId")
	if !ok {
		return
	}
	vendorID, ok := ParamUUID(c, "vendorId")
	if !ok {
		return
	}
	pdf, filename, err := newReportService(c).BillingStatementPDF(c.Request.Context(), clientID, vendorID, c.Query("month"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// GET /api/reports/billing/summary?month=YYYY-MM
func GetBillingSummary(c *gin.Context) {
	summary, err := newReportService(c).MonthlySummaryReport(c.Request.Context(), c.Query("month"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
