package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"millionaire_level/internal/wealth"
	"millionaire_level/models"
	"millionaire_level/pkg/middleware"
)

type dashboardPage struct {
	Wealth     float64
	Currency   string
	Date       string
	Step       float64
	Currencies []models.Currency
	Dashboard  *models.Dashboard
	Error      string
}

func (h *Handler) newPage(req models.WealthRequest) dashboardPage {
	defaults := h.service.Wealth.Defaults()
	page := dashboardPage{
		Wealth:   defaults.DefaultWealth,
		Currency: defaults.DefaultCurrency,
		Date:     req.Date,
		Step:     h.cfg.WealthStep,
	}
	if req.Wealth != nil {
		page.Wealth = *req.Wealth
	}
	if code := wealth.NormalizeCode(req.Currency); code != "" {
		page.Currency = code
	}
	return page
}

// Index renders the HTML dashboard. Bad input keeps the form on screen with
// the error message instead of the charts.
func (h *Handler) Index(c *gin.Context) {
	var req models.WealthRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		page := h.newPage(models.WealthRequest{Date: c.Query("date")})
		page.Error = "wealth must be a number"
		h.renderPage(c, http.StatusBadRequest, page)
		return
	}
	page := h.newPage(req)

	ctx := c.Request.Context()
	currencies, err := h.service.Wealth.Currencies(ctx, req.Date)
	if err != nil {
		status := statusFor(err)
		page.Error = errorMessage(status, err)
		h.renderPage(c, status, page)
		return
	}
	page.Currencies = currencies

	dashboard, err := h.service.Wealth.Dashboard(ctx, req)
	if err != nil {
		status := statusFor(err)
		page.Error = errorMessage(status, err)
		h.renderPage(c, status, page)
		return
	}
	page.Wealth = dashboard.Wealth
	page.Currency = dashboard.Currency
	page.Dashboard = &dashboard

	h.renderPage(c, http.StatusOK, page)
}

func (h *Handler) renderPage(c *gin.Context, status int, page dashboardPage) {
	if page.Error != "" {
		logrus.WithFields(logrus.Fields{
			"status":     status,
			"request_id": middleware.RequestID(c),
		}).Warn(page.Error)
	}
	c.HTML(status, "dashboard.html", page)
}
