package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"millionaire_level/models"
)

// Состояние благосостояния во всех валютах. Query: wealth, currency, date.
func (h *Handler) GetWealth(c *gin.Context) {
	var req models.WealthRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid query: "+err.Error())
		return
	}

	dashboard, err := h.service.Wealth.Dashboard(c.Request.Context(), req)
	if err != nil {
		newServiceErrorResponse(c, err)
		return
	}

	wrapOkJSON(c, map[string]interface{}{
		"data": dashboard,
	})
}

func (h *Handler) GetCurrencies(c *gin.Context) {
	currencies, err := h.service.Wealth.Currencies(c.Request.Context(), c.Query("date"))
	if err != nil {
		newServiceErrorResponse(c, err)
		return
	}

	wrapOkJSON(c, map[string]interface{}{
		"data": currencies,
	})
}

// Конвертация валюты. Надо передать в теле запроса {amount, from, to, date}
func (h *Handler) Convert(c *gin.Context) {
	var req models.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.service.Wealth.Convert(c.Request.Context(), req)
	if err != nil {
		newServiceErrorResponse(c, err)
		return
	}

	wrapOkJSON(c, map[string]interface{}{
		"data": res,
	})
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
