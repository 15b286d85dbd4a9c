package models

type ConvertRequest struct {
	Amount float64 `json:"amount" binding:"gte=0"`   // сумма
	From   string  `json:"from" binding:"required"` // исходная валюта, например: "usd"
	To     string  `json:"to" binding:"required"`   // целевая валюта, например: "eth"
	Date   string  `json:"date"`                    // "latest" или YYYY-MM-DD
}

type ConvertResponse struct {
	ConvertedAmount float64 `json:"convertedAmount"`
	Currency        string  `json:"currency"`
	Date            string  `json:"date"`
	Message         string  `json:"message"`
}
