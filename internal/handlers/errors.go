package handlers

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// AmountErrorResponse is returned when a conversion amount is rejected.
type AmountErrorResponse struct {
	Error  string `json:"error"`
	Amount string `json:"amount"`
}

// CurrencyErrorResponse is returned when no rate exists for a currency.
type CurrencyErrorResponse struct {
	Error        string `json:"error"`
	CurrencyCode string `json:"currencyCode"`
}
