package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/dkk_exchange_service/internal/utils"
	"github.com/gin-gonic/gin"
)

// routeEvents names the analytics event for each tracked route, keyed by method and route pattern.
var routeEvents = map[string]string{
	"GET /api/v1/currency-rates":               "currency_rates_listed",
	"GET /api/v1/currency-rates/:currencyCode": "currency_rate_viewed",
	"POST /api/v1/currency-rates/update":       "currency_rates_update_triggered",
	"POST /api/v1/conversions/convert":         "amount_converted",
	"GET /api/v1/conversions/history":          "conversion_history_viewed",
}

// PosthogMiddleware reports successful calls by authenticated API clients to PostHog.
// Routes without a named event are not tracked.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if posthogClient == nil || !posthogClient.IsInitialized() {
			return
		}
		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		eventName, tracked := routeEvents[c.Request.Method+" "+c.FullPath()]
		if !tracked {
			return
		}

		// Set by AuthMiddleware
		clientID, exists := GetClientIDFromContext(c)
		if !exists {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"route":       c.FullPath(),
			"status_code": c.Writer.Status(),
			"request_id":  GetRequestID(c.Request.Context()),
		}
		if code := c.Param("currencyCode"); code != "" {
			props["currency_code"] = strings.ToUpper(code)
		}
		if from := c.Query("fromCurrency"); from != "" {
			props["from_currency"] = strings.ToUpper(from)
		}

		posthogClient.Enqueue(clientID, eventName, props)
	}
}
