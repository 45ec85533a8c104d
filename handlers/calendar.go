package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"strbooking/services/calendar"
)

// CalendarFeedHandler serves the property's bookings as an iCal feed
// for OTA calendars to subscribe to.
func CalendarFeedHandler(exporter calendar.Exporter) gin.HandlerFunc {
	return func(c *gin.Context) {
		feed, err := exporter.Export(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondServiceError(c, err)
			return
		}

		c.Header("Content-Disposition", `attachment; filename="calendar.ics"`)
		c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
	}
}
