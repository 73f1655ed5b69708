package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"dental_care_app_go/services"
	"dental_care_app_go/services/jobs"

	"github.com/labstack/echo/v4"
)

const adminLeadsDefaultLimit = 200

// exportLinkTTL is how long a signed export download link stays valid
const exportLinkTTL = 15 * time.Minute

// GetLeadsHandler lists stored leads, newest first.
// Query: status, source, since and until (YYYY-MM-DD), limit.
func GetLeadsHandler(c echo.Context) error {
	app := getApp(c)

	filters, err := parseLeadFilters(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	leads, err := app.Leads.ListLeads(c.Request().Context(), filters)
	if err != nil {
		if errors.Is(err, services.ErrInvalidLeadStatus) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid status")
		}
		c.Logger().Errorf("Failed to list leads: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list leads")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"leads": leads,
		"count": len(leads),
	})
}

// ExportLeadsHandler downloads the filtered leads as an xlsx workbook
func ExportLeadsHandler(c echo.Context) error {
	app := getApp(c)

	filters, err := parseLeadFilters(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	filters.Limit = 0

	leads, err := app.Leads.ListLeads(c.Request().Context(), filters)
	if err != nil {
		if errors.Is(err, services.ErrInvalidLeadStatus) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid status")
		}
		c.Logger().Errorf("Failed to list leads for export: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to export leads")
	}

	data, err := services.LeadWorkbookBytes(leads)
	if err != nil {
		c.Logger().Errorf("Failed to build lead workbook: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to export leads")
	}

	filename := fmt.Sprintf("leads_%s.xlsx", time.Now().Format(services.DayLayout))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, services.ContentTypeXLSX, data)
}

// DownloadLeadExportHandler serves the stored daily export for :day (YYYY-MM-DD).
// Object storage answers with a redirect to a short-lived signed URL.
func DownloadLeadExportHandler(c echo.Context) error {
	app := getApp(c)
	ctx := c.Request().Context()

	day, err := services.ParseDay(c.Param("day"), jobs.Location(app.Config.Timezone))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	key := services.GenerateLeadExportKey(day)

	if app.Storage.Name() == "r2" {
		url, err := app.Storage.GetSignedURL(ctx, key, exportLinkTTL)
		if err != nil {
			c.Logger().Errorf("Failed to sign export %s: %v", key, err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load export")
		}
		return c.Redirect(http.StatusFound, url)
	}

	reader, contentType, err := app.Storage.Get(ctx, key)
	if errors.Is(err, services.ErrObjectNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "No export for that day")
	}
	if err != nil {
		c.Logger().Errorf("Failed to load export %s: %v", key, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load export")
	}
	defer reader.Close()

	filename := fmt.Sprintf("leads_%s.xlsx", day.Format(services.DayLayout))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Stream(http.StatusOK, contentType, reader)
}

// UpdateLeadStatusHandler moves a lead through follow-up
func UpdateLeadStatusHandler(c echo.Context) error {
	app := getApp(c)
	id := c.Param("id")

	var payload struct {
		Status string `json:"status" form:"status"`
	}
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	lead, err := app.Leads.UpdateLeadStatus(c.Request().Context(), id, payload.Status)
	switch {
	case errors.Is(err, services.ErrInvalidLeadStatus):
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid status")
	case errors.Is(err, services.ErrLeadNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Lead not found")
	case err != nil:
		c.Logger().Errorf("Failed to update lead %s: %v", id, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update lead")
	}

	return c.JSON(http.StatusOK, lead)
}

func parseLeadFilters(c echo.Context) (services.LeadFilters, error) {
	loc := jobs.Location(getApp(c).Config.Timezone)
	filters := services.LeadFilters{
		Status: c.QueryParam("status"),
		Source: c.QueryParam("source"),
		Limit:  adminLeadsDefaultLimit,
	}

	if v := c.QueryParam("since"); v != "" {
		t, err := services.ParseDay(v, loc)
		if err != nil {
			return filters, err
		}
		filters.Since = t
	}
	if v := c.QueryParam("until"); v != "" {
		t, err := services.ParseDay(v, loc)
		if err != nil {
			return filters, err
		}
		// until is inclusive of the whole day
		_, filters.Until = services.DayBounds(t)
	}
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return filters, errors.New("invalid limit")
		}
		filters.Limit = n
	}

	return filters, nil
}
