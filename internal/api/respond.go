package api

import (
	"net/http"
	"strconv"

	"github.com/admin-console-api/internal/models"
	"github.com/admin-console-api/internal/validation"
	"github.com/gin-gonic/gin"
)

// response is the envelope every endpoint returns
type response struct {
	Success  bool        `json:"success"`
	Message  string      `json:"message,omitempty"`
	Data     interface{} `json:"data,omitempty"`
	Redirect string      `json:"redirect,omitempty"`
}

// listData is the data payload of server-driven list endpoints
type listData struct {
	Items      interface{}       `json:"items"`
	Pagination models.Pagination `json:"pagination"`
}

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, response{Success: true, Data: data})
}

func respondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, response{Success: true, Data: data})
}

func respondList(c *gin.Context, items interface{}, q models.ListQuery, total int) {
	c.JSON(http.StatusOK, response{
		Success: true,
		Data:    listData{Items: items, Pagination: models.NewPagination(q, total)},
	})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, response{Success: false, Message: message})
}

func respondValidation(c *gin.Context, errs []validation.FieldError) {
	c.JSON(http.StatusBadRequest, response{Success: false, Message: "validation failed", Data: errs})
}

// respondRedirect is used by the guard: the body carries the path the client
// should navigate to. No interstitial content beyond the envelope.
func respondRedirect(c *gin.Context, status int, message, redirect string) {
	c.AbortWithStatusJSON(status, response{Success: false, Message: message, Redirect: redirect})
}

// listQueryFromRequest builds a ListQuery from request parameters. Only the
// named filter fields are read; anything else in the query string is ignored.
func listQueryFromRequest(c *gin.Context, filterFields ...string) models.ListQuery {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "25"))

	q := models.ListQuery{
		Search:   c.Query("search"),
		Page:     page,
		PageSize: pageSize,
	}
	for _, field := range filterFields {
		if v := c.Query(field); v != "" {
			if q.Filters == nil {
				q.Filters = make(map[string]string)
			}
			q.Filters[field] = v
		}
	}
	return q
}
