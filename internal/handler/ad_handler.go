package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/adboard/internal/pkg/response"
	"github.com/xxxsen/adboard/internal/service"
)

type AdHandler struct {
	ads *service.AdService
}

func NewAdHandler(ads *service.AdService) *AdHandler {
	return &AdHandler{ads: ads}
}

type adCreateRequest struct {
	Title       string `json:"title" binding:"required,min=3,max=100"`
	Description string `json:"description" binding:"required"`
}

type adUpdateRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=3,max=100"`
	Description *string `json:"description" binding:"omitempty,min=1"`
}

func (h *AdHandler) Create(c *gin.Context) {
	var req adCreateRequest
	if !bindJSON(c, &req) {
		return
	}
	ad, err := h.ads.Create(c.Request.Context(), getUserID(c), service.AdCreateInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, ad)
}

func (h *AdHandler) List(c *gin.Context) {
	ads, err := h.ads.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, ads)
}

func (h *AdHandler) Get(c *gin.Context) {
	adID, ok := parseAdID(c)
	if !ok {
		return
	}
	ad, err := h.ads.Get(c.Request.Context(), adID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, ad)
}

func (h *AdHandler) Update(c *gin.Context) {
	adID, ok := parseAdID(c)
	if !ok {
		return
	}
	userID := getUserID(c)
	var req adUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// a missing or foreign ad outranks a bad body
		if _, lookupErr := h.ads.GetMutable(c.Request.Context(), userID, adID); lookupErr != nil {
			handleError(c, lookupErr)
			return
		}
		response.Error(c, http.StatusBadRequest, "invalid", bindErrorMessage(err))
		return
	}
	ad, err := h.ads.Update(c.Request.Context(), userID, adID, service.AdUpdateInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, ad)
}

func (h *AdHandler) Delete(c *gin.Context) {
	adID, ok := parseAdID(c)
	if !ok {
		return
	}
	if err := h.ads.Delete(c.Request.Context(), getUserID(c), adID); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
