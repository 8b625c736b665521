package request

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sharath018/food-donation-backend/middleware"
)

type Handler struct {
	Service  Service
	Sessions *FormSessions
}

func NewHandler(s Service, sessions *FormSessions) *Handler {
	return &Handler{Service: s, Sessions: sessions}
}

func orgFromContext(c *gin.Context) (string, bool) {
	orgID := c.GetString("org_id")
	if orgID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "organisation context missing"})
		return "", false
	}
	return orgID, true
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrEmptyTitle),
		errors.Is(err, ErrInvalidPeopleCount),
		errors.Is(err, ErrNoFoodTypeSelected),
		errors.Is(err, ErrMissingDeadline):
		return http.StatusBadRequest
	case errors.Is(err, ErrSubmitInFlight):
		return http.StatusConflict
	case errors.Is(err, ErrFormClosed):
		return http.StatusGone
	default:
		return http.StatusBadGateway
	}
}

// ===========================
// Requests - GET /requests?view=card
func (h *Handler) ListRequests(c *gin.Context) {
	orgID, ok := orgFromContext(c)
	if !ok {
		return
	}

	requests, err := h.Service.ListRequests(c.Request.Context(), orgID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": "failed to list requests: " + err.Error()})
		return
	}

	if c.Query("view") == "card" {
		cards := make([]ViewModel, 0, len(requests))
		for _, r := range requests {
			cards = append(cards, Present(r))
		}
		c.JSON(http.StatusOK, cards)
		return
	}

	c.JSON(http.StatusOK, requests)
}

// GET /requests/:id
func (h *Handler) GetRequest(c *gin.Context) {
	orgID, ok := orgFromContext(c)
	if !ok {
		return
	}

	r, err := h.Service.GetRequest(c.Request.Context(), orgID, c.Param("id"))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": "request not found"})
		return
	}

	c.JSON(http.StatusOK, r)
}

// GET /requests/:id/view
func (h *Handler) GetRequestView(c *gin.Context) {
	orgID, ok := orgFromContext(c)
	if !ok {
		return
	}

	r, err := h.Service.GetRequest(c.Request.Context(), orgID, c.Param("id"))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": "request not found"})
		return
	}

	c.JSON(http.StatusOK, Present(r))
}

// POST /requests
func (h *Handler) CreateRequest(c *gin.Context) {
	orgID, ok := orgFromContext(c)
	if !ok {
		return
	}

	var draft FormDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	created, err := h.Service.SubmitDraft(c.Request.Context(), orgID, draft, middleware.GetIPFromContext(c))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// PUT /requests/:id
func (h *Handler) UpdateRequest(c *gin.Context) {
	orgID, ok := orgFromContext(c)
	if !ok {
		return
	}

	var draft FormDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	updated, err := h.Service.UpdateFromDraft(c.Request.Context(), orgID, c.Param("id"), draft, middleware.GetIPFromContext(c))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DELETE /requests/:id
func (h *Handler) DeleteRequest(c *gin.Context) {
	orgID, ok := orgFromContext(c)
	if !ok {
		return
	}

	if err := h.Service.DeleteRequest(c.Request.Context(), orgID, c.Param("id"), middleware.GetIPFromContext(c)); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "request deleted"})
}

type statusUpdateRequest struct {
	Status Status `json:"status" binding:"required,oneof=completed cancelled"`
}

// PATCH /requests/:id/status
func (h *Handler) SetRequestStatus(c *gin.Context) {
	orgID, ok := orgFromContext(c)
	if !ok {
		return
	}

	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	updated, err := h.Service.SetRequestStatus(c.Request.Context(), orgID, c.Param("id"), req.Status, middleware.GetIPFromContext(c))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// ===========================
// Draft sessions

type openDraftRequest struct {
	RequestID string `json:"requestId"`
}

type draftState struct {
	DraftID string      `json:"draftId"`
	Draft   FormDraft   `json:"draft"`
	Picker  PickerState `json:"picker"`
}

func (h *Handler) draftStateOf(id string, ctrl *FormController) draftState {
	return draftState{DraftID: id, Draft: ctrl.Draft(), Picker: ctrl.Picker()}
}

// POST /drafts
func (h *Handler) OpenDraft(c *gin.Context) {
	orgID, ok := orgFromContext(c)
	if !ok {
		return
	}

	var req openDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	var source *Request
	if req.RequestID != "" {
		r, err := h.Service.GetRequest(c.Request.Context(), orgID, req.RequestID)
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": "request not found"})
			return
		}
		source = r
	}

	id, ctrl := h.Sessions.Open(orgID, source, middleware.GetIPFromContext(c))
	c.JSON(http.StatusCreated, h.draftStateOf(id, ctrl))
}

func (h *Handler) sessionFromPath(c *gin.Context) (string, *FormController, bool) {
	id := c.Param("id")
	ctrl, ok := h.Sessions.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "draft session not found"})
		return "", nil, false
	}
	return id, ctrl, true
}

// GET /drafts/:id
func (h *Handler) GetDraft(c *gin.Context) {
	id, ctrl, ok := h.sessionFromPath(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.draftStateOf(id, ctrl))
}

type draftEditRequest struct {
	Title          *string `json:"title"`
	RequestType    *string `json:"requestType"`
	NumberOfPeople *string `json:"numberOfPeople"`
	Notes          *string `json:"additionalNotes"`
	DeliveryNeeded *bool   `json:"deliveryNeeded"`
	Public         *bool   `json:"public"`
	ToggleFoodType *string `json:"toggleFoodType"`
}

// PATCH /drafts/:id - each supplied field is one edit operation
func (h *Handler) EditDraft(c *gin.Context) {
	id, ctrl, ok := h.sessionFromPath(c)
	if !ok {
		return
	}

	var req draftEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	var err error
	switch {
	case req.Title != nil:
		err = ctrl.SetTitle(*req.Title)
	case req.RequestType != nil:
		err = ctrl.SetRequestType(*req.RequestType)
	case req.NumberOfPeople != nil:
		err = ctrl.SetNumberOfPeople(*req.NumberOfPeople)
	case req.Notes != nil:
		err = ctrl.SetNotes(*req.Notes)
	case req.DeliveryNeeded != nil:
		err = ctrl.SetDeliveryNeeded(*req.DeliveryNeeded)
	case req.Public != nil:
		err = ctrl.SetVisibility(*req.Public)
	case req.ToggleFoodType != nil:
		err = ctrl.ToggleFoodType(*req.ToggleFoodType)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "no edit supplied"})
		return
	}
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.draftStateOf(id, ctrl))
}

type pickDateRequest struct {
	Date string `json:"date" binding:"required"` // YYYY-MM-DD
}

// POST /drafts/:id/date
func (h *Handler) PickDate(c *gin.Context) {
	id, ctrl, ok := h.sessionFromPath(c)
	if !ok {
		return
	}

	var req pickDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	picked, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format. Use YYYY-MM-DD"})
		return
	}

	if err := ctrl.PickDate(picked); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.draftStateOf(id, ctrl))
}

type pickTimeRequest struct {
	Time string `json:"time" binding:"required"` // HH:MM, 24-hour
}

// POST /drafts/:id/time
func (h *Handler) PickTime(c *gin.Context) {
	id, ctrl, ok := h.sessionFromPath(c)
	if !ok {
		return
	}

	var req pickTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	picked, err := time.Parse("15:04", req.Time)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid time format. Use HH:MM in 24-hour format"})
		return
	}

	if err := ctrl.PickTime(picked); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.draftStateOf(id, ctrl))
}

// POST /drafts/:id/picker/dismiss
func (h *Handler) DismissPicker(c *gin.Context) {
	id, ctrl, ok := h.sessionFromPath(c)
	if !ok {
		return
	}

	if err := ctrl.DismissPicker(); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.draftStateOf(id, ctrl))
}

// POST /drafts/:id/picker/date
func (h *Handler) OpenDatePicker(c *gin.Context) {
	id, ctrl, ok := h.sessionFromPath(c)
	if !ok {
		return
	}

	if err := ctrl.OpenDatePicker(); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.draftStateOf(id, ctrl))
}

// POST /drafts/:id/picker/time
func (h *Handler) OpenTimePicker(c *gin.Context) {
	id, ctrl, ok := h.sessionFromPath(c)
	if !ok {
		return
	}

	if err := ctrl.OpenTimePicker(); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.draftStateOf(id, ctrl))
}

// POST /drafts/:id/submit
func (h *Handler) SubmitDraftSession(c *gin.Context) {
	id, ctrl, ok := h.sessionFromPath(c)
	if !ok {
		return
	}

	committed, err := ctrl.Submit(c.Request.Context())
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	h.Sessions.Close(id)
	c.JSON(http.StatusOK, committed)
}

// DELETE /drafts/:id
func (h *Handler) CancelDraft(c *gin.Context) {
	id, ctrl, ok := h.sessionFromPath(c)
	if !ok {
		return
	}

	ctrl.Cancel()
	h.Sessions.Close(id)
	c.JSON(http.StatusOK, gin.H{"message": "draft discarded"})
}
