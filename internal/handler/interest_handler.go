package handler

import (
	"net/http"
	"strconv"
	"time"

	"myswamvar/backend/internal/auth"
	"myswamvar/backend/internal/models"
	"myswamvar/backend/internal/repository"
	"myswamvar/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// SendInterestInput defines the structure for expressing interest in a profile.
type SendInterestInput struct {
	ProfileID uint `json:"profile_id" binding:"required" example:"42"`
}

// InterestResponse is an interest with the other party's profile embedded:
// the recipient for sent interests, the sender for received ones.
type InterestResponse struct {
	ID        uint                   `json:"id"`
	Status    models.InterestStatus  `json:"status"`
	Profile   service.ProfileSummary `json:"profile"`
	CreatedAt time.Time              `json:"created_at"`
}

// endregion

// InterestHandler exposes the interest lifecycle over REST.
type InterestHandler struct {
	svc   *service.InterestService
	users repository.UserRepository
}

func NewInterestHandler(svc *service.InterestService, users repository.UserRepository) *InterestHandler {
	return &InterestHandler{svc: svc, users: users}
}

// Send godoc
// @Summary      Express interest in a profile
// @Description  Creates a pending interest from the caller to the given profile.
// @Tags         interest
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body SendInterestInput true "Target profile"
// @Success      201  {object}  InterestResponse
// @Failure      400  {object}  ErrorResponse "Self-interest or malformed input"
// @Failure      404  {object}  ErrorResponse "Profile not found"
// @Failure      409  {object}  ErrorResponse "Interest already sent"
// @Router       /interest [post]
func (h *InterestHandler) Send(c *gin.Context) {
	var input SendInterestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := auth.GetUserID(c)
	interest, err := h.svc.Send(c.Request.Context(), userID, input.ProfileID)
	if err != nil {
		writeError(c, err)
		return
	}

	target, err := h.users.GetByID(c.Request.Context(), interest.ToUserID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, InterestResponse{
		ID:        interest.ID,
		Status:    interest.Status,
		Profile:   service.NewProfileSummary(target),
		CreatedAt: interest.CreatedAt,
	})
}

// ListSent godoc
// @Summary      List sent interests
// @Description  Returns the interests the caller has sent, with recipient profiles.
// @Tags         interest
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  InterestResponse
// @Router       /interest/sent [get]
func (h *InterestHandler) ListSent(c *gin.Context) {
	userID := auth.GetUserID(c)
	interests, err := h.svc.ListSent(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]InterestResponse, 0, len(interests))
	for i := range interests {
		out = append(out, InterestResponse{
			ID:        interests[i].ID,
			Status:    interests[i].Status,
			Profile:   service.NewProfileSummary(&interests[i].ToUser),
			CreatedAt: interests[i].CreatedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}

// ListReceived godoc
// @Summary      List received interests
// @Description  Returns the interests addressed to the caller, with sender profiles.
// @Tags         interest
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  InterestResponse
// @Router       /interest/received [get]
func (h *InterestHandler) ListReceived(c *gin.Context) {
	userID := auth.GetUserID(c)
	interests, err := h.svc.ListReceived(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]InterestResponse, 0, len(interests))
	for i := range interests {
		out = append(out, InterestResponse{
			ID:        interests[i].ID,
			Status:    interests[i].Status,
			Profile:   service.NewProfileSummary(&interests[i].FromUser),
			CreatedAt: interests[i].CreatedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}

// Accept godoc
// @Summary      Accept an interest
// @Description  Accepts a pending interest addressed to the caller.
// @Tags         interest
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Interest ID"
// @Success      200  {object}  map[string]interface{} "{"id": 1, "status": "accepted"}"
// @Failure      404  {object}  ErrorResponse "Interest not found or not addressed to caller"
// @Failure      409  {object}  ErrorResponse "Interest already answered"
// @Router       /interest/{id}/accept [post]
func (h *InterestHandler) Accept(c *gin.Context) {
	interestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid interest ID"})
		return
	}

	userID := auth.GetUserID(c)
	interest, err := h.svc.Accept(c.Request.Context(), uint(interestID), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": interest.ID, "status": interest.Status})
}

// Decline godoc
// @Summary      Decline an interest
// @Description  Declines a pending interest addressed to the caller.
// @Tags         interest
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Interest ID"
// @Success      200  {object}  map[string]string "{"message": "Interest declined"}"
// @Failure      404  {object}  ErrorResponse "Interest not found or not addressed to caller"
// @Failure      409  {object}  ErrorResponse "Interest already answered"
// @Router       /interest/{id}/decline [post]
func (h *InterestHandler) Decline(c *gin.Context) {
	interestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid interest ID"})
		return
	}

	userID := auth.GetUserID(c)
	if err := h.svc.Decline(c.Request.Context(), uint(interestID), userID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Interest declined"})
}
