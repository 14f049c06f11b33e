package api

import (
	"errors"
	"net/http"
	"time"

	"alcyxob/fitness-schedule/internal/domain"
	"alcyxob/fitness-schedule/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ClassHandler holds the class service dependency.
type ClassHandler struct {
	classService service.ClassService
}

// NewClassHandler creates a new ClassHandler.
func NewClassHandler(classService service.ClassService) *ClassHandler {
	return &ClassHandler{classService: classService}
}

// --- DTOs ---

type CreateClassRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Capacity    int    `json:"capacity" binding:"omitempty,min=0"`
}

type ClassResponse struct {
	ID          string    `json:"id"`
	TrainerID   string    `json:"trainerId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Capacity    int       `json:"capacity"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func MapClassToResponse(cl *domain.Class) ClassResponse {
	if cl == nil {
		return ClassResponse{}
	}
	return ClassResponse{
		ID:          cl.ID.String(),
		TrainerID:   cl.TrainerID.String(),
		Name:        cl.Name,
		Description: cl.Description,
		Capacity:    cl.Capacity,
		CreatedAt:   cl.CreatedAt,
		UpdatedAt:   cl.UpdatedAt,
	}
}

func MapClassesToResponse(classes []domain.Class) []ClassResponse {
	responses := make([]ClassResponse, len(classes))
	for i, cl := range classes {
		responses[i] = MapClassToResponse(&cl)
	}
	return responses
}

// --- Handler Methods ---

func (h *ClassHandler) CreateClass(c *gin.Context) {
	var req CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify trainer from token.")
		return
	}

	class, err := h.classService.CreateClass(c.Request.Context(), trainerID, req.Name, req.Description, req.Capacity)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create class.")
		}
		return
	}
	c.JSON(http.StatusCreated, MapClassToResponse(class))
}

func (h *ClassHandler) GetTrainerClasses(c *gin.Context) {
	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify trainer from token.")
		return
	}

	classes, err := h.classService.GetClassesByTrainer(c.Request.Context(), trainerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve classes.")
		return
	}
	if classes == nil {
		c.JSON(http.StatusOK, []ClassResponse{})
		return
	}
	c.JSON(http.StatusOK, MapClassesToResponse(classes))
}

func (h *ClassHandler) GetClass(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid class ID.")
		return
	}

	class, err := h.classService.GetClass(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve class.")
		}
		return
	}
	c.JSON(http.StatusOK, MapClassToResponse(class))
}

func (h *ClassHandler) UpdateClass(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid class ID.")
		return
	}

	var req CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify trainer from token.")
		return
	}

	class := &domain.Class{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Capacity:    req.Capacity,
	}
	if err := h.classService.UpdateClass(c.Request.Context(), trainerID, class); err != nil {
		switch {
		case errors.Is(err, service.ErrClassNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update class.")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *ClassHandler) DeleteClass(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid class ID.")
		return
	}

	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify trainer from token.")
		return
	}

	if err := h.classService.DeleteClass(c.Request.Context(), trainerID, id); err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete class.")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
