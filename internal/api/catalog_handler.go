package api

import (
	"errors"
	"fmt"
	"net/http"

	"ironlog/workout-app/internal/domain"
	"ironlog/workout-app/internal/repository"
	"ironlog/workout-app/internal/service"

	"github.com/gin-gonic/gin"
)

// CatalogHandler holds the catalog service dependency.
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// --- Request/Response Structs ---

type CreateCatalogExerciseRequest struct {
	Name            string   `json:"name" binding:"required"`
	MuscleGroup     string   `json:"muscleGroup" binding:"required"`
	Description     string   `json:"description"`
	EquipmentNeeded []string `json:"equipmentNeeded"`
}

type UploadMediaURLRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type ConfirmMediaUploadRequest struct {
	ObjectKey string `json:"objectKey" binding:"required"`
}

type CatalogExerciseResponse struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	MuscleGroup     string   `json:"muscleGroup"`
	Description     string   `json:"description,omitempty"`
	EquipmentNeeded []string `json:"equipmentNeeded,omitempty"`
	HasMedia        bool     `json:"hasMedia"`
}

// --- Handler Methods ---

func (h *CatalogHandler) CreateExercise(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req CreateCatalogExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	exercise, err := h.catalogService.CreateExercise(c.Request.Context(), userID, service.CatalogExerciseInput{
		Name:            req.Name,
		MuscleGroup:     domain.MuscleGroup(req.MuscleGroup),
		Description:     req.Description,
		EquipmentNeeded: req.EquipmentNeeded,
	})
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create exercise")
		}
		return
	}

	c.JSON(http.StatusCreated, MapCatalogExerciseToResponse(exercise))
}

// ListExercises supports optional muscleGroup and search query filters.
func (h *CatalogHandler) ListExercises(c *gin.Context) {
	filter := repository.CatalogFilter{
		MuscleGroup: domain.MuscleGroup(c.Query("muscleGroup")),
		NameSearch:  c.Query("search"),
	}

	exercises, err := h.catalogService.ListExercises(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to list exercises")
		}
		return
	}

	out := make([]CatalogExerciseResponse, 0, len(exercises))
	for i := range exercises {
		out = append(out, MapCatalogExerciseToResponse(&exercises[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) GetExercise(c *gin.Context) {
	exerciseID, ok := parseIDParam(c, "exerciseId")
	if !ok {
		return
	}

	exercise, err := h.catalogService.GetExercise(c.Request.Context(), exerciseID)
	if err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load exercise")
		}
		return
	}

	c.JSON(http.StatusOK, MapCatalogExerciseToResponse(exercise))
}

// RequestMediaUploadURL returns a presigned PUT URL for demo media.
func (h *CatalogHandler) RequestMediaUploadURL(c *gin.Context) {
	exerciseID, ok := parseIDParam(c, "exerciseId")
	if !ok {
		return
	}

	var req UploadMediaURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	resp, err := h.catalogService.RequestMediaUploadURL(c.Request.Context(), exerciseID, req.ContentType)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExerciseNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrUploadURLError):
			abortWithError(c, http.StatusInternalServerError, "Could not generate upload URL")
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to prepare upload")
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ConfirmMediaUpload records the uploaded object on the exercise. Called after
// the client finished the PUT against the presigned URL.
func (h *CatalogHandler) ConfirmMediaUpload(c *gin.Context) {
	exerciseID, ok := parseIDParam(c, "exerciseId")
	if !ok {
		return
	}

	var req ConfirmMediaUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	exercise, err := h.catalogService.ConfirmMediaUpload(c.Request.Context(), exerciseID, req.ObjectKey)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExerciseNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to confirm upload")
		}
		return
	}

	c.JSON(http.StatusOK, MapCatalogExerciseToResponse(exercise))
}

// GetMediaDownloadURL returns a presigned GET URL for the exercise's media.
func (h *CatalogHandler) GetMediaDownloadURL(c *gin.Context) {
	exerciseID, ok := parseIDParam(c, "exerciseId")
	if !ok {
		return
	}

	url, err := h.catalogService.GetMediaDownloadURL(c.Request.Context(), exerciseID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExerciseNotFound), errors.Is(err, service.ErrNoMediaAttached):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not generate download URL")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"downloadUrl": url})
}

// MapCatalogExerciseToResponse converts a catalog exercise to its DTO. The
// media object key stays internal; clients go through the URL endpoints.
func MapCatalogExerciseToResponse(exercise *domain.CatalogExercise) CatalogExerciseResponse {
	if exercise == nil {
		return CatalogExerciseResponse{}
	}
	return CatalogExerciseResponse{
		ID:              exercise.ID.Hex(),
		Name:            exercise.Name,
		MuscleGroup:     string(exercise.MuscleGroup),
		Description:     exercise.Description,
		EquipmentNeeded: exercise.EquipmentNeeded,
		HasMedia:        exercise.MediaObjectKey != "",
	}
}
