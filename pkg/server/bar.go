package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"droscher.com/Taproom/pkg/auth"
	"droscher.com/Taproom/pkg/model"
	"droscher.com/Taproom/pkg/query"
	"droscher.com/Taproom/pkg/repository"
)

type BarServer struct {
	repository repository.BarRepository
	logger     *zap.Logger
}

func NewBarServer(repository repository.BarRepository, logger *zap.Logger) *BarServer {
	return &BarServer{repository: repository, logger: logger}
}

type addBarRequest struct {
	Name        string  `binding:"required"       json:"name"`
	Address     string  `binding:"required"       json:"address"`
	Phone       *string `json:"phone"`
	Email       string  `binding:"required,email" json:"email"`
	Description *string `json:"description"`
}

type updateBarRequest struct {
	Name        *string `binding:"omitempty,min=1" json:"name"`
	Address     *string `binding:"omitempty,min=1" json:"address"`
	Phone       *string `json:"phone"`
	Email       *string `binding:"omitempty,email" json:"email"`
	Description *string `json:"description"`
}

// AddBar creates a bar owned by the authenticated user.
func (b *BarServer) AddBar(c *gin.Context) {
	var request addBarRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		abortWithError(c, b.logger, invalidInput(err))

		return
	}

	bar := model.Bar{
		Name:        request.Name,
		Address:     request.Address,
		Phone:       request.Phone,
		Email:       request.Email,
		Description: request.Description,
	}

	if user, ok := auth.UserFromContext(c.Request.Context()); ok {
		bar.UserID = &user.ID
	}

	newBar, err := b.repository.AddBar(c.Request.Context(), bar)
	if err != nil {
		abortWithError(c, b.logger, err)

		return
	}

	c.JSON(http.StatusCreated, BarFromModel(newBar))
}

func (b *BarServer) GetBar(c *gin.Context) {
	barID, err := pathID(c, "bar_id")
	if err != nil {
		abortWithError(c, b.logger, err)

		return
	}

	bar, err := b.repository.GetBarByID(c.Request.Context(), barID)
	if err != nil {
		abortWithError(c, b.logger, err)

		return
	}

	c.JSON(http.StatusOK, BarFromModel(bar))
}

func (b *BarServer) ListBars(c *gin.Context) {
	filter, err := query.ParseBarFilter(c.Request.URL.Query())
	if err != nil {
		abortWithError(c, b.logger, err)

		return
	}

	bars, err := b.repository.ListBars(c.Request.Context(), filter)
	if err != nil {
		abortWithError(c, b.logger, err)

		return
	}

	c.JSON(http.StatusOK, BarsFromModel(bars))
}

func (b *BarServer) UpdateBar(c *gin.Context) {
	barID, err := pathID(c, "bar_id")
	if err != nil {
		abortWithError(c, b.logger, err)

		return
	}

	var request updateBarRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		abortWithError(c, b.logger, invalidInput(err))

		return
	}

	bar, err := b.repository.UpdateBar(c.Request.Context(), barID, model.BarPatch(request))
	if err != nil {
		abortWithError(c, b.logger, err)

		return
	}

	c.JSON(http.StatusOK, BarFromModel(bar))
}

func (b *BarServer) DeleteBar(c *gin.Context) {
	barID, err := pathID(c, "bar_id")
	if err != nil {
		abortWithError(c, b.logger, err)

		return
	}

	if err := b.repository.DeleteBar(c.Request.Context(), barID); err != nil {
		abortWithError(c, b.logger, err)

		return
	}

	c.Status(http.StatusNoContent)
}
