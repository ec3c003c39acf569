package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"droscher.com/Taproom/pkg/auth"
	"droscher.com/Taproom/pkg/repository"
)

type UserServer struct {
	authManager *auth.Manager
	repository  repository.UserRepository
	logger      *zap.Logger
}

func NewUserServer(authManager *auth.Manager, repository repository.UserRepository, logger *zap.Logger) *UserServer {
	return &UserServer{authManager: authManager, repository: repository, logger: logger}
}

type registerRequest struct {
	Name     string `binding:"required"       json:"name"`
	Email    string `binding:"required,email" json:"email"`
	Password string `binding:"required,min=6" json:"password"`
}

type loginRequest struct {
	Email    string `binding:"required,email" json:"email"`
	Password string `binding:"required"       json:"password"`
}

func (u *UserServer) Register(c *gin.Context) {
	var request registerRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		abortWithError(c, u.logger, invalidInput(err))

		return
	}

	user, token, err := u.authManager.Register(c.Request.Context(), request.Name, request.Email, request.Password)
	if err != nil {
		abortWithError(c, u.logger, err)

		return
	}

	c.JSON(http.StatusCreated, Session{User: UserFromModel(user), Token: token})
}

func (u *UserServer) Login(c *gin.Context) {
	var request loginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		abortWithError(c, u.logger, invalidInput(err))

		return
	}

	user, token, err := u.authManager.Login(c.Request.Context(), request.Email, request.Password)
	if err != nil {
		abortWithError(c, u.logger, err)

		return
	}

	c.JSON(http.StatusOK, Session{User: UserFromModel(user), Token: token})
}

// DeleteCurrentUser removes the authenticated user along with every bar they own.
func (u *UserServer) DeleteCurrentUser(c *gin.Context) {
	user, ok := auth.UserFromContext(c.Request.Context())
	if !ok {
		abortWithError(c, u.logger, auth.ErrUnauthenticated)

		return
	}

	if err := u.repository.DeleteUser(c.Request.Context(), user.ID); err != nil {
		abortWithError(c, u.logger, err)

		return
	}

	c.Status(http.StatusNoContent)
}
