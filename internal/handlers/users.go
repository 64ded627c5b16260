package handlers

import (
	"net/http"

	"taskboard/internal/models"
	"taskboard/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UserHandler struct {
	base
	userService services.UserService
}

func NewUserHandler(db *gorm.DB, userService services.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{base: newBase(db, logger), userService: userService}
}

type createUserInput struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
	Role  string `json:"role"`
}

func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.userService.GetUsers(h.dbFor(c))
	if err != nil {
		h.fail(c, http.StatusInternalServerError, MsgUsersFetchFailed, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var input createUserInput
	if !h.bindJSON(c, &input, MsgUserFieldsMissing) {
		return
	}

	user := models.User{
		Name:  input.Name,
		Email: input.Email,
		Role:  input.Role,
	}
	if err := h.userService.CreateUser(h.dbFor(c), &user); err != nil {
		h.fail(c, http.StatusInternalServerError, MsgUserCreateFailed, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) GetUserByID(c *gin.Context) {
	user, err := h.userService.GetUserByID(h.dbFor(c), paramID(c))
	if err != nil {
		if isNotFound(err) {
			h.fail(c, http.StatusNotFound, MsgUserNotFound, nil)
			return
		}
		h.fail(c, http.StatusInternalServerError, MsgUserFetchFailed, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUser does not distinguish a missing row from other failures.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var update services.UserUpdate
	if !h.bindJSON(c, &update, MsgInvalidBody) {
		return
	}

	user, err := h.userService.UpdateUser(h.dbFor(c), paramID(c), update)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, MsgUserUpdateFailed, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.userService.DeleteUser(h.dbFor(c), paramID(c)); err != nil {
		h.fail(c, http.StatusInternalServerError, MsgUserDeleteFailed, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": MsgUserDeleted})
}
