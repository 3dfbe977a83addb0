package handlers

import (
	"context"
	"net/http"

	"styledecor/models"
	"styledecor/services/user"
	"styledecor/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler serves the /users and /decorators resources.
type UserHandler struct {
	Service *user.Service
}

func NewUserHandler(svc *user.Service) *UserHandler {
	return &UserHandler{Service: svc}
}

func (h *UserHandler) RegisterUserHandler(c *gin.Context) {
	var in models.UserRegistration
	if !bindJSON(c, &in) {
		return
	}
	res, err := h.Service.RegisterUser(c.Request.Context(), in)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	c.JSON(status, res)
}

func (h *UserHandler) ListUsersHandler(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	users, err := h.Service.ListUsers(c.Request.Context(), caller)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetUserRoleHandler(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	view, err := h.Service.UserRole(c.Request.Context(), caller, c.Query("email"))
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *UserHandler) PromoteUserToAdminHandler(c *gin.Context) {
	h.update(c, h.Service.PromoteUserToAdmin)
}

func (h *UserHandler) PromoteUserToDecoratorHandler(c *gin.Context) {
	h.update(c, h.Service.PromoteUserToDecorator)
}

func (h *UserHandler) BanUserHandler(c *gin.Context) {
	h.update(c, h.Service.BanUser)
}

func (h *UserHandler) DeleteUserHandler(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	res, err := h.Service.DeleteUser(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// update runs an id-addressed administrative write and relays its modified count.
func (h *UserHandler) update(c *gin.Context, op func(ctx context.Context, caller models.Caller, id string) (*models.UpdateResult, error)) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	res, err := op(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
