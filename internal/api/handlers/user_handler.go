package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/formbuilder-go/internal/application"
	"github.com/linskybing/formbuilder-go/internal/domain/user"
	"github.com/linskybing/formbuilder-go/pkg/pagination"
	"github.com/linskybing/formbuilder-go/pkg/response"
	"github.com/linskybing/formbuilder-go/pkg/utils"
)

const tokenCookie = "token"

type UserHandler struct {
	svc          *application.UserService
	cookieTTL    time.Duration
	secureCookie bool
}

func NewUserHandler(svc *application.UserService, cookieTTL time.Duration, secureCookie bool) *UserHandler {
	return &UserHandler{svc: svc, cookieTTL: cookieTTL, secureCookie: secureCookie}
}

func (h *UserHandler) currentUserID(c *gin.Context) (uint, bool) {
	id, err := utils.GetUserIDFromContext(c)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "احراز هویت الزامی است", nil)
		return 0, false
	}
	return id, true
}

// Register godoc
// @Summary User registration
// @Description New accounts start as pending and cannot log in until activated.
// @Tags users
// @Accept json
// @Produce json
// @Param input body user.CreateUserInput true "User registration info"
// @Success 200 {object} response.SuccessResponse{data=user.User}
// @Failure 400 {object} response.ErrorResponse "Invalid input or email taken"
// @Failure 500 {object} response.ErrorResponse
// @Router /api/users/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var input user.CreateUserInput
	if !bindJSON(c, &input) {
		return
	}

	u, err := h.svc.Register(c.Request.Context(), input)
	if err != nil {
		fail(c, err, "خطا در ایجاد کاربر")
		return
	}
	response.Success(c, u, "کاربر با موفقیت ایجاد شد")
}

// Login godoc
// @Summary User login
// @Tags users
// @Accept json
// @Produce json
// @Param input body user.LoginInput true "Credentials"
// @Success 200 {object} response.SuccessResponse{data=response.TokenResponse}
// @Failure 401 {object} response.ErrorResponse "Invalid email or password"
// @Failure 403 {object} response.ErrorResponse "Account inactive"
// @Router /api/users/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var input user.LoginInput
	if !bindJSON(c, &input) {
		return
	}

	token, u, err := h.svc.Login(c.Request.Context(), input)
	if err != nil {
		fail(c, err, "خطا در ورود")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(tokenCookie, token, int(h.cookieTTL.Seconds()), "/", "", h.secureCookie, true)
	response.Success(c, response.TokenResponse{Token: token, User: u}, "ورود موفق")
}

// Logout godoc
// @Summary Clear the session cookie
// @Tags users
// @Produce json
// @Success 200 {object} response.SuccessResponse
// @Router /api/users/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	c.SetCookie(tokenCookie, "", -1, "/", "", h.secureCookie, true)
	response.Success(c, nil, "خروج موفق")
}

// Me godoc
// @Summary Current user profile
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.SuccessResponse{data=user.User}
// @Failure 401 {object} response.ErrorResponse
// @Router /api/users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	id, ok := h.currentUserID(c)
	if !ok {
		return
	}

	u, err := h.svc.GetUser(c.Request.Context(), id)
	if err != nil {
		fail(c, err, "خطا در دریافت کاربر")
		return
	}
	response.Success(c, u, "اطلاعات کاربر دریافت شد")
}

// UpdateUser godoc
// @Summary Update the current user
// @Description Only persian_name, english_name, phone, avatar_url and preferences can change.
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param input body object true "Fields to change"
// @Success 200 {object} response.SuccessResponse{data=user.User}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /api/users/update [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := h.currentUserID(c)
	if !ok {
		return
	}
	raw, ok := bindRaw(c)
	if !ok {
		return
	}

	u, err := h.svc.UpdateUser(c.Request.Context(), id, raw)
	if err != nil {
		fail(c, err, "خطا در بروزرسانی کاربر")
		return
	}
	response.Success(c, u, "اطلاعات کاربر بروزرسانی شد")
}

// DeleteUser godoc
// @Summary Deactivate the current user
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.SuccessResponse{data=user.DeleteResult}
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/users/delete [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := h.currentUserID(c)
	if !ok {
		return
	}

	res, err := h.svc.DeleteUser(c.Request.Context(), id, id)
	if err != nil {
		fail(c, err, "خطا در حذف کاربر")
		return
	}
	c.SetCookie(tokenCookie, "", -1, "/", "", h.secureCookie, true)
	response.Success(c, res, "کاربر با موفقیت حذف شد")
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param role query string false "admin, user or moderator"
// @Param status query string false "pending, active or inactive"
// @Param search query string false "Name or email search"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} response.SuccessResponse{data=user.ListResult}
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /api/users/list [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	filter := user.ListFilter{
		Role:   c.Query("role"),
		Status: c.Query("status"),
		Search: c.Query("search"),
	}

	res, err := h.svc.ListUsers(c.Request.Context(), filter, pageParams(c, pagination.DefaultOpts))
	if err != nil {
		fail(c, err, "خطا در دریافت کاربران")
		return
	}
	response.Success(c, res, "لیست کاربران دریافت شد")
}

// GetUser godoc
// @Summary Get a user by ID
// @Description Allowed for the user themselves or an admin.
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} response.SuccessResponse{data=user.User}
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/users/profile/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, msgUserIDRequired, nil)
		return
	}

	u, err := h.svc.GetUser(c.Request.Context(), id)
	if err != nil {
		fail(c, err, "خطا در دریافت کاربر")
		return
	}
	response.Success(c, u, "اطلاعات کاربر دریافت شد")
}

// SetAccountState godoc
// @Summary Activate, deactivate or change the role of an account
// @Description Admin only. Admins cannot change their own account.
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param input body user.AccountStateInput true "Target account and new state"
// @Success 200 {object} response.SuccessResponse{data=user.User}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/users/status [put]
func (h *UserHandler) SetAccountState(c *gin.Context) {
	actorID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	var input user.AccountStateInput
	if !bindJSON(c, &input) {
		return
	}

	u, err := h.svc.SetAccountState(c.Request.Context(), actorID, input)
	if err != nil {
		fail(c, err, "خطا در تغییر وضعیت کاربر")
		return
	}
	response.Success(c, u, "وضعیت کاربر بروزرسانی شد")
}
