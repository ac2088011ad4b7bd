package controllers

import (
	"github.com/shashiranjanraj/voucherhub/app/services"
	"github.com/shashiranjanraj/voucherhub/pkg/ctx"
	"github.com/shashiranjanraj/voucherhub/pkg/middleware"
)

type AuthController struct {
	auth  *services.AuthService
	users *services.UserService
}

func NewAuthController(auth *services.AuthService, users *services.UserService) *AuthController {
	return &AuthController{auth: auth, users: users}
}

type loginInput struct {
	Strategy string `json:"strategy" validate:"nullable,in=local"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshInput struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// Login handles POST /authentication.
func (ac *AuthController) Login(c *ctx.Context) {
	var in loginInput
	if !c.BindJSON(&in) {
		return
	}

	pair, err := ac.auth.Login(c.Context(), in.Email, in.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(pair)
}

// Refresh handles POST /authentication/refresh.
func (ac *AuthController) Refresh(c *ctx.Context) {
	var in refreshInput
	if !c.BindJSON(&in) {
		return
	}

	access, err := ac.auth.Refresh(c.Context(), in.RefreshToken)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]string{"accessToken": access})
}

// Me handles GET /authentication/me.
func (ac *AuthController) Me(c *ctx.Context) {
	id, ok := middleware.UserIDFromCtx(c.R)
	if !ok {
		c.Unauthorized()
		return
	}

	user, err := ac.auth.Me(c.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(user)
}

// Register handles POST /users.
func (ac *AuthController) Register(c *ctx.Context) {
	var in services.RegisterInput
	if !c.BindJSON(&in) {
		return
	}

	user, err := ac.users.Register(c.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(user)
}
