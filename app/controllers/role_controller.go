package controllers

import (
	"github.com/shashiranjanraj/voucherhub/app/services"
	"github.com/shashiranjanraj/voucherhub/pkg/ctx"
)

type RoleController struct {
	roles *services.RoleService
}

func NewRoleController(roles *services.RoleService) *RoleController {
	return &RoleController{roles: roles}
}

func (rc *RoleController) List(c *ctx.Context) {
	roles, err := rc.roles.List(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(roles)
}

func (rc *RoleController) Show(c *ctx.Context) {
	role, err := rc.roles.Find(c.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(role)
}

func (rc *RoleController) Create(c *ctx.Context) {
	var in services.RoleInput
	if !c.BindJSON(&in) {
		return
	}

	role, err := rc.roles.Create(c.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(role)
}

func (rc *RoleController) Update(c *ctx.Context) {
	var in services.RoleInput
	if !c.BindJSON(&in) {
		return
	}

	role, err := rc.roles.Update(c.Context(), c.Param("id"), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(role)
}

func (rc *RoleController) Delete(c *ctx.Context) {
	if err := rc.roles.Delete(c.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]string{"id": c.Param("id")})
}
