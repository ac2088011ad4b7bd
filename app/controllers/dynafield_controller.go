package controllers

import (
	"github.com/shashiranjanraj/voucherhub/app/services"
	"github.com/shashiranjanraj/voucherhub/pkg/ctx"
)

type DynaFieldController struct {
	fields *services.DynaFieldService
}

func NewDynaFieldController(fields *services.DynaFieldService) *DynaFieldController {
	return &DynaFieldController{fields: fields}
}

func (dc *DynaFieldController) Index(c *ctx.Context) {
	fields, err := dc.fields.List(c.Context(), c.Query("entity"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(fields)
}

func (dc *DynaFieldController) Show(c *ctx.Context) {
	f, err := dc.fields.Find(c.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(f)
}

func (dc *DynaFieldController) Store(c *ctx.Context) {
	var in services.DynaFieldInput
	if !c.BindJSON(&in) {
		return
	}

	f, err := dc.fields.Create(c.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(f)
}

func (dc *DynaFieldController) Patch(c *ctx.Context) {
	var in services.DynaFieldPatch
	if !c.BindJSON(&in) {
		return
	}

	f, err := dc.fields.Patch(c.Context(), c.Param("id"), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(f)
}

func (dc *DynaFieldController) Destroy(c *ctx.Context) {
	if err := dc.fields.Delete(c.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]string{"id": c.Param("id")})
}
