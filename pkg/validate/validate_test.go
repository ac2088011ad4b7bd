package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/voucherhub/pkg/validate"
)

type roleInput struct {
	Name        string `json:"name"        validate:"required,min=2,max=50"`
	Description string `json:"description" validate:"nullable,max=255"`
}

type fieldInput struct {
	Entity  string   `json:"entity"  validate:"required,alpha_dash"`
	Type    string   `json:"type"    validate:"required,in=text,number,boolean,date,select"`
	Options []string `json:"options" validate:"nullable,max=3"`
	Order   int      `json:"order"   validate:"gte=0,lte=1000"`
}

type patchInput struct {
	Label *string `json:"label" validate:"nullable,min=1,max=5"`
	Type  *string `json:"type"  validate:"nullable,in=text,select"`
}

func strp(s string) *string { return &s }

func TestRoleInput(t *testing.T) {
	assert.Empty(t, validate.Struct(roleInput{Name: "editor"}))

	errs := validate.Struct(roleInput{})
	assert.Equal(t, "The name field is required.", errs["name"])

	errs = validate.Struct(&roleInput{Name: "x"})
	assert.Contains(t, errs["name"], "at least 2")
}

func TestInRuleKeepsListTogether(t *testing.T) {
	assert.Empty(t, validate.Struct(fieldInput{Entity: "cart_item", Type: "select", Options: []string{"a"}}))

	errs := validate.Struct(fieldInput{Entity: "cart", Type: "color"})
	assert.Equal(t, "The selected type is invalid.", errs["type"])

	errs = validate.Struct(fieldInput{Entity: "cart item", Type: "text", Options: []string{"a", "b", "c", "d"}, Order: 2000})
	assert.Contains(t, errs, "entity")
	assert.Contains(t, errs, "options")
	assert.Contains(t, errs, "order")
}

func TestInListMayContainRuleNames(t *testing.T) {
	for _, typ := range []string{"text", "number", "boolean", "date", "select"} {
		errs := validate.Struct(fieldInput{Entity: "cart", Type: typ, Options: []string{"a"}})
		assert.Empty(t, errs, typ)
	}

	type statusInput struct {
		Status string `json:"status" validate:"required,not_in=email,date,max=5"`
	}
	assert.Empty(t, validate.Struct(statusInput{Status: "open"}))
	errs := validate.Struct(statusInput{Status: "date"})
	assert.Contains(t, errs, "status")
	errs = validate.Struct(statusInput{Status: "pending"})
	assert.Contains(t, errs["status"], "5")
}

func TestPointerFields(t *testing.T) {
	assert.False(t, validate.HasErrors(validate.Struct(patchInput{})))
	assert.False(t, validate.HasErrors(validate.Struct(patchInput{Label: strp("Size"), Type: strp("select")})))

	errs := validate.Struct(patchInput{Label: strp("too long label"), Type: strp("date")})
	assert.Contains(t, errs, "label")
	assert.Contains(t, errs, "type")
}

func TestEmailAndObjectID(t *testing.T) {
	type in struct {
		Email  string `json:"email"  validate:"required,email"`
		RoleID string `json:"roleId" validate:"nullable,objectid"`
	}
	assert.Empty(t, validate.Struct(in{Email: "admin@x.com", RoleID: "64b7f0c2a1b2c3d4e5f60718"}))

	errs := validate.Struct(in{Email: "not-an-email", RoleID: "123"})
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "roleId")
}
