package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/voucherhub/app/models"
	"github.com/shashiranjanraj/voucherhub/app/repositories/memory"
	"github.com/shashiranjanraj/voucherhub/pkg/validate"
)

func TestDynaFieldRules(t *testing.T) {
	ctx := context.Background()
	svc := NewDynaFieldService(memory.NewDynaFields())
	var verr *ValidationError

	_, err := svc.Create(ctx, DynaFieldInput{Entity: "user", Name: "size", Label: "Size", Type: models.FieldSelect})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "options")

	f, err := svc.Create(ctx, DynaFieldInput{Entity: "user", Name: "size", Label: "Size", Type: models.FieldSelect, Options: []string{"S", "M"}})
	require.NoError(t, err)

	_, err = svc.Create(ctx, DynaFieldInput{Entity: "user", Name: "size", Label: "Again", Type: models.FieldText})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")

	text := models.FieldText
	patched, err := svc.Patch(ctx, f.ID.Hex(), DynaFieldPatch{Type: &text})
	require.NoError(t, err)
	assert.Equal(t, models.FieldText, patched.Type)
	assert.Nil(t, patched.Options)
	assert.Equal(t, "Size", patched.Label)

	bogus := "color"
	_, err = svc.Patch(ctx, f.ID.Hex(), DynaFieldPatch{Type: &bogus})
	require.ErrorAs(t, err, &verr)
}

func TestDynaFieldPatchKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDynaFields()
	svc := NewDynaFieldService(store)

	f, err := svc.Create(ctx, DynaFieldInput{Entity: "user", Name: "nickname", Label: "Nickname", Type: models.FieldText})
	require.NoError(t, err)

	blank := ""
	errs := validate.Struct(DynaFieldPatch{Entity: &blank, Name: &blank, Label: &blank})
	assert.Contains(t, errs, "entity")
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "label")

	var verr *ValidationError
	_, err = svc.Patch(ctx, f.ID.Hex(), DynaFieldPatch{Name: &blank})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")

	stored, err := svc.Find(ctx, f.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "user", stored.Entity)
	assert.Equal(t, "nickname", stored.Name)
	assert.Equal(t, "Nickname", stored.Label)
}
