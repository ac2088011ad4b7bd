package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shashiranjanraj/voucherhub/app/models"
	"github.com/shashiranjanraj/voucherhub/app/repositories"
)

// DynaFieldInput creates a field.
type DynaFieldInput struct {
	Entity   string   `json:"entity"   validate:"required,alpha_dash,max=50"`
	Name     string   `json:"name"     validate:"required,alpha_dash,max=50"`
	Label    string   `json:"label"    validate:"required,max=100"`
	Type     string   `json:"type"     validate:"required,in=text,number,boolean,date,select"`
	Required bool     `json:"required"`
	Options  []string `json:"options"  validate:"nullable,max=50"`
	Order    int      `json:"order"    validate:"gte=0,lte=10000"`
}

// DynaFieldPatch updates only the fields present in the request.
type DynaFieldPatch struct {
	Entity   *string   `json:"entity"   validate:"nullable,min=1,alpha_dash,max=50"`
	Name     *string   `json:"name"     validate:"nullable,min=1,alpha_dash,max=50"`
	Label    *string   `json:"label"    validate:"nullable,min=1,max=100"`
	Type     *string   `json:"type"     validate:"nullable,in=text,number,boolean,date,select"`
	Required *bool     `json:"required"`
	Options  *[]string `json:"options"`
	Order    *int      `json:"order"    validate:"nullable,gte=0,lte=10000"`
}

type DynaFieldService struct {
	fields repositories.DynaFieldStore
}

func NewDynaFieldService(fields repositories.DynaFieldStore) *DynaFieldService {
	return &DynaFieldService{fields: fields}
}

func (s *DynaFieldService) List(ctx context.Context, entity string) ([]models.DynaField, error) {
	return s.fields.List(ctx, entity)
}

func (s *DynaFieldService) Find(ctx context.Context, id string) (models.DynaField, error) {
	return s.fields.Find(ctx, id)
}

func (s *DynaFieldService) Create(ctx context.Context, in DynaFieldInput) (models.DynaField, error) {
	f := models.DynaField{
		Entity:   in.Entity,
		Name:     in.Name,
		Label:    in.Label,
		Type:     in.Type,
		Required: in.Required,
		Options:  in.Options,
		Order:    in.Order,
	}
	if err := checkField(&f); err != nil {
		return models.DynaField{}, err
	}
	if err := s.fields.Create(ctx, &f); err != nil {
		return models.DynaField{}, fieldErr(err)
	}
	return f, nil
}

func (s *DynaFieldService) Patch(ctx context.Context, id string, p DynaFieldPatch) (models.DynaField, error) {
	f, err := s.fields.Find(ctx, id)
	if err != nil {
		return models.DynaField{}, err
	}

	if p.Entity != nil {
		f.Entity = *p.Entity
	}
	if p.Name != nil {
		f.Name = *p.Name
	}
	if p.Label != nil {
		f.Label = *p.Label
	}
	if p.Type != nil {
		f.Type = *p.Type
	}
	if p.Required != nil {
		f.Required = *p.Required
	}
	if p.Options != nil {
		f.Options = *p.Options
	}
	if p.Order != nil {
		f.Order = *p.Order
	}

	if err := checkField(&f); err != nil {
		return models.DynaField{}, err
	}
	if err := s.fields.Update(ctx, &f); err != nil {
		return models.DynaField{}, fieldErr(err)
	}
	return f, nil
}

func (s *DynaFieldService) Delete(ctx context.Context, id string) error {
	return s.fields.Delete(ctx, id)
}

// checkField enforces the cross-field rules: a select needs at least one
// option, other types carry none. Entity, name and label never go blank.
func checkField(f *models.DynaField) error {
	for field, value := range map[string]string{"entity": f.Entity, "name": f.Name, "label": f.Label} {
		if strings.TrimSpace(value) == "" {
			return invalid(field, fmt.Sprintf("The %s field is required.", field))
		}
	}
	switch f.Type {
	case models.FieldSelect:
		if len(f.Options) == 0 {
			return invalid("options", "A select field needs at least one option.")
		}
	case models.FieldText, models.FieldNumber, models.FieldBoolean, models.FieldDate:
		f.Options = nil
	default:
		return invalid("type", fmt.Sprintf("Unknown field type %q.", f.Type))
	}
	return nil
}

func fieldErr(err error) error {
	if errors.Is(err, repositories.ErrDuplicate) {
		return invalid("name", "The name is already used by this entity.")
	}
	return err
}
