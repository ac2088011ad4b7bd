// Package memory implements the repositories interfaces over maps. It backs
// the service and controller tests and mirrors the MongoDB semantics the
// services depend on: unique indexes, sort orders and sentinel errors.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/voucherhub/app/models"
	"github.com/shashiranjanraj/voucherhub/app/repositories"
)

// New returns a fresh, empty store set.
func New() repositories.Stores {
	return Stores(NewCartItems(), NewUsers(), NewRoles(), NewProfiles(), NewDynaFields())
}

// Stores bundles already constructed memory stores so tests can keep
// handles on the concrete types.
func Stores(c *CartItems, u *Users, r *Roles, p *Profiles, d *DynaFields) repositories.Stores {
	return repositories.Stores{CartItems: c, Users: u, Roles: r, Profiles: p, DynaFields: d}
}

func stamp() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }

// CartItems is an in-memory CartItemStore.
type CartItems struct {
	mu    sync.Mutex
	items []models.CartItemHistory

	// FailSet, when set, is consulted before every SetVoucherCode.
	FailSet func(id primitive.ObjectID) error
}

func NewCartItems(seed ...models.CartItemHistory) *CartItems {
	c := &CartItems{}
	for _, item := range seed {
		item := item
		_ = c.Create(context.Background(), &item)
	}
	return c
}

func (c *CartItems) Create(_ context.Context, item *models.CartItemHistory) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	if item.VoucherCode != "" && c.codeTaken(item.VoucherCode, item.ID) {
		return repositories.ErrDuplicate
	}
	item.CreatedAt = stamp()
	item.UpdatedAt = item.CreatedAt
	c.items = append(c.items, *item)
	return nil
}

func (c *CartItems) codeTaken(code string, except primitive.ObjectID) bool {
	for _, it := range c.items {
		if it.ID != except && it.VoucherCode == code {
			return true
		}
	}
	return false
}

func (c *CartItems) sorted() []models.CartItemHistory {
	out := append([]models.CartItemHistory(nil), c.items...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	return out
}

func (c *CartItems) FindMissingCodes(_ context.Context) ([]models.CartItemHistory, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []models.CartItemHistory
	for _, it := range c.sorted() {
		if it.VoucherCode == "" {
			out = append(out, it)
		}
	}
	return out, nil
}

func (c *CartItems) CountMissingCodes(ctx context.Context) (int64, error) {
	missing, err := c.FindMissingCodes(ctx)
	return int64(len(missing)), err
}

func (c *CartItems) SetVoucherCode(_ context.Context, id primitive.ObjectID, code string) error {
	if c.FailSet != nil {
		if err := c.FailSet(id); err != nil {
			return err
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.codeTaken(code, id) {
		return repositories.ErrDuplicate
	}
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].VoucherCode = code
			c.items[i].UpdatedAt = stamp()
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (c *CartItems) Codes(_ context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	codes := make([]string, 0, len(c.items))
	for _, it := range c.sorted() {
		codes = append(codes, it.VoucherCode)
	}
	return codes, nil
}

// All returns a copy of every record ordered by id.
func (c *CartItems) All() []models.CartItemHistory {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sorted()
}

// Users is an in-memory UserStore.
type Users struct {
	mu    sync.Mutex
	users []models.User

	// FailSetRole, when set, is consulted before every SetRole.
	FailSetRole func(u models.User) error
}

func NewUsers(seed ...models.User) *Users {
	s := &Users{}
	for _, u := range seed {
		u := u
		_ = s.Create(context.Background(), &u)
	}
	return s
}

func normEmail(e string) string { return strings.ToLower(strings.TrimSpace(e)) }

func (s *Users) indexOfEmail(email string) int {
	for i, u := range s.users {
		if u.Email == email {
			return i
		}
	}
	return -1
}

func (s *Users) Create(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u.Email = normEmail(u.Email)
	if s.indexOfEmail(u.Email) >= 0 {
		return repositories.ErrDuplicate
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	u.CreatedAt = stamp()
	u.UpdatedAt = u.CreatedAt
	s.users = append(s.users, *u)
	return nil
}

func (s *Users) FindByID(_ context.Context, id string) (models.User, error) {
	oid, err := repositories.ObjectID(id)
	if err != nil {
		return models.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == oid {
			return u, nil
		}
	}
	return models.User{}, repositories.ErrNotFound
}

func (s *Users) FindByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOfEmail(normEmail(email)); i >= 0 {
		return s.users[i], nil
	}
	return models.User{}, repositories.ErrNotFound
}

// Each iterates over a snapshot so fn may call back into the store.
func (s *Users) Each(ctx context.Context, fn func(models.User) error) error {
	s.mu.Lock()
	snapshot := append([]models.User(nil), s.users...)
	s.mu.Unlock()

	for _, u := range snapshot {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(u); err != nil {
			return err
		}
	}
	return nil
}

func (s *Users) SetRole(_ context.Context, id primitive.ObjectID, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID != id {
			continue
		}
		if s.FailSetRole != nil {
			if err := s.FailSetRole(s.users[i]); err != nil {
				return err
			}
		}
		s.users[i].Role = role
		s.users[i].UpdatedAt = stamp()
		return nil
	}
	return repositories.ErrNotFound
}

func (s *Users) UpsertAdmin(_ context.Context, email, name, passwordHash string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email = normEmail(email)
	ts := stamp()
	if i := s.indexOfEmail(email); i >= 0 {
		u := &s.users[i]
		u.Password, u.Role, u.Active, u.UpdatedAt = passwordHash, models.RoleAdmin, true, ts
		return false, nil
	}
	s.users = append(s.users, models.User{
		ID:        primitive.NewObjectID(),
		Email:     email,
		Name:      name,
		Password:  passwordHash,
		Role:      models.RoleAdmin,
		Active:    true,
		CreatedAt: ts,
		UpdatedAt: ts,
	})
	return true, nil
}

func (s *Users) CountByEmail(_ context.Context, email string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for _, u := range s.users {
		if u.Email == normEmail(email) {
			n++
		}
	}
	return n, nil
}

// All returns a copy of every user in insertion order.
func (s *Users) All() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.User(nil), s.users...)
}

// Roles is an in-memory RoleStore.
type Roles struct {
	mu    sync.Mutex
	roles map[primitive.ObjectID]models.Role

	// Lists counts List calls so cache tests can tell hits from misses.
	Lists int
}

func NewRoles() *Roles {
	return &Roles{roles: map[primitive.ObjectID]models.Role{}}
}

func (s *Roles) nameTaken(name string, except primitive.ObjectID) bool {
	for id, r := range s.roles {
		if id != except && r.Name == name {
			return true
		}
	}
	return false
}

func (s *Roles) List(_ context.Context) ([]models.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Lists++
	out := make([]models.Role, 0, len(s.roles))
	for _, r := range s.roles {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Roles) Find(_ context.Context, id string) (models.Role, error) {
	oid, err := repositories.ObjectID(id)
	if err != nil {
		return models.Role{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.roles[oid]; ok {
		return r, nil
	}
	return models.Role{}, repositories.ErrNotFound
}

func (s *Roles) FindByName(_ context.Context, name string) (models.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.roles {
		if r.Name == name {
			return r, nil
		}
	}
	return models.Role{}, repositories.ErrNotFound
}

func (s *Roles) Create(_ context.Context, r *models.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nameTaken(r.Name, primitive.NilObjectID) {
		return repositories.ErrDuplicate
	}
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	r.CreatedAt = stamp()
	r.UpdatedAt = r.CreatedAt
	s.roles[r.ID] = *r
	return nil
}

func (s *Roles) Update(_ context.Context, r *models.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.roles[r.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	if s.nameTaken(r.Name, r.ID) {
		return repositories.ErrDuplicate
	}
	r.CreatedAt = cur.CreatedAt
	r.UpdatedAt = stamp()
	s.roles[r.ID] = *r
	return nil
}

func (s *Roles) Delete(_ context.Context, id string) error {
	oid, err := repositories.ObjectID(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.roles[oid]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.roles, oid)
	return nil
}

// Profiles is an in-memory ProfileStore.
type Profiles struct {
	mu       sync.Mutex
	profiles []models.Profile
}

func NewProfiles() *Profiles { return &Profiles{} }

func (s *Profiles) Create(_ context.Context, p *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	p.CreatedAt = stamp()
	p.UpdatedAt = p.CreatedAt
	s.profiles = append(s.profiles, *p)
	return nil
}

func (s *Profiles) CountByRole(_ context.Context, roleID primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for _, p := range s.profiles {
		if p.RoleID == roleID {
			n++
		}
	}
	return n, nil
}

// DynaFields is an in-memory DynaFieldStore.
type DynaFields struct {
	mu     sync.Mutex
	fields map[primitive.ObjectID]models.DynaField
}

func NewDynaFields() *DynaFields {
	return &DynaFields{fields: map[primitive.ObjectID]models.DynaField{}}
}

func (s *DynaFields) taken(entity, name string, except primitive.ObjectID) bool {
	for id, f := range s.fields {
		if id != except && f.Entity == entity && f.Name == name {
			return true
		}
	}
	return false
}

func (s *DynaFields) List(_ context.Context, entity string) ([]models.DynaField, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.DynaField{}
	for _, f := range s.fields {
		if entity == "" || f.Entity == entity {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Entity != b.Entity {
			return a.Entity < b.Entity
		}
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return a.Name < b.Name
	})
	return out, nil
}

func (s *DynaFields) Find(_ context.Context, id string) (models.DynaField, error) {
	oid, err := repositories.ObjectID(id)
	if err != nil {
		return models.DynaField{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.fields[oid]; ok {
		return f, nil
	}
	return models.DynaField{}, repositories.ErrNotFound
}

func (s *DynaFields) Create(_ context.Context, f *models.DynaField) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.taken(f.Entity, f.Name, primitive.NilObjectID) {
		return repositories.ErrDuplicate
	}
	if f.ID.IsZero() {
		f.ID = primitive.NewObjectID()
	}
	f.CreatedAt = stamp()
	f.UpdatedAt = f.CreatedAt
	s.fields[f.ID] = *f
	return nil
}

func (s *DynaFields) Update(_ context.Context, f *models.DynaField) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.fields[f.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	if s.taken(f.Entity, f.Name, f.ID) {
		return repositories.ErrDuplicate
	}
	f.CreatedAt = cur.CreatedAt
	f.UpdatedAt = stamp()
	s.fields[f.ID] = *f
	return nil
}

func (s *DynaFields) Delete(_ context.Context, id string) error {
	oid, err := repositories.ObjectID(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.fields[oid]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.fields, oid)
	return nil
}

var (
	_ repositories.CartItemStore  = (*CartItems)(nil)
	_ repositories.UserStore      = (*Users)(nil)
	_ repositories.RoleStore      = (*Roles)(nil)
	_ repositories.ProfileStore   = (*Profiles)(nil)
	_ repositories.DynaFieldStore = (*DynaFields)(nil)
)
