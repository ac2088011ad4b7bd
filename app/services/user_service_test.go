package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/voucherhub/app/models"
	"github.com/shashiranjanraj/voucherhub/app/repositories/memory"
	"github.com/shashiranjanraj/voucherhub/pkg/mail"
	"github.com/shashiranjanraj/voucherhub/pkg/workerpool"
)

type recordingSender struct {
	mu   sync.Mutex
	sent [][]string
}

func (r *recordingSender) Send(m *mail.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, m.Recipients())
	return nil
}

func TestRegisterCreatesCustomerAndMails(t *testing.T) {
	users := memory.NewUsers()
	sender := &recordingSender{}
	pool := workerpool.New("mail-test", 1)
	svc := NewUserService(users, sender, pool)

	u, err := svc.Register(context.Background(), RegisterInput{Name: "Bob", Email: "Bob@X.com", Password: "secret123"})
	require.NoError(t, err)
	pool.Shutdown()

	assert.Equal(t, models.RoleCustomer, u.Role)
	assert.True(t, u.Active)
	assert.Zero(t, u.Points)
	assert.NotEqual(t, "secret123", u.Password)
	assert.Equal(t, [][]string{{"bob@x.com"}}, sender.sent)

	_, err = svc.Register(context.Background(), RegisterInput{Name: "Bob", Email: "bob@x.com", Password: "secret123"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "email")
}
