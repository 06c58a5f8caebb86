package identity

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/smart-health-api/internal/domain/entity"
)

// Backend resolves login and signup requests into identities. It is the
// seam where a real identity provider would plug in.
type Backend interface {
	Login(ctx context.Context, email string, role entity.Role) (*entity.Identity, error)
	Signup(ctx context.Context, in SignupInput) (*entity.Identity, error)
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
	Role     entity.Role
}

const (
	DefaultLoginLatency  = 500 * time.Millisecond
	DefaultSignupLatency = 1000 * time.Millisecond
)

// TemplateBackend is the demo backend: logins resolve to one of three fixed
// role templates and passwords are never checked.
type TemplateBackend struct {
	LoginLatency  time.Duration
	SignupLatency time.Duration
	now           func() time.Time
	newID         func() string
}

func NewTemplateBackend(loginLatency, signupLatency time.Duration) *TemplateBackend {
	return &TemplateBackend{
		LoginLatency:  loginLatency,
		SignupLatency: signupLatency,
		now:           time.Now,
		newID:         uuid.NewString,
	}
}

func (b *TemplateBackend) Login(ctx context.Context, email string, role entity.Role) (*entity.Identity, error) {
	if err := wait(ctx, b.LoginLatency); err != nil {
		return nil, err
	}
	tpl, err := templateFor(role)
	if err != nil {
		return nil, err
	}
	ident := tpl.WithEmail(email)
	ident.ID = LoginID(role, email)
	return ident, nil
}

// loginNamespace scopes LoginID so the ids cannot collide with signup uuids.
var loginNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("smart-health/login"))

// LoginID is the id a template login gets: the same for one email and
// role, different for everyone else. Email case and padding are ignored.
func LoginID(role entity.Role, email string) string {
	key := string(role) + ":" + strings.ToLower(strings.TrimSpace(email))
	return uuid.NewSHA1(loginNamespace, []byte(key)).String()
}

func (b *TemplateBackend) Signup(ctx context.Context, in SignupInput) (*entity.Identity, error) {
	if err := wait(ctx, b.SignupLatency); err != nil {
		return nil, err
	}
	var profile *entity.HealthProfile
	switch in.Role {
	case entity.RoleUser:
		profile = entity.UnknownHealthProfile()
	case entity.RoleDoctor, entity.RoleAdmin:
		profile = nil
	default:
		return nil, entity.ErrUnknownRole
	}
	return entity.NewIdentity(b.newID(), in.Name, in.Email, in.Role, GeneratedAvatar(in.Name), profile)
}

// GeneratedAvatar builds the initials avatar URL for a display name.
func GeneratedAvatar(name string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(strings.TrimSpace(name)), "+", "%20")
	return "https://ui-avatars.com/api/?name=" + escaped + "&background=0d9488&color=fff"
}

// wait simulates backend latency; it aborts early when ctx is done.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
