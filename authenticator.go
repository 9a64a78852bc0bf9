package auth

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Auther runs the registration, login and provisioning flows over a
// Directory. It holds no account state of its own.
type Auther struct {
	directory    Directory
	hasher       PasswordAuthenticator
	tokenService TokenService
	logger       Logger
	activitySink ActivitySink
	now          func() time.Time

	decoyOnce sync.Once
	decoyHash string
}

// DashboardView is the admin snapshot of the directory
type DashboardView struct {
	UserCount int        `json:"user_count"`
	Users     []UserView `json:"users"`
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(directory Directory, hasher PasswordAuthenticator, tokenService TokenService) *Auther {
	return &Auther{
		directory:    directory,
		hasher:       hasher,
		tokenService: tokenService,
		logger:       defLogger{},
		activitySink: noopActivitySink{},
		now:          time.Now,
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithActivitySink configures an ActivitySink for emitting auth events.
func (s *Auther) WithActivitySink(sink ActivitySink) *Auther {
	s.activitySink = normalizeActivitySink(sink)
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Directory returns the account directory
func (s *Auther) Directory() Directory {
	return s.directory
}

// Register creates a User account and returns it with a session token.
// Hashing happens before the directory is touched.
func (s *Auther) Register(ctx context.Context, msg RegisterUserMessage) (*User, string, error) {
	if err := msg.Validate(); err != nil {
		return nil, "", err
	}

	user, err := s.insert(ctx, msg, RoleUser)
	if err != nil {
		s.logger.Warn("Register failed", "email", msg.Email, "error", err)
		return nil, "", err
	}

	token, err := s.tokenService.Generate(NewIdentityFromUser(user))
	if err != nil {
		s.logger.Error("Register token generation failed", "error", err)
		return nil, "", err
	}

	s.emitAuthEvent(ctx, ActivityEventUserRegistered, actorFromUser(user), user.ID, nil)

	return user, token, nil
}

// Login verifies the credentials and issues a session token. Unknown
// email and wrong password both return ErrInvalidCredentials.
func (s *Auther) Login(ctx context.Context, email, password string) (*User, string, error) {
	if email == "" || password == "" {
		return nil, "", s.loginFailed(ctx, email, "empty credentials")
	}

	user, err := s.directory.FindByEmail(ctx, email)
	if errors.Is(err, ErrAccountNotFound) {
		// pay for a comparison so response time does not reveal the miss
		s.hasher.ComparePasswordAndHash(password, s.decoy())
		return nil, "", s.loginFailed(ctx, email, "unknown email")
	}
	if err != nil {
		s.logger.Error("Login directory lookup failed", "error", err)
		return nil, "", err
	}

	if len(password) > maxPasswordBytes {
		s.hasher.ComparePasswordAndHash(password[:maxPasswordBytes], s.decoy())
		return nil, "", s.loginFailed(ctx, email, "password too long")
	}

	ok, err := s.hasher.ComparePasswordAndHash(password, user.PasswordHash)
	if err != nil {
		s.logger.Error("Login stored digest unusable", "email", email, "error", err)
		return nil, "", err
	}
	if !ok {
		return nil, "", s.loginFailed(ctx, email, "password mismatch")
	}

	token, err := s.tokenService.Generate(NewIdentityFromUser(user))
	if err != nil {
		s.logger.Error("Login token generation failed", "error", err)
		return nil, "", err
	}

	s.emitAuthEvent(ctx, ActivityEventLoginSuccess, actorFromUser(user), user.ID, nil)

	return user, token, nil
}

// RegisterAdmin provisions an Admin account on behalf of an authenticated
// Admin. No token is issued for the new account.
func (s *Auther) RegisterAdmin(ctx context.Context, claims AuthClaims, msg RegisterUserMessage) (*User, error) {
	if claims == nil || !claims.HasRole(string(RoleAdmin)) {
		actor := ActorRef{}
		if claims != nil {
			actor = ActorRef{Email: claims.Subject(), Role: claims.Role()}
		}
		s.emitAuthEvent(ctx, ActivityEventAccessDenied, actor, 0, map[string]any{
			"operation": "register_admin",
		})
		return nil, RoleRequiredError(RoleAdmin)
	}

	if err := msg.Validate(); err != nil {
		return nil, err
	}

	user, err := s.insert(ctx, msg, RoleAdmin)
	if err != nil {
		s.logger.Warn("RegisterAdmin failed", "email", msg.Email, "error", err)
		return nil, err
	}

	s.emitAuthEvent(ctx, ActivityEventAdminRegistered, ActorRef{
		Email: claims.Subject(),
		Role:  claims.Role(),
	}, user.ID, map[string]any{
		"email": user.Email,
	})

	return user, nil
}

// Profile returns the account the claims were issued for
func (s *Auther) Profile(ctx context.Context, claims AuthClaims) (*User, error) {
	if claims == nil {
		return nil, ErrMissingToken
	}
	return s.directory.FindByEmail(ctx, claims.Subject())
}

// Dashboard returns the account count and every account in insertion order
func (s *Auther) Dashboard(ctx context.Context) (DashboardView, error) {
	users, err := s.directory.List(ctx)
	if err != nil {
		return DashboardView{}, err
	}

	view := DashboardView{
		UserCount: len(users),
		Users:     make([]UserView, 0, len(users)),
	}
	for _, u := range users {
		view.Users = append(view.Users, u.View())
	}
	return view, nil
}

// Validate verifies a session token, it is used as the gate validator
func (s *Auther) Validate(token string) (AuthClaims, error) {
	return s.tokenService.Validate(token)
}

func (s *Auther) insert(ctx context.Context, msg RegisterUserMessage, role UserRole) (*User, error) {
	hash, err := s.hasher.HashPassword(msg.Password)
	if err != nil {
		return nil, err
	}

	account, err := msg.account(hash, role)
	if err != nil {
		return nil, err
	}

	return s.directory.Insert(ctx, account)
}

func (s *Auther) loginFailed(ctx context.Context, email, reason string) error {
	s.logger.Warn("Login failed", "email", email, "reason", reason)
	s.emitAuthEvent(ctx, ActivityEventLoginFailure, ActorRef{Email: email}, 0, map[string]any{
		"reason": reason,
	})
	return ErrInvalidCredentials
}

func (s *Auther) decoy() string {
	s.decoyOnce.Do(func() {
		hash, err := s.hasher.HashPassword("decoy-password-never-matches")
		if err != nil {
			s.logger.Error("decoy hash generation failed", "error", err)
			return
		}
		s.decoyHash = hash
	})
	return s.decoyHash
}

func (s *Auther) emitAuthEvent(ctx context.Context, eventType ActivityEventType, actor ActorRef, userID int64, metadata map[string]any) {
	sink := normalizeActivitySink(s.activitySink)
	event := ActivityEvent{
		EventType:  eventType,
		Actor:      actor,
		UserID:     userID,
		Metadata:   metadata,
		OccurredAt: s.now(),
	}

	if event.Metadata == nil {
		event.Metadata = map[string]any{}
	}

	if err := sink.Record(ctx, event); err != nil {
		s.logger.Warn("activity sink record error", "error", err)
	}
}

func actorFromUser(user *User) ActorRef {
	if user == nil {
		return ActorRef{}
	}
	return ActorRef{Email: user.Email, Role: string(user.Role)}
}
