package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-auth-service/middleware/jwtware"
	"github.com/goliatone/go-print"
)

// AuthControllerRoutes holds the paths the controller mounts
type AuthControllerRoutes struct {
	Login         string
	Register      string
	AdminGroup    string
	AdminRegister string
	Dashboard     string
	UserGroup     string
	Profile       string
	Health        string
}

type AuthController struct {
	Debug       bool
	Logger      Logger
	Routes      *AuthControllerRoutes
	Auther      *Auther
	ContextKey  string
	TokenLookup string
	AuthScheme  string
	Listeners   []ValidationListener
}

type AuthControllerOption func(*AuthController) *AuthController

// WithControllerLogger sets the controller logger
func WithControllerLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

// WithAuther sets the authentication flow the handlers call into
func WithAuther(auther *Auther) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Auther = auther
		return c
	}
}

// WithGateConfig copies the token lookup settings from cfg
func WithGateConfig(cfg Config) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		if cfg == nil {
			return c
		}
		if key := cfg.GetContextKey(); key != "" {
			c.ContextKey = key
		}
		if lookup := cfg.GetTokenLookup(); lookup != "" {
			c.TokenLookup = lookup
		}
		if scheme := cfg.GetAuthScheme(); scheme != "" {
			c.AuthScheme = scheme
		}
		return c
	}
}

// WithValidationListeners runs listeners after a token is accepted by a gate
func WithValidationListeners(listeners ...ValidationListener) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Listeners = append(c.Listeners, listeners...)
		return c
	}
}

// WithDebug logs decoded payloads, passwords masked
func WithDebug(debug bool) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Debug = debug
		return c
	}
}

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger:     defLogger{},
		ContextKey: DefaultContextKey,
		AuthScheme: "Bearer",
		Routes: &AuthControllerRoutes{
			Login:         "/login",
			Register:      "/register",
			AdminGroup:    "/admin",
			AdminRegister: "/register",
			Dashboard:     "/dashboard",
			UserGroup:     "/user",
			Profile:       "/profile",
			Health:        "/health",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Auther == nil {
		panic("Missing Auther in auth controller...")
	}

	return c
}

// RegisterAuthRoutes mounts the public routes and the role gated groups
func RegisterAuthRoutes(app fiber.Router, opts ...AuthControllerOption) *AuthController {
	controller := NewAuthController(opts...)

	app.Get(controller.Routes.Health, controller.Health)
	app.Post(controller.Routes.Login, controller.LoginPost)
	app.Post(controller.Routes.Register, controller.RegistrationCreate)

	admin := app.Group(controller.Routes.AdminGroup, controller.Gate(RoleAdmin))
	admin.Post(controller.Routes.AdminRegister, controller.AdminRegistrationCreate)
	admin.Get(controller.Routes.Dashboard, controller.DashboardShow)

	user := app.Group(controller.Routes.UserGroup, controller.Gate(RoleUser))
	user.Get(controller.Routes.Profile, controller.ProfileShow)

	return controller
}

// Gate returns the token gate for a route group that requires role
func (a *AuthController) Gate(role UserRole) fiber.Handler {
	cfg := jwtware.Config{
		TokenValidator: TokenServiceValidator(a.Auther.TokenService()),
		ContextKey:     a.ContextKey,
		TokenLookup:    a.TokenLookup,
		AuthScheme:     a.AuthScheme,
		RequiredRole:   string(role),
		// the app ErrorHandler translates gate errors
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if errors.Is(err, jwtware.ErrRoleDenied) {
				return RoleRequiredError(role)
			}
			return err
		},
		ContextEnricher: ContextEnricherAdapter,
	}
	RegisterValidationListeners(&cfg, a.Listeners...)
	return jwtware.New(cfg)
}

// LoginRequest payload
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// placeholderRefreshToken fills refresh_token, refresh is not supported
const placeholderRefreshToken = "dummy_refresh_token"

// TokenResponse is returned by login and self registration
type TokenResponse struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	TokenType    string   `json:"token_type"`
	User         UserView `json:"user"`
}

func newTokenResponse(user *User, token string) TokenResponse {
	return TokenResponse{
		AccessToken:  token,
		RefreshToken: placeholderRefreshToken,
		TokenType:    "bearer",
		User:         user.View(),
	}
}

// Health reports liveness and the account count, a directory failure is a 500
func (a *AuthController) Health(c *fiber.Ctx) error {
	count, err := a.Auther.Directory().Count(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "ok", "accounts": count})
}

func (a *AuthController) LoginPost(c *fiber.Ctx) error {
	payload := new(LoginRequest)
	if err := c.BodyParser(payload); err != nil {
		a.Logger.Debug("Login body parse error", "error", err)
		return ErrBadRequestBody
	}

	if a.Debug {
		a.Logger.Debug("login payload", "payload", print.MaybePrettyJSON(LoginRequest{
			Email:    payload.Email,
			Password: maskedPassword,
		}))
	}

	user, token, err := a.Auther.Login(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		return err
	}

	return c.JSON(newTokenResponse(user, token))
}

func (a *AuthController) RegistrationCreate(c *fiber.Ctx) error {
	payload, err := a.parseRegistration(c)
	if err != nil {
		return err
	}

	user, token, err := a.Auther.Register(c.UserContext(), *payload)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(newTokenResponse(user, token))
}

func (a *AuthController) AdminRegistrationCreate(c *fiber.Ctx) error {
	claims, ok := GetClaims(c.UserContext())
	if !ok {
		return ErrMissingToken
	}

	payload, err := a.parseRegistration(c)
	if err != nil {
		return err
	}

	user, err := a.Auther.RegisterAdmin(c.UserContext(), claims, *payload)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(user.View())
}

func (a *AuthController) DashboardShow(c *fiber.Ctx) error {
	view, err := a.Auther.Dashboard(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(view)
}

func (a *AuthController) ProfileShow(c *fiber.Ctx) error {
	claims, ok := GetClaims(c.UserContext())
	if !ok {
		return ErrMissingToken
	}

	user, err := a.Auther.Profile(c.UserContext(), claims)
	if err != nil {
		return err
	}
	return c.JSON(user.View())
}

const maskedPassword = "********"

func (a *AuthController) parseRegistration(c *fiber.Ctx) (*RegisterUserMessage, error) {
	payload := new(RegisterUserMessage)
	if err := c.BodyParser(payload); err != nil {
		a.Logger.Debug("Registration body parse error", "error", err)
		return nil, ErrBadRequestBody
	}

	if a.Debug {
		masked := *payload
		masked.Password = maskedPassword
		a.Logger.Debug("registration payload", "payload", print.MaybePrettyJSON(masked))
	}

	return payload, nil
}
