package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/michdebow/stash-tracker/internal/auth"
	"github.com/michdebow/stash-tracker/internal/httputil"
	"github.com/michdebow/stash-tracker/internal/models"
)

// RegisterUserRoutes registers the routes for registration and login with
// the RouterGroup that is passed. These routes do not require a token.
func (co Controller) RegisterUserRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/register", OptionsRegister)
	r.POST("/register", co.Register)

	r.OPTIONS("/login", OptionsLogin)
	r.POST("/login", co.Login)
}

type RegisterRequest struct {
	Email    string `json:"email" example:"jane@example.com"`
	Password string `json:"password" example:"correct horse battery staple"`
	Name     string `json:"name" example:"Jane" default:""`
}

type LoginRequest struct {
	Email    string `json:"email" example:"jane@example.com"`
	Password string `json:"password" example:"correct horse battery staple"`
}

// User is the representation of a user in API v1. The password hash never
// leaves the server.
type User struct {
	models.DefaultModel
	Email string `json:"email" example:"jane@example.com"`
	Name  string `json:"name" example:"Jane"`
}

// Session is a token and the user it belongs to.
type Session struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIs..."` // Bearer token for the authorization header
	User  User   `json:"user"`                                    // The authenticated user
}

type SessionResponse struct {
	Error *string  `json:"error" example:"the email or password is incorrect"` // The error, if any occurred
	Data  *Session `json:"data"`                                               // The session, if authentication succeeded
}

func newUser(model models.User) User {
	return User{
		DefaultModel: model.DefaultModel,
		Email:        model.Email,
		Name:         model.Name,
	}
}

// newSession mints a token for the user.
func (co Controller) newSession(model models.User) (Session, error) {
	token, err := auth.GenerateToken(co.jwtSecret, model.ID, co.tokenTTL)
	if err != nil {
		return Session{}, err
	}

	return Session{
		Token: token,
		User:  newUser(model),
	}, nil
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Users
// @Success		204
// @Router			/v1/register [options]
func OptionsRegister(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Users
// @Success		204
// @Router			/v1/login [options]
func OptionsLogin(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Register user
// @Description	Creates a user account and returns a session for it
// @Tags			Users
// @Accept			json
// @Produce		json
// @Success		201		{object}	SessionResponse
// @Failure		400		{object}	SessionResponse
// @Failure		409		{object}	SessionResponse
// @Failure		500		{object}	SessionResponse
// @Param			user	body		RegisterRequest	true	"User"
// @Router			/v1/register [post]
func (co Controller) Register(c *gin.Context) {
	var request RegisterRequest
	err := httputil.BindData(c, &request)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SessionResponse{
			Error: &e,
		})
		return
	}

	user, err := co.service.RegisterUser(c.Request.Context(), request.Email, request.Password, request.Name)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SessionResponse{
			Error: &e,
		})
		return
	}

	session, err := co.newSession(user)
	if err != nil {
		e := models.ErrGeneral.Error()
		c.JSON(http.StatusInternalServerError, SessionResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusCreated, SessionResponse{Data: &session})
}

// @Summary		Log in
// @Description	Verifies the credentials and returns a session
// @Tags			Users
// @Accept			json
// @Produce		json
// @Success		200			{object}	SessionResponse
// @Failure		400			{object}	SessionResponse
// @Failure		401			{object}	SessionResponse
// @Failure		500			{object}	SessionResponse
// @Param			credentials	body		LoginRequest	true	"Credentials"
// @Router			/v1/login [post]
func (co Controller) Login(c *gin.Context) {
	var request LoginRequest
	err := httputil.BindData(c, &request)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SessionResponse{
			Error: &e,
		})
		return
	}

	user, err := co.service.AuthenticateUser(c.Request.Context(), request.Email, request.Password)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SessionResponse{
			Error: &e,
		})
		return
	}

	session, err := co.newSession(user)
	if err != nil {
		e := models.ErrGeneral.Error()
		c.JSON(http.StatusInternalServerError, SessionResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, SessionResponse{Data: &session})
}
