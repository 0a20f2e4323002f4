package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gvanmetre/BiteBook/internal/handler/http/dto"
	"github.com/gvanmetre/BiteBook/internal/handler/http/middleware"
	"github.com/gvanmetre/BiteBook/internal/usecase"
	usecasecontract "github.com/gvanmetre/BiteBook/internal/usecase/contract"
)

// AuthHandler serves the login, registration and email verification pages.
type AuthHandler struct {
	userUC         usecase.IUserUseCase
	verificationUC usecase.IEmailVerificationUC
	config         usecasecontract.IConfigProvider
	logger         usecasecontract.IAppLogger
}

func NewAuthHandler(userUC usecase.IUserUseCase, verificationUC usecase.IEmailVerificationUC, config usecasecontract.IConfigProvider, logger usecasecontract.IAppLogger) *AuthHandler {
	return &AuthHandler{
		userUC:         userUC,
		verificationUC: verificationUC,
		config:         config,
		logger:         logger,
	}
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	maxAge := int(h.config.GetSessionTokenExpiry().Seconds())
	c.SetCookie(middleware.SessionCookieName, token, maxAge, "/", "", false, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
}

// Index routes the landing page by session state.
func (h *AuthHandler) Index(c *gin.Context) {
	user := middleware.CurrentUser(c)
	switch {
	case user == nil:
		c.Redirect(http.StatusFound, "/login")
	case !user.IsVerified:
		c.Redirect(http.StatusFound, "/verify")
	default:
		c.Redirect(http.StatusFound, "/find")
	}
}

// ShowLogin renders the login form; signed-in users skip it.
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	if middleware.CurrentUser(c) != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	RenderPage(c, http.StatusOK, "login.tmpl", nil)
}

// Login handles the login form post and starts a cookie session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		RenderPage(c, http.StatusBadRequest, "login.tmpl", gin.H{"Errors": []string{"username and password are required"}})
		return
	}
	user, token, err := h.userUC.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		status := http.StatusUnauthorized
		msg := "invalid username or password"
		if errors.Is(err, usecase.ErrAccountSuspended) {
			status = http.StatusForbidden
			msg = "this account is suspended"
		}
		RenderPage(c, status, "login.tmpl", gin.H{"Errors": []string{msg}, "Username": req.Username})
		return
	}
	h.setSessionCookie(c, token)
	if !user.IsVerified {
		c.Redirect(http.StatusFound, "/verify")
		return
	}
	c.Redirect(http.StatusFound, "/find")
}

// ShowRegister renders the registration form.
func (h *AuthHandler) ShowRegister(c *gin.Context) {
	if middleware.CurrentUser(c) != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	RenderPage(c, http.StatusOK, "register.tmpl", nil)
}

// Register creates the account, signs the user in and sends them to the
// verification screen.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		RenderPage(c, http.StatusBadRequest, "register.tmpl", gin.H{"Errors": []string{"all fields are required"}})
		return
	}
	user, err := h.userUC.Register(c.Request.Context(), req.Username, req.Email, req.Password, req.PasswordConfirm)
	if err != nil {
		RenderPageError(c, "register.tmpl", gin.H{"Username": req.Username, "Email": req.Email}, err)
		return
	}
	_, token, err := h.userUC.Login(c.Request.Context(), user.Username, req.Password)
	if err != nil {
		// Account exists but auto sign-in failed; let them log in manually.
		h.logger.Warnf("auto login after registration failed for %s: %v", user.ID, err)
		c.Redirect(http.StatusFound, "/login")
		return
	}
	h.setSessionCookie(c, token)
	if !user.IsVerified {
		c.Redirect(http.StatusFound, "/verify")
		return
	}
	c.Redirect(http.StatusFound, "/find")
}

// ShowVerify renders the "check your inbox" screen.
func (h *AuthHandler) ShowVerify(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user.IsVerified {
		c.Redirect(http.StatusFound, "/find")
		return
	}
	RenderPage(c, http.StatusOK, "verify.tmpl", gin.H{"Email": user.Email})
}

// ResendVerification mails a fresh verification link.
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := h.verificationUC.RequestVerificationEmail(c.Request.Context(), user); err != nil {
		if errors.Is(err, usecase.ErrAlreadyVerified) {
			c.Redirect(http.StatusFound, "/find")
			return
		}
		RenderPage(c, http.StatusInternalServerError, "verify.tmpl", gin.H{
			"Email":  user.Email,
			"Errors": []string{"could not send the email, try again later"},
		})
		return
	}
	RenderPage(c, http.StatusOK, "verify.tmpl", gin.H{"Email": user.Email, "Resent": true})
}

// VerifyEmail redeems the emailed link. It works with or without an active
// session so the link can be opened in any browser.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	verifier := c.Query("verifier")
	token := c.Query("token")
	user, err := h.verificationUC.VerifyEmailToken(c.Request.Context(), verifier, token)
	if err != nil {
		RenderPage(c, http.StatusBadRequest, "verify.tmpl", gin.H{
			"Errors": []string{"this verification link is invalid or has expired"},
		})
		return
	}
	h.logger.Infof("email verified for user %s", user.ID)
	if middleware.CurrentUser(c) != nil {
		c.Redirect(http.StatusFound, "/find")
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.clearSessionCookie(c)
	c.Redirect(http.StatusFound, "/login")
}
