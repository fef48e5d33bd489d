package controllers

import (
	"net/http"

	"github.com/smartshop/webapp/app/forms"
	"github.com/smartshop/webapp/app/services"
	"github.com/smartshop/webapp/app/views"
	"github.com/smartshop/webapp/internal/auth"
	"github.com/smartshop/webapp/pkg/backend"
	"github.com/smartshop/webapp/pkg/session"
)

// invalidCredentials is shown verbatim on a failed login.
const invalidCredentials = "Nom d'utilisateur ou mot de passe incorrect."

type AuthController struct {
	store   *auth.Store
	service *services.AuthService
}

func NewAuthController(store *auth.Store, service *services.AuthService) *AuthController {
	return &AuthController{store: store, service: service}
}

type loginData struct {
	Form    forms.LoginForm
	Errors  forms.Errors
	Message string
}

// ShowLogin renders the login form. An already-authenticated visitor is
// sent straight to their home view.
func (c *AuthController) ShowLogin(w http.ResponseWriter, r *http.Request) {
	sess := session.FromCtx(r)
	state := c.store.Restore(r.Context(), sess)
	if state.IsAuthenticated {
		http.Redirect(w, r, homeFor(state.Role), http.StatusFound)
		return
	}
	views.Render(w, r, http.StatusOK, "login", views.Page{
		Title: "Connexion",
		Data:  loginData{Errors: forms.Errors{}},
	})
}

// Login handles the credential post. An invalid credential pair renders the
// exact French message; any other backend failure renders the generic one.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	form := forms.ParseLogin(r)
	if errs := form.Validate(); errs.Has() {
		views.Render(w, r, http.StatusUnprocessableEntity, "login", views.Page{
			Title: "Connexion",
			Data:  loginData{Form: form, Errors: errs},
		})
		return
	}

	result, err := c.service.Login(r.Context(), form.Username, form.Password)
	if err != nil {
		msg := genericError
		if backend.IsUnauthorized(err) {
			msg = invalidCredentials
		}
		views.Render(w, r, http.StatusUnauthorized, "login", views.Page{
			Title: "Connexion",
			Data:  loginData{Form: form, Errors: forms.Errors{}, Message: msg},
		})
		return
	}

	sess := session.FromCtx(r)
	c.store.SetAuthenticated(sess, result.Role, result.Cookies)
	if err := sess.Save(w); err != nil {
		views.RenderError(w, r, http.StatusInternalServerError, genericError)
		return
	}

	http.Redirect(w, r, homeFor(result.Role), http.StatusFound)
}

// Logout clears both sessions and always lands on the login view.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	sess := session.FromCtx(r)
	c.store.Logout(r.Context(), sess)
	_ = sess.Save(w)
	http.Redirect(w, r, "/login", http.StatusFound)
}

func homeFor(role string) string {
	if role == auth.RoleAdmin {
		return "/admin/dashboard"
	}
	return "/products"
}
