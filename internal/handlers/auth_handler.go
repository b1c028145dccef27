package handlers

import (
	"net/http"

	"onna/internal/api"
	"onna/internal/flash"
	"onna/internal/models"
	"onna/internal/validation"
)

// AuthHandler serves the sign-in and sign-up flows. Credentials are verified
// by the backend; this layer only persists the returned identity record in
// the session cookie.
type AuthHandler struct {
	base    *Base
	backend api.Client
}

// NewAuthHandler creates the auth handler.
func NewAuthHandler(base *Base, backend api.Client) *AuthHandler {
	return &AuthHandler{base: base, backend: backend}
}

// ShowLogin renders the sign-in form.
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	if h.base.Sessions.Current(r) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.base.Render(w, "login.tmpl", LoginViewModel{
		Page:     h.base.NewPage(w, r, "Sign in"),
		ReturnTo: safeReturnPath(r.URL.Query().Get("return")),
	})
}

// Login verifies credentials against the backend and signs the visitor in.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid form submission", "parsing login form", err)
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")
	returnTo := safeReturnPath(r.FormValue("return"))

	renderError := func(msg string) {
		vm := LoginViewModel{
			Page:     h.base.NewPage(w, r, "Sign in"),
			Email:    email,
			ReturnTo: returnTo,
			Error:    msg,
		}
		w.WriteHeader(http.StatusUnprocessableEntity)
		h.base.Render(w, "login.tmpl", vm)
	}

	if err := validation.ValidateEmail(email); err != nil {
		renderError(err.Error())
		return
	}
	if password == "" {
		renderError("password is required")
		return
	}

	user, err := h.backend.Login(r.Context(), api.LoginRequest{Email: email, Password: password})
	if err != nil {
		if api.IsStatus(err, http.StatusUnauthorized) {
			renderError("Invalid email or password")
			return
		}
		respondWithError(w, http.StatusBadGateway, "Sign in is temporarily unavailable", "backend login call", err)
		return
	}

	if err := h.base.Sessions.SignIn(w, r, *user); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "issuing session", err)
		return
	}

	http.Redirect(w, r, returnTo, http.StatusSeeOther)
}

// ShowSignup renders the registration form.
func (h *AuthHandler) ShowSignup(w http.ResponseWriter, r *http.Request) {
	if h.base.Sessions.Current(r) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.base.Render(w, "signup.tmpl", SignupViewModel{
		Page: h.base.NewPage(w, r, "Create an account"),
		Role: string(models.RoleYouth),
	})
}

// Signup registers a new account with the backend.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid form submission", "parsing signup form", err)
		return
	}

	name := r.FormValue("name")
	email := r.FormValue("email")
	password := r.FormValue("password")
	roleValue := r.FormValue("role")

	renderError := func(msg string) {
		vm := SignupViewModel{
			Page:  h.base.NewPage(w, r, "Create an account"),
			Name:  name,
			Email: email,
			Role:  roleValue,
			Error: msg,
		}
		w.WriteHeader(http.StatusUnprocessableEntity)
		h.base.Render(w, "signup.tmpl", vm)
	}

	if err := validation.ValidateName(name); err != nil {
		renderError(err.Error())
		return
	}
	if err := validation.ValidateEmail(email); err != nil {
		renderError(err.Error())
		return
	}
	if err := validation.ValidatePassword(password); err != nil {
		renderError(err.Error())
		return
	}
	role, err := validation.ParseRole(roleValue)
	if err != nil {
		renderError(err.Error())
		return
	}

	_, err = h.backend.Signup(r.Context(), api.SignupRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     role,
	})
	if err != nil {
		if api.IsStatus(err, http.StatusConflict) {
			renderError("An account with this email already exists")
			return
		}
		respondWithError(w, http.StatusBadGateway, "Sign up is temporarily unavailable", "backend signup call", err)
		return
	}

	h.base.Flashes.Add(w, r, flash.LevelSuccess, "Account created. Sign in to get started.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Logout clears the persisted user record and sends the visitor back to the
// landing page so every view re-reads the signed-out state.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.base.Sessions.SignOut(w, r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
