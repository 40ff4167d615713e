package http

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"todoapp/internal/domain"
	"todoapp/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

// CookieConfig describes how the session cookie is written.
type CookieConfig struct {
	Name   string
	MaxAge int
	Secure bool
}

// Handler wires HTTP routes to domain services and renders HTML views.
type Handler struct {
	users    service.UserService
	todos    service.TodoService
	sessions service.SessionService
	cookie   CookieConfig
	logger   *logrus.Logger
}

func NewHandler(users service.UserService, todos service.TodoService, sessions service.SessionService, cookie CookieConfig, logger *logrus.Logger) *Handler {
	return &Handler{
		users:    users,
		todos:    todos,
		sessions: sessions,
		cookie:   cookie,
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))
	router.Use(requestLogger(h.logger))

	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	router.GET("/login", h.redirectAuthenticated, h.loginForm)
	router.POST("/login", h.redirectAuthenticated, h.login)
	router.GET("/register", h.redirectAuthenticated, h.registerForm)
	router.POST("/register", h.redirectAuthenticated, h.register)

	authed := h.requireUser
	router.GET("/", authed, h.index)
	router.GET("/home", authed, h.index)
	router.GET("/uncompleted", authed, h.uncompleted)
	router.GET("/completed", authed, h.completed)
	router.GET("/todo", authed, h.todoForm)
	router.POST("/todo", authed, h.createTodo)
	router.GET("/todo/:id", authed, h.getTodo)
	router.POST("/todo/:id/toggle", authed, h.toggleTodo)
	router.GET("/todo/:id/edit", authed, h.editTodoForm)
	router.POST("/todo/:id/edit", authed, h.editTodo)
	router.POST("/todo/:id/delete", authed, h.deleteTodo)
	router.GET("/logout", authed, h.logout)
}

// index lists the user's todos, optionally narrowed by the q query parameter.
// An empty q matches everything, so the plain index and an empty search are
// the same view.
func (h *Handler) index(c *gin.Context) {
	query := c.Query("q")
	todos, err := h.todos.Search(c.Request.Context(), currentUser(c), query)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{"Todos": todos, "Query": query})
}

func (h *Handler) uncompleted(c *gin.Context) {
	todos, err := h.todos.ListByStatus(c.Request.Context(), currentUser(c), false)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{"Todos": todos, "Query": ""})
}

func (h *Handler) completed(c *gin.Context) {
	todos, err := h.todos.ListByStatus(c.Request.Context(), currentUser(c), true)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{"Todos": todos, "Query": ""})
}

func (h *Handler) todoForm(c *gin.Context) {
	c.HTML(http.StatusOK, "todo_form.html", gin.H{"Action": "/todo"})
}

func (h *Handler) createTodo(c *gin.Context) {
	title := c.PostForm("title")
	description := c.PostForm("description")
	done := c.PostForm("is_done") == "on"

	_, err := h.todos.Create(c.Request.Context(), currentUser(c), title, description, done)
	switch {
	case err == nil:
		c.Redirect(http.StatusSeeOther, "/")
	case errors.Is(err, service.ErrDuplicateTitle), errors.Is(err, service.ErrTitleRequired):
		c.HTML(http.StatusOK, "todo_form.html", gin.H{
			"Action": "/todo",
			"Error":  err.Error(),
			"Todo":   &domain.Todo{Title: title, Description: description, IsDone: done},
		})
	default:
		h.fail(c, err)
	}
}

func (h *Handler) getTodo(c *gin.Context) {
	id, ok := todoID(c)
	if !ok {
		h.renderNotFound(c)
		return
	}

	todo, err := h.todos.Get(c.Request.Context(), currentUser(c), id)
	switch {
	case err == nil:
		c.HTML(http.StatusOK, "todo.html", gin.H{"Todo": todo})
	case errors.Is(err, service.ErrTodoNotFound):
		h.renderNotFound(c)
	default:
		h.fail(c, err)
	}
}

func (h *Handler) toggleTodo(c *gin.Context) {
	id, ok := todoID(c)
	if !ok {
		h.renderNotFound(c)
		return
	}

	_, err := h.todos.Toggle(c.Request.Context(), currentUser(c), id)
	switch {
	case err == nil:
		c.Redirect(http.StatusSeeOther, "/")
	case errors.Is(err, service.ErrTodoNotFound):
		h.renderNotFound(c)
	default:
		h.fail(c, err)
	}
}

func (h *Handler) editTodoForm(c *gin.Context) {
	id, ok := todoID(c)
	if !ok {
		h.renderNotFound(c)
		return
	}

	todo, err := h.todos.Get(c.Request.Context(), currentUser(c), id)
	switch {
	case err == nil:
		c.HTML(http.StatusOK, "todo_form.html", gin.H{
			"Action": "/todo/" + strconv.FormatInt(id, 10) + "/edit",
			"Todo":   todo,
		})
	case errors.Is(err, service.ErrTodoNotFound):
		h.renderNotFound(c)
	default:
		h.fail(c, err)
	}
}

func (h *Handler) editTodo(c *gin.Context) {
	id, ok := todoID(c)
	if !ok {
		h.renderNotFound(c)
		return
	}

	title := c.PostForm("title")
	description := c.PostForm("description")
	done := c.PostForm("is_done") == "on"

	_, err := h.todos.Edit(c.Request.Context(), currentUser(c), id, title, description, done)
	switch {
	case err == nil:
		c.Redirect(http.StatusSeeOther, "/todo/"+strconv.FormatInt(id, 10))
	case errors.Is(err, service.ErrTodoNotFound):
		h.renderNotFound(c)
	case errors.Is(err, service.ErrDuplicateTitle), errors.Is(err, service.ErrTitleRequired):
		c.HTML(http.StatusOK, "todo_form.html", gin.H{
			"Action": "/todo/" + strconv.FormatInt(id, 10) + "/edit",
			"Error":  err.Error(),
			"Todo":   &domain.Todo{ID: id, Title: title, Description: description, IsDone: done},
		})
	default:
		h.fail(c, err)
	}
}

// deleteTodo is best-effort: absent or non-owned ids redirect the same way a
// successful delete does.
func (h *Handler) deleteTodo(c *gin.Context) {
	if id, ok := todoID(c); ok {
		if err := h.todos.Delete(c.Request.Context(), currentUser(c), id); err != nil {
			h.fail(c, err)
			return
		}
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) loginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", nil)
}

func (h *Handler) login(c *gin.Context) {
	user, err := h.users.Authenticate(c.Request.Context(), c.PostForm("email"), c.PostForm("password"))
	switch {
	case err == nil:
		h.startSession(c, user.ID)
	case errors.Is(err, service.ErrInvalidCredentials):
		c.Redirect(http.StatusSeeOther, "/login")
	default:
		h.fail(c, err)
	}
}

func (h *Handler) registerForm(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", nil)
}

func (h *Handler) register(c *gin.Context) {
	user, err := h.users.Register(
		c.Request.Context(),
		c.PostForm("email"),
		c.PostForm("username"),
		c.PostForm("password"),
		c.PostForm("confirm_password"),
	)
	switch {
	case err == nil:
		// auto-login after registration
		h.startSession(c, user.ID)
	case errors.Is(err, service.ErrPasswordMismatch), errors.Is(err, service.ErrDuplicateAccount):
		c.Redirect(http.StatusSeeOther, "/register")
	default:
		h.fail(c, err)
	}
}

func (h *Handler) logout(c *gin.Context) {
	if token, err := c.Cookie(h.cookie.Name); err == nil {
		if err := h.sessions.Revoke(c.Request.Context(), token); err != nil {
			h.logger.WithError(err).Error("revoke session")
		}
	}
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	c.Redirect(http.StatusSeeOther, "/login")
}

func (h *Handler) startSession(c *gin.Context, userID int64) {
	session, err := h.sessions.Issue(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.SetCookie(h.cookie.Name, session.Token, h.cookie.MaxAge, "/", "", h.cookie.Secure, true)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) renderNotFound(c *gin.Context) {
	// a view, not an error status
	c.HTML(http.StatusOK, "not_found.html", nil)
}

func (h *Handler) fail(c *gin.Context, err error) {
	h.logger.WithError(err).WithField("path", c.Request.URL.Path).Error("request failed")
	c.String(http.StatusInternalServerError, "internal server error")
	c.Abort()
}

func todoID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
