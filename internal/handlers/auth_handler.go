package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"escuela-backend/internal/config"
)

// AuthHandler implementa el flujo demo de OAuth con Google: redirige al
// consentimiento y en el callback devuelve al frontend un usuario de
// demostración inyectado por configuración. No hay intercambio real de
// código por token.
type AuthHandler struct {
	OAuth       *oauth2.Config
	FrontendURL string
	DemoUser    config.DemoUser
}

func NewAuthHandler(cfg config.Config) *AuthHandler {
	return &AuthHandler{
		OAuth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURI,
			Scopes:       []string{"profile", "email"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  "https://accounts.google.com/o/oauth2/v2/auth",
				TokenURL: "https://oauth2.googleapis.com/token",
			},
		},
		FrontendURL: cfg.FrontendURL,
		DemoUser:    cfg.DemoUser,
	}
}

func (h *AuthHandler) Google(c *gin.Context) {
	if h.OAuth.ClientID == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Configuración de Google OAuth incompleta"})
		return
	}
	authURL := h.OAuth.AuthCodeURL(uuid.New().String(), oauth2.AccessTypeOffline)
	c.Redirect(http.StatusFound, authURL)
}

func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	if errParam := c.Query("error"); errParam != "" {
		h.redirigirFrontend(c, gin.H{"error": "Error de autenticación: " + errParam})
		return
	}
	if c.Query("code") == "" {
		h.redirigirFrontend(c, gin.H{"error": "No se recibió código de autorización"})
		return
	}
	h.redirigirFrontend(c, gin.H{
		"user": gin.H{
			"id":          h.DemoUser.ID,
			"displayName": h.DemoUser.Nombre,
			"email":       h.DemoUser.Email,
			"photo":       h.DemoUser.Foto,
			"provider":    "google",
		},
		"message": "Autenticación exitosa (Demo)",
	})
}

// redirigirFrontend devuelve el resultado al frontend serializado en el
// parámetro auth de la query, como espera la SPA.
func (h *AuthHandler) redirigirFrontend(c *gin.Context, payload gin.H) {
	raw, err := json.Marshal(payload)
	if err != nil {
		errorInterno(c, err)
		return
	}
	c.Redirect(http.StatusFound, h.FrontendURL+"?auth="+url.QueryEscape(string(raw)))
}
