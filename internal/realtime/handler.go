package realtime

import (
	"net/http"

	"github.com/devsocial/backend/internal/httperr"
	"github.com/devsocial/backend/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS policy mirrors the HTTP layer; restrict in production.
		return true
	},
}

// Handler upgrades an authenticated request to a WebSocket session. The
// token travels as a query parameter because browsers cannot set headers on
// WebSocket dials. The session joins the room of the token's user — the
// room identity is never client-supplied.
func Handler(hub *Hub, jwtSecret string) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := &models.JwtCustomClaims{}
		token, err := jwt.ParseWithClaims(c.QueryParam("token"), claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, httperr.Unauthorized("Unexpected signing method")
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			return httperr.Unauthorized("Invalid token")
		}

		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			return nil // upgrader already wrote the error response
		}

		client := newClient(hub, claims.UserID, conn)
		hub.join(claims.UserID, client)
		go client.writePump()
		go client.readPump()
		return nil
	}
}
