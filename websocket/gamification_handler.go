package websocket

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// GamificationWebSocketHandler upgrades the connection and subscribes
// the user to live gamification events (points, badges, streaks).
func GamificationWebSocketHandler(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Browsers cannot set headers on websocket upgrades, so the token
		// may arrive as a query parameter instead.
		var tokenString string
		if authz := c.GetHeader("Authorization"); authz != "" {
			parts := strings.Split(authz, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
		if tokenString == "" {
			tokenString = c.Query("token")
		}
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization token required"})
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}
		userID, ok := claims["sub"].(string)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token: missing subject"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("WebSocket upgrade error: %v", err)
			return
		}

		client := &GamificationClient{Conn: conn, UserID: userID}
		RegisterGamificationClient(client)
		defer UnregisterGamificationClient(client)

		client.SafeWriteJSON(map[string]interface{}{
			"type":    "connected",
			"message": "Connected to gamification updates",
			"userId":  userID,
		})

		// Keep the connection alive; clients only send pings.
		for {
			messageType, _, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Printf("Gamification WebSocket error: %v", err)
				}
				break
			}
			if messageType == websocket.PingMessage {
				if err := conn.WriteMessage(websocket.PongMessage, nil); err != nil {
					log.Printf("Error writing pong: %v", err)
					break
				}
			}
		}
	}
}
