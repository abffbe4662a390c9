package controllers

import (
	"fmt"

	"github.com/qu-learn/qulearn-backend/db"
)

var (
	userStore   *db.MongoUserStore
	courseStore *db.MongoCourseStore
)

// InitControllers wires the handlers to the connected database. Must be
// called after db.ConnectMongoDB.
func InitControllers() {
	userStore = db.NewMongoUserStore()
	courseStore = db.NewMongoCourseStore()
}

// Helper function to parse int
func parseInt(s string) (int, error) {
	var result int
	_, err := fmt.Sscanf(s, "%d", &result)
	return result, err
}
