package handlers

import (
	"gorm.io/gorm"

	"github.com/studytok/api/logger"
)

// DBHandler carries the database connection for the plain CRUD endpoints.
type DBHandler struct {
	*gorm.DB
	Log *logger.Logger
}
